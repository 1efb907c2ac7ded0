package analysis

import (
	"github.com/katalvlaran/remoteness/raster"
)

// Plausible elevation bounds in metres; values outside are treated as no-data.
const (
	MinPlausibleElevation = -100.0
	MaxPlausibleElevation = 10000.0
)

// ElevationPoint is one extreme of the elevation raster.
type ElevationPoint struct {
	Elevation float64 `json:"elevation_m"`
	Row       int     `json:"row"`
	Col       int     `json:"col"`
	X         float64 `json:"x_projected"`
	Y         float64 `json:"y_projected"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ElevationExtremes holds the highest and lowest points.
type ElevationExtremes struct {
	Highest ElevationPoint `json:"highest_point"`
	Lowest  ElevationPoint `json:"lowest_point"`
}

// FindElevationExtremes scans valid, plausible elevations inside validity
// (nil keeps every cell). Ties keep the first cell in row-major order.
// ok is false when no cell qualifies.
func FindElevationExtremes(dem *raster.Float, validity *raster.Mask, p Projector) (*ElevationExtremes, bool, error) {
	g := dem.Grid()
	if validity != nil {
		if err := g.Aligned(validity.Grid()); err != nil {
			return nil, false, err
		}
	}
	if p == nil {
		p = IdentityProjector{}
	}
	hi, lo := -1, -1
	vals := dem.View()
	for i, v := range vals {
		if !dem.Valid(i) || v < MinPlausibleElevation || v > MaxPlausibleElevation {
			continue
		}
		if validity != nil && !validity.AtIndex(i) {
			continue
		}
		if hi < 0 || v > vals[hi] {
			hi = i
		}
		if lo < 0 || v < vals[lo] {
			lo = i
		}
	}
	if hi < 0 {
		return nil, false, nil
	}

	ext := &ElevationExtremes{}
	var err error
	if ext.Highest, err = elevationPoint(dem, hi, p); err != nil {
		return nil, false, err
	}
	if ext.Lowest, err = elevationPoint(dem, lo, p); err != nil {
		return nil, false, err
	}
	return ext, true, nil
}

func elevationPoint(dem *raster.Float, i int, p Projector) (ElevationPoint, error) {
	g := dem.Grid()
	row, col := g.Coordinate(i)
	x, y := g.CellCenter(row, col)
	lon, lat, err := p.ToLonLat(x, y)
	if err != nil {
		return ElevationPoint{}, err
	}
	return ElevationPoint{
		Elevation: dem.AtIndex(i), Row: row, Col: col,
		X: x, Y: y, Latitude: lat, Longitude: lon,
	}, nil
}
