package analysis

import (
	"fmt"

	"github.com/ctessum/geom/proj"
)

// WGS84 is the proj4 definition of geographic longitude/latitude.
const WGS84 = "+proj=longlat +datum=WGS84 +no_defs"

// Projector converts projected grid coordinates to longitude and latitude.
type Projector interface {
	ToLonLat(x, y float64) (lon, lat float64, err error)
}

// IdentityProjector passes coordinates through unchanged. It serves grids
// that are already geographic and tests.
type IdentityProjector struct{}

// ToLonLat returns (x, y).
func (IdentityProjector) ToLonLat(x, y float64) (float64, float64, error) {
	return x, y, nil
}

// ProjProjector transforms from a proj4-defined CRS to WGS84.
type ProjProjector struct {
	t proj.Transformer
}

// NewProjProjector parses crs and prepares the transform to WGS84.
func NewProjProjector(crs string) (*ProjProjector, error) {
	src, err := proj.Parse(crs)
	if err != nil {
		return nil, fmt.Errorf("analysis: parse crs %q: %w", crs, err)
	}
	dst, err := proj.Parse(WGS84)
	if err != nil {
		return nil, fmt.Errorf("analysis: parse wgs84: %w", err)
	}
	t, err := src.NewTransform(dst)
	if err != nil {
		return nil, fmt.Errorf("analysis: transform %q to wgs84: %w", crs, err)
	}
	return &ProjProjector{t: t}, nil
}

// ToLonLat transforms (x, y) to degrees.
func (p *ProjProjector) ToLonLat(x, y float64) (float64, float64, error) {
	return p.t(x, y)
}

// ProjectorFor returns a ProjProjector for a non-empty crs and an
// IdentityProjector otherwise.
func ProjectorFor(crs string) (Projector, error) {
	if crs == "" {
		return IdentityProjector{}, nil
	}
	return NewProjProjector(crs)
}
