package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/remoteness/field"
	"github.com/katalvlaran/remoteness/raster"
)

var (
	// ErrBadTopN indicates a requested point count below one.
	ErrBadTopN = errors.New("analysis: top-N must be at least 1")
	// ErrBadSeparation indicates a negative or non-finite minimum separation.
	ErrBadSeparation = errors.New("analysis: minimum separation must be a non-negative finite distance")
	// ErrNoValidCells indicates a field with no value inside the validity mask.
	ErrNoValidCells = errors.New("analysis: no valid cells in field")
)

// Defaults used when no option overrides them.
const (
	DefaultTopN          = 5
	DefaultMinSeparation = 25000.0 // metres
)

// Point is one ranked unreachable location.
type Point struct {
	Rank      int     `json:"rank"`
	Row       int     `json:"row"`
	Col       int     `json:"col"`
	X         float64 `json:"x_projected"`
	Y         float64 `json:"y_projected"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Value     float64 `json:"accumulated_value"`
	Unit      string  `json:"value_unit"`
	Label     string  `json:"label,omitempty"`
}

// Stats summarizes the valid cells of a field.
type Stats struct {
	TotalCells     int     `json:"total_cells"`
	ValidCells     int     `json:"valid_cells"`
	ExcludedCells  int     `json:"excluded_cells"`
	UnreachedCells int     `json:"unreached_cells"`
	Min            float64 `json:"min"`
	Max            float64 `json:"max"`
	Mean           float64 `json:"mean"`
	Median         float64 `json:"median"`
	Std            float64 `json:"std"`
}

// Settings echoes the extraction parameters in the report.
type Settings struct {
	TopN          int     `json:"top_n"`
	MinSeparation float64 `json:"min_separation_m"`
}

// Report is the result of Extract.
type Report struct {
	Mode            field.Mode         `json:"mode"`
	Unit            string             `json:"value_unit"`
	CRS             string             `json:"crs,omitempty"`
	Resolution      float64            `json:"resolution_m"`
	Settings        Settings           `json:"analysis_settings"`
	MostUnreachable Point              `json:"most_unreachable_point"`
	Points          []Point            `json:"points"`
	Stats           Stats              `json:"statistics"`
	Elevation       *ElevationExtremes `json:"elevation_extremes,omitempty"`
}

// Options configures Extract.
type Options struct {
	TopN          int
	MinSeparation float64 // metres in the projected CRS
	Projector     Projector
	Labeler       func(Point) string
	Logger        *zap.Logger
}

// Option represents a functional option for configuring Extract.
type Option func(*Options)

// WithTopN sets how many points to return.
func WithTopN(n int) Option { return func(o *Options) { o.TopN = n } }

// WithMinSeparation sets the suppression radius in metres.
func WithMinSeparation(m float64) Option { return func(o *Options) { o.MinSeparation = m } }

// WithProjector sets the coordinate transform to longitude/latitude.
func WithProjector(p Projector) Option { return func(o *Options) { o.Projector = p } }

// WithLabeler names each accepted point, for instance after a nearby place.
func WithLabeler(fn func(Point) string) Option { return func(o *Options) { o.Labeler = fn } }

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *zap.Logger) Option { return func(o *Options) { o.Logger = l } }

// DefaultOptions returns TopN=5, MinSeparation=25 km, an identity projector
// and a no-op logger.
func DefaultOptions() Options {
	return Options{
		TopN:          DefaultTopN,
		MinSeparation: DefaultMinSeparation,
		Projector:     IdentityProjector{},
		Logger:        zap.NewNop(),
	}
}

// Extract ranks the most unreachable cells of f inside validity (nil keeps
// every cell) and summarizes the valid population.
func Extract(f *field.Field, validity *raster.Mask, opts ...Option) (*Report, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.TopN < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBadTopN, cfg.TopN)
	}
	if cfg.MinSeparation < 0 || math.IsNaN(cfg.MinSeparation) || math.IsInf(cfg.MinSeparation, 0) {
		return nil, fmt.Errorf("%w: %g", ErrBadSeparation, cfg.MinSeparation)
	}
	if cfg.Projector == nil {
		cfg.Projector = IdentityProjector{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	fr := f.Raster
	g := fr.Grid()
	if validity != nil {
		if err := g.Aligned(validity.Grid()); err != nil {
			return nil, err
		}
	}

	cand := make([]int, 0, fr.ValidCount())
	excluded := 0
	for i := 0; i < g.Cells(); i++ {
		if validity != nil && !validity.AtIndex(i) {
			excluded++
			continue
		}
		if fr.Valid(i) {
			cand = append(cand, i)
		}
	}
	if len(cand) == 0 {
		return nil, ErrNoValidCells
	}
	vals := fr.View()
	sort.SliceStable(cand, func(a, b int) bool {
		va, vb := vals[cand[a]], vals[cand[b]]
		if va != vb {
			return va > vb
		}
		return cand[a] < cand[b]
	})

	points, err := suppress(fr, cand, f.Unit, cfg)
	if err != nil {
		return nil, err
	}
	rep := &Report{
		Mode:            f.Mode,
		Unit:            f.Unit,
		CRS:             g.CRS,
		Resolution:      g.Resolution,
		Settings:        Settings{TopN: cfg.TopN, MinSeparation: cfg.MinSeparation},
		MostUnreachable: points[0],
		Points:          points,
		Stats:           summarize(vals, cand, g.Cells(), excluded, f.Unreached),
	}
	if len(points) < cfg.TopN {
		cfg.Logger.Warn("fewer separated points than requested",
			zap.Int("found", len(points)), zap.Int("requested", cfg.TopN))
	}
	cfg.Logger.Debug("unreachable points extracted",
		zap.Int("candidates", len(cand)), zap.Float64("max", rep.Stats.Max), zap.Float64("mean", rep.Stats.Mean))

	return rep, nil
}

// suppress walks candidates in rank order and keeps those farther than the
// minimum separation from every kept point.
func suppress(fr *raster.Float, cand []int, unit string, cfg Options) ([]Point, error) {
	g := fr.Grid()
	kept := make([]orb.Point, 0, cfg.TopN)
	points := make([]Point, 0, cfg.TopN)
	for _, i := range cand {
		if len(points) == cfg.TopN {
			break
		}
		row, col := g.Coordinate(i)
		x, y := g.CellCenter(row, col)
		p := orb.Point{x, y}
		if tooClose(p, kept, cfg.MinSeparation) {
			continue
		}
		lon, lat, err := cfg.Projector.ToLonLat(x, y)
		if err != nil {
			return nil, fmt.Errorf("analysis: project cell (%d,%d): %w", row, col, err)
		}
		pt := Point{
			Rank: len(points) + 1, Row: row, Col: col, X: x, Y: y,
			Latitude: lat, Longitude: lon, Value: fr.AtIndex(i), Unit: unit,
		}
		if cfg.Labeler != nil {
			pt.Label = cfg.Labeler(pt)
		}
		kept = append(kept, p)
		points = append(points, pt)
	}
	return points, nil
}

func tooClose(p orb.Point, kept []orb.Point, minSep float64) bool {
	for _, k := range kept {
		if !(planar.Distance(p, k) > minSep) {
			return true
		}
	}
	return false
}

func summarize(vals []float64, cand []int, total, excluded, unreached int) Stats {
	xs := make([]float64, len(cand))
	for k, i := range cand {
		xs[k] = vals[i]
	}
	// cand is sorted descending; reverse for an ascending sample.
	for a, b := 0, len(xs)-1; a < b; a, b = a+1, b-1 {
		xs[a], xs[b] = xs[b], xs[a]
	}
	mean, std := stat.PopMeanStdDev(xs, nil)
	n := len(xs)
	median := xs[n/2]
	if n%2 == 0 {
		median = (xs[n/2-1] + xs[n/2]) / 2
	}
	return Stats{
		TotalCells:     total,
		ValidCells:     n,
		ExcludedCells:  excluded,
		UnreachedCells: unreached,
		Min:            xs[0],
		Max:            xs[n-1],
		Mean:           mean,
		Median:         median,
		Std:            std,
	}
}
