package costsurface

import (
	"context"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/katalvlaran/remoteness/internal/tile"
	"github.com/katalvlaran/remoteness/metrics"
	"github.com/katalvlaran/remoteness/raster"
)

// Weights scale the three cost terms.
//
//	cost = Base × clamp(Slope × slopeFactor, 1, MaxSlopeCost) × (LandCover × landCoverFactor)
type Weights struct {
	Base         float64
	Slope        float64
	LandCover    float64
	MaxSlopeCost float64
}

// DefaultWeights returns unit weights and a slope cap of 10.
func DefaultWeights() Weights {
	return Weights{Base: 1, Slope: 1, LandCover: 1, MaxSlopeCost: 10}
}

func (w Weights) validate() error {
	for name, v := range map[string]float64{"base": w.Base, "slope": w.Slope, "landcover": w.LandCover} {
		if !finite(v) || v < 0 {
			return fmt.Errorf("%w: %s weight %g", ErrBadWeights, name, v)
		}
	}
	if !(w.MaxSlopeCost >= 1) || math.IsInf(w.MaxSlopeCost, 0) {
		return fmt.Errorf("%w: max slope cost %g", ErrBadWeights, w.MaxSlopeCost)
	}
	return nil
}

// Options configures a Builder.
type Options struct {
	Curve   SlopeCurve
	Table   LandCoverTable
	Weights Weights
	Unknown UnknownPolicy
	Workers int
	Logger  *zap.Logger
}

// Option represents a functional option for configuring a Builder.
type Option func(*Options)

// WithCurve sets the slope curve.
func WithCurve(c SlopeCurve) Option { return func(o *Options) { o.Curve = c } }

// WithTable sets the land-cover factor table.
func WithTable(t LandCoverTable) Option { return func(o *Options) { o.Table = t } }

// WithWeights sets the composition weights.
func WithWeights(w Weights) Option { return func(o *Options) { o.Weights = w } }

// WithUnknownPolicy sets the policy for codes missing from the table.
func WithUnknownPolicy(p UnknownPolicy) Option { return func(o *Options) { o.Unknown = p } }

// WithWorkers sets the number of row bands processed concurrently.
func WithWorkers(n int) Option { return func(o *Options) { o.Workers = n } }

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *zap.Logger) Option { return func(o *Options) { o.Logger = l } }

// DefaultOptions returns the default curve, the NLCD table, DefaultWeights,
// PolicyNeutral, GOMAXPROCS workers and a no-op logger.
func DefaultOptions() Options {
	return Options{
		Curve:   DefaultSlopeCurve(),
		Table:   DefaultLandCoverTable(),
		Weights: DefaultWeights(),
		Unknown: PolicyNeutral,
		Workers: tile.DefaultWorkers(),
		Logger:  zap.NewNop(),
	}
}

// Builder composes cost rasters from slope and land cover.
// It is safe for concurrent use.
type Builder struct {
	opts Options
}

// NewBuilder validates opts and returns a Builder.
func NewBuilder(opts ...Option) (*Builder, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(cfg.Curve.anchors) == 0 {
		return nil, fmt.Errorf("%w: no anchors", ErrBadCurve)
	}
	if err := cfg.Weights.validate(); err != nil {
		return nil, err
	}
	if cfg.Unknown != PolicyNeutral && cfg.Unknown != PolicyFail {
		return nil, fmt.Errorf("%w: %d", ErrBadPolicy, cfg.Unknown)
	}
	if cfg.Workers <= 0 {
		return nil, fmt.Errorf("%w: %d", tile.ErrBadWorkers, cfg.Workers)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Builder{opts: cfg}, nil
}

// Report summarizes one build.
type Report struct {
	UnknownCodes map[int32]int // cells per code missing from the table
	UnknownCells int
	NoDataCells  int
	MinCost      float64
	MaxCost      float64
}

// CellCost composes the cost of one cell. ok is false when the land-cover
// code is missing from the table, in which case factor 1.0 is used.
func (b *Builder) CellCost(slopeDeg float64, code int32) (cost float64, ok bool) {
	w := b.opts.Weights
	st := math.Min(math.Max(w.Slope*b.opts.Curve.Factor(slopeDeg), 1), w.MaxSlopeCost)
	lf, ok := b.opts.Table.Factor(code)
	if !ok {
		lf = 1
	}
	return w.Base * st * (w.LandCover * lf), ok
}

// band accumulates per-band results merged after the errgroup returns.
type band struct {
	unknown  map[int32]int
	noData   int
	lo, hi   float64
	badIndex int
}

// Build composes a cost raster aligned with slope and landcover.
// No-data in either input gives no-data cost. Returns raster.ErrInputMismatch
// for misaligned inputs, ErrUnknownLandCover under PolicyFail and
// ErrDegenerateCost when a finite cost is not positive.
func (b *Builder) Build(ctx context.Context, slope *raster.Float, landcover *raster.Int) (*raster.Float, *Report, error) {
	g := slope.Grid()
	if err := g.Aligned(landcover.Grid()); err != nil {
		return nil, nil, err
	}
	out := make([]float64, g.Cells())
	bands := tile.Split(g.Rows, b.opts.Workers)
	parts := make([]band, len(bands))

	err := tile.Rows(ctx, g.Rows, b.opts.Workers, func(ctx context.Context, tb tile.Band) error {
		p := band{unknown: map[int32]int{}, lo: math.Inf(1), hi: math.Inf(-1), badIndex: -1}
		for row := tb.Lo; row < tb.Hi; row++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			for col := 0; col < g.Cols; col++ {
				i := g.Index(row, col)
				if !slope.Valid(i) || !landcover.Valid(i) {
					out[i] = raster.DefaultNoData
					p.noData++
					continue
				}
				code := landcover.AtIndex(i)
				c, known := b.CellCost(slope.AtIndex(i), code)
				if !known {
					p.unknown[code]++
				}
				if !(c > 0) && p.badIndex < 0 {
					p.badIndex = i
				}
				out[i] = c
				p.lo, p.hi = math.Min(p.lo, c), math.Max(p.hi, c)
			}
		}
		parts[tb.Index] = p
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("costsurface: %w", err)
	}

	rep := &Report{UnknownCodes: map[int32]int{}, MinCost: math.Inf(1), MaxCost: math.Inf(-1)}
	for _, p := range parts {
		if p.badIndex >= 0 {
			row, col := g.Coordinate(p.badIndex)
			return nil, nil, fmt.Errorf("%w: cell (%d,%d) cost=%g", ErrDegenerateCost, row, col, out[p.badIndex])
		}
		for code, n := range p.unknown {
			rep.UnknownCodes[code] += n
			rep.UnknownCells += n
		}
		rep.NoDataCells += p.noData
		rep.MinCost, rep.MaxCost = math.Min(rep.MinCost, p.lo), math.Max(rep.MaxCost, p.hi)
	}
	if rep.MinCost > rep.MaxCost {
		rep.MinCost, rep.MaxCost = 0, 0
	}
	if err := b.reportUnknown(rep); err != nil {
		return nil, nil, err
	}

	cost, err := raster.WrapFloat(g, raster.DefaultNoData, out)
	if err != nil {
		return nil, nil, err
	}
	b.opts.Logger.Debug("cost surface built",
		zap.Int("rows", g.Rows), zap.Int("cols", g.Cols),
		zap.Float64("min_cost", rep.MinCost), zap.Float64("max_cost", rep.MaxCost),
		zap.Int("nodata_cells", rep.NoDataCells))

	return cost, rep, nil
}

// Audit rebuilds the Report for a cost raster produced earlier by Build
// from landcover, e.g. one served from a cache. Unknown codes are logged,
// counted and subject to the unknown policy exactly as in Build.
func (b *Builder) Audit(cost *raster.Float, landcover *raster.Int) (*Report, error) {
	g := cost.Grid()
	if err := g.Aligned(landcover.Grid()); err != nil {
		return nil, err
	}
	rep := &Report{UnknownCodes: map[int32]int{}, MinCost: math.Inf(1), MaxCost: math.Inf(-1)}
	for i, c := range cost.View() {
		if !cost.Valid(i) {
			rep.NoDataCells++
			continue
		}
		code := landcover.AtIndex(i)
		if _, known := b.opts.Table.Factor(code); !known {
			rep.UnknownCodes[code]++
			rep.UnknownCells++
		}
		rep.MinCost, rep.MaxCost = math.Min(rep.MinCost, c), math.Max(rep.MaxCost, c)
	}
	if rep.MinCost > rep.MaxCost {
		rep.MinCost, rep.MaxCost = 0, 0
	}
	if err := b.reportUnknown(rep); err != nil {
		return nil, err
	}
	return rep, nil
}

func (b *Builder) reportUnknown(rep *Report) error {
	if rep.UnknownCells == 0 {
		return nil
	}
	codes := make([]int32, 0, len(rep.UnknownCodes))
	for c := range rep.UnknownCodes {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	if b.opts.Unknown == PolicyFail {
		return fmt.Errorf("%w: codes %v (%d cells)", ErrUnknownLandCover, codes, rep.UnknownCells)
	}
	metrics.UnknownLandCover.Add(float64(rep.UnknownCells))
	for _, c := range codes {
		b.opts.Logger.Warn("unknown land cover code, using neutral factor",
			zap.Int32("code", c), zap.Int("cells", rep.UnknownCodes[c]))
	}
	return nil
}
