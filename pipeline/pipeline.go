package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/remoteness/analysis"
	"github.com/katalvlaran/remoteness/cache"
	"github.com/katalvlaran/remoteness/config"
	"github.com/katalvlaran/remoteness/costsurface"
	"github.com/katalvlaran/remoteness/field"
	"github.com/katalvlaran/remoteness/logging"
	"github.com/katalvlaran/remoteness/raster"
	"github.com/katalvlaran/remoteness/slope"
)

// ErrMissingInput indicates a raster the configured mode needs is absent.
var ErrMissingInput = errors.New("pipeline: missing input")

// Inputs gathers everything one run consumes. Rasters must share one grid.
type Inputs struct {
	Config    config.Config
	Sources   *raster.Mask  // required
	Validity  *raster.Mask  // nil keeps every cell
	Elevation *raster.Float // cost mode without Cost; optional otherwise
	LandCover *raster.Int   // cost mode without Cost; optional otherwise
	Cost      *raster.Float // precomputed cost surface, skips slope and cost
	Store     *cache.Store  // optional
	Logger    *zap.Logger
}

// Result is the outcome of Run.
type Result struct {
	RunID       string
	Slope       *raster.Float       // nil unless computed in this run
	Cost        *cache.Handle       // nil in Euclidean mode
	CostReport  *costsurface.Report // nil unless computed in this run
	Field       *field.Field
	Report      *analysis.Report
	CostCached  bool
	FieldCached bool
}

// Surface is a freshly built cost surface with its slope input.
type Surface struct {
	Slope  *raster.Float
	Cost   *raster.Float
	Report *costsurface.Report
}

// CostSurface estimates slope from elevation and composes the cost raster.
func CostSurface(ctx context.Context, cfg config.Config, elevation *raster.Float, landcover *raster.Int, log *zap.Logger) (*Surface, error) {
	log = logging.OrNop(log)
	if elevation == nil || landcover == nil {
		return nil, fmt.Errorf("%w: cost surface needs elevation and land cover", ErrMissingInput)
	}
	if err := raster.RequireAligned(elevation.Grid(), landcover.Grid()); err != nil {
		return nil, err
	}
	b, err := cfg.Builder(log)
	if err != nil {
		return nil, err
	}
	sl, err := slope.Estimate(ctx, elevation, slope.WithWorkers(cfg.Workers()), slope.WithLogger(log))
	if err != nil {
		return nil, err
	}
	cost, rep, err := b.Build(ctx, sl, landcover)
	if err != nil {
		return nil, err
	}
	return &Surface{Slope: sl, Cost: cost, Report: rep}, nil
}

// Projector returns the lon/lat projector for g, falling back to the
// configured CRS when the rasters carry none.
func Projector(cfg config.Config, g raster.Grid) (analysis.Projector, error) {
	crs := g.CRS
	if crs == "" {
		crs = cfg.Grid.CRS
	}
	return analysis.ProjectorFor(crs)
}

// Run executes the whole chain for in.
func Run(ctx context.Context, in Inputs) (*Result, error) {
	log := logging.OrNop(in.Logger)
	cfg := in.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if in.Sources == nil {
		return nil, fmt.Errorf("%w: sources", ErrMissingInput)
	}
	g := in.Sources.Grid()
	if err := checkGrid(cfg, g, in); err != nil {
		return nil, err
	}
	res := &Result{RunID: uuid.NewString()}
	log = log.With(zap.String("run", res.RunID))
	mode := cfg.FieldMode()
	log.Info("run started", zap.String("mode", string(mode)),
		zap.Int("rows", g.Rows), zap.Int("cols", g.Cols), zap.Float64("resolution", g.Resolution))
	start := time.Now()

	var cost *raster.Float
	if mode == field.ModeCostWeighted {
		h, err := resolveCost(ctx, in, res, log)
		if err != nil {
			return nil, err
		}
		res.Cost = h
		cost = h.Raster()
	}

	f, err := resolveField(ctx, in, mode, cost, res, log)
	if err != nil {
		return nil, err
	}
	res.Field = f

	candidates := in.Validity
	if in.LandCover != nil && len(cfg.Analysis.ExcludeLandCover) > 0 {
		if candidates, err = analysis.LandMask(in.LandCover, in.Validity, cfg.Analysis.ExcludeLandCover); err != nil {
			return nil, err
		}
	}
	proj, err := Projector(cfg, g)
	if err != nil {
		return nil, err
	}
	rep, err := analysis.Extract(f, candidates, append(cfg.AnalysisOptions(log), analysis.WithProjector(proj))...)
	if err != nil {
		return nil, err
	}
	if rep.CRS == "" {
		rep.CRS = cfg.Grid.CRS
	}
	if in.Elevation != nil {
		ext, ok, err := analysis.FindElevationExtremes(in.Elevation, in.Validity, proj)
		if err != nil {
			return nil, err
		}
		if ok {
			rep.Elevation = ext
		}
	}
	res.Report = rep
	log.Info("run finished", zap.Duration("elapsed", time.Since(start)),
		zap.Float64("max", rep.Stats.Max), zap.Int("points", len(rep.Points)))

	return res, nil
}

func checkGrid(cfg config.Config, g raster.Grid, in Inputs) error {
	grids := []raster.Grid{g}
	if in.Validity != nil {
		grids = append(grids, in.Validity.Grid())
	}
	if in.Elevation != nil {
		grids = append(grids, in.Elevation.Grid())
	}
	if in.LandCover != nil {
		grids = append(grids, in.LandCover.Grid())
	}
	if in.Cost != nil {
		grids = append(grids, in.Cost.Grid())
	}
	if err := raster.RequireAligned(grids...); err != nil {
		return err
	}
	want := g
	want.Resolution = cfg.Grid.ResolutionM
	if want.Resolution > 0 && g.Aligned(want) != nil {
		return fmt.Errorf("%w: configured resolution %g, inputs have %g", raster.ErrInputMismatch, want.Resolution, g.Resolution)
	}
	if cfg.Grid.CRS != "" && g.CRS != "" && cfg.Grid.CRS != g.CRS {
		return fmt.Errorf("%w: configured crs %q, inputs have %q", raster.ErrInputMismatch, cfg.Grid.CRS, g.CRS)
	}
	return nil
}

func resolveCost(ctx context.Context, in Inputs, res *Result, log *zap.Logger) (*cache.Handle, error) {
	if in.Cost != nil {
		return cache.NewHandle(cache.NewKey(cache.KindCost, cache.FingerprintFloat(in.Cost)), in.Cost), nil
	}
	if in.Elevation == nil || in.LandCover == nil {
		return nil, fmt.Errorf("%w: cost mode needs elevation and land cover or a cost raster", ErrMissingInput)
	}
	cfgHash, err := cache.FingerprintConfig(in.Config.Cost)
	if err != nil {
		return nil, err
	}
	key := cache.NewKey(cache.KindCost,
		cache.FingerprintFloat(in.Elevation), cache.FingerprintInt(in.LandCover), cfgHash)

	compute := func(ctx context.Context) (*raster.Float, error) {
		s, err := CostSurface(ctx, in.Config, in.Elevation, in.LandCover, log)
		if err != nil {
			return nil, err
		}
		res.Slope, res.CostReport = s.Slope, s.Report
		return s.Cost, nil
	}
	if in.Store == nil {
		r, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		return cache.NewHandle(key, r), nil
	}
	h, hit, err := in.Store.GetOrCompute(ctx, cache.KindCost, key, compute)
	if err != nil {
		return nil, err
	}
	res.CostCached = hit
	if hit {
		// A cached surface skipped Build; redo its land-cover report.
		b, err := in.Config.Builder(log)
		if err != nil {
			return nil, err
		}
		if res.CostReport, err = b.Audit(h.Raster(), in.LandCover); err != nil {
			return nil, err
		}
	}
	log.Debug("cost surface resolved", zap.String("key", string(key)), zap.Bool("cached", hit))

	return h, nil
}

func resolveField(ctx context.Context, in Inputs, mode field.Mode, cost *raster.Float, res *Result, log *zap.Logger) (*field.Field, error) {
	solve := func(ctx context.Context) (*field.Field, error) {
		s, err := field.New(mode, cost, in.Config.FieldOptions(log)...)
		if err != nil {
			return nil, err
		}
		return s.Solve(ctx, in.Sources, in.Validity)
	}
	if in.Store == nil {
		return solve(ctx)
	}

	modeHash, err := cache.FingerprintConfig(mode)
	if err != nil {
		return nil, err
	}
	parts := []uint64{modeHash, cache.FingerprintMask(in.Sources)}
	if cost != nil {
		parts = append(parts, cache.FingerprintFloat(cost))
	}
	if in.Validity != nil {
		parts = append(parts, cache.FingerprintMask(in.Validity))
	}
	key := cache.NewKey(cache.KindField, parts...)

	var solved *field.Field
	h, hit, err := in.Store.GetOrCompute(ctx, cache.KindField, key, func(ctx context.Context) (*raster.Float, error) {
		f, err := solve(ctx)
		if err != nil {
			return nil, err
		}
		solved = f
		return f.Raster, nil
	})
	if err != nil {
		return nil, err
	}
	res.FieldCached = hit
	log.Debug("field resolved", zap.String("key", string(key)), zap.Bool("cached", hit))
	if solved != nil {
		return solved, nil
	}
	return FieldFromRaster(h.Raster(), mode, in.Validity), nil
}

// FieldFromRaster rebuilds the metadata of a stored field. Cells outside
// validity are not counted. The isolated-region count is not persisted and
// stays zero.
func FieldFromRaster(r *raster.Float, mode field.Mode, validity *raster.Mask) *field.Field {
	f := &field.Field{Raster: r, Mode: mode, Unit: mode.Unit()}
	for i := range r.View() {
		if validity != nil && !validity.AtIndex(i) {
			continue
		}
		if r.Valid(i) {
			f.Settled++
		} else {
			f.Unreached++
		}
	}
	return f
}
