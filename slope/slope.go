package slope

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/remoteness/internal/tile"
	"github.com/katalvlaran/remoteness/raster"
)

// Options configures Estimate.
type Options struct {
	Workers int
	Logger  *zap.Logger
}

// Option represents a functional option for configuring Estimate.
type Option func(*Options)

// WithWorkers sets the number of row bands processed concurrently.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// DefaultOptions returns Workers=GOMAXPROCS and a no-op logger.
func DefaultOptions() Options {
	return Options{Workers: tile.DefaultWorkers(), Logger: zap.NewNop()}
}

// Estimate derives a slope raster in degrees from elevation. The output shares
// the elevation grid and uses raster.DefaultNoData for cells without data.
func Estimate(ctx context.Context, elevation *raster.Float, opts ...Option) (*raster.Float, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	g := elevation.Grid()
	out := make([]float64, g.Cells())

	err := tile.Rows(ctx, g.Rows, cfg.Workers, func(ctx context.Context, b tile.Band) error {
		for row := b.Lo; row < b.Hi; row++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			for col := 0; col < g.Cols; col++ {
				out[g.Index(row, col)] = cellSlope(elevation, row, col)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("slope: %w", err)
	}

	res, err := raster.WrapFloat(g, raster.DefaultNoData, out)
	if err != nil {
		return nil, err
	}
	if lo, hi, ok := res.Range(); ok {
		cfg.Logger.Debug("slope estimated",
			zap.Int("rows", g.Rows), zap.Int("cols", g.Cols),
			zap.Float64("min_deg", lo), zap.Float64("max_deg", hi))
	}

	return res, nil
}

func cellSlope(z *raster.Float, row, col int) float64 {
	g := z.Grid()
	i := g.Index(row, col)
	if !z.Valid(i) {
		return raster.DefaultNoData
	}
	dx := gradient(z, row, col, 0, 1)
	dy := gradient(z, row, col, 1, 0)

	return math.Atan(math.Hypot(dx, dy)) * 180 / math.Pi
}

// gradient returns dz per metre along (dr, dc) at a valid cell.
func gradient(z *raster.Float, row, col, dr, dc int) float64 {
	g := z.Grid()
	zc := z.AtIndex(g.Index(row, col))
	prev, hasPrev := sample(z, row-dr, col-dc)
	next, hasNext := sample(z, row+dr, col+dc)
	switch {
	case hasPrev && hasNext:
		return (next - prev) / (2 * g.Resolution)
	case hasNext:
		return (next - zc) / g.Resolution
	case hasPrev:
		return (zc - prev) / g.Resolution
	default:
		return 0
	}
}

func sample(z *raster.Float, row, col int) (float64, bool) {
	g := z.Grid()
	if !g.InBounds(row, col) {
		return 0, false
	}
	i := g.Index(row, col)
	return z.AtIndex(i), z.Valid(i)
}
