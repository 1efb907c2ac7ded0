package field

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/remoteness/edt"
	"github.com/katalvlaran/remoteness/metrics"
	"github.com/katalvlaran/remoteness/raster"
)

// Euclidean measures straight-line distance in metres to the nearest source.
type Euclidean struct {
	opts Options
}

// NewEuclidean returns a straight-line solver.
func NewEuclidean(opts ...Option) *Euclidean {
	return &Euclidean{opts: buildOptions(opts)}
}

func (*Euclidean) sealed() {}

// Mode returns ModeEuclidean.
func (*Euclidean) Mode() Mode { return ModeEuclidean }

// Solve computes the exact Euclidean distance field. Sources are 0 and
// every other valid cell holds distance × resolution, except cells with no
// valid neighbour, which stay no-data and count as unreached.
func (e *Euclidean) Solve(ctx context.Context, sources, validity *raster.Mask) (*Field, error) {
	validity, err := checkInputs(sources, validity)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	g := sources.Grid()
	sq, err := edt.Transform(ctx, g, sources.View(), edt.WithWorkers(e.opts.Workers))
	if err != nil {
		return nil, cancelled(err)
	}

	src := sources.View()
	settled, unreached := 0, 0
	for i, v := range sq {
		switch {
		case !validity.AtIndex(i):
			sq[i] = raster.DefaultNoData
		case !src[i] && enclosed(validity, i):
			sq[i] = raster.DefaultNoData
			unreached++
		default:
			sq[i] = math.Sqrt(v) * g.Resolution
			settled++
		}
	}
	r, err := raster.WrapFloat(g, raster.DefaultNoData, sq)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)
	metrics.ObserveSolve(string(ModeEuclidean), elapsed, settled)
	e.opts.Logger.Debug("euclidean field solved",
		zap.Int("sources", sources.Count()), zap.Int("cells", settled), zap.Int("unreached", unreached), zap.Duration("elapsed", elapsed))

	return &Field{Raster: r, Mode: ModeEuclidean, Unit: ModeEuclidean.Unit(),
		Unreached: unreached, Settled: settled}, nil
}
