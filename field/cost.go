package field

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/remoteness/costsurface"
	"github.com/katalvlaran/remoteness/dijkstra"
	"github.com/katalvlaran/remoteness/gridgraph"
	"github.com/katalvlaran/remoteness/metrics"
	"github.com/katalvlaran/remoteness/raster"
)

// CostWeighted measures the cheapest accumulated travel cost, in effective
// metres, over an 8-connected grid priced by a cost raster. No-data cost
// cells are barriers.
type CostWeighted struct {
	cost *raster.Float
	gg   *gridgraph.GridGraph
	opts Options
}

// NewCostWeighted returns a solver over cost. Returns ErrMissingCost for a
// nil raster and costsurface.ErrDegenerateCost when a valid cell is not
// positive.
func NewCostWeighted(cost *raster.Float, opts ...Option) (*CostWeighted, error) {
	if cost == nil {
		return nil, ErrMissingCost
	}
	g := cost.Grid()
	for i, v := range cost.View() {
		if cost.Valid(i) && v <= 0 {
			row, col := g.Coordinate(i)
			return nil, fmt.Errorf("%w: cell (%d,%d) cost=%g", costsurface.ErrDegenerateCost, row, col, v)
		}
	}
	gg, err := gridgraph.FromCost(cost, gridgraph.DefaultGridOptions())
	if err != nil {
		return nil, err
	}
	return &CostWeighted{cost: cost, gg: gg, opts: buildOptions(opts)}, nil
}

func (*CostWeighted) sealed() {}

// Mode returns ModeCostWeighted.
func (*CostWeighted) Mode() Mode { return ModeCostWeighted }

// Solve runs multi-source Dijkstra from every passable source cell.
func (c *CostWeighted) Solve(ctx context.Context, sources, validity *raster.Mask) (*Field, error) {
	validity, err := checkInputs(sources, validity, c.cost.Grid())
	if err != nil {
		return nil, err
	}
	start := time.Now()
	g := sources.Grid()
	seeds := make([]int, 0, sources.Count())
	for i, s := range sources.View() {
		if s {
			seeds = append(seeds, i)
		}
	}

	res, err := dijkstra.Dijkstra(ctx, c.gg, c.cost,
		dijkstra.Sources(seeds...), dijkstra.WithCheckInterval(c.opts.CheckInterval))
	switch {
	case errors.Is(err, dijkstra.ErrNoSources):
		return nil, fmt.Errorf("%w: none of %d source cells is passable", ErrNoSourceCells, len(seeds))
	case err != nil:
		return nil, cancelled(err)
	}

	out := res.Dist
	src := sources.View()
	unreached := 0
	for i, d := range out {
		switch {
		case !validity.AtIndex(i):
			out[i] = raster.DefaultNoData
		case math.IsInf(d, 1), !src[i] && enclosed(validity, i):
			out[i] = raster.DefaultNoData
			unreached++
		}
	}
	passableSeeds := make([]bool, g.Cells())
	for _, s := range seeds {
		passableSeeds[s] = c.gg.Passable(s)
	}
	isolated := c.gg.UnseededComponents(passableSeeds)

	r, err := raster.WrapFloat(g, raster.DefaultNoData, out)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)
	metrics.ObserveSolve(string(ModeCostWeighted), elapsed, res.Settled)
	c.opts.Logger.Debug("cost-weighted field solved",
		zap.Int("sources", res.Seeded), zap.Int("settled", res.Settled), zap.Int("pushes", res.Pushes),
		zap.Int("unreached", unreached), zap.Int("isolated_regions", isolated), zap.Duration("elapsed", elapsed))
	if unreached > 0 {
		c.opts.Logger.Info("valid cells unreachable from any source",
			zap.Int("cells", unreached), zap.Int("isolated_regions", isolated))
	}

	return &Field{
		Raster:    r,
		Mode:      ModeCostWeighted,
		Unit:      ModeCostWeighted.Unit(),
		Unreached: unreached,
		Isolated:  isolated,
		Settled:   res.Settled,
	}, nil
}
