package dijkstra

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/remoteness/gridgraph"
	"github.com/katalvlaran/remoteness/raster"
)

// Dijkstra computes accumulated cost from the seed cells (Options.Sources)
// over gg, whose cell costs are given by cost.
//
// Preconditions and validation (in order):
//  1. gg must be non-nil (ErrNilGraph).
//  2. Options must be valid (ErrBadCheckInterval).
//  3. cost must be aligned with the graph grid (raster.ErrInputMismatch).
//  4. Passable cells must carry positive finite cost (ErrBadCost).
//  5. Seeds must be in range (ErrSourceRange) and at least one passable (ErrNoSources).
//
// Complexity:
//
//   - Time:  O(N·d·log N), N = cells, d = neighbors per cell.
//   - Space: O(N) plus heap entries.
func Dijkstra(ctx context.Context, gg *gridgraph.GridGraph, cost *raster.Float, opts ...Option) (*Result, error) {
	// 1) Build Options from defaults and the caller's overrides.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	// 2) Validate graph is non-nil and Options are usable.
	if gg == nil {
		return nil, ErrNilGraph
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	// 3) Cost must describe the same cells as the graph.
	if err := gg.Grid().Aligned(cost.Grid()); err != nil {
		return nil, err
	}
	// 4) Pre-scan passable cells. Fail fast on a cost Dijkstra cannot price.
	vals := cost.View()
	for i, c := range vals {
		if gg.Passable(i) && !(c > 0 && !math.IsInf(c, 0)) {
			row, col := gg.Coordinate(i)
			return nil, fmt.Errorf("%w: cell (%d,%d) cost=%v", ErrBadCost, row, col, c)
		}
	}

	// 5) Prepare the runner; dist, settled and the heap are reused across pops.
	n := gg.Cells()
	r := &runner{
		ctx:     ctx,
		gg:      gg,
		options: cfg,
		cost:    vals,
		res:     gg.Grid().Resolution,
		dist:    make([]float64, n),
		settled: make([]bool, n),
		pq:      make(nodePQ, 0, 1024),
	}
	if err := r.init(); err != nil {
		return nil, err
	}
	if err := r.process(); err != nil {
		return nil, err
	}

	return &Result{Dist: r.dist, Settled: r.nSettled, Pushes: r.pushes, Seeded: r.seeded}, nil
}

// runner holds the mutable state for a single Dijkstra execution.
type runner struct {
	ctx     context.Context
	gg      *gridgraph.GridGraph
	options Options
	cost    []float64
	res     float64

	dist    []float64
	settled []bool
	pq      nodePQ
	seq     uint64

	nSettled, pushes, seeded int
}

// init sets every distance to +Inf and seeds passable sources at zero in
// ascending index order.
func (r *runner) init() error {
	// 1) Initialize dist[v] = +Inf for every cell.
	for i := range r.dist {
		r.dist[i] = math.Inf(1)
	}
	// 2) Sort seeds so heap insertion order, and with it tie-breaking,
	// does not depend on how the caller listed them.
	seeds := append([]int(nil), r.options.Sources...)
	sort.Ints(seeds)
	for k, s := range seeds {
		if s < 0 || s >= len(r.dist) {
			return fmt.Errorf("%w: %d", ErrSourceRange, s)
		}
		// 3) Skip duplicates and seeds on barrier cells.
		if (k > 0 && seeds[k-1] == s) || !r.gg.Passable(s) {
			continue
		}
		// 4) A seed is its own nearest source.
		r.dist[s] = 0
		r.push(s, 0)
		r.seeded++
	}
	if r.seeded == 0 {
		return ErrNoSources
	}

	return nil
}

// process repeatedly settles the closest unsettled cell and relaxes its neighbors.
//
// Loop termination conditions:
//
//   - The heap becomes empty (all reachable cells settled).
//   - The context is done; the partial distances are discarded by the caller.
func (r *runner) process() error {
	if err := r.ctx.Err(); err != nil {
		return fmt.Errorf("dijkstra: not started: %w", err)
	}
	pops := 0
	for len(r.pq) > 0 {
		// 1) Check for cancellation every CheckInterval pops.
		pops++
		if pops%r.options.CheckInterval == 0 {
			if err := r.ctx.Err(); err != nil {
				return fmt.Errorf("dijkstra: stopped after %d settled cells: %w", r.nSettled, err)
			}
		}

		// 2) Pop the smallest (dist, seq) entry.
		item := r.pq.pop()
		u := item.idx
		// 3) Skip stale entries left behind by lazy decrease-key.
		if r.settled[u] || item.dist > r.dist[u] {
			continue
		}
		// 4) Mark u as settled. Its distance is now final.
		r.settled[u] = true
		r.nSettled++
		// 5) Relax every passable neighbor of u.
		r.relax(u)
	}

	return nil
}

// relax tries to improve every passable neighbor of u.
// Assumes r.dist[u] is final.
func (r *runner) relax(u int) {
	du, cu := r.dist[u], r.cost[u]
	r.gg.Neighbors(u, func(v int, step float64) bool {
		// 1) Settled neighbors cannot improve.
		if r.settled[v] {
			return true
		}
		// 2) Edge weight: mean of both cell costs × step length × resolution.
		nd := du + (cu+r.cost[v])/2*step*r.res
		if nd >= r.dist[v] {
			return true
		}
		// 3) Record the improvement and queue v; the old entry goes stale.
		r.dist[v] = nd
		r.push(v, nd)
		return true
	})
}

func (r *runner) push(idx int, d float64) {
	r.pq.push(nodeItem{dist: d, seq: r.seq, idx: idx})
	r.seq++
	r.pushes++
}
