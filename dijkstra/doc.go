// Package dijkstra computes multi-source accumulated-cost fields over a cost
// raster with Dijkstra's algorithm.
//
// Overview:
//
//   - Every passable seed cell starts at distance 0. Moving between neighbors i
//     and j costs (cost[i]+cost[j])/2 × step × resolution, where step is 1 for
//     orthogonal and √2 for diagonal moves.
//   - The result is the cost of the cheapest route from any seed to every cell;
//     no path geometry is produced.
//   - Impassable cells (no-data cost) are never enqueued nor relaxed into.
//
// Notes on implementation choices:
//
//   - Distances and settled flags live in index-addressed slices; the heap
//     stores values, so the hot loop allocates only when the heap grows.
//   - Seeds are pushed in ascending index order and ties pop in insertion
//     order, so reruns are bit-identical.
//   - We use a lazy decrease-key strategy: improved distances push duplicates
//     and stale entries are ignored when popped.
//   - The context is checked before the first pop and every CheckInterval pops.
//     Cancellation returns an error wrapping ctx.Err() and no partial result.
//
// Performance and complexity:
//
//   - Time:  O(N·d·log N), N = cells, d = 4 or 8 neighbors.
//   - Space: O(N) for distances and flags, O(N·d) worst-case heap entries.
//
// Example:
//
//	gg, _ := gridgraph.FromCost(cost, gridgraph.DefaultGridOptions())
//	res, err := dijkstra.Dijkstra(ctx, gg, cost, dijkstra.Sources(0))
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Dist[len(res.Dist)-1])
package dijkstra
