// Package remoteness locates the places inside a region that are hardest to
// reach from a road network, by straight-line distance or by terrain-aware
// effective travel cost.
//
// The module is organized leaf-first:
//
//	raster/       grids, float/int rasters, masks, ESRI ASCII I/O
//	gridgraph/    8-neighbour graph over raster cells, connected components
//	slope/        slope in degrees from elevation
//	costsurface/  slope curve × land-cover table → per-cell cost multiplier
//	edt/          exact Euclidean distance transform
//	dijkstra/     multi-source Dijkstra over a gridgraph with per-cell cost
//	field/        Euclidean and cost-weighted solvers behind one Solver
//	analysis/     ranked, well-separated unreachable points and statistics
//	cache/        content-addressed store for cost rasters and fields
//	config/       YAML configuration
//	pipeline/     the whole chain for one region
//	cmd/remoteness  command line
//
// Every long-running operation takes a context.Context and stops cleanly
// when it is cancelled.
package remoteness
