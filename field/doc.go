// Package field solves accumulated-distance fields from a source mask.
//
// What:
//
//   - Solver is a closed set of two strategies behind one contract:
//     Euclidean (straight-line metres, exact EDT) and CostWeighted
//     (effective metres, multi-source Dijkstra over a cost raster).
//   - Both apply the validity mask after solving: cells outside it and
//     cells no source can reach are no-data.
//   - A non-source cell with no valid 8-neighbour is no-data in both modes
//     and counts as unreached.
//
// Errors:
//
//   - raster.ErrInputMismatch: source, validity and cost grids differ.
//   - ErrNoSourceCells: no source cell, or no passable one in cost mode.
//   - ErrMissingCost: CostWeighted built without a cost raster.
//   - costsurface.ErrDegenerateCost: a valid cost cell is zero or negative.
//   - ErrCancelled: the context ended; wraps ctx.Err(). See IsCancelled.
package field
