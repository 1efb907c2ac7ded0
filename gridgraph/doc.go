// Package gridgraph treats the cells of a raster grid as a graph, enabling
// neighbor traversal and component analysis for accumulated-cost solvers.
//
// What:
//
//   - GridGraph wraps a raster.Grid with a per-cell passability flag.
//   - Visits passable neighbors with their step lengths (1 or √2 cells).
//   - Identifies connected components of passable cells.
//   - Counts components that no seed cell can reach.
//
// Why:
//
//   - Cost fields: an 8-connected grid is the travel model of Dijkstra solvers.
//   - Diagnostics: isolated passable regions explain unreached cells.
//
// Complexity:
//
//   - ConnectedComponents: O(R×C×d), Memory: O(R×C)    (d = number of neighbors, 4 or 8).
//   - Neighbors:           O(d).
//
// Options:
//
//   - GridOptions.Conn: Conn4 (4-neighbors) or Conn8 (8-neighbors, default).
//
// Errors:
//
//   - ErrEmptyGrid: input grid has no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrPassableLength: passability does not cover the grid.
//   - ErrConnectivity: unknown connectivity value.
package gridgraph
