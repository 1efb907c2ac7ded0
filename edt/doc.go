// Package edt computes exact Euclidean distance transforms of binary grids.
//
// What:
//
//   - Transform returns, for every cell, the squared distance in cell units
//     to the nearest source cell.
//   - Uses the separable lower-envelope algorithm of Felzenszwalb and
//     Huttenlocher: a 1D pass down every column, then a 1D pass along every row.
//
// Complexity:
//
//   - Time:   O(R×C).
//   - Memory: O(R×C) for the output plus O(max(R,C)) scratch per worker.
//
// Errors:
//
//   - ErrNoSources: no cell is a source, so every distance is infinite.
//   - ErrSourceLength: sources does not cover the grid.
//   - ErrBadWorkers: non-positive worker count.
//   - Context errors are wrapped and returned as is; no partial output.
package edt
