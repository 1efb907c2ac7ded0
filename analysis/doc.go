// Package analysis turns an accumulated field into ranked unreachable points
// and summary statistics.
//
// What:
//
//   - Extract sorts valid cells by value (descending, ties by row-major index)
//     and keeps a point only when it lies farther than the minimum separation
//     from every point already kept.
//   - Statistics cover every valid cell regardless of the separation radius.
//   - LandMask drops water and ice from the candidates while leaving them in
//     place as barriers of the field itself.
//   - ElevationExtremes reports the highest and lowest plausible elevation.
//   - FeatureCollection exports the ranked points as GeoJSON.
//
// Complexity:
//
//   - Extract: O(V log V + V·N), V = valid cells, N = points requested.
package analysis
