// Package slope estimates terrain steepness from an elevation raster.
//
// What:
//
//   - Estimate returns slope in degrees, atan(hypot(dz/dx, dz/dy)).
//   - Interior cells use central differences; edge cells and cells next to
//     no-data use the one-sided difference through the centre cell.
//   - An axis with no usable neighbor contributes a zero gradient.
//   - No-data elevation gives no-data slope.
//
// Complexity:
//
//   - Time:   O(R×C), split across Workers row bands.
//   - Memory: O(R×C) for the output.
//
// Output is bit-identical for every worker count.
package slope
