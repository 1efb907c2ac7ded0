// Package costsurface turns slope and land cover into a per-cell travel-cost
// multiplier:
//
//	cost = Base × clamp(Slope × curve(slope°), 1, MaxSlopeCost) × (LandCover × table(code))
//
// What:
//
//   - SlopeCurve is piecewise linear between anchors, flat below the first
//     and growing by BeyondPerDegree past the last.
//   - LandCoverTable maps class codes to factors; codes missing from it are
//     handled by UnknownPolicy (neutral factor 1.0, or fail).
//   - No-data slope or land cover gives no-data cost. Every other cell must
//     come out positive, otherwise Build fails with ErrDegenerateCost.
//
// Complexity:
//
//   - Time:   O(R×C), split across Workers row bands.
//   - Memory: O(R×C) for the output.
//
// Errors:
//
//   - raster.ErrInputMismatch: slope and land cover grids differ.
//   - ErrDegenerateCost: a composed cost is zero or negative.
//   - ErrUnknownLandCover: unknown codes under PolicyFail.
//   - ErrBadCurve, ErrBadFactor, ErrBadWeights, ErrBadPolicy: invalid options.
package costsurface
