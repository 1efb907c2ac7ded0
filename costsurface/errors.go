package costsurface

import "errors"

var (
	// ErrDegenerateCost indicates a finite composed cost that is not positive.
	ErrDegenerateCost = errors.New("costsurface: composed cost must be positive")
	// ErrUnknownLandCover indicates a land-cover code missing from the factor
	// table while the unknown-code policy is PolicyFail.
	ErrUnknownLandCover = errors.New("costsurface: unknown land cover code")
	// ErrBadCurve indicates slope anchors that are empty, unordered or decreasing.
	ErrBadCurve = errors.New("costsurface: slope anchors must have increasing degrees and non-decreasing factors")
	// ErrBadFactor indicates a non-positive or non-finite land-cover factor.
	ErrBadFactor = errors.New("costsurface: land cover factor must be positive and finite")
	// ErrBadWeights indicates a negative or non-finite weight, or a max slope cost below 1.
	ErrBadWeights = errors.New("costsurface: invalid cost weights")
	// ErrBadPolicy indicates an unrecognized unknown-code policy.
	ErrBadPolicy = errors.New("costsurface: unknown land cover policy must be neutral or fail")
)
