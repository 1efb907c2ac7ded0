package analysis

import (
	"github.com/katalvlaran/remoteness/raster"
)

// DefaultExcludedLandCover lists the NLCD classes never reported as
// unreachable points: open water (11) and perennial ice/snow (12).
func DefaultExcludedLandCover() []int32 { return []int32{11, 12} }

// LandMask returns validity with every cell whose land-cover code is in
// exclude cleared. Unclassified cells stay as they are. A nil validity
// starts from a full mask.
func LandMask(landcover *raster.Int, validity *raster.Mask, exclude []int32) (*raster.Mask, error) {
	g := landcover.Grid()
	if validity == nil {
		full, err := raster.FullMask(g)
		if err != nil {
			return nil, err
		}
		validity = full
	}
	if err := g.Aligned(validity.Grid()); err != nil {
		return nil, err
	}
	drop := make(map[int32]bool, len(exclude))
	for _, c := range exclude {
		drop[c] = true
	}
	bits := make([]bool, g.Cells())
	for i := range bits {
		bits[i] = validity.AtIndex(i) && !(landcover.Valid(i) && drop[landcover.AtIndex(i)])
	}
	return raster.NewMask(g, bits)
}
