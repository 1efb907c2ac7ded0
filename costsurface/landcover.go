package costsurface

import (
	"fmt"
	"strings"
)

// UnknownPolicy decides what happens to land-cover codes missing from the table.
type UnknownPolicy int

const (
	// PolicyNeutral uses factor 1.0 and reports the code as a quality warning.
	PolicyNeutral UnknownPolicy = iota
	// PolicyFail aborts the build with ErrUnknownLandCover.
	PolicyFail
)

// ParseUnknownPolicy accepts "neutral" or "fail", case-insensitively.
func ParseUnknownPolicy(s string) (UnknownPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "neutral", "":
		return PolicyNeutral, nil
	case "fail":
		return PolicyFail, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadPolicy, s)
}

func (p UnknownPolicy) String() string {
	if p == PolicyFail {
		return "fail"
	}
	return "neutral"
}

// NLCD class codes of the National Land Cover Database.
const (
	NLCDOpenWater        int32 = 11
	NLCDIceSnow          int32 = 12
	NLCDDevelopedOpen    int32 = 21
	NLCDDevelopedLow     int32 = 22
	NLCDDevelopedMedium  int32 = 23
	NLCDDevelopedHigh    int32 = 24
	NLCDBarren           int32 = 31
	NLCDDeciduousForest  int32 = 41
	NLCDEvergreenForest  int32 = 42
	NLCDMixedForest      int32 = 43
	NLCDShrub            int32 = 52
	NLCDGrassland        int32 = 71
	NLCDPasture          int32 = 81
	NLCDCrops            int32 = 82
	NLCDWoodyWetlands    int32 = 90
	NLCDEmergentWetlands int32 = 95
)

// DefaultNLCDFactors returns the default multiplier per NLCD class.
func DefaultNLCDFactors() map[int32]float64 {
	return map[int32]float64{
		NLCDOpenWater:        10.0,
		NLCDIceSnow:          8.0,
		NLCDDevelopedOpen:    1.0,
		NLCDDevelopedLow:     1.0,
		NLCDDevelopedMedium:  1.0,
		NLCDDevelopedHigh:    1.0,
		NLCDBarren:           1.5,
		NLCDDeciduousForest:  2.0,
		NLCDEvergreenForest:  2.5,
		NLCDMixedForest:      2.2,
		NLCDShrub:            1.4,
		NLCDGrassland:        1.2,
		NLCDPasture:          1.3,
		NLCDCrops:            1.3,
		NLCDWoodyWetlands:    3.0,
		NLCDEmergentWetlands: 4.0,
	}
}

// LandCoverTable maps class codes to cost multipliers. It is immutable.
type LandCoverTable struct {
	factors map[int32]float64
}

// DefaultLandCoverTable returns the NLCD table.
func DefaultLandCoverTable() LandCoverTable {
	return LandCoverTable{factors: DefaultNLCDFactors()}
}

// NewLandCoverTable validates and copies factors.
func NewLandCoverTable(factors map[int32]float64) (LandCoverTable, error) {
	cp := make(map[int32]float64, len(factors))
	for code, f := range factors {
		if !finite(f) || f <= 0 {
			return LandCoverTable{}, fmt.Errorf("%w: code %d factor %g", ErrBadFactor, code, f)
		}
		cp[code] = f
	}
	return LandCoverTable{factors: cp}, nil
}

// Factor returns the multiplier for code and whether the code is known.
func (t LandCoverTable) Factor(code int32) (float64, bool) {
	f, ok := t.factors[code]
	return f, ok
}
