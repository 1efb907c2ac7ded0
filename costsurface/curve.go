package costsurface

import (
	"fmt"
	"math"
)

// Anchor is one knot of the slope curve: slopes of Degrees cost Factor.
type Anchor struct {
	Degrees float64 `yaml:"degrees"`
	Factor  float64 `yaml:"factor"`
}

// SlopeCurve maps slope in degrees to a travel-cost multiplier.
// Below the first anchor the factor is flat; between anchors it is linear;
// past the last anchor it grows by BeyondPerDegree per degree without bound.
type SlopeCurve struct {
	anchors []Anchor
	beyond  float64
}

// DefaultAnchors returns the default knots: ≤5°→1.0, 10°→1.2, 20°→1.5,
// 30°→2.0, 40°→3.0, 45°→5.0.
func DefaultAnchors() []Anchor {
	return []Anchor{{5, 1.0}, {10, 1.2}, {20, 1.5}, {30, 2.0}, {40, 3.0}, {45, 5.0}}
}

// DefaultBeyondPerDegree is the factor added per degree past the last anchor.
const DefaultBeyondPerDegree = 0.2

// DefaultSlopeCurve returns the curve built from DefaultAnchors.
func DefaultSlopeCurve() SlopeCurve {
	c, _ := NewSlopeCurve(DefaultAnchors(), DefaultBeyondPerDegree)
	return c
}

// NewSlopeCurve validates and copies anchors.
// Degrees must increase strictly and factors must not decrease; beyond must be ≥ 0.
func NewSlopeCurve(anchors []Anchor, beyond float64) (SlopeCurve, error) {
	if len(anchors) == 0 {
		return SlopeCurve{}, fmt.Errorf("%w: no anchors", ErrBadCurve)
	}
	for i, a := range anchors {
		if !finite(a.Degrees) || !finite(a.Factor) || a.Factor <= 0 {
			return SlopeCurve{}, fmt.Errorf("%w: anchor %d (%g°, %g)", ErrBadCurve, i, a.Degrees, a.Factor)
		}
		if i > 0 && (a.Degrees <= anchors[i-1].Degrees || a.Factor < anchors[i-1].Factor) {
			return SlopeCurve{}, fmt.Errorf("%w: anchor %d (%g°, %g) after (%g°, %g)",
				ErrBadCurve, i, a.Degrees, a.Factor, anchors[i-1].Degrees, anchors[i-1].Factor)
		}
	}
	if !finite(beyond) || beyond < 0 {
		return SlopeCurve{}, fmt.Errorf("%w: beyond per degree %g", ErrBadCurve, beyond)
	}

	return SlopeCurve{anchors: append([]Anchor(nil), anchors...), beyond: beyond}, nil
}

// Factor returns the multiplier for a slope in degrees.
func (c SlopeCurve) Factor(deg float64) float64 {
	first, last := c.anchors[0], c.anchors[len(c.anchors)-1]
	switch {
	case deg <= first.Degrees:
		return first.Factor
	case deg >= last.Degrees:
		return last.Factor + c.beyond*(deg-last.Degrees)
	}
	for i := 1; i < len(c.anchors); i++ {
		hi := c.anchors[i]
		if deg > hi.Degrees {
			continue
		}
		lo := c.anchors[i-1]
		t := (deg - lo.Degrees) / (hi.Degrees - lo.Degrees)
		return lo.Factor + t*(hi.Factor-lo.Factor)
	}
	return last.Factor
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
