package analysis_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/remoteness/analysis"
	"github.com/katalvlaran/remoteness/field"
	"github.com/katalvlaran/remoteness/raster"
)

const nd = raster.DefaultNoData

func newField(t testing.TB, rows, cols int, res float64, vals []float64) *field.Field {
	t.Helper()
	g, err := raster.NewGrid(rows, cols, res)
	require.NoError(t, err)
	r, err := raster.NewFloat(g, nd, vals)
	require.NoError(t, err)
	return &field.Field{Raster: r, Mode: field.ModeEuclidean, Unit: "m"}
}

func TestExtract_RankingAndTies(t *testing.T) {
	f := newField(t, 2, 3, 10, []float64{
		5, 9, 9,
		1, nd, 7,
	})
	rep, err := analysis.Extract(f, nil, analysis.WithTopN(10), analysis.WithMinSeparation(0))
	require.NoError(t, err)

	require.Len(t, rep.Points, 5)
	got := make([][3]float64, len(rep.Points))
	for i, p := range rep.Points {
		got[i] = [3]float64{float64(p.Row), float64(p.Col), p.Value}
		assert.Equal(t, i+1, p.Rank)
		assert.Equal(t, "m", p.Unit)
	}
	assert.Equal(t, [][3]float64{{0, 1, 9}, {0, 2, 9}, {1, 2, 7}, {0, 0, 5}, {1, 0, 1}}, got)
	assert.Equal(t, rep.Points[0], rep.MostUnreachable)
}

// TestExtract_Separation checks that accepted points are strictly farther
// apart than the radius and that a cluster around one peak yields one point.
func TestExtract_Separation(t *testing.T) {
	vals := make([]float64, 100)
	for i := range vals {
		r, c := i/10, i%10
		vals[i] = -math.Hypot(float64(r-2), float64(c-2)) + 100
	}
	vals[9*10+9] = 95 // isolated secondary peak far from the main one
	f := newField(t, 10, 10, 100, vals)

	rep, err := analysis.Extract(f, nil, analysis.WithTopN(3), analysis.WithMinSeparation(500))
	require.NoError(t, err)
	require.Len(t, rep.Points, 3)
	assert.Equal(t, [2]int{2, 2}, [2]int{rep.Points[0].Row, rep.Points[0].Col})
	assert.Equal(t, [2]int{9, 9}, [2]int{rep.Points[1].Row, rep.Points[1].Col})

	for i, a := range rep.Points {
		if i > 0 {
			assert.GreaterOrEqual(t, rep.Points[i-1].Value, a.Value)
		}
		for _, b := range rep.Points[i+1:] {
			assert.Greater(t, math.Hypot(a.X-b.X, a.Y-b.Y), 500.0)
		}
	}
}

// TestExtract_SeparationIsStrict: neighbors exactly one radius apart are suppressed.
func TestExtract_SeparationIsStrict(t *testing.T) {
	f := newField(t, 1, 3, 10, []float64{3, 2, 1})
	rep, err := analysis.Extract(f, nil, analysis.WithTopN(3), analysis.WithMinSeparation(10))
	require.NoError(t, err)
	require.Len(t, rep.Points, 2)
	assert.Equal(t, 2, rep.Points[1].Col)
}

func TestExtract_Stats(t *testing.T) {
	f := newField(t, 2, 3, 1, []float64{2, 4, 4, 4, 5, nd})
	f.Unreached = 1
	valid, _ := raster.MaskFromCells(f.Raster.Grid(), [2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}, [2]int{1, 0}, [2]int{1, 2})

	rep, err := analysis.Extract(f, valid)
	require.NoError(t, err)
	s := rep.Stats
	assert.Equal(t, 6, s.TotalCells)
	assert.Equal(t, 4, s.ValidCells)
	assert.Equal(t, 1, s.ExcludedCells)
	assert.Equal(t, 1, s.UnreachedCells)
	assert.Equal(t, 2.0, s.Min)
	assert.Equal(t, 4.0, s.Max)
	assert.InDelta(t, 3.5, s.Mean, 1e-12)
	assert.InDelta(t, 4.0, s.Median, 1e-12)
	assert.InDelta(t, math.Sqrt(0.75), s.Std, 1e-12)

	odd := newField(t, 1, 3, 1, []float64{9, 1, 3})
	rep, err = analysis.Extract(odd, nil)
	require.NoError(t, err)
	assert.Equal(t, 3.0, rep.Stats.Median)
}

func TestExtract_Errors(t *testing.T) {
	f := newField(t, 1, 2, 1, []float64{1, 2})
	cases := []struct {
		name string
		opts []analysis.Option
		err  error
	}{
		{"ZeroTopN", []analysis.Option{analysis.WithTopN(0)}, analysis.ErrBadTopN},
		{"NegativeSeparation", []analysis.Option{analysis.WithMinSeparation(-1)}, analysis.ErrBadSeparation},
		{"NaNSeparation", []analysis.Option{analysis.WithMinSeparation(math.NaN())}, analysis.ErrBadSeparation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := analysis.Extract(f, nil, tc.opts...)
			require.ErrorIs(t, err, tc.err)
		})
	}

	empty := newField(t, 1, 2, 1, []float64{nd, nd})
	_, err := analysis.Extract(empty, nil)
	require.ErrorIs(t, err, analysis.ErrNoValidCells)

	g3, _ := raster.NewGrid(1, 3, 1)
	other, _ := raster.FullMask(g3)
	_, err = analysis.Extract(f, other)
	require.ErrorIs(t, err, raster.ErrInputMismatch)
}

func TestExtract_Labeler(t *testing.T) {
	f := newField(t, 1, 2, 1, []float64{1, 2})
	rep, err := analysis.Extract(f, nil, analysis.WithTopN(1),
		analysis.WithLabeler(func(p analysis.Point) string { return "peak" }))
	require.NoError(t, err)
	assert.Equal(t, "peak", rep.Points[0].Label)
}

func TestReport_FeatureCollection(t *testing.T) {
	f := newField(t, 1, 2, 1, []float64{1, 2})
	rep, err := analysis.Extract(f, nil, analysis.WithMinSeparation(0))
	require.NoError(t, err)

	fc := rep.FeatureCollection()
	require.Len(t, fc.Features, 2)
	assert.Equal(t, 1, fc.Features[0].Properties["rank"])
	assert.Equal(t, 2.0, fc.Features[0].Properties["accumulated_value"])

	b, err := fc.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(b), `"FeatureCollection"`)
}
