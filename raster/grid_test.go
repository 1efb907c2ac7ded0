package raster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/remoteness/raster"
)

func TestNewGrid_Errors(t *testing.T) {
	cases := []struct {
		name       string
		rows, cols int
		res        float64
		err        error
	}{
		{"NoRows", 0, 3, 30, raster.ErrEmptyGrid},
		{"NoCols", 3, 0, 30, raster.ErrEmptyGrid},
		{"ZeroResolution", 3, 3, 0, raster.ErrBadResolution},
		{"NegativeResolution", 3, 3, -1, raster.ErrBadResolution},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := raster.NewGrid(tc.rows, tc.cols, tc.res)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestGrid_IndexCoordinate(t *testing.T) {
	g, err := raster.NewGrid(3, 4, 10)
	require.NoError(t, err)

	assert.Equal(t, 12, g.Cells())
	assert.Equal(t, 6, g.Index(1, 2))
	row, col := g.Coordinate(11)
	assert.Equal(t, 2, row)
	assert.Equal(t, 3, col)
	assert.True(t, g.InBounds(2, 3))
	assert.False(t, g.InBounds(3, 0))
	assert.False(t, g.InBounds(0, -1))
}

func TestGrid_CellCenter(t *testing.T) {
	g, err := raster.NewGrid(2, 2, 30)
	require.NoError(t, err)
	g = g.WithOrigin(1000, 2000)

	x, y := g.CellCenter(1, 0)
	assert.InDelta(t, 1015.0, x, 1e-9)
	assert.InDelta(t, 1955.0, y, 1e-9)
}

func TestGrid_Aligned(t *testing.T) {
	base, err := raster.NewGrid(3, 3, 30)
	require.NoError(t, err)
	base = base.WithOrigin(100, 200).WithCRS("+proj=utm +zone=10")

	cases := []struct {
		name  string
		other raster.Grid
		ok    bool
	}{
		{"Same", base, true},
		{"NoCRS", base.WithCRS(""), true},
		{"Shape", raster.Grid{Rows: 3, Cols: 4, Resolution: 30, OriginX: 100, OriginY: 200}, false},
		{"Resolution", raster.Grid{Rows: 3, Cols: 3, Resolution: 31, OriginX: 100, OriginY: 200}, false},
		{"Origin", base.WithOrigin(130, 200), false},
		{"CRS", base.WithCRS("+proj=utm +zone=11"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := base.Aligned(tc.other)
			if tc.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, raster.ErrInputMismatch)
		})
	}

	require.ErrorIs(t, raster.RequireAligned(base, base, base.WithOrigin(0, 0)), raster.ErrInputMismatch)
}

func TestFloat_ValidAndRange(t *testing.T) {
	g, err := raster.NewGrid(1, 4, 1)
	require.NoError(t, err)

	_, err = raster.NewFloat(g, raster.DefaultNoData, []float64{1, 2})
	require.ErrorIs(t, err, raster.ErrDataLength)

	f, err := raster.NewFloat(g, -1, []float64{3, -1, 7, 5})
	require.NoError(t, err)
	assert.False(t, f.Valid(1))
	assert.Equal(t, 3, f.ValidCount())

	lo, hi, ok := f.Range()
	require.True(t, ok)
	assert.Equal(t, 3.0, lo)
	assert.Equal(t, 7.0, hi)

	empty, err := raster.FilledFloat(g, -1, -1)
	require.NoError(t, err)
	_, _, ok = empty.Range()
	assert.False(t, ok)
}

func TestMask(t *testing.T) {
	g, err := raster.NewGrid(2, 3, 1)
	require.NoError(t, err)

	a, err := raster.MaskFromCells(g, [2]int{0, 0}, [2]int{1, 2}, [2]int{5, 5})
	require.NoError(t, err)
	assert.Equal(t, 2, a.Count())
	assert.True(t, a.At(1, 2))

	full, err := raster.FullMask(g)
	require.NoError(t, err)
	both, err := a.And(full)
	require.NoError(t, err)
	assert.Equal(t, 2, both.Count())

	f, err := raster.NewFloat(g, raster.DefaultNoData, []float64{0, 1, raster.DefaultNoData, 2, 0, 0})
	require.NoError(t, err)
	m := raster.MaskFromFloat(f, nil)
	assert.Equal(t, 2, m.Count())
	assert.True(t, m.At(0, 1))
	assert.True(t, m.At(1, 0))
}
