package edt_test

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/remoteness/edt"
	"github.com/katalvlaran/remoteness/raster"
)

// bruteForce returns squared distances by scanning every source.
func bruteForce(g raster.Grid, sources []bool) []float64 {
	out := make([]float64, g.Cells())
	for i := range out {
		r, c := g.Coordinate(i)
		best := math.Inf(1)
		for j, s := range sources {
			if !s {
				continue
			}
			sr, sc := g.Coordinate(j)
			dr, dc := float64(r-sr), float64(c-sc)
			best = math.Min(best, dr*dr+dc*dc)
		}
		out[i] = best
	}
	return out
}

func TestTransform_Errors(t *testing.T) {
	g, err := raster.NewGrid(3, 3, 1)
	require.NoError(t, err)

	_, err = edt.Transform(context.Background(), g, make([]bool, 9))
	require.ErrorIs(t, err, edt.ErrNoSources)

	_, err = edt.Transform(context.Background(), g, make([]bool, 4))
	require.ErrorIs(t, err, edt.ErrSourceLength)

	src := make([]bool, 9)
	src[0] = true
	_, err = edt.Transform(context.Background(), g, src, edt.WithWorkers(0))
	require.ErrorIs(t, err, edt.ErrBadWorkers)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = edt.Transform(ctx, g, src)
	require.ErrorIs(t, err, context.Canceled)
}

// TestTransform_CornerSource: on a 5×5 grid seeded at (0,0) the far
// corner is at squared distance 32.
func TestTransform_CornerSource(t *testing.T) {
	g, _ := raster.NewGrid(5, 5, 1)
	src := make([]bool, 25)
	src[0] = true

	d, err := edt.Transform(context.Background(), g, src)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d[0])
	assert.Equal(t, 32.0, d[24])
	assert.Equal(t, 5.0, d[g.Index(2, 1)])
}

// TestTransform_MatchesBruteForce compares random sparse source sets on
// non-square grids for several worker counts.
func TestTransform_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	shapes := [][2]int{{1, 1}, {1, 17}, {23, 1}, {13, 29}, {40, 31}}
	for _, sh := range shapes {
		g, err := raster.NewGrid(sh[0], sh[1], 30)
		require.NoError(t, err)
		src := make([]bool, g.Cells())
		for i := range src {
			src[i] = rng.Intn(40) == 0
		}
		src[rng.Intn(len(src))] = true
		want := bruteForce(g, src)

		for _, workers := range []int{1, 3, 8} {
			got, err := edt.Transform(context.Background(), g, src, edt.WithWorkers(workers))
			require.NoError(t, err)
			require.Equal(t, want, got, "shape %v workers %d", sh, workers)
		}
	}
}
