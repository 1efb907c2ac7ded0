package costsurface_test

import (
	"context"
	"maps"
	"math/rand"
	"slices"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/remoteness/costsurface"
	"github.com/katalvlaran/remoteness/metrics"
	"github.com/katalvlaran/remoteness/raster"
)

func inputs(t testing.TB, slopes []float64, codes []int32) (*raster.Float, *raster.Int) {
	t.Helper()
	g, err := raster.NewGrid(1, len(slopes), 30)
	require.NoError(t, err)
	s, err := raster.NewFloat(g, raster.DefaultNoData, slopes)
	require.NoError(t, err)
	lc, err := raster.NewInt(g, raster.DefaultIntNoData, codes)
	require.NoError(t, err)
	return s, lc
}

func TestBuild_Composition(t *testing.T) {
	s, lc := inputs(t,
		[]float64{0, 45, 50, 0, raster.DefaultNoData, 10},
		[]int32{71, 31, 21, 11, 41, 0})
	b, err := costsurface.NewBuilder()
	require.NoError(t, err)

	cost, rep, err := b.Build(context.Background(), s, lc)
	require.NoError(t, err)
	v := cost.View()
	assert.InDelta(t, 1.2, v[0], 1e-12)
	assert.InDelta(t, 7.5, v[1], 1e-12)
	assert.InDelta(t, 6.0, v[2], 1e-12)
	assert.InDelta(t, 10.0, v[3], 1e-12)
	assert.False(t, cost.Valid(4), "no-data slope")
	assert.False(t, cost.Valid(5), "no-data land cover")
	assert.Equal(t, 2, rep.NoDataCells)
	assert.Equal(t, 0, rep.UnknownCells)
	assert.InDelta(t, 1.2, rep.MinCost, 1e-12)
	assert.InDelta(t, 10.0, rep.MaxCost, 1e-12)
}

func TestBuild_Weights(t *testing.T) {
	s, lc := inputs(t, []float64{60, 0}, []int32{21, 21})
	b, err := costsurface.NewBuilder(costsurface.WithWeights(costsurface.Weights{
		Base: 2, Slope: 1, LandCover: 1.5, MaxSlopeCost: 4,
	}))
	require.NoError(t, err)

	cost, _, err := b.Build(context.Background(), s, lc)
	require.NoError(t, err)
	assert.InDelta(t, 2*4*1.5, cost.AtIndex(0), 1e-12, "slope term capped")
	assert.InDelta(t, 2*1*1.5, cost.AtIndex(1), 1e-12)
}

func TestBuild_AtLeastOneUnderDefaults(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	codes := slices.Sorted(maps.Keys(costsurface.DefaultNLCDFactors()))
	slopes := make([]float64, 500)
	lcs := make([]int32, 500)
	for i := range slopes {
		slopes[i] = rng.Float64() * 80
		lcs[i] = codes[rng.Intn(len(codes))]
	}
	s, lc := inputs(t, slopes, lcs)
	b, err := costsurface.NewBuilder()
	require.NoError(t, err)
	cost, _, err := b.Build(context.Background(), s, lc)
	require.NoError(t, err)
	for i, c := range cost.View() {
		require.GreaterOrEqual(t, c, 1.0, "cell %d", i)
	}
}

func TestBuild_UnknownCodes(t *testing.T) {
	s, lc := inputs(t, []float64{0, 0, 0}, []int32{99, 99, 71})

	core, logs := observer.New(zap.WarnLevel)
	b, err := costsurface.NewBuilder(costsurface.WithLogger(zap.New(core)))
	require.NoError(t, err)
	cost, rep, err := b.Build(context.Background(), s, lc)
	require.NoError(t, err)
	assert.Equal(t, 1.0, cost.AtIndex(0))
	assert.Equal(t, map[int32]int{99: 2}, rep.UnknownCodes)
	assert.Equal(t, 1, logs.Len())

	strict, err := costsurface.NewBuilder(costsurface.WithUnknownPolicy(costsurface.PolicyFail))
	require.NoError(t, err)
	_, _, err = strict.Build(context.Background(), s, lc)
	require.ErrorIs(t, err, costsurface.ErrUnknownLandCover)
}

// TestAudit_MatchesBuild: auditing a built surface reports and logs the
// same unknown codes Build did, as happens when the surface comes from a cache.
func TestAudit_MatchesBuild(t *testing.T) {
	s, lc := inputs(t, []float64{0, 0, 0, 0}, []int32{99, 99, 71, 77})
	vals := s.Values()
	vals[3] = raster.DefaultNoData
	s, err := raster.NewFloat(s.Grid(), raster.DefaultNoData, vals)
	require.NoError(t, err)

	b, err := costsurface.NewBuilder()
	require.NoError(t, err)
	cost, built, err := b.Build(context.Background(), s, lc)
	require.NoError(t, err)

	core, logs := observer.New(zap.WarnLevel)
	auditor, err := costsurface.NewBuilder(costsurface.WithLogger(zap.New(core)))
	require.NoError(t, err)
	before := testutil.ToFloat64(metrics.UnknownLandCover)
	rep, err := auditor.Audit(cost, lc)
	require.NoError(t, err)
	assert.Equal(t, built, rep)
	assert.Equal(t, map[int32]int{99: 2}, rep.UnknownCodes, "no-data cell with code 77 is not counted")
	assert.Equal(t, 1, logs.Len())
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.UnknownLandCover)-before)

	strict, err := costsurface.NewBuilder(costsurface.WithUnknownPolicy(costsurface.PolicyFail))
	require.NoError(t, err)
	_, err = strict.Audit(cost, lc)
	require.ErrorIs(t, err, costsurface.ErrUnknownLandCover)

	g3, _ := raster.NewGrid(1, 3, 30)
	other, _ := raster.FilledInt(g3, 0, 71)
	_, err = b.Audit(cost, other)
	require.ErrorIs(t, err, raster.ErrInputMismatch)
}

func TestBuild_Errors(t *testing.T) {
	s, lc := inputs(t, []float64{0, 0}, []int32{71, 71})

	zero, err := costsurface.NewBuilder(costsurface.WithWeights(costsurface.Weights{
		Base: 1, Slope: 1, LandCover: 0, MaxSlopeCost: 10,
	}))
	require.NoError(t, err)
	_, _, err = zero.Build(context.Background(), s, lc)
	require.ErrorIs(t, err, costsurface.ErrDegenerateCost)

	b, err := costsurface.NewBuilder()
	require.NoError(t, err)
	g3, _ := raster.NewGrid(1, 3, 30)
	other, _ := raster.FilledInt(g3, 0, 71)
	_, _, err = b.Build(context.Background(), s, other)
	require.ErrorIs(t, err, raster.ErrInputMismatch)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = b.Build(ctx, s, lc)
	require.ErrorIs(t, err, context.Canceled)

	_, err = costsurface.NewBuilder(costsurface.WithWeights(costsurface.Weights{Base: 1, Slope: 1, LandCover: 1, MaxSlopeCost: 0.5}))
	require.ErrorIs(t, err, costsurface.ErrBadWeights)
	_, err = costsurface.NewBuilder(costsurface.WithWorkers(0))
	require.Error(t, err)
}

func TestBuild_WorkersDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	g, _ := raster.NewGrid(41, 17, 30)
	slopes := make([]float64, g.Cells())
	codes := make([]int32, g.Cells())
	for i := range slopes {
		slopes[i] = rng.Float64() * 60
		codes[i] = []int32{21, 41, 90, 7}[rng.Intn(4)]
	}
	s, _ := raster.NewFloat(g, raster.DefaultNoData, slopes)
	lc, _ := raster.NewInt(g, 0, codes)

	one, _ := costsurface.NewBuilder(costsurface.WithWorkers(1))
	want, wantRep, err := one.Build(context.Background(), s, lc)
	require.NoError(t, err)
	for _, w := range []int{3, 16} {
		b, _ := costsurface.NewBuilder(costsurface.WithWorkers(w))
		got, rep, err := b.Build(context.Background(), s, lc)
		require.NoError(t, err)
		require.Equal(t, want.View(), got.View())
		require.Equal(t, wantRep, rep)
	}
}
