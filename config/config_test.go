package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/remoteness/config"
	"github.com/katalvlaran/remoteness/costsurface"
	"github.com/katalvlaran/remoteness/field"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, field.ModeCostWeighted, cfg.FieldMode())
	assert.Equal(t, costsurface.DefaultWeights(), cfg.Weights())
	assert.Equal(t, 5, cfg.Analysis.TopN)
	assert.Equal(t, 25000.0, cfg.Analysis.MinSeparationM)
	assert.Equal(t, []int32{11, 12}, cfg.Analysis.ExcludeLandCover)

	b, err := cfg.Builder(nil)
	require.NoError(t, err)
	cost, ok := b.CellCost(45, costsurface.NLCDDevelopedOpen)
	require.True(t, ok)
	assert.InDelta(t, 5.0, cost, 1e-12)
}

func TestParseOverlaysDefaults(t *testing.T) {
	doc := `
mode: euclidean
cost:
  max_slope_cost: 20
  landcover_factors:
    71: 3.5
analysis:
  top_n: 3
runtime:
  workers: 2
`
	cfg, err := config.Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, field.ModeEuclidean, cfg.FieldMode())
	assert.Equal(t, 20.0, cfg.Cost.MaxSlopeCost)
	assert.Equal(t, 3.5, cfg.Cost.LandCoverFactors[71])
	assert.Equal(t, 10.0, cfg.Cost.LandCoverFactors[11], "unlisted factors keep their default")
	assert.Equal(t, 3, cfg.Analysis.TopN)
	assert.Equal(t, 25000.0, cfg.Analysis.MinSeparationM)
	assert.Equal(t, 2, cfg.Workers())
	assert.Len(t, cfg.Cost.SlopeAnchors, 6)
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := config.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestParseRejects(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"unknown key", "colour: blue\n"},
		{"bad mode", "mode: teleport\n"},
		{"top_n zero", "analysis:\n  top_n: 0\n"},
		{"negative separation", "analysis:\n  min_separation_m: -1\n"},
		{"max slope cost below one", "cost:\n  max_slope_cost: 0.5\n"},
		{"bad policy", "cost:\n  unknown_landcover: ignore\n"},
		{"non-positive factor", "cost:\n  landcover_factors:\n    42: 0\n"},
		{"non-monotone anchors", "cost:\n  slope_anchors:\n    - {degrees: 10, factor: 2}\n    - {degrees: 5, factor: 3}\n"},
		{"empty anchors", "cost:\n  slope_anchors: []\n"},
		{"cache without dir", "cache:\n  enabled: true\n  dir: \"\"\n"},
		{"negative workers", "runtime:\n  workers: -1\n"},
		{"not yaml", "mode: [\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tc.doc))
			assert.ErrorIs(t, err, config.ErrInvalid)
		})
	}
}

func TestCacheInMemoryNeedsNoDir(t *testing.T) {
	_, err := config.Parse([]byte("cache:\n  enabled: true\n  in_memory: true\n  dir: \"\"\n"))
	assert.NoError(t, err)
}

func TestLoadAndMarshal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "remoteness.yaml")
	b, err := config.Default().Marshal()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
