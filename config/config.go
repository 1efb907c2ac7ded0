// Package config loads and validates the YAML document that drives a
// remoteness run. Default reproduces every built-in default, and a file only
// needs the keys it changes.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/remoteness/analysis"
	"github.com/katalvlaran/remoteness/costsurface"
	"github.com/katalvlaran/remoteness/field"
	"github.com/katalvlaran/remoteness/internal/tile"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the root document.
type Config struct {
	Mode     string         `yaml:"mode" validate:"oneof=euclidean cost_weighted"`
	Grid     GridConfig     `yaml:"grid"`
	Cost     CostConfig     `yaml:"cost"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Runtime  RuntimeConfig  `yaml:"runtime" hash:"ignore"`
	Cache    CacheConfig    `yaml:"cache" hash:"ignore"`
}

// GridConfig pins the expected geometry. Zero values accept whatever the
// input rasters carry.
type GridConfig struct {
	ResolutionM float64 `yaml:"resolution_m" validate:"gte=0"`
	CRS         string  `yaml:"crs"`
}

// CostConfig parameterizes the cost surface.
type CostConfig struct {
	SlopeAnchors       []costsurface.Anchor `yaml:"slope_anchors" validate:"required,min=1,dive"`
	BeyondPerDegree    float64              `yaml:"beyond_per_degree" validate:"gte=0"`
	BaseDistanceWeight float64              `yaml:"base_distance_weight" validate:"gte=0"`
	SlopeWeight        float64              `yaml:"slope_weight" validate:"gte=0"`
	LandCoverWeight    float64              `yaml:"landcover_weight" validate:"gte=0"`
	MaxSlopeCost       float64              `yaml:"max_slope_cost" validate:"gte=1"`
	LandCoverFactors   map[int32]float64    `yaml:"landcover_factors" validate:"dive,gt=0"`
	UnknownLandCover   string               `yaml:"unknown_landcover" validate:"oneof=neutral fail"`
}

// AnalysisConfig parameterizes point extraction.
type AnalysisConfig struct {
	TopN             int     `yaml:"top_n" validate:"min=1"`
	MinSeparationM   float64 `yaml:"min_separation_m" validate:"gte=0"`
	ExcludeLandCover []int32 `yaml:"exclude_landcover"`
}

// RuntimeConfig controls parallelism. Zero workers means GOMAXPROCS.
type RuntimeConfig struct {
	Workers int `yaml:"workers" validate:"gte=0"`
}

// CacheConfig locates the derived-raster cache.
type CacheConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Dir      string `yaml:"dir" validate:"required_if=Enabled true InMemory false"`
	InMemory bool   `yaml:"in_memory"`
}

// Default returns the built-in configuration.
func Default() Config {
	w := costsurface.DefaultWeights()
	return Config{
		Mode: string(field.ModeCostWeighted),
		Cost: CostConfig{
			SlopeAnchors:       costsurface.DefaultAnchors(),
			BeyondPerDegree:    costsurface.DefaultBeyondPerDegree,
			BaseDistanceWeight: w.Base,
			SlopeWeight:        w.Slope,
			LandCoverWeight:    w.LandCover,
			MaxSlopeCost:       w.MaxSlopeCost,
			LandCoverFactors:   costsurface.DefaultNLCDFactors(),
			UnknownLandCover:   costsurface.PolicyNeutral.String(),
		},
		Analysis: AnalysisConfig{
			TopN:             analysis.DefaultTopN,
			MinSeparationM:   analysis.DefaultMinSeparation,
			ExcludeLandCover: analysis.DefaultExcludedLandCover(),
		},
		Cache: CacheConfig{Dir: ".remoteness-cache"},
	}
}

// Load reads path over Default and validates the result.
// Unknown keys are rejected.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return Parse(b)
}

// Parse decodes a YAML document over Default and validates it.
func Parse(b []byte) (Config, error) {
	cfg := Default()
	// maps merge into their defaults while sequences replace them
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal renders c as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs the struct tag rules followed by the semantic checks that
// tags cannot express.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = fmt.Sprintf("%s fails %q", fe.Namespace(), fe.Tag())
			}
			return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := c.Curve(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := costsurface.NewLandCoverTable(c.Cost.LandCoverFactors); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// FieldMode returns the configured solver mode.
func (c Config) FieldMode() field.Mode { return field.Mode(c.Mode) }

// Workers resolves the runtime worker count.
func (c Config) Workers() int {
	if c.Runtime.Workers > 0 {
		return c.Runtime.Workers
	}
	return tile.DefaultWorkers()
}

// Curve builds the slope curve.
func (c Config) Curve() (costsurface.SlopeCurve, error) {
	return costsurface.NewSlopeCurve(c.Cost.SlopeAnchors, c.Cost.BeyondPerDegree)
}

// Weights returns the cost composition weights.
func (c Config) Weights() costsurface.Weights {
	return costsurface.Weights{
		Base:         c.Cost.BaseDistanceWeight,
		Slope:        c.Cost.SlopeWeight,
		LandCover:    c.Cost.LandCoverWeight,
		MaxSlopeCost: c.Cost.MaxSlopeCost,
	}
}

// Builder returns a cost-surface builder configured from c.
func (c Config) Builder(log *zap.Logger) (*costsurface.Builder, error) {
	curve, err := c.Curve()
	if err != nil {
		return nil, err
	}
	table, err := costsurface.NewLandCoverTable(c.Cost.LandCoverFactors)
	if err != nil {
		return nil, err
	}
	policy, err := costsurface.ParseUnknownPolicy(c.Cost.UnknownLandCover)
	if err != nil {
		return nil, err
	}
	return costsurface.NewBuilder(
		costsurface.WithCurve(curve),
		costsurface.WithTable(table),
		costsurface.WithWeights(c.Weights()),
		costsurface.WithUnknownPolicy(policy),
		costsurface.WithWorkers(c.Workers()),
		costsurface.WithLogger(log),
	)
}

// FieldOptions returns the solver options for c.
func (c Config) FieldOptions(log *zap.Logger) []field.Option {
	return []field.Option{field.WithWorkers(c.Workers()), field.WithLogger(log)}
}

// AnalysisOptions returns the extraction options for c. The projector is
// left to the caller since it depends on the input CRS.
func (c Config) AnalysisOptions(log *zap.Logger) []analysis.Option {
	return []analysis.Option{
		analysis.WithTopN(c.Analysis.TopN),
		analysis.WithMinSeparation(c.Analysis.MinSeparationM),
		analysis.WithLogger(log),
	}
}
