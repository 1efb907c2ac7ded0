package field

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/remoteness/raster"
)

var (
	// ErrNoSourceCells indicates that no usable source cell exists.
	ErrNoSourceCells = errors.New("field: no source cells")
	// ErrCancelled indicates the solve was interrupted by its context.
	ErrCancelled = errors.New("field: solve cancelled")
	// ErrMissingCost indicates a cost-weighted solver without a cost raster.
	ErrMissingCost = errors.New("field: cost raster required for cost-weighted mode")
)

// IsCancelled reports whether err came from an interrupted solve.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// Mode names a solving strategy.
type Mode string

const (
	ModeEuclidean    Mode = "euclidean"
	ModeCostWeighted Mode = "cost_weighted"
)

// Unit returns the unit of the values a Mode produces.
func (m Mode) Unit() string {
	if m == ModeCostWeighted {
		return "effective_m"
	}
	return "m"
}

// ParseMode accepts "euclidean" or "cost_weighted".
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeEuclidean, ModeCostWeighted:
		return Mode(s), nil
	}
	return "", fmt.Errorf("field: unknown mode %q", s)
}

// Field is an accumulated-distance raster plus solve metadata.
type Field struct {
	Raster    *raster.Float
	Mode      Mode
	Unit      string
	Unreached int // valid cells left without a value
	Isolated  int // passable regions containing no source (cost mode)
	Settled   int // cells given a value
}

// Solver computes a Field from source cells, restricted to validity.
// A nil validity mask keeps every cell. Implementations live in this package.
type Solver interface {
	Solve(ctx context.Context, sources, validity *raster.Mask) (*Field, error)
	Mode() Mode
	sealed()
}

// Options configures both solvers.
type Options struct {
	Workers       int
	CheckInterval int
	Logger        *zap.Logger
}

// Option represents a functional option for configuring a Solver.
type Option func(*Options)

// WithWorkers sets the EDT worker count.
func WithWorkers(n int) Option { return func(o *Options) { o.Workers = n } }

// WithCheckInterval sets how many Dijkstra pops happen between context checks.
func WithCheckInterval(n int) Option { return func(o *Options) { o.CheckInterval = n } }

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *zap.Logger) Option { return func(o *Options) { o.Logger = l } }

func buildOptions(opts []Option) Options {
	cfg := Options{Workers: 1, CheckInterval: 1024, Logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return cfg
}

// checkInputs verifies alignment and returns a full validity mask when nil.
func checkInputs(sources, validity *raster.Mask, extra ...raster.Grid) (*raster.Mask, error) {
	grids := append([]raster.Grid{sources.Grid()}, extra...)
	if validity != nil {
		grids = append(grids, validity.Grid())
	}
	if err := raster.RequireAligned(grids...); err != nil {
		return nil, err
	}
	if sources.Count() == 0 {
		return nil, ErrNoSourceCells
	}
	if validity == nil {
		return raster.FullMask(sources.Grid())
	}
	return validity, nil
}

// enclosed reports whether no 8-neighbour of cell i lies inside validity.
// A non-source cell cut off like this keeps no value in either mode.
func enclosed(validity *raster.Mask, i int) bool {
	g := validity.Grid()
	row, col := g.Coordinate(i)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 || !g.InBounds(row+dr, col+dc) {
				continue
			}
			if validity.At(row+dr, col+dc) {
				return false
			}
		}
	}
	return true
}

// cancelled maps context errors to ErrCancelled and leaves others untouched.
func cancelled(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	}
	return err
}

// New returns the solver for mode. cost is ignored in Euclidean mode.
func New(mode Mode, cost *raster.Float, opts ...Option) (Solver, error) {
	switch mode {
	case ModeEuclidean:
		return NewEuclidean(opts...), nil
	case ModeCostWeighted:
		return NewCostWeighted(cost, opts...)
	}
	return nil, fmt.Errorf("field: unknown mode %q", mode)
}
