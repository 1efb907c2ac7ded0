package dijkstra

import "errors"

// Sentinel errors returned by the Dijkstra implementation.
var (
	// ErrNilGraph indicates that a nil *gridgraph.GridGraph was passed to Dijkstra.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrNoSources indicates that no passable seed cell was provided.
	ErrNoSources = errors.New("dijkstra: no passable source cell")

	// ErrSourceRange indicates a seed index outside the grid.
	ErrSourceRange = errors.New("dijkstra: source index out of range")

	// ErrBadCost indicates a passable cell whose cost is not a positive finite number.
	ErrBadCost = errors.New("dijkstra: cost must be positive and finite on passable cells")

	// ErrBadCheckInterval indicates a non-positive cancellation check interval.
	ErrBadCheckInterval = errors.New("dijkstra: CheckInterval must be positive")
)

// DefaultCheckInterval is the number of heap pops between context checks.
const DefaultCheckInterval = 1024

// Options configures the behavior of the Dijkstra algorithm.
//
// Sources       – seed cells, row-major indices; impassable seeds are skipped.
// CheckInterval – heap pops between ctx.Err() checks. Default is DefaultCheckInterval.
type Options struct {
	Sources       []int
	CheckInterval int
}

// Option represents a functional option for configuring Dijkstra.
type Option func(*Options)

// Sources appends seed cells given as row-major indices.
func Sources(idx ...int) Option {
	return func(o *Options) {
		o.Sources = append(o.Sources, idx...)
	}
}

// WithCheckInterval sets how many heap pops happen between context checks.
func WithCheckInterval(n int) Option {
	return func(o *Options) {
		o.CheckInterval = n
	}
}

// DefaultOptions returns an Options struct initialized with defaults:
//   - Sources:       none.
//   - CheckInterval: DefaultCheckInterval.
func DefaultOptions() Options {
	return Options{CheckInterval: DefaultCheckInterval}
}

func (o Options) validate() error {
	if o.CheckInterval <= 0 {
		return ErrBadCheckInterval
	}
	return nil
}

// Result holds the output of one solve.
//
// Dist    – accumulated cost per cell; +Inf for cells never reached.
// Settled – number of cells whose distance was finalized.
// Pushes  – number of heap insertions, including stale entries.
// Seeded  – number of passable seed cells.
type Result struct {
	Dist    []float64
	Settled int
	Pushes  int
	Seeded  int
}
