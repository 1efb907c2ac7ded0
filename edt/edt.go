package edt

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/remoteness/raster"
)

var (
	// ErrNoSources indicates a grid without any source cell.
	ErrNoSources = errors.New("edt: no source cell")
	// ErrSourceLength indicates a source slice that does not cover the grid.
	ErrSourceLength = errors.New("edt: sources length does not match grid size")
	// ErrBadWorkers indicates a non-positive worker count.
	ErrBadWorkers = errors.New("edt: workers must be positive")
)

// inf stands in for an infinite squared distance. It must stay finite so
// that the parabola intersections remain well defined.
const inf = 1e20

// Options configures Transform.
type Options struct {
	// Workers is the number of goroutines per pass. Output does not depend on it.
	Workers int
}

// Option represents a functional option for configuring Transform.
type Option func(*Options)

// WithWorkers sets the number of goroutines per pass.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// Transform returns the squared Euclidean distance, in cell units, from every
// cell of g to the nearest cell with sources[i] set. Source cells are 0.
func Transform(ctx context.Context, g raster.Grid, sources []bool, opts ...Option) ([]float64, error) {
	cfg := Options{Workers: 1}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Workers <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadWorkers, cfg.Workers)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if len(sources) != g.Cells() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSourceLength, len(sources), g.Cells())
	}

	out := make([]float64, g.Cells())
	seeded := false
	for i, s := range sources {
		if s {
			seeded = true
		} else {
			out[i] = inf
		}
	}
	if !seeded {
		return nil, ErrNoSources
	}

	// Columns: stride Cols, length Rows.
	err := parallel(ctx, g.Cols, cfg.Workers, g.Rows, func(col int, s *scratch) {
		s.load(out, col, g.Cols, g.Rows)
		dt1d(s)
		s.store(out, col, g.Cols, g.Rows)
	})
	if err != nil {
		return nil, err
	}
	// Rows: stride 1, length Cols.
	err = parallel(ctx, g.Rows, cfg.Workers, g.Cols, func(row int, s *scratch) {
		s.load(out, row*g.Cols, 1, g.Cols)
		dt1d(s)
		s.store(out, row*g.Cols, 1, g.Cols)
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// parallel runs fn for lines [0, lines) split in contiguous bands, one
// scratch buffer of length n per band. Lines are independent, so the result
// does not depend on the split.
func parallel(ctx context.Context, lines, workers, n int, fn func(line int, s *scratch)) error {
	if workers > lines {
		workers = lines
	}
	band := (lines + workers - 1) / workers
	g, ctx := errgroup.WithContext(ctx)
	for lo := 0; lo < lines; lo += band {
		lo, hi := lo, min(lo+band, lines)
		g.Go(func() error {
			s := newScratch(n)
			for line := lo; line < hi; line++ {
				if err := ctx.Err(); err != nil {
					return fmt.Errorf("edt: %w", err)
				}
				fn(line, s)
			}
			return nil
		})
	}

	return g.Wait()
}

// scratch holds the per-worker buffers of the 1D transform.
type scratch struct {
	f, d []float64 // input and output samples
	v    []int     // parabola vertices of the lower envelope
	z    []float64 // envelope boundaries
}

func newScratch(n int) *scratch {
	return &scratch{
		f: make([]float64, n),
		d: make([]float64, n),
		v: make([]int, n),
		z: make([]float64, n+1),
	}
}

func (s *scratch) load(data []float64, start, stride, n int) {
	for i := 0; i < n; i++ {
		s.f[i] = data[start+i*stride]
	}
}

func (s *scratch) store(data []float64, start, stride, n int) {
	for i := 0; i < n; i++ {
		data[start+i*stride] = s.d[i]
	}
}

// dt1d computes d[q] = min_p (q-p)² + f[p] over the whole line.
func dt1d(s *scratch) {
	f, d, v, z := s.f, s.d, s.v, s.z
	n := len(f)
	k := 0
	v[0] = 0
	z[0] = math.Inf(-1)
	z[1] = math.Inf(1)
	for q := 1; q < n; q++ {
		fq := f[q] + float64(q*q)
		sect := (fq - (f[v[k]] + float64(v[k]*v[k]))) / float64(2*q-2*v[k])
		for sect <= z[k] {
			k--
			sect = (fq - (f[v[k]] + float64(v[k]*v[k]))) / float64(2*q-2*v[k])
		}
		k++
		v[k] = q
		z[k] = sect
		z[k+1] = math.Inf(1)
	}
	k = 0
	for q := 0; q < n; q++ {
		for z[k+1] < float64(q) {
			k++
		}
		dq := float64(q - v[k])
		d[q] = dq*dq + f[v[k]]
	}
}
