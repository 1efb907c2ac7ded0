// Package tile splits per-row raster work into contiguous bands run on an
// errgroup.
package tile

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ErrBadWorkers indicates a non-positive worker count.
var ErrBadWorkers = errors.New("tile: workers must be positive")

// DefaultWorkers returns GOMAXPROCS, the worker count used when none is configured.
func DefaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// Band is a half-open row range [Lo, Hi) with its position among all bands.
type Band struct {
	Index  int
	Lo, Hi int
}

// Split divides rows into at most workers contiguous bands of near-equal size.
func Split(rows, workers int) []Band {
	if workers > rows {
		workers = rows
	}
	if workers < 1 {
		workers = 1
	}
	size := (rows + workers - 1) / workers
	bands := make([]Band, 0, workers)
	for lo := 0; lo < rows; lo += size {
		bands = append(bands, Band{Index: len(bands), Lo: lo, Hi: min(lo+size, rows)})
	}
	return bands
}

// Rows runs fn once per band concurrently and returns the first error.
// fn must check ctx between rows; the bands written by fn must not overlap.
func Rows(ctx context.Context, rows, workers int, fn func(ctx context.Context, b Band) error) error {
	if workers <= 0 {
		return fmt.Errorf("%w: %d", ErrBadWorkers, workers)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, b := range Split(rows, workers) {
		g.Go(func() error { return fn(gctx, b) })
	}

	return g.Wait()
}
