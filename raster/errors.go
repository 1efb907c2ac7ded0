package raster

import "errors"

var (
	// ErrEmptyGrid indicates a grid with no rows or no columns.
	ErrEmptyGrid = errors.New("raster: grid must have at least one row and one column")
	// ErrBadResolution indicates a non-positive or non-finite cell size.
	ErrBadResolution = errors.New("raster: resolution must be a positive finite number")
	// ErrDataLength indicates the backing slice does not match Rows×Cols.
	ErrDataLength = errors.New("raster: data length does not match grid size")
	// ErrInputMismatch indicates rasters whose shape, resolution, origin or CRS differ.
	ErrInputMismatch = errors.New("raster: grid shape or georeference mismatch")
	// ErrMalformedASCII indicates an unreadable ESRI ASCII grid.
	ErrMalformedASCII = errors.New("raster: malformed ESRI ASCII grid")
)
