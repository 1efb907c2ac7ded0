// Package raster holds the single-band grid model shared by every stage of the
// unreachability pipeline.
//
// What:
//
//   - Grid describes shape, resolution, top-left origin and CRS of a raster.
//   - Float, Int and Mask are immutable single-band rasters over a Grid,
//     stored row-major in a flat slice (index = row*Cols + col).
//   - ESRI ASCII grid (.asc) read/write with a .prj sidecar carrying the CRS.
//
// Why:
//
//   - Elevation, land cover, source and validity masks must be pre-aligned;
//     Grid.Aligned fails fast with ErrInputMismatch instead of resampling.
//   - Rasters are handed from stage to stage and never mutated afterwards, so
//     constructors copy caller data and accessors only read.
//
// Complexity:
//
//   - NewFloat/NewInt/NewMask: O(R×C) time and memory (defensive copy).
//   - At/AtIndex/Valid:        O(1).
//   - ReadASCII/WriteASCII:    O(R×C).
//
// Errors:
//
//   - ErrEmptyGrid:       rows or cols is zero or negative.
//   - ErrBadResolution:   resolution is not a positive finite number.
//   - ErrDataLength:      backing slice length differs from Rows×Cols.
//   - ErrInputMismatch:   two rasters are not on the same grid.
//   - ErrMalformedASCII:  an ASCII grid header or body could not be parsed.
package raster
