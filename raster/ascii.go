package raster

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// asciiHeader is the parsed header of an ESRI ASCII grid.
type asciiHeader struct {
	ncols, nrows int
	xll, yll     float64
	center       bool // xllcenter/yllcenter instead of corners
	cellSize     float64
	noData       float64
	hasNoData    bool
}

func (h asciiHeader) grid() (Grid, error) {
	g := Grid{Rows: h.nrows, Cols: h.ncols, Resolution: h.cellSize}
	if err := g.Validate(); err != nil {
		return Grid{}, fmt.Errorf("%w: %w", ErrMalformedASCII, err)
	}
	x, y := h.xll, h.yll
	if h.center {
		x -= h.cellSize / 2
		y -= h.cellSize / 2
	}

	return g.WithOrigin(x, y+float64(h.nrows)*h.cellSize), nil
}

const (
	// maxASCIICells bounds the grid a header may declare.
	maxASCIICells = 1 << 28
	// asciiPrealloc caps the up-front allocation; the body grows it as read.
	asciiPrealloc = 1 << 20
)

// dimension converts an ncols/nrows header value to a positive cell count.
func dimension(key string, v float64) (int, error) {
	if v != math.Trunc(v) || v < 1 || v > maxASCIICells {
		return 0, fmt.Errorf("%w: %s %g is not a cell count", ErrMalformedASCII, key, v)
	}
	return int(v), nil
}

// readASCII parses header and body of an ESRI ASCII grid.
// Body values are returned row-major from the northern row down.
func readASCII(r io.Reader) (asciiHeader, []float64, error) {
	var h asciiHeader
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	sc.Split(bufio.ScanWords)

	var first string // first body token, consumed while looking for header keys
	seen := map[string]bool{}
	for sc.Scan() {
		key := strings.ToLower(sc.Text())
		switch key {
		case "ncols", "nrows", "xllcorner", "yllcorner", "xllcenter", "yllcenter", "cellsize", "nodata_value":
		default:
			first = sc.Text()
		}
		if first != "" {
			break
		}
		if !sc.Scan() {
			return h, nil, fmt.Errorf("%w: header %q has no value", ErrMalformedASCII, key)
		}
		v, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return h, nil, fmt.Errorf("%w: header %q: %v", ErrMalformedASCII, key, err)
		}
		seen[key] = true
		switch key {
		case "ncols":
			if h.ncols, err = dimension(key, v); err != nil {
				return h, nil, err
			}
		case "nrows":
			if h.nrows, err = dimension(key, v); err != nil {
				return h, nil, err
			}
		case "xllcorner":
			h.xll = v
		case "yllcorner":
			h.yll = v
		case "xllcenter":
			h.xll, h.center = v, true
		case "yllcenter":
			h.yll, h.center = v, true
		case "cellsize":
			h.cellSize = v
		case "nodata_value":
			h.noData, h.hasNoData = v, true
		}
	}
	if err := sc.Err(); err != nil {
		return h, nil, fmt.Errorf("%w: %v", ErrMalformedASCII, err)
	}
	for _, k := range []string{"ncols", "nrows", "cellsize"} {
		if !seen[k] {
			return h, nil, fmt.Errorf("%w: missing %s", ErrMalformedASCII, k)
		}
	}
	if h.ncols <= 0 || h.nrows <= 0 {
		return h, nil, fmt.Errorf("%w: %dx%d", ErrMalformedASCII, h.nrows, h.ncols)
	}

	n := h.ncols * h.nrows
	if n > maxASCIICells {
		return h, nil, fmt.Errorf("%w: %dx%d exceeds %d cells", ErrMalformedASCII, h.nrows, h.ncols, maxASCIICells)
	}
	data := make([]float64, 0, min(n, asciiPrealloc))
	parse := func(tok string) error {
		if len(data) == n {
			return fmt.Errorf("%w: more than %d values", ErrMalformedASCII, n)
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return fmt.Errorf("%w: value %d: %v", ErrMalformedASCII, len(data), err)
		}
		data = append(data, v)
		return nil
	}
	if first != "" {
		if err := parse(first); err != nil {
			return h, nil, err
		}
	}
	for sc.Scan() {
		if err := parse(sc.Text()); err != nil {
			return h, nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return h, nil, fmt.Errorf("%w: %v", ErrMalformedASCII, err)
	}
	if len(data) != n {
		return h, nil, fmt.Errorf("%w: got %d values, want %d", ErrMalformedASCII, len(data), n)
	}

	return h, data, nil
}

// ReadFloatASCII decodes an ESRI ASCII grid into a Float.
// A missing NODATA_value header defaults to DefaultNoData.
func ReadFloatASCII(r io.Reader) (*Float, error) {
	h, data, err := readASCII(r)
	if err != nil {
		return nil, err
	}
	g, err := h.grid()
	if err != nil {
		return nil, err
	}
	noData := DefaultNoData
	if h.hasNoData {
		noData = h.noData
	}

	return WrapFloat(g, noData, data)
}

// ReadIntASCII decodes an ESRI ASCII grid of class codes into an Int.
// Every value must be an integer within int32 range.
func ReadIntASCII(r io.Reader) (*Int, error) {
	h, data, err := readASCII(r)
	if err != nil {
		return nil, err
	}
	g, err := h.grid()
	if err != nil {
		return nil, err
	}
	noData := DefaultIntNoData
	if h.hasNoData {
		noData = int32(h.noData)
	}
	codes := make([]int32, len(data))
	for i, v := range data {
		if v != math.Trunc(v) || v < math.MinInt32 || v > math.MaxInt32 {
			return nil, fmt.Errorf("%w: value %d (%g) is not a class code", ErrMalformedASCII, i, v)
		}
		codes[i] = int32(v)
	}

	return &Int{grid: g, noData: noData, data: codes}, nil
}

// WriteFloatASCII encodes f as an ESRI ASCII grid. Values are written with the
// shortest representation that round-trips exactly.
func WriteFloatASCII(w io.Writer, f *Float) error {
	return writeASCII(w, f.grid, f.noData, func(buf []byte, i int) []byte {
		return strconv.AppendFloat(buf, f.data[i], 'g', -1, 64)
	})
}

// WriteIntASCII encodes r as an ESRI ASCII grid.
func WriteIntASCII(w io.Writer, r *Int) error {
	return writeASCII(w, r.grid, float64(r.noData), func(buf []byte, i int) []byte {
		return strconv.AppendInt(buf, int64(r.data[i]), 10)
	})
}

func writeASCII(w io.Writer, g Grid, noData float64, appendValue func([]byte, int) []byte) error {
	bw := bufio.NewWriter(w)
	yll := g.OriginY - float64(g.Rows)*g.Resolution
	fmt.Fprintf(bw, "ncols %d\n", g.Cols)
	fmt.Fprintf(bw, "nrows %d\n", g.Rows)
	fmt.Fprintf(bw, "xllcorner %s\n", strconv.FormatFloat(g.OriginX, 'g', -1, 64))
	fmt.Fprintf(bw, "yllcorner %s\n", strconv.FormatFloat(yll, 'g', -1, 64))
	fmt.Fprintf(bw, "cellsize %s\n", strconv.FormatFloat(g.Resolution, 'g', -1, 64))
	fmt.Fprintf(bw, "NODATA_value %s\n", strconv.FormatFloat(noData, 'g', -1, 64))

	buf := make([]byte, 0, 32)
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			buf = buf[:0]
			if col > 0 {
				buf = append(buf, ' ')
			}
			buf = appendValue(buf, g.Index(row, col))
			if _, err := bw.Write(buf); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}
