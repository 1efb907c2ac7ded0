package raster_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/remoteness/raster"
)

const sampleASCII = `ncols 3
nrows 2
xllcorner 500
yllcorner 1000
cellsize 30
NODATA_value -9999
1 2.5 -9999
4 5 6
`

func TestReadFloatASCII(t *testing.T) {
	f, err := raster.ReadFloatASCII(strings.NewReader(sampleASCII))
	require.NoError(t, err)

	g := f.Grid()
	assert.Equal(t, 2, g.Rows)
	assert.Equal(t, 3, g.Cols)
	assert.Equal(t, 30.0, g.Resolution)
	assert.Equal(t, 500.0, g.OriginX)
	assert.Equal(t, 1060.0, g.OriginY)
	assert.Equal(t, 2.5, f.At(0, 1))
	assert.False(t, f.Valid(2))
	assert.Equal(t, 6.0, f.At(1, 2))
}

func TestReadFloatASCII_CenterHeader(t *testing.T) {
	in := "NCOLS 1\nNROWS 1\nXLLCENTER 15\nYLLCENTER 15\nCELLSIZE 30\n7\n"
	f, err := raster.ReadFloatASCII(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 0.0, f.Grid().OriginX)
	assert.Equal(t, 30.0, f.Grid().OriginY)
	assert.Equal(t, raster.DefaultNoData, f.NoData())
}

func TestReadFloatASCII_Malformed(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"MissingCellsize", "ncols 1\nnrows 1\n1\n"},
		{"ShortBody", "ncols 2\nnrows 1\ncellsize 1\n1\n"},
		{"LongBody", "ncols 1\nnrows 1\ncellsize 1\n1 2\n"},
		{"BadValue", "ncols 1\nnrows 1\ncellsize 1\nabc\n"},
		{"BadHeader", "ncols x\nnrows 1\ncellsize 1\n1\n"},
		{"Empty", ""},
		{"FractionalCols", "ncols 2.5\nnrows 1\ncellsize 1\n1 2\n"},
		{"FractionalRows", "ncols 2\nnrows 1.5\ncellsize 1\n1 2\n"},
		{"ZeroRows", "ncols 2\nnrows 0\ncellsize 1\n"},
		{"HugeDimension", "ncols 1e300\nnrows 1\ncellsize 1\n1\n"},
		{"HugeGrid", "ncols 100000\nnrows 100000\ncellsize 1\n1\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := raster.ReadFloatASCII(strings.NewReader(tc.in))
			require.ErrorIs(t, err, raster.ErrMalformedASCII)
		})
	}
}

func TestReadIntASCII(t *testing.T) {
	in := "ncols 2\nnrows 1\ncellsize 30\nNODATA_value 0\n41 0\n"
	r, err := raster.ReadIntASCII(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, int32(41), r.At(0, 0))
	assert.False(t, r.Valid(1))

	_, err = raster.ReadIntASCII(strings.NewReader("ncols 1\nnrows 1\ncellsize 1\n4.5\n"))
	require.ErrorIs(t, err, raster.ErrMalformedASCII)
}

func TestWriteFloatASCII_RoundTrip(t *testing.T) {
	orig, err := raster.ReadFloatASCII(strings.NewReader(sampleASCII))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, raster.WriteFloatASCII(&buf, orig))
	back, err := raster.ReadFloatASCII(&buf)
	require.NoError(t, err)

	require.NoError(t, orig.Grid().Aligned(back.Grid()))
	assert.Equal(t, orig.View(), back.View())
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	g, err := raster.NewGrid(2, 2, 30)
	require.NoError(t, err)
	g = g.WithOrigin(0, 60).WithCRS("+proj=utm +zone=10 +datum=WGS84")

	f, err := raster.NewFloat(g, raster.DefaultNoData, []float64{0.1, 1e-7, 12345.678, raster.DefaultNoData})
	require.NoError(t, err)
	path := filepath.Join(dir, "out", "slope.asc")
	require.NoError(t, raster.SaveFloat(path, f))

	_, err = os.Stat(raster.PrjPath(path))
	require.NoError(t, err)

	back, err := raster.LoadFloat(path)
	require.NoError(t, err)
	assert.Equal(t, g.CRS, back.Grid().CRS)
	assert.Equal(t, f.View(), back.View())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temporary files left behind")

	codes, err := raster.NewInt(g, 0, []int32{11, 41, 0, 90})
	require.NoError(t, err)
	lcPath := filepath.Join(dir, "lc.asc")
	require.NoError(t, raster.SaveInt(lcPath, codes))
	lc, err := raster.LoadInt(lcPath)
	require.NoError(t, err)
	assert.Equal(t, codes.View(), lc.View())

	m, err := raster.LoadMask(lcPath)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Count())
}
