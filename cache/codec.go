package cache

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/katalvlaran/remoteness/raster"
)

// ErrCorrupt indicates a cached blob that does not decode.
var ErrCorrupt = errors.New("cache: corrupt entry")

var magic = [4]byte{'R', 'M', 'T', '1'}

// header is the fixed-size prefix of an encoded raster.
type header struct {
	Magic      [4]byte
	Rows, Cols int64
	Resolution float64
	OriginX    float64
	OriginY    float64
	NoData     float64
	CRSLen     uint32
}

func encodeFloat(r *raster.Float) []byte {
	g := r.Grid()
	var buf bytes.Buffer
	buf.Grow(64 + len(g.CRS) + 8*g.Cells())
	h := header{
		Magic: magic, Rows: int64(g.Rows), Cols: int64(g.Cols),
		Resolution: g.Resolution, OriginX: g.OriginX, OriginY: g.OriginY,
		NoData: r.NoData(), CRSLen: uint32(len(g.CRS)),
	}
	binary.Write(&buf, binary.LittleEndian, h)
	buf.WriteString(g.CRS)
	var b [8]byte
	for _, v := range r.View() {
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
		buf.Write(b[:])
	}
	return buf.Bytes()
}

func decodeFloat(p []byte) (*raster.Float, error) {
	rd := bytes.NewReader(p)
	var h header
	if err := binary.Read(rd, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrCorrupt, err)
	}
	if h.Magic != magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrCorrupt, h.Magic[:])
	}
	crs := make([]byte, h.CRSLen)
	if _, err := io.ReadFull(rd, crs); err != nil {
		return nil, fmt.Errorf("%w: crs: %v", ErrCorrupt, err)
	}
	g := raster.Grid{
		Rows: int(h.Rows), Cols: int(h.Cols), Resolution: h.Resolution,
		OriginX: h.OriginX, OriginY: h.OriginY, CRS: string(crs),
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if rd.Len() != 8*g.Cells() {
		return nil, fmt.Errorf("%w: %d payload bytes for %d cells", ErrCorrupt, rd.Len(), g.Cells())
	}
	data := make([]float64, g.Cells())
	rest := p[len(p)-rd.Len():]
	for i := range data {
		data[i] = math.Float64frombits(binary.LittleEndian.Uint64(rest[8*i:]))
	}
	return raster.WrapFloat(g, h.NoData, data)
}
