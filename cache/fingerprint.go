package cache

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/mitchellh/hashstructure/v2"

	"github.com/katalvlaran/remoteness/raster"
)

// Key addresses one cached artefact: "<kind>/<hex digest>".
type Key string

// NewKey combines fingerprints into a key for kind. Order matters.
func NewKey(kind string, parts ...uint64) Key {
	d := xxhash.New()
	var buf [8]byte
	for _, p := range parts {
		binary.LittleEndian.PutUint64(buf[:], p)
		d.Write(buf[:])
	}
	return Key(kind + "/" + strconv.FormatUint(d.Sum64(), 16))
}

type digest struct {
	*xxhash.Digest
	buf [8]byte
}

func newDigest(g raster.Grid) *digest {
	d := &digest{Digest: xxhash.New()}
	d.putInt(g.Rows)
	d.putInt(g.Cols)
	d.putFloat(g.Resolution)
	d.putFloat(g.OriginX)
	d.putFloat(g.OriginY)
	d.WriteString(g.CRS)
	return d
}

func (d *digest) putInt(v int) {
	binary.LittleEndian.PutUint64(d.buf[:], uint64(v))
	d.Write(d.buf[:])
}

func (d *digest) putFloat(v float64) {
	binary.LittleEndian.PutUint64(d.buf[:], math.Float64bits(v))
	d.Write(d.buf[:])
}

// FingerprintFloat hashes the grid, no-data sentinel and every value of r.
func FingerprintFloat(r *raster.Float) uint64 {
	d := newDigest(r.Grid())
	d.putFloat(r.NoData())
	for _, v := range r.View() {
		d.putFloat(v)
	}
	return d.Sum64()
}

// FingerprintInt hashes the grid, no-data code and every code of r.
func FingerprintInt(r *raster.Int) uint64 {
	d := newDigest(r.Grid())
	d.putInt(int(r.NoData()))
	var b [4]byte
	for _, v := range r.View() {
		binary.LittleEndian.PutUint32(b[:], uint32(v))
		d.Write(b[:])
	}
	return d.Sum64()
}

// FingerprintMask hashes the grid and the set cells of m.
func FingerprintMask(m *raster.Mask) uint64 {
	d := newDigest(m.Grid())
	bits := m.View()
	packed := make([]byte, (len(bits)+7)/8)
	for i, b := range bits {
		if b {
			packed[i/8] |= 1 << (i % 8)
		}
	}
	d.Write(packed)
	return d.Sum64()
}

// FingerprintConfig hashes any configuration value. Fields tagged
// `hash:"ignore"` do not contribute.
func FingerprintConfig(v any) (uint64, error) {
	h, err := hashstructure.Hash(v, hashstructure.FormatV2, nil)
	if err != nil {
		return 0, fmt.Errorf("cache: fingerprint config: %w", err)
	}
	return h, nil
}
