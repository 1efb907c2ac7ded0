package raster

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// PrjPath returns the sidecar path holding the CRS of the raster at path.
func PrjPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".prj"
}

// LoadFloat reads an ESRI ASCII grid and its optional .prj sidecar.
func LoadFloat(path string) (*Float, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := ReadFloatASCII(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	crs, err := readPrj(path)
	if err != nil {
		return nil, err
	}
	r.grid = r.grid.WithCRS(crs)

	return r, nil
}

// LoadInt reads a class-code ESRI ASCII grid and its optional .prj sidecar.
func LoadInt(path string) (*Int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := ReadIntASCII(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	crs, err := readPrj(path)
	if err != nil {
		return nil, err
	}
	r.grid = r.grid.WithCRS(crs)

	return r, nil
}

// LoadMask reads a grid and sets every valid non-zero cell.
func LoadMask(path string) (*Mask, error) {
	f, err := LoadFloat(path)
	if err != nil {
		return nil, err
	}
	return MaskFromFloat(f, nil), nil
}

// SaveFloat writes f to path atomically, plus a .prj sidecar when the grid
// carries a CRS.
func SaveFloat(path string, f *Float) error {
	var buf bytes.Buffer
	if err := WriteFloatASCII(&buf, f); err != nil {
		return err
	}
	return save(path, f.grid.CRS, &buf)
}

// SaveInt writes r to path atomically, plus a .prj sidecar when the grid
// carries a CRS.
func SaveInt(path string, r *Int) error {
	var buf bytes.Buffer
	if err := WriteIntASCII(&buf, r); err != nil {
		return err
	}
	return save(path, r.grid.CRS, &buf)
}

func save(path, crs string, body io.Reader) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := writeAtomic(path, body); err != nil {
		return err
	}
	if crs == "" {
		return nil
	}
	return writeAtomic(PrjPath(path), strings.NewReader(crs+"\n"))
}

// writeAtomic writes to a uniquely named sibling and renames it into place,
// so readers never observe a partial file.
func writeAtomic(path string, body io.Reader) error {
	tmp := path + "." + uuid.NewString() + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err = io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err = f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err = os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}

	return nil
}

func readPrj(path string) (string, error) {
	b, err := os.ReadFile(PrjPath(path))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
