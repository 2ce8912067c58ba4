// Package image reads firmware images into memory.
package image

import (
	"encoding/hex"
	"fmt"
	"os"

	"golang.org/x/crypto/blake2b"
)

// Image is a firmware file held entirely in memory.
type Image struct {
	Path        string
	Data        []byte
	Size        int64
	Fingerprint string // hex BLAKE2b-256 of Data
}

// TooLargeError indicates a file larger than the permitted read size.
type TooLargeError struct {
	Path  string
	Size  int64
	Limit uint64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("firmware %s is %d bytes, exceeds limit of %d bytes (set [inspect] max_image_size = \"0\" to lift the configured cap)",
		e.Path, e.Size, e.Limit)
}

// Load reads the whole file at path. A limit of zero disables the size check.
// Open failures wrap the underlying *fs.PathError, so errors.Is(err,
// fs.ErrNotExist) identifies a missing file.
func Load(path string, limit uint64) (*Image, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading firmware %s: %w", path, err)
	}
	if st.IsDir() {
		return nil, fmt.Errorf("reading firmware %s: is a directory", path)
	}
	if limit > 0 && uint64(st.Size()) > limit {
		return nil, &TooLargeError{Path: path, Size: st.Size(), Limit: limit}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading firmware %s: %w", path, err)
	}

	sum := blake2b.Sum256(data)
	return &Image{
		Path:        path,
		Data:        data,
		Size:        int64(len(data)),
		Fingerprint: hex.EncodeToString(sum[:]),
	}, nil
}

// Limit returns the effective read limit: the smaller non-zero value of the
// configured maximum and the memory currently available.
func Limit(configured, available uint64) uint64 {
	switch {
	case configured == 0:
		return available
	case available == 0:
		return configured
	case available < configured:
		return available
	default:
		return configured
	}
}
