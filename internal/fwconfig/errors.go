package fwconfig

import (
	"errors"
	"fmt"
)

// ErrMarkerNotFound is matched by errors.Is for any *MarkerNotFoundError.
var ErrMarkerNotFound = errors.New("configuration marker not found")

// MarkerNotFoundError indicates that no occurrence of the marker was followed
// by the expected magic value.
type MarkerNotFoundError struct {
	Marker string
	Magic  uint32
}

func (e *MarkerNotFoundError) Error() string {
	return fmt.Sprintf("configuration marker %q followed by magic 0x%08x not found", e.Marker, e.Magic)
}

// Is reports whether target is ErrMarkerNotFound.
func (e *MarkerNotFoundError) Is(target error) bool {
	return target == ErrMarkerNotFound
}

// TruncatedError indicates the buffer ends before a full record.
type TruncatedError struct {
	Offset int
	Need   int
	Have   int
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("image too small for configuration record at offset 0x%08x: need %d bytes, have %d",
		e.Offset, e.Need, e.Have)
}

// MagicMismatchError indicates the record does not start with the magic value.
type MagicMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *MagicMismatchError) Error() string {
	return fmt.Sprintf("magic mismatch: got 0x%08x, expected 0x%08x", e.Actual, e.Expected)
}

// UnsupportedVersionError indicates a record version this package cannot decode.
type UnsupportedVersionError struct {
	Expected uint32
	Actual   uint32
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported configuration version %d (expected %d)", e.Actual, e.Expected)
}
