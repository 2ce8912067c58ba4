package fwconfig

import (
	"bytes"
	"encoding/binary"
)

// Find locates the record using DefaultMarker and Magic.
func Find(buf []byte) (int, error) {
	return Locate(buf, []byte(DefaultMarker), Magic)
}

// Locate returns the offset of the configuration record: the end of the
// first occurrence of marker that is immediately followed by magic encoded
// as a little-endian uint32. Every occurrence is tried, including
// overlapping ones.
func Locate(buf, marker []byte, magic uint32) (int, error) {
	notFound := &MarkerNotFoundError{Marker: string(marker), Magic: magic}
	if len(marker) == 0 {
		return 0, notFound
	}

	pos := 0
	for pos < len(buf) {
		i := bytes.Index(buf[pos:], marker)
		if i < 0 {
			break
		}
		match := pos + i
		candidate := match + len(marker)
		if candidate+4 <= len(buf) && binary.LittleEndian.Uint32(buf[candidate:]) == magic {
			return candidate, nil
		}
		pos = match + 1
	}
	return 0, notFound
}
