package fwconfig

import (
	"bytes"
	"errors"
	"testing"
)

var magicBytes = []byte{0x78, 0x56, 0x34, 0x12}

func TestLocate_NoMarker(t *testing.T) {
	buf := bytes.Repeat([]byte{0xAB}, 1024)

	_, err := Find(buf)
	if !errors.Is(err, ErrMarkerNotFound) {
		t.Fatalf("expected ErrMarkerNotFound, got %v", err)
	}
}

func TestLocate_EmptyBuffer(t *testing.T) {
	if _, err := Find(nil); !errors.Is(err, ErrMarkerNotFound) {
		t.Fatalf("expected ErrMarkerNotFound, got %v", err)
	}
}

func TestLocate_MarkerWithoutMagic(t *testing.T) {
	var buf []byte
	buf = append(buf, []byte("junk")...)
	buf = append(buf, DefaultMarker...)
	buf = append(buf, 0x00, 0x00, 0x00, 0x00)
	buf = append(buf, DefaultMarker...)
	buf = append(buf, 0x12, 0x34, 0x56, 0x78) // big-endian, wrong
	buf = append(buf, DefaultMarker...)
	buf = append(buf, 0x78, 0x56) // short tail

	_, err := Find(buf)
	if !errors.Is(err, ErrMarkerNotFound) {
		t.Fatalf("expected ErrMarkerNotFound, got %v", err)
	}

	var nf *MarkerNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected *MarkerNotFoundError, got %T", err)
	}
	if nf.Marker != DefaultMarker {
		t.Errorf("Marker: got %q, want %q", nf.Marker, DefaultMarker)
	}
	if nf.Magic != Magic {
		t.Errorf("Magic: got 0x%08x, want 0x%08x", nf.Magic, Magic)
	}
}

func TestLocate_MarkerAtEnd(t *testing.T) {
	buf := append([]byte("prefix"), DefaultMarker...)

	if _, err := Find(buf); !errors.Is(err, ErrMarkerNotFound) {
		t.Fatalf("expected ErrMarkerNotFound, got %v", err)
	}
}

func TestLocate_FirstOccurrence(t *testing.T) {
	buf := append([]byte("0123456789"), DefaultMarker...)
	buf = append(buf, magicBytes...)

	off, err := Find(buf)
	if err != nil {
		t.Fatalf("locate failed: %v", err)
	}
	if want := 10 + len(DefaultMarker); off != want {
		t.Errorf("offset: got %d, want %d", off, want)
	}
}

func TestLocate_SkipsBogusOccurrences(t *testing.T) {
	for k := 1; k <= 4; k++ {
		var buf []byte
		for i := 0; i < k; i++ {
			buf = append(buf, 0xEE)
			buf = append(buf, DefaultMarker...)
			buf = append(buf, 0x01, 0x02, 0x03, 0x04)
		}
		buf = append(buf, 0xEE)
		want := len(buf) + len(DefaultMarker)
		buf = append(buf, DefaultMarker...)
		buf = append(buf, magicBytes...)
		buf = append(buf, bytes.Repeat([]byte{0xFF}, 32)...)

		off, err := Find(buf)
		if err != nil {
			t.Fatalf("k=%d: locate failed: %v", k, err)
		}
		if off != want {
			t.Errorf("k=%d: offset got %d, want %d", k, off, want)
		}
	}
}

func TestLocate_OverlappingMarker(t *testing.T) {
	marker := []byte("AA")
	buf := []byte{'A', 'A', 'A', 0x78, 0x56, 0x34, 0x12}

	off, err := Locate(buf, marker, Magic)
	if err != nil {
		t.Fatalf("locate failed: %v", err)
	}
	if off != 3 {
		t.Errorf("offset: got %d, want 3", off)
	}
}

func TestLocate_CustomMagic(t *testing.T) {
	buf := append([]byte("CFG"), 0xEF, 0xBE, 0xAD, 0xDE)

	off, err := Locate(buf, []byte("CFG"), 0xDEADBEEF)
	if err != nil {
		t.Fatalf("locate failed: %v", err)
	}
	if off != 3 {
		t.Errorf("offset: got %d, want 3", off)
	}
}

func TestLocate_EmptyMarker(t *testing.T) {
	if _, err := Locate(magicBytes, nil, Magic); !errors.Is(err, ErrMarkerNotFound) {
		t.Fatalf("expected ErrMarkerNotFound, got %v", err)
	}
}
