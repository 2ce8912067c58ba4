package fwconfig

import (
	"bytes"
	"encoding/binary"
	"strings"
)

// Decode validates and decodes the record starting at offset in buf.
// Checks run in order: length, magic, version. No field is read before all
// of them pass.
func Decode(buf []byte, offset int) (*Record, error) {
	if offset < 0 || len(buf)-offset < RecordSize {
		have := 0
		if offset >= 0 && offset < len(buf) {
			have = len(buf) - offset
		}
		return nil, &TruncatedError{Offset: offset, Need: RecordSize, Have: have}
	}
	data := buf[offset : offset+RecordSize]

	magic := binary.LittleEndian.Uint32(data[offMagic:])
	version := binary.LittleEndian.Uint32(data[offVersion:])
	if magic != Magic {
		return nil, &MagicMismatchError{Expected: Magic, Actual: magic}
	}
	if version != Version {
		return nil, &UnsupportedVersionError{Expected: Version, Actual: version}
	}

	rec := &Record{
		Magic:        magic,
		Version:      version,
		WiFiSSID:     cString(data, offWiFiSSID, lenWiFiSSID),
		WiFiPassword: cString(data, offWiFiPassword, lenWiFiPassword),
		UDPPort:      binary.LittleEndian.Uint16(data[offUDPPort:]),
		MDNSHostname: cString(data, offMDNSHostname, lenMDNSHostname),
		LEDPin:       data[offLEDPin],
		MaxLEDs:      binary.LittleEndian.Uint16(data[offMaxLEDs:]),
		LEDOrder:     cString(data, offLEDOrder, lenLEDOrder),
		Effects: LEDEffects{
			RefreshRate:      data[offRefreshRate],
			BreathingEnabled: data[offBreathingEnabled] != 0,
			BreathingBase: RGBW{
				R: data[offBreathingBase],
				G: data[offBreathingBase+1],
				B: data[offBreathingBase+2],
				W: data[offBreathingBase+3],
			},
			BreathingMinBrightness: data[offBreathingMin],
			BreathingMaxBrightness: data[offBreathingMax],
			BreathingStepSize:      data[offBreathingStep],
			BreathingTimerPeriodMs: binary.LittleEndian.Uint16(data[offBreathingPeriod:]),
		},
	}
	return rec, nil
}

// cString reads a NUL-terminated string from the fixed window
// data[start:start+size]. Without a NUL the whole window is used.
// Invalid UTF-8 sequences are dropped.
func cString(data []byte, start, size int) string {
	window := data[start : start+size]
	if i := bytes.IndexByte(window, 0); i >= 0 {
		window = window[:i]
	}
	return strings.ToValidUTF8(string(window), "")
}
