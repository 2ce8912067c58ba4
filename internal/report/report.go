// Package report renders inspection results for humans and scripts.
package report

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"fwcfg/internal/fwconfig"
	"fwcfg/internal/lint"
)

const maskedSecret = "********"

// Report is a successful inspection of one firmware image.
type Report struct {
	Path     string           `json:"path" yaml:"path"`
	Size     int64            `json:"size" yaml:"size"`
	Offset   int              `json:"offset" yaml:"offset"`
	Head     []byte           `json:"-" yaml:"-"`
	Record   *fwconfig.Record `json:"record" yaml:"record"`
	Warnings []lint.Warning   `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Options control rendering.
type Options struct {
	Format      string // text, json or yaml
	MaskSecrets bool
}

// Write renders r to w in the requested format.
func Write(w io.Writer, r *Report, opts Options) error {
	if opts.MaskSecrets && r.Record != nil && r.Record.WiFiPassword != "" {
		masked := *r
		rec := *r.Record
		rec.WiFiPassword = maskedSecret
		masked.Record = &rec
		r = &masked
	}

	switch opts.Format {
	case "", "text":
		return writeText(w, r)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown report format %q", opts.Format)
	}
}

func writeText(w io.Writer, r *Report) error {
	rec := r.Record
	fx := rec.Effects
	b := &strings.Builder{}

	fmt.Fprintf(b, "Firmware file:   %s\n", r.Path)
	fmt.Fprintf(b, "File size:       %d bytes\n", r.Size)
	fmt.Fprintf(b, "Config offset:   0x%08x\n", r.Offset)
	if len(r.Head) > 0 {
		fmt.Fprintf(b, "Record head:     %s\n", hex.EncodeToString(r.Head))
	}

	fmt.Fprintf(b, "\n=== Firmware Configuration ===\n")
	fmt.Fprintf(b, "  %-18s 0x%08x\n", "Magic:", rec.Magic)
	fmt.Fprintf(b, "  %-18s 0x%08x\n", "Version:", rec.Version)
	fmt.Fprintf(b, "  %-18s '%s'\n", "WiFi SSID:", rec.WiFiSSID)
	fmt.Fprintf(b, "  %-18s '%s'\n", "WiFi password:", rec.WiFiPassword)
	fmt.Fprintf(b, "  %-18s %d\n", "UDP port:", rec.UDPPort)
	fmt.Fprintf(b, "  %-18s '%s'\n", "mDNS hostname:", rec.MDNSHostname)
	fmt.Fprintf(b, "  %-18s %d\n", "LED pin:", rec.LEDPin)
	fmt.Fprintf(b, "  %-18s %d\n", "Max LEDs:", rec.MaxLEDs)
	fmt.Fprintf(b, "  %-18s '%s'\n", "LED order:", rec.LEDOrder)

	fmt.Fprintf(b, "\n=== LED Effects ===\n")
	fmt.Fprintf(b, "  %-18s %d fps\n", "Refresh rate:", fx.RefreshRate)
	fmt.Fprintf(b, "  %-18s %s\n", "Breathing:", onOff(fx.BreathingEnabled))
	fmt.Fprintf(b, "  %-18s #%02x%02x%02x%02x\n", "Base colour:",
		fx.BreathingBase.R, fx.BreathingBase.G, fx.BreathingBase.B, fx.BreathingBase.W)
	fmt.Fprintf(b, "  %-18s %d..%d\n", "Brightness:", fx.BreathingMinBrightness, fx.BreathingMaxBrightness)
	fmt.Fprintf(b, "  %-18s %d\n", "Step size:", fx.BreathingStepSize)
	fmt.Fprintf(b, "  %-18s %d ms\n", "Timer period:", fx.BreathingTimerPeriodMs)

	if len(r.Warnings) > 0 {
		fmt.Fprintf(b, "\n=== Warnings (%d) ===\n", len(r.Warnings))
		for _, warn := range r.Warnings {
			fmt.Fprintf(b, "  ⚠ %s\n", warn)
		}
	}

	fmt.Fprintf(b, "\n✓ Configuration record verified\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
