// Package lint reports suspicious but decodable values in a configuration
// record. Findings never fail an inspection.
package lint

import (
	"fmt"
	"strings"

	"golang.org/x/net/idna"

	"fwcfg/internal/fwconfig"
)

// Warning is a single lint finding.
type Warning struct {
	Field   string `json:"field" yaml:"field" msgpack:"field"`
	Message string `json:"message" yaml:"message" msgpack:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Field, w.Message)
}

// Check inspects rec and returns its findings in field order.
func Check(rec *fwconfig.Record) []Warning {
	var warnings []Warning
	add := func(field, format string, args ...any) {
		warnings = append(warnings, Warning{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if rec.WiFiSSID == "" {
		add("wifi_ssid", "empty, device cannot join a network")
	}
	if rec.UDPPort == 0 {
		add("udp_port", "port 0 is not a usable listening port")
	}
	if msg := checkHostname(rec.MDNSHostname); msg != "" {
		add("mdns_hostname", "%s", msg)
	}
	if rec.MaxLEDs == 0 {
		add("max_leds", "strip length is 0")
	}
	if msg := checkLEDOrder(rec.LEDOrder); msg != "" {
		add("led_order", "%s", msg)
	}

	fx := rec.Effects
	if fx.BreathingEnabled && fx.BreathingMinBrightness > fx.BreathingMaxBrightness {
		add("led_effects", "breathing min brightness %d above max %d",
			fx.BreathingMinBrightness, fx.BreathingMaxBrightness)
	}
	if fx.BreathingEnabled && fx.BreathingStepSize == 0 {
		add("led_effects", "breathing enabled with step size 0")
	}

	return warnings
}

// checkHostname validates name as a single DNS label suitable for mDNS.
func checkHostname(name string) string {
	if name == "" {
		return "empty"
	}
	if strings.Contains(name, ".") {
		return fmt.Sprintf("%q must be a single label without dots", name)
	}
	ascii, err := idna.Lookup.ToASCII(name)
	if err != nil {
		return fmt.Sprintf("%q is not a valid DNS label: %v", name, err)
	}
	if len(ascii) > 63 {
		return fmt.Sprintf("%q encodes to %d bytes, over the 63 byte label limit", name, len(ascii))
	}
	return ""
}

// checkLEDOrder requires a non-empty permutation of channel letters R, G, B, W.
func checkLEDOrder(order string) string {
	if order == "" {
		return "empty"
	}
	seen := make(map[rune]bool)
	for _, c := range order {
		switch c {
		case 'R', 'G', 'B', 'W':
		default:
			return fmt.Sprintf("%q contains unknown channel %q", order, c)
		}
		if seen[c] {
			return fmt.Sprintf("%q repeats channel %q", order, c)
		}
		seen[c] = true
	}
	if len(order) < 3 {
		return fmt.Sprintf("%q has fewer than 3 channels", order)
	}
	return ""
}
