// Package fwconfig locates and decodes the configuration record embedded in a
// firmware image.
package fwconfig

// Record layout constants. All multi-byte integers are little-endian.
const (
	// RecordSize is the fixed size of the configuration record in bytes.
	RecordSize = 256

	// Magic identifies a genuine configuration record.
	Magic uint32 = 0x12345678

	// Version is the only record version this package understands.
	Version uint32 = 1

	// DefaultMarker precedes the record in the firmware image.
	DefaultMarker = "FWCFG_START"
)

// Field offsets and widths within the record.
const (
	offMagic        = 0
	offVersion      = 4
	offWiFiSSID     = 8
	lenWiFiSSID     = 64
	offWiFiPassword = 72
	lenWiFiPassword = 64
	offUDPPort      = 136
	offMDNSHostname = 138
	lenMDNSHostname = 32
	offLEDPin       = 170
	offMaxLEDs      = 171
	offLEDOrder     = 173
	lenLEDOrder     = 8

	// LED effect block, directly after led_order.
	offRefreshRate      = 181
	offBreathingEnabled = 182
	offBreathingBase    = 183
	offBreathingMin     = 187
	offBreathingMax     = 188
	offBreathingStep    = 189
	offBreathingPeriod  = 190
)

// Record is a decoded firmware configuration record.
type Record struct {
	Magic        uint32 `json:"magic" yaml:"magic" msgpack:"magic"`
	Version      uint32 `json:"version" yaml:"version" msgpack:"version"`
	WiFiSSID     string `json:"wifi_ssid" yaml:"wifi_ssid" msgpack:"wifi_ssid"`
	WiFiPassword string `json:"wifi_password" yaml:"wifi_password" msgpack:"wifi_password"`
	UDPPort      uint16 `json:"udp_port" yaml:"udp_port" msgpack:"udp_port"`
	MDNSHostname string `json:"mdns_hostname" yaml:"mdns_hostname" msgpack:"mdns_hostname"`
	LEDPin       uint8  `json:"led_pin" yaml:"led_pin" msgpack:"led_pin"`
	MaxLEDs      uint16 `json:"max_leds" yaml:"max_leds" msgpack:"max_leds"`
	LEDOrder     string `json:"led_order" yaml:"led_order" msgpack:"led_order"`

	Effects LEDEffects `json:"led_effects" yaml:"led_effects" msgpack:"led_effects"`
}

// LEDEffects holds the refresh rate and breathing animation parameters.
type LEDEffects struct {
	RefreshRate            uint8  `json:"refresh_rate" yaml:"refresh_rate" msgpack:"refresh_rate"`
	BreathingEnabled       bool   `json:"breathing_enabled" yaml:"breathing_enabled" msgpack:"breathing_enabled"`
	BreathingBase          RGBW   `json:"breathing_base" yaml:"breathing_base" msgpack:"breathing_base"`
	BreathingMinBrightness uint8  `json:"breathing_min_brightness" yaml:"breathing_min_brightness" msgpack:"breathing_min_brightness"`
	BreathingMaxBrightness uint8  `json:"breathing_max_brightness" yaml:"breathing_max_brightness" msgpack:"breathing_max_brightness"`
	BreathingStepSize      uint8  `json:"breathing_step_size" yaml:"breathing_step_size" msgpack:"breathing_step_size"`
	BreathingTimerPeriodMs uint16 `json:"breathing_timer_period_ms" yaml:"breathing_timer_period_ms" msgpack:"breathing_timer_period_ms"`
}

// RGBW is a four-channel LED colour.
type RGBW struct {
	R uint8 `json:"r" yaml:"r" msgpack:"r"`
	G uint8 `json:"g" yaml:"g" msgpack:"g"`
	B uint8 `json:"b" yaml:"b" msgpack:"b"`
	W uint8 `json:"w" yaml:"w" msgpack:"w"`
}
