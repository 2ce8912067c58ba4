package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"fwcfg/internal/fwconfig"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name       string
		raw        []string
		configPath string
		format     string
		args       []string
		explicit   bool
	}{
		{"firmware only", []string{"fw.bin"}, "", "", []string{"fw.bin"}, false},
		{"config separate", []string{"--config", "a.toml", "fw.bin"}, "a.toml", "", []string{"fw.bin"}, true},
		{"config joined", []string{"--config=a.toml", "history"}, "a.toml", "", []string{"history"}, true},
		{"format separate", []string{"fw.bin", "--format", "json"}, "", "json", []string{"fw.bin"}, false},
		{"format joined", []string{"--format=yaml", "fw.bin"}, "", "yaml", []string{"fw.bin"}, false},
		{"both flags", []string{"--format", "json", "--config=b.toml", "fw.bin"}, "b.toml", "json", []string{"fw.bin"}, true},
		{"no positionals", []string{"--format=json"}, "", "json", nil, false},
		{"two positionals", []string{"a.bin", "b.bin"}, "", "", []string{"a.bin", "b.bin"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath, format, args, explicit, err := parseArgs(tt.raw)
			if err != nil {
				t.Fatalf("parseArgs(%q): %v", tt.raw, err)
			}
			if configPath != tt.configPath {
				t.Errorf("configPath: got %q, want %q", configPath, tt.configPath)
			}
			if format != tt.format {
				t.Errorf("format: got %q, want %q", format, tt.format)
			}
			if !reflect.DeepEqual(args, tt.args) {
				t.Errorf("args: got %q, want %q", args, tt.args)
			}
			if explicit != tt.explicit {
				t.Errorf("explicit: got %t, want %t", explicit, tt.explicit)
			}
		})
	}
}

func TestParseArgs_MissingValue(t *testing.T) {
	for _, raw := range [][]string{
		{"fw.bin", "--config"},
		{"fw.bin", "--format"},
		{"--config=", "fw.bin"},
	} {
		_, _, _, _, err := parseArgs(raw)
		if err == nil || !strings.Contains(err.Error(), "requires a value") {
			t.Errorf("parseArgs(%q): got %v, want missing value error", raw, err)
		}
	}
}

func TestRun_WrongArgumentCount(t *testing.T) {
	for _, raw := range [][]string{nil, {"a.bin", "b.bin"}} {
		var stdout, stderr bytes.Buffer
		if code := run(raw, &stdout, &stderr); code != 1 {
			t.Errorf("run(%q): exit code got %d, want 1", raw, code)
		}
		if !strings.Contains(stderr.String(), "Usage:") {
			t.Errorf("run(%q): expected usage on stderr, got %q", raw, stderr.String())
		}
		if stdout.Len() != 0 {
			t.Errorf("run(%q): expected empty stdout, got %q", raw, stdout.String())
		}
	}
}

func TestRun_TrailingFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"fw.bin", "--config"}, &stdout, &stderr); code != 1 {
		t.Errorf("exit code: got %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "Error: --config requires a value") {
		t.Errorf("expected missing value error, got %q", stderr.String())
	}
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"version"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code: got %d, want 0 (stderr %q)", code, stderr.String())
	}
	if got, want := stdout.String(), "fwcfg v"+version+"\n"; got != want {
		t.Errorf("version output: got %q, want %q", got, want)
	}
}

func TestRun_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--help"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code: got %d, want 0", code)
	}
	if !strings.Contains(stdout.String(), "Usage:") {
		t.Errorf("expected usage on stdout, got %q", stdout.String())
	}
}

func writeTestConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "fwcfg.toml")
	if err := os.WriteFile(path, []byte("[inspect]\n  format = \"text\"\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestRun_MissingFirmware(t *testing.T) {
	dir := t.TempDir()
	cfg := writeTestConfig(t, dir)

	var stdout, stderr bytes.Buffer
	code := run([]string{"--config", cfg, filepath.Join(dir, "missing.bin")}, &stdout, &stderr)
	if code != 1 {
		t.Errorf("exit code: got %d, want 1", code)
	}
	if !strings.HasPrefix(stderr.String(), "Error: ") {
		t.Errorf("expected error on stderr, got %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("expected empty stdout, got %q", stdout.String())
	}
}

func TestRun_FormatFlag(t *testing.T) {
	dir := t.TempDir()
	cfg := writeTestConfig(t, dir)

	rec := make([]byte, fwconfig.RecordSize)
	binary.LittleEndian.PutUint32(rec[0:], fwconfig.Magic)
	binary.LittleEndian.PutUint32(rec[4:], fwconfig.Version)
	copy(rec[8:], "Home")
	fw := filepath.Join(dir, "firmware.bin")
	if err := os.WriteFile(fw, append([]byte(fwconfig.DefaultMarker), rec...), 0644); err != nil {
		t.Fatalf("write firmware: %v", err)
	}

	var stdout, stderr bytes.Buffer
	if code := run([]string{"--config=" + cfg, "--format=yaml", fw}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code: got %d, want 0 (stderr %q)", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "wifi_ssid: Home") {
		t.Errorf("expected yaml report, got:\n%s", stdout.String())
	}
}
