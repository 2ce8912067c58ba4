// Package history implements the fwcfg history listing command.
package history

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"fwcfg/internal/store"
	"fwcfg/internal/sysinfo"
	"fwcfg/pkg/config"
	"fwcfg/pkg/logger"
)

// Run prints every recorded inspection.
func Run(configPath string, explicit bool, out io.Writer) error {
	cfg, err := config.Resolve(configPath, explicit)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if out == nil {
		out = os.Stdout
	}

	if !cfg.History.Enabled {
		fmt.Fprintln(out, "Inspection history is disabled. Set [history] enabled = true in the config.")
		return nil
	}
	if _, err := os.Stat(cfg.History.DBPath); errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(out, "No inspections recorded yet.")
		return nil
	}

	log := logger.Init(cfg.Inspect.LogLevel)

	db, err := store.New(cfg.History.DBPath, log)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer db.Close()

	entries, err := db.GetAll()
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No inspections recorded yet.")
		return nil
	}

	fmt.Fprintf(out, "\n  Recorded Inspections (%d)\n\n", len(entries))
	displayTable(out, entries)
	return nil
}

func displayTable(out io.Writer, entries []store.Entry) {
	fmt.Fprintf(out, "  %-12s %-30s %-16s %-20s %-28s %-5s %-19s %s\n",
		"Fingerprint", "File", "SSID", "Hostname", "Inspected On", "Count", "Last Seen", "Status")
	fmt.Fprintf(out, "  %s %s %s %s %s %s %s %s\n",
		strings.Repeat("─", 12),
		strings.Repeat("─", 30),
		strings.Repeat("─", 16),
		strings.Repeat("─", 20),
		strings.Repeat("─", 28),
		strings.Repeat("─", 5),
		strings.Repeat("─", 19),
		strings.Repeat("─", 6))

	for _, e := range entries {
		var ssid, hostname string
		if e.Record != nil {
			ssid = e.Record.WiFiSSID
			hostname = e.Record.MDNSHostname
		}

		status := "✓"
		if !e.OK() {
			status = "✗ " + e.Error
		}

		fmt.Fprintf(out, "  %-12s %-30s %-16s %-20s %-28s %-5d %-19s %s\n",
			truncate(e.Fingerprint, 12),
			truncate(e.Path, 30),
			truncate(ssid, 16),
			truncate(hostname, 20),
			truncate(inspectedOn(e.InspectedBy), 28),
			e.InspectCount,
			e.LastSeen.Local().Format("2006-01-02 15:04:05"),
			status,
		)
	}
}

// inspectedOn formats the inspecting host as "name (os, arch)". Entries
// written without host details show "-".
func inspectedOn(info *sysinfo.SystemInfo) string {
	if info == nil || info.Hostname == "" {
		return "-"
	}
	var details []string
	if info.OSName != "" {
		details = append(details, info.OSName)
	}
	if info.Arch != "" {
		details = append(details, info.Arch)
	}
	if len(details) == 0 {
		return info.Hostname
	}
	return fmt.Sprintf("%s (%s)", info.Hostname, strings.Join(details, ", "))
}

// truncate shortens s to maxLen runes, marking the cut with an ellipsis.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-1]) + "…"
}
