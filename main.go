// fwcfg — Firmware Configuration Record Inspector
//
// Usage:
//
//	fwcfg <firmware.bin> — locate, validate and print the embedded configuration
//	fwcfg history        — list recorded inspections
//	fwcfg edit           — edit the configuration file
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"fwcfg/cmd/edit"
	"fwcfg/cmd/history"
	"fwcfg/cmd/inspect"
)

const (
	defaultSystemPath = "/etc/fwcfg/config.toml"
	defaultLocalPath  = "fwcfg.toml"
	version           = "1.0.0"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command line and returns the process exit status.
func run(raw []string, stdout, stderr io.Writer) int {
	configPath, format, args, explicit, err := parseArgs(raw)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		printUsage(stderr)
		return 1
	}

	// Auto-discover config if not specified
	if !explicit {
		if _, err := os.Stat(defaultLocalPath); err == nil {
			configPath = defaultLocalPath
		} else {
			configPath = defaultSystemPath
		}
	}

	if len(args) != 1 {
		printUsage(stderr)
		return 1
	}

	switch args[0] {
	case "history":
		err = history.Run(configPath, explicit, stdout)
	case "edit":
		err = edit.Run(configPath)
	case "version":
		fmt.Fprintf(stdout, "fwcfg v%s\n", version)
		return 0
	case "help", "--help", "-h":
		printUsage(stdout)
		return 0
	default:
		err = inspect.Run(args[0], inspect.Options{
			ConfigPath:     configPath,
			ConfigExplicit: explicit,
			Format:         format,
			Out:            stdout,
		})
	}

	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// parseArgs pulls --config and --format (both "--flag value" and
// "--flag=value" forms) out of raw and returns the remaining arguments.
func parseArgs(raw []string) (configPath, format string, args []string, explicit bool, err error) {
	for i := 0; i < len(raw); i++ {
		arg := raw[i]
		switch {
		case arg == "--config" || arg == "--format":
			if i+1 >= len(raw) {
				return "", "", nil, false, fmt.Errorf("%s requires a value", arg)
			}
			if arg == "--config" {
				configPath = raw[i+1]
				explicit = true
			} else {
				format = raw[i+1]
			}
			i++
		case strings.HasPrefix(arg, "--config="):
			configPath = strings.TrimPrefix(arg, "--config=")
			explicit = true
		case strings.HasPrefix(arg, "--format="):
			format = strings.TrimPrefix(arg, "--format=")
		default:
			args = append(args, arg)
		}
	}
	if explicit && configPath == "" {
		return "", "", nil, false, fmt.Errorf("--config requires a value")
	}
	return configPath, format, args, explicit, nil
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `fwcfg v%s — Firmware Configuration Record Inspector

Usage:
  fwcfg [--config <path>] [--format text|json|yaml] <firmware.bin>
  fwcfg [--config <path>] <command>

Commands:
  history  List recorded inspections (requires [history] enabled = true)
  edit     Edit the configuration file in your system editor
  version  Print version information
  help     Show this help message

Options:
  --config <path>  Path to config file (default: looks for ./%s, then %s)
  --format <fmt>   Report format, overrides [inspect] format

Examples:
  fwcfg build/firmware.bin              # Print the embedded configuration
  fwcfg --format json firmware.bin      # Machine-readable report
  fwcfg history                         # Show previously inspected images

`, version, defaultLocalPath, defaultSystemPath)
}
