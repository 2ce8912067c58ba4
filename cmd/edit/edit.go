// Package edit implements the fwcfg config editing command.
package edit

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"

	"fwcfg/pkg/config"
)

const defaultConfigTemplate = `[inspect]
  marker         = "FWCFG_START"
  format         = "text"    # text, json or yaml
  mask_secrets   = false
  max_image_size = "64MiB"
  log_level      = "warn"

[history]
  enabled = false
  db_path = "~/.local/share/fwcfg/history.db"
`

// Run opens the configuration file in the user's editor, creating it with
// default values first when missing. The edited file is validated afterwards.
func Run(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		fmt.Printf("Creating new config file at %s...\n", path)
		if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0644); err != nil {
			return fmt.Errorf("writing default config: %w", err)
		}
	}

	editor := findEditor()
	if editor == "" {
		return fmt.Errorf("no editor found ($EDITOR environment variable not set, and vi/nano/vim not in PATH)")
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w", editor, err)
	}

	if _, err := config.Load(path); err != nil {
		return fmt.Errorf("config saved but invalid: %w", err)
	}
	return nil
}

func findEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	for _, e := range []string{"vi", "nano", "vim"} {
		if _, err := exec.LookPath(e); err == nil {
			return e
		}
	}
	return ""
}
