// Package inspect implements the fwcfg firmware inspection command.
package inspect

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"fwcfg/internal/fwconfig"
	"fwcfg/internal/image"
	"fwcfg/internal/lint"
	"fwcfg/internal/report"
	"fwcfg/internal/store"
	"fwcfg/internal/sysinfo"
	"fwcfg/pkg/config"
	"fwcfg/pkg/logger"
)

// headLen is the number of record bytes echoed in the text report.
const headLen = 16

// Options control a single inspection run.
type Options struct {
	ConfigPath     string
	ConfigExplicit bool
	Format         string // overrides [inspect] format when set
	Out            io.Writer
}

// Run inspects the firmware image at firmwarePath and writes a report.
func Run(firmwarePath string, opts Options) error {
	cfg, err := config.Resolve(opts.ConfigPath, opts.ConfigExplicit)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if opts.Format != "" {
		cfg.Inspect.Format = opts.Format
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	log := logger.Init(cfg.Inspect.LogLevel)

	host, err := sysinfo.Collect()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to collect host info")
		host = &sysinfo.SystemInfo{}
	}

	configured, err := cfg.Inspect.ParseMaxImageSize()
	if err != nil {
		return fmt.Errorf("parsing max_image_size: %w", err)
	}
	limit := image.Limit(configured, host.MemoryAvailable)

	img, err := image.Load(firmwarePath, limit)
	if err != nil {
		return err
	}

	log.Debug().
		Str("path", img.Path).
		Int64("size", img.Size).
		Str("fingerprint", img.Fingerprint).
		Uint64("limit", limit).
		Msg("Firmware loaded")

	rep, err := inspect(img, cfg.Inspect.Marker, log)
	if cfg.History.Enabled {
		recordHistory(cfg.History.DBPath, img, rep, err, host, log)
	}
	if err != nil {
		return err
	}

	return report.Write(out, rep, report.Options{
		Format:      cfg.Inspect.Format,
		MaskSecrets: cfg.Inspect.MaskSecrets,
	})
}

// inspect runs the locate, decode and lint stages over a loaded image.
func inspect(img *image.Image, marker string, log zerolog.Logger) (*report.Report, error) {
	offset, err := fwconfig.Locate(img.Data, []byte(marker), fwconfig.Magic)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("offset", offset).Msg("Configuration marker found")

	rec, err := fwconfig.Decode(img.Data, offset)
	if err != nil {
		return &report.Report{Path: img.Path, Size: img.Size, Offset: offset},
			fmt.Errorf("decoding configuration at 0x%08x: %w", offset, err)
	}

	head := img.Data[offset : offset+headLen]
	warnings := lint.Check(rec)
	for _, w := range warnings {
		log.Debug().Str("field", w.Field).Msg(w.Message)
	}

	return &report.Report{
		Path:     img.Path,
		Size:     img.Size,
		Offset:   offset,
		Head:     head,
		Record:   rec,
		Warnings: warnings,
	}, nil
}

// recordHistory stores the outcome of an inspection. Failures are logged and
// never affect the run's result.
func recordHistory(dbPath string, img *image.Image, rep *report.Report, inspectErr error, host *sysinfo.SystemInfo, log zerolog.Logger) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		log.Warn().Err(err).Str("db_path", dbPath).Msg("Failed to create history directory")
		return
	}

	db, err := store.New(dbPath, log)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to open history database")
		return
	}
	defer db.Close()

	entry := store.Entry{
		Fingerprint: img.Fingerprint,
		Path:        img.Path,
		Size:        img.Size,
		InspectedBy: host,
	}
	if abs, err := filepath.Abs(img.Path); err == nil {
		entry.Path = abs
	}
	if rep != nil {
		entry.Offset = rep.Offset
		entry.Record = rep.Record
		entry.Warnings = rep.Warnings
	}
	if inspectErr != nil {
		entry.Error = inspectErr.Error()
	}

	if err := db.Record(entry); err != nil {
		log.Warn().Err(err).Msg("Failed to record inspection history")
	}
}
