// Package store provides a BoltDB-backed inspection history for fwcfg.
package store

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
	bolt "go.etcd.io/bbolt"

	"fwcfg/internal/fwconfig"
	"fwcfg/internal/lint"
	"fwcfg/internal/sysinfo"
)

var inspectionsBucket = []byte("inspections")

// Entry is one firmware image's inspection history, keyed by fingerprint.
type Entry struct {
	Fingerprint  string              `msgpack:"fingerprint"`
	Path         string              `msgpack:"path"`
	Size         int64               `msgpack:"size"`
	Offset       int                 `msgpack:"offset"`
	Record       *fwconfig.Record    `msgpack:"record,omitempty"`
	Warnings     []lint.Warning      `msgpack:"warnings,omitempty"`
	Error        string              `msgpack:"error,omitempty"`
	InspectedBy  *sysinfo.SystemInfo `msgpack:"inspected_by,omitempty"` // host of the latest inspection
	FirstSeen    time.Time           `msgpack:"first_seen"`
	LastSeen     time.Time           `msgpack:"last_seen"`
	InspectCount uint64              `msgpack:"inspect_count"`
}

// OK reports whether the latest inspection decoded successfully.
func (e *Entry) OK() bool {
	return e.Error == ""
}

// Store wraps a bbolt database of inspection entries.
type Store struct {
	db  *bolt.DB
	log zerolog.Logger
}

// New opens or creates a BoltDB file at the given path.
func New(path string, log zerolog.Logger) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(inspectionsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating inspections bucket: %w", err)
	}

	return &Store{db: db, log: log}, nil
}

// Close closes the underlying BoltDB.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts or updates the entry for e.Fingerprint. FirstSeen and the
// inspection count carry over from any existing entry.
func (s *Store) Record(e Entry) error {
	if e.Fingerprint == "" {
		return fmt.Errorf("entry has no fingerprint")
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(inspectionsBucket)
		key := []byte(e.Fingerprint)
		now := time.Now().UTC()

		e.FirstSeen = now
		e.LastSeen = now
		e.InspectCount = 1

		if existing := b.Get(key); existing != nil {
			var prev Entry
			if err := msgpack.Unmarshal(existing, &prev); err != nil {
				s.log.Warn().Err(err).Str("fingerprint", e.Fingerprint).Msg("Failed to unmarshal existing entry, overwriting")
			} else {
				e.FirstSeen = prev.FirstSeen
				e.InspectCount = prev.InspectCount + 1
			}
		}

		data, err := msgpack.Marshal(&e)
		if err != nil {
			return fmt.Errorf("marshaling entry: %w", err)
		}

		s.log.Debug().
			Str("fingerprint", e.Fingerprint).
			Str("path", e.Path).
			Uint64("count", e.InspectCount).
			Msg("Inspection recorded")

		return b.Put(key, data)
	})
}

// Get returns the entry for fingerprint, or nil when none exists.
func (s *Store) Get(fingerprint string) (*Entry, error) {
	var entry *Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(inspectionsBucket).Get([]byte(fingerprint))
		if v == nil {
			return nil
		}
		entry = &Entry{}
		if err := msgpack.Unmarshal(v, entry); err != nil {
			return fmt.Errorf("unmarshaling entry %s: %w", fingerprint, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// GetAll returns every entry in key order. Corrupt entries are skipped.
func (s *Store) GetAll() ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(inspectionsBucket)
		return b.ForEach(func(k, v []byte) error {
			var e Entry
			if err := msgpack.Unmarshal(v, &e); err != nil {
				s.log.Warn().Err(err).Str("key", string(k)).Msg("Skipping corrupt entry")
				return nil
			}
			entries = append(entries, e)
			return nil
		})
	})
	return entries, err
}
