// Package cache persists parsed per-file timelines so unchanged logger
// files are not re-parsed on every run.
package cache

import (
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"github.com/field-logger/driftnorm/internal/models"
)

// Store is a directory of msgpack-encoded Timeline snapshots, keyed by
// the source file's name, size and modification time. A source file
// that changes in any of those gets a different key, so stale entries
// are simply never hit again.
type Store struct {
	dir string
	log *zap.Logger
}

// NewStore creates (if needed) and opens the cache directory.
func NewStore(dir string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &Store{dir: dir, log: log}, nil
}

// Get returns the cached Timeline for the logger file at path, or
// (nil, false) on a miss. Any read or decode problem is treated as a
// miss; the cache must never fail a run.
func (s *Store) Get(path string) (*models.Timeline, bool) {
	key, ok := s.key(path)
	if !ok {
		return nil, false
	}

	data, err := os.ReadFile(filepath.Join(s.dir, key))
	if err != nil {
		return nil, false
	}

	var snap models.TimelineSnapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		s.log.Warn("discarding unreadable cache entry",
			zap.String("file", path), zap.Error(err))
		return nil, false
	}

	return models.FromSnapshot(&snap), true
}

// Put stores the parsed Timeline for the logger file at path.
func (s *Store) Put(path string, tl *models.Timeline) error {
	key, ok := s.key(path)
	if !ok {
		return fmt.Errorf("caching %s: source file not statable", path)
	}

	data, err := msgpack.Marshal(tl.Snapshot())
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	if err := os.WriteFile(filepath.Join(s.dir, key), data, 0644); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// key derives the cache file name from the source file's identity.
func (s *Store) key(path string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return "", false
	}

	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%d|%d", filepath.Base(path), info.Size(), info.ModTime().UnixNano())
	return fmt.Sprintf("parse_%016x.msgpack", h.Sum64()), true
}
