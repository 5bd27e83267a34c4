// Package store owns PhotoRecord persistence: an append-only JSONL log as
// the single source of truth, plus two materialized read views recomputed
// from it.
package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/genba-tools/photoflow/internal/record"
)

// LogFilename is the append-only record log inside a photo folder.
const LogFilename = "photo-records.jsonl"

// Store appends photo records to a durable log. Appends are serialized and
// each record is written as one complete line, so concurrent workers can
// share a Store without interleaving entries.
type Store struct {
	mu   sync.Mutex
	path string
}

// Open returns a store backed by the log file inside dir. The log is created
// lazily on first append.
func Open(dir string) *Store {
	return &Store{path: filepath.Join(dir, LogFilename)}
}

// Path returns the log file location.
func (s *Store) Path() string {
	return s.path
}

// Append writes one record to the end of the log. Prior entries are never
// touched. A failed append is reported to the caller; the log is the single
// source of truth and a dropped write must not pass silently.
func (s *Store) Append(rec *record.PhotoRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record %q: %w", rec.File, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open record log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append record %q: %w", rec.File, err)
	}
	return nil
}

// ReadAll replays the log in append order. A missing log is an empty store,
// not an error.
func (s *Store) ReadAll() ([]record.PhotoRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open record log: %w", err)
	}
	defer f.Close()

	var out []record.PhotoRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Bytes()
		if len(text) == 0 {
			continue
		}
		var rec record.PhotoRecord
		if err := json.Unmarshal(text, &rec); err != nil {
			return nil, fmt.Errorf("record log line %d: %w", line, err)
		}
		out = append(out, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read record log: %w", err)
	}
	return out, nil
}

// Live returns the deduplicated view of the log: one record per filename,
// last occurrence wins. Order follows each filename's first appearance, so
// repeated materialization stays byte-for-byte stable.
func (s *Store) Live() ([]record.PhotoRecord, error) {
	all, err := s.ReadAll()
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(all))
	live := make([]record.PhotoRecord, 0, len(all))
	for _, rec := range all {
		if i, ok := index[rec.File]; ok {
			live[i] = rec
			continue
		}
		index[rec.File] = len(live)
		live = append(live, rec)
	}
	return live, nil
}
