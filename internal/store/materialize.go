package store

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// CollectionFilename is the full-collection JSON view.
	CollectionFilename = "records.json"
	// TableFilename is the tabular CSV view.
	TableFilename = "records.csv"
)

var csvHeader = []string{"file", "objects_json", "board_text", "other_text", "notes", "error"}

// Materialize recomputes both read views from the log and writes them into
// outDir. The log itself is never rewritten. Calling this twice on an
// unchanged log produces identical files.
func (s *Store) Materialize(outDir string) error {
	live, err := s.Live()
	if err != nil {
		return err
	}

	collection, err := json.MarshalIndent(live, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal collection view: %w", err)
	}
	collection = append(collection, '\n')
	if err := writeView(filepath.Join(outDir, CollectionFilename), collection); err != nil {
		return err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write table header: %w", err)
	}
	for _, rec := range live {
		objects, err := json.Marshal(rec.Objects)
		if err != nil {
			return fmt.Errorf("marshal objects for %q: %w", rec.File, err)
		}
		row := []string{rec.File, string(objects), rec.BoardText, rec.OtherText, rec.Notes, rec.Error}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write table row for %q: %w", rec.File, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush table view: %w", err)
	}
	return writeView(filepath.Join(outDir, TableFilename), buf.Bytes())
}

// writeView replaces a view file atomically so a reader never observes a
// half-written document.
func writeView(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write view %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace view %s: %w", filepath.Base(path), err)
	}
	return nil
}
