package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genba-tools/photoflow/internal/record"
)

func rec(file, board string) *record.PhotoRecord {
	return &record.PhotoRecord{
		File:      file,
		Objects:   []record.DetectedObject{},
		BoardText: board,
	}
}

func TestAppendAndReadAll_KeepsAppendOrder(t *testing.T) {
	dir := t.TempDir()
	s := Open(dir)

	require.NoError(t, s.Append(rec("a.jpg", "one")))
	require.NoError(t, s.Append(rec("b.jpg", "two")))
	require.NoError(t, s.Append(rec("a.jpg", "three")))

	all, err := s.ReadAll()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "one", all[0].BoardText)
	assert.Equal(t, "three", all[2].BoardText)
}

func TestLive_DeduplicatesLastWins(t *testing.T) {
	dir := t.TempDir()
	s := Open(dir)

	require.NoError(t, s.Append(rec("a.jpg", "old")))
	require.NoError(t, s.Append(rec("b.jpg", "kept")))
	require.NoError(t, s.Append(rec("a.jpg", "new")))

	live, err := s.Live()
	require.NoError(t, err)
	require.Len(t, live, 2)
	assert.Equal(t, "a.jpg", live[0].File)
	assert.Equal(t, "new", live[0].BoardText)
	assert.Equal(t, "b.jpg", live[1].File)
}

func TestMaterialize_Idempotent(t *testing.T) {
	dir := t.TempDir()
	s := Open(dir)

	require.NoError(t, s.Append(rec("a.jpg", "one")))
	require.NoError(t, s.Append(rec("a.jpg", "two")))
	require.NoError(t, s.Append(rec("b.jpg", "three")))

	require.NoError(t, s.Materialize(dir))
	first, err := os.ReadFile(filepath.Join(dir, CollectionFilename))
	require.NoError(t, err)
	firstCSV, err := os.ReadFile(filepath.Join(dir, TableFilename))
	require.NoError(t, err)

	require.NoError(t, s.Materialize(dir))
	second, err := os.ReadFile(filepath.Join(dir, CollectionFilename))
	require.NoError(t, err)
	secondCSV, err := os.ReadFile(filepath.Join(dir, TableFilename))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstCSV, secondCSV)

	var live []record.PhotoRecord
	require.NoError(t, json.Unmarshal(first, &live))
	require.Len(t, live, 2)
	assert.Equal(t, "two", live[0].BoardText)
}

func TestMaterialize_TableColumns(t *testing.T) {
	dir := t.TempDir()
	s := Open(dir)

	r := rec("a.jpg", "board")
	r.Objects = []record.DetectedObject{{Label: "roller", Box: []float64{0, 0, 1, 1}, Area: 0.5}}
	require.NoError(t, s.Append(r))
	require.NoError(t, s.Materialize(dir))

	data, err := os.ReadFile(filepath.Join(dir, TableFilename))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "file,objects_json,board_text,other_text,notes,error", lines[0])
	assert.Contains(t, lines[1], "a.jpg")
	assert.Contains(t, lines[1], "roller")
}

func TestMaterialize_EmptyLog(t *testing.T) {
	dir := t.TempDir()
	s := Open(dir)

	require.NoError(t, s.Materialize(dir))
	data, err := os.ReadFile(filepath.Join(dir, CollectionFilename))
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestAppend_ConcurrentWritersProduceWellFormedLog(t *testing.T) {
	dir := t.TempDir()
	s := Open(dir)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r := rec("p.jpg", strings.Repeat("x", 200))
			r.File = string(rune('a'+i%26)) + ".jpg"
			assert.NoError(t, s.Append(r))
		}(i)
	}
	wg.Wait()

	all, err := s.ReadAll()
	require.NoError(t, err)
	assert.Len(t, all, 20)
}

func TestAppend_UnwritableLogFails(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "missing", "deeper"))
	err := s.Append(rec("a.jpg", ""))
	assert.Error(t, err)
}
