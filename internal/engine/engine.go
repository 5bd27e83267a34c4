// Package engine drives a folder's end-to-end classification: collect
// images, skip what earlier runs already classified, call the analyzer for
// the rest, and derive activity labels or machine groups from the stored
// records.
package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/genba-tools/photoflow/internal/ai"
	"github.com/genba-tools/photoflow/internal/cache"
	"github.com/genba-tools/photoflow/internal/record"
	"github.com/genba-tools/photoflow/internal/report"
	"github.com/genba-tools/photoflow/internal/store"
)

// ErrNothingProcessed is returned when a run had pending photos but not one
// of them produced a usable record.
var ErrNothingProcessed = errors.New("no photo produced a usable record")

const (
	modeMaterial = "material"
	modeGroup    = "group"
)

// Options is the explicit run configuration. Nothing is read from the
// environment once the engine starts.
type Options struct {
	Folder          string
	GapMinutes      int
	Concurrency     int
	DryRun          bool
	ForceReclassify bool
	Overwrite       bool
	BlockNames      bool
	AutoName        bool
}

// Engine orchestrates one folder. The analyzer may run with bounded
// parallelism; the record store serializes appends internally.
type Engine struct {
	opts     Options
	analyzer ai.Analyzer
	store    *store.Store
	cache    *cache.Cache // nil disables payload caching
	log      *zap.SugaredLogger
}

func New(opts Options, analyzer ai.Analyzer, st *store.Store, c *cache.Cache, log *zap.SugaredLogger) *Engine {
	if opts.GapMinutes <= 0 {
		opts.GapMinutes = 10
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	return &Engine{opts: opts, analyzer: analyzer, store: st, cache: c, log: log}
}

// Store exposes the engine's record store, mainly for materialize-only runs.
func (e *Engine) Store() *store.Store {
	return e.store
}

// RunScan analyzes new photos, stores their records, materializes the read
// views, and resolves an activity label per photo. Unless dry-run is set,
// photos are filed into activity subfolders.
func (e *Engine) RunScan(ctx context.Context) (*report.Summary, map[string]string, error) {
	start := time.Now()
	summary := &report.Summary{RunID: report.NewRunID(), Mode: "scan"}

	images, err := CollectImages(e.opts.Folder)
	if err != nil {
		return summary, nil, err
	}
	summary.Total = len(images)

	existing := LoadActivities(e.opts.Folder)
	if e.opts.ForceReclassify {
		existing = map[string]string{}
	}

	var pending []string
	for _, name := range images {
		if _, done := existing[name]; !done {
			pending = append(pending, name)
		}
	}
	summary.Skipped = len(images) - len(pending)
	if summary.Skipped > 0 {
		e.log.Infow("skipping already classified photos", "count", summary.Skipped)
	}

	usable, failed, _, err := e.analyzePending(ctx, pending, modeMaterial)
	if err != nil {
		return summary, nil, err
	}
	summary.Processed = usable
	summary.Failed = failed

	// All appends are complete here; the views never see a partial entry.
	if err := e.store.Materialize(e.opts.Folder); err != nil {
		return summary, nil, err
	}

	live, err := e.store.Live()
	if err != nil {
		return summary, nil, err
	}
	activities := e.assignActivities(live, existing)

	if err := SaveActivities(e.opts.Folder, activities); err != nil {
		return summary, nil, err
	}

	if !e.opts.DryRun {
		for _, name := range images {
			activity, ok := activities[name]
			if !ok {
				continue
			}
			if err := moveToActivityDir(e.opts.Folder, name, activity, e.opts.Overwrite); err != nil {
				e.log.Warnw("move failed", "file", name, "error", err)
			}
		}
	}

	summary.Elapsed = time.Since(start)
	if len(pending) > 0 && usable == 0 {
		return summary, activities, ErrNothingProcessed
	}
	return summary, activities, nil
}

// RunGroup classifies machine photos and assigns stable numeric group
// identifiers per machine/time cluster.
func (e *Engine) RunGroup(ctx context.Context) (*report.Summary, map[string]record.GroupRecord, error) {
	start := time.Now()
	summary := &report.Summary{RunID: report.NewRunID(), Mode: "group"}

	images, err := CollectImages(e.opts.Folder)
	if err != nil {
		return summary, nil, err
	}
	summary.Total = len(images)

	groups := LoadGroupRecords(e.opts.Folder)
	if e.opts.ForceReclassify {
		groups = map[string]record.GroupRecord{}
	}

	var pending []string
	for _, name := range images {
		if _, done := groups[name]; !done {
			pending = append(pending, name)
		}
	}
	summary.Skipped = len(images) - len(pending)
	if summary.Skipped > 0 {
		e.log.Infow("skipping already grouped photos", "count", summary.Skipped)
	}

	usable, failed, items, err := e.analyzePending(ctx, pending, modeGroup)
	if err != nil {
		return summary, nil, err
	}
	summary.Processed = usable
	summary.Failed = failed

	for name, item := range items {
		groups[name] = record.GroupRecord{
			Role:         item.Role,
			MachineType:  item.MachineType,
			MachineID:    item.MachineID,
			HasBoard:     item.HasBoard,
			DetectedText: item.DetectedText,
			Description:  item.Description,
		}
	}
	AssignGroups(groups, e.opts.GapMinutes)

	if err := e.store.Materialize(e.opts.Folder); err != nil {
		return summary, nil, err
	}
	if !e.opts.DryRun {
		if err := SaveGroupRecords(e.opts.Folder, groups); err != nil {
			return summary, nil, err
		}
	}

	summary.Elapsed = time.Since(start)
	if len(pending) > 0 && usable == 0 {
		return summary, groups, ErrNothingProcessed
	}
	return summary, groups, nil
}

// analyzePending runs the analyzer over pending photos with bounded
// concurrency. Every photo yields exactly one log append: a normalized
// record, or an error-tagged one when the backend or normalization failed.
// Only a failed append aborts the run.
func (e *Engine) analyzePending(ctx context.Context, pending []string, mode string) (usable, failed int, items map[string]*record.GroupItem, err error) {
	items = make(map[string]*record.GroupItem)
	if len(pending) == 0 {
		return 0, 0, items, nil
	}

	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		fatalErr error
		sem      = make(chan struct{}, e.opts.Concurrency)
	)

	setFatal := func(err error) {
		mu.Lock()
		if fatalErr == nil {
			fatalErr = err
		}
		mu.Unlock()
		cancel()
	}

	for _, name := range pending {
		select {
		case <-ctx.Done():
		case sem <- struct{}{}:
			wg.Add(1)
			go func(name string) {
				defer wg.Done()
				defer func() { <-sem }()

				rec, item := e.analyzeOne(ctx, name, mode)
				if err := e.store.Append(rec); err != nil {
					// The log is the source of truth; a dropped append
					// must stop the run.
					setFatal(err)
					return
				}

				mu.Lock()
				if rec.Usable() {
					usable++
					if item != nil {
						items[name] = item
					}
				} else {
					failed++
				}
				mu.Unlock()
			}(name)
		}
		if ctx.Err() != nil {
			break
		}
	}
	wg.Wait()

	if fatalErr != nil {
		return usable, failed, items, fatalErr
	}
	if err := parent.Err(); err != nil {
		return usable, failed, items, err
	}
	return usable, failed, items, nil
}

// analyzeOne produces the record for a single photo. Backend and
// normalization failures land in the record's error field; they never
// propagate.
func (e *Engine) analyzeOne(ctx context.Context, name, mode string) (*record.PhotoRecord, *record.GroupItem) {
	raw, cached, err := e.cachedReply(ctx, name, mode)
	if err != nil {
		e.log.Warnw("analyzer failed", "file", name, "error", err)
		return errorRecord(name, err), nil
	}
	if !cached && e.cache != nil {
		if err := e.cache.Put(ctx, e.opts.Folder, name, mode, raw); err != nil {
			e.log.Warnw("cache write failed", "file", name, "error", err)
		}
	}

	if mode == modeGroup {
		item, bad, err := record.NormalizeGroup(raw)
		if err != nil {
			e.log.Warnw("unusable group reply", "file", name, "error", err)
			return errorRecord(name, err), nil
		}
		item.File = name
		rec := item.Record(bad)
		rec.File = name
		return rec, item
	}

	rec, err := record.Normalize(raw)
	if err != nil {
		e.log.Warnw("unusable analyzer reply", "file", name, "error", err)
		return errorRecord(name, err), nil
	}
	// The filename on disk wins over whatever the backend echoed back.
	rec.File = name
	return rec, nil
}

func (e *Engine) cachedReply(ctx context.Context, name, mode string) (raw string, cached bool, err error) {
	if e.cache != nil {
		raw, ok, err := e.cache.Get(ctx, e.opts.Folder, name, mode)
		if err != nil {
			e.log.Warnw("cache read failed", "file", name, "error", err)
		} else if ok {
			return raw, true, nil
		}
	}

	prompt := ai.MaterialPrompt(name)
	if mode == modeGroup {
		prompt = ai.GroupPrompt(name)
	}
	raw, err = e.analyzer.Analyze(ctx, prompt, filepath.Join(e.opts.Folder, name))
	if err != nil {
		return "", false, err
	}
	return raw, false, nil
}

func errorRecord(name string, err error) *record.PhotoRecord {
	return &record.PhotoRecord{
		File:    name,
		Objects: []record.DetectedObject{},
		Error:   fmt.Sprintf("%v", err),
	}
}
