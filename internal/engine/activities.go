package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/genba-tools/photoflow/internal/classify"
	"github.com/genba-tools/photoflow/internal/record"
)

// ActivitiesFilename maps each photo filename to its resolved activity
// label.
const ActivitiesFilename = "photo-activities.json"

// LoadActivities reads the existing activity output of a folder; missing or
// unreadable files yield an empty map.
func LoadActivities(dir string) map[string]string {
	data, err := os.ReadFile(filepath.Join(dir, ActivitiesFilename))
	if err != nil {
		return map[string]string{}
	}
	var activities map[string]string
	if err := json.Unmarshal(data, &activities); err != nil {
		return map[string]string{}
	}
	return activities
}

// SaveActivities writes the activity output with sorted keys.
func SaveActivities(dir string, activities map[string]string) error {
	data, err := json.MarshalIndent(activities, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal activities: %w", err)
	}
	path := filepath.Join(dir, ActivitiesFilename)
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", ActivitiesFilename, err)
	}
	return nil
}

// classifyText derives the OCR-based activity guess for one record, or ""
// when the text gives no signal. The strategy is chosen by configuration:
// the fixed rule table, or a name built from the top extracted keywords.
func (e *Engine) classifyText(rec *record.PhotoRecord) string {
	text := rec.Text()
	if text == "" {
		return ""
	}
	if e.opts.AutoName {
		keywords := classify.TopKeywords(text, 2)
		if len(keywords) == 0 {
			return ""
		}
		return classify.ActivityName(keywords)
	}
	label, ok := classify.ClassifyActivity(text, classify.DefaultRules)
	if !ok {
		return ""
	}
	return label
}

// assignActivities resolves an activity per live usable record. Previously
// assigned labels are kept verbatim (they also feed the resolver state);
// photos without a parsable timestamp skip continuity and fall back to their
// own text or the sentinel.
func (e *Engine) assignActivities(live []record.PhotoRecord, existing map[string]string) map[string]string {
	type frame struct {
		name string
		ts   int64
		act  string
	}

	activities := make(map[string]string, len(live))
	var timed []frame

	for i := range live {
		rec := &live[i]
		if !rec.Usable() {
			continue
		}
		act, known := existing[rec.File]
		if !known || e.opts.ForceReclassify {
			act = e.classifyText(rec)
		}

		ts, err := record.ParseTimestamp(rec.File)
		if err != nil {
			if act == "" {
				act = classify.Unclassified
			}
			activities[rec.File] = act
			continue
		}
		timed = append(timed, frame{name: rec.File, ts: ts.Unix(), act: act})
	}

	sort.SliceStable(timed, func(i, j int) bool {
		if timed[i].ts != timed[j].ts {
			return timed[i].ts < timed[j].ts
		}
		return timed[i].name < timed[j].name
	})

	resolver := classify.NewResolver(e.opts.GapMinutes, e.opts.BlockNames)
	for _, f := range timed {
		activities[f.name] = resolver.Next(classify.ActivityFrame{Activity: f.act, Timestamp: f.ts})
	}
	return activities
}

// moveToActivityDir files a photo under its activity subfolder. An existing
// destination is skipped unless overwrite is set.
func moveToActivityDir(dir, name, activity string, overwrite bool) error {
	targetDir := filepath.Join(dir, activity)
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return fmt.Errorf("create activity folder %q: %w", activity, err)
	}

	src := filepath.Join(dir, name)
	dst := filepath.Join(targetDir, name)
	if !overwrite {
		if _, err := os.Stat(dst); err == nil {
			return nil
		}
	}
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("move %s: %w", name, err)
	}
	return nil
}
