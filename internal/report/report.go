// Package report renders run summaries for the terminal.
package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/genba-tools/photoflow/internal/record"
)

// Summary describes one engine run.
type Summary struct {
	RunID     string
	Mode      string
	Total     int
	Skipped   int
	Processed int
	Failed    int
	Elapsed   time.Duration
}

// NewRunID returns a fresh identifier stamped on logs and reports.
func NewRunID() string {
	return uuid.New().String()
}

// FormatDuration prints sub-second durations in milliseconds and longer ones
// in seconds.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// Print writes a colored run summary.
func Print(w io.Writer, s Summary) {
	header := color.New(color.FgCyan, color.Bold)
	good := color.New(color.FgGreen)
	bad := color.New(color.FgRed)

	header.Fprintf(w, "--- %s run %s ---\n", s.Mode, s.RunID)
	fmt.Fprintf(w, "  images:    %d\n", s.Total)
	if s.Skipped > 0 {
		fmt.Fprintf(w, "  skipped:   %d (already classified)\n", s.Skipped)
	}
	good.Fprintf(w, "  processed: %d\n", s.Processed)
	if s.Failed > 0 {
		bad.Fprintf(w, "  failed:    %d (re-run to retry)\n", s.Failed)
	}
	fmt.Fprintf(w, "  elapsed:   %s\n", FormatDuration(s.Elapsed))
}

// PrintActivities writes the per-activity photo counts.
func PrintActivities(w io.Writer, activities map[string]string) {
	counts := map[string]int{}
	for _, act := range activities {
		counts[act]++
	}
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	fmt.Fprintf(w, "\n--- Activities (%d photos) ---\n", len(activities))
	for _, label := range labels {
		fmt.Fprintf(w, "  %s: %d\n", label, counts[label])
	}
}

// PrintGroups writes the machine group summary.
func PrintGroups(w io.Writer, groups map[string]record.GroupRecord) {
	if len(groups) == 0 {
		return
	}

	byGroup := map[int][]string{}
	for name, rec := range groups {
		byGroup[rec.Group] = append(byGroup[rec.Group], name)
	}
	nums := make([]int, 0, len(byGroup))
	for g := range byGroup {
		nums = append(nums, g)
	}
	sort.Ints(nums)

	fmt.Fprintf(w, "\n--- Groups (%d machines, %d photos) ---\n", len(nums), len(groups))
	for _, g := range nums {
		members := byGroup[g]
		sort.Strings(members)
		first := groups[members[0]]
		if g == 0 {
			fmt.Fprintf(w, "  Ungrouped (no timestamp):\n")
		} else {
			fmt.Fprintf(w, "  Group %d: %s (%s)\n", g, first.MachineType, first.MachineID)
		}
		for _, name := range members {
			fmt.Fprintf(w, "    - %s: %s\n", name, groups[name].Role)
		}
	}
}
