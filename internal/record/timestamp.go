package record

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// ErrNoTimestamp marks filenames that do not carry a parsable
// YYYYMMDD_HHMMSS timestamp. Such photos are stored normally but excluded
// from continuity and group clustering.
var ErrNoTimestamp = errors.New("no timestamp in filename")

var timestampPattern = regexp.MustCompile(`\d{8}_\d{6}`)

const timestampLayout = "20060102_150405"

// ParseTimestamp extracts the timestamp embedded in a photo filename,
// e.g. "IMG_20240105_093015.jpg".
func ParseTimestamp(name string) (time.Time, error) {
	m := timestampPattern.FindString(name)
	if m == "" {
		return time.Time{}, fmt.Errorf("%q: %w", name, ErrNoTimestamp)
	}
	t, err := time.ParseInLocation(timestampLayout, m, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q: %w", name, ErrNoTimestamp)
	}
	return t, nil
}
