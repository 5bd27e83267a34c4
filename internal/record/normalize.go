package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSON marks analyzer replies with no extractable structured content.
// This is distinct from a reply that merely misses fields, which normalizes
// cleanly with defaults.
var ErrNoJSON = errors.New("no JSON object in analyzer reply")

type partialRecord struct {
	File      json.RawMessage `json:"file"`
	Objects   json.RawMessage `json:"objects"`
	BoardText json.RawMessage `json:"board_text"`
	OtherText json.RawMessage `json:"other_text"`
	Notes     json.RawMessage `json:"notes"`
	Error     json.RawMessage `json:"error"`
}

// Normalize converts a raw analyzer reply into a canonical PhotoRecord.
// Missing fields default to empty values. A field present with the wrong
// shape is dropped and noted in the record's Error field so the photo can be
// retried later; only a reply with no JSON object at all fails outright.
func Normalize(raw string) (*PhotoRecord, error) {
	js := ExtractObject(raw)
	if js == "" {
		return nil, fmt.Errorf("normalize: %w", ErrNoJSON)
	}

	var p partialRecord
	if err := json.Unmarshal([]byte(js), &p); err != nil {
		return nil, fmt.Errorf("normalize: %v: %w", err, ErrNoJSON)
	}

	rec := &PhotoRecord{Objects: []DetectedObject{}}
	var bad []string

	decodeText := func(name string, raw json.RawMessage, dst *string) {
		s, ok := decodeString(raw)
		if !ok {
			bad = append(bad, name)
			return
		}
		*dst = s
	}

	decodeText("file", p.File, &rec.File)
	decodeText("board_text", p.BoardText, &rec.BoardText)
	decodeText("other_text", p.OtherText, &rec.OtherText)
	decodeText("notes", p.Notes, &rec.Notes)
	decodeText("error", p.Error, &rec.Error)

	objs, ok := decodeObjects(p.Objects)
	if !ok {
		bad = append(bad, "objects")
	} else {
		rec.Objects = objs
	}

	if len(bad) > 0 && rec.Error == "" {
		rec.Error = "unexpected shape: " + strings.Join(bad, ", ")
	}
	return rec, nil
}

func decodeString(raw json.RawMessage) (string, bool) {
	if isAbsent(raw) {
		return "", true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// decodeObjects accepts either the full object shape or the legacy list of
// bare label strings. Anything else is a shape error.
func decodeObjects(raw json.RawMessage) ([]DetectedObject, bool) {
	if isAbsent(raw) {
		return []DetectedObject{}, true
	}
	var objs []DetectedObject
	if err := json.Unmarshal(raw, &objs); err == nil {
		if objs == nil {
			objs = []DetectedObject{}
		}
		return objs, true
	}
	var labels []string
	if err := json.Unmarshal(raw, &labels); err == nil {
		objs = make([]DetectedObject, 0, len(labels))
		for _, l := range labels {
			objs = append(objs, DetectedObject{Label: l})
		}
		return objs, true
	}
	return []DetectedObject{}, false
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
