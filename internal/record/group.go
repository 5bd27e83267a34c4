package record

import (
	"encoding/json"
	"fmt"
	"strings"
)

// GroupItem is the analyzer's machine-classification answer for one photo,
// before a group number has been assigned.
type GroupItem struct {
	File         string
	Role         string
	MachineType  string
	MachineID    string
	HasBoard     bool
	DetectedText string
	Description  string
}

type partialGroupItem struct {
	File         json.RawMessage `json:"file"`
	Role         json.RawMessage `json:"role"`
	MachineType  json.RawMessage `json:"machine_type"`
	MachineID    json.RawMessage `json:"machine_id"`
	HasBoard     json.RawMessage `json:"has_board"`
	DetectedText json.RawMessage `json:"detected_text"`
	Description  json.RawMessage `json:"description"`
}

// NormalizeGroup decodes a machine-classification reply with the same
// tolerance as Normalize: missing fields default, wrong-shaped fields are
// dropped, and only a reply without any JSON object fails.
func NormalizeGroup(raw string) (*GroupItem, []string, error) {
	js := ExtractObject(raw)
	if js == "" {
		return nil, nil, fmt.Errorf("normalize group: %w", ErrNoJSON)
	}

	var p partialGroupItem
	if err := json.Unmarshal([]byte(js), &p); err != nil {
		return nil, nil, fmt.Errorf("normalize group: %v: %w", err, ErrNoJSON)
	}

	item := &GroupItem{}
	var bad []string

	decodeText := func(name string, raw json.RawMessage, dst *string) {
		s, ok := decodeString(raw)
		if !ok {
			bad = append(bad, name)
			return
		}
		*dst = s
	}

	decodeText("file", p.File, &item.File)
	decodeText("role", p.Role, &item.Role)
	decodeText("machine_type", p.MachineType, &item.MachineType)
	decodeText("machine_id", p.MachineID, &item.MachineID)
	decodeText("detected_text", p.DetectedText, &item.DetectedText)
	decodeText("description", p.Description, &item.Description)

	if !isAbsent(p.HasBoard) {
		if err := json.Unmarshal(p.HasBoard, &item.HasBoard); err != nil {
			bad = append(bad, "has_board")
		}
	}

	return item, bad, nil
}

// Record derives the canonical photo record stored for a group-mode
// analysis. Detected text and description land in the text fields so the
// log stays the single source of truth in both modes.
func (g *GroupItem) Record(badFields []string) *PhotoRecord {
	rec := &PhotoRecord{
		File:      g.File,
		Objects:   []DetectedObject{},
		OtherText: g.DetectedText,
		Notes:     g.Description,
	}
	if len(badFields) > 0 {
		rec.Error = "unexpected shape: " + strings.Join(badFields, ", ")
	}
	return rec
}
