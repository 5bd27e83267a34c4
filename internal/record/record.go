package record

import "strings"

// DetectedObject is one object the analyzer reported in a photo. Box holds
// four normalized coordinates and Area the reported area ratio; both are
// stored exactly as received. Downstream consumers rely on seeing raw
// anomalies, so no clamping or cross-checking happens here.
type DetectedObject struct {
	Label string    `json:"label"`
	Box   []float64 `json:"box,omitempty"`
	Area  float64   `json:"area,omitempty"`
}

// PhotoRecord is the canonical per-photo analysis record. Text fields are
// always present as strings; Error is set only when the backend call or
// normalization failed for this photo.
type PhotoRecord struct {
	File      string           `json:"file"`
	Objects   []DetectedObject `json:"objects"`
	BoardText string           `json:"board_text"`
	OtherText string           `json:"other_text"`
	Notes     string           `json:"notes"`
	Error     string           `json:"error,omitempty"`
}

// Text returns the OCR-derived text of the record, board text first.
func (r *PhotoRecord) Text() string {
	parts := make([]string, 0, 2)
	if r.BoardText != "" {
		parts = append(parts, r.BoardText)
	}
	if r.OtherText != "" {
		parts = append(parts, r.OtherText)
	}
	return strings.Join(parts, " ")
}

// Usable reports whether the record carries a successful analysis.
func (r *PhotoRecord) Usable() bool {
	return r.Error == ""
}

// GroupRecord is one entry of the folder-classification output
// (photo-groups.json), keyed by filename.
type GroupRecord struct {
	Role         string `json:"role"`
	MachineType  string `json:"machine_type"`
	MachineID    string `json:"machine_id"`
	Group        int    `json:"group"`
	HasBoard     bool   `json:"has_board"`
	DetectedText string `json:"detected_text"`
	Description  string `json:"description"`
}

// MachineKey identifies the machine a group record belongs to.
func (g *GroupRecord) MachineKey() string {
	return g.MachineType + "|" + g.MachineID
}
