package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeGroup(t *testing.T) {
	raw := `{"file":"m.jpg","role":"機械全景","machine_type":"タイヤローラー","machine_id":"TZ-703","has_board":true,"detected_text":"TZ-703","description":"全景"}`
	item, bad, err := NormalizeGroup(raw)
	require.NoError(t, err)
	require.Empty(t, bad)

	assert.Equal(t, "機械全景", item.Role)
	assert.Equal(t, "タイヤローラー", item.MachineType)
	assert.Equal(t, "TZ-703", item.MachineID)
	assert.True(t, item.HasBoard)
}

func TestNormalizeGroup_MissingFieldsDefault(t *testing.T) {
	item, bad, err := NormalizeGroup(`{"file":"m.jpg"}`)
	require.NoError(t, err)
	assert.Empty(t, bad)
	assert.Equal(t, "", item.Role)
	assert.False(t, item.HasBoard)
}

func TestNormalizeGroup_WrongShapeReported(t *testing.T) {
	item, bad, err := NormalizeGroup(`{"file":"m.jpg","has_board":"yes"}`)
	require.NoError(t, err)
	assert.Contains(t, bad, "has_board")
	assert.False(t, item.HasBoard)

	rec := item.Record(bad)
	assert.Contains(t, rec.Error, "has_board")
}

func TestGroupItemRecord(t *testing.T) {
	item := &GroupItem{File: "m.jpg", DetectedText: "TZ-703", Description: "全景"}
	rec := item.Record(nil)

	assert.Equal(t, "m.jpg", rec.File)
	assert.Equal(t, "TZ-703", rec.OtherText)
	assert.Equal(t, "全景", rec.Notes)
	assert.True(t, rec.Usable())
}
