package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genba-tools/photoflow/internal/record"
)

func machineRec(machineType, machineID string, group int) record.GroupRecord {
	return record.GroupRecord{
		Role:        "機械全景",
		MachineType: machineType,
		MachineID:   machineID,
		Group:       group,
	}
}

func TestAssignGroups_ClustersByMachineAndTime(t *testing.T) {
	records := map[string]record.GroupRecord{
		"20240105_090000.jpg": machineRec("タイヤローラー", "TZ-703", 0),
		"20240105_090500.jpg": machineRec("タイヤローラー", "TZ-703", 0),
		"20240105_100000.jpg": machineRec("タイヤローラー", "TZ-703", 0),
		"20240105_093000.jpg": machineRec("バックホウ", "HA60C-2", 0),
	}
	AssignGroups(records, 10)

	// Two photos within the window share a group.
	assert.Equal(t, records["20240105_090000.jpg"].Group, records["20240105_090500.jpg"].Group)
	// Same machine past the gap starts a new group.
	assert.NotEqual(t, records["20240105_090000.jpg"].Group, records["20240105_100000.jpg"].Group)
	// Different machine is always a different group.
	assert.NotEqual(t, records["20240105_090000.jpg"].Group, records["20240105_093000.jpg"].Group)

	// Numbering follows first-seen timestamps.
	assert.Equal(t, 1, records["20240105_090000.jpg"].Group)
	assert.Equal(t, 2, records["20240105_093000.jpg"].Group)
	assert.Equal(t, 3, records["20240105_100000.jpg"].Group)
}

func TestAssignGroups_GapBoundaryIsStrict(t *testing.T) {
	records := map[string]record.GroupRecord{
		"20240105_090000.jpg": machineRec("タイヤローラー", "TZ-703", 0),
		"20240105_091000.jpg": machineRec("タイヤローラー", "TZ-703", 0), // exactly 10 min later
	}
	AssignGroups(records, 10)

	assert.NotEqual(t, records["20240105_090000.jpg"].Group, records["20240105_091000.jpg"].Group)
}

func TestAssignGroups_ExistingNumbersAreStable(t *testing.T) {
	records := map[string]record.GroupRecord{
		"20240105_090000.jpg": machineRec("タイヤローラー", "TZ-703", 4),
		"20240105_090100.jpg": machineRec("タイヤローラー", "TZ-703", 4),
	}
	// A new photo joins the existing cluster; another starts a fresh one.
	records["20240105_090200.jpg"] = machineRec("タイヤローラー", "TZ-703", 0)
	records["20240105_120000.jpg"] = machineRec("バックホウ", "HA60C-2", 0)

	AssignGroups(records, 10)

	assert.Equal(t, 4, records["20240105_090000.jpg"].Group)
	assert.Equal(t, 4, records["20240105_090200.jpg"].Group)
	assert.Equal(t, 5, records["20240105_120000.jpg"].Group)
}

func TestAssignGroups_BridgingPhotoNeverRenumbers(t *testing.T) {
	// Two numbered clusters of the same machine, 18 minutes apart. A new
	// photo lands between them, under the gap to both sides.
	records := map[string]record.GroupRecord{
		"20240105_090000.jpg": machineRec("タイヤローラー", "TZ-703", 1),
		"20240105_091800.jpg": machineRec("タイヤローラー", "TZ-703", 2),
		"20240105_090900.jpg": machineRec("タイヤローラー", "TZ-703", 0),
	}
	AssignGroups(records, 10)

	assert.Equal(t, 1, records["20240105_090000.jpg"].Group)
	assert.Equal(t, 2, records["20240105_091800.jpg"].Group)
	// Equidistant from both clusters; the earlier one wins.
	assert.Equal(t, 1, records["20240105_090900.jpg"].Group)
}

func TestAssignGroups_NewPhotoJoinsNearestNumberedCluster(t *testing.T) {
	records := map[string]record.GroupRecord{
		"20240105_090000.jpg": machineRec("タイヤローラー", "TZ-703", 1),
		"20240105_091800.jpg": machineRec("タイヤローラー", "TZ-703", 2),
		"20240105_091500.jpg": machineRec("タイヤローラー", "TZ-703", 0),
	}
	AssignGroups(records, 10)

	assert.Equal(t, 1, records["20240105_090000.jpg"].Group)
	assert.Equal(t, 2, records["20240105_091800.jpg"].Group)
	assert.Equal(t, 2, records["20240105_091500.jpg"].Group)
}

func TestAssignGroups_NoTimestampKeepsGroupZero(t *testing.T) {
	records := map[string]record.GroupRecord{
		"plate.jpg": machineRec("バックホウ", "HA60C-2", 0),
	}
	AssignGroups(records, 10)
	assert.Equal(t, 0, records["plate.jpg"].Group)
}

func TestCollectImages(t *testing.T) {
	dir := t.TempDir()
	writePhotos(t, dir, "b.JPG", "a.jpg", "c.heic")
	writePhotos(t, dir, "notes.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "done"), 0755))

	names, err := CollectImages(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.JPG", "c.heic"}, names)
}
