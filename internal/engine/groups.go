package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/genba-tools/photoflow/internal/record"
)

// GroupsFilename is the folder-classification output, a map keyed by
// filename.
const GroupsFilename = "photo-groups.json"

// LoadGroupRecords reads the existing group output of a folder. A missing or
// unreadable file yields an empty map, so a fresh folder just starts over.
func LoadGroupRecords(dir string) map[string]record.GroupRecord {
	data, err := os.ReadFile(filepath.Join(dir, GroupsFilename))
	if err != nil {
		return map[string]record.GroupRecord{}
	}
	var records map[string]record.GroupRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return map[string]record.GroupRecord{}
	}
	return records
}

// SaveGroupRecords writes the group output, pretty-printed with sorted keys
// so repeated runs produce identical files.
func SaveGroupRecords(dir string, records map[string]record.GroupRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal group records: %w", err)
	}
	path := filepath.Join(dir, GroupsFilename)
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", GroupsFilename, err)
	}
	return nil
}

type clusterMember struct {
	name string
	ts   int64
}

type cluster struct {
	machineKey string
	firstTS    int64
	members    []clusterMember
}

// AssignGroups numbers machine/time clusters. Photos of the same
// (machine_type, machine_id) belong to one cluster while consecutive
// timestamps stay strictly under the gap threshold; a gap at or over the
// threshold starts a new cluster. Numbers already present in the map are
// immutable: a re-run never changes them, even when new photos land between
// two numbered clusters and chain them together. An unnumbered photo in a
// cluster holding numbered photos takes the number of its nearest numbered
// neighbor (the earlier one on a tie); clusters made entirely of new photos
// take numbers after the current maximum, in ascending order of their first
// timestamp. Photos without a parsable timestamp keep group 0.
func AssignGroups(records map[string]record.GroupRecord, gapMinutes int) {
	gapSeconds := int64(gapMinutes) * 60

	byMachine := make(map[string][]clusterMember)
	for name, rec := range records {
		ts, err := record.ParseTimestamp(name)
		if err != nil {
			continue
		}
		key := rec.MachineKey()
		byMachine[key] = append(byMachine[key], clusterMember{name: name, ts: ts.Unix()})
	}

	maxGroup := 0
	for _, rec := range records {
		if rec.Group > maxGroup {
			maxGroup = rec.Group
		}
	}

	setGroup := func(name string, group int) {
		rec := records[name]
		rec.Group = group
		records[name] = rec
	}

	var fresh []cluster
	for key, members := range byMachine {
		sort.Slice(members, func(i, j int) bool {
			if members[i].ts != members[j].ts {
				return members[i].ts < members[j].ts
			}
			return members[i].name < members[j].name
		})

		var clusters []cluster
		var prevTS int64
		for _, m := range members {
			if len(clusters) == 0 || m.ts-prevTS >= gapSeconds {
				clusters = append(clusters, cluster{machineKey: key, firstTS: m.ts})
			}
			cur := len(clusters) - 1
			clusters[cur].members = append(clusters[cur].members, m)
			prevTS = m.ts
		}

		for _, c := range clusters {
			var numbered []clusterMember
			for _, m := range c.members {
				if records[m.name].Group > 0 {
					numbered = append(numbered, m)
				}
			}
			if len(numbered) == 0 {
				fresh = append(fresh, c)
				continue
			}
			for _, m := range c.members {
				if records[m.name].Group > 0 {
					continue
				}
				nearest := numbered[0]
				for _, n := range numbered[1:] {
					if absDiff(n.ts, m.ts) < absDiff(nearest.ts, m.ts) {
						nearest = n
					}
				}
				setGroup(m.name, records[nearest.name].Group)
			}
		}
	}

	sort.Slice(fresh, func(i, j int) bool {
		if fresh[i].firstTS != fresh[j].firstTS {
			return fresh[i].firstTS < fresh[j].firstTS
		}
		return fresh[i].machineKey < fresh[j].machineKey
	})
	for _, c := range fresh {
		maxGroup++
		for _, m := range c.members {
			setGroup(m.name, maxGroup)
		}
	}
}

func absDiff(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}
