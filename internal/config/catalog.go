package config

// catalog.go loads the activity catalog definitions that seed and resync
// the activities table. Definitions live in a JSON file so capacities can
// be adjusted between events without a rebuild; the file is an ordered
// array so sync order is deterministic.

import (
	"encoding/json"
	"fmt"
	"os"
)

// ActivityDefinition is one configured activity: a stable id, a display
// name and the maximum number of participants. Catalog sync upserts these
// into the store without ever resetting live usage counters.
type ActivityDefinition struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	MaxCapacity uint32 `json:"max_capacity"`
}

// LoadCatalog reads and validates the activity definitions file. Duplicate
// ids and non-positive capacities are rejected up front so a broken file
// never reaches the database.
func LoadCatalog(path string) ([]ActivityDefinition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var defs []ActivityDefinition
	if err := json.Unmarshal(raw, &defs); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}
	seen := make(map[uint64]bool, len(defs))
	for _, d := range defs {
		if d.ID == 0 {
			return nil, fmt.Errorf("catalog entry %q: id must be positive", d.Name)
		}
		if seen[d.ID] {
			return nil, fmt.Errorf("catalog entry %q: duplicate id %d", d.Name, d.ID)
		}
		seen[d.ID] = true
		if d.Name == "" {
			return nil, fmt.Errorf("catalog entry %d: name is required", d.ID)
		}
		if d.MaxCapacity == 0 {
			return nil, fmt.Errorf("catalog entry %d: max_capacity must be positive", d.ID)
		}
	}
	return defs, nil
}
