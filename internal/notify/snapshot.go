package notify

import (
	"encoding/json"
	"fmt"
	"time"
)

const snapshotSchema = 1

// snapshotEntry serializes timestamps as RFC3339 text. On rehydration an
// unparseable timestamp degrades to the zero time instead of failing the
// whole snapshot; relative-time displays will be wrong but nothing crashes.
type snapshotEntry struct {
	ID          string            `json:"id"`
	Type        string            `json:"type"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Timestamp   string            `json:"timestamp"`
	Read        bool              `json:"read"`
	Data        map[string]string `json:"data,omitempty"`
}

type snapshot struct {
	Schema  int             `json:"schema"`
	Enabled bool            `json:"enabled"`
	Items   []snapshotEntry `json:"items"`
}

func marshalSnapshot(items []Notification, enabled bool) ([]byte, error) {
	snap := snapshot{
		Schema:  snapshotSchema,
		Enabled: enabled,
		Items:   make([]snapshotEntry, 0, len(items)),
	}
	for _, n := range items {
		snap.Items = append(snap.Items, snapshotEntry{
			ID:          n.ID,
			Type:        n.Type,
			Title:       n.Title,
			Description: n.Description,
			Timestamp:   n.Timestamp.Format(time.RFC3339Nano),
			Read:        n.Read,
			Data:        n.Data,
		})
	}
	return json.Marshal(snap)
}

func unmarshalSnapshot(data []byte) ([]Notification, bool, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, true, fmt.Errorf("parse snapshot: %w", err)
	}
	if snap.Schema != snapshotSchema {
		return nil, true, fmt.Errorf("unsupported snapshot schema %d", snap.Schema)
	}

	items := make([]Notification, 0, len(snap.Items))
	for i, e := range snap.Items {
		if e.ID == "" {
			return nil, true, fmt.Errorf("item[%d]: missing id", i)
		}
		ts, err := time.Parse(time.RFC3339Nano, e.Timestamp)
		if err != nil {
			ts = time.Time{}
		}
		items = append(items, Notification{
			ID:          e.ID,
			Type:        e.Type,
			Title:       e.Title,
			Description: e.Description,
			Timestamp:   ts,
			Read:        e.Read,
			Data:        e.Data,
		})
		if len(items) == MaxEntries {
			break
		}
	}
	return items, snap.Enabled, nil
}
