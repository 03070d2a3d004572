package store

import (
	"fmt"
	"time"

	"github.com/rcliao/board-context/internal/model"
)

// Snapshot is a point-in-time JSON-serializable copy of every layer. It
// exists for operator tooling (export/import between sessions); the store
// itself never persists anything.
type Snapshot struct {
	SavedAt time.Time                 `json:"saved_at"`
	Layers  map[string][]*model.Entry `json:"layers"`
}

// Snapshot returns a deep copy of the store's contents.
func (s *ContextStore) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &Snapshot{
		SavedAt: time.Now(),
		Layers:  make(map[string][]*model.Entry, 4),
	}
	for _, l := range s.layers.All() {
		entries := make([]*model.Entry, 0, l.Len())
		for _, e := range l.Entries() {
			entries = append(entries, e.Clone())
		}
		snap.Layers[l.Name] = entries
	}
	return snap
}

// Restore loads a snapshot into the store, replacing nothing: entries are
// added on top of existing state through each layer's normal limit
// enforcement. Unknown layer names fail before any mutation.
func (s *ContextStore) Restore(snap *Snapshot) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name := range snap.Layers {
		if _, ok := s.layers.ByName(name); !ok {
			return 0, fmt.Errorf("%w: %s", ErrInvalidLayer, name)
		}
	}

	restored := 0
	for name, entries := range snap.Layers {
		l, _ := s.layers.ByName(name)
		for _, e := range entries {
			c := e.Clone()
			if c.ID == "" {
				c.ID = model.NewID()
			}
			c.EnsureAttrs().CurrentLayer = name
			l.AddEntry(c)
			restored++
		}
	}

	s.log.Info().Int("entries", restored).Msg("snapshot restored")
	return restored, nil
}
