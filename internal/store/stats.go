package store

import (
	"fmt"

	"github.com/rcliao/board-context/internal/layer"
)

// Stats holds store-wide statistics.
type Stats struct {
	TotalEntries int                         `json:"total_entries"`
	Layers       map[string]layer.Statistics `json:"layers"`
}

// LayerStatistics returns statistics for one layer.
func (s *ContextStore) LayerStatistics(layerName string) (layer.Statistics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.layers.ByName(layerName)
	if !ok {
		return layer.Statistics{}, fmt.Errorf("%w: %s", ErrInvalidLayer, layerName)
	}
	return l.Stats(), nil
}

// Statistics returns statistics for every layer.
func (s *ContextStore) Statistics() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{Layers: make(map[string]layer.Statistics, 4)}
	for _, l := range s.layers.All() {
		ls := l.Stats()
		st.Layers[l.Name] = ls
		st.TotalEntries += ls.TotalEntries
	}
	return st
}
