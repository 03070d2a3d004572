package store

import (
	"time"

	"github.com/rcliao/board-context/internal/model"
	"github.com/rcliao/board-context/internal/retrieval"
)

// SearchParams holds parameters for a relevance search.
type SearchParams struct {
	Query        string
	TargetLayers []string // empty searches all layers
	MinRelevance float64  // 0 uses the engine threshold (0.3)
}

// Search returns entries relevant to the query, best match first. Scores are
// returned alongside entries; nothing is written back.
func (s *ContextStore) Search(p SearchParams) []retrieval.ScoredEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := s.retrieval.Search(p.Query, s.layers, p.TargetLayers)
	if p.MinRelevance <= retrieval.MinRelevance {
		return results
	}
	filtered := results[:0]
	for _, r := range results {
		if r.Score >= p.MinRelevance {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// SearchByTopic returns topic-matching entries across the targeted layers,
// most important first. Topic matching is case-insensitive.
func (s *ContextStore) SearchByTopic(topic string, targetLayers ...string) []*model.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.retrieval.SearchByTopic(topic, s.layers, targetLayers)
}

// SearchByTimeframe returns entries within the inclusive time range, newest
// first. Nil bounds are open.
func (s *ContextStore) SearchByTimeframe(start, end *time.Time, targetLayers ...string) []*model.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.retrieval.SearchByTimeframe(s.layers, start, end, targetLayers)
}
