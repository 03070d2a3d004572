// Package retrieval implements keyword relevance search across context
// layers. The engine is stateless and never mutates entries; scores are
// returned alongside each match.
package retrieval

import (
	"math"
	"sort"
	"time"

	"github.com/rcliao/board-context/internal/keywords"
	"github.com/rcliao/board-context/internal/layer"
	"github.com/rcliao/board-context/internal/model"
)

// MinRelevance is the score below which matches are excluded.
const MinRelevance = 0.3

// Relevance weights: keyword overlap dominates, then recency, then
// importance.
const (
	overlapWeight    = 0.5
	recencyWeight    = 0.3
	importanceWeight = 0.2
)

// ScoredEntry pairs an entry with its relevance score.
type ScoredEntry struct {
	Entry *model.Entry `json:"entry"`
	Score float64      `json:"search_relevance"`
}

// Engine performs searches over a caller-supplied layer set.
type Engine struct{}

// NewEngine creates a retrieval engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Search scores every entry in the targeted layers against the query and
// returns matches above the relevance threshold, ordered by score then
// importance. An empty layer set yields an empty result.
func (en *Engine) Search(query string, layers *layer.Set, targetLayers []string) []ScoredEntry {
	if layers == nil {
		return nil
	}
	queryKeywords := keywords.ExtractSet(query)

	var results []ScoredEntry
	now := time.Now()
	for _, l := range layers.Resolve(targetLayers) {
		for _, e := range l.Entries() {
			score := relevance(e, queryKeywords, now)
			if score > MinRelevance {
				results = append(results, ScoredEntry{Entry: e, Score: score})
			}
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Entry.Importance > results[j].Entry.Importance
	})
	return results
}

// SearchByTopic aggregates topic matches across the targeted layers, ordered
// by importance.
func (en *Engine) SearchByTopic(topic string, layers *layer.Set, targetLayers []string) []*model.Entry {
	if layers == nil {
		return nil
	}
	var results []*model.Entry
	for _, l := range layers.Resolve(targetLayers) {
		results = append(results, l.GetEntriesByTopic(topic)...)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Importance > results[j].Importance
	})
	return results
}

// SearchByTimeframe aggregates entries within the inclusive time range,
// newest first.
func (en *Engine) SearchByTimeframe(layers *layer.Set, start, end *time.Time, targetLayers []string) []*model.Entry {
	if layers == nil {
		return nil
	}
	var results []*model.Entry
	for _, l := range layers.Resolve(targetLayers) {
		results = append(results, l.GetEntries(start, end)...)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Timestamp.After(results[j].Timestamp)
	})
	return results
}

// relevance computes 0.5*overlap_ratio + 0.3*recency + 0.2*importance,
// clamped to 1.0. Entries with no keyword overlap score zero. Entry keywords
// come from the keywords attribute when indexed, otherwise they are derived
// from content the same way query keywords are.
func relevance(e *model.Entry, queryKeywords map[string]bool, now time.Time) float64 {
	if len(queryKeywords) == 0 {
		return 0
	}

	var entryKeywords map[string]bool
	if e.Attrs != nil && len(e.Attrs.Keywords) > 0 {
		entryKeywords = keywords.ToSet(e.Attrs.Keywords)
	} else {
		entryKeywords = keywords.ExtractSet(e.Content)
	}

	overlap := keywords.Overlap(queryKeywords, entryKeywords)
	if overlap == 0 {
		return 0
	}

	overlapRatio := float64(overlap) / float64(len(queryKeywords))
	recency := recencyFactor(e, now)

	score := overlapRatio*overlapWeight + recency*recencyWeight + e.Importance*importanceWeight
	return math.Min(1.0, score)
}

// recencyFactor decays 10% per hour of age with a 0.1 floor.
func recencyFactor(e *model.Entry, now time.Time) float64 {
	ageHours := now.Sub(e.Timestamp).Hours()
	return math.Max(0.1, 1-0.1*ageHours)
}
