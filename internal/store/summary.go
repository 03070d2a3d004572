package store

import (
	"fmt"
	"time"
)

// LayerSummary renders a summary of one layer, filtered by an optional time
// window and minimum importance.
func (s *ContextStore) LayerSummary(layerName string, timeWindow *time.Duration, minImportance float64) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.layers.ByName(layerName)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidLayer, layerName)
	}
	return s.summarizer.CreateLayerSummary(l, timeWindow, minImportance), nil
}

// MultiLayerSummary renders per-layer summaries under headings, using each
// layer's fixed minimum-importance threshold.
func (s *ContextStore) MultiLayerSummary(targetLayers []string, timeWindow *time.Duration) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summarizer.CreateMultiLayerSummary(s.layers, targetLayers, timeWindow)
}

// TopicSummary renders a summary of all entries matching the topic.
func (s *ContextStore) TopicSummary(topic string, targetLayers ...string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summarizer.CreateTopicSummary(topic, s.layers, targetLayers)
}
