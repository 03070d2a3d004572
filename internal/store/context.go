package store

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rcliao/board-context/internal/model"
)

// ContextResult is the combined read path consumed before each discussion
// turn.
type ContextResult struct {
	Topic             string         `json:"topic"`
	TopicSummary      string         `json:"topic_summary"`
	RelevantEntries   []*model.Entry `json:"relevant_entries"`
	Framework         string         `json:"framework"`
	KeyPoints         string         `json:"key_points"`
	AdditionalContext map[string]any `json:"additional_context,omitempty"`
}

// GetContext merges topic search results, the topic summary, the framework
// and key-points summaries, and caller-supplied extra data.
func (s *ContextStore) GetContext(topic string, additionalContext map[string]any) *ContextResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return &ContextResult{
		Topic:             topic,
		TopicSummary:      s.summarizer.CreateTopicSummary(topic, s.layers, nil),
		RelevantEntries:   s.retrieval.SearchByTopic(topic, s.layers, nil),
		Framework:         s.summarizer.CreateLayerSummary(s.layers.MeetingFramework, nil, 0),
		KeyPoints:         s.summarizer.CreateLayerSummary(s.layers.KeyPoints, nil, 0),
		AdditionalContext: additionalContext,
	}
}

// Contribution is a participant's turn output recorded by the orchestrator.
type Contribution struct {
	Content    string         `json:"content"`
	Source     string         `json:"source"`
	Type       string         `json:"type,omitempty"`
	Importance *float64       `json:"importance,omitempty"`
	IsKeyPoint bool           `json:"is_key_point,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// AddContribution records a contribution under a topic in active discussion
// and mirrors it into key_points when it is important enough or explicitly
// flagged.
func (s *ContextStore) AddContribution(topic string, c Contribution) error {
	source := c.Source
	if source == "" {
		source = "unknown"
	}
	ctype := c.Type
	if ctype == "" {
		ctype = "discussion"
	}

	_, err := s.AddEntry(AddParams{
		Content:    c.Content,
		Source:     source,
		Layer:      model.ActiveDiscussion,
		Importance: c.Importance,
		Attrs: &model.Attributes{
			Topic:      topic,
			Type:       ctype,
			IsKeyPoint: c.IsKeyPoint,
			Extra:      c.Metadata,
		},
	})
	if err != nil {
		return err
	}

	imp := 0.5
	if c.Importance != nil {
		imp = *c.Importance
	}
	if imp >= 0.7 || c.IsKeyPoint {
		keyImp := math.Max(0.7, imp)
		_, err = s.AddEntry(AddParams{
			Content:    c.Content,
			Source:     source,
			Layer:      model.KeyPoints,
			Importance: &keyImp,
			Attrs: &model.Attributes{
				Topic: topic,
				Type:  "key_point",
				Extra: c.Metadata,
			},
		})
	}
	return err
}

// FormatConfig describes the meeting format used to seed the context.
type FormatConfig struct {
	Format   string         `json:"format"`
	Topics   []string       `json:"topics,omitempty"`
	Settings map[string]any `json:"settings,omitempty"`
}

// InitializeContext seeds the framework layer with the meeting format and
// posts the format and topic list into the discussion layers.
func (s *ContextStore) InitializeContext(cfg FormatConfig) error {
	format := cfg.Format
	if format == "" {
		format = "standard"
	}

	s.UpdateFramework(FrameworkParams{
		Content: "Meeting Format Configuration",
		Attrs: &model.Attributes{
			Type:  "format_config",
			Extra: map[string]any{"format": format, "settings": cfg.Settings},
		},
	})

	imp := 0.8
	if _, err := s.AddEntry(AddParams{
		Content:    "Meeting Format: " + format,
		Source:     "system",
		Layer:      model.ActiveDiscussion,
		Importance: &imp,
		Attrs:      &model.Attributes{Type: "format_info"},
	}); err != nil {
		return err
	}

	if len(cfg.Topics) > 0 {
		topicImp := 0.9
		if _, err := s.AddEntry(AddParams{
			Content:    "Meeting Topics: " + strings.Join(cfg.Topics, ", "),
			Source:     "system",
			Layer:      model.KeyPoints,
			Importance: &topicImp,
			Attrs:      &model.Attributes{Type: "topics", Topics: cfg.Topics},
		}); err != nil {
			return err
		}
	}
	return nil
}

// TurnRecord is one turn of the discussion history handed back at meeting
// conclusion.
type TurnRecord struct {
	Topic   string `json:"topic"`
	Source  string `json:"source,omitempty"`
	Content string `json:"content,omitempty"`
}

// MeetingSummary is the conclusion report assembled from every layer.
type MeetingSummary struct {
	OverallSummary     string            `json:"overall_summary"`
	LayerSummaries     map[string]string `json:"layer_summaries"`
	TopicSummaries     map[string]string `json:"topic_summaries"`
	TotalContributions int               `json:"total_contributions"`
	TopicsCovered      []string          `json:"topics_covered"`
	Timestamp          time.Time         `json:"timestamp"`
}

// GenerateSummary builds the meeting-conclusion report: per-layer summaries,
// a summary per topic seen in the history, and an overall multi-layer
// summary.
func (s *ContextStore) GenerateSummary(history []TurnRecord) *MeetingSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	layerSummaries := make(map[string]string, len(model.LayerNames))
	for _, l := range s.layers.All() {
		layerSummaries[l.Name] = s.summarizer.CreateLayerSummary(l, nil, 0)
	}

	var topics []string
	seen := map[string]bool{}
	for _, t := range history {
		if t.Topic != "" && !seen[t.Topic] {
			seen[t.Topic] = true
			topics = append(topics, t.Topic)
		}
	}
	sort.Strings(topics)

	topicSummaries := make(map[string]string, len(topics))
	for _, t := range topics {
		topicSummaries[t] = s.summarizer.CreateTopicSummary(t, s.layers, nil)
	}

	return &MeetingSummary{
		OverallSummary:     s.summarizer.CreateMultiLayerSummary(s.layers, nil, nil),
		LayerSummaries:     layerSummaries,
		TopicSummaries:     topicSummaries,
		TotalContributions: len(history),
		TopicsCovered:      topics,
		Timestamp:          time.Now(),
	}
}
