package model

// Layer names are fixed; consumers address layers by these strings.
const (
	ActiveDiscussion    = "active_discussion"
	KeyPoints           = "key_points"
	MeetingFramework    = "meeting_framework"
	PersistentKnowledge = "persistent_knowledge"
)

// LayerNames lists the four layers in promotion order, lowest tier first.
var LayerNames = []string{ActiveDiscussion, KeyPoints, MeetingFramework, PersistentKnowledge}

// Retention policies.
const (
	RetentionImportance = "importance"
	RetentionTime       = "time"
	RetentionManual     = "manual"
)

// LayerConfig controls a layer's capacity and retention behavior.
// MaxTokens is a soft budget carried for consumers; it is not enforced by
// token counting.
type LayerConfig struct {
	MaxEntries          int    `json:"max_entries" yaml:"max_entries"`
	MaxTokens           int    `json:"max_tokens" yaml:"max_tokens"`
	RetentionPolicy     string `json:"retention_policy" yaml:"retention_policy"`
	SummarizationPolicy string `json:"summarization_policy" yaml:"summarization_policy"`
}

// DefaultLayerConfigs returns the stock configuration for the four layers.
func DefaultLayerConfigs() map[string]LayerConfig {
	return map[string]LayerConfig{
		ActiveDiscussion: {
			MaxEntries:          50,
			MaxTokens:           8000,
			RetentionPolicy:     RetentionTime,
			SummarizationPolicy: "recent_first",
		},
		KeyPoints: {
			MaxEntries:          100,
			MaxTokens:           12000,
			RetentionPolicy:     RetentionImportance,
			SummarizationPolicy: "importance_first",
		},
		MeetingFramework: {
			MaxEntries:          20,
			MaxTokens:           4000,
			RetentionPolicy:     RetentionManual,
			SummarizationPolicy: "structured",
		},
		PersistentKnowledge: {
			MaxEntries:          200,
			MaxTokens:           16000,
			RetentionPolicy:     RetentionImportance,
			SummarizationPolicy: "importance_first",
		},
	}
}

// DefaultImportance returns the initial importance assigned to entries
// created through the store's write paths when the caller supplies none.
func DefaultImportance(layerName string) float64 {
	switch layerName {
	case MeetingFramework:
		return 1.0
	case PersistentKnowledge:
		return 0.8
	default:
		return 0.5
	}
}
