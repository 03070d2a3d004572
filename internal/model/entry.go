// Package model defines the core context data types.
package model

import "time"

// Entry represents a single context entry flowing through the layers.
type Entry struct {
	ID         string      `json:"id"`
	Content    string      `json:"content"`
	Timestamp  time.Time   `json:"timestamp"`
	Source     string      `json:"source"`
	Importance float64     `json:"importance"`
	Attrs      *Attributes `json:"metadata,omitempty"`
}

// Attributes holds the optional per-entry metadata. Field names mirror the
// metadata keys consumers already depend on.
type Attributes struct {
	Topic          string   `json:"topic,omitempty"`
	Topics         []string `json:"topics,omitempty"`
	Themes         []string `json:"themes,omitempty"`
	Keywords       []string `json:"keywords,omitempty"`
	Type           string   `json:"type,omitempty"`
	ReferenceCount int      `json:"reference_count,omitempty"`
	Verified       bool     `json:"verified,omitempty"`
	IsKeyPoint     bool     `json:"is_key_point,omitempty"`

	// UserImportance scales the rescoring formula; zero means unset (1.0).
	UserImportance float64 `json:"user_importance,omitempty"`

	// Promotion lineage.
	PromotedFrom  string     `json:"promoted_from,omitempty"`
	CurrentLayer  string     `json:"current_layer,omitempty"`
	PromotionTime *time.Time `json:"promotion_time,omitempty"`

	// Framework and knowledge cross-references.
	FrameworkRelevant    bool            `json:"framework_relevant,omitempty"`
	RelationshipStrength float64         `json:"relationship_strength,omitempty"`
	RelatedEntries       []time.Time     `json:"related_entries,omitempty"`
	TopicIndex           map[string]bool `json:"topic_index,omitempty"`
	IndexedAt            *time.Time      `json:"indexed_at,omitempty"`

	Extra map[string]any `json:"extra,omitempty"`
}

// EnsureAttrs returns the entry's attributes, allocating them on first use.
func (e *Entry) EnsureAttrs() *Attributes {
	if e.Attrs == nil {
		e.Attrs = &Attributes{}
	}
	return e.Attrs
}

// UserImportanceOrDefault returns the user-supplied importance multiplier,
// defaulting to 1.0 when unset.
func (e *Entry) UserImportanceOrDefault() float64 {
	if e.Attrs == nil || e.Attrs.UserImportance == 0 {
		return 1.0
	}
	return e.Attrs.UserImportance
}

// ReferenceCount returns the entry's reference count, zero when unset.
func (e *Entry) ReferenceCount() int {
	if e.Attrs == nil {
		return 0
	}
	return e.Attrs.ReferenceCount
}

// Clone returns a deep copy of the entry. Promoted copies must not share
// attribute storage with the original.
func (e *Entry) Clone() *Entry {
	c := *e
	if e.Attrs != nil {
		a := *e.Attrs
		a.Topics = append([]string(nil), e.Attrs.Topics...)
		a.Themes = append([]string(nil), e.Attrs.Themes...)
		a.Keywords = append([]string(nil), e.Attrs.Keywords...)
		a.RelatedEntries = append([]time.Time(nil), e.Attrs.RelatedEntries...)
		if e.Attrs.TopicIndex != nil {
			a.TopicIndex = make(map[string]bool, len(e.Attrs.TopicIndex))
			for k, v := range e.Attrs.TopicIndex {
				a.TopicIndex[k] = v
			}
		}
		if e.Attrs.Extra != nil {
			a.Extra = make(map[string]any, len(e.Attrs.Extra))
			for k, v := range e.Attrs.Extra {
				a.Extra[k] = v
			}
		}
		c.Attrs = &a
	}
	return &c
}
