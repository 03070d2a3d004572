// Package layer provides the bounded, policy-governed entry container that
// backs each persistence tier.
package layer

import (
	"sort"
	"strings"
	"time"

	"github.com/rcliao/board-context/internal/model"
)

// Layer is an ordered collection of entries with a capacity cap and a
// retention policy. A layer performs no locking; it is owned by exactly one
// ContextStore, which serializes access.
type Layer struct {
	Name    string
	Config  model.LayerConfig
	entries []*model.Entry
}

// New creates an empty layer.
func New(name string, cfg model.LayerConfig) *Layer {
	return &Layer{Name: name, Config: cfg}
}

// AddEntry appends an entry and re-enforces the layer's limits.
func (l *Layer) AddEntry(e *model.Entry) {
	l.entries = append(l.entries, e)
	l.EnforceLimits()
}

// Entries returns the live entry slice. Callers must not retain it across
// mutations.
func (l *Layer) Entries() []*model.Entry {
	return l.entries
}

// Len returns the number of entries currently held.
func (l *Layer) Len() int {
	return len(l.entries)
}

// GetEntries returns entries within the inclusive time range. Nil bounds are
// open.
func (l *Layer) GetEntries(start, end *time.Time) []*model.Entry {
	if start == nil && end == nil {
		return append([]*model.Entry(nil), l.entries...)
	}
	var out []*model.Entry
	for _, e := range l.entries {
		if start != nil && e.Timestamp.Before(*start) {
			continue
		}
		if end != nil && e.Timestamp.After(*end) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// GetEntriesByTopic returns entries matching the topic: a case-insensitive
// match on the topic attribute, the topics list, or a literal substring of
// the content.
func (l *Layer) GetEntriesByTopic(topic string) []*model.Entry {
	topicLower := strings.ToLower(topic)
	var out []*model.Entry
	for _, e := range l.entries {
		if entryMatchesTopic(e, topicLower) {
			out = append(out, e)
		}
	}
	return out
}

func entryMatchesTopic(e *model.Entry, topicLower string) bool {
	if e.Attrs != nil {
		if strings.ToLower(e.Attrs.Topic) == topicLower {
			return true
		}
		for _, t := range e.Attrs.Topics {
			if strings.ToLower(t) == topicLower {
				return true
			}
		}
	}
	return strings.Contains(strings.ToLower(e.Content), topicLower)
}

// GetEntriesBySource returns entries whose source matches, case-insensitively.
func (l *Layer) GetEntriesBySource(source string) []*model.Entry {
	var out []*model.Entry
	for _, e := range l.entries {
		if strings.EqualFold(e.Source, source) {
			out = append(out, e)
		}
	}
	return out
}

// EnforceLimits sorts entries per the retention policy and truncates past
// MaxEntries. Importance retention orders by importance then recency;
// everything else orders by recency alone.
func (l *Layer) EnforceLimits() {
	if l.Config.RetentionPolicy == model.RetentionImportance {
		sort.SliceStable(l.entries, func(i, j int) bool {
			if l.entries[i].Importance != l.entries[j].Importance {
				return l.entries[i].Importance > l.entries[j].Importance
			}
			return l.entries[i].Timestamp.After(l.entries[j].Timestamp)
		})
	} else {
		sort.SliceStable(l.entries, func(i, j int) bool {
			return l.entries[i].Timestamp.After(l.entries[j].Timestamp)
		})
	}

	if l.Config.MaxEntries > 0 && len(l.entries) > l.Config.MaxEntries {
		l.entries = l.entries[:l.Config.MaxEntries]
	}
}

// ClearOldEntries drops entries older than maxAgeHours.
func (l *Layer) ClearOldEntries(maxAgeHours float64) int {
	cutoff := time.Now().Add(-time.Duration(maxAgeHours * float64(time.Hour)))
	kept := l.entries[:0]
	dropped := 0
	for _, e := range l.entries {
		if e.Timestamp.Before(cutoff) {
			dropped++
			continue
		}
		kept = append(kept, e)
	}
	l.entries = kept
	return dropped
}

// Filter keeps only entries for which keep returns true and reports how many
// were dropped.
func (l *Layer) Filter(keep func(*model.Entry) bool) int {
	kept := l.entries[:0]
	dropped := 0
	for _, e := range l.entries {
		if keep(e) {
			kept = append(kept, e)
		} else {
			dropped++
		}
	}
	l.entries = kept
	return dropped
}

// Remove deletes the entry (by identity) from the layer.
func (l *Layer) Remove(target *model.Entry) bool {
	for i, e := range l.entries {
		if e == target {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns the entry with the given ID, or nil.
func (l *Layer) FindByID(id string) *model.Entry {
	for _, e := range l.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Statistics summarizes the layer's contents.
type Statistics struct {
	TotalEntries  int        `json:"total_entries"`
	AvgImportance float64    `json:"avg_importance"`
	OldestEntry   *time.Time `json:"oldest_entry,omitempty"`
	NewestEntry   *time.Time `json:"newest_entry,omitempty"`
	Sources       []string   `json:"sources"`
}

// Stats computes the layer's statistics.
func (l *Layer) Stats() Statistics {
	st := Statistics{Sources: []string{}}
	if len(l.entries) == 0 {
		return st
	}

	st.TotalEntries = len(l.entries)
	var sum float64
	oldest, newest := l.entries[0].Timestamp, l.entries[0].Timestamp
	seen := map[string]bool{}
	for _, e := range l.entries {
		sum += e.Importance
		if e.Timestamp.Before(oldest) {
			oldest = e.Timestamp
		}
		if e.Timestamp.After(newest) {
			newest = e.Timestamp
		}
		if !seen[e.Source] {
			seen[e.Source] = true
			st.Sources = append(st.Sources, e.Source)
		}
	}
	st.AvgImportance = sum / float64(len(l.entries))
	st.OldestEntry = &oldest
	st.NewestEntry = &newest
	sort.Strings(st.Sources)
	return st
}
