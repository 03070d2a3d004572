// Package memory implements cross-layer promotion, importance rescoring, and
// retention. The Manager is the only component that moves entries between
// layers.
package memory

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rcliao/board-context/internal/keywords"
	"github.com/rcliao/board-context/internal/layer"
	"github.com/rcliao/board-context/internal/model"
)

// ErrPromotionRejected is returned when an entry does not meet the target
// layer's promotion threshold. The layers are left untouched.
var ErrPromotionRejected = errors.New("promotion rejected")

// Promotion thresholds.
const (
	keyPointsMinImportance = 0.5
	knowledgeMinImportance = 0.8

	// Auto-promotion criteria for active discussion entries.
	autoPromoteImportance = 0.7
	keyTermBoost          = 0.8

	// Retention thresholds.
	retentionMinImportance = 0.2
	activeMaxAgeHours      = 24
)

// keyTerms trigger automatic key-point promotion when present in content.
var keyTerms = []string{"decision", "action item", "conclusion", "agreement", "milestone"}

// Manager orchestrates entry lifecycle across the four layers.
type Manager struct {
	layers *layer.Set
	log    zerolog.Logger
}

// NewManager creates a manager over the given layer set.
func NewManager(layers *layer.Set, log zerolog.Logger) *Manager {
	return &Manager{layers: layers, log: log}
}

// ProcessNewEntry runs the per-write maintenance cycle: rescore every entry
// in every layer, evaluate the new entry for key-point promotion (active
// discussion only), then run a retention pass.
//
// Rescoring is intentionally applied on every call, so importance compounds
// across consecutive writes. That matches the system's established behavior;
// callers must not assume scores are stable between calls.
func (m *Manager) ProcessNewEntry(e *model.Entry, layerName string) error {
	m.RescoreAll()

	var promoErr error
	if layerName == model.ActiveDiscussion {
		promoErr = m.checkForKeyPoints(e)
	}

	m.EnforceRetention()
	return promoErr
}

// ProcessPromotion moves an entry into the target layer after validating the
// target's threshold. On rejection no layer is mutated.
func (m *Manager) ProcessPromotion(e *model.Entry, target *layer.Layer) error {
	if err := validatePromotion(e, target.Name); err != nil {
		return err
	}
	m.move(e, target)
	m.EnforceRetention()
	return nil
}

// ProcessFrameworkUpdate tags every active-discussion and key-points entry
// sharing a topic with the framework entry and boosts its importance by 1.2.
// The boost is uncapped; that mirrors the framework layer's established
// behavior and is pending product-owner review.
func (m *Manager) ProcessFrameworkUpdate(e *model.Entry) {
	frameworkTopics := topicSet(e)
	if len(frameworkTopics) > 0 {
		tagged := 0
		for _, l := range []*layer.Layer{m.layers.ActiveDiscussion, m.layers.KeyPoints} {
			for _, existing := range l.Entries() {
				if keywords.Overlap(frameworkTopics, topicSet(existing)) == 0 {
					continue
				}
				existing.EnsureAttrs().FrameworkRelevant = true
				existing.Importance *= 1.2
				tagged++
			}
		}
		m.log.Debug().Int("tagged", tagged).Msg("framework update applied")
	}
	m.EnforceRetention()
}

// ProcessKnowledgeAddition indexes a knowledge entry's keywords and topics,
// then records relationship strength and a back-reference on every related
// entry across all layers.
func (m *Manager) ProcessKnowledgeAddition(e *model.Entry) {
	attrs := e.EnsureAttrs()
	attrs.Keywords = keywords.Extract(e.Content)

	entryTopics := topicSet(e)
	if len(entryTopics) > 0 {
		if attrs.TopicIndex == nil {
			attrs.TopicIndex = map[string]bool{}
		}
		for t := range entryTopics {
			attrs.TopicIndex[t] = true
		}
	}
	now := time.Now()
	attrs.IndexedAt = &now

	kwSet := keywords.ToSet(attrs.Keywords)
	related := 0
	for _, l := range m.layers.All() {
		for _, existing := range l.Entries() {
			if existing == e {
				continue
			}
			var existingKw []string
			if existing.Attrs != nil {
				existingKw = existing.Attrs.Keywords
			}
			kwOverlap := keywords.Overlap(kwSet, keywords.ToSet(existingKw))
			topicOverlap := keywords.Overlap(entryTopics, topicSet(existing))
			if kwOverlap == 0 && topicOverlap == 0 {
				continue
			}
			ex := existing.EnsureAttrs()
			ex.RelatedEntries = append(ex.RelatedEntries, e.Timestamp)
			ex.RelationshipStrength = 0.6*float64(kwOverlap) + 0.4*float64(topicOverlap)
			related++
		}
	}
	m.log.Debug().Int("keywords", len(attrs.Keywords)).Int("related", related).Msg("knowledge indexed")

	m.EnforceRetention()
}

// RescoreAll applies the importance formula to every entry in every layer:
//
//	importance = min(1.0, importance * time_factor * ref_factor * user_importance)
//
// with time_factor = max(0.1, 1 - 0.1*hours_since_creation) and
// ref_factor = min(2.0, 1 + 0.1*reference_count).
func (m *Manager) RescoreAll() {
	now := time.Now()
	for _, l := range m.layers.All() {
		for _, e := range l.Entries() {
			hours := now.Sub(e.Timestamp).Hours()
			timeFactor := math.Max(0.1, 1-0.1*hours)
			refFactor := math.Min(2.0, 1+0.1*float64(e.ReferenceCount()))
			e.Importance = math.Min(1.0, e.Importance*timeFactor*refFactor*e.UserImportanceOrDefault())
		}
	}
}

// EnforceRetention sweeps all four layers: entries below the importance floor
// are dropped, active discussion expires entries older than 24 hours, and
// capacity caps are re-enforced.
func (m *Manager) EnforceRetention() {
	for _, l := range m.layers.All() {
		dropped := l.Filter(func(e *model.Entry) bool {
			return e.Importance >= retentionMinImportance
		})
		if l == m.layers.ActiveDiscussion {
			dropped += l.ClearOldEntries(activeMaxAgeHours)
		}
		l.EnforceLimits()
		if dropped > 0 {
			m.log.Debug().Str("layer", l.Name).Int("dropped", dropped).Msg("retention pass evicted entries")
		}
	}
}

// checkForKeyPoints evaluates an active-discussion entry for automatic
// key-point promotion. Auto-promotion inserts a copy; the original stays in
// active discussion.
func (m *Manager) checkForKeyPoints(e *model.Entry) error {
	switch {
	case containsKeyTerm(e.Content):
		c := e.Clone()
		c.ID = model.NewID()
		c.Importance = math.Max(keyTermBoost, c.Importance)
		return m.promoteCopy(c)
	case e.Importance >= autoPromoteImportance:
		c := e.Clone()
		c.ID = model.NewID()
		return m.promoteCopy(c)
	case e.Attrs != nil && e.Attrs.IsKeyPoint:
		c := e.Clone()
		c.ID = model.NewID()
		return m.promoteCopy(c)
	}
	return nil
}

func (m *Manager) promoteCopy(c *model.Entry) error {
	if err := validatePromotion(c, model.KeyPoints); err != nil {
		return err
	}
	stampPromotion(c, model.KeyPoints)
	m.layers.KeyPoints.AddEntry(c)
	m.log.Debug().Str("id", c.ID).Str("source", c.Source).Msg("entry promoted to key points")
	return nil
}

// move relocates an entry into the target layer, stamping its lineage.
func (m *Manager) move(e *model.Entry, target *layer.Layer) {
	for _, l := range m.layers.All() {
		if l.Remove(e) {
			break
		}
	}
	stampPromotion(e, target.Name)
	target.AddEntry(e)
	m.log.Debug().Str("id", e.ID).Str("layer", target.Name).Msg("entry promoted")
}

func stampPromotion(e *model.Entry, targetName string) {
	attrs := e.EnsureAttrs()
	from := attrs.CurrentLayer
	if from == "" {
		from = "unknown"
	}
	attrs.PromotedFrom = from
	attrs.CurrentLayer = targetName
	now := time.Now()
	attrs.PromotionTime = &now
	attrs.ReferenceCount++
}

func validatePromotion(e *model.Entry, targetName string) error {
	switch targetName {
	case model.KeyPoints:
		if e.Importance < keyPointsMinImportance {
			return fmt.Errorf("%w: importance %.2f below %.2f required for %s",
				ErrPromotionRejected, e.Importance, keyPointsMinImportance, model.KeyPoints)
		}
	case model.PersistentKnowledge:
		if e.Attrs == nil || !e.Attrs.Verified {
			return fmt.Errorf("%w: entry must be verified for %s",
				ErrPromotionRejected, model.PersistentKnowledge)
		}
		if e.Importance < knowledgeMinImportance {
			return fmt.Errorf("%w: importance %.2f below %.2f required for %s",
				ErrPromotionRejected, e.Importance, knowledgeMinImportance, model.PersistentKnowledge)
		}
	}
	return nil
}

// containsKeyTerm reports whether content mentions one of the fixed key
// terms. Terms also match on their leading stem so inflected forms like
// "agreed" still count against "agreement".
func containsKeyTerm(content string) bool {
	c := strings.ToLower(content)
	for _, term := range keyTerms {
		if strings.Contains(c, term) {
			return true
		}
		if len(term) > 5 && strings.Contains(c, term[:5]) {
			return true
		}
	}
	return false
}

// topicSet collects an entry's topic attribute and topics list, lower-cased.
func topicSet(e *model.Entry) map[string]bool {
	set := map[string]bool{}
	if e.Attrs == nil {
		return set
	}
	if e.Attrs.Topic != "" {
		set[strings.ToLower(e.Attrs.Topic)] = true
	}
	for _, t := range e.Attrs.Topics {
		set[strings.ToLower(t)] = true
	}
	return set
}
