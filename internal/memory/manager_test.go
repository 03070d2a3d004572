package memory

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/board-context/internal/layer"
	"github.com/rcliao/board-context/internal/model"
)

func newTestManager() (*Manager, *layer.Set) {
	layers := layer.NewSet(nil)
	return NewManager(layers, zerolog.Nop()), layers
}

func activeEntry(content string, importance float64) *model.Entry {
	e := &model.Entry{
		ID:         model.NewID(),
		Content:    content,
		Timestamp:  time.Now(),
		Source:     "tester",
		Importance: importance,
	}
	e.EnsureAttrs().CurrentLayer = model.ActiveDiscussion
	return e
}

func TestKeyTermPromotesBoostedCopy(t *testing.T) {
	m, layers := newTestManager()

	e := activeEntry("Team agreed on the Q3 roadmap", 0.75)
	layers.ActiveDiscussion.AddEntry(e)
	require.NoError(t, m.ProcessNewEntry(e, model.ActiveDiscussion))

	// The original stays in active discussion at its rescored importance.
	require.Equal(t, 1, layers.ActiveDiscussion.Len())
	assert.Same(t, e, layers.ActiveDiscussion.Entries()[0])
	assert.InDelta(t, 0.75, e.Importance, 0.01)

	// A copy lands in key_points, boosted to 0.8.
	require.Equal(t, 1, layers.KeyPoints.Len())
	c := layers.KeyPoints.Entries()[0]
	assert.NotEqual(t, e.ID, c.ID)
	assert.InDelta(t, 0.8, c.Importance, 0.01)
	assert.Equal(t, model.ActiveDiscussion, c.Attrs.PromotedFrom)
	assert.Equal(t, model.KeyPoints, c.Attrs.CurrentLayer)
	assert.Equal(t, 1, c.Attrs.ReferenceCount)
	assert.NotNil(t, c.Attrs.PromotionTime)
}

func TestKeyTermBoostDoesNotLowerImportance(t *testing.T) {
	m, layers := newTestManager()

	e := activeEntry("Final decision: ship in October", 0.95)
	layers.ActiveDiscussion.AddEntry(e)
	require.NoError(t, m.ProcessNewEntry(e, model.ActiveDiscussion))

	require.Equal(t, 1, layers.KeyPoints.Len())
	assert.InDelta(t, 0.95, layers.KeyPoints.Entries()[0].Importance, 0.01)
}

func TestHighImportanceAutoPromotes(t *testing.T) {
	m, layers := newTestManager()

	e := activeEntry("budget planning for next quarter", 0.75)
	layers.ActiveDiscussion.AddEntry(e)
	require.NoError(t, m.ProcessNewEntry(e, model.ActiveDiscussion))

	require.Equal(t, 1, layers.KeyPoints.Len())
	c := layers.KeyPoints.Entries()[0]
	assert.Equal(t, e.Content, c.Content)
	assert.InDelta(t, 0.75, c.Importance, 0.01)
	assert.Equal(t, 1, layers.ActiveDiscussion.Len())
}

func TestExplicitKeyPointFlagPromotes(t *testing.T) {
	m, layers := newTestManager()

	e := activeEntry("worth keeping around", 0.6)
	e.Attrs.IsKeyPoint = true
	layers.ActiveDiscussion.AddEntry(e)
	require.NoError(t, m.ProcessNewEntry(e, model.ActiveDiscussion))

	assert.Equal(t, 1, layers.KeyPoints.Len())
}

func TestKeyPointPromotionRejectedBelowThreshold(t *testing.T) {
	m, layers := newTestManager()

	e := activeEntry("minor remark", 0.3)
	e.Attrs.IsKeyPoint = true
	layers.ActiveDiscussion.AddEntry(e)

	err := m.ProcessNewEntry(e, model.ActiveDiscussion)
	require.ErrorIs(t, err, ErrPromotionRejected)

	// The original is untouched; no copy was inserted.
	assert.Equal(t, 1, layers.ActiveDiscussion.Len())
	assert.Equal(t, 0, layers.KeyPoints.Len())
}

func TestNoPromotionForOrdinaryEntry(t *testing.T) {
	m, layers := newTestManager()

	e := activeEntry("the weather is nice today", 0.5)
	layers.ActiveDiscussion.AddEntry(e)
	require.NoError(t, m.ProcessNewEntry(e, model.ActiveDiscussion))

	assert.Equal(t, 0, layers.KeyPoints.Len())
}

func TestKnowledgePromotionRequiresVerification(t *testing.T) {
	m, layers := newTestManager()

	e := activeEntry("unverified but important claim", 0.95)
	layers.ActiveDiscussion.AddEntry(e)

	err := m.ProcessPromotion(e, layers.PersistentKnowledge)
	require.ErrorIs(t, err, ErrPromotionRejected)
	assert.Equal(t, 1, layers.ActiveDiscussion.Len())
	assert.Equal(t, 0, layers.PersistentKnowledge.Len())
}

func TestKnowledgePromotionRequiresImportance(t *testing.T) {
	m, layers := newTestManager()

	e := activeEntry("verified but weak", 0.6)
	e.Attrs.Verified = true
	layers.ActiveDiscussion.AddEntry(e)

	err := m.ProcessPromotion(e, layers.PersistentKnowledge)
	require.ErrorIs(t, err, ErrPromotionRejected)
	assert.Equal(t, 0, layers.PersistentKnowledge.Len())
}

func TestPromotionMovesEntry(t *testing.T) {
	m, layers := newTestManager()

	e := activeEntry("verified fact worth keeping", 0.85)
	e.Attrs.Verified = true
	layers.ActiveDiscussion.AddEntry(e)

	require.NoError(t, m.ProcessPromotion(e, layers.PersistentKnowledge))

	assert.Equal(t, 0, layers.ActiveDiscussion.Len())
	require.Equal(t, 1, layers.PersistentKnowledge.Len())
	assert.Same(t, e, layers.PersistentKnowledge.Entries()[0])
	assert.Equal(t, model.ActiveDiscussion, e.Attrs.PromotedFrom)
	assert.Equal(t, model.PersistentKnowledge, e.Attrs.CurrentLayer)
	assert.Equal(t, 1, e.Attrs.ReferenceCount)
}

func TestRescoreCompoundsAcrossCalls(t *testing.T) {
	m, layers := newTestManager()

	e := activeEntry("two hours old", 0.8)
	e.Timestamp = time.Now().Add(-2 * time.Hour)
	layers.ActiveDiscussion.AddEntry(e)

	// time_factor for a 2h-old entry is 0.8.
	m.RescoreAll()
	assert.InDelta(t, 0.64, e.Importance, 0.01)

	// A second pass multiplies again; scores are not stable between calls.
	m.RescoreAll()
	assert.InDelta(t, 0.512, e.Importance, 0.01)
}

func TestRescoreReferenceBoostAndCap(t *testing.T) {
	m, layers := newTestManager()

	boosted := activeEntry("referenced often", 0.5)
	boosted.Attrs.ReferenceCount = 5
	layers.ActiveDiscussion.AddEntry(boosted)

	capped := activeEntry("maximally referenced", 0.9)
	capped.Attrs.ReferenceCount = 20
	layers.ActiveDiscussion.AddEntry(capped)

	m.RescoreAll()

	assert.InDelta(t, 0.75, boosted.Importance, 0.01) // 0.5 * 1.5
	assert.InDelta(t, 1.0, capped.Importance, 0.001)  // ref_factor capped at 2.0, result at 1.0
}

func TestRescoreUserImportance(t *testing.T) {
	m, layers := newTestManager()

	e := activeEntry("user downweighted", 0.8)
	e.Attrs.UserImportance = 0.5
	layers.ActiveDiscussion.AddEntry(e)

	m.RescoreAll()
	assert.InDelta(t, 0.4, e.Importance, 0.01)
}

func TestRescoreTimeFactorFloor(t *testing.T) {
	m, layers := newTestManager()

	e := activeEntry("very old", 0.9)
	e.Timestamp = time.Now().Add(-20 * time.Hour)
	layers.KeyPoints.AddEntry(e)
	e.Attrs.CurrentLayer = model.KeyPoints

	// 20h would give a raw factor of -1; the floor holds it at 0.1.
	m.RescoreAll()
	assert.InDelta(t, 0.09, e.Importance, 0.005)
}

func TestRetentionDropsLowImportance(t *testing.T) {
	m, layers := newTestManager()

	layers.KeyPoints.AddEntry(activeEntry("fading point", 0.15))
	layers.KeyPoints.AddEntry(activeEntry("solid point", 0.6))

	m.EnforceRetention()

	for _, l := range layers.All() {
		for _, e := range l.Entries() {
			assert.GreaterOrEqual(t, e.Importance, 0.2)
		}
	}
	assert.Equal(t, 1, layers.KeyPoints.Len())
}

func TestRetentionExpiresOldActiveEntries(t *testing.T) {
	m, layers := newTestManager()

	stale := activeEntry("from yesterday's session", 0.9)
	stale.Timestamp = time.Now().Add(-30 * time.Hour)
	layers.ActiveDiscussion.AddEntry(stale)

	old := activeEntry("also old but persistent", 0.9)
	old.Timestamp = time.Now().Add(-30 * time.Hour)
	old.Attrs.CurrentLayer = model.PersistentKnowledge
	layers.PersistentKnowledge.AddEntry(old)

	m.EnforceRetention()

	// The 24h expiry applies to active discussion only.
	assert.Equal(t, 0, layers.ActiveDiscussion.Len())
	assert.Equal(t, 1, layers.PersistentKnowledge.Len())
}

func TestFrameworkUpdateBoostsTopicMatches(t *testing.T) {
	m, layers := newTestManager()

	match := activeEntry("we need to revisit scope", 0.9)
	match.Attrs.Topic = "roadmap"
	layers.ActiveDiscussion.AddEntry(match)

	other := activeEntry("coffee machine is broken", 0.9)
	other.Attrs.Topic = "facilities"
	layers.ActiveDiscussion.AddEntry(other)

	fw := &model.Entry{
		ID:         model.NewID(),
		Content:    "Agenda item: roadmap review",
		Timestamp:  time.Now(),
		Source:     "system",
		Importance: 1.0,
	}
	fw.EnsureAttrs().Topics = []string{"Roadmap"}
	fw.Attrs.CurrentLayer = model.MeetingFramework
	layers.MeetingFramework.AddEntry(fw)

	m.ProcessFrameworkUpdate(fw)

	// Topic match is case-insensitive; the boost is uncapped.
	assert.InDelta(t, 1.08, match.Importance, 0.001)
	assert.True(t, match.Attrs.FrameworkRelevant)
	assert.InDelta(t, 0.9, other.Importance, 0.001)
	assert.False(t, other.Attrs.FrameworkRelevant)
}

func TestKnowledgeAdditionIndexesAndRelates(t *testing.T) {
	m, layers := newTestManager()

	byKeyword := activeEntry("earlier point", 0.6)
	byKeyword.Attrs.Keywords = []string{"budget"}
	byKeyword.Attrs.CurrentLayer = model.KeyPoints
	layers.KeyPoints.AddEntry(byKeyword)

	byTopic := activeEntry("another point", 0.6)
	byTopic.Attrs.Topic = "finance"
	byTopic.Attrs.CurrentLayer = model.KeyPoints
	layers.KeyPoints.AddEntry(byTopic)

	unrelated := activeEntry("nothing shared", 0.6)
	layers.ActiveDiscussion.AddEntry(unrelated)

	k := &model.Entry{
		ID:         model.NewID(),
		Content:    "budget allocation approved for infrastructure",
		Timestamp:  time.Now(),
		Source:     "system",
		Importance: 0.8,
	}
	k.EnsureAttrs().Topic = "finance"
	k.Attrs.Verified = true
	k.Attrs.CurrentLayer = model.PersistentKnowledge
	layers.PersistentKnowledge.AddEntry(k)

	m.ProcessKnowledgeAddition(k)

	assert.Contains(t, k.Attrs.Keywords, "budget")
	assert.Contains(t, k.Attrs.Keywords, "infrastructure")
	assert.True(t, k.Attrs.TopicIndex["finance"])
	assert.NotNil(t, k.Attrs.IndexedAt)

	require.Len(t, byKeyword.Attrs.RelatedEntries, 1)
	assert.InDelta(t, 0.6, byKeyword.Attrs.RelationshipStrength, 0.001)

	require.Len(t, byTopic.Attrs.RelatedEntries, 1)
	assert.InDelta(t, 0.4, byTopic.Attrs.RelationshipStrength, 0.001)

	assert.Empty(t, unrelated.Attrs.RelatedEntries)
}

func TestContainsKeyTerm(t *testing.T) {
	tests := []struct {
		content string
		want    bool
	}{
		{"we reached a decision", true},
		{"new action item for the team", true},
		{"in conclusion, revenue is up", true},
		{"there is broad agreement", true},
		{"they agreed to proceed", true}, // stem of "agreement"
		{"Q2 milestone hit early", true},
		{"the weather is nice", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, containsKeyTerm(tt.content), tt.content)
	}
}
