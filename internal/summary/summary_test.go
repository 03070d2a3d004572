package summary

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/board-context/internal/layer"
	"github.com/rcliao/board-context/internal/model"
)

func entry(content, source string, importance float64, age time.Duration) *model.Entry {
	return &model.Entry{
		ID:         model.NewID(),
		Content:    content,
		Timestamp:  time.Now().Add(-age),
		Source:     source,
		Importance: importance,
	}
}

func TestLayerSummaryEmptyLayer(t *testing.T) {
	en := NewEngine()
	l := layer.New(model.KeyPoints, model.LayerConfig{MaxEntries: 50})

	assert.Equal(t, NoEntries, en.CreateLayerSummary(l, nil, 0))
}

func TestLayerSummaryMinImportanceFilter(t *testing.T) {
	en := NewEngine()
	l := layer.New(model.KeyPoints, model.LayerConfig{MaxEntries: 50})
	l.AddEntry(entry("weak point", "alice", 0.2, 0))

	assert.Equal(t, NoEntries, en.CreateLayerSummary(l, nil, 0.5))
}

func TestLayerSummaryTimeWindowFilter(t *testing.T) {
	en := NewEngine()
	l := layer.New(model.KeyPoints, model.LayerConfig{MaxEntries: 50})
	l.AddEntry(entry("stale point", "alice", 0.9, 3*time.Hour))

	window := time.Hour
	assert.Equal(t, NoEntries, en.CreateLayerSummary(l, &window, 0))
	assert.NotEqual(t, NoEntries, en.CreateLayerSummary(l, nil, 0))
}

func TestLayerSummarySections(t *testing.T) {
	en := NewEngine()
	l := layer.New(model.KeyPoints, model.LayerConfig{MaxEntries: 50})
	l.AddEntry(entry("budget approved for engineering", "alice", 0.9, 0))
	l.AddEntry(entry("budget concerns raised by finance", "alice", 0.7, 0))
	l.AddEntry(entry("offsite scheduled", "bob", 0.6, 0))

	out := en.CreateLayerSummary(l, nil, 0)

	assert.Contains(t, out, "### Time Context")
	assert.Contains(t, out, "Single day: "+time.Now().Format("2006-01-02"))
	assert.Contains(t, out, "### Contributors")
	assert.Contains(t, out, "- alice: 2 contributions")
	assert.Contains(t, out, "- bob: 1 contributions")
	// "budget" occurs in two entries, qualifying as a theme.
	assert.Contains(t, out, "### Key Themes\n- budget")
	assert.Contains(t, out, "### Key Points")
	assert.Contains(t, out, "- budget approved for engineering")
}

func TestLayerSummaryKeyPointRules(t *testing.T) {
	en := NewEngine()
	l := layer.New(model.KeyPoints, model.LayerConfig{MaxEntries: 50})

	long := strings.Repeat("x", 120)
	l.AddEntry(entry(long, "alice", 0.9, 0))
	l.AddEntry(entry("below the score floor", "bob", 0.4, 0))

	out := en.CreateLayerSummary(l, nil, 0)

	// Long points are truncated to 100 characters including the ellipsis.
	assert.Contains(t, out, "- "+strings.Repeat("x", 97)+"...")
	assert.NotContains(t, out, long)
	// Sub-0.5 entries are counted as contributors but never listed as points.
	assert.NotContains(t, out, "- below the score floor")
	assert.Contains(t, out, "- bob: 1 contributions")
}

func TestLayerSummaryExplicitThemesFirst(t *testing.T) {
	en := NewEngine()
	l := layer.New(model.KeyPoints, model.LayerConfig{MaxEntries: 50})

	e := entry("budget review scheduled", "alice", 0.8, 0)
	e.EnsureAttrs().Themes = []string{"growth"}
	l.AddEntry(e)
	l.AddEntry(entry("budget planning next steps", "alice", 0.8, 0))

	out := en.CreateLayerSummary(l, nil, 0)
	assert.Contains(t, out, "### Key Themes\n- growth\n- budget")
}

func TestMultiLayerSummary(t *testing.T) {
	en := NewEngine()
	layers := layer.NewSet(nil)

	assert.Equal(t, NoContent, en.CreateMultiLayerSummary(layers, nil, nil))
	assert.Equal(t, NoContent, en.CreateMultiLayerSummary(nil, nil, nil))

	layers.KeyPoints.AddEntry(entry("pricing decision recorded", "ceo", 0.8, 0))
	// Below active discussion's 0.3 floor; its section stays omitted.
	layers.ActiveDiscussion.AddEntry(entry("idle chatter", "bob", 0.25, 0))

	out := en.CreateMultiLayerSummary(layers, nil, nil)
	assert.Contains(t, out, "## Key Points")
	assert.NotContains(t, out, "## Active Discussion")
	assert.Contains(t, out, "- pricing decision recorded")
}

func TestMultiLayerSummaryTargetLayers(t *testing.T) {
	en := NewEngine()
	layers := layer.NewSet(nil)
	layers.KeyPoints.AddEntry(entry("kept point", "ceo", 0.8, 0))
	layers.MeetingFramework.AddEntry(entry("agenda outline", "system", 1.0, 0))

	out := en.CreateMultiLayerSummary(layers, []string{model.MeetingFramework}, nil)
	assert.Contains(t, out, "## Meeting Framework")
	assert.NotContains(t, out, "## Key Points")
}

func TestTopicSummary(t *testing.T) {
	en := NewEngine()
	layers := layer.NewSet(nil)

	assert.Equal(t, "No entries found for topic: pricing", en.CreateTopicSummary("pricing", layers, nil))

	tagged := entry("we should raise prices", "cfo", 0.9, 0)
	tagged.EnsureAttrs().Topic = "Pricing"
	layers.KeyPoints.AddEntry(tagged)

	out := en.CreateTopicSummary("pricing", layers, nil)
	assert.True(t, strings.HasPrefix(out, "# Topic Summary: pricing\n\n"), out)
	assert.Contains(t, out, "- we should raise prices")
}

func TestTimeRangeSpansDays(t *testing.T) {
	entries := []*model.Entry{
		entry("old", "a", 0.8, 72*time.Hour),
		entry("new", "a", 0.8, 0),
	}
	got := timeRange(entries)
	require.True(t, strings.HasPrefix(got, "From "), got)
	assert.Contains(t, got, " to ")
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Key Points", titleCase("key_points"))
	assert.Equal(t, "Active Discussion", titleCase("active_discussion"))
}
