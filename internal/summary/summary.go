// Package summary synthesizes structured text summaries of context layers.
// Everything here is heuristic string assembly; no model calls are involved.
package summary

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rcliao/board-context/internal/keywords"
	"github.com/rcliao/board-context/internal/layer"
	"github.com/rcliao/board-context/internal/model"
)

// Sentinels returned when nothing qualifies for a summary.
const (
	NoEntries = "No significant entries found in the specified timeframe."
	NoContent = "No significant content to summarize."
)

// Per-layer minimum importance for multi-layer summaries.
var multiLayerMinImportance = map[string]float64{
	model.ActiveDiscussion:    0.3,
	model.KeyPoints:           0.5,
	model.MeetingFramework:    0.0,
	model.PersistentKnowledge: 0.7,
}

const (
	maxKeyPoints       = 5
	keyPointMinScore   = 0.5
	keyPointMaxLen     = 100
	maxKeywordThemes   = 5
	themeMinOccurrence = 2
)

// Engine renders layer and topic summaries.
type Engine struct{}

// NewEngine creates a summarization engine.
func NewEngine() *Engine {
	return &Engine{}
}

// CreateLayerSummary summarizes one layer, filtered by an optional time
// window and a minimum importance. Returns the NoEntries sentinel when
// nothing qualifies.
func (en *Engine) CreateLayerSummary(l *layer.Layer, timeWindow *time.Duration, minImportance float64) string {
	var entries []*model.Entry
	var cutoff time.Time
	if timeWindow != nil {
		cutoff = time.Now().Add(-*timeWindow)
	}
	for _, e := range l.Entries() {
		if timeWindow != nil && e.Timestamp.Before(cutoff) {
			continue
		}
		if e.Importance < minImportance {
			continue
		}
		entries = append(entries, e)
	}

	if len(entries) == 0 {
		return NoEntries
	}
	return render(entries, extractThemes(entries))
}

// CreateMultiLayerSummary concatenates per-layer summaries under headings,
// applying each layer's fixed minimum-importance threshold. Layers with
// nothing to report are omitted; when every layer is empty the NoContent
// sentinel is returned.
func (en *Engine) CreateMultiLayerSummary(layers *layer.Set, targetLayers []string, timeWindow *time.Duration) string {
	if layers == nil {
		return NoContent
	}

	var sections []string
	for _, l := range layers.Resolve(targetLayers) {
		s := en.CreateLayerSummary(l, timeWindow, multiLayerMinImportance[l.Name])
		if s == NoEntries {
			continue
		}
		sections = append(sections, fmt.Sprintf("## %s\n%s", titleCase(l.Name), s))
	}

	if len(sections) == 0 {
		return NoContent
	}
	return strings.Join(sections, "\n\n")
}

// CreateTopicSummary aggregates topic-matching entries across layers and
// renders them, most important and most recent first.
func (en *Engine) CreateTopicSummary(topic string, layers *layer.Set, targetLayers []string) string {
	var entries []*model.Entry
	if layers != nil {
		for _, l := range layers.Resolve(targetLayers) {
			entries = append(entries, l.GetEntriesByTopic(topic)...)
		}
	}

	if len(entries) == 0 {
		return fmt.Sprintf("No entries found for topic: %s", topic)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Importance != entries[j].Importance {
			return entries[i].Importance > entries[j].Importance
		}
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	body := render(entries, extractThemes(entries))
	return fmt.Sprintf("# Topic Summary: %s\n\n%s", topic, body)
}

// extractThemes merges explicit theme attributes with keywords occurring at
// least twice across the entries. Explicit themes come first; keyword themes
// are ordered by frequency then alphabetically.
func extractThemes(entries []*model.Entry) []string {
	counts := map[string]int{}
	var explicit []string
	explicitSet := map[string]bool{}

	for _, e := range entries {
		var kws []string
		if e.Attrs != nil && len(e.Attrs.Keywords) > 0 {
			kws = e.Attrs.Keywords
		} else {
			kws = keywords.Extract(e.Content)
		}
		for _, w := range kws {
			counts[w]++
		}
		if e.Attrs != nil {
			for _, t := range e.Attrs.Themes {
				if !explicitSet[t] {
					explicitSet[t] = true
					explicit = append(explicit, t)
				}
			}
		}
	}

	type kc struct {
		word  string
		count int
	}
	var frequent []kc
	for w, c := range counts {
		if c >= themeMinOccurrence && !explicitSet[w] {
			frequent = append(frequent, kc{w, c})
		}
	}
	sort.Slice(frequent, func(i, j int) bool {
		if frequent[i].count != frequent[j].count {
			return frequent[i].count > frequent[j].count
		}
		return frequent[i].word < frequent[j].word
	})
	if len(frequent) > maxKeywordThemes {
		frequent = frequent[:maxKeywordThemes]
	}

	themes := append([]string(nil), explicit...)
	for _, f := range frequent {
		themes = append(themes, f.word)
	}
	return themes
}

// render assembles the four summary sections: time context, contributors,
// themes, and the top key points.
func render(entries []*model.Entry, themes []string) string {
	var b strings.Builder

	b.WriteString("### Time Context\n")
	b.WriteString(timeRange(entries))
	b.WriteString("\n\n### Contributors\n")
	b.WriteString(contributors(entries))

	b.WriteString("\n\n### Key Themes\n")
	for _, t := range themes {
		fmt.Fprintf(&b, "- %s\n", t)
	}

	b.WriteString("\n### Key Points\n")
	top := append([]*model.Entry(nil), entries...)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Importance > top[j].Importance
	})
	if len(top) > maxKeyPoints {
		top = top[:maxKeyPoints]
	}
	for _, e := range top {
		if e.Importance < keyPointMinScore {
			continue
		}
		point := strings.TrimSpace(e.Content)
		if len(point) > keyPointMaxLen {
			point = point[:keyPointMaxLen-3] + "..."
		}
		fmt.Fprintf(&b, "- %s\n", point)
	}

	return strings.TrimRight(b.String(), "\n")
}

// timeRange reports a single day or a span, depending on the entries.
func timeRange(entries []*model.Entry) string {
	start, end := entries[0].Timestamp, entries[0].Timestamp
	for _, e := range entries {
		if e.Timestamp.Before(start) {
			start = e.Timestamp
		}
		if e.Timestamp.After(end) {
			end = e.Timestamp
		}
	}
	const day = "2006-01-02"
	if start.Format(day) == end.Format(day) {
		return fmt.Sprintf("Single day: %s", start.Format(day))
	}
	return fmt.Sprintf("From %s to %s", start.Format(day), end.Format(day))
}

// contributors lists sources by contribution count, descending.
func contributors(entries []*model.Entry) string {
	counts := map[string]int{}
	var order []string
	for _, e := range entries {
		if counts[e.Source] == 0 {
			order = append(order, e.Source)
		}
		counts[e.Source]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	var lines []string
	for _, s := range order {
		lines = append(lines, fmt.Sprintf("- %s: %d contributions", s, counts[s]))
	}
	return strings.Join(lines, "\n")
}

// titleCase renders a layer name as a heading ("key_points" -> "Key Points").
func titleCase(name string) string {
	parts := strings.Split(name, "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
