// Package store provides the context manager façade: four fixed layers, the
// memory manager, and the retrieval and summarization engines behind a
// single-writer lock.
package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/rcliao/board-context/internal/layer"
	"github.com/rcliao/board-context/internal/memory"
	"github.com/rcliao/board-context/internal/model"
	"github.com/rcliao/board-context/internal/retrieval"
	"github.com/rcliao/board-context/internal/summary"
)

// ErrInvalidLayer is returned when an unknown layer name is used.
var ErrInvalidLayer = errors.New("invalid layer")

// Config configures a ContextStore.
type Config struct {
	// Layers overrides per-layer configuration; missing layers use defaults.
	Layers map[string]model.LayerConfig

	// Logger receives lifecycle events. Nil disables logging.
	Logger *zerolog.Logger
}

// ContextStore owns the four context layers and the engines operating on
// them. All state is in memory and lost on process exit.
//
// Mutating operations take an exclusive lock for their full
// rescore-and-retention span; read operations (search, summaries, stats)
// share a read lock and never mutate entries. One logical owner is expected
// to drive mutations per meeting.
type ContextStore struct {
	mu         sync.RWMutex
	layers     *layer.Set
	memory     *memory.Manager
	retrieval  *retrieval.Engine
	summarizer *summary.Engine
	log        zerolog.Logger

	cron *cron.Cron
}

// New creates a ContextStore with the given configuration.
func New(cfg Config) *ContextStore {
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	layers := layer.NewSet(cfg.Layers)
	return &ContextStore{
		layers:     layers,
		memory:     memory.NewManager(layers, log),
		retrieval:  retrieval.NewEngine(),
		summarizer: summary.NewEngine(),
		log:        log,
	}
}

// AddParams holds parameters for adding an entry.
type AddParams struct {
	Content    string
	Source     string
	Layer      string
	Importance *float64 // nil uses the layer's default
	Attrs      *model.Attributes
}

// AddEntry creates an entry in the named layer and runs the memory manager's
// new-entry cycle. The entry is returned even when automatic key-point
// promotion is rejected; the rejection is surfaced as the error.
func (s *ContextStore) AddEntry(p AddParams) (*model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.layers.ByName(p.Layer)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLayer, p.Layer)
	}

	imp := model.DefaultImportance(p.Layer)
	if p.Importance != nil {
		imp = *p.Importance
	}

	e := &model.Entry{
		ID:         model.NewID(),
		Content:    p.Content,
		Timestamp:  time.Now(),
		Source:     p.Source,
		Importance: imp,
		Attrs:      p.Attrs,
	}
	e.EnsureAttrs().CurrentLayer = p.Layer

	l.AddEntry(e)
	err := s.memory.ProcessNewEntry(e, p.Layer)

	s.log.Info().Str("id", e.ID).Str("layer", p.Layer).Str("source", p.Source).Msg("entry added")
	return e, err
}

// PromoteEntry moves an entry into the target layer, subject to the target's
// promotion threshold.
func (s *ContextStore) PromoteEntry(e *model.Entry, targetLayer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, ok := s.layers.ByName(targetLayer)
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidLayer, targetLayer)
	}
	return s.memory.ProcessPromotion(e, target)
}

// PromoteByID looks up an entry by ID across all layers and promotes it.
func (s *ContextStore) PromoteByID(id, targetLayer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, ok := s.layers.ByName(targetLayer)
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidLayer, targetLayer)
	}
	e, _ := s.layers.FindByID(id)
	if e == nil {
		return fmt.Errorf("entry not found: %s", id)
	}
	return s.memory.ProcessPromotion(e, target)
}

// FrameworkParams holds parameters for a framework update.
type FrameworkParams struct {
	Content    string
	Importance *float64 // nil defaults to 1.0
	Attrs      *model.Attributes
}

// UpdateFramework adds a structural entry to meeting_framework and tags
// topic-related entries in the discussion layers.
func (s *ContextStore) UpdateFramework(p FrameworkParams) *model.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	imp := model.DefaultImportance(model.MeetingFramework)
	if p.Importance != nil {
		imp = *p.Importance
	}
	e := &model.Entry{
		ID:         model.NewID(),
		Content:    p.Content,
		Timestamp:  time.Now(),
		Source:     "system",
		Importance: imp,
		Attrs:      p.Attrs,
	}
	e.EnsureAttrs().CurrentLayer = model.MeetingFramework

	s.layers.MeetingFramework.AddEntry(e)
	s.memory.ProcessFrameworkUpdate(e)

	s.log.Info().Str("id", e.ID).Msg("framework updated")
	return e
}

// KnowledgeParams holds parameters for a knowledge addition.
type KnowledgeParams struct {
	Content    string
	Importance *float64 // nil defaults to 0.8
	Attrs      *model.Attributes
}

// AddKnowledge adds an entry to persistent_knowledge, indexes its keywords,
// and records relationships to existing entries. When no attributes are
// supplied the entry is treated as verified.
func (s *ContextStore) AddKnowledge(p KnowledgeParams) *model.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	imp := model.DefaultImportance(model.PersistentKnowledge)
	if p.Importance != nil {
		imp = *p.Importance
	}
	attrs := p.Attrs
	if attrs == nil {
		attrs = &model.Attributes{Verified: true}
	}
	e := &model.Entry{
		ID:         model.NewID(),
		Content:    p.Content,
		Timestamp:  time.Now(),
		Source:     "system",
		Importance: imp,
		Attrs:      attrs,
	}
	e.Attrs.CurrentLayer = model.PersistentKnowledge

	s.layers.PersistentKnowledge.AddEntry(e)
	s.memory.ProcessKnowledgeAddition(e)

	s.log.Info().Str("id", e.ID).Msg("knowledge added")
	return e
}

// ClearOldEntries drops entries older than maxAgeHours from the named layer.
func (s *ContextStore) ClearOldEntries(layerName string, maxAgeHours float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.layers.ByName(layerName)
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidLayer, layerName)
	}
	dropped := l.ClearOldEntries(maxAgeHours)
	s.log.Info().Str("layer", layerName).Int("dropped", dropped).Msg("cleared old entries")
	return nil
}

// LayerNames returns the four layer names in tier order.
func (s *ContextStore) LayerNames() []string {
	return append([]string(nil), model.LayerNames...)
}
