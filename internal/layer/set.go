package layer

import "github.com/rcliao/board-context/internal/model"

// Set holds the four fixed layers. It replaces name-keyed lookup maps so the
// owning store's layer topology is explicit.
type Set struct {
	ActiveDiscussion    *Layer
	KeyPoints           *Layer
	MeetingFramework    *Layer
	PersistentKnowledge *Layer
}

// NewSet builds the four layers from the given configs, falling back to the
// defaults for any layer missing from cfgs.
func NewSet(cfgs map[string]model.LayerConfig) *Set {
	defaults := model.DefaultLayerConfigs()
	pick := func(name string) model.LayerConfig {
		if cfg, ok := cfgs[name]; ok {
			return cfg
		}
		return defaults[name]
	}
	return &Set{
		ActiveDiscussion:    New(model.ActiveDiscussion, pick(model.ActiveDiscussion)),
		KeyPoints:           New(model.KeyPoints, pick(model.KeyPoints)),
		MeetingFramework:    New(model.MeetingFramework, pick(model.MeetingFramework)),
		PersistentKnowledge: New(model.PersistentKnowledge, pick(model.PersistentKnowledge)),
	}
}

// All returns the layers in tier order.
func (s *Set) All() []*Layer {
	return []*Layer{s.ActiveDiscussion, s.KeyPoints, s.MeetingFramework, s.PersistentKnowledge}
}

// ByName resolves a layer name.
func (s *Set) ByName(name string) (*Layer, bool) {
	switch name {
	case model.ActiveDiscussion:
		return s.ActiveDiscussion, true
	case model.KeyPoints:
		return s.KeyPoints, true
	case model.MeetingFramework:
		return s.MeetingFramework, true
	case model.PersistentKnowledge:
		return s.PersistentKnowledge, true
	}
	return nil, false
}

// Resolve maps the requested layer names to layers, defaulting to all four
// when names is empty. Unknown names are skipped.
func (s *Set) Resolve(names []string) []*Layer {
	if len(names) == 0 {
		return s.All()
	}
	var out []*Layer
	for _, name := range names {
		if l, ok := s.ByName(name); ok {
			out = append(out, l)
		}
	}
	return out
}

// FindByID scans all layers for an entry ID and returns the entry and its
// holding layer.
func (s *Set) FindByID(id string) (*model.Entry, *Layer) {
	for _, l := range s.All() {
		if e := l.FindByID(id); e != nil {
			return e, l
		}
	}
	return nil, nil
}
