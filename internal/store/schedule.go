package store

import (
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"
)

// DefaultRetentionSchedule sweeps hourly, frequent enough for the 24h
// active-discussion expiry window.
const DefaultRetentionSchedule = "@every 1h"

// StartRetentionSchedule runs retention sweeps on a cron schedule so a
// long-lived owner expires aged entries between writes. The sweep takes the
// store's write lock.
func (s *ContextStore) StartRetentionSchedule(spec string) error {
	if spec == "" {
		spec = DefaultRetentionSchedule
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		return errors.New("retention schedule already running")
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, s.retentionSweep); err != nil {
		return fmt.Errorf("invalid retention schedule %q: %w", spec, err)
	}
	c.Start()
	s.cron = c
	s.log.Info().Str("schedule", spec).Msg("retention schedule started")
	return nil
}

// StopRetentionSchedule stops the background sweep, waiting for an in-flight
// run to finish.
func (s *ContextStore) StopRetentionSchedule() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
}

func (s *ContextStore) retentionSweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memory.EnforceRetention()
}
