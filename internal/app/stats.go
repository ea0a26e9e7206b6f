package app

import (
	"sync/atomic"
	"time"

	"github.com/dshills/hecto/internal/terminal"
)

// Stats counts what the main loop saw. Counters are atomic so a
// snapshot can be taken from any goroutine while the loop runs.
type Stats struct {
	events     atomic.Uint64
	keyEvents  atomic.Uint64
	resizes    atomic.Uint64
	readErrors atomic.Uint64
	startNs    atomic.Int64
	stopNs     atomic.Int64
}

// NewStats creates an empty stats tracker.
func NewStats() *Stats {
	return &Stats{}
}

// Start marks the beginning of a run and clears the counters.
func (s *Stats) Start() {
	s.events.Store(0)
	s.keyEvents.Store(0)
	s.resizes.Store(0)
	s.readErrors.Store(0)
	s.stopNs.Store(0)
	s.startNs.Store(time.Now().UnixNano())
}

// Stop marks the end of a run.
func (s *Stats) Stop() {
	s.stopNs.Store(time.Now().UnixNano())
}

// RecordEvent records one event delivered by the backend.
func (s *Stats) RecordEvent(ev terminal.Event) {
	s.events.Add(1)
	switch ev.Type {
	case terminal.EventKey:
		s.keyEvents.Add(1)
	case terminal.EventResize:
		s.resizes.Add(1)
	}
}

// RecordReadError records one failed read.
func (s *Stats) RecordReadError() {
	s.readErrors.Add(1)
}

// Snapshot returns a snapshot of the current counters.
func (s *Stats) Snapshot() StatsSnapshot {
	var uptime time.Duration
	if start := s.startNs.Load(); start != 0 {
		end := s.stopNs.Load()
		if end == 0 {
			end = time.Now().UnixNano()
		}
		uptime = time.Duration(end - start)
	}

	return StatsSnapshot{
		Uptime:     uptime,
		Events:     s.events.Load(),
		KeyEvents:  s.keyEvents.Load(),
		Resizes:    s.resizes.Load(),
		ReadErrors: s.readErrors.Load(),
	}
}

// StatsSnapshot is a point-in-time view of Stats.
type StatsSnapshot struct {
	Uptime     time.Duration
	Events     uint64
	KeyEvents  uint64
	Resizes    uint64
	ReadErrors uint64
}

// ErrorRate returns failed reads as a percentage of all reads.
func (s StatsSnapshot) ErrorRate() float64 {
	total := s.Events + s.ReadErrors
	if total == 0 {
		return 0
	}
	return float64(s.ReadErrors) / float64(total) * 100
}
