package system

import (
	"fmt"
	"sort"
	"time"
)

// Stats holds execution timing for a single registered system.
type Stats struct {
	Name          string
	Phase         Phase
	Executions    int64
	LastDuration  time.Duration
	MaxDuration   time.Duration
	TotalDuration time.Duration
}

// AvgDuration is the mean execution time, zero before the first run.
func (s Stats) AvgDuration() time.Duration {
	if s.Executions == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.Executions)
}

type entry struct {
	sys   System
	stats Stats
}

// Runner executes systems in phase order each tick. Systems sharing a phase
// run in registration order.
type Runner struct {
	entries []*entry
	sorted  bool
	ticks   uint64
}

func NewRunner() *Runner {
	return &Runner{
		entries: make([]*entry, 0, 16),
	}
}

func (r *Runner) Register(s System) {
	name := fmt.Sprintf("%T", s)
	if n, ok := s.(Named); ok {
		name = n.Name()
	}
	r.entries = append(r.entries, &entry{sys: s, stats: Stats{Name: name, Phase: s.Phase()}})
	r.sorted = false
}

// Tick runs one full pass. No system is preempted mid-pass.
func (r *Runner) Tick(dt time.Duration) {
	r.ensureSorted()
	for _, e := range r.entries {
		r.run(e, dt)
	}
	r.ticks++
}

// TickPhase only runs the systems registered for phase.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	r.ensureSorted()
	for _, e := range r.entries {
		if e.sys.Phase() == phase {
			r.run(e, dt)
		}
	}
}

// Ticks returns the number of completed full passes.
func (r *Runner) Ticks() uint64 {
	return r.ticks
}

// Stats returns a copy of each system's timing in execution order.
func (r *Runner) Stats() []Stats {
	r.ensureSorted()
	out := make([]Stats, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.stats
	}
	return out
}

func (r *Runner) run(e *entry, dt time.Duration) {
	start := time.Now()
	e.sys.Update(dt)
	d := time.Since(start)
	e.stats.Executions++
	e.stats.LastDuration = d
	e.stats.TotalDuration += d
	if d > e.stats.MaxDuration {
		e.stats.MaxDuration = d
	}
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.entries, func(i, j int) bool {
			return r.entries[i].sys.Phase() < r.entries[j].sys.Phase()
		})
		r.sorted = true
	}
}
