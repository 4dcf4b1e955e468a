package game

import (
	"slices"
	"time"
)

// ManagerStats provides statistics about frame-event passes.
type ManagerStats struct {
	TotalPasses int64
	Passes      []PassStats
}

// PassStats provides execution statistics for the pass of a single frame event.
type PassStats struct {
	Event          FrameEvent
	Registered     int
	ExecutionCount int64
	HookCalls      int64
	Evictions      int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type passStatsInternal struct {
	executionCount int64
	hookCalls      int64
	evictions      int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// PropertyManager keeps, for every frame event, the ordered list of properties
// subscribed to it and drives the per-tick passes over those lists.
type PropertyManager struct {
	registries [NumFrameEvents][]Property
	stats      [NumFrameEvents]passStatsInternal
}

// NewPropertyManager creates an empty manager.
func NewPropertyManager() *PropertyManager {
	m := &PropertyManager{}
	for i := range m.stats {
		m.stats[i].minDuration = time.Duration(1<<63 - 1)
	}
	return m
}

// Register appends p to the registry of every frame event it declared. Registration
// is permanent; p leaves a registry only when a pass finds it invalid.
func (m *PropertyManager) Register(p Property) {
	b := p.base()
	for ev := FrameEvent(0); ev < NumFrameEvents; ev++ {
		if b.events[ev] {
			m.registries[ev] = append(m.registries[ev], p)
		}
	}
}

// BeginFrame runs the OnBeginFrame pass.
func (m *PropertyManager) BeginFrame() { m.run(BeginFrame) }

// FixedFrame runs the OnFixedFrame pass.
func (m *PropertyManager) FixedFrame() { m.run(FixedFrame) }

// Frame runs the OnFrame pass.
func (m *PropertyManager) Frame() { m.run(Frame) }

// EndFrame runs the OnEndFrame pass.
func (m *PropertyManager) EndFrame() { m.run(EndFrame) }

// run visits every property registered for ev. Properties whose entity is gone
// are evicted by swapping in the last element, which is then examined at the
// same index. Eviction reorders the registry.
func (m *PropertyManager) run(ev FrameEvent) {
	start := time.Now()
	stats := &m.stats[ev]

	for i := 0; i < len(m.registries[ev]); {
		registry := m.registries[ev]
		p := registry[i]
		b := p.base()

		if !b.IsValid() {
			last := len(registry) - 1
			registry[i] = registry[last]
			registry[last] = nil
			m.registries[ev] = registry[:last]
			stats.evictions++
			continue
		}

		if b.active {
			invoke(ev, p)
			stats.hookCalls++
		}
		i++
	}

	duration := time.Since(start)
	stats.executionCount++
	stats.lastDuration = duration
	stats.totalDuration += duration
	if duration < stats.minDuration {
		stats.minDuration = duration
	}
	if duration > stats.maxDuration {
		stats.maxDuration = duration
	}
}

func invoke(ev FrameEvent, p Property) {
	switch ev {
	case BeginFrame:
		p.OnBeginFrame()
	case FixedFrame:
		p.OnFixedFrame()
	case Frame:
		p.OnFrame()
	case EndFrame:
		p.OnEndFrame()
	}
}

// Len returns the number of properties currently registered for ev.
func (m *PropertyManager) Len(ev FrameEvent) int {
	return len(m.registries[ev])
}

// Contains reports whether p is currently registered for ev.
func (m *PropertyManager) Contains(ev FrameEvent, p Property) bool {
	return slices.Contains(m.registries[ev], p)
}

// Stats returns statistics about pass execution.
func (m *PropertyManager) Stats() *ManagerStats {
	stats := &ManagerStats{
		Passes: make([]PassStats, NumFrameEvents),
	}

	var totalPasses int64
	for ev := FrameEvent(0); ev < NumFrameEvents; ev++ {
		internal := m.stats[ev]
		avgDuration := time.Duration(0)
		minDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			minDuration = internal.minDuration
		}

		stats.Passes[ev] = PassStats{
			Event:          ev,
			Registered:     len(m.registries[ev]),
			ExecutionCount: internal.executionCount,
			HookCalls:      internal.hookCalls,
			Evictions:      internal.evictions,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalPasses += internal.executionCount
	}

	stats.TotalPasses = totalPasses
	return stats
}
