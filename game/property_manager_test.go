package game_test

import (
	"testing"

	"github.com/plus3/propcore/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameDispatch(t *testing.T) {
	rt, _ := newTestRuntime(t)
	e := spawn(t, rt, "Unit")

	active := newRecorder(game.Frame)
	inactive := newRecorder(game.Frame)
	unbound := newRecorder(game.Frame)
	require.True(t, e.AddProperty(active))
	require.True(t, e.AddProperty(inactive))
	inactive.SetActive(false)

	for range 5 {
		rt.Tick(0.016)
	}

	assert.Equal(t, 5, active.calls[game.Frame])
	assert.Equal(t, 0, active.calls[game.BeginFrame], "undeclared events are never dispatched")
	assert.Equal(t, 0, inactive.calls[game.Frame])
	assert.Equal(t, 0, unbound.calls[game.Frame])
	assert.Equal(t, 2, rt.Properties().Len(game.Frame), "inactive properties stay registered")

	inactive.SetActive(true)
	rt.Tick(0.016)
	assert.Equal(t, 1, inactive.calls[game.Frame])
}

func TestDuplicateEventsCollapse(t *testing.T) {
	rt, _ := newTestRuntime(t)
	e := spawn(t, rt, "Unit")

	p := newRecorder(game.Frame, game.Frame, game.EndFrame)
	require.True(t, e.AddProperty(p))
	assert.Equal(t, 1, rt.Properties().Len(game.Frame))

	rt.Tick(0.016)
	assert.Equal(t, 1, p.calls[game.Frame])
	assert.Equal(t, 1, p.calls[game.EndFrame])
}

func TestFixedFrameIsDrivenSeparately(t *testing.T) {
	rt, _ := newTestRuntime(t)
	e := spawn(t, rt, "Unit")
	p := newRecorder(game.FixedFrame)
	require.True(t, e.AddProperty(p))

	rt.Tick(0.016)
	assert.Equal(t, 0, p.calls[game.FixedFrame])

	rt.OnFixedFrame()
	rt.OnFixedFrame()
	assert.Equal(t, 2, p.calls[game.FixedFrame])
}

func TestSwapEvictionRechecksIndex(t *testing.T) {
	rt, db := newTestRuntime(t)

	var entities []*game.Entity
	var recorders []*recorder
	for range 5 {
		e := spawn(t, rt, "Unit")
		p := newRecorder(game.Frame)
		require.True(t, e.AddProperty(p))
		entities = append(entities, e)
		recorders = append(recorders, p)
	}

	// Invalidate the second and the last entries behind the runtime's back: the
	// pass evicts index 1, swaps in the last (also invalid) and must re-check it.
	world := rt.DefaultWorld().Id()
	db.DeleteEntity(world, entities[1].Id())
	db.DeleteEntity(world, entities[4].Id())

	rt.Properties().Frame()

	assert.Equal(t, 1, recorders[0].calls[game.Frame])
	assert.Equal(t, 0, recorders[1].calls[game.Frame])
	assert.Equal(t, 1, recorders[2].calls[game.Frame])
	assert.Equal(t, 1, recorders[3].calls[game.Frame])
	assert.Equal(t, 0, recorders[4].calls[game.Frame])
	assert.Equal(t, 3, rt.Properties().Len(game.Frame))
	assert.False(t, rt.Properties().Contains(game.Frame, recorders[1]))
	assert.False(t, rt.Properties().Contains(game.Frame, recorders[4]))

	stats := rt.Properties().Stats()
	assert.Equal(t, int64(2), stats.Passes[game.Frame].Evictions)
	assert.Equal(t, int64(3), stats.Passes[game.Frame].HookCalls)
}

func TestBeginFrameAfterDestroy(t *testing.T) {
	rt, _ := newTestRuntime(t)
	a := spawn(t, rt, "Unit")
	p := newRecorder(game.BeginFrame)
	require.True(t, a.AddProperty(p))

	rt.Tick(0.016)
	assert.Equal(t, 1, p.calls[game.BeginFrame])

	game.Destroy(a)
	rt.Tick(0.016)
	assert.Equal(t, 1, p.calls[game.BeginFrame])
	assert.False(t, rt.Properties().Contains(game.BeginFrame, p))
	assert.Equal(t, 0, rt.Properties().Len(game.BeginFrame))
}

func TestAddPropertyDuringPass(t *testing.T) {
	rt, _ := newTestRuntime(t)
	e := spawn(t, rt, "Unit")

	added := newRecorder(game.Frame)
	spawner := newRecorder(game.Frame)
	spawner.onFrame = func(p *recorder) {
		if p.calls[game.Frame] == 1 {
			p.Entity().AddProperty(added)
		}
	}
	require.True(t, e.AddProperty(spawner))

	rt.Tick(0.016)
	assert.Equal(t, 1, added.calls[game.Frame], "properties appended during a pass run in that pass")
	assert.Equal(t, 2, rt.Properties().Len(game.Frame))
}

func TestManagerStats(t *testing.T) {
	rt, _ := newTestRuntime(t)

	stats := rt.Properties().Stats()
	assert.Equal(t, int64(0), stats.TotalPasses)
	require.Len(t, stats.Passes, int(game.NumFrameEvents))
	assert.Zero(t, stats.Passes[game.Frame].MinDuration)

	e := spawn(t, rt, "Unit")
	require.True(t, e.AddProperty(newRecorder(game.Frame)))
	require.True(t, e.AddProperty(newRecorder(game.Frame, game.EndFrame)))

	for range 3 {
		rt.Tick(0.016)
	}

	stats = rt.Properties().Stats()
	frame := stats.Passes[game.Frame]
	assert.Equal(t, game.Frame, frame.Event)
	assert.Equal(t, 2, frame.Registered)
	assert.Equal(t, int64(3), frame.ExecutionCount)
	assert.Equal(t, int64(6), frame.HookCalls)
	assert.LessOrEqual(t, frame.MinDuration, frame.MaxDuration)
	assert.GreaterOrEqual(t, frame.TotalDuration, frame.LastDuration)

	assert.Equal(t, int64(3), stats.Passes[game.EndFrame].HookCalls)
	assert.Equal(t, int64(0), stats.Passes[game.FixedFrame].ExecutionCount)
	assert.Equal(t, int64(9), stats.TotalPasses, "three ticks run BeginFrame, Frame and EndFrame")
}

// countingProperty counts how often its declarations are read.
type countingProperty struct {
	game.PropertyBase
	events   []game.FrameEvent
	messages []game.MessageType

	eventReads   int
	messageReads int
	frames       int
	begins       int
	received     int
}

func (p *countingProperty) AcceptedEvents() []game.FrameEvent {
	p.eventReads++
	return p.events
}

func (p *countingProperty) AcceptedMessages() []game.MessageType {
	p.messageReads++
	return p.messages
}

func (p *countingProperty) OnFrame()               { p.frames++ }
func (p *countingProperty) OnBeginFrame()          { p.begins++ }
func (p *countingProperty) OnMessage(game.Message) { p.received++ }

func TestDeclarationsAreFrozenAtRegistration(t *testing.T) {
	rt, _ := newTestRuntime(t)
	e := spawn(t, rt, "Unit")

	p := &countingProperty{
		events:   []game.FrameEvent{game.Frame},
		messages: []game.MessageType{game.MessageTypeOf[Damage]()},
	}
	require.True(t, e.AddProperty(p))
	assert.Equal(t, 1, p.eventReads)
	assert.Equal(t, 1, p.messageReads)

	p.events[0] = game.BeginFrame
	p.messages[0] = game.MessageTypeOf[Heal]()

	rt.Tick(0.016)
	rt.Tick(0.016)
	e.Send(Damage{Amount: 1})
	e.Send(Heal{Amount: 1})

	assert.Equal(t, 1, p.eventReads)
	assert.Equal(t, 1, p.messageReads)
	assert.Equal(t, 2, p.frames)
	assert.Equal(t, 0, p.begins)
	assert.Equal(t, 1, p.received)
	assert.Equal(t, 1, rt.Properties().Len(game.Frame))
	assert.Equal(t, 0, rt.Properties().Len(game.BeginFrame))
}
