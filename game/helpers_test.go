package game_test

import (
	"testing"

	"github.com/plus3/propcore/game"
	"github.com/plus3/propcore/memdb"
	"github.com/stretchr/testify/require"
)

// Common test component types
type Health struct {
	Current, Max int32
}

type Velocity struct {
	X, Y, Z float32
}

type Mana struct {
	Value int32
}

// Common test message types
type Damage struct {
	Amount int
}

type Heal struct {
	Amount int
}

// recorder records every hook it receives.
type recorder struct {
	game.PropertyBase
	events   []game.FrameEvent
	messages []game.MessageType

	activations   int
	deactivations int
	calls         [game.NumFrameEvents]int
	received      []game.Message

	onFrame func(p *recorder)
}

func newRecorder(events ...game.FrameEvent) *recorder {
	return &recorder{events: events}
}

func (p *recorder) AcceptedEvents() []game.FrameEvent    { return p.events }
func (p *recorder) AcceptedMessages() []game.MessageType { return p.messages }
func (p *recorder) OnActivate()                          { p.activations++ }
func (p *recorder) OnDeactivate()                        { p.deactivations++ }
func (p *recorder) OnBeginFrame()                        { p.calls[game.BeginFrame]++ }
func (p *recorder) OnFixedFrame()                        { p.calls[game.FixedFrame]++ }
func (p *recorder) OnEndFrame()                          { p.calls[game.EndFrame]++ }
func (p *recorder) OnMessage(msg game.Message)           { p.received = append(p.received, msg) }

func (p *recorder) OnFrame() {
	p.calls[game.Frame]++
	if p.onFrame != nil {
		p.onFrame(p)
	}
}

func (p *recorder) totalCalls() int {
	total := 0
	for _, n := range p.calls {
		total += n
	}
	return total
}

func newTestDatabase(t *testing.T) *memdb.Database {
	t.Helper()

	db := memdb.NewDatabase(
		memdb.WithComponent("Health", 8),
		memdb.WithComponent("Velocity", 12),
		memdb.WithComponent("Mana", 4),
	)
	require.NoError(t, db.AddTemplate(memdb.Template{
		Name:       "Unit",
		Components: []string{"Health", "Velocity"},
	}))
	return db
}

// newTestRuntime returns a started runtime over a fresh database with the test
// components registered and periodic garbage collection disabled.
func newTestRuntime(t *testing.T, opts ...game.Option) (*game.Runtime, *memdb.Database) {
	t.Helper()

	db := newTestDatabase(t)
	opts = append([]game.Option{game.WithGCInterval(0)}, opts...)
	rt := game.NewRuntime(db, opts...)
	game.RegisterComponent[Health](rt.Components(), "Health")
	game.RegisterComponent[Velocity](rt.Components(), "Velocity")
	rt.OnStart()
	return rt, db
}

func spawn(t *testing.T, rt *game.Runtime, template string) *game.Entity {
	t.Helper()

	e, err := rt.DefaultWorld().CreateEntity(template)
	require.NoError(t, err)
	return e
}
