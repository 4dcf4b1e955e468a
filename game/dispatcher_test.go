package game_test

import (
	"testing"

	"github.com/plus3/propcore/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withMessages(p *recorder, types ...game.MessageType) *recorder {
	p.messages = types
	return p
}

func TestMessageRoundTrip(t *testing.T) {
	rt, _ := newTestRuntime(t)
	e := spawn(t, rt, "Unit")

	damage := game.MessageTypeOf[Damage]()
	heal := game.MessageTypeOf[Heal]()

	onlyDamage := withMessages(newRecorder(), damage)
	onlyHeal := withMessages(newRecorder(), heal)
	both := withMessages(newRecorder(), heal, damage)
	deaf := newRecorder()
	for _, p := range []*recorder{onlyDamage, onlyHeal, both, deaf} {
		require.True(t, e.AddProperty(p))
	}

	e.Send(Damage{Amount: 5})
	game.Send(e, Heal{Amount: 2})

	assert.Equal(t, []game.Message{Damage{Amount: 5}}, onlyDamage.received)
	assert.Equal(t, []game.Message{Heal{Amount: 2}}, onlyHeal.received)
	assert.Equal(t, []game.Message{Damage{Amount: 5}, Heal{Amount: 2}}, both.received)
	assert.Empty(t, deaf.received)
}

func TestMessageDispatchSkipsInactive(t *testing.T) {
	rt, _ := newTestRuntime(t)
	e := spawn(t, rt, "Unit")
	p := withMessages(newRecorder(), game.MessageTypeOf[Damage]())
	require.True(t, e.AddProperty(p))

	p.SetActive(false)
	e.Send(Damage{Amount: 1})
	assert.Empty(t, p.received)

	p.SetActive(true)
	e.Send(Damage{Amount: 2})
	assert.Equal(t, []game.Message{Damage{Amount: 2}}, p.received)
}

func TestMessageWithoutRouteIsDropped(t *testing.T) {
	rt, _ := newTestRuntime(t)
	e := spawn(t, rt, "Unit")
	p := withMessages(newRecorder(), game.MessageTypeOf[Damage]())
	require.True(t, e.AddProperty(p))

	assert.NotPanics(t, func() {
		e.Send(Heal{Amount: 1})
		e.Send(nil)
		e.Send(&Damage{Amount: 1})
	})
	assert.Empty(t, p.received, "pointer and value types route separately")
}

func TestMessageTypesCollapse(t *testing.T) {
	rt, _ := newTestRuntime(t)
	e := spawn(t, rt, "Unit")
	damage := game.MessageTypeOf[Damage]()
	p := withMessages(newRecorder(), damage, damage)
	require.True(t, e.AddProperty(p))

	e.Send(Damage{})
	assert.Len(t, p.received, 1)
	assert.Equal(t, map[game.MessageType]int{damage: 1}, e.Dispatcher().Routes())
	assert.Equal(t, "game_test.Damage", damage.String())
}

func TestDispatcherStandalone(t *testing.T) {
	rt, _ := newTestRuntime(t)
	e := spawn(t, rt, "Unit")
	p := withMessages(newRecorder(), game.MessageTypeOf[Heal]())
	require.True(t, e.AddProperty(p))

	d := game.NewMessageDispatcher()
	d.Register(p)
	game.DispatchTyped(d, Heal{Amount: 3})
	assert.Equal(t, []game.Message{Heal{Amount: 3}}, p.received)
}
