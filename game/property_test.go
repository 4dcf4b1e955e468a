package game_test

import (
	"testing"

	"github.com/plus3/propcore/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetActiveIsIdempotent(t *testing.T) {
	rt, _ := newTestRuntime(t)
	e := spawn(t, rt, "Unit")
	p := newRecorder()
	require.True(t, e.AddProperty(p))
	require.Equal(t, 1, p.activations)

	p.SetActive(false)
	p.SetActive(false)
	assert.Equal(t, 1, p.deactivations)
	assert.False(t, p.IsActive())

	p.SetActive(true)
	p.SetActive(true)
	assert.Equal(t, 2, p.activations)
	assert.True(t, p.IsActive())
}

func TestSetActiveUnbound(t *testing.T) {
	p := newRecorder(game.Frame)

	p.SetActive(true)
	p.SetActive(false)

	assert.Equal(t, 0, p.activations)
	assert.Equal(t, 0, p.deactivations)
	assert.False(t, p.IsActive())
	assert.False(t, p.IsValid())
	assert.Nil(t, p.Entity())
}

func TestPropertyValidityFollowsBackend(t *testing.T) {
	rt, db := newTestRuntime(t)
	e := spawn(t, rt, "Unit")
	p := newRecorder()
	require.True(t, e.AddProperty(p))
	assert.True(t, p.IsValid())

	db.DeleteEntity(e.WorldId(), e.Id())
	assert.False(t, p.IsValid())
	assert.False(t, p.IsDestroyed())
}

func TestPropertyName(t *testing.T) {
	assert.Equal(t, "recorder", game.PropertyName(newRecorder()))
	assert.Equal(t, "otherRecorder", game.PropertyName(&otherRecorder{}))
}

func TestFrameEventString(t *testing.T) {
	assert.Equal(t, "BeginFrame", game.BeginFrame.String())
	assert.Equal(t, "FixedFrame", game.FixedFrame.String())
	assert.Equal(t, "Frame", game.Frame.String())
	assert.Equal(t, "EndFrame", game.EndFrame.String())
	assert.Equal(t, "FrameEvent(?)", game.NumFrameEvents.String())
}
