package main

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/propcore/game"
	"github.com/plus3/propcore/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSimulation(t *testing.T, population int) *simulation {
	t.Helper()

	cfg := config.Default()
	cfg.Entities = population
	sim, err := newSimulation(cfg, zerolog.Nop(), 7)
	require.NoError(t, err)
	return sim
}

func TestSpawnerKeepsPopulation(t *testing.T) {
	sim := newTestSimulation(t, 20)
	sim.runtime.OnStart()

	sim.runtime.Tick(1.0 / 60)
	assert.Equal(t, 21, sim.runtime.DefaultWorld().Len(), "population plus the director")
	assert.Equal(t, 20, sim.spawner.Spawned)
}

func TestVitalsKillsEntity(t *testing.T) {
	sim := newTestSimulation(t, 0)
	sim.runtime.OnStart()

	e, err := sim.spawner.Spawn(sim.runtime.DefaultWorld())
	require.NoError(t, err)

	for range 3 {
		game.Send(e, Damage{Amount: 30})
	}
	assert.Equal(t, int32(10), game.MustGetComponent[Health](e).Current)

	game.Send(e, Damage{Amount: 30})
	assert.Equal(t, 1, sim.kills)
	assert.True(t, e.IsValid(), "destruction is deferred to the end of the frame")

	game.Send(e, Damage{Amount: 30})
	assert.Equal(t, 1, sim.kills, "dead entities do not die twice")

	sim.runtime.Tick(1.0 / 60)
	assert.False(t, e.IsValid())
}

func TestMoverIntegratesVelocity(t *testing.T) {
	sim := newTestSimulation(t, 0)
	sim.runtime.OnStart()

	e, err := sim.spawner.Spawn(sim.runtime.DefaultWorld())
	require.NoError(t, err)
	require.NoError(t, game.SetComponent(e, Velocity{X: 60}))
	e.SetPosition(mgl32.Vec3{})

	// the fixed step comes from the tick rate, not the variable frame dt
	sim.runtime.OnFixedFrame()
	assert.True(t, e.Position().ApproxEqual(mgl32.Vec3{1, 0, 0}))

	sim.runtime.Tick(0.5)
	sim.runtime.OnFixedFrame()
	assert.True(t, e.Position().ApproxEqual(mgl32.Vec3{2, 0, 0}))
}

func TestLifetimeExpires(t *testing.T) {
	sim := newTestSimulation(t, 0)
	sim.runtime.OnStart()

	e, err := sim.runtime.DefaultWorld().CreateEntity(unitTemplate)
	require.NoError(t, err)
	e.AddProperty(&Lifetime{Remaining: 1})

	sim.runtime.Tick(0.6)
	assert.True(t, e.IsValid())
	sim.runtime.Tick(0.6)
	assert.False(t, e.IsValid())
}

func TestHazardDamagesOthers(t *testing.T) {
	sim := newTestSimulation(t, 0)
	sim.runtime.OnStart()
	world := sim.runtime.DefaultWorld()

	e, err := sim.spawner.Spawn(world)
	require.NoError(t, err)

	hazard, ok := game.GetProperty[*Hazard](sim.director)
	require.True(t, ok)
	hazard.Rand = rand.New(rand.NewSource(1))

	for range 40 {
		sim.runtime.Tick(1.0 / 60)
	}
	hp, err := game.GetComponent[Health](e)
	if err == nil {
		assert.Less(t, hp.Current, int32(100))
	} else {
		assert.False(t, e.IsValid())
	}
}

func TestHeadlessReport(t *testing.T) {
	cfg := config.Default()
	cfg.Entities = 50
	cfg.Duration = 1
	cfg.TickRate = 30
	sim, err := newSimulation(cfg, zerolog.Nop(), 3)
	require.NoError(t, err)

	report := sim.runHeadless(cfg, zerolog.Nop())
	assert.Equal(t, uint64(30), report.Frames)
	assert.GreaterOrEqual(t, report.Spawned, 50)
	assert.Len(t, report.FrameTime.Samples, 30)
	assert.LessOrEqual(t, report.FrameTime.Min, report.FrameTime.Max)

	var out bytes.Buffer
	require.NoError(t, report.Generate(&out))
	assert.Contains(t, out.String(), "# Property Runtime Report")
	assert.Contains(t, out.String(), "| Frame |")
	assert.Contains(t, out.String(), "Owner, Velocity, Health")
}

func TestCustomTemplatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name": "Unit", "components": ["Health", "Velocity"], "position": [0, 5, 0]}]`), 0o644))

	db, err := newDatabase(path)
	require.NoError(t, err)
	assert.True(t, db.HasTemplate(unitTemplate))

	require.NoError(t, os.WriteFile(path, []byte(`[{"name": "Other", "components": []}]`), 0o644))
	_, err = newDatabase(path)
	assert.Error(t, err)
}
