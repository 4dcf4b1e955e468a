package main

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/propcore/game"
)

type Velocity struct {
	X, Y, Z float32
}

type Health struct {
	Current, Max int32
}

// Damage is sent to an entity to reduce its Health component.
type Damage struct {
	Amount int32
	Source game.EntityId
}

// Mover integrates the Velocity component into the entity position.
type Mover struct {
	game.PropertyBase
}

func (m *Mover) AcceptedEvents() []game.FrameEvent {
	return []game.FrameEvent{game.FixedFrame}
}

func (m *Mover) OnFixedFrame() {
	e := m.Entity()
	vel, err := game.GetComponent[Velocity](e)
	if err != nil {
		e.Logger().Error().Err(err).Msg("mover has no velocity")
		m.SetActive(false)
		return
	}
	dt := float32(e.World().Runtime().Frame().FixedDeltaTime)
	e.SetPosition(e.Position().Add(mgl32.Vec3{vel.X, vel.Y, vel.Z}.Mul(dt)))
}

// Spinner rotates the entity around its up axis.
type Spinner struct {
	game.PropertyBase
	RadiansPerSecond float32
}

func (s *Spinner) AcceptedEvents() []game.FrameEvent {
	return []game.FrameEvent{game.Frame}
}

func (s *Spinner) OnFrame() {
	e := s.Entity()
	dt := float32(e.World().Runtime().Frame().DeltaTime)
	step := mgl32.QuatRotate(s.RadiansPerSecond*dt, mgl32.Vec3{0, 1, 0})
	e.SetOrientation(e.Orientation().Mul(step).Normalize())
}

// Vitals applies Damage messages to the Health component and kills the entity
// when its health runs out.
type Vitals struct {
	game.PropertyBase
	Kills *int
}

func (v *Vitals) AcceptedMessages() []game.MessageType {
	return []game.MessageType{game.MessageTypeOf[Damage]()}
}

func (v *Vitals) OnMessage(msg game.Message) {
	dmg, ok := msg.(Damage)
	if !ok {
		return
	}

	e := v.Entity()
	hp, err := game.GetComponent[Health](e)
	if err != nil {
		e.Logger().Error().Err(err).Msg("vitals without health")
		return
	}
	if hp.Current <= 0 {
		return
	}

	hp.Current = max(hp.Current-dmg.Amount, 0)
	if err := game.SetComponent(e, hp); err != nil {
		e.Logger().Error().Err(err).Msg("failed to store health")
		return
	}

	if hp.Current == 0 {
		e.Logger().Debug().Uint32("source", uint32(dmg.Source)).Msg("entity died")
		if v.Kills != nil {
			*v.Kills++
		}
		e.DestroyDeferred()
	}
}

// Lifetime destroys the entity after a number of seconds.
type Lifetime struct {
	game.PropertyBase
	Remaining float64
}

func (l *Lifetime) AcceptedEvents() []game.FrameEvent {
	return []game.FrameEvent{game.EndFrame}
}

func (l *Lifetime) OnEndFrame() {
	e := l.Entity()
	l.Remaining -= e.World().Runtime().Frame().DeltaTime
	if l.Remaining <= 0 {
		e.DestroyDeferred()
		l.SetActive(false)
	}
}

// Hazard damages a random live entity of its world every Interval frames.
type Hazard struct {
	game.PropertyBase
	Interval int
	Amount   int32
	Rand     *rand.Rand
}

func (h *Hazard) AcceptedEvents() []game.FrameEvent {
	return []game.FrameEvent{game.BeginFrame}
}

func (h *Hazard) OnBeginFrame() {
	e := h.Entity()
	frame := e.World().Runtime().Frame().Number
	if h.Interval <= 0 || frame%uint64(h.Interval) != 0 {
		return
	}

	targets := e.World().Entities()
	if len(targets) == 0 {
		return
	}
	target := targets[h.Rand.Intn(len(targets))]
	if target == e {
		return
	}
	game.Send(target, Damage{Amount: h.Amount, Source: e.Id()})
}

// Spawner keeps the world populated with units from Template.
type Spawner struct {
	game.PropertyBase
	Template   string
	Population int
	Rand       *rand.Rand
	Kills      *int

	Spawned int
}

func (s *Spawner) AcceptedEvents() []game.FrameEvent {
	return []game.FrameEvent{game.BeginFrame}
}

func (s *Spawner) OnBeginFrame() {
	world := s.Entity().World()
	// The director entity carrying the spawner is not part of the population.
	for world.Len()-1 < s.Population {
		if _, err := s.Spawn(world); err != nil {
			s.Entity().Logger().Error().Err(err).Msg("failed to spawn unit")
			s.SetActive(false)
			return
		}
	}
}

// Spawn creates one unit with randomized state and the demo properties.
func (s *Spawner) Spawn(world *game.World) (*game.Entity, error) {
	e, err := world.CreateEntity(s.Template)
	if err != nil {
		return nil, err
	}
	s.Spawned++

	r := s.Rand
	e.SetPosition(mgl32.Vec3{r.Float32() * 100, 0, r.Float32() * 100})
	if err := game.SetComponent(e, Velocity{X: r.Float32()*2 - 1, Z: r.Float32()*2 - 1}); err != nil {
		game.Destroy(e)
		return nil, err
	}
	if err := game.SetComponent(e, Health{Current: 100, Max: 100}); err != nil {
		game.Destroy(e)
		return nil, err
	}

	e.AddProperty(&Mover{})
	e.AddProperty(&Vitals{Kills: s.Kills})
	if r.Intn(2) == 0 {
		e.AddProperty(&Spinner{RadiansPerSecond: r.Float32() * 3})
	}
	if r.Intn(4) == 0 {
		e.AddProperty(&Lifetime{Remaining: 1 + r.Float64()*5})
	}
	return e, nil
}
