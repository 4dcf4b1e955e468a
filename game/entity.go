package game

import "github.com/rs/zerolog"

// Entity is a game object identified by (world, id). It owns an ordered set of
// properties and a message dispatcher; its data lives in the backend.
// Entities are only created through World.CreateEntity.
type Entity struct {
	world      *World
	id         EntityId
	properties []Property
	dispatcher *MessageDispatcher
	logger     zerolog.Logger
}

func newEntity(w *World, id EntityId) *Entity {
	return &Entity{
		world:      w,
		id:         id,
		dispatcher: NewMessageDispatcher(),
		logger: w.runtime.logger.With().
			Uint32("world_id", uint32(w.id)).
			Uint32("entity_id", uint32(id)).
			Logger(),
	}
}

// Id returns the backend id, or InvalidEntityId once the entity has been destroyed.
func (e *Entity) Id() EntityId {
	return e.id
}

// WorldId returns the id of the world the entity belongs to.
func (e *Entity) WorldId() WorldId {
	return e.world.id
}

// World returns the world the entity belongs to.
func (e *Entity) World() *World {
	return e.world
}

// Logger returns a logger carrying the entity's world and id.
func (e *Entity) Logger() *zerolog.Logger {
	return &e.logger
}

// IsValid asks the backend whether the entity still exists.
func (e *Entity) IsValid() bool {
	return e.id != InvalidEntityId && e.world.runtime.backend.IsEntityValid(e.world.id, e.id)
}

func (e *Entity) bridge() *ComponentBridge {
	return e.world.runtime.components
}

// AddProperty binds p to the entity, subscribes it to its declared frame events
// and message types, and activates it. OnActivate has run when AddProperty
// returns. A property that is already owned, or a destroyed entity, makes the
// call a logged no-op returning false.
func (e *Entity) AddProperty(p Property) bool {
	if e.id == InvalidEntityId {
		e.logger.Warn().Str("property", PropertyName(p)).Msg("cannot add property to a destroyed entity")
		return false
	}

	b := p.base()
	if !b.bind(e, p) {
		return false
	}

	e.properties = append(e.properties, p)
	e.world.runtime.properties.Register(p)
	e.dispatcher.Register(p)
	b.SetActive(true)
	return true
}

// Properties returns the entity's properties in insertion order.
func (e *Entity) Properties() []Property {
	properties := make([]Property, len(e.properties))
	copy(properties, e.properties)
	return properties
}

// Dispatcher returns the entity's message dispatcher.
func (e *Entity) Dispatcher() *MessageDispatcher {
	return e.dispatcher
}

// Send delivers msg synchronously to the entity's properties that accept its type.
func (e *Entity) Send(msg Message) {
	e.dispatcher.Dispatch(msg)
}

// Send delivers msg to the entity, routing on the static type M.
func Send[M any](e *Entity, msg M) {
	DispatchTyped(e.dispatcher, msg)
}

// DestroyDeferred queues the entity for destruction at the end of the current frame.
func (e *Entity) DestroyDeferred() {
	e.world.runtime.commands.Destroy(e)
}

// GetProperty returns the first property of the entity with dynamic type T.
func GetProperty[T Property](e *Entity) (T, bool) {
	for _, p := range e.properties {
		if t, ok := p.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// HasProperty reports whether the entity has a property of dynamic type T.
func HasProperty[T Property](e *Entity) bool {
	_, ok := GetProperty[T](e)
	return ok
}

// Destroy deletes the entity from the backend and destroys its properties,
// deactivating the active ones. Destroying an already destroyed entity only
// logs a warning.
func Destroy(e *Entity) {
	if e == nil {
		return
	}
	if e.id == InvalidEntityId {
		e.logger.Warn().Msg("entity already destroyed")
		return
	}

	w := e.world
	w.runtime.backend.DeleteEntity(w.id, e.id)
	w.entities.Del(e.id)
	e.release()

	e.logger.Debug().Msg("entity destroyed")
}

// release invalidates the handle and destroys its properties without touching
// the backend.
func (e *Entity) release() {
	e.id = InvalidEntityId
	for _, p := range e.properties {
		p.base().destroy()
	}
	clear(e.properties)
	e.properties = e.properties[:0]
}
