package game

import (
	"cmp"
	"iter"
	"slices"

	"github.com/kamstrup/intmap"
	"github.com/rotisserie/eris"
)

// World tracks the live entities of one backend world.
type World struct {
	id       WorldId
	runtime  *Runtime
	entities *intmap.Map[EntityId, *Entity]
}

func newWorld(r *Runtime, id WorldId) *World {
	return &World{
		id:       id,
		runtime:  r,
		entities: intmap.New[EntityId, *Entity](256),
	}
}

// Id returns the backend world id.
func (w *World) Id() WorldId {
	return w.id
}

// Runtime returns the runtime the world belongs to.
func (w *World) Runtime() *Runtime {
	return w.runtime
}

// CreateEntity asks the backend for a new entity built from template.
func (w *World) CreateEntity(template string) (*Entity, error) {
	id, err := w.runtime.backend.CreateEntity(w.id, template)
	if err != nil {
		return nil, eris.Wrapf(err, "create entity from template %q in world %d", template, w.id)
	}
	if id == InvalidEntityId {
		return nil, eris.Errorf("backend returned the invalid entity id for template %q", template)
	}

	if stale, ok := w.entities.Get(id); ok {
		stale.logger.Warn().Msg("backend reused the id of a live entity, releasing the old handle")
		stale.release()
	}

	e := newEntity(w, id)
	w.entities.Put(id, e)
	return e, nil
}

// Entity returns the live entity with the given id.
func (w *World) Entity(id EntityId) (*Entity, bool) {
	return w.entities.Get(id)
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.entities.Len()
}

// Entities returns the live entities ordered by id. The result is a snapshot,
// so entities may be destroyed while ranging over it.
func (w *World) Entities() []*Entity {
	entities := make([]*Entity, 0, w.entities.Len())
	for _, e := range w.entities.All() {
		entities = append(entities, e)
	}
	slices.SortFunc(entities, func(a, b *Entity) int {
		return cmp.Compare(a.id, b.id)
	})
	return entities
}

// CollectGarbage destroys every live entity the backend no longer reports as
// valid and returns how many were collected.
func (w *World) CollectGarbage() int {
	var dead []*Entity
	for _, e := range w.entities.All() {
		if !e.IsValid() {
			dead = append(dead, e)
		}
	}

	for _, e := range dead {
		Destroy(e)
	}

	if len(dead) > 0 {
		w.runtime.logger.Debug().
			Uint32("world_id", uint32(w.id)).
			Int("collected", len(dead)).
			Msg("collected invalid entities")
	}
	return len(dead)
}

// PropertiesOf iterates over the live entities of w that have a property of
// dynamic type T, yielding the first such property of each.
func PropertiesOf[T Property](w *World) iter.Seq2[*Entity, T] {
	return func(yield func(*Entity, T) bool) {
		for _, e := range w.Entities() {
			if p, ok := GetProperty[T](e); ok {
				if !yield(e, p) {
					return
				}
			}
		}
	}
}
