package memdb

import (
	"encoding/binary"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/kamstrup/intmap"
	"github.com/plus3/propcore/game"
	"github.com/rotisserie/eris"
)

type componentDef struct {
	name string
	size int
}

type world struct {
	id      game.WorldId
	tables  map[uint32]*table
	records *intmap.Map[game.EntityId, *record]
	nextId  game.EntityId
}

// Option configures a Database.
type Option func(db *Database)

// WithDefaultWorld sets the id reported by DefaultWorldId.
func WithDefaultWorld(id game.WorldId) Option {
	return func(db *Database) {
		db.defaultWorld = id
	}
}

// WithComponent registers a component at construction time.
func WithComponent(name string, size int) Option {
	return func(db *Database) {
		db.RegisterComponent(name, size)
	}
}

// Database is an in-memory simulation backend. Entities are grouped into tables
// by their exact component set; component data is stored as fixed-size rows.
type Database struct {
	components   []componentDef
	byName       map[string]game.ComponentId
	templates    map[string]*compiledTemplate
	worlds       map[game.WorldId]*world
	defaultWorld game.WorldId
}

var _ game.Backend = (*Database)(nil)

// NewDatabase creates a database with the Owner component and the Empty template.
func NewDatabase(opts ...Option) *Database {
	db := &Database{
		byName:    make(map[string]game.ComponentId),
		templates: make(map[string]*compiledTemplate),
		worlds:    make(map[game.WorldId]*world),
	}
	db.RegisterComponent(game.OwnerComponent, 4)
	db.mustAddTemplate(Template{Name: EmptyTemplate})

	for _, opt := range opts {
		opt(db)
	}
	return db
}

// RegisterComponent declares a component with a fixed layout of size bytes and
// returns its id. Registering a known name with the same size returns the
// existing id; a different size panics.
func (db *Database) RegisterComponent(name string, size int) game.ComponentId {
	if id, ok := db.byName[name]; ok {
		if db.components[id].size != size {
			panic(eris.Errorf("component %q already registered with size %d, not %d", name, db.components[id].size, size))
		}
		return id
	}
	if size < 0 {
		panic(eris.Errorf("component %q has negative size %d", name, size))
	}

	id := game.ComponentId(len(db.components))
	db.components = append(db.components, componentDef{name: name, size: size})
	db.byName[name] = id
	return id
}

func (db *Database) world(id game.WorldId) *world {
	w, ok := db.worlds[id]
	if !ok {
		w = &world{
			id:      id,
			tables:  make(map[uint32]*table),
			records: intmap.New[game.EntityId, *record](256),
		}
		db.worlds[id] = w
	}
	return w
}

func (db *Database) record(worldId game.WorldId, entity game.EntityId) (*record, bool) {
	w, ok := db.worlds[worldId]
	if !ok {
		return nil, false
	}
	return w.records.Get(entity)
}

// tableFor returns the table holding exactly the given sorted components.
func (db *Database) tableFor(w *world, components []game.ComponentId) *table {
	id := hashComponents(components)
	for {
		t, ok := w.tables[id]
		if !ok {
			sizes := make([]int, len(components))
			for i, c := range components {
				sizes[i] = db.components[c].size
			}
			t = newTable(id, components, sizes)
			w.tables[id] = t
			return t
		}
		if slices.Equal(t.components, components) {
			return t
		}
		id++
	}
}

// DefaultWorldId implements game.EntityStore.
func (db *Database) DefaultWorldId() game.WorldId {
	return db.defaultWorld
}

// IsEntityValid implements game.EntityStore.
func (db *Database) IsEntityValid(worldId game.WorldId, entity game.EntityId) bool {
	_, ok := db.record(worldId, entity)
	return ok
}

// CreateEntity implements game.EntityStore. Ids are assigned per world starting
// at 1 and are never reused.
func (db *Database) CreateEntity(worldId game.WorldId, template string) (game.EntityId, error) {
	tmpl, ok := db.templates[template]
	if !ok {
		return game.InvalidEntityId, eris.Wrapf(ErrUnknownTemplate, "template %q", template)
	}

	w := db.world(worldId)
	w.nextId++
	id := w.nextId

	t := db.tableFor(w, tmpl.components)
	row := t.spawn(id)
	rec := newRecord(id, t, row)
	rec.position = tmpl.position
	rec.scale = tmpl.scale
	w.records.Put(id, rec)

	binary.NativeEndian.PutUint32(t.column(db.byName[game.OwnerComponent]).get(row), uint32(id))
	return id, nil
}

// DeleteEntity implements game.EntityStore.
func (db *Database) DeleteEntity(worldId game.WorldId, entity game.EntityId) {
	w, ok := db.worlds[worldId]
	if !ok {
		return
	}
	rec, ok := w.records.Get(entity)
	if !ok {
		return
	}
	rec.table.delete(rec.row)
	w.records.Del(entity)
}

// ComponentId implements game.ComponentStore.
func (db *Database) ComponentId(name string) (game.ComponentId, bool) {
	id, ok := db.byName[name]
	return id, ok
}

// ComponentSize implements game.ComponentStore.
func (db *Database) ComponentSize(id game.ComponentId) int {
	if int(id) >= len(db.components) {
		return -1
	}
	return db.components[id].size
}

// HasComponent implements game.ComponentStore.
func (db *Database) HasComponent(worldId game.WorldId, entity game.EntityId, id game.ComponentId) bool {
	rec, ok := db.record(worldId, entity)
	if !ok {
		return false
	}
	return rec.table.has(id)
}

func (db *Database) columnOf(worldId game.WorldId, entity game.EntityId, id game.ComponentId, size int) (*column, *record, error) {
	rec, ok := db.record(worldId, entity)
	if !ok {
		return nil, nil, eris.Wrapf(game.ErrEntityNotValid, "entity %d in world %d", entity, worldId)
	}
	col := rec.table.column(id)
	if col == nil {
		return nil, nil, eris.Wrapf(ErrMissingComponent, "entity %d, component %d", entity, id)
	}
	if col.size != size {
		return nil, nil, eris.Wrapf(ErrSizeMismatch, "component %d is %d bytes, buffer is %d", id, col.size, size)
	}
	return col, rec, nil
}

// GetComponentData implements game.ComponentStore.
func (db *Database) GetComponentData(worldId game.WorldId, entity game.EntityId, id game.ComponentId, buf []byte) error {
	col, rec, err := db.columnOf(worldId, entity, id, len(buf))
	if err != nil {
		return err
	}
	copy(buf, col.get(rec.row))
	return nil
}

// SetComponentData implements game.ComponentStore.
func (db *Database) SetComponentData(worldId game.WorldId, entity game.EntityId, id game.ComponentId, buf []byte) error {
	col, rec, err := db.columnOf(worldId, entity, id, len(buf))
	if err != nil {
		return err
	}
	col.set(rec.row, buf)
	return nil
}

// AddComponent moves an entity to the table that also holds component id. The
// new component starts zeroed; existing component data is carried over.
func (db *Database) AddComponent(worldId game.WorldId, entity game.EntityId, id game.ComponentId) error {
	rec, ok := db.record(worldId, entity)
	if !ok {
		return eris.Wrapf(game.ErrEntityNotValid, "entity %d in world %d", entity, worldId)
	}
	if int(id) >= len(db.components) {
		return eris.Wrapf(game.ErrUnknownComponent, "component %d", id)
	}
	if rec.table.has(id) {
		return nil
	}

	components := make([]game.ComponentId, 0, len(rec.table.components)+1)
	components = append(components, rec.table.components...)
	components = append(components, id)
	slices.Sort(components)

	db.migrate(db.worlds[worldId], rec, components)
	return nil
}

// RemoveComponent moves an entity to the table without component id. The Owner
// component cannot be removed.
func (db *Database) RemoveComponent(worldId game.WorldId, entity game.EntityId, id game.ComponentId) error {
	rec, ok := db.record(worldId, entity)
	if !ok {
		return eris.Wrapf(game.ErrEntityNotValid, "entity %d in world %d", entity, worldId)
	}
	if id == db.byName[game.OwnerComponent] {
		return eris.New("the Owner component cannot be removed")
	}
	if !rec.table.has(id) {
		return nil
	}

	components := make([]game.ComponentId, 0, len(rec.table.components)-1)
	for _, c := range rec.table.components {
		if c != id {
			components = append(components, c)
		}
	}

	db.migrate(db.worlds[worldId], rec, components)
	return nil
}

func (db *Database) migrate(w *world, rec *record, components []game.ComponentId) {
	oldTable, oldRow := rec.table, rec.row
	newTable := db.tableFor(w, components)
	newRow := newTable.spawn(rec.id)

	for idx, c := range newTable.components {
		if src := oldTable.column(c); src != nil {
			newTable.columns[idx].set(newRow, src.get(oldRow))
		}
	}

	oldTable.delete(oldRow)
	rec.table = newTable
	rec.row = newRow
}

// Compact removes empty rows from every table and updates entity locations.
func (db *Database) Compact() {
	for _, w := range db.worlds {
		for _, t := range w.tables {
			indexMap := t.compact()
			for _, newRow := range indexMap {
				rec, ok := w.records.Get(t.entities[newRow])
				if ok {
					rec.row = newRow
				}
			}
		}
	}
}

// Position implements game.TransformStore.
func (db *Database) Position(worldId game.WorldId, entity game.EntityId) mgl32.Vec3 {
	if rec, ok := db.record(worldId, entity); ok {
		return rec.position
	}
	return mgl32.Vec3{}
}

// SetPosition implements game.TransformStore.
func (db *Database) SetPosition(worldId game.WorldId, entity game.EntityId, pos mgl32.Vec3) {
	if rec, ok := db.record(worldId, entity); ok {
		rec.position = pos
	}
}

// Orientation implements game.TransformStore.
func (db *Database) Orientation(worldId game.WorldId, entity game.EntityId) mgl32.Quat {
	if rec, ok := db.record(worldId, entity); ok {
		return rec.orientation
	}
	return mgl32.QuatIdent()
}

// SetOrientation implements game.TransformStore.
func (db *Database) SetOrientation(worldId game.WorldId, entity game.EntityId, rot mgl32.Quat) {
	if rec, ok := db.record(worldId, entity); ok {
		rec.orientation = rot
	}
}

// Scale implements game.TransformStore.
func (db *Database) Scale(worldId game.WorldId, entity game.EntityId) mgl32.Vec3 {
	if rec, ok := db.record(worldId, entity); ok {
		return rec.scale
	}
	return mgl32.Vec3{1, 1, 1}
}

// SetScale implements game.TransformStore.
func (db *Database) SetScale(worldId game.WorldId, entity game.EntityId, scale mgl32.Vec3) {
	if rec, ok := db.record(worldId, entity); ok {
		rec.scale = scale
	}
}
