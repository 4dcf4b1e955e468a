package game

import (
	"reflect"
	"unsafe"

	"github.com/rotisserie/eris"
)

// ComponentInfo describes a registered native component.
type ComponentInfo struct {
	Name string
	Id   ComponentId
	Size int
	Type reflect.Type
}

// ComponentBridge resolves component names to backend ids and copies fixed-layout
// component data across the backend boundary. Each Runtime owns one bridge.
type ComponentBridge struct {
	store   ComponentStore
	byName  map[string]ComponentId
	byType  map[reflect.Type]*ComponentInfo
	infos   []*ComponentInfo
	scratch scratchPool
}

func newComponentBridge(store ComponentStore) *ComponentBridge {
	return &ComponentBridge{
		store:   store,
		byName:  make(map[string]ComponentId),
		byType:  make(map[reflect.Type]*ComponentInfo),
		scratch: newScratchPool(),
	}
}

// Resolve returns the backend id for a component name, asking the backend on the
// first lookup and caching the answer for the lifetime of the bridge.
func (b *ComponentBridge) Resolve(name string) (ComponentId, error) {
	if id, ok := b.byName[name]; ok {
		return id, nil
	}
	id, ok := b.store.ComponentId(name)
	if !ok {
		return 0, eris.Wrapf(ErrUnknownComponent, "component %q has no backend mapping", name)
	}
	b.byName[name] = id
	return id, nil
}

// ComponentId is Resolve for names that must exist. An unmapped name is a
// configuration error and panics.
func (b *ComponentBridge) ComponentId(name string) ComponentId {
	id, err := b.Resolve(name)
	if err != nil {
		panic(err)
	}
	return id
}

// RegisterComponent binds the Go type T to the backend component called name.
// This must be called once at startup for every component type used through
// GetComponent, SetComponent or HasComponent. A type that is not plain data, an
// unmapped name or a size mismatch panics.
func RegisterComponent[T any](b *ComponentBridge, name string) ComponentId {
	t := reflect.TypeFor[T]()
	if err := checkLayout(t); err != nil {
		panic(eris.Wrapf(err, "cannot register %s as component %q", t, name))
	}

	id := b.ComponentId(name)
	size := int(t.Size())
	if backendSize := b.store.ComponentSize(id); backendSize != size {
		panic(eris.Wrapf(ErrComponentSize, "component %q: %s is %d bytes, backend layout is %d bytes",
			name, t, size, backendSize))
	}

	if existing, ok := b.byType[t]; ok {
		if existing.Id == id {
			return id
		}
		panic(eris.Errorf("type %s is already registered as component %q", t, existing.Name))
	}

	info := &ComponentInfo{Name: name, Id: id, Size: size, Type: t}
	b.byType[t] = info
	b.infos = append(b.infos, info)
	return id
}

// Components returns the registered components in registration order.
func (b *ComponentBridge) Components() []ComponentInfo {
	infos := make([]ComponentInfo, len(b.infos))
	for i, info := range b.infos {
		infos[i] = *info
	}
	return infos
}

// OutstandingBuffers returns the number of transfer buffers currently acquired.
func (b *ComponentBridge) OutstandingBuffers() int {
	return b.scratch.outstanding
}

// GetComponentData fills a transfer buffer of size bytes from the backend and
// passes it to fn. The buffer must not be retained after fn returns.
func (b *ComponentBridge) GetComponentData(world WorldId, entity EntityId, id ComponentId, size int, fn func(buf []byte) error) error {
	return b.scratch.with(size, func(buf []byte) error {
		if err := b.store.GetComponentData(world, entity, id, buf); err != nil {
			return eris.Wrapf(err, "get component %d of entity %d", id, entity)
		}
		return fn(buf)
	})
}

// SetComponentData copies data into a transfer buffer and hands it to the backend.
func (b *ComponentBridge) SetComponentData(world WorldId, entity EntityId, id ComponentId, data []byte) error {
	return b.scratch.with(len(data), func(buf []byte) error {
		copy(buf, data)
		if err := b.store.SetComponentData(world, entity, id, buf); err != nil {
			return eris.Wrapf(err, "set component %d of entity %d", id, entity)
		}
		return nil
	})
}

func (b *ComponentBridge) infoFor(t reflect.Type) *ComponentInfo {
	info, ok := b.byType[t]
	if !ok {
		panic(eris.Wrapf(ErrUnknownComponent, "type %s was never registered", t))
	}
	return info
}

// HasComponent reports whether the entity carries component T.
func HasComponent[T any](e *Entity) bool {
	info := e.bridge().infoFor(reflect.TypeFor[T]())
	if e.id == InvalidEntityId {
		return false
	}
	return e.world.runtime.backend.HasComponent(e.world.id, e.id, info.Id)
}

// GetComponent copies component T of the entity out of the backend.
func GetComponent[T any](e *Entity) (T, error) {
	var value T
	b := e.bridge()
	info := b.infoFor(reflect.TypeFor[T]())
	if e.id == InvalidEntityId {
		return value, eris.Wrapf(ErrEntityNotValid, "get %s", info.Name)
	}

	err := b.GetComponentData(e.world.id, e.id, info.Id, info.Size, func(buf []byte) error {
		copy(bytesOf(&value), buf)
		return nil
	})
	return value, err
}

// MustGetComponent is GetComponent for components the caller knows are present.
func MustGetComponent[T any](e *Entity) T {
	value, err := GetComponent[T](e)
	if err != nil {
		panic(err)
	}
	return value
}

// SetComponent writes value as component T of the entity.
func SetComponent[T any](e *Entity, value T) error {
	b := e.bridge()
	info := b.infoFor(reflect.TypeFor[T]())
	if e.id == InvalidEntityId {
		return eris.Wrapf(ErrEntityNotValid, "set %s", info.Name)
	}
	return b.SetComponentData(e.world.id, e.id, info.Id, bytesOf(&value))
}

// bytesOf views the memory of a plain-data value as bytes.
func bytesOf[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}

// checkLayout rejects types holding pointers, which cannot cross the backend
// boundary as raw bytes.
func checkLayout(t reflect.Type) error {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return nil
	case reflect.Array:
		return checkLayout(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if err := checkLayout(t.Field(i).Type); err != nil {
				return err
			}
		}
		return nil
	default:
		return eris.Wrapf(ErrComponentLayout, "%s has kind %s", t, t.Kind())
	}
}
