package game

import "github.com/go-gl/mathgl/mgl32"

// EntityStore is the identity table of the simulation backend.
type EntityStore interface {
	DefaultWorldId() WorldId
	IsEntityValid(world WorldId, entity EntityId) bool
	CreateEntity(world WorldId, template string) (EntityId, error)
	// DeleteEntity must tolerate ids that are already gone.
	DeleteEntity(world WorldId, entity EntityId)
}

// ComponentStore gives access to fixed-layout component data by numeric id.
// Buffers passed to GetComponentData and SetComponentData are only valid for
// the duration of the call.
type ComponentStore interface {
	ComponentId(name string) (ComponentId, bool)
	ComponentSize(id ComponentId) int
	HasComponent(world WorldId, entity EntityId, id ComponentId) bool
	GetComponentData(world WorldId, entity EntityId, id ComponentId, buf []byte) error
	SetComponentData(world WorldId, entity EntityId, id ComponentId, buf []byte) error
}

// TransformStore holds the spatial state of entities.
type TransformStore interface {
	Position(world WorldId, entity EntityId) mgl32.Vec3
	SetPosition(world WorldId, entity EntityId, pos mgl32.Vec3)
	Orientation(world WorldId, entity EntityId) mgl32.Quat
	SetOrientation(world WorldId, entity EntityId, rot mgl32.Quat)
	Scale(world WorldId, entity EntityId) mgl32.Vec3
	SetScale(world WorldId, entity EntityId, scale mgl32.Vec3)
}

// Backend is the capability set the runtime consumes from the simulation backend.
type Backend interface {
	EntityStore
	ComponentStore
	TransformStore
}
