package game

import "github.com/go-gl/mathgl/mgl32"

// Position returns the entity's position, or the origin once destroyed.
func (e *Entity) Position() mgl32.Vec3 {
	if e.id == InvalidEntityId {
		return mgl32.Vec3{}
	}
	return e.world.runtime.backend.Position(e.world.id, e.id)
}

// SetPosition moves the entity.
func (e *Entity) SetPosition(pos mgl32.Vec3) {
	if e.id == InvalidEntityId {
		return
	}
	e.world.runtime.backend.SetPosition(e.world.id, e.id, pos)
}

// Orientation returns the entity's rotation, or identity once destroyed.
func (e *Entity) Orientation() mgl32.Quat {
	if e.id == InvalidEntityId {
		return mgl32.QuatIdent()
	}
	return e.world.runtime.backend.Orientation(e.world.id, e.id)
}

// SetOrientation rotates the entity.
func (e *Entity) SetOrientation(rot mgl32.Quat) {
	if e.id == InvalidEntityId {
		return
	}
	e.world.runtime.backend.SetOrientation(e.world.id, e.id, rot)
}

// Scale returns the entity's scale, or unit scale once destroyed.
func (e *Entity) Scale() mgl32.Vec3 {
	if e.id == InvalidEntityId {
		return mgl32.Vec3{1, 1, 1}
	}
	return e.world.runtime.backend.Scale(e.world.id, e.id)
}

// SetScale scales the entity.
func (e *Entity) SetScale(scale mgl32.Vec3) {
	if e.id == InvalidEntityId {
		return
	}
	e.world.runtime.backend.SetScale(e.world.id, e.id, scale)
}

// Transform composes position, orientation and scale into a world matrix (T*R*S).
func (e *Entity) Transform() mgl32.Mat4 {
	if e.id == InvalidEntityId {
		return mgl32.Ident4()
	}
	pos := e.Position()
	scale := e.Scale()
	return mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).
		Mul4(e.Orientation().Mat4()).
		Mul4(mgl32.Scale3D(scale.X(), scale.Y(), scale.Z()))
}
