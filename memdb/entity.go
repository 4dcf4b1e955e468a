package memdb

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/propcore/game"
)

// record locates an entity's row and holds its spatial state.
type record struct {
	id          game.EntityId
	table       *table
	row         uint32
	position    mgl32.Vec3
	orientation mgl32.Quat
	scale       mgl32.Vec3
}

func newRecord(id game.EntityId, t *table, row uint32) *record {
	return &record{
		id:          id,
		table:       t,
		row:         row,
		orientation: mgl32.QuatIdent(),
		scale:       mgl32.Vec3{1, 1, 1},
	}
}
