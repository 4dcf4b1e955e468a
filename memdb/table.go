package memdb

import (
	"iter"
	"slices"

	"github.com/plus3/propcore/game"
)

// table stores the entities that share one exact set of components.
type table struct {
	id         uint32
	components []game.ComponentId
	columns    []*column

	entities []game.EntityId
	live     []bool
	freeRows []uint32
	nextRow  uint32
}

func newTable(id uint32, components []game.ComponentId, sizes []int) *table {
	t := &table{
		id:         id,
		components: components,
		columns:    make([]*column, len(components)),
	}
	for idx := range components {
		t.columns[idx] = newColumn(sizes[idx])
	}
	return t
}

// spawn allocates a row for entity, reusing freed rows first.
func (t *table) spawn(entity game.EntityId) uint32 {
	var row uint32
	if len(t.freeRows) > 0 {
		row = t.freeRows[len(t.freeRows)-1]
		t.freeRows = t.freeRows[:len(t.freeRows)-1]
		t.entities[row] = entity
		t.live[row] = true
	} else {
		row = t.nextRow
		t.nextRow++
		t.entities = append(t.entities, entity)
		t.live = append(t.live, true)
	}

	for _, col := range t.columns {
		col.ensure(row)
	}
	return row
}

// delete marks a row as empty. Rows of other entities keep their index.
func (t *table) delete(row uint32) {
	if row >= t.nextRow || !t.live[row] {
		return
	}
	for _, col := range t.columns {
		col.zero(row)
	}
	t.live[row] = false
	t.entities[row] = game.InvalidEntityId
	t.freeRows = append(t.freeRows, row)
}

func (t *table) column(id game.ComponentId) *column {
	idx := slices.Index(t.components, id)
	if idx == -1 {
		return nil
	}
	return t.columns[idx]
}

func (t *table) has(id game.ComponentId) bool {
	return slices.Contains(t.components, id)
}

// len returns the number of live rows.
func (t *table) len() int {
	return int(t.nextRow) - len(t.freeRows)
}

// rows iterates over live rows and the entity stored in each.
func (t *table) rows() iter.Seq2[uint32, game.EntityId] {
	return func(yield func(uint32, game.EntityId) bool) {
		for row := uint32(0); row < t.nextRow; row++ {
			if !t.live[row] {
				continue
			}
			if !yield(row, t.entities[row]) {
				return
			}
		}
	}
}

// compact removes empty rows and returns the old->new row mapping.
func (t *table) compact() map[uint32]uint32 {
	indexMap := make(map[uint32]uint32)
	var writePos uint32
	for row := range t.rows() {
		indexMap[row] = writePos
		writePos++
	}

	for _, col := range t.columns {
		col.compact(indexMap, writePos)
	}

	entities := make([]game.EntityId, writePos)
	live := make([]bool, writePos)
	for oldRow, newRow := range indexMap {
		entities[newRow] = t.entities[oldRow]
		live[newRow] = true
	}

	t.entities = entities
	t.live = live
	t.freeRows = nil
	t.nextRow = writePos
	return indexMap
}

// hashComponents generates a table id for a sorted set of component ids.
func hashComponents(components []game.ComponentId) uint32 {
	var h uint32 = 2166136261     // FNV-1a 32-bit offset basis
	const prime uint32 = 16777619 // FNV-1a 32-bit prime

	for _, id := range components {
		h ^= uint32(id)
		h *= prime
	}
	return h
}
