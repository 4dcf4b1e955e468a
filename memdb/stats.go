package memdb

import (
	"cmp"
	"slices"

	"github.com/plus3/propcore/game"
)

// TableStats describes one table of a world.
type TableStats struct {
	Id         uint32
	Components []string
	Entities   int
	Rows       int
	FreeRows   int
}

// WorldStats describes the storage of one world.
type WorldStats struct {
	Id       game.WorldId
	Entities int
	NextId   game.EntityId
	Tables   []TableStats
}

// Stats summarizes every world, ordered by world id.
type Stats struct {
	Components int
	Templates  int
	Worlds     []WorldStats
}

// Stats collects a snapshot of the database layout for diagnostics.
func (db *Database) Stats() *Stats {
	stats := &Stats{
		Components: len(db.components),
		Templates:  len(db.templates),
	}

	for _, w := range db.worlds {
		ws := WorldStats{
			Id:       w.id,
			Entities: w.records.Len(),
			NextId:   w.nextId,
		}
		for _, t := range w.tables {
			names := make([]string, len(t.components))
			for i, c := range t.components {
				names[i] = db.components[c].name
			}
			ws.Tables = append(ws.Tables, TableStats{
				Id:         t.id,
				Components: names,
				Entities:   t.len(),
				Rows:       int(t.nextRow),
				FreeRows:   len(t.freeRows),
			})
		}
		slices.SortFunc(ws.Tables, func(a, b TableStats) int {
			return cmp.Compare(a.Id, b.Id)
		})
		stats.Worlds = append(stats.Worlds, ws)
	}

	slices.SortFunc(stats.Worlds, func(a, b WorldStats) int {
		return cmp.Compare(a.Id, b.Id)
	})
	return stats
}
