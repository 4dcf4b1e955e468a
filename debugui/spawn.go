package debugui

import (
	"github.com/plus3/propcore/game"
	"github.com/rotisserie/eris"
)

// Template is the backend template used for the debug UI entity.
const Template = "Empty"

// SpawnDebugUI creates an entity carrying every debug window for world.
func SpawnDebugUI(world *game.World) (*game.Entity, error) {
	e, err := world.CreateEntity(Template)
	if err != nil {
		return nil, eris.Wrap(err, "failed to spawn debug UI")
	}

	rt := world.Runtime()
	selection := &Selection{}
	e.AddProperty(NewEntityBrowserProperty(world, selection, 100))
	e.AddProperty(NewPropertyInspectorProperty(world, selection))
	e.AddProperty(NewComponentViewerProperty(rt.Components()))
	e.AddProperty(NewPassStatsProperty(rt, 120))
	return e, nil
}
