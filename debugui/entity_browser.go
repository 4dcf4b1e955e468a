package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/propcore/game"
)

type EntityInfo struct {
	ID            game.EntityId
	PropertyTypes []string
	Position      mgl32.Vec3
}

// EntityBrowserProperty lists the live entities of a world in a filterable,
// sortable and paged table. Clicking a row updates the shared Selection.
type EntityBrowserProperty struct {
	game.PropertyBase

	world              *game.World
	selection          *Selection
	entities           []EntityInfo
	lastFrame          uint64
	sortColumn         int
	sortAscending      bool
	filterText         string
	maxEntitiesPerPage int
	currentPage        int
}

func NewEntityBrowserProperty(world *game.World, selection *Selection, maxEntitiesPerPage int) *EntityBrowserProperty {
	return &EntityBrowserProperty{
		world:              world,
		selection:          selection,
		sortAscending:      true,
		maxEntitiesPerPage: max(maxEntitiesPerPage, 1),
	}
}

func (eb *EntityBrowserProperty) AcceptedEvents() []game.FrameEvent {
	return []game.FrameEvent{game.Frame}
}

func (eb *EntityBrowserProperty) OnFrame() {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if frame := eb.world.Runtime().Frame().Number; frame != eb.lastFrame || eb.entities == nil {
		eb.refresh()
		eb.lastFrame = frame
	}

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.currentPage = 0
	}

	filtered := eb.filtered()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Properties")
		imgui.TableSetupColumn("Count")
		imgui.TableSetupColumn("Position")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.sortColumn = int(spec.ColumnIndex())
			eb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortEntities(eb.entities, eb.sortColumn, eb.sortAscending)
			filtered = eb.filtered()
			sortSpecs.SetSpecsDirty(false)
		}

		startIdx, endIdx := pageBounds(len(filtered), eb.currentPage, eb.maxEntitiesPerPage)
		for _, entity := range filtered[startIdx:endIdx] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selection.Entity == entity.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selection.Entity = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.PropertyTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(entity.PropertyTypes)))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.1f, %.1f, %.1f", entity.Position.X(), entity.Position.Y(), entity.Position.Z()))
		}

		imgui.EndTable()
	}

	if len(filtered) > eb.maxEntitiesPerPage {
		totalPages := (len(filtered) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

func (eb *EntityBrowserProperty) refresh() {
	eb.entities = collectEntities(eb.world, eb.entities[:0])
	sortEntities(eb.entities, eb.sortColumn, eb.sortAscending)
}

func (eb *EntityBrowserProperty) filtered() []EntityInfo {
	return filterEntities(eb.entities, eb.filterText)
}

func collectEntities(world *game.World, dst []EntityInfo) []EntityInfo {
	for _, e := range world.Entities() {
		props := e.Properties()
		names := make([]string, len(props))
		for i, p := range props {
			names[i] = game.PropertyName(p)
		}
		dst = append(dst, EntityInfo{
			ID:            e.Id(),
			PropertyTypes: names,
			Position:      e.Position(),
		})
	}
	return dst
}

func sortEntities(entities []EntityInfo, column int, ascending bool) {
	slices.SortStableFunc(entities, func(a, b EntityInfo) int {
		var c int
		switch column {
		case 1:
			c = strings.Compare(strings.Join(a.PropertyTypes, ","), strings.Join(b.PropertyTypes, ","))
		case 2:
			c = cmp.Compare(len(a.PropertyTypes), len(b.PropertyTypes))
		case 3:
			c = cmp.Compare(a.Position.Len(), b.Position.Len())
		default:
			c = cmp.Compare(a.ID, b.ID)
		}
		if !ascending {
			return -c
		}
		return c
	})
}

// filterEntities keeps entities whose id or property names contain text,
// ignoring case.
func filterEntities(entities []EntityInfo, text string) []EntityInfo {
	if text == "" {
		return entities
	}

	filtered := make([]EntityInfo, 0, len(entities))
	filterLower := strings.ToLower(text)
	for _, entity := range entities {
		idStr := fmt.Sprintf("%d", entity.ID)
		propsStr := strings.ToLower(strings.Join(entity.PropertyTypes, " "))
		if strings.Contains(idStr, filterLower) || strings.Contains(propsStr, filterLower) {
			filtered = append(filtered, entity)
		}
	}
	return filtered
}

func pageBounds(total, page, perPage int) (int, int) {
	start := min(page*perPage, total)
	end := min(start+perPage, total)
	return start, end
}
