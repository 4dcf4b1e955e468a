package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/propcore/game"
)

// ComponentViewerProperty lists the components registered with the runtime's
// component bridge.
type ComponentViewerProperty struct {
	game.PropertyBase
	bridge *game.ComponentBridge
}

func NewComponentViewerProperty(bridge *game.ComponentBridge) *ComponentViewerProperty {
	return &ComponentViewerProperty{bridge: bridge}
}

func (cv *ComponentViewerProperty) AcceptedEvents() []game.FrameEvent {
	return []game.FrameEvent{game.Frame}
}

func (cv *ComponentViewerProperty) OnFrame() {
	if !imgui.BeginV("Component Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	components := cv.bridge.Components()
	imgui.Text(fmt.Sprintf("Registered: %d", len(components)))
	imgui.Text(fmt.Sprintf("Transfer buffers in use: %d", cv.bridge.OutstandingBuffers()))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("ComponentTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("ID")
		imgui.TableSetupColumn("Size")
		imgui.TableSetupColumn("Go Type")
		imgui.TableHeadersRow()

		for _, info := range components {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(info.Name)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", info.Id))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", info.Size))
			imgui.TableNextColumn()
			imgui.Text(info.Type.String())
		}

		imgui.EndTable()
	}

	imgui.End()
}
