// Package debugui provides Dear ImGui debug windows for the behavior runtime.
// Every window is a property subscribed to the Frame event, so the windows are
// drawn while the host has an ImGui frame open around Runtime.OnFrame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/propcore/game"
)

// ImguiProperty renders arbitrary ImGui widgets every frame.
type ImguiProperty struct {
	game.PropertyBase
	Render func()
}

func (p *ImguiProperty) AcceptedEvents() []game.FrameEvent {
	return []game.FrameEvent{game.Frame}
}

func (p *ImguiProperty) OnFrame() {
	if p.Render != nil {
		p.Render()
	}
}

// InputState reports whether Dear ImGui is consuming mouse or keyboard input.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// CurrentInputState reads the input capture state of the current ImGui context.
func CurrentInputState() InputState {
	io := imgui.CurrentIO()
	return InputState{
		WantCaptureMouse:    io.WantCaptureMouse(),
		WantCaptureKeyboard: io.WantCaptureKeyboard(),
	}
}

// Selection is the entity picked in the entity browser, shared with the inspector.
type Selection struct {
	Entity game.EntityId
}
