// Package ebiten hosts a runtime inside an Ebiten window with a Dear ImGui overlay.
package ebiten

import (
	"errors"
	"math"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/propcore/game"
	"github.com/rotisserie/eris"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the ImGui backend and its window. The ImGui ini file
// is disabled so window layout is not persisted.
func NewImguiBackend(title string, width, height int) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{EbitenBackend: backend}
}

// Host implements ebiten.Game. Each Update opens an ImGui frame, runs one
// runtime frame and closes the ImGui frame, so properties may draw ImGui
// widgets from their Frame hooks.
type Host struct {
	runtime *game.Runtime
	imgui   *ImguiBackend

	// Draw2D, when set, is called before the ImGui overlay is drawn.
	Draw2D func(screen *ebiten.Image)
}

var _ ebiten.Game = (*Host)(nil)

func NewHost(runtime *game.Runtime, backend *ImguiBackend) *Host {
	return &Host{runtime: runtime, imgui: backend}
}

func (h *Host) Update() error {
	if !h.runtime.IsRunning() {
		return ebiten.Termination
	}

	h.imgui.BeginFrame()
	h.runtime.OnBeginFrame()
	h.runtime.OnFixedFrame()
	h.runtime.OnFrame()
	h.runtime.OnEndFrame()
	h.imgui.EndFrame()
	return nil
}

func (h *Host) Draw(screen *ebiten.Image) {
	if h.Draw2D != nil {
		h.Draw2D(screen)
	}
	h.imgui.Draw(screen)
}

func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	h.imgui.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Run starts the runtime, blocks until the window closes or the runtime is shut
// down, then shuts the runtime down. Ebiten ticks at the runtime's fixed step.
func (h *Host) Run() error {
	ebiten.SetTPS(int(math.Round(1 / h.runtime.Frame().FixedDeltaTime)))
	h.runtime.OnStart()
	defer h.runtime.OnShutdown()

	if err := ebiten.RunGame(h); err != nil && !errors.Is(err, ebiten.Termination) {
		return eris.Wrap(err, "ebiten game loop failed")
	}
	return nil
}
