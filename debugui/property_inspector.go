package debugui

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strings"
	"unsafe"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/propcore/game"
)

// PropertyInspectorProperty shows the selected entity: its transform, the
// registered components it carries and each of its properties with an Active
// toggle and the property's exported fields. Edits are written back immediately.
type PropertyInspectorProperty struct {
	game.PropertyBase

	world     *game.World
	selection *Selection
	editor    *editor
}

func NewPropertyInspectorProperty(world *game.World, selection *Selection) *PropertyInspectorProperty {
	return &PropertyInspectorProperty{
		world:     world,
		selection: selection,
		editor:    newEditor(),
	}
}

func (pi *PropertyInspectorProperty) AcceptedEvents() []game.FrameEvent {
	return []game.FrameEvent{game.Frame}
}

func (pi *PropertyInspectorProperty) OnFrame() {
	if !imgui.BeginV("Property Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if pi.selection.Entity == game.InvalidEntityId {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	e, ok := pi.world.Entity(pi.selection.Entity)
	if !ok {
		imgui.Text(fmt.Sprintf("Entity %d no longer exists", pi.selection.Entity))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", e.Id()))
	imgui.Text(fmt.Sprintf("World: %d", e.WorldId()))
	imgui.SameLine()
	if imgui.Button("Destroy") {
		e.DestroyDeferred()
		pi.selection.Entity = game.InvalidEntityId
	}
	imgui.Separator()

	if imgui.TreeNodeStr("Transform") {
		pos := e.Position()
		if pi.editVec3("Position", &pos) {
			e.SetPosition(pos)
		}
		rot := eulerDegrees(e.Orientation())
		if pi.editVec3("Rotation", &rot) {
			e.SetOrientation(quatFromEulerDegrees(rot))
		}
		scale := e.Scale()
		if pi.editVec3("Scale", &scale) {
			e.SetScale(scale)
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Components") {
		pi.renderComponents(e)
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Message Routes") {
		pi.renderRoutes(e)
		imgui.TreePop()
	}

	for i, p := range e.Properties() {
		if imgui.TreeNodeStr(fmt.Sprintf("%s##prop%d", game.PropertyName(p), i)) {
			pi.renderProperty(p, fmt.Sprintf("prop%d", i))
			imgui.TreePop()
		}
	}

	imgui.End()
}

type activatable interface {
	IsActive() bool
	SetActive(bool)
}

func (pi *PropertyInspectorProperty) renderProperty(p game.Property, id string) {
	if a, ok := p.(activatable); ok {
		active := a.IsActive()
		if imgui.Checkbox("Active##"+id, &active) {
			a.SetActive(active)
		}
	}

	val := reflect.ValueOf(p)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() == reflect.Struct {
		pi.editor.editStruct(id, val)
	}
}

func (pi *PropertyInspectorProperty) renderComponents(e *game.Entity) {
	bridge := e.World().Runtime().Components()
	for _, info := range bridge.Components() {
		if !e.World().Runtime().Backend().HasComponent(e.WorldId(), e.Id(), info.Id) {
			continue
		}
		if !imgui.TreeNodeStr(fmt.Sprintf("%s##comp%d", info.Name, info.Id)) {
			continue
		}

		id := fmt.Sprintf("comp%d", info.Id)
		val, err := readComponent(bridge, e, info)
		if err != nil {
			imgui.Text(err.Error())
		} else if pi.editor.editValue(info.Name, id, val) {
			if err := writeComponent(bridge, e, info, val); err != nil {
				e.Logger().Warn().Err(err).Str("component", info.Name).Msg("failed to write edited component")
			}
		}
		imgui.TreePop()
	}
}

func (pi *PropertyInspectorProperty) renderRoutes(e *game.Entity) {
	routes := routeList(e.Dispatcher())
	if len(routes) == 0 {
		imgui.Text("No message handlers")
		return
	}
	for _, r := range routes {
		imgui.BulletText(fmt.Sprintf("%s: %d", r.Type, r.Handlers))
	}
}

func (pi *PropertyInspectorProperty) editVec3(name string, v *mgl32.Vec3) bool {
	return pi.editor.editValue(name, "transform."+name, reflect.ValueOf(v).Elem())
}

// eulerDegrees converts q to roll, pitch and yaw in degrees about X, Y and Z,
// the inverse of quatFromEulerDegrees.
func eulerDegrees(q mgl32.Quat) mgl32.Vec3 {
	q = q.Normalize()
	w, x, y, z := float64(q.W), float64(q.V[0]), float64(q.V[1]), float64(q.V[2])

	roll := math.Atan2(2*(w*x+y*z), 1-2*(x*x+y*y))
	pitch := math.Asin(max(-1, min(1, 2*(w*y-z*x))))
	yaw := math.Atan2(2*(w*z+x*y), 1-2*(y*y+z*z))

	return mgl32.Vec3{
		mgl32.RadToDeg(float32(roll)),
		mgl32.RadToDeg(float32(pitch)),
		mgl32.RadToDeg(float32(yaw)),
	}
}

func quatFromEulerDegrees(v mgl32.Vec3) mgl32.Quat {
	return mgl32.AnglesToQuat(
		mgl32.DegToRad(v[2]),
		mgl32.DegToRad(v[1]),
		mgl32.DegToRad(v[0]),
		mgl32.ZYX,
	).Normalize()
}

type route struct {
	Type     string
	Handlers int
}

// routeList returns the dispatcher's routes sorted by message type name.
func routeList(d *game.MessageDispatcher) []route {
	var routes []route
	for mt, n := range d.Routes() {
		routes = append(routes, route{Type: mt.String(), Handlers: n})
	}
	slices.SortFunc(routes, func(a, b route) int {
		return strings.Compare(a.Type, b.Type)
	})
	return routes
}

// readComponent copies a component into a fresh addressable value of its Go type.
func readComponent(bridge *game.ComponentBridge, e *game.Entity, info game.ComponentInfo) (reflect.Value, error) {
	val := reflect.New(info.Type).Elem()
	err := bridge.GetComponentData(e.WorldId(), e.Id(), info.Id, info.Size, func(buf []byte) error {
		copy(valueBytes(val, info.Size), buf)
		return nil
	})
	return val, err
}

func writeComponent(bridge *game.ComponentBridge, e *game.Entity, info game.ComponentInfo, val reflect.Value) error {
	return bridge.SetComponentData(e.WorldId(), e.Id(), info.Id, valueBytes(val, info.Size))
}

func valueBytes(val reflect.Value, size int) []byte {
	return unsafe.Slice((*byte)(val.Addr().UnsafePointer()), size)
}
