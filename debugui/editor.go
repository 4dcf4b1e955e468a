package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
)

// editor renders reflected values as ImGui widgets and writes user edits back
// into them. Values must be addressable for edits to stick.
type editor struct {
	fields *fieldCache
}

func newEditor() *editor {
	return &editor{fields: newFieldCache()}
}

// editStruct renders the exported fields of val and reports whether any changed.
// id prefixes widget ids so that identical field names stay distinct.
func (ed *editor) editStruct(id string, val reflect.Value) bool {
	changed := false
	for _, field := range ed.fields.get(val.Type()) {
		fieldVal := val.Field(field.Index)
		if field.IsPointer {
			if fieldVal.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", field.Name))
				continue
			}
			fieldVal = fieldVal.Elem()
		}
		if ed.editValue(field.Name, id+"."+field.Name, fieldVal) {
			changed = true
		}
	}
	return changed
}

func (ed *editor) editValue(name, id string, val reflect.Value) bool {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return false
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt("##"+id, &v) && val.CanSet() && !val.OverflowInt(int64(v)) {
			val.SetInt(int64(v))
			return true
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt("##"+id, &v) && val.CanSet() && v >= 0 && !val.OverflowUint(uint64(v)) {
			val.SetUint(uint64(v))
			return true
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat("##"+id, &v) && val.CanSet() {
			val.SetFloat(float64(v))
			return true
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(fmt.Sprintf("%s##%s", name, id), &v) && val.CanSet() {
			val.SetBool(v)
			return true
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint("##"+id, "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
			return true
		}

	case reflect.Struct:
		changed := false
		if imgui.TreeNodeStr(fmt.Sprintf("%s##%s", name, id)) {
			changed = ed.editStruct(id, val)
			imgui.TreePop()
		}
		return changed

	case reflect.Array:
		changed := false
		if imgui.TreeNodeStr(fmt.Sprintf("%s [%d]##%s", name, val.Len(), id)) {
			for i := 0; i < val.Len(); i++ {
				if ed.editValue(fmt.Sprintf("[%d]", i), fmt.Sprintf("%s[%d]", id, i), val.Index(i)) {
					changed = true
				}
			}
			imgui.TreePop()
		}
		return changed

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	case reflect.Ptr, reflect.Interface:
		if val.IsNil() {
			imgui.Text(fmt.Sprintf("%s: nil", name))
			return false
		}
		return ed.editValue(name, id, val.Elem())

	default:
		if val.CanInterface() {
			imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
		} else {
			imgui.Text(fmt.Sprintf("%s: <%s>", name, val.Type()))
		}
	}
	return false
}
