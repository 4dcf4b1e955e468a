package debugui

import (
	"reflect"

	"github.com/plus3/propcore/game"
)

type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     int
	IsPointer bool
}

var propertyBaseType = reflect.TypeFor[game.PropertyBase]()

// fieldCache remembers the editable fields of struct types. The embedded
// PropertyBase of a property is never listed.
type fieldCache struct {
	fields map[reflect.Type][]FieldInfo
}

func newFieldCache() *fieldCache {
	return &fieldCache{fields: make(map[reflect.Type][]FieldInfo)}
}

func (fc *fieldCache) get(t reflect.Type) []FieldInfo {
	if cached, ok := fc.fields[t]; ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() || field.Type == propertyBaseType {
				continue
			}

			fieldType := field.Type
			isPointer := fieldType.Kind() == reflect.Ptr
			if isPointer {
				fieldType = fieldType.Elem()
			}

			fields = append(fields, FieldInfo{
				Name:      field.Name,
				Type:      fieldType,
				Index:     i,
				IsPointer: isPointer,
			})
		}
	}

	fc.fields[t] = fields
	return fields
}
