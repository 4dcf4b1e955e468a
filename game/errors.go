package game

import "github.com/rotisserie/eris"

var (
	// ErrUnknownComponent is returned when a component name has no backend mapping.
	ErrUnknownComponent = eris.New("unknown component")
	// ErrComponentLayout is returned when a Go type cannot be copied as fixed-layout data.
	ErrComponentLayout = eris.New("component type is not plain fixed-layout data")
	// ErrComponentSize is returned when a Go type and the backend layout disagree on size.
	ErrComponentSize = eris.New("component size does not match backend layout")
	// ErrEntityNotValid is returned when an operation targets a destroyed entity.
	ErrEntityNotValid = eris.New("entity is not valid")
)
