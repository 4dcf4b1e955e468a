package memdb

import "github.com/rotisserie/eris"

var (
	// ErrUnknownTemplate is returned when an entity is created from an undefined template.
	ErrUnknownTemplate = eris.New("unknown template")
	// ErrMissingComponent is returned when an entity does not carry the requested component.
	ErrMissingComponent = eris.New("entity does not have component")
	// ErrSizeMismatch is returned when a transfer buffer does not match the component layout.
	ErrSizeMismatch = eris.New("buffer size does not match component layout")
)
