package game

import (
	"reflect"
	"slices"
	"weak"
)

// FrameEvent is one of the fixed per-tick lifecycle hooks a property can subscribe to.
type FrameEvent uint8

const (
	BeginFrame FrameEvent = iota
	FixedFrame
	Frame
	EndFrame

	// NumFrameEvents is the number of frame events; it is not extensible at runtime.
	NumFrameEvents
)

func (ev FrameEvent) String() string {
	switch ev {
	case BeginFrame:
		return "BeginFrame"
	case FixedFrame:
		return "FixedFrame"
	case Frame:
		return "Frame"
	case EndFrame:
		return "EndFrame"
	default:
		return "FrameEvent(?)"
	}
}

// Property is a behavior unit attached to exactly one Entity. Concrete properties
// embed PropertyBase, which provides the lifecycle state and no-op hooks, and
// override the hooks they need.
//
// AcceptedEvents and AcceptedMessages must return the same value on every call;
// they are read once when the property is added to an entity.
type Property interface {
	AcceptedEvents() []FrameEvent
	AcceptedMessages() []MessageType

	OnActivate()
	OnDeactivate()

	OnBeginFrame()
	OnFixedFrame()
	OnFrame()
	OnEndFrame()

	OnMessage(msg Message)

	base() *PropertyBase
}

// PropertyBase holds the ownership and activation state of a property.
type PropertyBase struct {
	self      Property
	entity    weak.Pointer[Entity]
	bound     bool
	active    bool
	destroyed bool

	events   [NumFrameEvents]bool
	messages []MessageType
}

func (b *PropertyBase) base() *PropertyBase { return b }

func (b *PropertyBase) AcceptedEvents() []FrameEvent    { return nil }
func (b *PropertyBase) AcceptedMessages() []MessageType { return nil }
func (b *PropertyBase) OnActivate()                     {}
func (b *PropertyBase) OnDeactivate()                   {}
func (b *PropertyBase) OnBeginFrame()                   {}
func (b *PropertyBase) OnFixedFrame()                   {}
func (b *PropertyBase) OnFrame()                        {}
func (b *PropertyBase) OnEndFrame()                     {}
func (b *PropertyBase) OnMessage(Message)               {}

// Entity returns the owning entity, or nil while unbound or after destruction.
func (b *PropertyBase) Entity() *Entity {
	return b.entity.Value()
}

// IsActive reports whether the property currently receives frame events and messages.
func (b *PropertyBase) IsActive() bool {
	return b.active
}

// IsDestroyed reports whether the owning entity has been destroyed.
func (b *PropertyBase) IsDestroyed() bool {
	return b.destroyed
}

// IsValid reports whether the property is bound to an entity the backend still knows.
func (b *PropertyBase) IsValid() bool {
	if !b.bound || b.destroyed {
		return false
	}
	e := b.entity.Value()
	return e != nil && e.IsValid()
}

// SetActive activates or deactivates the property. OnActivate and OnDeactivate fire
// once per actual transition; setting the current value, or touching an unbound or
// destroyed property, does nothing.
func (b *PropertyBase) SetActive(active bool) {
	if !b.bound || b.destroyed || b.active == active {
		return
	}
	b.active = active
	if active {
		b.self.OnActivate()
	} else {
		b.self.OnDeactivate()
	}
}

// bind assigns the owning entity. It succeeds exactly once per property.
func (b *PropertyBase) bind(e *Entity, self Property) bool {
	if b.destroyed {
		e.logger.Warn().Str("property", PropertyName(self)).Msg("cannot add a destroyed property")
		return false
	}
	if b.bound {
		ev := e.logger.Warn().Str("property", PropertyName(self))
		if owner := b.entity.Value(); owner != nil {
			ev = ev.Uint32("owner_id", uint32(owner.id))
		}
		ev.Msg("property is already owned by an entity")
		return false
	}

	b.self = self
	b.entity = weak.Make(e)
	b.bound = true

	for _, ev := range self.AcceptedEvents() {
		if ev < NumFrameEvents {
			b.events[ev] = true
		}
	}
	for _, mt := range self.AcceptedMessages() {
		if !slices.Contains(b.messages, mt) {
			b.messages = append(b.messages, mt)
		}
	}
	return true
}

// destroy is terminal: it forces deactivation and drops the entity reference.
func (b *PropertyBase) destroy() {
	if b.destroyed {
		return
	}
	if b.active {
		b.active = false
		b.self.OnDeactivate()
	}
	b.destroyed = true
	b.entity = weak.Pointer[Entity]{}
}

// PropertyName returns the type name of a property, for diagnostics.
func PropertyName(p Property) string {
	t := reflect.TypeOf(p)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
