package game

// MessageDispatcher routes messages to the properties of a single entity that
// declared interest in the message's type. Routes are only ever appended; they
// go away with the dispatcher.
type MessageDispatcher struct {
	routes map[MessageType][]Property
}

// NewMessageDispatcher creates an empty dispatcher.
func NewMessageDispatcher() *MessageDispatcher {
	return &MessageDispatcher{
		routes: make(map[MessageType][]Property),
	}
}

// Register appends p to the route of every message type it accepts.
func (d *MessageDispatcher) Register(p Property) {
	for _, mt := range p.base().messages {
		d.routes[mt] = append(d.routes[mt], p)
	}
}

// Dispatch delivers msg to every active handler for its dynamic type, in
// registration order. Messages without a route are dropped.
func (d *MessageDispatcher) Dispatch(msg Message) {
	if msg == nil {
		return
	}
	d.deliver(messageTypeOf(msg), msg)
}

// DispatchTyped is Dispatch with the route resolved from the static type M.
func DispatchTyped[M any](d *MessageDispatcher, msg M) {
	d.deliver(MessageTypeOf[M](), msg)
}

func (d *MessageDispatcher) deliver(mt MessageType, msg Message) {
	handlers := d.routes[mt]
	for _, p := range handlers {
		b := p.base()
		if !b.bound || b.destroyed || !b.active {
			continue
		}
		p.OnMessage(msg)
	}
}

// Routes returns the number of handlers bound to each message type.
func (d *MessageDispatcher) Routes() map[MessageType]int {
	routes := make(map[MessageType]int, len(d.routes))
	for mt, handlers := range d.routes {
		routes[mt] = len(handlers)
	}
	return routes
}
