package game

import "reflect"

// Message is an immutable value routed to the properties of one entity. It carries
// no destination; its concrete Go type is the routing key.
type Message any

// MessageType identifies a kind of message.
type MessageType struct {
	t reflect.Type
}

// MessageTypeOf returns the MessageType for values of type M. M should be a
// concrete type; messages are routed by their dynamic type.
func MessageTypeOf[M any]() MessageType {
	return MessageType{t: reflect.TypeFor[M]()}
}

func messageTypeOf(msg Message) MessageType {
	return MessageType{t: reflect.TypeOf(msg)}
}

func (mt MessageType) String() string {
	if mt.t == nil {
		return "<nil>"
	}
	return mt.t.String()
}
