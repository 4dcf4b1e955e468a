package game

// WorldId identifies a backend simulation scope sharing one entity namespace
type WorldId uint32

// EntityId is the backend-assigned id of an entity, unique within its world while live
type EntityId uint32

// InvalidEntityId is the sentinel carried by destroyed or unset entities
const InvalidEntityId EntityId = 0

// ComponentId is the stable numeric id of a native component type
type ComponentId uint16

// OwnerComponent is the name of the built-in component every backend entity carries.
const OwnerComponent = "Owner"

// Owner is the fixed layout of the built-in Owner component; it holds the entity's own id.
type Owner struct {
	Entity EntityId
}
