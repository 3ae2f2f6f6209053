// Package slots matches a component's children against a registry of named
// placeholders.
//
// A Registry maps an alias (the name the parent uses) to a descriptor: either
// a plain tag name, or a component value that names itself through SlotName
// or DisplayName. PartitionChildren sorts children into three disjoint
// buckets: children filling an alias, element children that fill none, and
// entries that are not element nodes at all.
//
//	registry := slots.Registry{
//	    "header": "h1",
//	    "body":   slots.Required("body"),
//	}
//	result := slots.UseSlots(ctx, children, registry)
//	header := result.Slot("header")
package slots

// OverrideProp is the child property that names a child's slot explicitly,
// taking precedence over the name of the child's type.
const OverrideProp = "data-slot-name"

// Descriptor is a registry value: a tag name (string) or a component value
// implementing SlotNamer or DisplayNamer. It may also implement RequiredSlot.
type Descriptor = any

// Registry maps aliases to descriptors.
type Registry map[string]Descriptor

// SlotNamer is implemented by components that declare their slot name.
type SlotNamer interface {
	SlotName() string
}

// DisplayNamer is the fallback naming interface used when a component has no
// slot name.
type DisplayNamer interface {
	DisplayName() string
}

// RequiredSlot is implemented by descriptors that must be filled whenever
// they are registered.
type RequiredSlot interface {
	IsRequiredSlot() bool
}

// Node is one element child: a type reference (tag name or component) and
// its properties.
type Node struct {
	Type  any
	Props map[string]any
	Key   string
}

// El builds a Node.
func El(typ any, props map[string]any) *Node {
	return &Node{Type: typ, Props: props}
}

// Prop returns a property of the node, or nil.
func (n *Node) Prop(name string) any {
	if n == nil || n.Props == nil {
		return nil
	}
	return n.Props[name]
}

// WithSlotName returns a copy of n whose OverrideProp is name.
func (n *Node) WithSlotName(name string) *Node {
	props := make(map[string]any, len(n.Props)+1)
	for key, value := range n.Props {
		props[key] = value
	}
	props[OverrideProp] = name
	return &Node{Type: n.Type, Props: props, Key: n.Key}
}

// Slot is a ready-made component descriptor.
type Slot struct {
	Name     string
	Display  string
	Required bool
}

// Named returns an optional slot descriptor called name.
func Named(name string) Slot {
	return Slot{Name: name}
}

// Required returns a slot descriptor called name that must always be filled.
func Required(name string) Slot {
	return Slot{Name: name, Required: true}
}

// SlotName returns the name children are matched against.
func (s Slot) SlotName() string { return s.Name }

// DisplayName returns the fallback name used when Name is empty.
func (s Slot) DisplayName() string { return s.Display }

// IsRequiredSlot reports whether a pass that matches this slot must fill it.
func (s Slot) IsRequiredSlot() bool { return s.Required }

// Result is the outcome of one partition pass.
type Result struct {
	// Slots holds at most one child per alias.
	Slots map[string]*Node
	// Unmatched holds element children that fill no alias, in input order.
	Unmatched []*Node
	// Invalid holds entries that are not element nodes, in input order.
	Invalid []any
}

// Slot returns the child filling alias, or nil.
func (r Result) Slot(alias string) *Node {
	return r.Slots[alias]
}

// Has reports whether alias is filled.
func (r Result) Has(alias string) bool {
	return r.Slots[alias] != nil
}

// Len returns the number of children the result accounts for, counting each
// filled alias once.
func (r Result) Len() int {
	return len(r.Slots) + len(r.Unmatched) + len(r.Invalid)
}
