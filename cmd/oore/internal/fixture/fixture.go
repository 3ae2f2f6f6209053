// Package fixture decodes the YAML scenarios run by the oore CLI.
package fixture

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-drift/oore/pkg/slots"
	"github.com/go-drift/oore/pkg/state"
	"gopkg.in/yaml.v3"
)

// Component is a named component declared by a fixture. It implements the
// slot naming interfaces with whatever the fixture sets.
type Component struct {
	ID       string `yaml:"-"`
	Slot     string `yaml:"slotName,omitempty"`
	Display  string `yaml:"displayName,omitempty"`
	Required bool   `yaml:"required,omitempty"`
}

func (c *Component) SlotName() string     { return c.Slot }
func (c *Component) DisplayName() string  { return c.Display }
func (c *Component) IsRequiredSlot() bool { return c.Required }

func (c *Component) String() string {
	return "<" + c.ID + ">"
}

// Entry is one registry value: a tag name, or a component declaration.
type Entry struct {
	Tag       string
	Component *Component
}

// UnmarshalYAML accepts a scalar tag name or a component mapping.
func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&e.Tag)
	case yaml.MappingNode:
		e.Component = &Component{}
		return node.Decode(e.Component)
	}
	return fmt.Errorf("line %d: registry entry must be a tag name or a mapping", node.Line)
}

// Slots is a slot resolution scenario.
//
//	registry:
//	  header: h1
//	  body: {slotName: body, required: true}
//	required: [header]
//	children:
//	  - {type: h1}
//	  - {component: body}
//	  - {type: span, props: {data-slot-name: h1}}
//	  - null
type Slots struct {
	Registry map[string]Entry `yaml:"registry"`
	Required []string         `yaml:"required"`
	Children []any            `yaml:"children"`

	components map[string]*Component
}

// SlotRegistry builds the registry. Component entries become
// *Component descriptors identified by their alias.
func (s *Slots) SlotRegistry() slots.Registry {
	registry := make(slots.Registry, len(s.Registry))
	for alias, entry := range s.Registry {
		if entry.Component != nil {
			registry[alias] = s.component(alias)
			continue
		}
		registry[alias] = entry.Tag
	}
	return registry
}

// component returns the component declared under id, or an anonymous
// component when the registry has none.
func (s *Slots) component(id string) *Component {
	if s.components == nil {
		s.components = make(map[string]*Component)
	}
	if c, ok := s.components[id]; ok {
		return c
	}
	c := &Component{ID: id}
	if entry, ok := s.Registry[id]; ok && entry.Component != nil {
		*c = *entry.Component
		c.ID = id
	}
	s.components[id] = c
	return c
}

// Nodes converts the decoded children. Mappings with a type or component
// key become *slots.Node values, sequences stay nested, and every other
// value is kept as is.
func (s *Slots) Nodes() ([]any, error) {
	return s.convert(s.Children)
}

func (s *Slots) convert(children []any) ([]any, error) {
	out := make([]any, 0, len(children))
	for i, child := range children {
		switch c := child.(type) {
		case []any:
			nested, err := s.convert(c)
			if err != nil {
				return nil, err
			}
			out = append(out, nested)
		case map[string]any:
			node, err := s.node(c)
			if err != nil {
				return nil, fmt.Errorf("child %d: %w", i, err)
			}
			out = append(out, node)
		default:
			out = append(out, child)
		}
	}
	return out, nil
}

func (s *Slots) node(spec map[string]any) (*slots.Node, error) {
	node := &slots.Node{}
	tag, hasTag := spec["type"]
	id, hasComponent := spec["component"]
	switch {
	case hasTag && hasComponent:
		return nil, fmt.Errorf("set either type or component, not both")
	case hasTag:
		name, ok := tag.(string)
		if !ok {
			return nil, fmt.Errorf("type must be a string, got %T", tag)
		}
		node.Type = name
	case hasComponent:
		name, ok := id.(string)
		if !ok {
			return nil, fmt.Errorf("component must be a string, got %T", id)
		}
		node.Type = s.component(name)
	default:
		return nil, fmt.Errorf("node needs a type or a component")
	}

	if props, ok := spec["props"]; ok {
		m, ok := props.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("props must be a mapping, got %T", props)
		}
		node.Props = m
	}
	if key, ok := spec["key"]; ok {
		node.Key = fmt.Sprint(key)
	}
	return node, nil
}

// State is a state container scenario. Initial keeps the declaration order
// of its mapping.
//
//	kind: clean
//	initial:
//	  count: 0
//	  label: clicks
//	steps:
//	  - {count: 1}
//	  - {count: 2, label: more}
type State struct {
	Kind    string           `yaml:"kind"`
	Initial yaml.Node        `yaml:"initial"`
	Steps   []map[string]any `yaml:"steps"`
}

// Record decodes Initial in declaration order.
func (s *State) Record() (state.Initial, error) {
	if s.Initial.Kind == 0 {
		return nil, nil
	}
	if s.Initial.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: initial must be a mapping", s.Initial.Line)
	}
	content := s.Initial.Content
	initial := make(state.Initial, 0, len(content)/2)
	for i := 0; i+1 < len(content); i += 2 {
		var value any
		if err := content[i+1].Decode(&value); err != nil {
			return nil, fmt.Errorf("initial.%s: %w", content[i].Value, err)
		}
		initial = append(initial, state.Field{Key: content[i].Value, Value: value})
	}
	return initial, nil
}

// LoadSlots reads a slots scenario.
func LoadSlots(path string) (*Slots, error) {
	var s Slots
	if err := load(path, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadState reads a state scenario. Kind defaults to "clean".
func LoadState(path string) (*State, error) {
	var s State
	if err := load(path, &s); err != nil {
		return nil, err
	}
	switch s.Kind {
	case "":
		s.Kind = "clean"
	case "clean", "merged":
	default:
		return nil, fmt.Errorf("%s: kind must be \"clean\" or \"merged\" (got %q)", path, s.Kind)
	}
	return &s, nil
}

func load(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read fixture: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
