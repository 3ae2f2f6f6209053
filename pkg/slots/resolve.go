package slots

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/go-drift/oore/pkg/errors"
)

// ResolveSlotName returns the slot name of descriptor. When child is not nil
// its OverrideProp wins if it holds a string or a number; numbers are
// formatted in their shortest decimal form. Otherwise a string descriptor is
// its own name, then SlotName and DisplayName are tried in turn. Empty names
// count as missing.
func ResolveSlotName(descriptor Descriptor, child *Node) (string, bool) {
	if child != nil {
		if name, ok := overrideName(child.Prop(OverrideProp)); ok {
			return name, true
		}
	}

	switch d := descriptor.(type) {
	case string:
		return d, d != ""
	case SlotNamer:
		if name := d.SlotName(); name != "" {
			return name, true
		}
	}
	if d, ok := descriptor.(DisplayNamer); ok {
		if name := d.DisplayName(); name != "" {
			return name, true
		}
	}
	return "", false
}

func overrideName(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, v != ""
	case int:
		return strconv.Itoa(v), true
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, uintptr:
		return fmt.Sprint(v), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	}
	return "", false
}

func isRequired(descriptor Descriptor) bool {
	r, ok := descriptor.(RequiredSlot)
	return ok && r.IsRequiredSlot()
}

// Lookup maps resolved slot names back to registry aliases.
type Lookup struct {
	registry Registry
	aliases  map[string]string
	required []string
}

// BuildAliasLookup resolves every descriptor of registry. Aliases are visited
// in lexicographic order. A descriptor without a name raises a
// MissingSlotName diagnostic and is left out; when two aliases resolve to the
// same name the later alias wins and a DuplicateSlotName diagnostic is raised.
func BuildAliasLookup(registry Registry) *Lookup {
	aliases := make([]string, 0, len(registry))
	for alias := range registry {
		aliases = append(aliases, alias)
	}
	slices.Sort(aliases)

	l := &Lookup{registry: registry, aliases: make(map[string]string, len(registry))}
	for _, alias := range aliases {
		descriptor := registry[alias]
		name, ok := ResolveSlotName(descriptor, nil)
		if !ok {
			errors.Diagnosef("slots.BuildAliasLookup", errors.KindMissingSlotName, alias,
				"slot %q has no slot name: register a tag name or a component with SlotName or DisplayName, got %T", alias, descriptor)
			continue
		}
		if previous, dup := l.aliases[name]; dup {
			errors.Diagnosef("slots.BuildAliasLookup", errors.KindDuplicateSlotName, name,
				"slots %q and %q both resolve to %q; %q is used", previous, alias, name, alias)
			// The shadowed alias can never be filled.
			l.required = slices.DeleteFunc(l.required, func(a string) bool { return a == previous })
		}
		l.aliases[name] = alias
		if isRequired(descriptor) {
			l.required = append(l.required, alias)
		}
	}
	return l
}

// Alias returns the alias registered for a slot name.
func (l *Lookup) Alias(name string) (string, bool) {
	if l == nil {
		return "", false
	}
	alias, ok := l.aliases[name]
	return alias, ok
}

// Descriptor returns the registry entry of alias.
func (l *Lookup) Descriptor(alias string) Descriptor {
	if l == nil {
		return nil
	}
	return l.registry[alias]
}

// Names returns the resolved slot names in lexicographic order.
func (l *Lookup) Names() []string {
	if l == nil {
		return nil
	}
	names := make([]string, 0, len(l.aliases))
	for name := range l.aliases {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Required returns the aliases whose descriptor declares itself required.
// PartitionChildren only checks them when they are passed explicitly.
func (l *Lookup) Required() []string {
	if l == nil {
		return nil
	}
	return append([]string(nil), l.required...)
}

// Len returns the number of resolvable slot names.
func (l *Lookup) Len() int {
	if l == nil {
		return 0
	}
	return len(l.aliases)
}
