package slots

import (
	"math"
	"reflect"
	"slices"

	"github.com/go-drift/oore/pkg/errors"
)

// PartitionChildren sorts children into the buckets of a Result, keeping
// input order within each bucket. Nested []any and []*Node values are
// flattened first. For each child:
//
//   - nil, typed nil and zero scalars go to Invalid.
//   - anything other than a *Node raises an InvalidChild diagnostic and goes
//     to Invalid.
//   - a node whose name (override first, then its type) maps to an alias
//     fills that alias; a later child for the same alias replaces an earlier
//     one.
//   - every other node goes to Unmatched.
//
// Afterwards each alias of the required set (required plus the aliases
// whose matched descriptor declares itself required) that is still empty
// raises one MissingRequiredSlot diagnostic. A required descriptor that no
// child matched is not checked; pass lookup.Required() to enforce every
// required registry entry.
func PartitionChildren(children []any, lookup *Lookup, required ...string) Result {
	result := Result{Slots: make(map[string]*Node)}
	requiredSet := append([]string(nil), required...)

	for _, child := range flatten(children, nil) {
		if isFalsy(child) {
			result.Invalid = append(result.Invalid, child)
			continue
		}
		node, ok := child.(*Node)
		if !ok {
			errors.Diagnosef("slots.PartitionChildren", errors.KindInvalidChild, child,
				"invalid node found in children while parsing slots, got %T: %v", child, child)
			result.Invalid = append(result.Invalid, child)
			continue
		}

		name, ok := ResolveSlotName(node.Type, node)
		if !ok {
			result.Unmatched = append(result.Unmatched, node)
			continue
		}
		alias, ok := lookup.Alias(name)
		if !ok {
			result.Unmatched = append(result.Unmatched, node)
			continue
		}
		if isRequired(lookup.Descriptor(alias)) {
			requiredSet = append(requiredSet, alias)
		}
		result.Slots[alias] = node
	}

	slices.Sort(requiredSet)
	for _, alias := range slices.Compact(requiredSet) {
		if !result.Has(alias) {
			errors.Diagnosef("slots.PartitionChildren", errors.KindMissingRequiredSlot, alias,
				"missing required slot %q", alias)
		}
	}
	return result
}

func flatten(children []any, out []any) []any {
	for _, child := range children {
		switch c := child.(type) {
		case []any:
			out = flatten(c, out)
		case []*Node:
			for _, node := range c {
				out = append(out, node)
			}
		default:
			out = append(out, child)
		}
	}
	return out
}

// isFalsy reports whether child is an empty placeholder rather than content:
// nil, a nil reference, false, zero, NaN or the empty string.
func isFalsy(child any) bool {
	if child == nil {
		return true
	}
	rv := reflect.ValueOf(child)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0 || math.IsNaN(rv.Float())
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.IsZero()
	}
	return false
}
