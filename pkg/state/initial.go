package state

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"unicode"
)

// Field is one key of an initial state.
type Field struct {
	Key   string
	Value any
}

// Initial is an ordered initial-state record. Its order fixes the order in
// which a CleanState allocates update slots.
type Initial []Field

// Of builds an Initial from alternating key/value arguments:
//
//	state.Of("count", 0, "label", "clicks")
//
// It panics on an odd number of arguments or a non-string key.
func Of(pairs ...any) Initial {
	if len(pairs)%2 != 0 {
		panic(fmt.Sprintf("state.Of: odd number of arguments (%d)", len(pairs)))
	}
	initial := make(Initial, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("state.Of: argument %d is %T, want string key", i, pairs[i]))
		}
		initial = append(initial, Field{Key: key, Value: pairs[i+1]})
	}
	return initial
}

// FromMap builds an Initial from a map. Go maps carry no order, so keys are
// sorted lexicographically.
func FromMap(values map[string]any) Initial {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	initial := make(Initial, 0, len(keys))
	for _, key := range keys {
		initial = append(initial, Field{Key: key, Value: values[key]})
	}
	return initial
}

// FromStruct builds an Initial from the exported fields of a struct (or a
// pointer to one), in declaration order. Keys default to the field name with
// its leading capitals lowered (Count → count, URLPath → urlPath). A
// `state:"name"` tag renames a field and `state:"-"` skips it.
func FromStruct(v any) (Initial, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("state.FromStruct: nil %s", rv.Type())
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("state.FromStruct: got %T, want struct", v)
	}

	rt := rv.Type()
	var initial Initial
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		key := lowerLeading(field.Name)
		if tag, ok := field.Tag.Lookup("state"); ok {
			name, _, _ := strings.Cut(tag, ",")
			if name == "-" {
				continue
			}
			if name != "" {
				key = name
			}
		}
		initial = append(initial, Field{Key: key, Value: rv.Field(i).Interface()})
	}
	return initial, nil
}

// Keys returns the keys in order.
func (i Initial) Keys() []string {
	keys := make([]string, len(i))
	for n, field := range i {
		keys[n] = field.Key
	}
	return keys
}

// Map returns the record as a map. Later duplicates win.
func (i Initial) Map() map[string]any {
	values := make(map[string]any, len(i))
	for _, field := range i {
		values[field.Key] = field.Value
	}
	return values
}

func lowerLeading(name string) string {
	runes := []rune(name)
	for i := range runes {
		if !unicode.IsUpper(runes[i]) {
			break
		}
		// Keep the last capital of an acronym followed by a lower-case word.
		if i > 0 && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
			break
		}
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}
