package core

import "reflect"

// depsEqual compares two dependency lists element by element.
func depsEqual(prev, next []any) bool {
	if len(prev) != len(next) {
		return false
	}
	for i := range prev {
		if !SameRef(prev[i], next[i]) {
			return false
		}
	}
	return true
}

func cloneDeps(deps []any) []any {
	if deps == nil {
		return nil
	}
	return append([]any{}, deps...)
}

// SameRef reports whether a and b are the same dependency. Maps, pointers,
// channels and funcs compare by address; slices by backing array and
// length; other comparable values by ==. Values of non-comparable struct or
// array types never compare equal.
func SameRef(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	if va.Comparable() && vb.Comparable() {
		return a == b
	}
	return false
}
