// Package state binds flat records of named values to the host's update
// slots.
//
// A CleanState allocates one core.UseState slot per key, in the order the
// keys were declared at construction. That order is captured once and never
// recomputed, which is what keeps each key attached to the same slot across
// renders. Refresh must therefore run exactly once per render, in the same
// position among the component's hooks; UseCleanState does this for you.
//
//	counter := core.Func("Counter", func(ctx *core.Context) any {
//	    st := state.UseCleanState(ctx, state.Of("count", 0, "label", "clicks"))
//	    increment := func() {
//	        st.Put()["count"](state.Updater(func(prev any) any { return prev.(int) + 1 }))
//	    }
//	    return fmt.Sprintf("%v %s", st.Get("count"), st.Get("label"))
//	})
//
// MergedState offers the same surface backed by a single slot holding the
// whole record.
package state

import (
	"fmt"
	"strings"

	"github.com/go-drift/oore/pkg/core"
	"github.com/go-drift/oore/pkg/errors"
)

// Setter commits a new value for one key and requests a re-render. The
// argument is either the new value or an Updater computing it from the
// latest value.
type Setter func(value any)

// Updater computes a key's next value from its latest value.
type Updater func(prev any) any

// reservedKeys are the member names of the container's public contract.
// State keys are compared against them case-insensitively.
var reservedKeys = []string{
	"put",
	"putMany",
	"initialState",
	"valueKeys",
	"reservedKeys",
	"refresh",
	"get",
	"set",
	"lookup",
	"values",
	"field",
}

// ReservedKeys returns the names that cannot be used as state keys.
func ReservedKeys() []string {
	return append([]string(nil), reservedKeys...)
}

// IsReserved reports whether key collides with a container member name.
func IsReserved(key string) bool {
	for _, reserved := range reservedKeys {
		if strings.EqualFold(key, reserved) {
			return true
		}
	}
	return false
}

// validateKeys checks every key before anything is built, so a failed
// construction leaves nothing behind.
func validateKeys(op string, initial Initial) error {
	seen := make(map[string]bool, len(initial))
	for _, field := range initial {
		switch {
		case field.Key == "":
			return errors.New(op, errors.KindMisuse, field.Key, errors.ErrEmptyKey)
		case IsReserved(field.Key):
			return errors.New(op, errors.KindReservedKey, field.Key,
				fmt.Errorf("%w: the name %q cannot index state values, use a different key", errors.ErrReservedKey, field.Key))
		case seen[field.Key]:
			return errors.New(op, errors.KindMisuse, field.Key, errors.ErrDuplicateKey)
		}
		seen[field.Key] = true
	}
	return nil
}

// CleanState is the per-instance key/value store with one update slot per
// key. It is NOT thread-safe; use it from the render goroutine only.
type CleanState struct {
	valueKeys []string
	initial   map[string]any
	values    map[string]any
	setters   map[string]Setter
	accessors map[string]*Accessor
	refreshed bool
}

// New creates a container from initial. It fails with errors.ErrReservedKey
// when a key collides with a reserved member name, and with
// errors.ErrEmptyKey or errors.ErrDuplicateKey for malformed records.
func New(initial Initial) (*CleanState, error) {
	if err := validateKeys("state.New", initial); err != nil {
		return nil, err
	}

	s := &CleanState{
		valueKeys: initial.Keys(),
		initial:   initial.Map(),
		values:    make(map[string]any, len(initial)),
		setters:   make(map[string]Setter, len(initial)),
		accessors: make(map[string]*Accessor, len(initial)),
	}
	for _, key := range s.valueKeys {
		s.accessors[key] = &Accessor{store: s, key: key}
	}
	return s, nil
}

// MustNew is like New but panics on error.
func MustNew(initial Initial) *CleanState {
	s, err := New(initial)
	if err != nil {
		panic(err)
	}
	return s
}

// Refresh binds every key to its update slot for the current render. It
// must be called exactly once per render, unconditionally, in the same
// position among the component's hooks. Called outside a render pass it
// panics with errors.ErrOutsideRender.
func (s *CleanState) Refresh(ctx *core.Context) {
	if !ctx.Rendering() {
		panic(errors.New("state.Refresh", errors.KindMisuse, "", errors.ErrOutsideRender))
	}
	for _, key := range s.valueKeys {
		value, setter := core.UseState(ctx, s.initial[key])
		s.values[key] = value
		if _, ok := s.setters[key]; !ok {
			s.setters[key] = wrapSetter(setter)
		}
	}
	s.refreshed = true
}

func wrapSetter(setter *core.Setter[any]) Setter {
	return func(value any) {
		switch action := value.(type) {
		case Updater:
			setter.Update(action)
		case func(any) any:
			setter.Update(action)
		default:
			setter.Set(value)
		}
	}
}

// ValueKeys returns the keys captured at construction, in slot order.
func (s *CleanState) ValueKeys() []string {
	return append([]string(nil), s.valueKeys...)
}

// ReservedKeys returns the names that cannot be used as state keys.
func (s *CleanState) ReservedKeys() []string {
	return ReservedKeys()
}

// Get returns the current value of key, or nil for an undeclared key.
func (s *CleanState) Get(key string) any {
	return s.values[key]
}

// Lookup returns the current value of key and whether key is declared.
func (s *CleanState) Lookup(key string) (any, bool) {
	if _, ok := s.initial[key]; !ok {
		return nil, false
	}
	return s.values[key], true
}

// Set commits value (or an Updater) for key.
func (s *CleanState) Set(key string, value any) error {
	setter, err := s.setter("state.Set", key)
	if err != nil {
		return err
	}
	setter(value)
	return nil
}

func (s *CleanState) setter(op, key string) (Setter, error) {
	if _, ok := s.initial[key]; !ok {
		return nil, errors.New(op, errors.KindUnknownKey, key, errors.ErrUnknownKey)
	}
	if !s.refreshed {
		return nil, errors.New(op, errors.KindMisuse, key, errors.ErrNotRefreshed)
	}
	return s.setters[key], nil
}

// Values returns a snapshot of the current values.
func (s *CleanState) Values() map[string]any {
	values := make(map[string]any, len(s.values))
	for key, value := range s.values {
		values[key] = value
	}
	return values
}

// Put returns a snapshot copy of the per-key setters. It is empty until the
// first Refresh.
func (s *CleanState) Put() map[string]Setter {
	setters := make(map[string]Setter, len(s.setters))
	for key, setter := range s.setters {
		setters[key] = setter
	}
	return setters
}

// InitialState returns a snapshot copy of the initial values.
func (s *CleanState) InitialState() map[string]any {
	initial := make(map[string]any, len(s.initial))
	for key, value := range s.initial {
		initial[key] = value
	}
	return initial
}

// PutMany invokes the setter of every key in values, in slot order. Each
// call is independent; whether they land in one render depends on the host
// batching them, which core does until the next flush. All keys are checked
// before any setter runs.
func (s *CleanState) PutMany(values map[string]any) error {
	for key := range values {
		if _, err := s.setter("state.PutMany", key); err != nil {
			return err
		}
	}
	for _, key := range s.valueKeys {
		if value, ok := values[key]; ok {
			s.setters[key](value)
		}
	}
	return nil
}

// Field returns the accessor generated for key at construction, or nil for
// an undeclared key.
func (s *CleanState) Field(key string) *Accessor {
	return s.accessors[key]
}

// Accessor is the per-key handle generated at construction.
type Accessor struct {
	store interface {
		Get(key string) any
		Set(key string, value any) error
	}
	key string
}

// Key returns the state key.
func (a *Accessor) Key() string {
	return a.key
}

// Get returns the key's current value.
func (a *Accessor) Get() any {
	return a.store.Get(a.key)
}

// Set commits a new value for the key.
func (a *Accessor) Set(value any) error {
	return a.store.Set(a.key, value)
}

// Update commits a value computed from the key's latest value.
func (a *Accessor) Update(update func(prev any) any) error {
	return a.store.Set(a.key, Updater(update))
}

// Reader is implemented by CleanState and MergedState.
type Reader interface {
	Get(key string) any
}

// Value returns the value of key as T, or the zero T when the key is unset
// or holds another type.
func Value[T any](r Reader, key string) T {
	value, _ := r.Get(key).(T)
	return value
}
