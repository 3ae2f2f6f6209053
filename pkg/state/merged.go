package state

import (
	"slices"

	"github.com/go-drift/oore/pkg/core"
	"github.com/go-drift/oore/pkg/errors"
)

// MergedState is like CleanState but keeps the whole record in a single
// update slot. PutMany commits all of its keys as one update and may add
// keys that were not in the initial record.
type MergedState struct {
	valueKeys []string
	initial   map[string]any
	values    map[string]any
	setState  *core.Setter[map[string]any]
	setters   map[string]Setter
}

// NewMerged creates a merged container. Key validation matches New.
func NewMerged(initial Initial) (*MergedState, error) {
	if err := validateKeys("state.NewMerged", initial); err != nil {
		return nil, err
	}
	m := &MergedState{
		valueKeys: initial.Keys(),
		initial:   initial.Map(),
	}
	m.values = m.InitialState()
	return m, nil
}

// Refresh binds the record to its update slot for the current render.
// Called outside a render pass it panics with errors.ErrOutsideRender.
func (m *MergedState) Refresh(ctx *core.Context) {
	if !ctx.Rendering() {
		panic(errors.New("state.MergedState.Refresh", errors.KindMisuse, "", errors.ErrOutsideRender))
	}
	m.values, m.setState = core.UseStateFunc(ctx, m.InitialState)
	if m.setters == nil {
		m.setters = make(map[string]Setter, len(m.valueKeys))
		for _, key := range m.valueKeys {
			m.setters[key] = m.keySetter(key)
		}
	}
}

func (m *MergedState) keySetter(key string) Setter {
	return func(value any) {
		m.setState.Update(func(prev map[string]any) map[string]any {
			next := cloneValues(prev)
			next[key] = resolve(value, prev[key])
			return next
		})
	}
}

func resolve(value, prev any) any {
	switch action := value.(type) {
	case Updater:
		return action(prev)
	case func(any) any:
		return action(prev)
	default:
		return value
	}
}

func cloneValues(values map[string]any) map[string]any {
	next := make(map[string]any, len(values))
	for key, value := range values {
		next[key] = value
	}
	return next
}

// ValueKeys returns the keys of the initial record, in order.
func (m *MergedState) ValueKeys() []string {
	return append([]string(nil), m.valueKeys...)
}

// Keys returns the current keys: initial keys in order, then keys added by
// PutMany in lexicographic order.
func (m *MergedState) Keys() []string {
	keys := m.ValueKeys()
	var extra []string
	for key := range m.values {
		if _, ok := m.initial[key]; !ok {
			extra = append(extra, key)
		}
	}
	slices.Sort(extra)
	return append(keys, extra...)
}

// Get returns the current value of key.
func (m *MergedState) Get(key string) any {
	return m.values[key]
}

// Lookup returns the current value of key and whether it is present.
func (m *MergedState) Lookup(key string) (any, bool) {
	value, ok := m.values[key]
	return value, ok
}

// Set commits value (or an Updater) for an initial key.
func (m *MergedState) Set(key string, value any) error {
	if _, ok := m.initial[key]; !ok {
		return errors.New("state.MergedState.Set", errors.KindUnknownKey, key, errors.ErrUnknownKey)
	}
	if m.setState == nil {
		return errors.New("state.MergedState.Set", errors.KindMisuse, key, errors.ErrNotRefreshed)
	}
	m.setters[key](value)
	return nil
}

// Values returns a snapshot of the current record.
func (m *MergedState) Values() map[string]any {
	return cloneValues(m.values)
}

// Put returns a snapshot copy of the per-key setters of the initial keys.
func (m *MergedState) Put() map[string]Setter {
	setters := make(map[string]Setter, len(m.setters))
	for key, setter := range m.setters {
		setters[key] = setter
	}
	return setters
}

// InitialState returns a snapshot copy of the initial values.
func (m *MergedState) InitialState() map[string]any {
	return cloneValues(m.initial)
}

// PutMany merges values into the record as a single update. Unlike
// CleanState it accepts keys absent from the initial record. Reserved names
// are still refused.
func (m *MergedState) PutMany(values map[string]any) error {
	if m.setState == nil {
		return errors.New("state.MergedState.PutMany", errors.KindMisuse, "", errors.ErrNotRefreshed)
	}
	for key := range values {
		if IsReserved(key) {
			return errors.New("state.MergedState.PutMany", errors.KindReservedKey, key, errors.ErrReservedKey)
		}
	}
	pending := cloneValues(values)
	m.setState.Update(func(prev map[string]any) map[string]any {
		next := cloneValues(prev)
		for key, value := range pending {
			next[key] = resolve(value, prev[key])
		}
		return next
	})
	return nil
}
