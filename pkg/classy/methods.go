package classy

import (
	"github.com/go-drift/oore/pkg/core"
	"github.com/go-drift/oore/pkg/state"
)

// ComponentMethods is the lightest base type: a struct of methods that can
// read the latest props and an externally owned state container.
type ComponentMethods[P any] struct {
	props P
	state *state.CleanState
}

// Props returns the props of the current render.
func (m *ComponentMethods[P]) Props() P {
	return m.props
}

// State returns the container passed to UseMethods, or nil.
func (m *ComponentMethods[P]) State() *state.CleanState {
	return m.state
}

func (m *ComponentMethods[P]) methods() *ComponentMethods[P] {
	return m
}

// Methods is satisfied by pointers to structs embedding ComponentMethods[P].
type Methods[P any] interface {
	methods() *ComponentMethods[P]
}

// UseMethods returns the element's methods instance, created once. Each
// render assigns props, and st when it is not nil.
func UseMethods[P any, M Methods[P]](ctx *core.Context, create func() M, props P, st *state.CleanState) M {
	instance := core.UseMemo(ctx, create, []any{})
	base := instance.methods()
	base.props = props
	if st != nil {
		base.state = st
	}
	return instance
}
