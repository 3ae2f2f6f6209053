// Package classy lets a component keep its logic on a struct instead of in
// a sprawl of closures.
//
// A logic type embeds one of the base types of this package and gains access
// to the latest props, a state.CleanState built from its initial state, and
// the values returned by its own hook calls. Optional hook methods are
// discovered through small interfaces:
//
//	type Counter struct {
//	    classy.ComponentLogic[CounterProps]
//	}
//
//	func (c *Counter) GetInitialState(p CounterProps) state.Initial {
//	    return state.Of("count", p.Start)
//	}
//
//	func (c *Counter) Increment() {
//	    c.State().Field("count").Update(func(prev any) any { return prev.(int) + 1 })
//	}
//
//	render := func(ctx *core.Context) any {
//	    counter := classy.UseLogic(ctx, func() *Counter { return &Counter{} }, props)
//	    return counter.State().Get("count")
//	}
//
// The base types, from least to most featured, are ComponentMethods,
// ComponentLogic, ComponentInstance and ClassComponent.
package classy

import (
	"github.com/go-drift/oore/pkg/core"
	"github.com/go-drift/oore/pkg/state"
)

// ComponentLogic is the base type for logic structs used with UseLogic.
// Embed it by value.
type ComponentLogic[P any] struct {
	props P
	state *state.CleanState
	hooks any
}

// Props returns the props of the current render.
func (l *ComponentLogic[P]) Props() P {
	return l.props
}

// State returns the component's state container. It holds the values
// returned by GetInitialState, or nothing when the type has no such method.
func (l *ComponentLogic[P]) State() *state.CleanState {
	return l.state
}

// Hooks returns the value UseHooks returned during the current render, or
// nil. It is replaced on every render. Use HooksOf for a typed view.
func (l *ComponentLogic[P]) Hooks() any {
	return l.hooks
}

func (l *ComponentLogic[P]) logic() *ComponentLogic[P] {
	return l
}

// Logic is satisfied by pointers to structs embedding ComponentLogic[P].
type Logic[P any] interface {
	logic() *ComponentLogic[P]
}

// InitialStater is implemented by logic types with state. GetInitialState is
// called once per component instance, before its first render completes.
type InitialStater[P any] interface {
	GetInitialState(props P) state.Initial
}

// HookUser is implemented by logic types that call hooks. UseHooks runs on
// every render, at a fixed position among the component's hooks, and its
// result is exposed through Hooks.
type HookUser interface {
	UseHooks(ctx *core.Context) any
}

// HooksOf returns l's hook values as H, or the zero H.
func HooksOf[H any](l interface{ Hooks() any }) H {
	hooks, _ := l.Hooks().(H)
	return hooks
}

// UseLogic returns the element's logic instance, creating it with create on
// the first render. On every render it assigns props, refreshes the state
// container, and calls UseHooks.
func UseLogic[P any, L Logic[P]](ctx *core.Context, create func() L, props P) L {
	instance := core.UseMemo(ctx, create, []any{})
	base := instance.logic()

	base.props = props
	base.state = state.UseCleanStateFunc(ctx, initialState[P](instance), props)
	base.hooks = nil
	if user, ok := any(instance).(HookUser); ok {
		base.hooks = user.UseHooks(ctx)
	}
	return instance
}

func initialState[P any](instance any) func(P) state.Initial {
	if stater, ok := instance.(InitialStater[P]); ok {
		return stater.GetInitialState
	}
	return func(P) state.Initial { return nil }
}
