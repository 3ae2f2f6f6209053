package core

import (
	"time"

	"github.com/go-drift/oore/pkg/errors"
)

type stateCell[T any] struct {
	value  T
	queue  []func(T) T
	setter *Setter[T]
}

// apply folds the queued actions into the value.
func (c *stateCell[T]) apply() {
	queue := c.queue
	c.queue = nil
	for _, action := range queue {
		c.value = action(c.value)
	}
}

// Setter commits new values for one UseState slot. The pointer is stable
// across renders of the same element.
//
// Setter is NOT thread-safe. It must only be used from the render goroutine.
type Setter[T any] struct {
	cell *stateCell[T]
	ctx  *Context
}

// Set queues value as the slot's next value and schedules a re-render.
func (s *Setter[T]) Set(value T) {
	s.enqueue(func(T) T { return value })
}

// Update queues a transformation of the slot's latest value and schedules a
// re-render. Queued transformations are applied in call order.
func (s *Setter[T]) Update(transform func(prev T) T) {
	if transform == nil {
		return
	}
	s.enqueue(transform)
}

func (s *Setter[T]) enqueue(action func(T) T) {
	if s.ctx.IsDisposed() {
		errors.Diagnosef("core.Setter", errors.KindUnmountedUpdate, s.ctx.element.Name(),
			"state update on unmounted component %s ignored", s.ctx.element.Name())
		return
	}
	s.cell.queue = append(s.cell.queue, action)
	s.ctx.scheduleRender()
}

// UseState allocates one update slot seeded with initial on the first
// render, and returns its current value and setter. initial is ignored on
// later renders.
func UseState[T any](ctx *Context, initial T) (T, *Setter[T]) {
	return useState(ctx, "core.UseState", func() T { return initial })
}

// UseStateFunc is like UseState but computes the initial value lazily, on
// the first render only.
func UseStateFunc[T any](ctx *Context, init func() T) (T, *Setter[T]) {
	return useState(ctx, "core.UseStateFunc", init)
}

func useState[T any](ctx *Context, op string, init func() T) (T, *Setter[T]) {
	raw := ctx.next(op, hookState, func() any {
		cell := &stateCell[T]{value: init()}
		cell.setter = &Setter[T]{cell: cell, ctx: ctx}
		return cell
	})
	cell, ok := raw.(*stateCell[T])
	if !ok {
		ctx.hookOrderMismatch(op, raw)
	}
	cell.apply()
	return cell.value, cell.setter
}

// Ref is a mutable box that survives re-renders without causing them.
type Ref[T any] struct {
	Current T
}

// UseRef returns the element's Ref for this slot, created with initial on
// the first render.
func UseRef[T any](ctx *Context, initial T) *Ref[T] {
	raw := ctx.next("core.UseRef", hookRef, func() any {
		return &Ref[T]{Current: initial}
	})
	ref, ok := raw.(*Ref[T])
	if !ok {
		ctx.hookOrderMismatch("core.UseRef", raw)
	}
	return ref
}

type memoCell struct {
	value    any
	deps     []any
	computed bool
}

// UseMemo returns the cached result of compute, recomputing it when any
// dependency changes by reference. A nil deps slice recomputes on every
// render; an empty one computes once.
func UseMemo[T any](ctx *Context, compute func() T, deps []any) T {
	raw := ctx.next("core.UseMemo", hookMemo, func() any { return &memoCell{} })
	cell := raw.(*memoCell)
	if !cell.computed || deps == nil || !depsEqual(cell.deps, deps) {
		cell.value = compute()
		cell.deps = cloneDeps(deps)
		cell.computed = true
	}
	if cell.value == nil {
		var zero T
		return zero
	}
	value, ok := cell.value.(T)
	if !ok {
		ctx.hookOrderMismatch("core.UseMemo", cell.value)
	}
	return value
}

type effectCell struct {
	deps     []any
	nextDeps []any
	ran      bool
	pending  func() func()
	cleanup  func()
}

func (e *effectCell) commit() (err error) {
	defer func() {
		if r := recover(); r != nil {
			perr := &errors.PanicError{
				Op:         "core.UseEffect",
				Value:      r,
				StackTrace: errors.CaptureStack(),
				Timestamp:  time.Now(),
			}
			errors.ReportPanic(perr)
			err = perr
		}
	}()
	e.runCleanup()
	effect := e.pending
	e.pending = nil
	e.deps = e.nextDeps
	e.ran = true
	if effect != nil {
		e.cleanup = effect()
	}
	return nil
}

func (e *effectCell) runCleanup() {
	if e.cleanup == nil {
		return
	}
	cleanup := e.cleanup
	e.cleanup = nil
	cleanup()
}

// UseEffect schedules effect to run after the render commits. The cleanup
// it returns runs before the next run of the same effect and on unmount.
// A nil deps slice runs the effect after every render; an empty one runs it
// once after mount.
func UseEffect(ctx *Context, effect func() func(), deps []any) {
	cell := ctx.next("core.UseEffect", hookEffect, func() any { return &effectCell{} }).(*effectCell)
	if cell.ran && deps != nil && depsEqual(cell.deps, deps) {
		return
	}
	cell.pending = effect
	cell.nextDeps = cloneDeps(deps)
	ctx.effects = append(ctx.effects, cell)
}

// UseMountState returns a function reporting whether the element has
// mounted. It is false during the first render and true afterwards until
// unmount. Reading it never causes a re-render.
func UseMountState(ctx *Context) func() bool {
	mounted := UseRef(ctx, false)
	UseEffect(ctx, func() func() {
		mounted.Current = true
		return func() {
			mounted.Current = false
		}
	}, []any{})
	return func() bool { return mounted.Current }
}

// UseRerender returns a function that forces a re-render of the element.
// Calling it after unmount reports a diagnostic and does nothing.
func UseRerender(ctx *Context) func() {
	_, tick := UseState(ctx, uint64(0))
	return func() {
		tick.Update(func(n uint64) uint64 { return n + 1 })
	}
}

// UseController creates a controller on the first render and disposes it
// when the element unmounts.
//
// Example:
//
//	ticker := core.UseController(ctx, func() *Ticker {
//	    return NewTicker(time.Second)
//	})
func UseController[C Disposable](ctx *Context, create func() C) C {
	return UseMemo(ctx, func() C {
		controller := create()
		ctx.OnDispose(controller.Dispose)
		return controller
	}, []any{})
}

// UseListenable re-renders the element whenever listenable notifies.
// The subscription follows the listenable's identity and is removed on
// unmount.
func UseListenable(ctx *Context, listenable Listenable) {
	rerender := UseRerender(ctx)
	UseEffect(ctx, func() func() {
		return listenable.AddListener(rerender)
	}, []any{listenable})
}
