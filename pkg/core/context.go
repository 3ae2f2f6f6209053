package core

import (
	"fmt"
	"sync"

	"github.com/go-drift/oore/pkg/errors"
)

type hookKind int

const (
	hookState hookKind = iota
	hookRef
	hookMemo
	hookEffect
)

func (k hookKind) String() string {
	switch k {
	case hookState:
		return "UseState"
	case hookRef:
		return "UseRef"
	case hookMemo:
		return "UseMemo"
	case hookEffect:
		return "UseEffect"
	default:
		return "unknown"
	}
}

type hookSlot struct {
	kind  hookKind
	value any
}

// Context is the per-element hook store. It is handed to Component.Render
// and must not be retained for use outside a render pass, except through
// the setters and callbacks the hooks return.
type Context struct {
	element   *Element
	slots     []*hookSlot
	cursor    int
	rendering bool
	mounted   bool // at least one render completed
	effects   []*effectCell
	disposers []func()
	disposed  bool
	mu        sync.Mutex
}

func newContext(element *Element) *Context {
	return &Context{element: element}
}

// Element returns the element that owns this context.
func (c *Context) Element() *Element {
	return c.element
}

// IsFirstRender reports whether the current render is the element's first.
func (c *Context) IsFirstRender() bool {
	return !c.mounted
}

// Rendering reports whether a render pass is in progress.
func (c *Context) Rendering() bool {
	return c != nil && c.rendering
}

// HookCount returns the number of hook slots allocated so far.
func (c *Context) HookCount() int {
	return len(c.slots)
}

func (c *Context) beginRender() {
	c.rendering = true
	c.cursor = 0
	c.effects = c.effects[:0]
}

// endRender verifies the hook count matches the previous render.
func (c *Context) endRender() {
	c.rendering = false
	if c.mounted && c.cursor != len(c.slots) {
		panic(errors.New("core.Render", errors.KindHookOrder, "",
			fmt.Errorf("%w: rendered %d hooks, previous render had %d", errors.ErrHookOrder, c.cursor, len(c.slots))))
	}
	c.mounted = true
}

// abortRender drops the work of a failed render. A failed first render
// discards its partially allocated slots so the next attempt starts clean.
func (c *Context) abortRender() {
	c.rendering = false
	c.effects = c.effects[:0]
	if !c.mounted {
		c.slots = nil
	}
}

// next returns the slot at the cursor, allocating it on the first render.
func (c *Context) next(op string, kind hookKind, create func() any) any {
	if !c.Rendering() {
		panic(errors.New(op, errors.KindMisuse, "", errors.ErrOutsideRender))
	}
	index := c.cursor
	c.cursor++
	if !c.mounted {
		slot := &hookSlot{kind: kind, value: create()}
		c.slots = append(c.slots, slot)
		return slot.value
	}
	if index >= len(c.slots) {
		panic(errors.New(op, errors.KindHookOrder, "",
			fmt.Errorf("%w: hook %d (%s) was not called on the previous render", errors.ErrHookOrder, index, kind)))
	}
	slot := c.slots[index]
	if slot.kind != kind {
		panic(errors.New(op, errors.KindHookOrder, "",
			fmt.Errorf("%w: hook %d is %s, previous render had %s", errors.ErrHookOrder, index, kind, slot.kind)))
	}
	return slot.value
}

// hookOrderMismatch panics when a slot holds a value of the wrong type,
// which happens when a hook of the same kind but a different type parameter
// takes another hook's position.
func (c *Context) hookOrderMismatch(op string, got any) {
	panic(errors.New(op, errors.KindHookOrder, "",
		fmt.Errorf("%w: hook %d holds %T", errors.ErrHookOrder, c.cursor-1, got)))
}

// scheduleRender marks the owning element dirty.
func (c *Context) scheduleRender() {
	if c.element != nil {
		c.element.MarkNeedsBuild()
	}
}

// commitEffects runs the effects queued by the last render, in declaration
// order. Each effect's previous cleanup runs first.
func (c *Context) commitEffects() error {
	pending := c.effects
	c.effects = nil
	var errs []error
	for _, cell := range pending {
		if err := cell.commit(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OnDispose registers a cleanup function to be called when the element is
// unmounted. Returns an unregister function that can be called to remove the
// disposer. The cleanup function will only be called once.
func (c *Context) OnDispose(cleanup func()) func() {
	if cleanup == nil {
		return func() {}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		// Already disposed, run cleanup immediately
		cleanup()
		return func() {}
	}

	index := len(c.disposers)
	c.disposers = append(c.disposers, cleanup)

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if index < len(c.disposers) {
			c.disposers[index] = nil
		}
	}
}

// dispose runs effect cleanups in declaration order, then registered
// disposers in reverse order (LIFO).
func (c *Context) dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	disposers := c.disposers
	c.disposers = nil
	c.mu.Unlock()

	for _, slot := range c.slots {
		if cell, ok := slot.value.(*effectCell); ok {
			func() {
				defer errors.Recover("core.Unmount")
				cell.runCleanup()
			}()
		}
	}
	for i := len(disposers) - 1; i >= 0; i-- {
		if disposers[i] != nil {
			func() {
				defer errors.Recover("core.Unmount")
				disposers[i]()
			}()
		}
	}
}

// IsDisposed returns true if the owning element has been unmounted.
func (c *Context) IsDisposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}
