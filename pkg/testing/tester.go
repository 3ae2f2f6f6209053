package testing

import (
	"errors"
	"testing"

	"github.com/go-drift/oore/pkg/core"
)

// DefaultSettleFrames is the frame budget PumpAndSettle uses when given 0.
const DefaultSettleFrames = 20

// ErrSettleTimeout is returned when PumpAndSettle exceeds its frame budget.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: host did not settle")

// HookTester mounts components on an isolated BuildOwner and drives flushes
// explicitly, the way a host's frame loop would.
type HookTester struct {
	buildOwner *core.BuildOwner
	root       *core.Element
	dispatches []func()
}

// NewHookTester creates a tester with its own BuildOwner.
// Call Cleanup() when done, or use NewHookTesterWithT() instead.
func NewHookTester() *HookTester {
	return &HookTester{buildOwner: core.NewBuildOwner()}
}

// NewHookTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewHookTesterWithT(t testing.TB) *HookTester {
	tester := NewHookTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup unmounts the root, running effect cleanups and disposers.
func (t *HookTester) Cleanup() {
	if t.root != nil {
		t.root.Unmount()
		t.root = nil
	}
}

// Mount unmounts any previous root and mounts component, running its first
// render and effects.
func (t *HookTester) Mount(component core.Component) error {
	t.Cleanup()
	root, err := core.MountRoot(component, t.buildOwner)
	t.root = root
	return err
}

// MountFunc mounts a render function under name.
func (t *HookTester) MountFunc(name string, render core.RenderFunc) error {
	return t.Mount(core.Func(name, render))
}

// Update replaces the root component configuration and pumps one frame.
func (t *HookTester) Update(component core.Component) error {
	if t.root == nil {
		return t.Mount(component)
	}
	t.root.Update(component)
	return t.Pump()
}

// Pump runs a single frame: queued dispatches, then one flush.
func (t *HookTester) Pump() error {
	dispatches := t.dispatches
	t.dispatches = nil
	for _, fn := range dispatches {
		fn()
	}
	return t.buildOwner.FlushBuild()
}

// PumpAndSettle pumps frames until nothing is dirty and no dispatch is
// queued, or returns ErrSettleTimeout after maxFrames frames.
func (t *HookTester) PumpAndSettle(maxFrames int) error {
	if maxFrames <= 0 {
		maxFrames = DefaultSettleFrames
	}
	for frame := 0; frame < maxFrames; frame++ {
		if err := t.Pump(); err != nil {
			return err
		}
		if !t.needsWork() {
			return nil
		}
	}
	return ErrSettleTimeout
}

func (t *HookTester) needsWork() bool {
	return t.buildOwner.NeedsWork() || len(t.dispatches) > 0
}

// Dispatch queues a callback for the next frame.
func (t *HookTester) Dispatch(fn func()) {
	t.dispatches = append(t.dispatches, fn)
}

// Unmount unmounts the root without clearing it, so its final state stays
// inspectable.
func (t *HookTester) Unmount() {
	if t.root != nil {
		t.root.Unmount()
	}
}

// Root returns the mounted root element.
func (t *HookTester) Root() *core.Element {
	return t.root
}

// Output returns the root's last render output.
func (t *HookTester) Output() any {
	if t.root == nil {
		return nil
	}
	return t.root.Output()
}

// RenderCount returns the number of successful renders of the root.
func (t *HookTester) RenderCount() int {
	if t.root == nil {
		return 0
	}
	return t.root.RenderCount()
}

// BuildOwner returns the tester's BuildOwner.
func (t *HookTester) BuildOwner() *core.BuildOwner {
	return t.buildOwner
}

// HookResult holds the latest value returned by a hook under test.
type HookResult[T any] struct {
	tester *HookTester
	values []T
}

// Current returns the value from the latest render.
func (r *HookResult[T]) Current() T {
	var zero T
	if len(r.values) == 0 {
		return zero
	}
	return r.values[len(r.values)-1]
}

// All returns the value of every render, oldest first.
func (r *HookResult[T]) All() []T {
	return append([]T(nil), r.values...)
}

// Tester returns the tester hosting the hook.
func (r *HookResult[T]) Tester() *HookTester {
	return r.tester
}

// RenderHook mounts a component that only calls hook, recording its return
// value on every render.
//
//	result, err := ooretest.RenderHook(t, func(ctx *core.Context) *state.CleanState {
//	    return state.UseCleanState(ctx, state.Of("count", 0))
//	})
func RenderHook[T any](t testing.TB, hook func(ctx *core.Context) T) (*HookResult[T], error) {
	result := &HookResult[T]{tester: NewHookTesterWithT(t)}
	err := result.tester.MountFunc("RenderHook", func(ctx *core.Context) any {
		value := hook(ctx)
		result.values = append(result.values, value)
		return value
	})
	return result, err
}
