package core

import (
	"testing"

	"github.com/go-drift/oore/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockDisposable for testing UseController
type mockDisposable struct {
	disposed bool
}

func (m *mockDisposable) Dispose() {
	m.disposed = true
}

func mount(t *testing.T, render RenderFunc) (*Element, *BuildOwner) {
	t.Helper()
	owner := NewBuildOwner()
	root, err := MountRoot(Func("Test", render), owner)
	require.NoError(t, err)
	return root, owner
}

func TestUseState_InitialAndSet(t *testing.T) {
	var setter *Setter[int]
	root, owner := mount(t, func(ctx *Context) any {
		count, set := UseState(ctx, 7)
		setter = set
		return count
	})
	assert.Equal(t, 7, root.Output())

	setter.Set(9)
	assert.Equal(t, 7, root.Output(), "setters never render synchronously")
	assert.True(t, owner.NeedsWork())

	require.NoError(t, owner.FlushBuild())
	assert.Equal(t, 9, root.Output())
	assert.Equal(t, 2, root.RenderCount())
}

func TestUseState_SetterIdentityIsStable(t *testing.T) {
	var seen []*Setter[string]
	root, owner := mount(t, func(ctx *Context) any {
		_, set := UseState(ctx, "a")
		seen = append(seen, set)
		return nil
	})
	seen[0].Set("b")
	require.NoError(t, owner.FlushBuild())

	require.Len(t, seen, 2)
	assert.Same(t, seen[0], seen[1])
	assert.Equal(t, 2, root.RenderCount())
}

func TestUseState_BatchesUpdates(t *testing.T) {
	var setter *Setter[int]
	root, owner := mount(t, func(ctx *Context) any {
		count, set := UseState(ctx, 0)
		setter = set
		return count
	})

	setter.Update(func(n int) int { return n + 1 })
	setter.Update(func(n int) int { return n + 1 })
	setter.Set(10)
	setter.Update(func(n int) int { return n * 2 })

	require.NoError(t, owner.FlushBuild())
	assert.Equal(t, 20, root.Output())
	assert.Equal(t, 2, root.RenderCount(), "queued actions apply in one render")
}

func TestUseStateFunc_InitialisesOnce(t *testing.T) {
	calls := 0
	rerender := func() {}
	_, owner := mount(t, func(ctx *Context) any {
		value, _ := UseStateFunc(ctx, func() string {
			calls++
			return "init"
		})
		rerender = UseRerender(ctx)
		return value
	})
	rerender()
	require.NoError(t, owner.FlushBuild())
	assert.Equal(t, 1, calls)
}

func TestUseState_OutsideRenderPanics(t *testing.T) {
	root, _ := mount(t, func(ctx *Context) any { return nil })

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, errors.ErrOutsideRender))
	}()
	UseState(root.Context(), 1)
}

func TestHookOrderViolation(t *testing.T) {
	rec := &errors.Recorder{}
	defer rec.Install()()

	conditional := true
	var rerender func()
	_, owner := mount(t, func(ctx *Context) any {
		rerender = UseRerender(ctx)
		if conditional {
			UseRef(ctx, 0)
		}
		return nil
	})

	conditional = false
	rerender()
	err := owner.FlushBuild()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrHookOrder))
	assert.Len(t, rec.RenderErrors(), 1)
}

func TestHookKindViolation(t *testing.T) {
	rec := &errors.Recorder{}
	defer rec.Install()()

	first := true
	var rerender func()
	_, owner := mount(t, func(ctx *Context) any {
		rerender = UseRerender(ctx)
		if first {
			UseRef(ctx, 0)
		} else {
			UseMemo(ctx, func() int { return 1 }, nil)
		}
		return nil
	})

	first = false
	rerender()
	err := owner.FlushBuild()
	assert.True(t, errors.Is(err, errors.ErrHookOrder))
}

func TestUseRef_SurvivesRenders(t *testing.T) {
	var rerender func()
	var ref *Ref[int]
	root, owner := mount(t, func(ctx *Context) any {
		rerender = UseRerender(ctx)
		ref = UseRef(ctx, 0)
		ref.Current++
		return ref.Current
	})
	rerender()
	require.NoError(t, owner.FlushBuild())
	assert.Equal(t, 2, root.Output())
}

func TestUseMemo_Deps(t *testing.T) {
	computed := 0
	dep := map[string]int{"a": 1}
	var rerender func()
	_, owner := mount(t, func(ctx *Context) any {
		rerender = UseRerender(ctx)
		return UseMemo(ctx, func() int {
			computed++
			return len(dep)
		}, []any{dep})
	})
	assert.Equal(t, 1, computed)

	dep["b"] = 2 // same reference
	rerender()
	require.NoError(t, owner.FlushBuild())
	assert.Equal(t, 1, computed)

	dep = map[string]int{} // new reference
	rerender()
	require.NoError(t, owner.FlushBuild())
	assert.Equal(t, 2, computed)
}

func TestUseMemo_NilDepsRecomputes(t *testing.T) {
	computed := 0
	var rerender func()
	_, owner := mount(t, func(ctx *Context) any {
		rerender = UseRerender(ctx)
		return UseMemo(ctx, func() int { computed++; return computed }, nil)
	})
	rerender()
	require.NoError(t, owner.FlushBuild())
	assert.Equal(t, 2, computed)
}

func TestUseEffect_RunsAfterRenderWithCleanup(t *testing.T) {
	var log []string
	var setter *Setter[int]
	root, owner := mount(t, func(ctx *Context) any {
		count, set := UseState(ctx, 0)
		setter = set
		log = append(log, "render")
		UseEffect(ctx, func() func() {
			log = append(log, "effect")
			return func() { log = append(log, "cleanup") }
		}, []any{count})
		return count
	})
	assert.Equal(t, []string{"render", "effect"}, log)

	setter.Set(0)
	require.NoError(t, owner.FlushBuild())
	assert.Equal(t, []string{"render", "effect", "render"}, log, "unchanged deps skip the effect")

	setter.Set(1)
	require.NoError(t, owner.FlushBuild())
	assert.Equal(t, []string{"render", "effect", "render", "render", "cleanup", "effect"}, log)

	root.Unmount()
	assert.Equal(t, "cleanup", log[len(log)-1])
}

func TestUseEffect_PanicIsReturned(t *testing.T) {
	rec := &errors.Recorder{}
	defer rec.Install()()

	owner := NewBuildOwner()
	_, err := MountRoot(Func("Boom", func(ctx *Context) any {
		UseEffect(ctx, func() func() { panic("effect failed") }, []any{})
		return nil
	}), owner)

	var perr *errors.PanicError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "effect failed", perr.Value)
	assert.Len(t, rec.Panics(), 1)
}

func TestUseMountState(t *testing.T) {
	var isMounted func() bool
	var duringRender []bool
	var rerender func()
	root, owner := mount(t, func(ctx *Context) any {
		isMounted = UseMountState(ctx)
		rerender = UseRerender(ctx)
		duringRender = append(duringRender, isMounted())
		return nil
	})
	assert.True(t, isMounted())

	rerender()
	require.NoError(t, owner.FlushBuild())
	assert.Equal(t, []bool{false, true}, duringRender)

	root.Unmount()
	assert.False(t, isMounted())
}

func TestUseRerender_AfterUnmountReportsDiagnostic(t *testing.T) {
	rec := &errors.Recorder{}
	defer rec.Install()()

	var rerender func()
	root, owner := mount(t, func(ctx *Context) any {
		rerender = UseRerender(ctx)
		return nil
	})
	root.Unmount()
	rerender()

	assert.False(t, owner.NeedsWork())
	assert.Len(t, rec.DiagnosticsOf(errors.KindUnmountedUpdate), 1)
}

func TestUseController(t *testing.T) {
	var controller *mockDisposable
	created := 0
	var rerender func()
	root, owner := mount(t, func(ctx *Context) any {
		rerender = UseRerender(ctx)
		controller = UseController(ctx, func() *mockDisposable {
			created++
			return &mockDisposable{}
		})
		return nil
	})
	rerender()
	require.NoError(t, owner.FlushBuild())

	assert.Equal(t, 1, created)
	assert.False(t, controller.disposed, "Controller should not be disposed initially")

	root.Unmount()
	assert.True(t, controller.disposed, "Controller should be disposed when the element unmounts")
}

func TestUseListenable(t *testing.T) {
	notifier := NewNotifier()
	root, owner := mount(t, func(ctx *Context) any {
		UseListenable(ctx, notifier)
		return nil
	})
	assert.Equal(t, 1, notifier.ListenerCount())

	notifier.Notify()
	require.NoError(t, owner.FlushBuild())
	assert.Equal(t, 2, root.RenderCount())

	root.Unmount()
	assert.Equal(t, 0, notifier.ListenerCount())
}

func TestOnDispose_LIFO(t *testing.T) {
	var order []int
	root, _ := mount(t, func(ctx *Context) any {
		if ctx.IsFirstRender() {
			ctx.OnDispose(func() { order = append(order, 1) })
			remove := ctx.OnDispose(func() { order = append(order, 2) })
			ctx.OnDispose(func() { order = append(order, 3) })
			remove()
		}
		return nil
	})
	root.Unmount()
	assert.Equal(t, []int{3, 1}, order)
	assert.True(t, root.Context().IsDisposed())
}

func TestSameRef(t *testing.T) {
	m := map[string]int{}
	s := []int{1, 2}
	p := &struct{}{}
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"nil", nil, nil, true},
		{"nil vs value", nil, 1, false},
		{"ints", 1, 1, true},
		{"strings differ", "a", "b", false},
		{"types differ", 1, int64(1), false},
		{"same map", m, m, true},
		{"distinct maps", m, map[string]int{}, false},
		{"same slice", s, s, true},
		{"resliced", s, s[:1], false},
		{"same pointer", p, p, true},
		{"non-comparable struct", struct{ s []int }{s}, struct{ s []int }{s}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SameRef(tt.a, tt.b))
		})
	}
}
