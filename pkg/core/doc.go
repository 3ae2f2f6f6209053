// Package core provides the component host that oore's wrappers run on.
//
// A Component renders into an Element. Each element owns a Context holding
// its hook slots, allocated in call order on the first render and matched
// positionally on every later render. Hooks must therefore be called
// unconditionally and in the same order on every render; a change in order
// or count is detected and reported as errors.ErrHookOrder.
//
// # Components
//
//	counter := core.Func("Counter", func(ctx *core.Context) any {
//	    count, set := core.UseState(ctx, 0)
//	    core.UseEffect(ctx, func() func() {
//	        fmt.Println("count is", count)
//	        return nil
//	    }, []any{count})
//	    return fmt.Sprintf("clicked %d times (%p)", count, set)
//	})
//
// # Scheduling
//
// Setters never re-render synchronously. They queue the action and mark the
// element dirty with its BuildOwner; the next FlushBuild renders every dirty
// element once, applying all queued actions, then commits effects. Several
// setter calls between two flushes are therefore batched into one render.
//
//	owner := core.NewBuildOwner()
//	root, err := core.MountRoot(counter, owner)
//	...
//	err = owner.FlushBuild()
//
// # Hooks
//
// UseState, UseRef, UseMemo and UseEffect are the primitives. UseMountState
// and UseRerender are built on them. UseController and UseListenable tie
// resources and listenables to the element's lifetime.
package core
