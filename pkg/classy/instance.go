package classy

import "github.com/go-drift/oore/pkg/core"

// ComponentInstance extends ComponentLogic with lifecycle methods. Embed it
// by value and implement any of BeforeMounter, OnMounter, BeforeRenderer,
// OnRenderer and CleanUpper.
type ComponentInstance[P any] struct {
	ComponentLogic[P]
	templateContext any
}

// TemplateContext returns what BeforeRender returned for the current render.
func (i *ComponentInstance[P]) TemplateContext() any {
	return i.templateContext
}

func (i *ComponentInstance[P]) instance() *ComponentInstance[P] {
	return i
}

// Instance is satisfied by pointers to structs embedding
// ComponentInstance[P].
type Instance[P any] interface {
	Logic[P]
	instance() *ComponentInstance[P]
}

// BeforeMounter runs during the first render, before anything is committed.
type BeforeMounter interface {
	BeforeMount()
}

// OnMounter runs once after the first render is committed. The returned
// function, if any, runs on unmount before CleanUp.
type OnMounter interface {
	OnMount() func()
}

// BeforeRenderer runs on every render, after UseHooks. Its result is the
// template context.
type BeforeRenderer interface {
	BeforeRender() any
}

// OnRenderer runs after every committed render. The returned function, if
// any, runs before the next OnRender and on unmount.
type OnRenderer interface {
	OnRender() func()
}

// CleanUpper runs once on unmount.
type CleanUpper interface {
	CleanUp()
}

// UseInstance is UseLogic plus the lifecycle methods. Their order is
// BeforeMount, BeforeRender, OnMount, OnRender on the first render, and the
// OnMount cleanup then CleanUp on unmount.
func UseInstance[P any, I Instance[P]](ctx *core.Context, create func() I, props P) I {
	instance := UseLogic[P](ctx, create, props)

	useMountCallbacks(ctx, instance)

	base := instance.instance()
	base.templateContext = nil
	if renderer, ok := any(instance).(BeforeRenderer); ok {
		base.templateContext = renderer.BeforeRender()
	}

	core.UseEffect(ctx, func() func() {
		if renderer, ok := any(instance).(OnRenderer); ok {
			return renderer.OnRender()
		}
		return nil
	}, nil)

	return instance
}

func useMountCallbacks(ctx *core.Context, instance any) {
	isMounted := core.UseMountState(ctx)
	if !isMounted() {
		if m, ok := instance.(BeforeMounter); ok {
			m.BeforeMount()
		}
	}

	core.UseEffect(ctx, func() func() {
		var unmount func()
		if m, ok := instance.(OnMounter); ok {
			unmount = m.OnMount()
		}
		return func() {
			if unmount != nil {
				unmount()
			}
			if c, ok := instance.(CleanUpper); ok {
				c.CleanUp()
			}
		}
	}, []any{})
}
