package classy

import (
	"reflect"
	"strings"

	"github.com/go-drift/oore/pkg/core"
)

// ClassComponent extends ComponentInstance with a template and a way to
// force a re-render. Implement Templater to produce output; without it the
// component renders nil.
type ClassComponent[P any] struct {
	ComponentInstance[P]
	forceUpdate func()
}

// ForceUpdate re-renders the component without changing its state.
func (c *ClassComponent[P]) ForceUpdate() {
	if c.forceUpdate != nil {
		c.forceUpdate()
	}
}

func (c *ClassComponent[P]) class() *ClassComponent[P] {
	return c
}

// Class is satisfied by pointers to structs embedding ClassComponent[P].
type Class[P any] interface {
	Instance[P]
	class() *ClassComponent[P]
}

// Templater renders a class component from its template context.
type Templater interface {
	Template(templateContext any) any
}

// Extract turns a class component type into a component constructor. The
// components it returns share the name $name$, where an empty name defaults
// to the name of C's underlying struct type.
//
//	var NewCounter = classy.Extract("Counter", func() *Counter { return &Counter{} })
//	root := core.NewElement(NewCounter(CounterProps{Start: 1}), owner)
func Extract[P any, C Class[P]](name string, create func() C) func(props P) core.Component {
	if name == "" {
		name = typeName[C]()
	}
	name = "$" + name + "$"
	return func(props P) core.Component {
		return core.Func(name, func(ctx *core.Context) any {
			instance := UseInstance[P](ctx, create, props)
			base := instance.class()
			base.forceUpdate = core.UseRerender(ctx)

			templater, ok := any(instance).(Templater)
			if !ok {
				return nil
			}
			return templater.Template(base.TemplateContext())
		})
	}
}

func typeName[C any]() string {
	t := reflect.TypeOf((*C)(nil)).Elem()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := t.Name()
	// Instantiated generic types carry their type arguments.
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return name
}
