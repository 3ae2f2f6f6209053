package core

// Component describes a unit of UI logic. Render is called once per render
// pass with the element's hook Context; its return value is kept as the
// element's output.
type Component interface {
	Name() string
	Render(ctx *Context) any
}

// RenderFunc renders a component from a hook context.
type RenderFunc func(ctx *Context) any

type funcComponent struct {
	name   string
	render RenderFunc
}

func (f funcComponent) Name() string { return f.name }

func (f funcComponent) Render(ctx *Context) any { return f.render(ctx) }

// Func adapts a render function into a named Component.
func Func(name string, render RenderFunc) Component {
	if name == "" {
		name = "Anonymous"
	}
	return funcComponent{name: name, render: render}
}
