package core

import (
	"time"

	"github.com/go-drift/oore/pkg/errors"
)

// Element hosts one mounted Component and its hook Context.
type Element struct {
	component  Component
	parent     *Element
	depth      int
	buildOwner *BuildOwner
	ctx        *Context
	dirty      bool
	mounted    bool
	output     any
	renders    int
}

// NewElement creates an unmounted element for component.
func NewElement(component Component, owner *BuildOwner) *Element {
	element := &Element{
		component:  component,
		buildOwner: owner,
	}
	element.ctx = newContext(element)
	return element
}

// MountRoot creates, mounts and renders a root element.
func MountRoot(component Component, owner *BuildOwner) (*Element, error) {
	element := NewElement(component, owner)
	return element, element.Mount(nil)
}

// Name returns the hosted component's name.
func (e *Element) Name() string {
	if e.component == nil {
		return "<nil>"
	}
	return e.component.Name()
}

// Component returns the hosted component.
func (e *Element) Component() Component {
	return e.component
}

// Context returns the element's hook context.
func (e *Element) Context() *Context {
	return e.ctx
}

// Parent returns the parent element, if any.
func (e *Element) Parent() *Element {
	return e.parent
}

// Depth returns the distance from the root.
func (e *Element) Depth() int {
	return e.depth
}

// Output returns the value returned by the last successful render.
func (e *Element) Output() any {
	return e.output
}

// RenderCount returns the number of successful renders.
func (e *Element) RenderCount() int {
	return e.renders
}

// IsMounted reports whether the element is mounted.
func (e *Element) IsMounted() bool {
	return e.mounted
}

// IsDirty reports whether a re-render is pending.
func (e *Element) IsDirty() bool {
	return e.dirty
}

// Mount attaches the element below parent and runs its first render.
func (e *Element) Mount(parent *Element) error {
	e.parent = parent
	if parent != nil {
		e.depth = parent.Depth() + 1
		if e.buildOwner == nil {
			e.buildOwner = parent.buildOwner
		}
	}
	e.mounted = true
	e.dirty = true
	return e.RebuildIfNeeded()
}

// Update replaces the component configuration (new props) and schedules a
// re-render. Hook state is kept.
func (e *Element) Update(component Component) {
	e.component = component
	e.MarkNeedsBuild()
}

// Unmount detaches the element and disposes its hooks. Setters called
// afterwards are ignored.
func (e *Element) Unmount() {
	if !e.mounted {
		return
	}
	e.mounted = false
	e.dirty = false
	e.ctx.dispose()
}

// MarkNeedsBuild flags the element for the next flush.
func (e *Element) MarkNeedsBuild() {
	if e.dirty || !e.mounted {
		return
	}
	e.dirty = true
	if e.buildOwner != nil {
		e.buildOwner.ScheduleBuild(e)
	}
}

// RebuildIfNeeded renders the element if it is dirty, then commits the
// render's effects. A failed render keeps the previous output.
func (e *Element) RebuildIfNeeded() error {
	if !e.dirty || !e.mounted {
		return nil
	}
	e.dirty = false
	output, err := e.safeRender()
	if err != nil {
		return err
	}
	e.output = output
	e.renders++
	return e.ctx.commitEffects()
}

// safeRender executes the component's Render with panic recovery.
// A panic is reported to the global handler and returned as a
// *errors.RenderError; fatal misuse errors stay visible through Unwrap.
func (e *Element) safeRender() (output any, err error) {
	defer func() {
		if r := recover(); r != nil {
			e.ctx.abortRender()
			renderErr := &errors.RenderError{
				Component:  e.Name(),
				Recovered:  r,
				StackTrace: errors.CaptureStack(),
				Timestamp:  time.Now(),
			}
			if cause, ok := r.(error); ok {
				renderErr.Err = cause
			}
			errors.ReportRenderError(renderErr)
			output, err = nil, renderErr
		}
	}()

	e.ctx.beginRender()
	output = e.component.Render(e.ctx)
	e.ctx.endRender()
	return output, nil
}
