package core

import (
	"slices"
	"sync"

	"github.com/go-drift/oore/pkg/errors"
)

// maxFlushPasses bounds how many times FlushBuild re-collects dirty elements
// before giving up on a render loop.
const maxFlushPasses = 50

// BuildOwner tracks dirty elements that need re-rendering.
type BuildOwner struct {
	dirty    []*Element
	dirtySet map[*Element]bool
	mu       sync.Mutex

	// OnNeedsFrame is called when a new element is scheduled for rebuild,
	// signalling the driver that a flush should be run.
	OnNeedsFrame func()
}

// NewBuildOwner creates a new BuildOwner.
func NewBuildOwner() *BuildOwner {
	return &BuildOwner{}
}

// ScheduleBuild marks an element as needing rebuild.
func (b *BuildOwner) ScheduleBuild(element *Element) {
	added := func() bool {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.dirtySet[element] {
			return false
		}
		if b.dirtySet == nil {
			b.dirtySet = make(map[*Element]bool)
		}
		b.dirtySet[element] = true
		b.dirty = append(b.dirty, element)
		return true
	}()

	if added && b.OnNeedsFrame != nil {
		b.OnNeedsFrame()
	}
}

// NeedsWork returns true if there are dirty elements.
func (b *BuildOwner) NeedsWork() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.dirty) > 0
}

// FlushBuild re-renders all dirty elements in depth order, including
// elements dirtied by effects of this flush. Every render error is
// returned; a flush that keeps re-dirtying elements stops with
// errors.ErrRenderLoop.
func (b *BuildOwner) FlushBuild() error {
	var errs []error
	for pass := 0; ; pass++ {
		b.mu.Lock()
		if len(b.dirty) == 0 {
			b.mu.Unlock()
			return errors.Join(errs...)
		}
		if pass >= maxFlushPasses {
			dropped := b.dirty
			b.dirty = nil
			clear(b.dirtySet)
			b.mu.Unlock()
			for _, element := range dropped {
				element.dirty = false
			}
			errs = append(errs, errors.New("core.FlushBuild", errors.KindRender, "", errors.ErrRenderLoop))
			return errors.Join(errs...)
		}

		slices.SortStableFunc(b.dirty, func(a, b *Element) int {
			return a.Depth() - b.Depth()
		})

		dirty := b.dirty
		b.dirty = nil
		clear(b.dirtySet)
		b.mu.Unlock()

		for _, element := range dirty {
			if !element.IsMounted() {
				continue
			}
			if err := element.RebuildIfNeeded(); err != nil {
				errs = append(errs, err)
			}
		}
	}
}
