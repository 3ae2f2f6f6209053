package state

import "github.com/go-drift/oore/pkg/core"

// UseCleanState creates a CleanState on the element's first render and
// refreshes it on every render. initial is read only once. A malformed
// initial record panics; it is a programming error.
func UseCleanState(ctx *core.Context, initial Initial) *CleanState {
	s := core.UseMemo(ctx, func() *CleanState {
		return MustNew(initial)
	}, []any{})
	s.Refresh(ctx)
	return s
}

// UseCleanStateFunc is like UseCleanState but builds the initial record by
// calling init with props, once.
func UseCleanStateFunc[P any](ctx *core.Context, init func(props P) Initial, props P) *CleanState {
	s := core.UseMemo(ctx, func() *CleanState {
		return MustNew(init(props))
	}, []any{})
	s.Refresh(ctx)
	return s
}

// UseMergedState creates a MergedState on the first render and refreshes it
// on every render.
func UseMergedState(ctx *core.Context, initial Initial) *MergedState {
	m := core.UseMemo(ctx, func() *MergedState {
		merged, err := NewMerged(initial)
		if err != nil {
			panic(err)
		}
		return merged
	}, []any{})
	m.Refresh(ctx)
	return m
}
