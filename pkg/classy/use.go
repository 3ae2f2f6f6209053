package classy

import "github.com/go-drift/oore/pkg/core"

// Use calls hook on every render and, after commit, passes its output to
// onUpdate whenever the output differs from the previous render's (by
// core.SameRef). It lets code outside the hook model observe a hook's value.
func Use[T any](ctx *core.Context, hook func(ctx *core.Context) T, onUpdate func(T)) T {
	output := hook(ctx)
	core.UseEffect(ctx, func() func() {
		onUpdate(output)
		return nil
	}, []any{output})
	return output
}
