package slots

import "github.com/go-drift/oore/pkg/core"

// UseSlots partitions children against registry during a render. The alias
// lookup is rebuilt only when a different registry map is passed, and the
// partition only when a different children slice (or registry) is passed.
// Diagnostics are raised only when they are recomputed.
func UseSlots(ctx *core.Context, children []any, registry Registry, required ...string) Result {
	lookup := core.UseMemo(ctx, func() *Lookup {
		return BuildAliasLookup(registry)
	}, []any{registry})

	return core.UseMemo(ctx, func() Result {
		return PartitionChildren(children, lookup, required...)
	}, []any{children, lookup})
}
