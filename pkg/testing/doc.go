// Package testing provides a hook testing harness for oore components.
//
// # Quick Start
//
// Mount a component, trigger updates, and pump frames:
//
//	func TestCounter(t *testing.T) {
//	    tester := ooretest.NewHookTesterWithT(t)
//	    var st *state.CleanState
//	    tester.MountFunc("Counter", func(ctx *core.Context) any {
//	        st = state.UseCleanState(ctx, state.Of("count", 0))
//	        return st.Get("count")
//	    })
//
//	    st.Set("count", 1)
//	    tester.Pump()
//
//	    if tester.Output() != 1 {
//	        t.Error("expected count 1")
//	    }
//	}
//
// # Hooks in isolation
//
// RenderHook mounts a throwaway component around a single hook and records
// what it returns on each render:
//
//	result, _ := ooretest.RenderHook(t, func(ctx *core.Context) func() bool {
//	    return core.UseMountState(ctx)
//	})
//	result.Current()()
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import ooretest "github.com/go-drift/oore/pkg/testing"
package testing
