package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-drift/oore/cmd/oore/internal/fixture"
	"github.com/go-drift/oore/pkg/core"
	"github.com/go-drift/oore/pkg/errors"
	"github.com/go-drift/oore/pkg/state"
)

func init() {
	RegisterCommand(&Command{
		Name:  "state",
		Short: "Replay state updates render by render",
		Long: `Mount a component backed by the fixture's state container, apply
each step as one putMany, and flush after every step.

Prints the values seen by every render. A step naming an undeclared key
(clean) or a reserved key (merged) is reported and skipped.

Fixture format:
  kind: clean               # clean (one slot per key) or merged (one slot)
  initial:                  # declaration order fixes slot order
    count: 0
    label: clicks
  steps:
    - {count: 1}
    - {count: 2, label: more}`,
		Usage: "oore state <fixture.yaml>",
		Run:   runState,
	})
}

// store is the surface shared by CleanState and MergedState.
type store interface {
	Values() map[string]any
	PutMany(values map[string]any) error
}

type renderRecord struct {
	Render int            `json:"render"`
	Step   int            `json:"step"`
	Keys   []string       `json:"keys"`
	Values map[string]any `json:"values"`
}

type stepError struct {
	Step  int    `json:"step"`
	Error string `json:"error"`
}

type stateReport struct {
	Kind    string         `json:"kind"`
	Renders []renderRecord `json:"renders"`
	Errors  []stepError    `json:"errors"`
}

func runState(app *App, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("a fixture file is required\n\nUsage: oore state <fixture.yaml>")
	}
	fx, err := fixture.LoadState(args[0])
	if err != nil {
		return err
	}
	initial, err := fx.Record()
	if err != nil {
		return err
	}

	// Surface key conflicts as errors before anything is mounted.
	if fx.Kind == "merged" {
		_, err = state.NewMerged(initial)
	} else {
		_, err = state.New(initial)
	}
	if err != nil {
		return err
	}

	report := stateReport{Kind: fx.Kind, Renders: make([]renderRecord, 0), Errors: make([]stepError, 0)}
	var (
		st   store
		step int
	)
	component := core.Func("StateFixture", func(ctx *core.Context) any {
		var keys []string
		if fx.Kind == "merged" {
			m := state.UseMergedState(ctx, initial)
			st, keys = m, m.Keys()
		} else {
			s := state.UseCleanState(ctx, initial)
			st, keys = s, s.ValueKeys()
		}
		report.Renders = append(report.Renders, renderRecord{
			Render: len(report.Renders) + 1,
			Step:   step,
			Keys:   keys,
			Values: st.Values(),
		})
		return nil
	})

	owner := core.NewBuildOwner()
	root, err := core.MountRoot(component, owner)
	if err != nil {
		return err
	}
	defer root.Unmount()

	for i, values := range fx.Steps {
		step = i + 1
		if err := st.PutMany(values); err != nil {
			errors.Report(asOoreError("state.PutMany", err))
			report.Errors = append(report.Errors, stepError{Step: step, Error: err.Error()})
			continue
		}
		if err := owner.FlushBuild(); err != nil {
			return err
		}
	}

	if app.JSON {
		return writeJSON(app.Out, report)
	}
	printStateReport(app.Out, report)
	return nil
}

func asOoreError(op string, err error) *errors.OoreError {
	var oe *errors.OoreError
	if errors.As(err, &oe) {
		return oe
	}
	return errors.New(op, errors.KindUnknown, "", err)
}

func printStateReport(w io.Writer, report stateReport) {
	fmt.Fprintf(w, "Container: %s\n", report.Kind)
	for _, r := range report.Renders {
		parts := make([]string, 0, len(r.Keys))
		for _, key := range r.Keys {
			parts = append(parts, fmt.Sprintf("%s=%v", key, r.Values[key]))
		}
		fmt.Fprintf(w, "  render %d (step %d): %s\n", r.Render, r.Step, strings.Join(parts, " "))
	}
	if len(report.Errors) == 0 {
		return
	}
	fmt.Fprintln(w, "Errors:")
	for _, e := range report.Errors {
		fmt.Fprintf(w, "  step %d: %s\n", e.Step, e.Error)
	}
}
