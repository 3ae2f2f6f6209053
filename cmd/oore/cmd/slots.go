package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/go-drift/oore/cmd/oore/internal/fixture"
	"github.com/go-drift/oore/pkg/errors"
	"github.com/go-drift/oore/pkg/slots"
)

func init() {
	RegisterCommand(&Command{
		Name:  "slots",
		Short: "Partition fixture children into slots",
		Long: `Resolve the children of a slots fixture against its registry.

Prints the child filling each alias, the unmatched element children, the
invalid entries, and every diagnostic raised along the way. Diagnostics
are only raised in development mode.

Fixture format:
  registry:                 # alias -> tag name or component
    header: h1
    body: {slotName: body, required: true}
  required: [header]        # aliases that must be filled
  children:
    - {type: h1}
    - {component: body}
    - {type: span, props: {data-slot-name: h1}}`,
		Usage: "oore slots <fixture.yaml>",
		Run:   runSlots,
	})
}

type slotsReport struct {
	Slots       map[string]string `json:"slots"`
	Unmatched   []string          `json:"unmatched"`
	Invalid     []any             `json:"invalid"`
	Diagnostics []diagnostic      `json:"diagnostics"`
}

type diagnostic struct {
	Kind    string `json:"kind"`
	Subject any    `json:"subject,omitempty"`
	Message string `json:"message"`
}

func runSlots(app *App, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("a fixture file is required\n\nUsage: oore slots <fixture.yaml>")
	}
	fx, err := fixture.LoadSlots(args[0])
	if err != nil {
		return err
	}
	children, err := fx.Nodes()
	if err != nil {
		return err
	}

	rec := &errors.Recorder{}
	restore := recordDiagnostics(app, rec)
	lookup := slots.BuildAliasLookup(fx.SlotRegistry())
	result := slots.PartitionChildren(children, lookup, fx.Required...)
	restore()

	report := slotsReport{
		Slots:       make(map[string]string, len(result.Slots)),
		Unmatched:   make([]string, 0, len(result.Unmatched)),
		Invalid:     make([]any, 0, len(result.Invalid)),
		Diagnostics: diagnostics(rec),
	}
	for alias, node := range result.Slots {
		report.Slots[alias] = describeNode(node)
	}
	for _, node := range result.Unmatched {
		report.Unmatched = append(report.Unmatched, describeNode(node))
	}
	report.Invalid = append(report.Invalid, result.Invalid...)

	if app.JSON {
		return writeJSON(app.Out, report)
	}
	printSlotsReport(app.Out, report)
	return nil
}

// recordDiagnostics routes reports to rec, and also to the configured
// handler in verbose mode, until the returned function is called.
func recordDiagnostics(app *App, rec *errors.Recorder) func() {
	if app.Config != nil && app.Config.Verbose {
		previous := errors.DefaultHandler
		errors.SetHandler(errors.Tee(rec, previous))
		return func() { errors.SetHandler(previous) }
	}
	return rec.Install()
}

func diagnostics(rec *errors.Recorder) []diagnostic {
	out := make([]diagnostic, 0)
	for _, d := range rec.Diagnostics() {
		out = append(out, diagnostic{Kind: d.Kind.String(), Subject: d.Subject, Message: d.Message})
	}
	return out
}

func describeNode(node *slots.Node) string {
	var label string
	switch t := node.Type.(type) {
	case string:
		label = "<" + t + ">"
	case fmt.Stringer:
		label = t.String()
	default:
		label = fmt.Sprintf("<%T>", t)
	}
	if node.Key != "" {
		label += fmt.Sprintf(" key=%q", node.Key)
	}
	if name, ok := node.Props[slots.OverrideProp]; ok {
		label += fmt.Sprintf(" %s=%v", slots.OverrideProp, name)
	}
	return label
}

func printSlotsReport(w io.Writer, report slotsReport) {
	aliases := make([]string, 0, len(report.Slots))
	for alias := range report.Slots {
		aliases = append(aliases, alias)
	}
	slices.Sort(aliases)

	fmt.Fprintln(w, "Slots:")
	for _, alias := range aliases {
		fmt.Fprintf(w, "  %-14s %s\n", alias, report.Slots[alias])
	}
	fmt.Fprintln(w, "Unmatched:")
	for _, node := range report.Unmatched {
		fmt.Fprintf(w, "  %s\n", node)
	}
	fmt.Fprintln(w, "Invalid:")
	for _, child := range report.Invalid {
		fmt.Fprintf(w, "  %#v\n", child)
	}
	fmt.Fprintln(w, "Diagnostics:")
	for _, d := range report.Diagnostics {
		fmt.Fprintf(w, "  [%s] %s\n", d.Kind, d.Message)
	}
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
