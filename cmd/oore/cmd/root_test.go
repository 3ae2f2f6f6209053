package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-drift/oore/cmd/oore/internal/config"
	"github.com/go-drift/oore/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const slotsFixture = `
registry:
  header: h1
  body: {slotName: body}
  footer: {slotName: footer, required: true}
  broken: {}
required: [footer]
children:
  - {type: h1}
  - {component: body}
  - {type: span}
  - {type: em, props: {data-slot-name: h1}, key: late}
  - null
  - stray text
`

const stateFixture = `
kind: clean
initial:
  count: 0
  label: clicks
steps:
  - {count: 1}
  - {count: 2, label: more}
  - {nope: 1}
`

// run executes the CLI in an empty project directory.
func run(t *testing.T, files map[string]string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(config.ModeEnv, "")
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/demo\n"), 0o644))
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })

	var stdout, stderr bytes.Buffer
	err = Run(args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRun_Help(t *testing.T) {
	out, _, err := run(t, nil)
	require.NoError(t, err)
	assert.Contains(t, out, "Commands:")
	for _, name := range []string{"config", "slots", "state", "version"} {
		assert.Contains(t, out, name)
	}

	out, _, err = run(t, nil, "slots", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "oore slots <fixture.yaml>")
}

func TestRun_Version(t *testing.T) {
	out, _, err := run(t, nil, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "oore version "+Version)

	out, _, err = run(t, nil, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, Version)
}

func TestRun_UnknownCommand(t *testing.T) {
	_, stderr, err := run(t, nil, "frobnicate")
	assert.EqualError(t, err, "unknown command: frobnicate")
	assert.Contains(t, stderr, `unknown command "frobnicate"`)
}

func TestRun_Slots(t *testing.T) {
	out, _, err := run(t, map[string]string{"layout.yaml": slotsFixture}, "slots", "layout.yaml")
	require.NoError(t, err)

	assert.Contains(t, out, "header         <em> key=\"late\" data-slot-name=h1")
	assert.Contains(t, out, "body           <body>")
	assert.Contains(t, out, "  <span>")
	assert.Contains(t, out, "  <nil>")
	assert.Contains(t, out, `  "stray text"`)
	assert.Contains(t, out, "[missing-slot-name]")
	assert.Contains(t, out, "[invalid-child]")
	assert.Contains(t, out, `[missing-required-slot] missing required slot "footer"`)
}

func TestRun_SlotsJSON(t *testing.T) {
	out, _, err := run(t, map[string]string{"layout.yaml": slotsFixture}, "--json", "slots", "layout.yaml")
	require.NoError(t, err)

	var report slotsReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Len(t, report.Slots, 2)
	assert.Equal(t, []string{"<span>"}, report.Unmatched)
	assert.Equal(t, []any{nil, "stray text"}, report.Invalid)
	assert.Len(t, report.Diagnostics, 3)
}

func TestRun_SlotsProduction(t *testing.T) {
	out, _, err := run(t, map[string]string{"layout.yaml": slotsFixture}, "--production", "--json", "slots", "layout.yaml")
	require.NoError(t, err)

	var report slotsReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Empty(t, report.Diagnostics)
	assert.Len(t, report.Slots, 2)
	assert.True(t, errors.DevMode(), "mode is restored after the run")
}

func TestRun_SlotsVerboseLogs(t *testing.T) {
	_, stderr, err := run(t, map[string]string{"layout.yaml": slotsFixture}, "--verbose", "slots", "layout.yaml")
	require.NoError(t, err)
	assert.Contains(t, stderr, "missing required slot")
}

func TestRun_State(t *testing.T) {
	out, stderr, err := run(t, map[string]string{"counter.yaml": stateFixture}, "state", "counter.yaml")
	require.NoError(t, err)

	assert.Contains(t, out, "render 1 (step 0): count=0 label=clicks")
	assert.Contains(t, out, "render 2 (step 1): count=1 label=clicks")
	assert.Contains(t, out, "render 3 (step 2): count=2 label=more")
	assert.NotContains(t, out, "render 4")
	assert.Contains(t, out, "step 3:")
	assert.Contains(t, stderr, "unknown-key")
}

func TestRun_StateMergedJSON(t *testing.T) {
	fixture := `
kind: merged
initial: {a: 1}
steps:
  - {b: 2}
  - {putMany: 3}
`
	out, _, err := run(t, map[string]string{"merged.yaml": fixture}, "--json", "state", "merged.yaml")
	require.NoError(t, err)

	var report stateReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Renders, 2)
	assert.Equal(t, []string{"a", "b"}, report.Renders[1].Keys)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, 2, report.Errors[0].Step)
	assert.Contains(t, report.Errors[0].Error, "reserved")
}

func TestRun_StateReservedInitialKey(t *testing.T) {
	_, _, err := run(t, map[string]string{"bad.yaml": "initial: {put: 1}\n"}, "state", "bad.yaml")
	assert.ErrorIs(t, err, errors.ErrReservedKey)
}

func TestRun_Config(t *testing.T) {
	files := map[string]string{"oore.yaml": "diagnostics:\n  logger: zap\n  format: json\n"}
	out, _, err := run(t, files, "--verbose", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "module: example.com/demo")
	assert.Contains(t, out, "logger: zap")
	assert.Contains(t, out, "verbose: true")

	out, _, err = run(t, nil, "--json", "--config=missing.yaml", "config")
	assert.Error(t, err)
	assert.Empty(t, out)
}

func TestRun_ZapHandler(t *testing.T) {
	files := map[string]string{
		"oore.yaml":    "diagnostics:\n  logger: zap\n  format: json\n",
		"counter.yaml": stateFixture,
	}
	_, stderr, err := run(t, files, "state", "counter.yaml")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"kind":"unknown-key"`)
}
