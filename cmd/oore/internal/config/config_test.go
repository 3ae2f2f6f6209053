package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadOptional_Missing(t *testing.T) {
	cfg, err := LoadOptional(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadOptional_Invalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, "diagnostics: [oops")

	_, err := LoadOptional(dir)
	assert.ErrorContains(t, err, "failed to parse oore.yaml")
}

func TestResolve_Defaults(t *testing.T) {
	t.Setenv(ModeEnv, "")
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/acme/widgets/v2\n\ngo 1.24\n")

	resolved, err := Resolve(dir, "")
	require.NoError(t, err)
	assert.Equal(t, &Resolved{
		Root:       dir,
		ModulePath: "example.com/acme/widgets/v2",
		AppName:    "widgets",
		Mode:       ModeDevelopment,
		Format:     "text",
		Logger:     "slog",
	}, resolved)
	assert.False(t, resolved.Production())
}

func TestResolve_File(t *testing.T) {
	t.Setenv(ModeEnv, "")
	dir := t.TempDir()
	path := writeFile(t, dir, FileName, `
app:
  name: demo
diagnostics:
  mode: Production
  verbose: true
  format: json
  logger: zap
`)

	resolved, err := Resolve(dir, "")
	require.NoError(t, err)
	assert.Equal(t, path, resolved.Source)
	assert.Equal(t, "demo", resolved.AppName)
	assert.Empty(t, resolved.ModulePath)
	assert.True(t, resolved.Production())
	assert.True(t, resolved.Verbose)
	assert.Equal(t, "json", resolved.Format)
	assert.Equal(t, "zap", resolved.Logger)
}

func TestResolve_ExplicitPath(t *testing.T) {
	t.Setenv(ModeEnv, "")
	dir := t.TempDir()
	writeFile(t, dir, FileName, "diagnostics:\n  logger: zap\n")
	other := writeFile(t, t.TempDir(), "custom.yaml", "diagnostics:\n  format: json\n")

	resolved, err := Resolve(dir, other)
	require.NoError(t, err)
	assert.Equal(t, other, resolved.Source)
	assert.Equal(t, "slog", resolved.Logger)
	assert.Equal(t, "json", resolved.Format)

	_, err = Resolve(dir, filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolve_EnvOverridesMode(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, "diagnostics:\n  mode: development\n")
	t.Setenv(ModeEnv, "production")

	resolved, err := Resolve(dir, "")
	require.NoError(t, err)
	assert.True(t, resolved.Production())
}

func TestResolve_Invalid(t *testing.T) {
	t.Setenv(ModeEnv, "")
	cases := map[string]string{
		"mode":   "diagnostics:\n  mode: staging\n",
		"format": "diagnostics:\n  format: xml\n",
		"logger": "diagnostics:\n  logger: logrus\n",
	}
	for field, content := range cases {
		t.Run(field, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, FileName, content)
			_, err := Resolve(dir, "")
			assert.ErrorContains(t, err, "diagnostics."+field)
		})
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "go.mod", "module example.com/x\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	assert.Equal(t, root, FindProjectRoot(nested))

	lone := t.TempDir()
	assert.Equal(t, lone, FindProjectRoot(lone))
}

func TestDefaultAppName(t *testing.T) {
	assert.Equal(t, "oore", defaultAppName("github.com/go-drift/oore", "/tmp/x"))
	assert.Equal(t, "x", defaultAppName("", "/tmp/x"))
}
