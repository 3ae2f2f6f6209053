package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

// FileName is the optional project configuration file.
const FileName = "oore.yaml"

// ModeEnv overrides diagnostics.mode.
const ModeEnv = "OORE_MODE"

// Diagnostics modes.
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// Config represents the optional oore.yaml configuration.
type Config struct {
	App         AppConfig         `yaml:"app"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`
}

// AppConfig contains project metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
}

// DiagnosticsConfig controls how errors and advisory diagnostics are
// reported.
type DiagnosticsConfig struct {
	Mode    string `yaml:"mode,omitempty"`
	Verbose bool   `yaml:"verbose,omitempty"`
	Format  string `yaml:"format,omitempty"`
	Logger  string `yaml:"logger,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string `yaml:"root" json:"root"`
	Source     string `yaml:"source,omitempty" json:"source,omitempty"`
	ModulePath string `yaml:"module,omitempty" json:"module,omitempty"`
	AppName    string `yaml:"app" json:"app"`
	Mode       string `yaml:"mode" json:"mode"`
	Verbose    bool   `yaml:"verbose" json:"verbose"`
	Format     string `yaml:"format" json:"format"`
	Logger     string `yaml:"logger" json:"logger"`
}

// Production reports whether advisory diagnostics are suppressed.
func (r *Resolved) Production() bool {
	return r.Mode == ModeProduction
}

// Load reads the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	return parse(path, data)
}

// LoadOptional reads oore.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}
	return parse(path, data)
}

func parse(path string, data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return &cfg, nil
}

// Resolve loads the configuration and resolves defaults. An explicit path
// replaces the lookup of oore.yaml in dir. The module path is read from
// dir/go.mod when one exists; running outside a module is not an error.
func Resolve(dir, path string) (*Resolved, error) {
	var (
		cfg *Config
		err error
	)
	source := path
	if path != "" {
		cfg, err = Load(path)
	} else {
		cfg, err = LoadOptional(dir)
		if _, statErr := os.Stat(filepath.Join(dir, FileName)); statErr == nil {
			source = filepath.Join(dir, FileName)
		}
	}
	if err != nil {
		return nil, err
	}

	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	mode := strings.ToLower(strings.TrimSpace(cfg.Diagnostics.Mode))
	if env := strings.TrimSpace(os.Getenv(ModeEnv)); env != "" {
		mode = strings.ToLower(env)
	}
	if mode == "" {
		mode = ModeDevelopment
	}

	resolved := &Resolved{
		Root:       dir,
		Source:     source,
		ModulePath: modulePath,
		AppName:    appName,
		Mode:       mode,
		Verbose:    cfg.Diagnostics.Verbose,
		Format:     orDefault(cfg.Diagnostics.Format, "text"),
		Logger:     orDefault(cfg.Diagnostics.Logger, "slog"),
	}
	if err := resolved.Validate(); err != nil {
		return nil, err
	}
	return resolved, nil
}

// Validate checks every enumerated setting.
func (r *Resolved) Validate() error {
	switch r.Mode {
	case ModeDevelopment, ModeProduction:
	default:
		return fmt.Errorf("diagnostics.mode must be %q or %q (got %q)", ModeDevelopment, ModeProduction, r.Mode)
	}
	switch r.Format {
	case "text", "json":
	default:
		return fmt.Errorf("diagnostics.format must be \"text\" or \"json\" (got %q)", r.Format)
	}
	switch r.Logger {
	case "slog", "zap":
	default:
		return fmt.Errorf("diagnostics.logger must be \"slog\" or \"zap\" (got %q)", r.Logger)
	}
	return nil
}

// FindProjectRoot walks up from start to find go.mod. It returns start when
// no module encloses it.
func FindProjectRoot(start string) string {
	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modName, _, ok := module.SplitPathVersion(modulePath); ok && modName != "" {
		parts := strings.Split(modName, "/")
		base = parts[len(parts)-1]
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "oore_app"
	}
	return base
}

func orDefault(value, fallback string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return fallback
	}
	return value
}
