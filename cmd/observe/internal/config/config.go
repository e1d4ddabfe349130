// Package config loads the optional observe.yaml file and replay scripts.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the project root.
const FileName = "observe.yaml"

// Config represents the optional observe.yaml configuration.
type Config struct {
	Project ProjectConfig `yaml:"project"`
	Log     LogConfig     `yaml:"log"`
	Output  OutputConfig  `yaml:"output"`
}

// ProjectConfig names the journals produced by replay.
type ProjectConfig struct {
	Name string `yaml:"name,omitempty"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// OutputConfig selects the journal encoding.
type OutputConfig struct {
	Format string `yaml:"format,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root         string
	ModulePath   string
	ProjectName  string
	LogLevel     slog.Level
	LogFormat    string
	OutputFormat string
}

// LoadOptional reads the config file at path. A missing file yields an empty
// Config.
func LoadOptional(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	return &cfg, nil
}

// Resolve loads observe.yaml from dir (or from configPath when non-empty)
// and resolves defaults.
func Resolve(dir, configPath string) (*Resolved, error) {
	if configPath == "" {
		configPath = filepath.Join(dir, FileName)
	}
	cfg, err := LoadOptional(configPath)
	if err != nil {
		return nil, err
	}

	// go.mod is optional: scripts can be replayed outside a module.
	modulePath, _ := readModulePath(dir)

	name := strings.TrimSpace(cfg.Project.Name)
	if name == "" {
		name = defaultProjectName(modulePath, dir)
	}

	level, err := parseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	logFormat := strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	switch logFormat {
	case "":
		logFormat = "text"
	case "text", "json":
	default:
		return nil, fmt.Errorf("log.format must be text or json (got %q)", cfg.Log.Format)
	}

	outputFormat := strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	switch outputFormat {
	case "":
		outputFormat = "json"
	case "json", "yaml":
	default:
		return nil, fmt.Errorf("output.format must be json or yaml (got %q)", cfg.Output.Format)
	}

	return &Resolved{
		Root:         dir,
		ModulePath:   modulePath,
		ProjectName:  name,
		LogLevel:     level,
		LogFormat:    logFormat,
		OutputFormat: outputFormat,
	}, nil
}

// NewLogger builds the slog.Logger described by r, writing to w.
func (r *Resolved) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: r.LogLevel}
	if r.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// FindProjectRoot walks up from the current directory to find go.mod. If
// there is none, the current directory is returned.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

func readModulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", err
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultProjectName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modulePath != "" {
		// Drop a trailing /vN major version suffix.
		prefix, _, ok := module.SplitPathVersion(modulePath)
		if ok {
			parts := strings.Split(prefix, "/")
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "observe"
	}
	return base
}

func parseLevel(s string) (slog.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
