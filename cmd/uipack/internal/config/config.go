// Package config loads the optional uipack.yaml of a working directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/uipack/pkg/construct"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "uipack.yaml"

// DefaultFrame is the host tick period used by the build command.
const DefaultFrame = 16 * time.Millisecond

// Config represents the optional uipack.yaml configuration.
type Config struct {
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Registry  RegistryConfig  `yaml:"registry"`
	// Packages lists package files (.uipk or YAML sources) loaded by
	// every command, relative to the configuration file.
	Packages []string `yaml:"packages,omitempty"`
}

// SchedulerConfig contains construction scheduling settings.
type SchedulerConfig struct {
	FrameBudget   string `yaml:"frame_budget,omitempty"`
	CheckInterval int    `yaml:"check_interval,omitempty"`
	Frame         string `yaml:"frame,omitempty"`
}

// RegistryConfig selects content variants.
type RegistryConfig struct {
	Branch     string `yaml:"branch,omitempty"`
	ScaleLevel int    `yaml:"scale_level,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root          string
	FrameBudget   time.Duration
	CheckInterval int
	Frame         time.Duration
	Branch        string
	ScaleLevel    int
	Packages      []string
}

// LoadOptional reads uipack.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads uipack.yaml (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	budget, err := parseDuration("scheduler.frame_budget", cfg.Scheduler.FrameBudget, construct.DefaultFrameBudget)
	if err != nil {
		return nil, err
	}
	frame, err := parseDuration("scheduler.frame", cfg.Scheduler.Frame, DefaultFrame)
	if err != nil {
		return nil, err
	}

	interval := cfg.Scheduler.CheckInterval
	if interval < 0 {
		return nil, fmt.Errorf("scheduler.check_interval must not be negative, got %d", interval)
	}
	if interval == 0 {
		interval = construct.DefaultCheckInterval
	}

	if cfg.Registry.ScaleLevel < 0 {
		return nil, fmt.Errorf("registry.scale_level must not be negative, got %d", cfg.Registry.ScaleLevel)
	}

	var packages []string
	for _, p := range cfg.Packages {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		packages = append(packages, p)
	}

	return &Resolved{
		Root:          dir,
		FrameBudget:   budget,
		CheckInterval: interval,
		Frame:         frame,
		Branch:        strings.TrimSpace(cfg.Registry.Branch),
		ScaleLevel:    cfg.Registry.ScaleLevel,
		Packages:      packages,
	}, nil
}

func parseDuration(key, value string, def time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return def, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, value)
	}
	return d, nil
}
