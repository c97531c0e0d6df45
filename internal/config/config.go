// Package config owns the configuration file: the path of the active
// timesheet and the project registry.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/timetrack/internal/domain"
	"github.com/caarlos0/env/v11"
)

// ErrMalformedConfig is returned when the config file exists but cannot be
// decoded.
var ErrMalformedConfig = errors.New("malformed config")

// ProjectRecord is the on-disk form of a registered project.
type ProjectRecord struct {
	ID          int    `yaml:"id"`
	Name        string `yaml:"name"`
	Category    string `yaml:"category,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// Config is the content of the config file.
type Config struct {
	Timesheet string          `yaml:"timesheet"`
	Projects  []ProjectRecord `yaml:"projects"`
}

// Env holds overrides read from the environment.
type Env struct {
	ConfigPath string `env:"TT_CONFIG"`
	Timesheet  string `env:"TT_TIMESHEET"`
	Verbose    bool   `env:"TT_VERBOSE"`
}

// LoadEnv parses the TT_* variables.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{Timesheet: defaultTimesheetPath()}
}

func defaultTimesheetPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "Timesheet.db"
	}
	return filepath.Join(home, "Timesheet.db")
}

// DefaultPath returns ~/.config/timetrack/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "timetrack", "config.yaml"), nil
}

// Registry converts the stored records into the domain registry.
func (c *Config) Registry() domain.Registry {
	reg := make(domain.Registry, 0, len(c.Projects))
	for _, p := range c.Projects {
		reg = append(reg, domain.Project{
			ID:          p.ID,
			Name:        p.Name,
			Category:    p.Category,
			Description: p.Description,
		})
	}
	return reg
}

// AddProject appends p to the stored registry.
func (c *Config) AddProject(p domain.Project) {
	c.Projects = append(c.Projects, ProjectRecord{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
	})
}

// Apply overlays environment overrides.
func (c *Config) Apply(e Env) {
	if e.Timesheet != "" {
		c.Timesheet = e.Timesheet
	}
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
