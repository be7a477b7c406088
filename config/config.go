// Package config loads server settings from the environment and the optional
// YAML provider file. Environment variables control process-level behavior;
// the file configures which providers are registered and how.
package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"regexp"

	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"
)

// Transport names accepted by TRANSPORT.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Env holds process-level settings read from the environment.
type Env struct {
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	Transport   string `env:"TRANSPORT,default=stdio"`
	ListenAddr  string `env:"LISTEN_ADDR,default=:8080"`
	ConfigFile  string `env:"CONFIG_FILE"`
	ResourceDir string `env:"RESOURCE_DIR"`
}

// LoadEnv decodes and validates environment settings.
func LoadEnv() (*Env, error) {
	var e Env
	if err := envdecode.Decode(&e); err != nil {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &e, nil
}

// Validate checks enum-valued settings.
func (e *Env) Validate() error {
	switch e.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("TRANSPORT must be %s or %s, got %q", TransportStdio, TransportHTTP, e.Transport)
	}
	if _, err := parseLevel(e.LogLevel); err != nil {
		return err
	}
	return nil
}

// SlogLevel returns the configured log level. Validate must have passed.
func (e *Env) SlogLevel() slog.Level {
	lvl, _ := parseLevel(e.LogLevel)
	return lvl
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("LOG_LEVEL must be debug, info, warn, or error, got %q", s)
}

var providerNameRe = regexp.MustCompile(`^[a-z][a-z0-9]*$`)

// Provider configures one backend registration.
type Provider struct {
	Name       string            `yaml:"name"`
	Enabled    *bool             `yaml:"enabled"`
	Priority   int               `yaml:"priority"`
	Endpoint   string            `yaml:"endpoint"`
	Credential string            `yaml:"credential"`
	Options    map[string]string `yaml:"options"`
}

// IsEnabled treats an absent enabled key as true.
func (p Provider) IsEnabled() bool {
	return p.Enabled == nil || *p.Enabled
}

// File is the YAML provider configuration.
type File struct {
	Default   string     `yaml:"default"`
	Providers []Provider `yaml:"providers"`
}

// DefaultFile is the configuration used when no file is given: the in-memory
// provider only.
func DefaultFile() *File {
	return &File{
		Default:   "memory",
		Providers: []Provider{{Name: "memory"}},
	}
}

// LoadFile reads and validates a YAML provider configuration. Unknown keys
// are rejected.
func LoadFile(path string) (*File, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var f File
	dec := yaml.NewDecoder(bytes.NewReader(body))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return &f, nil
}

// Validate checks structural consistency: at least one enabled provider,
// well-formed unique names, and a default that refers to a listed provider.
func (f *File) Validate() error {
	if len(f.Providers) == 0 {
		return fmt.Errorf("at least one provider must be configured")
	}

	seen := make(map[string]bool, len(f.Providers))
	enabled := 0
	for i, p := range f.Providers {
		if !providerNameRe.MatchString(p.Name) {
			return fmt.Errorf("providers[%d]: name %q must match %s", i, p.Name, providerNameRe.String())
		}
		if seen[p.Name] {
			return fmt.Errorf("providers[%d]: duplicate name %q", i, p.Name)
		}
		seen[p.Name] = true
		if p.IsEnabled() {
			enabled++
		}
	}
	if enabled == 0 {
		return fmt.Errorf("all configured providers are disabled")
	}

	if f.Default != "" {
		if !seen[f.Default] {
			return fmt.Errorf("default provider %q is not in the providers list", f.Default)
		}
	}
	return nil
}
