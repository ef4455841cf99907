package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// FileName is the config file looked up at the tutorial root.
const FileName = ".tutorcheck.yaml"

// EnvPrefix prefixes the environment variables that override config keys.
const EnvPrefix = "TUTORCHECK_"

//go:embed defaults.yaml
var defaultsYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	cfg, err := load(nil, false)
	if err != nil {
		// defaults.yaml is embedded at build time.
		panic(fmt.Sprintf("config: invalid embedded defaults: %v", err))
	}
	return *cfg
}

// Load builds the configuration from the embedded defaults, then the YAML
// file at path (skipped when path is empty or the file does not exist),
// then TUTORCHECK_* environment variables.
//
// Lists are replaced, not merged: a file that sets yaml.files drops the defaults.
//
//	TUTORCHECK_AUTOFIX_BRANCH   -> autofix.branch
//	TUTORCHECK_NOTEBOOKS_TOC_MARKER -> notebooks.toc_marker
func Load(path string) (*Config, error) {
	var content []byte
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		content = data
	}
	return load(content, true)
}

func load(file []byte, withEnv bool) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultsYAML), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if len(file) > 0 {
		if err := k.Load(rawbytes.Provider(file), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if withEnv {
		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, fmt.Errorf("failed to load environment variables: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// envKey maps TUTORCHECK_SECTION_FIELD_NAME to section.field_name.
// Only the first underscore after the prefix separates the section.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	parts := strings.SplitN(lower, "_", 2)
	if len(parts) == 1 {
		return lower
	}
	return parts[0] + "." + parts[1]
}

// Validate rejects configurations the checks cannot run with.
func (c *Config) Validate() error {
	for _, f := range c.Lint.Formatters {
		if len(f.Check) == 0 {
			return fmt.Errorf("formatter %q has no check command", f.Name)
		}
	}
	if c.Notebooks.Indent < 0 {
		return fmt.Errorf("notebooks.indent must not be negative")
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	return nil
}
