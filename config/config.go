// Package config loads testuri settings from an optional YAML file and the
// environment.
//
// Precedence, lowest first: built-in defaults, the YAML file, environment
// variables. A deployment that only sets URLS gets every listed target
// checked once a minute and reported under /data/out.
//
// Example configuration:
//
//	targets:
//	  - https://example.com
//	  - ${STATUS_HOST:-https://status.example.com}/ping
//	output_dir: /data/out
//	interval: 60s
//	request_timeout: 5s
//	log:
//	  level: info
//	  format: json
//	metrics:
//	  port: 9090
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/jpalmerr/testuri"
	"github.com/jpalmerr/testuri/internal/logger"
)

// minInterval keeps a misconfigured deployment from hammering its targets.
const minInterval = 1 * time.Second

const (
	defaultInterval       = 60 * time.Second
	defaultRequestTimeout = 5 * time.Second
	defaultMaxSizeMB      = 50
	defaultMaxBackups     = 3
)

// Config is the root configuration structure.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config.
type Config struct {
	// Targets is the ordered URL list. Accepts a YAML sequence or a single
	// comma-separated string; an empty string means no targets.
	Targets Targets `yaml:"targets"`

	// OutputDir is where report files are written. Defaults to /data/out.
	OutputDir string `yaml:"output_dir"`

	// Interval is the pause after each cycle. Defaults to 60s.
	Interval Duration `yaml:"interval"`

	// RequestTimeout bounds each check. Defaults to 5s.
	RequestTimeout Duration `yaml:"request_timeout"`

	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LogConfig controls process logging.
type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// MetricsConfig controls the ops server. Port 0 disables it.
type MetricsConfig struct {
	Port int `yaml:"port"`
}

// Targets is an ordered list of target URLs.
type Targets []string

// UnmarshalYAML accepts a sequence of strings or one comma-separated string.
// Environment references are expanded before a string is split.
func (t *Targets) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		expanded, err := expandEnvVars(s)
		if err != nil {
			return fmt.Errorf("targets: %w", err)
		}
		*t = testuri.ParseTargets(expanded)
		return nil

	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		out := make([]string, len(list))
		for i, s := range list {
			expanded, err := expandEnvVars(s)
			if err != nil {
				return fmt.Errorf("targets[%d]: %w", i, err)
			}
			out[i] = expanded
		}
		*t = out
		return nil
	}

	return fmt.Errorf("targets must be a list or a comma-separated string, got %v", node.Kind)
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// environment lists the variables that override the file. Unset variables
// leave the field nil.
type environment struct {
	URLs           *string        `envconfig:"URLS"`
	OutputDir      *string        `envconfig:"TESTURI_OUTPUT_DIR"`
	Interval       *time.Duration `envconfig:"TESTURI_INTERVAL"`
	RequestTimeout *time.Duration `envconfig:"TESTURI_REQUEST_TIMEOUT"`
	LogLevel       *string        `envconfig:"TESTURI_LOG_LEVEL"`
	LogFormat      *string        `envconfig:"TESTURI_LOG_FORMAT"`
	LogFile        *string        `envconfig:"TESTURI_LOG_FILE"`
	MetricsPort    *int           `envconfig:"TESTURI_METRICS_PORT"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Targets:        Targets{},
		OutputDir:      testuri.DefaultOutputDir,
		Interval:       Duration(defaultInterval),
		RequestTimeout: Duration(defaultRequestTimeout),
		Log: LogConfig{
			Level:      "info",
			Format:     logger.FormatJSON,
			MaxSizeMB:  defaultMaxSizeMB,
			MaxBackups: defaultMaxBackups,
		},
	}
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		varName := submatches[1]
		hasDefault := submatches[2] != ""

		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		if hasDefault {
			return submatches[3]
		}
		firstErr = fmt.Errorf("environment variable %q is not set", varName)
		return match
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load builds a Config from defaults, the YAML file at path and the
// environment, then validates it. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := cfg.decode(data); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnvironment(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse parses YAML configuration data over the defaults and validates it.
// The environment override layer is not applied; see [Load].
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(data); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	if c.Targets == nil {
		c.Targets = Targets{}
	}

	expanded, err := expandEnvVars(c.OutputDir)
	if err != nil {
		return fmt.Errorf("output_dir: %w", err)
	}
	c.OutputDir = expanded
	return nil
}

func (c *Config) applyEnvironment() error {
	var env environment
	if err := envconfig.Process("", &env); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}

	if env.URLs != nil {
		c.Targets = testuri.ParseTargets(*env.URLs)
	}
	if env.OutputDir != nil {
		c.OutputDir = *env.OutputDir
	}
	if env.Interval != nil {
		c.Interval = Duration(*env.Interval)
	}
	if env.RequestTimeout != nil {
		c.RequestTimeout = Duration(*env.RequestTimeout)
	}
	if env.LogLevel != nil {
		c.Log.Level = *env.LogLevel
	}
	if env.LogFormat != nil {
		c.Log.Format = *env.LogFormat
	}
	if env.LogFile != nil {
		c.Log.File = *env.LogFile
	}
	if env.MetricsPort != nil {
		c.Metrics.Port = *env.MetricsPort
	}
	return nil
}

// Validate checks field ranges. An empty target list is valid; see
// [Config.Warnings].
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output_dir cannot be empty")
	}
	if c.Interval.Duration() < minInterval {
		return fmt.Errorf("interval must be at least %s, got %s", minInterval, c.Interval.Duration())
	}
	if c.RequestTimeout.Duration() <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", c.RequestTimeout.Duration())
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if !logger.ValidFormat(c.Log.Format) {
		return fmt.Errorf("log.format must be json or text, got %q", c.Log.Format)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 {
		return errors.New("log.max_size_mb and log.max_backups cannot be negative")
	}
	if c.Metrics.Port < 0 || c.Metrics.Port > 65535 {
		return fmt.Errorf("metrics.port must be between 0 and 65535, got %d", c.Metrics.Port)
	}
	return nil
}

// Warnings lists settings that are valid but probably unintended. Targets
// that cannot succeed still get checked and reported as ERROR lines.
func (c *Config) Warnings() []string {
	var warnings []string
	if len(c.Targets) == 0 {
		warnings = append(warnings, "no targets configured; every report will be empty")
	}
	for i, target := range c.Targets {
		u, err := url.Parse(target)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			warnings = append(warnings, fmt.Sprintf("targets[%d] %q is not an absolute http(s) URL and will always report ERROR", i, target))
		}
	}
	if c.RequestTimeout.Duration() > c.Interval.Duration() {
		warnings = append(warnings, fmt.Sprintf("request_timeout %s exceeds interval %s", c.RequestTimeout.Duration(), c.Interval.Duration()))
	}
	return warnings
}
