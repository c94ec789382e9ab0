package config

import (
	"github.com/jpalmerr/testuri"
	"github.com/jpalmerr/testuri/internal/logger"
)

// BuildOptions converts a loaded configuration into poller options.
//
// The logger and cycle callbacks are process concerns and are appended by
// the caller.
func BuildOptions(cfg *Config) []testuri.Option {
	return []testuri.Option{
		testuri.WithTargets(cfg.Targets...),
		testuri.WithOutputDir(cfg.OutputDir),
		testuri.WithInterval(cfg.Interval.Duration()),
		testuri.WithRequestTimeout(cfg.RequestTimeout.Duration()),
	}
}

// LoggerOptions maps the log section onto logger settings.
func LoggerOptions(cfg *Config) logger.Options {
	return logger.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	}
}
