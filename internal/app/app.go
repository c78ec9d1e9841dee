package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/alihassanzadehk/ssnd-benchmark/internal/config"
	"github.com/alihassanzadehk/ssnd-benchmark/internal/loader"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW        io.Writer
	logger      *slog.Logger
	cfg         *config.Model
	patterns    loader.Patterns
	archivePath string
}

// NewApp merges flags over the config file (or defaults), builds the logger,
// and compiles the filename patterns. Unusable configuration is a fatal
// startup error and panics; the entrypoint recovers and reports it.
func NewApp(outW io.Writer, appConfig *Config) *App {
	cfg := config.Default()
	if appConfig.ConfigPath != "" {
		loaded, err := config.Load(appConfig.ConfigPath)
		if err != nil {
			panic(fmt.Errorf("failed to load configuration: %w", err))
		}
		cfg = loaded
	}

	// Flags set on the command line win over the file.
	if appConfig.LogFormat != "" {
		cfg.LogFormat = appConfig.LogFormat
	}
	if appConfig.LogLevel != "" {
		cfg.LogLevel = appConfig.LogLevel
	}
	if appConfig.Workers > 0 {
		cfg.Workers = appConfig.Workers
	}

	if appConfig.ArchivePath == "" && cfg.S3 == nil {
		panic(fmt.Errorf("no archive source: give an archive path or configure an s3 block"))
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	patterns, err := loader.CompilePatterns(cfg.InstancePattern, cfg.ScenarioPattern)
	if err != nil {
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	logger.Debug("Filename patterns compiled.")

	return &App{
		outW:        outW,
		logger:      logger,
		cfg:         cfg,
		patterns:    patterns,
		archivePath: appConfig.ArchivePath,
	}
}

// Patterns returns the compiled filename patterns. Primarily for testing.
func (a *App) Patterns() loader.Patterns {
	return a.patterns
}
