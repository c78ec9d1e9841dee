package app

import "errors"

// Config is the flag-level configuration handed in by the CLI. Zero values
// mean "not set on the command line"; the app overlays them onto the config
// file (or the defaults) in NewApp.
type Config struct {
	ArchivePath string // zip file or directory of benchmark files
	ConfigPath  string // optional HCL config file

	LogFormat string
	LogLevel  string
	Workers   int
}

// NewConfig validates the flag-level configuration. An archive path may be
// omitted only when a config file might supply an S3 source instead.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ArchivePath == "" && cfg.ConfigPath == "" {
		return nil, errors.New("an archive path (or a config file with an s3 block) is required")
	}
	return &cfg, nil
}
