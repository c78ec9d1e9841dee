package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/alihassanzadehk/ssnd-benchmark/internal/app"
)

// ExitError is a process-level failure carrying a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating the program should exit cleanly (help shown), or an
// ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("ssnd-benchmark", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
ssnd-benchmark - Loads SSND benchmark instance and scenario archives.

Usage:
  ssnd-benchmark [options] [ARCHIVE_PATH]

Arguments:
  ARCHIVE_PATH
    Path to a .zip archive or a directory of extracted benchmark files.
    May be omitted when -config points at a file with an s3 block.

Options:
`)
		flagSet.PrintDefaults()
	}

	archiveFlag := flagSet.String("archive", "", "Path to the benchmark archive or directory.")
	aFlag := flagSet.String("a", "", "Path to the benchmark archive or directory (shorthand).")
	configFlag := flagSet.String("config", "", "Path to an HCL config file (patterns, workers, s3).")
	logFormatFlag := flagSet.String("log-format", "", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", 0, "Number of concurrent parse workers. 0 takes the config file value.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	path := ""
	if *archiveFlag != "" {
		path = *archiveFlag
	} else if *aFlag != "" {
		path = *aFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}

	if path == "" && *configFlag == "" {
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	switch logFormat {
	case "", "text", "json":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if *workersFlag < 0 {
		return nil, false, &ExitError{Code: 2, Message: "invalid workers: must be >= 0"}
	}

	config, err := app.NewConfig(app.Config{
		ArchivePath: path,
		ConfigPath:  *configFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
		Workers:     *workersFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
