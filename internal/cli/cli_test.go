package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name            string
		args            []string
		wantArchive     string
		wantConfig      string
		wantWorkers     int
		wantShouldExit  bool
		wantErrContains string
		wantExitCode    int
	}{
		{
			name:        "archive flag",
			args:        []string{"-archive", "bench.zip"},
			wantArchive: "bench.zip",
		},
		{
			name:        "shorthand flag",
			args:        []string{"-a", "bench.zip"},
			wantArchive: "bench.zip",
		},
		{
			name:        "positional archive",
			args:        []string{"bench.zip"},
			wantArchive: "bench.zip",
		},
		{
			name:        "archive flag wins over positional",
			args:        []string{"-archive", "first.zip", "second.zip"},
			wantArchive: "first.zip",
		},
		{
			name:       "config file only",
			args:       []string{"-config", "loader.hcl"},
			wantConfig: "loader.hcl",
		},
		{
			name:        "workers flag",
			args:        []string{"-workers", "4", "bench.zip"},
			wantArchive: "bench.zip",
			wantWorkers: 4,
		},
		{
			name:           "no arguments shows usage",
			args:           []string{},
			wantShouldExit: true,
		},
		{
			name:           "help flag",
			args:           []string{"-h"},
			wantShouldExit: true,
		},
		{
			name:            "error - unknown flag",
			args:            []string{"-bogus"},
			wantErrContains: "-bogus",
			wantExitCode:    2,
		},
		{
			name:            "error - invalid log format",
			args:            []string{"-log-format", "xml", "bench.zip"},
			wantErrContains: "invalid log-format",
			wantExitCode:    2,
		},
		{
			name:            "error - invalid log level",
			args:            []string{"-log-level", "verbose", "bench.zip"},
			wantErrContains: "invalid log-level",
			wantExitCode:    2,
		},
		{
			name:            "error - negative workers",
			args:            []string{"-workers", "-1", "bench.zip"},
			wantErrContains: "invalid workers",
			wantExitCode:    2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			cfg, shouldExit, err := Parse(tc.args, &out)

			if tc.wantErrContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErrContains)
				var exitErr *ExitError
				require.ErrorAs(t, err, &exitErr)
				assert.Equal(t, tc.wantExitCode, exitErr.Code)
				return
			}
			require.NoError(t, err)

			if tc.wantShouldExit {
				assert.True(t, shouldExit)
				assert.Nil(t, cfg)
				return
			}

			require.NotNil(t, cfg)
			assert.Equal(t, tc.wantArchive, cfg.ArchivePath)
			assert.Equal(t, tc.wantConfig, cfg.ConfigPath)
			assert.Equal(t, tc.wantWorkers, cfg.Workers)
		})
	}
}

func TestParse_LogOptionsAreLowercased(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{"-log-level", "DEBUG", "-log-format", "JSON", "bench.zip"}, &out)
	require.NoError(t, err)
	require.False(t, shouldExit)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestParse_UsageMentionsArchiveArgument(t *testing.T) {
	var out bytes.Buffer
	_, shouldExit, err := Parse(nil, &out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Contains(t, out.String(), "ARCHIVE_PATH")
}
