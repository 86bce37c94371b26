package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanworks/loan-engine/internal/config"
	"github.com/loanworks/loan-engine/internal/engine"
	"github.com/loanworks/loan-engine/pkg/output"
)

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name     string
		conf     config.LoggingConfig
		override string
		wantErr  bool
	}{
		{"defaults", config.LoggingConfig{}, "", false},
		{"console debug", config.LoggingConfig{Level: "debug", Format: "console"}, "", false},
		{"override wins", config.LoggingConfig{Level: "bogus"}, "warn", false},
		{"bad level", config.LoggingConfig{Level: "loud"}, "", true},
		{"bad format", config.LoggingConfig{Format: "xml"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := initializeLogger(tt.conf, tt.override)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestInitializeLoggerOutputFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "engine.log")
	logger, err := initializeLogger(config.LoggingConfig{OutputFile: logFile}, "")
	require.NoError(t, err)

	logger.Info("hello")
	_ = logger.Sync()

	contents, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "hello")
}

func TestValidateOutputFormat(t *testing.T) {
	assert.NoError(t, validateOutputFormat("pretty"))
	assert.NoError(t, validateOutputFormat("csv"))
	assert.Error(t, validateOutputFormat("yaml"))
	assert.Error(t, validateOutputFormat(""))
}

// TestEndToEnd runs the whole pipeline the way main does: load a config file,
// process every loan, and render both output formats.
func TestEndToEnd(t *testing.T) {
	contents := `---
loans:
  - name: starter
    principal: "10000.00"
    annualInterestRate: "6"
    termMonths: 12
    startDate: "2024-01-01"
    paymentFrequency: monthly
    interestType: amortized
    dayCountConvention: 30/360
    upfrontFees: "200.00"
    payoff:
      asOfDate: "2024-07-01"
`
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(contents), 0644))

	conf, err := config.LoadConfiguration(configPath)
	require.NoError(t, err)

	results, err := engine.Run(nil, *conf)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NotNil(t, results[0].APR)
	require.NotNil(t, results[0].Payoff)

	pretty := captureStdout(t, func() { output.PrettyFormat(results) })
	assert.Contains(t, pretty, "starter")
	assert.Contains(t, pretty, "860.66")

	csv := captureStdout(t, func() { output.CsvFormat(results) })
	lines := strings.Split(strings.TrimSpace(csv), "\n")
	assert.Len(t, lines, 13)
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	require.NoError(t, w.Close())
	os.Stdout = old

	var sb strings.Builder
	_, err = io.Copy(&sb, r)
	require.NoError(t, err)
	return sb.String()
}
