package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/config"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name          string
		loggingConfig string
		expectError   bool
	}{
		{
			name: "info level json encoding",
			loggingConfig: `
logging:
  level: info
  development: false
  encoding: json
  outputPaths:
    - stdout
`,
		},
		{
			name: "debug level console encoding",
			loggingConfig: `
logging:
  level: debug
  development: true
  encoding: console
  outputPaths:
    - stdout
`,
		},
		{
			name: "error level default encoding and output",
			loggingConfig: `
logging:
  level: error
  development: false
`,
		},
		{
			name: "invalid level",
			loggingConfig: `
logging:
  level: invalid
  development: false
  encoding: json
`,
			expectError: true,
		},
		{
			name: "unopenable output",
			loggingConfig: `
logging:
  level: info
  outputPaths:
    - /nonexistent-dir/for/sure/out.log
`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := config.NewYAML(
				config.Source(strings.NewReader(tt.loggingConfig)),
			)
			require.NoError(t, err)

			sugared, err := NewSugaredLogger(provider)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			logger := NewLogger(sugared)
			require.NotNil(t, logger)
			logger.Info("test message")
		})
	}
}

func TestNewLoggerWritesToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "mcpide.log")
	provider, err := config.NewYAML(config.Source(strings.NewReader(`
logging:
  level: info
  encoding: json
  outputPaths:
    - ` + out + `
`)))
	require.NoError(t, err)

	sugared, err := NewSugaredLogger(provider)
	require.NoError(t, err)
	sugared.Infow("written", "key", "value")
	require.NoError(t, sugared.Sync())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"written"`)
	assert.Contains(t, string(data), `"key":"value"`)
}

func TestLoggingConfig_Populate(t *testing.T) {
	configYAML := strings.NewReader(`
logging:
  level: warn
  development: true
  encoding: console
  outputPaths:
    - stdout
    - stderr
`)

	provider, err := config.NewYAML(config.Source(configYAML))
	require.NoError(t, err)

	var loggingConfig LoggingConfig
	require.NoError(t, provider.Get("logging").Populate(&loggingConfig))

	assert.Equal(t, "warn", loggingConfig.Level)
	assert.True(t, loggingConfig.Development)
	assert.Equal(t, "console", loggingConfig.Encoding)
	assert.Equal(t, []string{"stdout", "stderr"}, loggingConfig.OutputPaths)
}
