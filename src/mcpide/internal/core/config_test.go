package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigDir(t *testing.T, files map[string]string) string {
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name        string
		files       map[string]string
		expectError bool
	}{
		{
			name: "loads listed files",
			files: map[string]string{
				"meta.yaml": "files:\n  - base.yaml\n",
				"base.yaml": "service:\n  name: mcpide\n",
			},
		},
		{
			name: "missing meta file",
			files: map[string]string{
				"base.yaml": "service:\n  name: mcpide\n",
			},
			expectError: true,
		},
		{
			name: "no listed file exists",
			files: map[string]string{
				"meta.yaml": "files:\n  - missing.yaml\n",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MCPIDE_CONFIG_DIR", writeConfigDir(t, tt.files))

			provider, err := NewConfig()
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, provider)
				return
			}

			require.NoError(t, err)
			cfg := provider.(Config)
			assert.Equal(t, "config", cfg.Name())
			assert.Equal(t, "mcpide", cfg.Get("service.name").String())
		})
	}
}

func TestConfigFilePriority(t *testing.T) {
	dir := writeConfigDir(t, map[string]string{
		"meta.yaml":        "files:\n  - base.yaml\n  - ${MCPIDE_ENVIRONMENT:local}.yaml\n",
		"base.yaml":        "service:\n  name: base-service\nlogging:\n  level: info\n",
		"development.yaml": "logging:\n  level: debug\n",
	})
	t.Setenv("MCPIDE_CONFIG_DIR", dir)
	t.Setenv("MCPIDE_ENVIRONMENT", "development")

	provider, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "base-service", provider.Get("service.name").String())
	assert.Equal(t, "debug", provider.Get("logging.level").String())
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	dir := writeConfigDir(t, map[string]string{
		"meta.yaml": "files:\n  - base.yaml\n",
		"base.yaml": "websocket:\n  port: ${MCPIDE_PORT:0}\nlockfile:\n  dir: ${MCPIDE_LOCK_DIR:\"\"}\n",
	})
	t.Setenv("MCPIDE_CONFIG_DIR", dir)
	t.Setenv("MCPIDE_PORT", "8080")

	provider, err := NewConfig()
	require.NoError(t, err)

	var port int
	require.NoError(t, provider.Get("websocket.port").Populate(&port))
	assert.Equal(t, 8080, port)

	var lockDir string
	require.NoError(t, provider.Get("lockfile.dir").Populate(&lockDir))
	assert.Empty(t, lockDir)
}

func TestGetConfigDir(t *testing.T) {
	tests := []struct {
		name           string
		envValue       string
		expectedResult string
	}{
		{
			name:           "returns environment variable when set",
			envValue:       "/custom/config/path",
			expectedResult: "/custom/config/path",
		},
		{
			name:           "returns default path when environment variable not set",
			envValue:       "",
			expectedResult: "src/mcpide/config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MCPIDE_CONFIG_DIR", tt.envValue)
			assert.Equal(t, tt.expectedResult, getConfigDir())
		})
	}
}
