package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewViper_WithoutConfigFile(t *testing.T) {
	v, err := newViper("")

	require.NoError(t, err)
	assert.Empty(t, v.ConfigFileUsed())
}

func TestNewViper_ReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("registry:\n  registryName: test-registry\n  region: us-east-1\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	v, err := newViper(FilePath(path))

	require.NoError(t, err)
	assert.Equal(t, "test-registry", v.GetString("registry.registryName"))
	assert.Equal(t, "us-east-1", v.GetString("registry.region"))
}

func TestNewViper_MissingConfigFile(t *testing.T) {
	_, err := newViper("/nonexistent/config.yaml")

	require.Error(t, err)
}

func TestResolveConfigPath_Precedence(t *testing.T) {
	t.Setenv("CONFIG_FILE", "/from/env.yaml")

	// Explicit path wins over the environment variable.
	explicit := "/explicit/config.yaml"
	assert.Equal(t, FilePath(explicit), resolveConfigPath(&viperConfig{configPath: &explicit}))

	// Environment variable applies otherwise.
	assert.Equal(t, FilePath("/from/env.yaml"), resolveConfigPath(&viperConfig{}))

	// Disabling config files beats everything.
	assert.Equal(t, FilePath(""), resolveConfigPath(&viperConfig{noConfigFile: true, configPath: &explicit}))
}

func TestNewViper_EnvKeyReplacer(t *testing.T) {
	t.Setenv("REGISTRY_REGION", "eu-central-1")

	v, err := newViper("")

	require.NoError(t, err)
	assert.Equal(t, "eu-central-1", v.GetString("registry.region"))
}
