package registry

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	// Given: viper without a registry subtree and a clean environment
	t.Setenv(envRegistryName, "")
	t.Setenv(envAWSRegion, "")
	v := viper.New()

	// When
	cfg, err := NewConfig(v)

	// Then
	require.NoError(t, err)
	assert.Empty(t, cfg.RegistryName)
	assert.Equal(t, defaultHTTPTimeout, cfg.HTTPTimeout)
}

func TestNewConfig_FromFileValues(t *testing.T) {
	t.Setenv(envRegistryName, "")
	t.Setenv(envAWSRegion, "")

	v := viper.New()
	v.Set("registry.registryName", "file-registry")
	v.Set("registry.region", "eu-west-1")
	v.Set("registry.httpTimeout", "5s")

	cfg, err := NewConfig(v)

	require.NoError(t, err)
	assert.Equal(t, "file-registry", cfg.RegistryName)
	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
}

func TestNewConfig_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv(envRegistryName, "env-registry")
	t.Setenv(envAWSRegion, "us-east-1")

	v := viper.New()
	v.Set("registry.registryName", "file-registry")
	v.Set("registry.region", "eu-west-1")

	cfg, err := NewConfig(v)

	require.NoError(t, err)
	assert.Equal(t, "env-registry", cfg.RegistryName)
	assert.Equal(t, "us-east-1", cfg.Region)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "missing registry name",
			cfg:     Config{Region: "us-east-1"},
			wantErr: "registry name is required",
		},
		{
			name:    "missing region",
			cfg:     Config{RegistryName: "audit-registry"},
			wantErr: "region is required",
		},
		{
			name:    "negative timeout",
			cfg:     Config{RegistryName: "audit-registry", Region: "us-east-1", HTTPTimeout: -time.Second},
			wantErr: "httpTimeout cannot be negative",
		},
		{
			name: "valid",
			cfg:  Config{RegistryName: "audit-registry", Region: "us-east-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}
