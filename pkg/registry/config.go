package registry

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Environment variables recognised by NewConfig.
const (
	envRegistryName = "GLUE_REGISTRY_NAME"
	envAWSRegion    = "AWS_REGION"
)

const defaultHTTPTimeout = 30 * time.Second

// Config carries everything needed to construct a Client. A zero value is not
// usable; at minimum RegistryName and Region must be set.
//
// Credentials are optional: when the static key fields are empty, the SDK
// default resolution chain applies (environment, shared credentials file,
// instance role).
type Config struct {
	// RegistryName is the Glue registry all client operations target.
	RegistryName string `mapstructure:"registryName"`

	// Region is the AWS region hosting the registry.
	Region string `mapstructure:"region"`

	// AccessKeyID and SecretAccessKey select static credentials when both are
	// non-empty. SessionToken is only read alongside them.
	AccessKeyID     string `mapstructure:"accessKeyId"`
	SecretAccessKey string `mapstructure:"secretAccessKey"`
	SessionToken    string `mapstructure:"sessionToken"`

	// Endpoint overrides the Glue service endpoint, e.g. for LocalStack.
	Endpoint string `mapstructure:"endpoint"`

	// HTTPTimeout bounds each HTTP round trip. Defaults to 30s.
	HTTPTimeout time.Duration `mapstructure:"httpTimeout"`
}

func (c Config) Validate() error {
	if c.RegistryName == "" {
		return fmt.Errorf("registry name is required")
	}
	if c.Region == "" {
		return fmt.Errorf("region is required")
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("httpTimeout cannot be negative")
	}
	return nil
}

// NewConfig resolves a Config from the "registry" subtree of v, then applies
// environment overrides. Resolution order, strongest first: environment
// variables (GLUE_REGISTRY_NAME, AWS_REGION), config file values, defaults.
// Callers that construct Config directly bypass this resolution entirely.
func NewConfig(v *viper.Viper) (Config, error) {
	var cfg Config

	if sub := v.Sub("registry"); sub != nil {
		if err := sub.Unmarshal(&cfg); err != nil {
			return Config{}, fmt.Errorf("failed to load registry config: %w", err)
		}
	}

	if name := os.Getenv(envRegistryName); name != "" {
		cfg.RegistryName = name
	}
	if region := os.Getenv(envAWSRegion); region != "" {
		cfg.Region = region
	}

	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = defaultHTTPTimeout
	}

	return cfg, nil
}
