// Package hostenv adapts the library to a hosting integration runtime.
//
// Instead of probing the runtime for host classes, the caller states which
// environment it runs in by injecting an Environment adapter. The standalone
// adapter reads process environment variables; hosts with their own property
// systems (secure properties, deployment descriptors) supply a Properties
// adapter filled from whatever mechanism they have.
package hostenv

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ansumanroy/glueregistry-commons/pkg/registry"
)

// Property keys resolved through an Environment.
const (
	PropRegistryName    = "glue.registry.name"
	PropRegion          = "aws.region"
	PropAccessKeyID     = "aws.access.key.id"
	PropSecretAccessKey = "aws.secret.access.key"
	PropSessionToken    = "aws.session.token"
	PropEndpoint        = "glue.endpoint"
	PropHTTPTimeoutMS   = "glue.http.timeout.ms"
)

// Environment supplies host-resolved configuration properties.
type Environment interface {
	// Name identifies the host runtime, for diagnostics only.
	Name() string
	// Lookup resolves a property key, reporting whether it was set.
	Lookup(key string) (string, bool)
}

// standaloneEnv resolves properties from process environment variables, with
// dots mapped to underscores and upper-casing (glue.registry.name becomes
// GLUE_REGISTRY_NAME).
type standaloneEnv struct{}

// Standalone returns the environment adapter for plain processes.
func Standalone() Environment {
	return standaloneEnv{}
}

func (standaloneEnv) Name() string {
	return "standalone"
}

func (standaloneEnv) Lookup(key string) (string, bool) {
	return os.LookupEnv(envKey(key))
}

func envKey(key string) string {
	out := make([]byte, len(key))
	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c == '.' || c == '-':
			out[i] = '_'
		case 'a' <= c && c <= 'z':
			out[i] = c - 'a' + 'A'
		default:
			out[i] = c
		}
	}
	return string(out)
}

// propertiesEnv resolves properties from a map captured at construction.
type propertiesEnv struct {
	name  string
	props map[string]string
}

// Properties returns an environment adapter backed by a property map. The
// host resolves its own property sources (secure properties, vault, etc.) and
// hands over the result.
func Properties(name string, props map[string]string) Environment {
	copied := make(map[string]string, len(props))
	for k, v := range props {
		copied[k] = v
	}
	return propertiesEnv{name: name, props: copied}
}

func (e propertiesEnv) Name() string {
	return e.name
}

func (e propertiesEnv) Lookup(key string) (string, bool) {
	v, ok := e.props[key]
	return v, ok
}

// ResolveConfig builds a registry client config from host properties.
// Registry name and region are required; everything else is optional.
func ResolveConfig(env Environment) (registry.Config, error) {
	name, ok := env.Lookup(PropRegistryName)
	if !ok || name == "" {
		return registry.Config{}, fmt.Errorf("hostenv %s: property %q is required", env.Name(), PropRegistryName)
	}
	region, ok := env.Lookup(PropRegion)
	if !ok || region == "" {
		return registry.Config{}, fmt.Errorf("hostenv %s: property %q is required", env.Name(), PropRegion)
	}

	cfg := registry.Config{
		RegistryName: name,
		Region:       region,
	}
	if v, ok := env.Lookup(PropAccessKeyID); ok {
		cfg.AccessKeyID = v
	}
	if v, ok := env.Lookup(PropSecretAccessKey); ok {
		cfg.SecretAccessKey = v
	}
	if v, ok := env.Lookup(PropSessionToken); ok {
		cfg.SessionToken = v
	}
	if v, ok := env.Lookup(PropEndpoint); ok {
		cfg.Endpoint = v
	}
	if v, ok := env.Lookup(PropHTTPTimeoutMS); ok {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return registry.Config{}, fmt.Errorf("hostenv %s: property %q must be an integer: %w", env.Name(), PropHTTPTimeoutMS, err)
		}
		cfg.HTTPTimeout = time.Duration(ms) * time.Millisecond
	}

	return cfg, nil
}
