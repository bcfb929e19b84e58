// Package container provides testcontainers helpers for integration tests.
package container

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/ansumanroy/glueregistry-commons/pkg/registry"
)

// GlueContainer wraps a LocalStack container running the Glue service.
type GlueContainer struct {
	Container testcontainers.Container
	Endpoint  string
}

// GlueOption configures the LocalStack container.
type GlueOption func(*glueOptions)

type glueOptions struct {
	image string
}

// WithLocalStackImage sets the LocalStack image to use.
func WithLocalStackImage(image string) GlueOption {
	return func(o *glueOptions) {
		o.image = image
	}
}

// StartGlueContainer starts a LocalStack container with the Glue service
// enabled and returns the endpoint to point the registry client at.
func StartGlueContainer(ctx context.Context, opts ...GlueOption) (*GlueContainer, error) {
	options := &glueOptions{
		image: "localstack/localstack-pro:3.4",
	}
	for _, opt := range opts {
		opt(options)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        options.image,
			ExposedPorts: []string{"4566/tcp"},
			Env: map[string]string{
				"SERVICES": "glue",
			},
			WaitingFor: wait.ForListeningPort("4566/tcp").WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start localstack container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx) //nolint:errcheck // best effort cleanup
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "4566")
	if err != nil {
		_ = container.Terminate(ctx) //nolint:errcheck // best effort cleanup
		return nil, fmt.Errorf("failed to get localstack port: %w", err)
	}

	endpoint := fmt.Sprintf("http://%s:%s", host, port.Port())

	if err := waitForLocalStack(ctx, endpoint, 60*time.Second); err != nil {
		_ = container.Terminate(ctx) //nolint:errcheck // best effort cleanup
		return nil, fmt.Errorf("localstack not ready: %w", err)
	}

	return &GlueContainer{
		Container: container,
		Endpoint:  endpoint,
	}, nil
}

// Terminate terminates the container.
func (g *GlueContainer) Terminate(ctx context.Context) error {
	if g.Container != nil {
		return g.Container.Terminate(ctx)
	}
	return nil
}

// RegistryConfig returns a client configuration targeting this container.
func (g *GlueContainer) RegistryConfig(registryName string) registry.Config {
	return registry.Config{
		RegistryName:    registryName,
		Region:          "us-east-1",
		AccessKeyID:     "test",
		SecretAccessKey: "test",
		Endpoint:        g.Endpoint,
		HTTPTimeout:     30 * time.Second,
	}
}

// UniqueSchemaName builds a schema name that will not collide across test
// runs sharing one registry.
func UniqueSchemaName(prefix string) string {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("%s-%s", prefix, suffix)
}

func waitForLocalStack(ctx context.Context, endpoint string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	healthURL := endpoint + "/_localstack/health"

	for time.Now().Before(deadline) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL, nil)
		if err != nil {
			return err
		}
		resp, err := http.DefaultClient.Do(req)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}

	return fmt.Errorf("timed out after %s waiting for %s", timeout, healthURL)
}
