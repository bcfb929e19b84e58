package registry

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewRegistryModule provides a lifecycle-managed *Client for dependency
// injection. Config is resolved from viper and the environment via NewConfig.
func NewRegistryModule() fx.Option {
	return fx.Module("registry",
		fx.Provide(
			NewConfig,
			provideClient,
		),
	)
}

func provideClient(lc fx.Lifecycle, cfg Config, log *zap.Logger) (*Client, error) {
	client, err := NewClient(context.Background(), cfg, log)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info("closing glue schema registry client")
			client.Close()
			return nil
		},
	})

	return client, nil
}
