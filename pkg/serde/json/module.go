package json

import (
	"github.com/ansumanroy/glueregistry-commons/pkg/registry"
	"go.uber.org/fx"
)

// NewJSONModule provides the JSON serializer for dependency injection.
func NewJSONModule() fx.Option {
	return fx.Module("serde-json",
		fx.Provide(provideSerializer),
	)
}

func provideSerializer(client *registry.Client) *Serializer {
	return NewSerializer(client)
}
