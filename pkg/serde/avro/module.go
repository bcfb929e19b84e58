package avro

import (
	"github.com/ansumanroy/glueregistry-commons/pkg/registry"
	"go.uber.org/fx"
)

// NewAvroModule provides the Avro serializer for dependency injection.
func NewAvroModule() fx.Option {
	return fx.Module("serde-avro",
		fx.Provide(provideSerializer),
	)
}

func provideSerializer(client *registry.Client) *Serializer {
	return NewSerializer(client)
}
