// Package modules bundles the library's fx modules into ready-made options.
package modules

import (
	"github.com/ansumanroy/glueregistry-commons/pkg/config"
	"github.com/ansumanroy/glueregistry-commons/pkg/logger"
	"github.com/ansumanroy/glueregistry-commons/pkg/registry"
	"github.com/ansumanroy/glueregistry-commons/pkg/serde/avro"
	"github.com/ansumanroy/glueregistry-commons/pkg/serde/json"
	"go.uber.org/fx"
)

// NewCoreModule provides configuration loading and logging.
func NewCoreModule() fx.Option {
	return fx.Options(
		config.NewDotEnvModule(),
		logger.NewZapLoggingModule(),
		config.NewViperModule(),
	)
}

// NewRegistryModule provides the registry client and both serializers.
func NewRegistryModule() fx.Option {
	return fx.Options(
		registry.NewRegistryModule(),
		avro.NewAvroModule(),
		json.NewJSONModule(),
	)
}
