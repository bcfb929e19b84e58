package avro

import (
	"context"

	"github.com/ansumanroy/glueregistry-commons/pkg/serde"
	hambavro "github.com/hamba/avro/v2"
)

// SchemaResolver fetches and parses the latest Avro schema definition for a
// schema name. Nothing is cached: each Resolve call asks the registry for the
// latest version number and then for that version's definition, so two calls
// may observe different versions if the registry changes in between.
type SchemaResolver struct {
	fetcher serde.SchemaFetcher
}

// NewSchemaResolver creates a resolver backed by the given registry client.
func NewSchemaResolver(fetcher serde.SchemaFetcher) *SchemaResolver {
	return &SchemaResolver{fetcher: fetcher}
}

// Resolve returns the parsed writer schema for the latest version of the
// named schema.
func (r *SchemaResolver) Resolve(ctx context.Context, schemaName string) (hambavro.Schema, error) {
	schema, err := r.fetcher.GetSchema(ctx, schemaName)
	if err != nil {
		return nil, serde.NewError(formatName, "fetch-schema", schemaName, err)
	}

	version, err := r.fetcher.GetSchemaVersion(ctx, schemaName, schema.LatestVersion)
	if err != nil {
		return nil, serde.NewError(formatName, "fetch-schema-version", schemaName, err)
	}

	parsed, err := hambavro.Parse(version.Definition)
	if err != nil {
		return nil, serde.NewError(formatName, "parse-schema", schemaName, err)
	}

	return parsed, nil
}
