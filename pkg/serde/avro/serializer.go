// Package avro encodes and decodes SalesforceAudit records as raw Avro
// binary, using the schema definition fetched from the registry on every
// call. The payload carries no wire-format header or schema fingerprint; the
// schema is supplied out-of-band by name.
package avro

import (
	"context"

	"github.com/ansumanroy/glueregistry-commons/pkg/audit"
	"github.com/ansumanroy/glueregistry-commons/pkg/serde"
	hambavro "github.com/hamba/avro/v2"
)

const formatName = "avro"

// Serializer is the Avro adapter. It holds the resolver and no other state,
// so it is safe for concurrent use.
type Serializer struct {
	resolver *SchemaResolver
}

var (
	_ serde.Serializer   = (*Serializer)(nil)
	_ serde.Deserializer = (*Serializer)(nil)
)

// NewSerializer creates an Avro serializer backed by the given registry client.
func NewSerializer(fetcher serde.SchemaFetcher) *Serializer {
	return &Serializer{resolver: NewSchemaResolver(fetcher)}
}

// Serialize encodes the record against the latest registered schema. The
// record is lowered to a generic datum first so that a schema whose field set
// or types diverge from the record shape fails the encode rather than
// silently dropping data.
func (s *Serializer) Serialize(ctx context.Context, schemaName string, event audit.SalesforceAudit) ([]byte, error) {
	schema, err := s.resolver.Resolve(ctx, schemaName)
	if err != nil {
		return nil, err
	}

	data, err := hambavro.Marshal(schema, event.ToMap())
	if err != nil {
		return nil, serde.NewError(formatName, "serialize", schemaName, err)
	}

	return data, nil
}

// Deserialize decodes Avro binary back into a record. Truncated, corrupt, or
// mismatched bytes fail the whole operation; so does a decoded datum that is
// missing any of the record fields.
func (s *Serializer) Deserialize(ctx context.Context, schemaName string, data []byte) (audit.SalesforceAudit, error) {
	schema, err := s.resolver.Resolve(ctx, schemaName)
	if err != nil {
		return audit.SalesforceAudit{}, err
	}

	var datum map[string]any
	if err := hambavro.Unmarshal(schema, data, &datum); err != nil {
		return audit.SalesforceAudit{}, serde.NewError(formatName, "deserialize", schemaName, err)
	}

	event, err := audit.FromMap(datum)
	if err != nil {
		return audit.SalesforceAudit{}, serde.NewError(formatName, "deserialize", schemaName, err)
	}

	return event, nil
}
