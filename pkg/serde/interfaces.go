// Package serde provides format-agnostic interfaces for serializing
// SalesforceAudit records against schemas held in a remote registry.
// Implementations for specific formats (Avro, JSON) are in subpackages.
package serde

import (
	"context"

	"github.com/ansumanroy/glueregistry-commons/pkg/audit"
	"github.com/ansumanroy/glueregistry-commons/pkg/registry"
)

// SchemaFetcher is the subset of the registry client the serializers need.
// Every serialize or deserialize call performs a fresh fetch through it;
// implementations must not be assumed to cache.
type SchemaFetcher interface {
	GetSchema(ctx context.Context, name string) (registry.Schema, error)
	GetSchemaVersion(ctx context.Context, name string, versionNumber int64) (registry.SchemaVersion, error)
}

// Serializer encodes a record to bytes using the named schema.
type Serializer interface {
	Serialize(ctx context.Context, schemaName string, event audit.SalesforceAudit) ([]byte, error)
}

// Deserializer decodes bytes back into a record using the named schema.
// A failed decode never yields a partial record.
type Deserializer interface {
	Deserialize(ctx context.Context, schemaName string, data []byte) (audit.SalesforceAudit, error)
}
