// Package json encodes and decodes SalesforceAudit records as UTF-8 JSON
// bytes. The schema is still fetched from the registry on every call so that
// a missing schema fails fast, but its content is not used to validate the
// payload; field names and types come from the record itself.
package json

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ansumanroy/glueregistry-commons/pkg/audit"
	"github.com/ansumanroy/glueregistry-commons/pkg/serde"
)

const formatName = "json"

// Serializer is the JSON adapter. It holds only the fetcher used for the
// schema presence check and is safe for concurrent use.
type Serializer struct {
	fetcher serde.SchemaFetcher
}

var (
	_ serde.Serializer   = (*Serializer)(nil)
	_ serde.Deserializer = (*Serializer)(nil)
)

// NewSerializer creates a JSON serializer backed by the given registry client.
func NewSerializer(fetcher serde.SchemaFetcher) *Serializer {
	return &Serializer{fetcher: fetcher}
}

// Serialize marshals the record to JSON bytes after confirming the schema
// exists in the registry.
func (s *Serializer) Serialize(ctx context.Context, schemaName string, event audit.SalesforceAudit) ([]byte, error) {
	if err := s.checkSchema(ctx, schemaName); err != nil {
		return nil, err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, serde.NewError(formatName, "serialize", schemaName, err)
	}

	return data, nil
}

// Deserialize unmarshals JSON bytes into a record after confirming the schema
// exists. Bytes that are not JSON at all and JSON that is structurally
// incompatible with the record shape are wrapped under distinct operations so
// callers can tell them apart.
func (s *Serializer) Deserialize(ctx context.Context, schemaName string, data []byte) (audit.SalesforceAudit, error) {
	if err := s.checkSchema(ctx, schemaName); err != nil {
		return audit.SalesforceAudit{}, err
	}

	event, err := decode(data)
	if err != nil {
		return audit.SalesforceAudit{}, wrapDecode(schemaName, err)
	}

	return event, nil
}

// checkSchema performs the presence check: latest version metadata and the
// version definition are fetched, mirroring the Avro path, but the definition
// is deliberately unused.
func (s *Serializer) checkSchema(ctx context.Context, schemaName string) error {
	schema, err := s.fetcher.GetSchema(ctx, schemaName)
	if err != nil {
		return serde.NewError(formatName, "fetch-schema", schemaName, err)
	}

	if _, err := s.fetcher.GetSchemaVersion(ctx, schemaName, schema.LatestVersion); err != nil {
		return serde.NewError(formatName, "fetch-schema-version", schemaName, err)
	}

	return nil
}

// FromJSONString unmarshals a JSON document into a record without any
// registry access. Fields absent from the document keep their zero values;
// only an empty input or an unparseable document is an error.
func FromJSONString(text string) (audit.SalesforceAudit, error) {
	return FromJSONBytes([]byte(text))
}

// FromJSONBytes is the []byte form of FromJSONString.
func FromJSONBytes(data []byte) (audit.SalesforceAudit, error) {
	if len(data) == 0 {
		return audit.SalesforceAudit{}, serde.NewError(formatName, "deserialize", "", fmt.Errorf("input is empty"))
	}

	event, err := decode(data)
	if err != nil {
		return audit.SalesforceAudit{}, wrapDecode("", err)
	}

	return event, nil
}

func decode(data []byte) (audit.SalesforceAudit, error) {
	var event audit.SalesforceAudit
	if err := json.Unmarshal(data, &event); err != nil {
		return audit.SalesforceAudit{}, err
	}
	return event, nil
}

func wrapDecode(schemaName string, err error) *serde.Error {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &syntaxErr):
		return serde.NewError(formatName, "parse", schemaName, err)
	case errors.As(err, &typeErr):
		return serde.NewError(formatName, "decode", schemaName, err)
	default:
		return serde.NewError(formatName, "deserialize", schemaName, err)
	}
}
