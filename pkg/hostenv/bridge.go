package hostenv

import (
	"context"
	"fmt"

	"github.com/ansumanroy/glueregistry-commons/pkg/audit"
	"github.com/ansumanroy/glueregistry-commons/pkg/registry"
	avroserde "github.com/ansumanroy/glueregistry-commons/pkg/serde/avro"
	jsonserde "github.com/ansumanroy/glueregistry-commons/pkg/serde/json"
	"go.uber.org/zap"
)

// RegistryClient is the subset of the registry client the bridge needs.
type RegistryClient interface {
	GetSchema(ctx context.Context, name string) (registry.Schema, error)
	GetSchemaVersion(ctx context.Context, name string, versionNumber int64) (registry.SchemaVersion, error)
	CreateSchema(ctx context.Context, name string, format registry.DataFormat, definition string, compatibility registry.Compatibility) (registry.VersionInfo, error)
}

var _ RegistryClient = (*registry.Client)(nil)

// OperationError is the host-facing error form. Hosts typically map errors by
// a stable operation identifier rather than by Go error types.
type OperationError struct {
	Operation string
	Host      string
	Err       error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.Host, e.Operation, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// Bridge exposes serialize/deserialize convenience operations to a hosting
// runtime, translating library errors into OperationError.
type Bridge struct {
	env    Environment
	client RegistryClient
	avro   *avroserde.Serializer
	json   *jsonserde.Serializer
	log    *zap.Logger
}

// NewBridge builds a bridge over an existing client for the given host
// environment.
func NewBridge(env Environment, client RegistryClient, log *zap.Logger) *Bridge {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bridge{
		env:    env,
		client: client,
		avro:   avroserde.NewSerializer(client),
		json:   jsonserde.NewSerializer(client),
		log:    log,
	}
}

// Connect resolves configuration from the host environment, constructs a
// registry client, and returns a bridge over it. The returned close function
// releases the client's resources.
func Connect(ctx context.Context, env Environment, log *zap.Logger) (*Bridge, func(), error) {
	cfg, err := ResolveConfig(env)
	if err != nil {
		return nil, nil, err
	}

	client, err := registry.NewClient(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	return NewBridge(env, client, log), client.Close, nil
}

// SerializeAvro encodes a record through the Avro path.
func (b *Bridge) SerializeAvro(ctx context.Context, schemaName string, event audit.SalesforceAudit) ([]byte, error) {
	data, err := b.avro.Serialize(ctx, schemaName, event)
	if err != nil {
		return nil, b.translate("serialize-avro", schemaName, err)
	}
	return data, nil
}

// DeserializeAvro decodes Avro bytes back into a record.
func (b *Bridge) DeserializeAvro(ctx context.Context, schemaName string, data []byte) (audit.SalesforceAudit, error) {
	event, err := b.avro.Deserialize(ctx, schemaName, data)
	if err != nil {
		return audit.SalesforceAudit{}, b.translate("deserialize-avro", schemaName, err)
	}
	return event, nil
}

// SerializeJSON encodes a record through the JSON path.
func (b *Bridge) SerializeJSON(ctx context.Context, schemaName string, event audit.SalesforceAudit) ([]byte, error) {
	data, err := b.json.Serialize(ctx, schemaName, event)
	if err != nil {
		return nil, b.translate("serialize-json", schemaName, err)
	}
	return data, nil
}

// DeserializeJSON decodes JSON bytes back into a record.
func (b *Bridge) DeserializeJSON(ctx context.Context, schemaName string, data []byte) (audit.SalesforceAudit, error) {
	event, err := b.json.Deserialize(ctx, schemaName, data)
	if err != nil {
		return audit.SalesforceAudit{}, b.translate("deserialize-json", schemaName, err)
	}
	return event, nil
}

// EnsureSchema creates the schema when absent and reports whether it was
// created. An existing schema is left untouched regardless of its definition.
func (b *Bridge) EnsureSchema(ctx context.Context, name string, format registry.DataFormat, definition string, compatibility registry.Compatibility) (bool, error) {
	_, err := b.client.GetSchema(ctx, name)
	if err == nil {
		return false, nil
	}
	if !registry.IsNotFound(err) {
		return false, b.translate("ensure-schema", name, err)
	}

	if _, err := b.client.CreateSchema(ctx, name, format, definition, compatibility); err != nil {
		return false, b.translate("ensure-schema", name, err)
	}

	b.log.Info("schema created by host bridge",
		zap.String("schema", name),
		zap.String("host", b.env.Name()),
	)
	return true, nil
}

func (b *Bridge) translate(operation, schemaName string, err error) error {
	b.log.Warn("host bridge operation failed",
		zap.String("operation", operation),
		zap.String("schema", schemaName),
		zap.String("host", b.env.Name()),
		zap.Error(err),
	)
	return &OperationError{
		Operation: operation,
		Host:      b.env.Name(),
		Err:       err,
	}
}
