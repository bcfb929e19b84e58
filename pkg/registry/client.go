// Package registry wraps the AWS Glue Schema Registry API with operations
// scoped to a single registry chosen at construction time.
//
// The wrapper is intentionally thin: every call is a single synchronous
// request/response round trip, failures are wrapped once into *Error and
// surfaced, and nothing is retried or cached locally. The underlying Glue
// client is safe for concurrent use, and the wrapper holds no mutable state
// of its own, so a Client may be shared freely between goroutines.
package registry

import (
	"context"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/glue"
	"github.com/aws/aws-sdk-go-v2/service/glue/types"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// GlueAPI is the subset of the Glue service client used by this package.
type GlueAPI interface {
	CreateSchema(ctx context.Context, params *glue.CreateSchemaInput, optFns ...func(*glue.Options)) (*glue.CreateSchemaOutput, error)
	GetSchema(ctx context.Context, params *glue.GetSchemaInput, optFns ...func(*glue.Options)) (*glue.GetSchemaOutput, error)
	GetSchemaVersion(ctx context.Context, params *glue.GetSchemaVersionInput, optFns ...func(*glue.Options)) (*glue.GetSchemaVersionOutput, error)
	ListSchemas(ctx context.Context, params *glue.ListSchemasInput, optFns ...func(*glue.Options)) (*glue.ListSchemasOutput, error)
	UpdateSchema(ctx context.Context, params *glue.UpdateSchemaInput, optFns ...func(*glue.Options)) (*glue.UpdateSchemaOutput, error)
	RegisterSchemaVersion(ctx context.Context, params *glue.RegisterSchemaVersionInput, optFns ...func(*glue.Options)) (*glue.RegisterSchemaVersionOutput, error)
}

var _ GlueAPI = (*glue.Client)(nil)

// Client is a thin wrapper over the Glue Schema Registry API, scoped to one
// registry name. Construct it with NewClient or NewClientWithAPI.
type Client struct {
	api          GlueAPI
	registryName string
	httpClient   *http.Client
	log          *zap.Logger
}

// NewClient builds a Client from the resolved configuration. Credentials fall
// back to the SDK default chain (env vars, shared credentials file, instance
// role) unless static keys are present in cfg.
func NewClient(ctx context.Context, cfg Config, log *zap.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithHTTPClient(httpClient),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, wrapError("LoadConfig", "", err)
	}

	api := glue.NewFromConfig(awsCfg, func(o *glue.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	log.Info("glue schema registry client created",
		zap.String("registry", cfg.RegistryName),
		zap.String("region", cfg.Region),
	)

	return &Client{
		api:          api,
		registryName: cfg.RegistryName,
		httpClient:   httpClient,
		log:          log,
	}, nil
}

// NewClientWithAPI wraps an existing Glue API client. Useful for tests and
// for callers that manage their own SDK configuration.
func NewClientWithAPI(api GlueAPI, registryName string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		api:          api,
		registryName: registryName,
		log:          log,
	}
}

// RegistryName returns the registry all operations of this client target.
func (c *Client) RegistryName() string {
	return c.registryName
}

// CreateSchema registers a brand new schema with its first version. The
// definition is validated remotely against the data format; an existing name
// or an invalid definition surfaces as *Error.
func (c *Client) CreateSchema(ctx context.Context, name string, format DataFormat, definition string, compatibility Compatibility) (VersionInfo, error) {
	out, err := c.api.CreateSchema(ctx, &glue.CreateSchemaInput{
		RegistryId:       &types.RegistryId{RegistryName: aws.String(c.registryName)},
		SchemaName:       aws.String(name),
		DataFormat:       format.toGlue(),
		Compatibility:    compatibility.toGlue(),
		SchemaDefinition: aws.String(definition),
	})
	if err != nil {
		return VersionInfo{}, wrapError("CreateSchema", name, err)
	}

	c.log.Debug("schema created",
		zap.String("schema", name),
		zap.Int64("latestVersion", aws.ToInt64(out.LatestSchemaVersion)),
	)

	return VersionInfo{
		SchemaARN:     aws.ToString(out.SchemaArn),
		VersionID:     aws.ToString(out.SchemaVersionId),
		VersionNumber: aws.ToInt64(out.LatestSchemaVersion),
		Status:        string(out.SchemaVersionStatus),
	}, nil
}

// GetSchema fetches the current metadata of a schema, including its latest
// version number.
func (c *Client) GetSchema(ctx context.Context, name string) (Schema, error) {
	out, err := c.api.GetSchema(ctx, &glue.GetSchemaInput{
		SchemaId: c.schemaID(name),
	})
	if err != nil {
		return Schema{}, wrapError("GetSchema", name, err)
	}

	return Schema{
		Name:          aws.ToString(out.SchemaName),
		ARN:           aws.ToString(out.SchemaArn),
		DataFormat:    DataFormat(out.DataFormat),
		Compatibility: Compatibility(out.Compatibility),
		Description:   aws.ToString(out.Description),
		LatestVersion: aws.ToInt64(out.LatestSchemaVersion),
		NextVersion:   aws.ToInt64(out.NextSchemaVersion),
		Status:        string(out.SchemaStatus),
	}, nil
}

// GetSchemaVersion fetches the definition text of one specific version.
func (c *Client) GetSchemaVersion(ctx context.Context, name string, versionNumber int64) (SchemaVersion, error) {
	out, err := c.api.GetSchemaVersion(ctx, &glue.GetSchemaVersionInput{
		SchemaId: c.schemaID(name),
		SchemaVersionNumber: &types.SchemaVersionNumber{
			VersionNumber: aws.Int64(versionNumber),
		},
	})
	if err != nil {
		return SchemaVersion{}, wrapError("GetSchemaVersion", name, err)
	}

	return SchemaVersion{
		VersionNumber: aws.ToInt64(out.VersionNumber),
		VersionID:     aws.ToString(out.SchemaVersionId),
		Definition:    aws.ToString(out.SchemaDefinition),
		DataFormat:    DataFormat(out.DataFormat),
		Status:        string(out.Status),
	}, nil
}

// ListSchemas returns the schemas of this registry. Only the first page the
// service returns is consumed; an empty registry yields an empty slice.
func (c *Client) ListSchemas(ctx context.Context) ([]SchemaSummary, error) {
	out, err := c.api.ListSchemas(ctx, &glue.ListSchemasInput{
		RegistryId: &types.RegistryId{RegistryName: aws.String(c.registryName)},
	})
	if err != nil {
		return nil, wrapError("ListSchemas", "", err)
	}

	return lo.Map(out.Schemas, func(item types.SchemaListItem, _ int) SchemaSummary {
		return SchemaSummary{
			Name:        aws.ToString(item.SchemaName),
			ARN:         aws.ToString(item.SchemaArn),
			Description: aws.ToString(item.Description),
			Status:      string(item.SchemaStatus),
		}
	}), nil
}

// UpdateSchemaCompatibility switches the compatibility mode of a schema. The
// current description is read first and passed through, since UpdateSchema
// would otherwise clear it.
func (c *Client) UpdateSchemaCompatibility(ctx context.Context, name string, compatibility Compatibility) error {
	schema, err := c.GetSchema(ctx, name)
	if err != nil {
		return err
	}

	input := &glue.UpdateSchemaInput{
		SchemaId:      c.schemaID(name),
		Compatibility: compatibility.toGlue(),
		SchemaVersionNumber: &types.SchemaVersionNumber{
			LatestVersion: true,
		},
	}
	if schema.Description != "" {
		input.Description = aws.String(schema.Description)
	}

	if _, err := c.api.UpdateSchema(ctx, input); err != nil {
		return wrapError("UpdateSchema", name, err)
	}

	c.log.Debug("schema compatibility updated",
		zap.String("schema", name),
		zap.String("compatibility", string(compatibility)),
	)
	return nil
}

// RegisterSchemaVersion submits a new definition as the next version of an
// existing schema. The remote compatibility check may reject it.
func (c *Client) RegisterSchemaVersion(ctx context.Context, name string, definition string) (VersionInfo, error) {
	out, err := c.api.RegisterSchemaVersion(ctx, &glue.RegisterSchemaVersionInput{
		SchemaId:         c.schemaID(name),
		SchemaDefinition: aws.String(definition),
	})
	if err != nil {
		return VersionInfo{}, wrapError("RegisterSchemaVersion", name, err)
	}

	return VersionInfo{
		VersionID:     aws.ToString(out.SchemaVersionId),
		VersionNumber: aws.ToInt64(out.VersionNumber),
		Status:        string(out.Status),
	}, nil
}

// Close releases idle connections held by the client. It is idempotent and
// safe to call on a client built with NewClientWithAPI.
func (c *Client) Close() {
	if c.httpClient != nil {
		c.httpClient.CloseIdleConnections()
	}
}

func (c *Client) schemaID(name string) *types.SchemaId {
	return &types.SchemaId{
		RegistryName: aws.String(c.registryName),
		SchemaName:   aws.String(name),
	}
}
