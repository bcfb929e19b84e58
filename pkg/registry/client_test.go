package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/glue"
	"github.com/aws/aws-sdk-go-v2/service/glue/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGlueAPI implements GlueAPI with per-operation hooks.
type fakeGlueAPI struct {
	createSchema          func(*glue.CreateSchemaInput) (*glue.CreateSchemaOutput, error)
	getSchema             func(*glue.GetSchemaInput) (*glue.GetSchemaOutput, error)
	getSchemaVersion      func(*glue.GetSchemaVersionInput) (*glue.GetSchemaVersionOutput, error)
	listSchemas           func(*glue.ListSchemasInput) (*glue.ListSchemasOutput, error)
	updateSchema          func(*glue.UpdateSchemaInput) (*glue.UpdateSchemaOutput, error)
	registerSchemaVersion func(*glue.RegisterSchemaVersionInput) (*glue.RegisterSchemaVersionOutput, error)
}

func (f *fakeGlueAPI) CreateSchema(_ context.Context, in *glue.CreateSchemaInput, _ ...func(*glue.Options)) (*glue.CreateSchemaOutput, error) {
	return f.createSchema(in)
}

func (f *fakeGlueAPI) GetSchema(_ context.Context, in *glue.GetSchemaInput, _ ...func(*glue.Options)) (*glue.GetSchemaOutput, error) {
	return f.getSchema(in)
}

func (f *fakeGlueAPI) GetSchemaVersion(_ context.Context, in *glue.GetSchemaVersionInput, _ ...func(*glue.Options)) (*glue.GetSchemaVersionOutput, error) {
	return f.getSchemaVersion(in)
}

func (f *fakeGlueAPI) ListSchemas(_ context.Context, in *glue.ListSchemasInput, _ ...func(*glue.Options)) (*glue.ListSchemasOutput, error) {
	return f.listSchemas(in)
}

func (f *fakeGlueAPI) UpdateSchema(_ context.Context, in *glue.UpdateSchemaInput, _ ...func(*glue.Options)) (*glue.UpdateSchemaOutput, error) {
	return f.updateSchema(in)
}

func (f *fakeGlueAPI) RegisterSchemaVersion(_ context.Context, in *glue.RegisterSchemaVersionInput, _ ...func(*glue.Options)) (*glue.RegisterSchemaVersionOutput, error) {
	return f.registerSchemaVersion(in)
}

func TestCreateSchema_Success(t *testing.T) {
	// Arrange
	var captured *glue.CreateSchemaInput
	api := &fakeGlueAPI{
		createSchema: func(in *glue.CreateSchemaInput) (*glue.CreateSchemaOutput, error) {
			captured = in
			return &glue.CreateSchemaOutput{
				SchemaArn:           aws.String("arn:aws:glue:schema/audit"),
				SchemaVersionId:     aws.String("v-id-1"),
				LatestSchemaVersion: aws.Int64(1),
				SchemaVersionStatus: types.SchemaVersionStatusAvailable,
			}, nil
		},
	}
	client := NewClientWithAPI(api, "audit-registry", nil)

	// Act
	info, err := client.CreateSchema(context.Background(), "SalesforceAudit", DataFormatAvro, `{"type":"record"}`, CompatibilityBackward)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(1), info.VersionNumber)
	assert.Equal(t, "v-id-1", info.VersionID)

	require.NotNil(t, captured)
	assert.Equal(t, "audit-registry", aws.ToString(captured.RegistryId.RegistryName))
	assert.Equal(t, "SalesforceAudit", aws.ToString(captured.SchemaName))
	assert.Equal(t, types.DataFormatAvro, captured.DataFormat)
	assert.Equal(t, types.CompatibilityBackward, captured.Compatibility)
}

func TestCreateSchema_AlreadyExists(t *testing.T) {
	api := &fakeGlueAPI{
		createSchema: func(*glue.CreateSchemaInput) (*glue.CreateSchemaOutput, error) {
			return nil, &types.AlreadyExistsException{Message: aws.String("schema already exists")}
		},
	}
	client := NewClientWithAPI(api, "audit-registry", nil)

	_, err := client.CreateSchema(context.Background(), "SalesforceAudit", DataFormatAvro, "{}", CompatibilityNone)

	var re *Error
	require.ErrorAs(t, err, &re)
	assert.Equal(t, KindAlreadyExists, re.Kind)
	assert.Equal(t, "CreateSchema", re.Op)
	assert.Equal(t, "SalesforceAudit", re.Schema)
}

func TestGetSchema_Success(t *testing.T) {
	api := &fakeGlueAPI{
		getSchema: func(in *glue.GetSchemaInput) (*glue.GetSchemaOutput, error) {
			assert.Equal(t, "audit-registry", aws.ToString(in.SchemaId.RegistryName))
			assert.Equal(t, "SalesforceAudit", aws.ToString(in.SchemaId.SchemaName))
			return &glue.GetSchemaOutput{
				SchemaName:          aws.String("SalesforceAudit"),
				DataFormat:          types.DataFormatAvro,
				Compatibility:       types.CompatibilityBackward,
				Description:         aws.String("audit events"),
				LatestSchemaVersion: aws.Int64(3),
				NextSchemaVersion:   aws.Int64(4),
				SchemaStatus:        types.SchemaStatusAvailable,
			}, nil
		},
	}
	client := NewClientWithAPI(api, "audit-registry", nil)

	schema, err := client.GetSchema(context.Background(), "SalesforceAudit")

	require.NoError(t, err)
	assert.Equal(t, DataFormatAvro, schema.DataFormat)
	assert.Equal(t, int64(3), schema.LatestVersion)
	assert.Equal(t, "audit events", schema.Description)
}

func TestGetSchema_NotFound(t *testing.T) {
	api := &fakeGlueAPI{
		getSchema: func(*glue.GetSchemaInput) (*glue.GetSchemaOutput, error) {
			return nil, &types.EntityNotFoundException{Message: aws.String("schema not found")}
		},
	}
	client := NewClientWithAPI(api, "audit-registry", nil)

	_, err := client.GetSchema(context.Background(), "Missing")

	var re *Error
	require.ErrorAs(t, err, &re)
	assert.Equal(t, KindSchemaNotFound, re.Kind)
	assert.True(t, IsNotFound(err))
}

func TestGetSchemaVersion_Success(t *testing.T) {
	api := &fakeGlueAPI{
		getSchemaVersion: func(in *glue.GetSchemaVersionInput) (*glue.GetSchemaVersionOutput, error) {
			assert.Equal(t, int64(3), aws.ToInt64(in.SchemaVersionNumber.VersionNumber))
			return &glue.GetSchemaVersionOutput{
				VersionNumber:    aws.Int64(3),
				SchemaDefinition: aws.String(`{"type":"record"}`),
				DataFormat:       types.DataFormatAvro,
				Status:           types.SchemaVersionStatusAvailable,
			}, nil
		},
	}
	client := NewClientWithAPI(api, "audit-registry", nil)

	version, err := client.GetSchemaVersion(context.Background(), "SalesforceAudit", 3)

	require.NoError(t, err)
	assert.Equal(t, int64(3), version.VersionNumber)
	assert.Equal(t, `{"type":"record"}`, version.Definition)
}

func TestGetSchemaVersion_NotFound(t *testing.T) {
	api := &fakeGlueAPI{
		getSchemaVersion: func(*glue.GetSchemaVersionInput) (*glue.GetSchemaVersionOutput, error) {
			return nil, &types.EntityNotFoundException{Message: aws.String("version not found")}
		},
	}
	client := NewClientWithAPI(api, "audit-registry", nil)

	_, err := client.GetSchemaVersion(context.Background(), "SalesforceAudit", 99)

	var re *Error
	require.ErrorAs(t, err, &re)
	assert.Equal(t, KindVersionNotFound, re.Kind)
	assert.True(t, IsNotFound(err))
}

func TestListSchemas_Empty(t *testing.T) {
	api := &fakeGlueAPI{
		listSchemas: func(*glue.ListSchemasInput) (*glue.ListSchemasOutput, error) {
			return &glue.ListSchemasOutput{}, nil
		},
	}
	client := NewClientWithAPI(api, "audit-registry", nil)

	schemas, err := client.ListSchemas(context.Background())

	require.NoError(t, err)
	assert.Empty(t, schemas)
}

func TestListSchemas_MapsSummaries(t *testing.T) {
	api := &fakeGlueAPI{
		listSchemas: func(*glue.ListSchemasInput) (*glue.ListSchemasOutput, error) {
			return &glue.ListSchemasOutput{
				Schemas: []types.SchemaListItem{
					{SchemaName: aws.String("SalesforceAudit"), SchemaStatus: types.SchemaStatusAvailable},
					{SchemaName: aws.String("SalesAuditJSON"), Description: aws.String("json variant")},
				},
			}, nil
		},
	}
	client := NewClientWithAPI(api, "audit-registry", nil)

	schemas, err := client.ListSchemas(context.Background())

	require.NoError(t, err)
	require.Len(t, schemas, 2)
	assert.Equal(t, "SalesforceAudit", schemas[0].Name)
	assert.Equal(t, "json variant", schemas[1].Description)
}

func TestUpdateSchemaCompatibility_PreservesDescription(t *testing.T) {
	var captured *glue.UpdateSchemaInput
	api := &fakeGlueAPI{
		getSchema: func(*glue.GetSchemaInput) (*glue.GetSchemaOutput, error) {
			return &glue.GetSchemaOutput{
				SchemaName:          aws.String("SalesforceAudit"),
				Description:         aws.String("keep me"),
				LatestSchemaVersion: aws.Int64(2),
			}, nil
		},
		updateSchema: func(in *glue.UpdateSchemaInput) (*glue.UpdateSchemaOutput, error) {
			captured = in
			return &glue.UpdateSchemaOutput{}, nil
		},
	}
	client := NewClientWithAPI(api, "audit-registry", nil)

	err := client.UpdateSchemaCompatibility(context.Background(), "SalesforceAudit", CompatibilityFull)

	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.Equal(t, types.CompatibilityFull, captured.Compatibility)
	assert.Equal(t, "keep me", aws.ToString(captured.Description))
}

func TestUpdateSchemaCompatibility_SchemaAbsent(t *testing.T) {
	api := &fakeGlueAPI{
		getSchema: func(*glue.GetSchemaInput) (*glue.GetSchemaOutput, error) {
			return nil, &types.EntityNotFoundException{Message: aws.String("nope")}
		},
	}
	client := NewClientWithAPI(api, "audit-registry", nil)

	err := client.UpdateSchemaCompatibility(context.Background(), "Missing", CompatibilityFull)

	assert.True(t, IsNotFound(err))
}

func TestRegisterSchemaVersion_CompatibilityRejected(t *testing.T) {
	api := &fakeGlueAPI{
		registerSchemaVersion: func(*glue.RegisterSchemaVersionInput) (*glue.RegisterSchemaVersionOutput, error) {
			return nil, &types.InvalidInputException{Message: aws.String("incompatible schema")}
		},
	}
	client := NewClientWithAPI(api, "audit-registry", nil)

	_, err := client.RegisterSchemaVersion(context.Background(), "SalesforceAudit", "{}")

	var re *Error
	require.ErrorAs(t, err, &re)
	assert.Equal(t, KindInvalidInput, re.Kind)
}

func TestRegisterSchemaVersion_Success(t *testing.T) {
	api := &fakeGlueAPI{
		registerSchemaVersion: func(in *glue.RegisterSchemaVersionInput) (*glue.RegisterSchemaVersionOutput, error) {
			assert.Equal(t, "SalesforceAudit", aws.ToString(in.SchemaId.SchemaName))
			return &glue.RegisterSchemaVersionOutput{
				SchemaVersionId: aws.String("v-id-2"),
				VersionNumber:   aws.Int64(2),
				Status:          types.SchemaVersionStatusAvailable,
			}, nil
		},
	}
	client := NewClientWithAPI(api, "audit-registry", nil)

	info, err := client.RegisterSchemaVersion(context.Background(), "SalesforceAudit", "{}")

	require.NoError(t, err)
	assert.Equal(t, int64(2), info.VersionNumber)
}

func TestErrorWrapping_KeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	api := &fakeGlueAPI{
		getSchema: func(*glue.GetSchemaInput) (*glue.GetSchemaOutput, error) {
			return nil, cause
		},
	}
	client := NewClientWithAPI(api, "audit-registry", nil)

	_, err := client.GetSchema(context.Background(), "SalesforceAudit")

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)

	var re *Error
	require.ErrorAs(t, err, &re)
	assert.Equal(t, KindUnknown, re.Kind)
	assert.False(t, IsNotFound(err))
}

func TestClose_Idempotent(t *testing.T) {
	client := NewClientWithAPI(&fakeGlueAPI{}, "audit-registry", nil)

	// No underlying HTTP client owned, both calls are no-ops.
	client.Close()
	client.Close()
}
