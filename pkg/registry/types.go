package registry

import "github.com/aws/aws-sdk-go-v2/service/glue/types"

// DataFormat identifies the format a schema definition is written in.
type DataFormat string

const (
	DataFormatAvro     DataFormat = "AVRO"
	DataFormatJSON     DataFormat = "JSON"
	DataFormatProtobuf DataFormat = "PROTOBUF"
)

func (f DataFormat) toGlue() types.DataFormat {
	return types.DataFormat(f)
}

// Compatibility is a registry-enforced rule governing which schema changes
// are allowed between versions. It is set at creation or update time and
// enforced remotely, never locally.
type Compatibility string

const (
	CompatibilityBackward    Compatibility = "BACKWARD"
	CompatibilityBackwardAll Compatibility = "BACKWARD_ALL"
	CompatibilityForward     Compatibility = "FORWARD"
	CompatibilityForwardAll  Compatibility = "FORWARD_ALL"
	CompatibilityFull        Compatibility = "FULL"
	CompatibilityFullAll     Compatibility = "FULL_ALL"
	CompatibilityNone        Compatibility = "NONE"
	CompatibilityDisabled    Compatibility = "DISABLED"
)

func (c Compatibility) toGlue() types.Compatibility {
	return types.Compatibility(c)
}

// Schema describes a named schema as known to the registry at fetch time.
type Schema struct {
	Name          string
	ARN           string
	DataFormat    DataFormat
	Compatibility Compatibility
	Description   string
	LatestVersion int64
	NextVersion   int64
	Status        string
}

// SchemaVersion is an immutable snapshot of one version of a schema.
type SchemaVersion struct {
	VersionNumber int64
	VersionID     string
	Definition    string
	DataFormat    DataFormat
	Status        string
}

// VersionInfo is returned by write operations that produce a new schema version.
type VersionInfo struct {
	SchemaARN     string
	VersionID     string
	VersionNumber int64
	Status        string
}

// SchemaSummary is one entry of a schema listing.
type SchemaSummary struct {
	Name        string
	ARN         string
	Description string
	Status      string
}
