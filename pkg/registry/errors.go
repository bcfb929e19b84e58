package registry

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/glue/types"
	"github.com/aws/smithy-go"
)

// ErrorKind classifies a registry failure. The classification is derived from
// the Glue API error type; KindUnknown covers transport failures and anything
// the service does not name.
type ErrorKind string

const (
	KindSchemaNotFound  ErrorKind = "schema-not-found"
	KindVersionNotFound ErrorKind = "version-not-found"
	KindAlreadyExists   ErrorKind = "already-exists"
	KindAccessDenied    ErrorKind = "access-denied"
	KindInvalidInput    ErrorKind = "invalid-input"
	KindUnknown         ErrorKind = "unknown"
)

// Error wraps a failure from a registry operation. It carries the operation
// and schema name for diagnostics and always wraps the underlying SDK error.
type Error struct {
	Op     string
	Schema string
	Kind   ErrorKind
	Err    error
}

func (e *Error) Error() string {
	if e.Schema != "" {
		return fmt.Sprintf("registry: %s %q: %v", e.Op, e.Schema, e.Err)
	}
	return fmt.Sprintf("registry: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a registry error for an absent schema or
// schema version.
func IsNotFound(err error) bool {
	var re *Error
	if !errors.As(err, &re) {
		return false
	}
	return re.Kind == KindSchemaNotFound || re.Kind == KindVersionNotFound
}

func wrapError(op, schema string, err error) error {
	return &Error{
		Op:     op,
		Schema: schema,
		Kind:   classify(op, err),
		Err:    err,
	}
}

func classify(op string, err error) ErrorKind {
	var (
		notFound      *types.EntityNotFoundException
		alreadyExists *types.AlreadyExistsException
		accessDenied  *types.AccessDeniedException
		invalidInput  *types.InvalidInputException
	)
	switch {
	case errors.As(err, &notFound):
		if op == "GetSchemaVersion" {
			return KindVersionNotFound
		}
		return KindSchemaNotFound
	case errors.As(err, &alreadyExists):
		return KindAlreadyExists
	case errors.As(err, &accessDenied):
		return KindAccessDenied
	case errors.As(err, &invalidInput):
		return KindInvalidInput
	default:
		return classifyByCode(op, err)
	}
}

// classifyByCode covers service errors that reach us as a generic
// smithy.APIError instead of a typed Glue exception, e.g. when returned
// through middleware that re-wraps the response.
func classifyByCode(op string, err error) ErrorKind {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return KindUnknown
	}

	switch apiErr.ErrorCode() {
	case "EntityNotFoundException":
		if op == "GetSchemaVersion" {
			return KindVersionNotFound
		}
		return KindSchemaNotFound
	case "AlreadyExistsException":
		return KindAlreadyExists
	case "AccessDeniedException":
		return KindAccessDenied
	case "InvalidInputException":
		return KindInvalidInput
	default:
		return KindUnknown
	}
}
