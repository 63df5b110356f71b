package domain

import "errors"

var (
	ErrNotFound             = errors.New("artifact not found")
	ErrVersionAlreadyExists = errors.New("version already exists for this artifact")
	ErrInvalidType          = errors.New("artifact type must be one of model, dataset, code")
	ErrInvalidPattern       = errors.New("invalid search pattern")
	ErrMissingArgument      = errors.New("artifact_type, artifact_id, and version are required")

	// Fetcher outcomes. Always absorbed into a zero metric score, never
	// surfaced to the registration caller.
	ErrFetchUnavailable = errors.New("provenance source unavailable")
	ErrFetchNotFound    = errors.New("provenance resource not found")
	ErrFetchMalformed   = errors.New("provenance resource malformed")
	ErrUnsupportedKind  = errors.New("unsupported source kind")
)
