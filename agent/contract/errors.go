package contract

import "errors"

var (
	ErrModelInvoke       = errors.New("model invoke failed")
	ErrSchemaViolation   = errors.New("model response violates schema")
	ErrPromptMissing     = errors.New("required prompt is missing")
	ErrValidation        = errors.New("validation failed")
	ErrMissingCredential = errors.New("model gateway credential is missing")
	ErrToolHopLimit      = errors.New("tool call limit reached")
)
