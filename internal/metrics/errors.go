package metrics

import "codeberg.org/mutker/weatherdog/internal/errors"

const (
	// Configuration Errors
	ErrInvalidConfig      = errors.ErrInvalidConfig
	ErrMissingCredentials = errors.ErrorCode("metrics_missing_credentials")

	// Submission Errors
	ErrSubmitFailed = errors.ErrorCode("metrics_submit_failed")

	// Operation Errors
	ErrCancelled = errors.ErrorCode("metrics_cancelled")
)
