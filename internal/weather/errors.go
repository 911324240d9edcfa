package weather

import "codeberg.org/mutker/weatherdog/internal/errors"

const (
	// Configuration Errors
	ErrInvalidConfig = errors.ErrInvalidConfig
	ErrMissingAPIKey = errors.ErrorCode("weather_missing_api_key")
	ErrMissingZip    = errors.ErrorCode("weather_missing_zip_code")

	// Request Errors
	ErrBuildRequest  = errors.ErrorCode("weather_build_request_failed")
	ErrRequestFailed = errors.ErrorCode("weather_request_failed")
	ErrBadStatus     = errors.ErrorCode("weather_unexpected_status")
	ErrCircuitOpen   = errors.ErrorCode("weather_circuit_open")

	// Response Errors
	ErrDecodeFailed = errors.ErrorCode("weather_decode_failed")
	ErrMissingField = errors.ErrorCode("weather_missing_field")
)
