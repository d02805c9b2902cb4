package errors

// ErrorCode is the machine-readable code carried in every error body.
type ErrorCode string

const (
	ErrCodeInvalidInput    ErrorCode = "INVALID_INPUT"
	ErrCodeEmptyInput      ErrorCode = "EMPTY_INPUT"
	ErrCodePayloadTooLarge ErrorCode = "PAYLOAD_TOO_LARGE"
	ErrCodeAlreadyExists   ErrorCode = "ALREADY_EXISTS"
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"

	// ErrCodeUnauthorized rejects credentials; ErrCodeInvalidToken rejects a
	// token. Neither says why.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"

	// ErrCodeServiceUnavailable is the only retryable code: the readiness
	// check answers with it while a component is unhealthy.
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"
)

// Retryable reports whether a client may repeat the request unchanged.
func (c ErrorCode) Retryable() bool {
	return c == ErrCodeServiceUnavailable
}
