package apperrors

// ErrorCode identifies the class of an application error.
type ErrorCode string

const (
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"

	CodeNotFound             ErrorCode = "NOT_FOUND"
	CodeValidationFailed     ErrorCode = "VALIDATION_FAILED"
	CodeLimitExceeded        ErrorCode = "LIMIT_EXCEEDED"
	CodeRangeNotSatisfiable  ErrorCode = "RANGE_NOT_SATISFIABLE"
	CodeUnsupportedMediaType ErrorCode = "UNSUPPORTED_MEDIA_TYPE"
)
