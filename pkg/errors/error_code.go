package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidType          ErrorCode = 102
	ErrCodeInvalidPeriod        ErrorCode = 103
	ErrCodeInvalidSpan          ErrorCode = 104
	ErrCodeMissingParameter     ErrorCode = 105
	ErrCodeInvalidTimeRange     ErrorCode = 107

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound     ErrorCode = 200
	ErrCodeQueryFailed      ErrorCode = 201
	ErrCodeStoreUnavailable ErrorCode = 202
	ErrCodeWriteFailed      ErrorCode = 203

	// Indicator errors (300-399)
	ErrCodeIndicatorNotFound      ErrorCode = 300
	ErrCodeIndicatorAlreadyExists ErrorCode = 301
	ErrCodeIndicatorCalculation   ErrorCode = 302

	// Market data errors (400-499)
	ErrCodeFetchFailed        ErrorCode = 400
	ErrCodeParseFailed        ErrorCode = 401
	ErrCodeInvalidProvider    ErrorCode = 402
	ErrCodeProvidersExhausted ErrorCode = 403
	ErrCodeQuoteUnavailable   ErrorCode = 404

	// Ticker universe errors (500-599)
	ErrCodeUniverseFetchFailed ErrorCode = 500
	ErrCodeUniverseEmpty       ErrorCode = 501
)
