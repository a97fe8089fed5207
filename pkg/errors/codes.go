package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_004"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_005"
	ErrCodeSerialization      ErrorCode = "COMMON_006"
	ErrCodeCacheError         ErrorCode = "COMMON_007"
	ErrCodeNotImplemented     ErrorCode = "COMMON_008"
)

// Assessment Module Error Codes
const (
	ErrCodeAssessmentInvalid ErrorCode = "ASMT_001"
)

// Generation Module Error Codes (external model backend failures)
const (
	ErrCodeGenerationUnreachable ErrorCode = "GEN_001"
	ErrCodeGenerationTimeout     ErrorCode = "GEN_002"
	ErrCodeGenerationAuth        ErrorCode = "GEN_003"
	ErrCodeGenerationQuota       ErrorCode = "GEN_004"
	ErrCodeGenerationEmpty       ErrorCode = "GEN_005"
)

// Recovery Module Error Codes (model replied, reply unusable)
const (
	ErrCodeRecoveryNoJSON ErrorCode = "REC_001"
	ErrCodeRecoveryParse  ErrorCode = "REC_002"
	ErrCodeRecoverySchema ErrorCode = "REC_003"
)

// Aliases used at call sites for readability.
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeRateLimit    = ErrCodeTooManyRequests
	CodeUnknown      = ErrorCode("")
	CodeOK           = ErrorCode("OK")
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes. Validation failures
// are client errors; every generation and recovery failure is reported as a
// plain 500 so that the presentation layer never has to reason about the
// model-backend taxonomy.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodeAssessmentInvalid: http.StatusBadRequest,

	ErrCodeGenerationUnreachable: http.StatusInternalServerError,
	ErrCodeGenerationTimeout:     http.StatusInternalServerError,
	ErrCodeGenerationAuth:        http.StatusInternalServerError,
	ErrCodeGenerationQuota:       http.StatusInternalServerError,
	ErrCodeGenerationEmpty:       http.StatusInternalServerError,

	ErrCodeRecoveryNoJSON: http.StatusInternalServerError,
	ErrCodeRecoveryParse:  http.StatusInternalServerError,
	ErrCodeRecoverySchema: http.StatusInternalServerError,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeTooManyRequests:    "too many requests",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeCacheError:         "cache error",
	ErrCodeNotImplemented:     "not implemented",

	ErrCodeAssessmentInvalid: "assessment validation failed",

	ErrCodeGenerationUnreachable: "model backend unreachable",
	ErrCodeGenerationTimeout:     "model call timed out",
	ErrCodeGenerationAuth:        "model authentication failed",
	ErrCodeGenerationQuota:       "model quota exhausted",
	ErrCodeGenerationEmpty:       "model returned empty content",

	ErrCodeRecoveryNoJSON: "no JSON object in model reply",
	ErrCodeRecoveryParse:  "embedded JSON could not be parsed",
	ErrCodeRecoverySchema: "model reply violates report schema",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}

//Personal.AI order the ending
