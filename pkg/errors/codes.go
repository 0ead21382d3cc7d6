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

// Common error codes.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeDatabaseError      ErrorCode = "COMMON_012"
	ErrCodeCacheError         ErrorCode = "COMMON_013"
	ErrCodeExternalService    ErrorCode = "COMMON_014"
	ErrCodeFeatureDisabled    ErrorCode = "COMMON_015"
)

// Molecule module error codes.
const (
	ErrCodeMoleculeInvalidSMILES   ErrorCode = "MOL_001"
	ErrCodeMoleculeRenderFailed    ErrorCode = "MOL_011"
	ErrCodeFunctionalGroupInvalid  ErrorCode = "MOL_016"
	ErrCodeFunctionalGroupAttach   ErrorCode = "MOL_017"
	ErrCodeFunctionalGroupBadIndex ErrorCode = "MOL_018"
)

// Short aliases used at call sites.
const (
	CodeOK           = ErrorCode("OK")
	CodeUnknown      = ErrorCode("UNKNOWN")
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound

	CodeInvalidBaseStructure = ErrCodeMoleculeInvalidSMILES
	CodeInvalidFragment      = ErrCodeFunctionalGroupInvalid
	CodeAttachFailed         = ErrCodeFunctionalGroupAttach
	CodeInvalidGroupIndex    = ErrCodeFunctionalGroupBadIndex
)

// Kind groups error codes into the failure categories surfaced to users.
type Kind string

const (
	KindInputSyntax         Kind = "InputSyntaxError"
	KindStructureValidation Kind = "StructureValidationError"
	KindInternal            Kind = "InternalError"
	KindOther               Kind = "Error"
)

var codeKinds = map[ErrorCode]Kind{
	ErrCodeMoleculeInvalidSMILES:   KindInputSyntax,
	ErrCodeFunctionalGroupInvalid:  KindInputSyntax,
	ErrCodeFunctionalGroupBadIndex: KindInputSyntax,
	ErrCodeFunctionalGroupAttach:   KindStructureValidation,
	ErrCodeInternal:                KindInternal,
	ErrCodeMoleculeRenderFailed:    KindInternal,
}

// KindForCode returns the failure category of code.
func KindForCode(code ErrorCode) Kind {
	if k, ok := codeKinds[code]; ok {
		return k
	}
	return KindOther
}

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusBadGateway,
	ErrCodeFeatureDisabled:    http.StatusNotImplemented,

	ErrCodeMoleculeInvalidSMILES:   http.StatusBadRequest,
	ErrCodeFunctionalGroupInvalid:  http.StatusBadRequest,
	ErrCodeFunctionalGroupBadIndex: http.StatusBadRequest,
	ErrCodeFunctionalGroupAttach:   http.StatusUnprocessableEntity,
	ErrCodeMoleculeRenderFailed:    http.StatusInternalServerError,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization error",
	ErrCodeDatabaseError:      "database error",
	ErrCodeCacheError:         "cache error",
	ErrCodeExternalService:    "external service error",
	ErrCodeFeatureDisabled:    "feature disabled",

	ErrCodeMoleculeInvalidSMILES:   "invalid base structure",
	ErrCodeFunctionalGroupInvalid:  "invalid functional group descriptor",
	ErrCodeFunctionalGroupBadIndex: "invalid functional group index",
	ErrCodeFunctionalGroupAttach:   "failed to add functional group",
	ErrCodeMoleculeRenderFailed:    "molecule rendering failed",
}

// HTTPStatusForCode returns the HTTP status for an ErrorCode, 500 when unmapped.
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

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 1 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}

//Personal.AI order the ending
