// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Answer-set editing
	ErrCodeUnknownField      ErrorCode = "UNKNOWN_FIELD"
	ErrCodeFieldTypeMismatch ErrorCode = "FIELD_TYPE_MISMATCH"
	ErrCodeDerivedField      ErrorCode = "DERIVED_FIELD_READ_ONLY"

	ErrCodeInputValidationFailed ErrorCode = "INPUT_VALIDATION_FAILED"

	// Documents
	ErrCodeInvalidDocumentType   ErrorCode = "INVALID_DOCUMENT_TYPE"
	ErrCodeDocumentRenderFailed  ErrorCode = "DOCUMENT_RENDER_FAILED"
	ErrCodeDocumentStoreFailed   ErrorCode = "DOCUMENT_STORE_FAILED"
	ErrCodeDatabaseInsertFailed  ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodeDatabaseQueryTimeout  ErrorCode = "DATABASE_QUERY_TIMEOUT"
	ErrCodeSessionSaveFailed     ErrorCode = "SESSION_SAVE_FAILED"
	ErrCodeAccountValidation     ErrorCode = "ACCOUNT_VALIDATION_FAILED"
	ErrCodeShareDispatchFailed   ErrorCode = "SHARE_DISPATCH_FAILED"
	ErrCodeShareDispatchTimeout  ErrorCode = "SHARE_DISPATCH_TIMEOUT"
	ErrCodeShareRecipientInvalid ErrorCode = "SHARE_RECIPIENT_INVALID"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownFieldError creates a non-retryable error for a field name outside the answer-set.
func NewUnknownFieldError(field string) *StandardError {
	return newError(ErrCodeUnknownField, "Unknown answer-set field", fmt.Sprintf("field: %s", field), false)
}

// NewFieldTypeMismatchError creates a non-retryable error for a value of the wrong type.
func NewFieldTypeMismatchError(field string, err error) *StandardError {
	return newError(ErrCodeFieldTypeMismatch, "Value does not match the field type",
		fmt.Sprintf("field: %s, error: %s", field, err.Error()), false)
}

// NewDerivedFieldError creates a non-retryable error for a write to a computed field.
func NewDerivedFieldError(field string) *StandardError {
	return newError(ErrCodeDerivedField, "Derived fields cannot be written", fmt.Sprintf("field: %s", field), false)
}

// NewInputValidationFailedError creates a non-retryable schema validation error.
func NewInputValidationFailedError(details string) *StandardError {
	return newError(ErrCodeInputValidationFailed, "Job input failed schema validation", details, false)
}

func NewInvalidDocumentTypeError(documentType string) *StandardError {
	return newError(ErrCodeInvalidDocumentType, "Unsupported document type", fmt.Sprintf("documentType: %s", documentType), false)
}

// NewDocumentRenderFailedError creates a retryable PDF backend error.
func NewDocumentRenderFailedError(documentType string, err error) *StandardError {
	return newError(ErrCodeDocumentRenderFailed, "Document rendering failed",
		fmt.Sprintf("documentType: %s, error: %s", documentType, err.Error()), true)
}

// NewDocumentStoreFailedError creates a retryable Redis write error.
func NewDocumentStoreFailedError(err error) *StandardError {
	return newError(ErrCodeDocumentStoreFailed, "Rendered document could not be stored", err.Error(), true)
}

// NewDatabaseInsertFailedError creates a retryable database insert error.
func NewDatabaseInsertFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseInsertFailed, "Database insert operation failed", err.Error(), true)
}

func NewDatabaseQueryTimeoutError(operation string) *StandardError {
	return newError(ErrCodeDatabaseQueryTimeout, "Database query timeout", fmt.Sprintf("operation: %s", operation), true)
}

// NewSessionSaveFailedError creates a retryable session store error.
func NewSessionSaveFailedError(err error) *StandardError {
	return newError(ErrCodeSessionSaveFailed, "Session could not be saved", err.Error(), true)
}

// NewAccountValidationError carries the user-facing message as Message.
func NewAccountValidationError(message, field string) *StandardError {
	e := newError(ErrCodeAccountValidation, message, fmt.Sprintf("field: %s", field), false)
	e.Metadata = map[string]interface{}{"field": field}
	return e
}

// NewShareDispatchFailedError creates a retryable email/SMS delivery error.
func NewShareDispatchFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeShareDispatchFailed, "Share message delivery failed",
		fmt.Sprintf("channel: %s, error: %s", channel, err.Error()), true)
}

func NewShareDispatchTimeoutError(channel string) *StandardError {
	return newError(ErrCodeShareDispatchTimeout, "Share message delivery timeout", fmt.Sprintf("channel: %s", channel), true)
}

// NewShareRecipientInvalidError rejects a malformed email address or phone number.
func NewShareRecipientInvalidError(channel, recipient string) *StandardError {
	e := newError(ErrCodeShareRecipientInvalid, "Share recipient is not valid",
		fmt.Sprintf("channel: %s, recipient: %s", channel, recipient), false)
	e.Metadata = map[string]interface{}{"channel": channel}
	return e
}

// Generic constructors

func NewBusinessRuleError(message, details string) *StandardError {
	return newError("BUSINESS_RULE_VIOLATION", message, details, false)
}

func NewExternalServiceError(service string, err error) *StandardError {
	return newError("EXTERNAL_SERVICE_ERROR", fmt.Sprintf("External service '%s' error", service), err.Error(), true)
}

func NewTimeoutError(service string, err error) *StandardError {
	return newError("TIMEOUT_ERROR", fmt.Sprintf("Service '%s' timeout", service), err.Error(), true)
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return newError("RESOURCE_NOT_FOUND", fmt.Sprintf("Resource not found in %s", service), details, false)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes. They are identical.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeUnknownField:          "UNKNOWN_FIELD",
	ErrCodeFieldTypeMismatch:     "FIELD_TYPE_MISMATCH",
	ErrCodeDerivedField:          "DERIVED_FIELD_READ_ONLY",
	ErrCodeInputValidationFailed: "INPUT_VALIDATION_FAILED",
	ErrCodeInvalidDocumentType:   "INVALID_DOCUMENT_TYPE",
	ErrCodeDocumentRenderFailed:  "DOCUMENT_RENDER_FAILED",
	ErrCodeDocumentStoreFailed:   "DOCUMENT_STORE_FAILED",
	ErrCodeDatabaseInsertFailed:  "DATABASE_INSERT_FAILED",
	ErrCodeDatabaseQueryTimeout:  "DATABASE_QUERY_TIMEOUT",
	ErrCodeSessionSaveFailed:     "SESSION_SAVE_FAILED",
	ErrCodeAccountValidation:     "ACCOUNT_VALIDATION_FAILED",
	ErrCodeShareDispatchFailed:   "SHARE_DISPATCH_FAILED",
	ErrCodeShareDispatchTimeout:  "SHARE_DISPATCH_TIMEOUT",
	ErrCodeShareRecipientInvalid: "SHARE_RECIPIENT_INVALID",
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDocumentStoreFailed,
		ErrCodeDatabaseInsertFailed,
		ErrCodeSessionSaveFailed,
		ErrCodeShareDispatchFailed:
		return 3 // Retryable technical errors

	case ErrCodeDatabaseQueryTimeout,
		ErrCodeShareDispatchTimeout:
		return 2 // Partial retry for timeouts

	case ErrCodeDocumentRenderFailed:
		return 1

	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code) // Fallback
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "FIELD"):
		return "ANSWER_SET"
	case strings.Contains(codeStr, "DOCUMENT"):
		return "DOCUMENT"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "SESSION"):
		return "STORAGE"
	case strings.Contains(codeStr, "SHARE"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "ACCOUNT") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
