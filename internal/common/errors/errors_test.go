package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		name        string
		err         *StandardError
		wantCode    string
		wantRetries int
	}{
		{
			name:        "business error is thrown without retries",
			err:         NewUnknownFieldError("favouriteColour"),
			wantCode:    "UNKNOWN_FIELD",
			wantRetries: 0,
		},
		{
			name:        "storage error is retried",
			err:         NewDocumentStoreFailedError(stderrors.New("connection reset")),
			wantCode:    "DOCUMENT_STORE_FAILED",
			wantRetries: 3,
		},
		{
			name:        "timeout is retried twice",
			err:         NewShareDispatchTimeoutError("email"),
			wantCode:    "SHARE_DISPATCH_TIMEOUT",
			wantRetries: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmn := ConvertToBPMNError(tt.err)

			assert.Equal(t, tt.wantCode, bpmn.Code)
			assert.Equal(t, tt.wantRetries, bpmn.Retries)
			vars := bpmn.ToErrorVariables()
			assert.Equal(t, tt.wantCode, vars["errorCode"])
			assert.Equal(t, string(tt.err.Code), vars["originalErrorCode"])
		})
	}
}

func TestConvertToBPMNError_CarriesMetadata(t *testing.T) {
	bpmn := ConvertToBPMNError(NewAccountValidationError("Le mot de passe doit contenir au moins 6 caractères", "password"))

	assert.Equal(t, "ACCOUNT_VALIDATION_FAILED", bpmn.Code)
	assert.Equal(t, "password", bpmn.ToErrorVariables()["field"])
	assert.False(t, bpmn.Retryable)
}

func TestNormalize(t *testing.T) {
	wrapped := fmt.Errorf("execute: %w", NewSessionSaveFailedError(stderrors.New("boom")))
	assert.Equal(t, ErrCodeSessionSaveFailed, Normalize(wrapped).Code)

	timeout := Normalize(fmt.Errorf("send: %w", context.DeadlineExceeded))
	assert.Equal(t, ErrorCode("TIMEOUT_ERROR"), timeout.Code)
	assert.True(t, timeout.Retryable)

	other := Normalize(stderrors.New("strange"))
	require.NotNil(t, other)
	assert.Equal(t, ErrorCode("INTERNAL_ERROR"), other.Code)
	assert.Equal(t, "strange", other.Details)
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "ANSWER_SET", GetErrorCategory(ErrCodeFieldTypeMismatch))
	assert.Equal(t, "DOCUMENT", GetErrorCategory(ErrCodeDocumentRenderFailed))
	assert.Equal(t, "STORAGE", GetErrorCategory(ErrCodeSessionSaveFailed))
	assert.Equal(t, "NOTIFICATION", GetErrorCategory(ErrCodeShareDispatchFailed))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInputValidationFailed))
	assert.Equal(t, "OTHER", GetErrorCategory("SOMETHING"))

	assert.True(t, IsRetryableErrorCode(ErrCodeDatabaseInsertFailed))
	assert.False(t, IsRetryableErrorCode(ErrCodeAccountValidation))
}
