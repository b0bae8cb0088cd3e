package errors

import (
	stdErrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeUnauthorized, status: http.StatusUnauthorized, publicMsg: "authentication required"},
		{code: CodeForbidden, status: http.StatusForbidden, publicMsg: "access denied"},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeConflict, status: http.StatusConflict, publicMsg: "conflict detected", detailsOK: true},
		{code: CodeIntegrity, status: http.StatusBadRequest, publicMsg: "payload integrity check failed"},
		{code: CodeRateLimit, status: http.StatusTooManyRequests, publicMsg: "rate limit exceeded"},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, detailsOK: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			meta := MetadataFor(tt.code)
			assert.Equal(t, tt.status, meta.HTTPStatus)
			assert.Equal(t, tt.publicMsg, meta.PublicMessage)
			assert.Equal(t, tt.retryable, meta.Retryable)
			assert.Equal(t, tt.detailsOK, meta.DetailsAllowed)
		})
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	assert.Equal(t, http.StatusInternalServerError, meta.HTTPStatus)
}

func TestNewAndWithDetails(t *testing.T) {
	err := New(CodeValidation, "missing phone")
	assert.Equal(t, CodeValidation, err.Code())
	assert.Equal(t, "missing phone", err.Message())
	assert.Nil(t, err.Details())

	err.WithDetails(map[string]any{"field": "phone"})
	require.NotNil(t, err.Details())
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("row locked")
	wrapped := Wrap(CodeConflict, cause, "decrement stock")

	assert.Equal(t, CodeConflict, wrapped.Code())
	assert.True(t, stdErrors.Is(wrapped, cause))

	// A nil cause is legal; the chain simply ends at the coded error.
	fromNil := Wrap(CodeInternal, nil, "no cause")
	assert.NoError(t, fromNil.Unwrap())
}

func TestAsReturnsTypedError(t *testing.T) {
	err := New(CodeForbidden, "admin only")
	got := As(err)
	require.NotNil(t, got)
	assert.Equal(t, CodeForbidden, got.Code())

	assert.Nil(t, As(nil))
	assert.Nil(t, As(stdErrors.New("plain")))
}
