package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsCarryStatus(t *testing.T) {
	cases := []struct {
		err    error
		code   string
		status int
	}{
		{NewValidationError("bad", nil), CodeValidationFailed, http.StatusBadRequest},
		{NewInvalidTransition("stale", nil), CodeInvalidTransition, http.StatusConflict},
		{NewNotFound("request", nil), CodeNotFound, http.StatusNotFound},
		{NewStoreUnavailable(errors.New("down")), CodeStoreUnavailable, http.StatusServiceUnavailable},
		{NewUnauthorized("who"), CodeUnauthorized, http.StatusUnauthorized},
		{NewForbidden("no"), CodeForbidden, http.StatusForbidden},
		{NewConflict("dup", nil), CodeConflict, http.StatusConflict},
		{NewInternalError(nil), CodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			domainErr := ToDomainError(tc.err)
			require.NotNil(t, domainErr)
			assert.Equal(t, tc.code, domainErr.Code)
			assert.Equal(t, tc.status, domainErr.HTTPStatus)
			assert.True(t, HasCode(tc.err, tc.code))
		})
	}
}

func TestWrappedErrorsKeepTheirCode(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := fmt.Errorf("accept: %w", NewStoreUnavailable(cause))

	assert.True(t, HasCode(err, CodeStoreUnavailable))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "dial tcp")
}

func TestToDomainErrorDefaultsToInternal(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))

	domainErr := ToDomainError(errors.New("boom"))
	assert.Equal(t, CodeInternal, domainErr.Code)
	assert.False(t, HasCode(errors.New("boom"), CodeInternal))
}

func TestNotFoundDetails(t *testing.T) {
	err := NewNotFound("request", map[string]any{"request_id": "r1"})
	domainErr := ToDomainError(err)
	assert.Equal(t, "request not found", domainErr.Message)
	assert.Equal(t, "r1", domainErr.Details["request_id"])
}
