package util_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/spec-kit/hospital-console/pkg/util"
)

func TestDomainErrorIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("calling backend: %w", apperrors.NewSessionInvalidated(""))

	assert.ErrorIs(t, err, apperrors.ErrSessionInvalidated)
	assert.NotErrorIs(t, err, apperrors.ErrAuthenticationFailed)
}

func TestNewAuthenticationFailureKeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := apperrors.NewAuthenticationFailure("", 0, cause)

	assert.ErrorIs(t, err, apperrors.ErrAuthenticationFailed)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "invalid username or password")
}

func TestNewUpstreamErrorMapping(t *testing.T) {
	cases := map[int]string{
		http.StatusBadRequest:          apperrors.CodeValidationFailed,
		http.StatusForbidden:           apperrors.CodeForbidden,
		http.StatusNotFound:            apperrors.CodeNotFound,
		http.StatusConflict:            apperrors.CodeConflict,
		http.StatusInternalServerError: apperrors.CodeUpstream,
	}
	for status, code := range cases {
		de := apperrors.ToDomainError(apperrors.NewUpstreamError(status, ""))
		assert.Equal(t, code, de.Code, "status %d", status)
	}

	de := apperrors.ToDomainError(apperrors.NewUpstreamError(http.StatusServiceUnavailable, ""))
	assert.Equal(t, http.StatusBadGateway, de.HTTPStatus)
}

func TestToDomainErrorWrapsUnknown(t *testing.T) {
	de := apperrors.ToDomainError(errors.New("boom"))

	assert.Equal(t, apperrors.CodeInternal, de.Code)
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
	assert.Nil(t, apperrors.ToDomainError(nil))
}
