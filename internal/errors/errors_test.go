package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"validation", NewValidationError("email", MsgInvalidEmail), http.StatusBadRequest, "VALIDATION_ERROR", MsgInvalidRequest},
		{"duplicate email wrapped", fmt.Errorf("register: %w", ErrDuplicateEmail), http.StatusConflict, "DUPLICATE_EMAIL", MsgDuplicateEmail},
		{"bad credentials", ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS", MsgInvalidCredentials},
		{"token missing", ErrTokenMissing, http.StatusUnauthorized, "TOKEN_REQUIRED", MsgTokenRequired},
		{"token invalid", fmt.Errorf("%w: signature", ErrTokenInvalid), http.StatusUnauthorized, "TOKEN_INVALID", MsgTokenInvalid},
		{"token expired", ErrTokenExpired, http.StatusUnauthorized, "TOKEN_EXPIRED", MsgTokenInvalid},
		{"movie not found", ErrMovieNotFound, http.StatusNotFound, "MOVIE_NOT_FOUND", MsgMovieNotFound},
		{"upstream", fmt.Errorf("tmdb: %w", ErrUpstream), http.StatusInternalServerError, "UPSTREAM_ERROR", MsgMovieSearchFailed},
		{"unknown", errors.New("connection reset by peer"), http.StatusInternalServerError, "INTERNAL_ERROR", MsgGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantCode, httpErr.Code)
			assert.Equal(t, tt.wantMsg, httpErr.Message)
		})
	}
}

func TestMapErrorToHTTP_ValidationDetails(t *testing.T) {
	verr := &ValidationError{Fields: []FieldError{
		{Field: "email", Message: MsgInvalidEmail},
		{Field: "password", Message: MsgPasswordMinLength},
	}}

	resp := MapErrorToHTTP(fmt.Errorf("bind: %w", verr)).ToErrorResponse()
	assert.Equal(t, verr.Fields, resp.Details)
}

func TestMapErrorToHTTP_UnknownDoesNotLeakDetail(t *testing.T) {
	httpErr := MapErrorToHTTP(errors.New("dial tcp 10.0.0.3:3306: connect: refused"))
	assert.True(t, httpErr.IsInternal())
	assert.NotContains(t, httpErr.ToErrorResponse().Error, "10.0.0.3")
}
