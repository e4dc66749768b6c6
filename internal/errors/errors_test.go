package errors

import (
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
	}{
		{"unauthenticated", ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHENTICATED"},
		{"forbidden", ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"validation", ErrValidation, http.StatusBadRequest, "VALIDATION_FAILED"},
		{"wrapped validation keeps detail", fmt.Errorf("%w: amount must be greater than zero", ErrValidation), http.StatusBadRequest, "VALIDATION_FAILED"},
		{"movement not found", ErrMovementNotFound, http.StatusNotFound, "MOVEMENT_NOT_FOUND"},
		{"user not found", ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{"opaque store failure", fmt.Errorf("dial tcp: connection refused"), http.StatusInternalServerError, "STORE_FAILURE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			he := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, he.StatusCode)
			assert.Equal(t, tt.wantCode, he.Code)
			assert.NotEmpty(t, he.ToErrorResponse().Error)
		})
	}
}
