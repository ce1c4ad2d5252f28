package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsCarryStatusAndSentinel(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
		target error
	}{
		{Validation("amount too small"), http.StatusBadRequest, ErrInvalidInput},
		{BadRequest("bad"), http.StatusBadRequest, ErrBadRequest},
		{NotFound("user not found"), http.StatusNotFound, ErrNotFound},
		{Conflict("event has deposits"), http.StatusConflict, ErrConflict},
		{Unauthorized("no token"), http.StatusUnauthorized, ErrUnauthorized},
		{Forbidden("admins only"), http.StatusForbidden, ErrForbidden},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.Status)
		assert.ErrorIs(t, tc.err, tc.target)
	}
}

func TestAppErrorMessageFallbacks(t *testing.T) {
	assert.Equal(t, "explicit", NewAppError(400, CodeBadRequest, "explicit", ErrBadRequest).Error())
	assert.Equal(t, ErrNotFound.Error(), NewAppError(404, CodeNotFound, "", ErrNotFound).Error())
	assert.Equal(t, "Bad Request", NewAppError(400, CodeBadRequest, "", nil).Error())
}

func TestFromError(t *testing.T) {
	wrapped := fmt.Errorf("load user: %w", ErrNotFound)
	assert.Equal(t, http.StatusNotFound, FromError(wrapped).Status)
	assert.Equal(t, http.StatusConflict, FromError(ErrAlreadyExists).Status)
	assert.Equal(t, http.StatusUnauthorized, FromError(ErrInvalidCredentials).Status)
	assert.Equal(t, CodeInvalidCredentials, FromError(ErrInvalidCredentials).Code)
	assert.Equal(t, http.StatusForbidden, FromError(ErrUserInactive).Status)
	assert.Equal(t, http.StatusInternalServerError, FromError(errors.New("boom")).Status)

	original := Conflict("phone already registered")
	assert.Same(t, original, FromError(fmt.Errorf("register: %w", original)))
}
