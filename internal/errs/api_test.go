package errs

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostNotFound(t *testing.T) {
	err := NewPostNotFoundError("missing")
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Equal(t, `not found: no published post matches "missing"`, err.Error())
	assert.Equal(t, "slug", err.Field)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsInternal(err))
}

func TestInternalErrorChain(t *testing.T) {
	inner := NewBadRequestErrorWithField("bad block", "block", "out of range")
	err := NewInternalErrorWithCause("render failed", inner)
	assert.True(t, IsInternal(err))
	assert.True(t, IsBadRequest(inner))
	assert.Equal(t, "render failed: internal server error -> bad block: malformed request: out of range", err.GetFullError())

	plain := NewInternalErrorWithCause("write failed", errors.New("disk full"))
	assert.Equal(t, "write failed: internal server error -> disk full", plain.GetFullError())
}

func TestApiErrWithoutDetails(t *testing.T) {
	err := NewApiErr(http.StatusTeapot, "short and stout")
	assert.Equal(t, "short and stout", err.Error())
	assert.Equal(t, "short and stout", err.GetFullError())

	var target *ApiErr
	assert.True(t, errors.As(error(NewMethodNotAllowedError("POST")), &target))
	assert.Equal(t, http.StatusMethodNotAllowed, target.StatusCode)
}
