package backend

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorUnwrap(t *testing.T) {
	root := errors.New("root cause")
	err := fmt.Errorf("wrapped: %w", NewAppError(ErrorTypeUpstream, "上游失败", root))

	assert.ErrorIs(t, err, root)
	assert.Equal(t, ErrorTypeUpstream, ErrorType(err))

	var appErr *AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, "上游失败", appErr.Error())
}

func TestErrorTypeDefaultsToUpstream(t *testing.T) {
	assert.Equal(t, ErrorTypeUpstream, ErrorType(errors.New("plain")))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(ErrorTypeValidation))
	assert.Equal(t, http.StatusMethodNotAllowed, HTTPStatus(ErrorTypeMethodNotAllowed))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(ErrorTypeUpstream))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(ErrorTypeStorage))
}
