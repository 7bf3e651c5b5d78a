package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeHelpers_SeeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("load meal: %w", NewNotFound("meal", 7))

	assert.True(t, IsNotFound(err))
	assert.False(t, IsRemoteRead(err))
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus(err))

	appErr, ok := AsAppError(err)
	assert.True(t, ok)
	assert.Equal(t, 7, appErr.Details["id"])
}

func TestRemoteErrors_CarryStatus(t *testing.T) {
	read := NewRemoteRead("/meals", 500)
	write := NewRemoteWrite(http.MethodPut, "/dishes", 409)

	assert.True(t, IsRemoteRead(read))
	assert.True(t, IsRemoteWrite(write))
	assert.Equal(t, 500, read.Details["status"])
	assert.Equal(t, 409, write.Details["status"])
	assert.Equal(t, "REMOTE_WRITE_ERROR: PUT /dishes failed", write.Error())
}

func TestWithCause_Unwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewRemoteRead("/properties", 0).WithCause(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestGetHTTPStatus_PlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(errors.New("boom")))
	assert.False(t, IsCyclicHierarchy(errors.New("boom")))
	assert.True(t, IsCyclicHierarchy(NewCyclicHierarchy("property", 3)))
}
