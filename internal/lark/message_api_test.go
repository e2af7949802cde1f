package lark

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIError(t *testing.T) {
	var err error = &APIError{Op: "send message", Code: 230001, Msg: "invalid receive_id"}

	assert.Equal(t, "send message: API error: code=230001, msg=invalid receive_id", err.Error())

	var apiErr *APIError
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 230001, apiErr.Code)
}
