package util

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caretrack/apperr"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondError(c, apperr.New(apperr.KindNotFound, "patient not found"))

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body struct {
		Success bool      `json:"success"`
		Error   ErrorBody `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, apperr.KindNotFound, body.Error.Kind)
	assert.Equal(t, "patient not found", body.Error.Message)
}

func TestFailedResponse_HidesInternalDetail(t *testing.T) {
	body := FailedResponse(apperr.Internal(assert.AnError))
	errBody, ok := body["error"].(ErrorBody)
	require.True(t, ok)
	assert.Equal(t, apperr.KindInternal, errBody.Kind)
	assert.NotContains(t, errBody.Message, assert.AnError.Error())
}
