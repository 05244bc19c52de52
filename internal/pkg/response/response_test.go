package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func record(fn func(c *gin.Context)) map[string]any {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fn(c)

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		return nil
	}
	return body
}

func TestSuccessEnvelope(t *testing.T) {
	body := record(func(c *gin.Context) {
		Success(c, http.StatusOK, gin.H{"id": 1})
	})

	assert.Equal(t, true, body["success"])
	assert.NotNil(t, body["data"])
	assert.NotContains(t, body, "error")
}

func TestErrorEnvelope(t *testing.T) {
	body := record(func(c *gin.Context) {
		Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid time range or date")
	})

	assert.Equal(t, false, body["success"])
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_ERROR", errBody["code"])
	assert.Equal(t, "Invalid time range or date", errBody["message"])
	assert.NotContains(t, errBody, "details") // omitted when absent
}

func TestErrorWithDetailsEnvelope(t *testing.T) {
	body := record(func(c *gin.Context) {
		ErrorWithDetails(c, http.StatusConflict, "SLOT_TAKEN", "slot taken",
			gin.H{"reservation_id": 7})
	})

	errBody := body["error"].(map[string]any)
	assert.Equal(t, "SLOT_TAKEN", errBody["code"])
	details := errBody["details"].(map[string]any)
	assert.Equal(t, float64(7), details["reservation_id"])
}
