package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	// No services wired: every request here must be rejected by input
	// validation before any service call.
	handler := NewHandler(nil, nil, nil, nil, zerolog.Nop())
	router := gin.New()
	router.POST("/contracts/preview", handler.previewTotals)
	router.POST("/contracts/redistribute", handler.redistribute)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestRedistributeRejectsMissingDesiredTotal(t *testing.T) {
	router := testRouter()

	body := `{"edit": {"billboard_ids": ["` + "b0d9f9a0-0000-4000-8000-000000000001" + `"], "category": "food", "duration_value": 3}}`
	recorder := postJSON(router, "/contracts/redistribute", body)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "DesiredTotal")
}

func TestRedistributeRejectsInvalidEditPayload(t *testing.T) {
	router := testRouter()

	recorder := postJSON(router, "/contracts/redistribute", `{"edit": {}, "desired_total": 9000}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestPreviewRejectsInvalidPayload(t *testing.T) {
	router := testRouter()

	recorder := postJSON(router, "/contracts/preview", `{"category": ""}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
