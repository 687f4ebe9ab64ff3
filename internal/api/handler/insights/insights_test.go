package insights_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arogya/queue-service/internal/api/handler/insights"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter() *gin.Engine {
	h := insights.New()
	router := gin.New()
	router.POST("/priority", h.Priority)
	router.POST("/predict-wait", h.PredictWait)
	router.POST("/predict-completion", h.PredictCompletion)
	router.POST("/optimize", h.Optimize)
	return router
}

func post(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestPriority(t *testing.T) {
	rec := post(newRouter(), "/priority", `{"age": 70, "emergency": false, "waiting_time": 10, "token_type": "regular"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"priority_score": 60}`, rec.Body.String())
}

func TestPriority_RejectsImpossibleAge(t *testing.T) {
	rec := post(newRouter(), "/priority", `{"age": 300}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPredictWait(t *testing.T) {
	rec := post(newRouter(), "/predict-wait", `{"patients_before": 3, "avg_service_time": 10}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		EstimatedWait float64 `json:"estimated_wait"`
		Unit          string  `json:"unit"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.InDelta(t, 30.0, body.EstimatedWait, 0.001)
	assert.Equal(t, "minutes", body.Unit)
}

func TestPredictWait_RequiresServiceTime(t *testing.T) {
	rec := post(newRouter(), "/predict-wait", `{"patients_before": 3}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPredictCompletion(t *testing.T) {
	rec := post(newRouter(), "/predict-completion", `{"token_time": "2025-03-10T09:00:00Z", "position": 4, "avg_service_time": 5}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"completion_time": "2025-03-10T09:20:00Z"}`, rec.Body.String())
}

func TestPredictCompletion_BadTimestamp(t *testing.T) {
	rec := post(newRouter(), "/predict-completion", `{"token_time": "yesterday", "position": 4, "avg_service_time": 5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOptimize(t *testing.T) {
	rec := post(newRouter(), "/optimize", `{"tokens": [
		{"token_id": 1, "age": 30, "waiting_time": 5, "token_type": "regular"},
		{"token_id": 2, "age": 40, "emergency": true, "token_type": "regular"}
	]}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Queue []struct {
			TokenID int64 `json:"token_id"`
			Score   int   `json:"priority_score"`
		} `json:"queue"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Queue, 2)
	assert.Equal(t, int64(2), body.Queue[0].TokenID)
	assert.Equal(t, 100, body.Queue[0].Score)
	assert.Equal(t, int64(1), body.Queue[1].TokenID)
}
