package insights

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"arogya/queue-service/internal/api/request"
	"arogya/queue-service/internal/optimizer"
	"arogya/queue-service/internal/predict"
	"arogya/queue-service/internal/priority"
)

func (h *InsightsHandler) Priority(c *gin.Context) {
	var req request.PriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"priority_score": priority.Score(req.Age, req.Emergency, req.WaitingMinutes, req.TokenType),
	})
}

func (h *InsightsHandler) PredictWait(c *gin.Context) {
	var req request.PredictWaitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var timeOfDay *time.Time
	if req.UseCurrentTime {
		now := time.Now()
		timeOfDay = &now
	}

	c.JSON(http.StatusOK, gin.H{
		"estimated_wait": predict.Wait(req.PatientsBefore, req.AvgServiceMinutes, timeOfDay),
		"unit":           "minutes",
	})
}

func (h *InsightsHandler) PredictCompletion(c *gin.Context) {
	var req request.PredictCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issuedAt, err := time.Parse(time.RFC3339, req.TokenTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token_time must be an RFC 3339 timestamp"})
		return
	}

	completion := predict.Completion(issuedAt, req.Position, req.AvgServiceMinutes)
	c.JSON(http.StatusOK, gin.H{
		"completion_time": completion.Format(time.RFC3339),
	})
}

func (h *InsightsHandler) Optimize(c *gin.Context) {
	var req request.OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	candidates := make([]optimizer.Candidate, 0, len(req.Tokens))
	for _, t := range req.Tokens {
		candidates = append(candidates, optimizer.Candidate{
			TokenID:        t.TokenID,
			Age:            t.Age,
			Emergency:      t.Emergency,
			WaitingMinutes: t.WaitingMinutes,
			TokenType:      t.TokenType,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"queue": optimizer.Optimize(candidates),
	})
}
