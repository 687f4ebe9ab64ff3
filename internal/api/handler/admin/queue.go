package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"arogya/queue-service/internal/api/httpstatus"
	"arogya/queue-service/internal/api/middleware"
)

// CallNext godoc
// @Summary      Call the next token
// @Description  Pull the lowest-numbered waiting token to the counter
// @Tags         Admin
// @Produce      json
// @Success      200 {object} map[string]interface{} "Called token detail"
// @Failure      404 {object} map[string]string "No tokens in queue"
// @Router       /v1/admin/queue/next [put]
// @Security     ApiKeyAuth
func (h *AdminHandler) CallNext(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	called, err := h.ledger.CallNext(c, actor)
	if err != nil {
		c.JSON(httpstatus.Of(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "token called",
		"current_token": called.Number,
		"token":         called,
	})
}

func (h *AdminHandler) ResetQueue(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	count, err := h.ledger.ResetQueue(c, actor)
	if err != nil {
		c.JSON(httpstatus.Of(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "queue reset successfully",
		"reset_tokens": count,
	})
}
