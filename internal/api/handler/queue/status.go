package queue

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"arogya/queue-service/internal/api/httpstatus"
	"arogya/queue-service/pkg/paginator"
)

// Status godoc
// @Summary      Queue status board
// @Description  Current and last token, per-status counts, and the next waiting tokens
// @Tags         Queue
// @Produce      json
// @Success      200 {object} map[string]interface{} "Queue snapshot"
// @Failure      500 {object} map[string]string "Internal server error"
// @Router       /v1/queue/status [get]
func (h *QueueHandler) Status(c *gin.Context) {
	snap, err := h.ledger.GetStatus(c)
	if err != nil {
		c.JSON(httpstatus.Of(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, snap)
}

func (h *QueueHandler) History(c *gin.Context) {
	pagination := paginator.New(c)

	entries, total, err := h.history.List(c, pagination.Size, pagination.From)
	if err != nil {
		c.JSON(httpstatus.Of(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "success",
		"history": entries,
		"meta": gin.H{
			"page_size": pagination.Size,
			"page":      pagination.Page,
			"total":     total,
		},
	})
}
