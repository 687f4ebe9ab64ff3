package token

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"arogya/queue-service/internal/api/httpstatus"
	"arogya/queue-service/internal/api/middleware"
)

// Issue godoc
// @Summary      Issue a queue token
// @Description  Issue the next sequence token to the authenticated user
// @Tags         Token
// @Accept       json
// @Produce      json
// @Success      201 {object} map[string]interface{} "Issued token with wait estimate and position"
// @Failure      400 {object} map[string]string "User already holds an active token"
// @Failure      500 {object} map[string]string "Internal server error"
// @Router       /v1/tokens [post]
// @Security     ApiKeyAuth
func (h *TokenHandler) Issue(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	result, err := h.ledger.IssueToken(c, actor)
	if err != nil {
		c.JSON(httpstatus.Of(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":        result.Number,
		"waiting_time": result.EstimatedWait,
		"position":     result.Position,
	})
}
