package token

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"arogya/queue-service/internal/api/httpstatus"
	"arogya/queue-service/internal/api/middleware"
	"arogya/queue-service/pkg/paginator"
)

// userTokenLimit caps the own-token listing, newest first.
const userTokenLimit = 10

func (h *TokenHandler) MyTokens(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	tokens, err := h.tokens.ByUser(c, actor.UserID, userTokenLimit)
	if err != nil {
		c.JSON(httpstatus.Of(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "success",
		"tokens":  tokens,
	})
}

func (h *TokenHandler) MySuggestions(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	suggestions, err := h.suggestions.ByUser(c, actor.UserID)
	if err != nil {
		c.JSON(httpstatus.Of(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "success",
		"suggestions": suggestions,
	})
}

func (h *TokenHandler) Notifications(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	pagination := paginator.New(c)

	notifications, total, err := h.notifications.ByUser(c, actor.UserID, pagination.Size, pagination.From)
	if err != nil {
		c.JSON(httpstatus.Of(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "success",
		"notifications": notifications,
		"meta": gin.H{
			"page_size": pagination.Size,
			"page":      pagination.Page,
			"total":     total,
		},
	})
}

func (h *TokenHandler) MarkNotificationRead(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	if err := h.notifications.MarkRead(c, id, actor.UserID); err != nil {
		c.JSON(httpstatus.Of(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "success"})
}
