package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"arogya/queue-service/internal/constant"
	"arogya/queue-service/internal/domain"
)

// HandleAuth trusts the identity headers set by the API gateway in front
// of this service; requests arriving without them are rejected.
func HandleAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetHeader("X-Auth-User-Id")
		role := c.GetHeader("X-Auth-User-Role")

		if userId == "" || role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": http.StatusUnauthorized,
				"msg":  "user is not authorized",
			})
			return
		}

		iUserId, err := strconv.Atoi(userId)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": http.StatusUnauthorized,
				"msg":  "user is not authorized",
			})
			return
		}

		c.Set(constant.UserIdKey, iUserId)
		c.Set(constant.UserRoleKey, string(domain.Role(role)))
		c.Next()
	}
}

// RequireRoles gates a route group to the given roles. The ledger
// re-checks roles on every mutation; this just fails fast at the edge.
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFrom(c)
		if !actor.Is(roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code": http.StatusForbidden,
				"msg":  "unauthorized access",
			})
			return
		}
		c.Next()
	}
}

// ActorFrom rebuilds the verified actor from the request context.
func ActorFrom(c *gin.Context) domain.Actor {
	actor := domain.Actor{}
	if v, ok := c.Get(constant.UserIdKey); ok {
		if id, ok := v.(int); ok {
			actor.UserID = id
		}
	}
	if v, ok := c.Get(constant.UserRoleKey); ok {
		if role, ok := v.(string); ok {
			actor.Role = domain.Role(role)
		}
	}
	return actor
}
