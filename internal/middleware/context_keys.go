package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// actorIDKey is the key used to store the acting user's ID in the Gin context.
const actorIDKey = contextKey("actorID")

// actorIDHeader carries the acting user's identity, supplied by the upstream
// session layer. Token lifecycle is owned entirely by that layer.
const actorIDHeader = "X-User-Id"

// ActorIDMiddleware requires the acting-user header on every request and
// stores it in the context for audit attribution.
func ActorIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader(actorIDHeader)
		if actorID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": actorIDHeader + " header required"})
			return
		}
		c.Set(string(actorIDKey), actorID)
		c.Next()
	}
}

// GetActorIDFromContext retrieves the acting user ID from the Gin context.
// It returns the ID and a boolean indicating if it was found.
func GetActorIDFromContext(c *gin.Context) (string, bool) {
	actorIDVal, exists := c.Get(string(actorIDKey))
	if !exists {
		return "", false
	}
	actorID, ok := actorIDVal.(string)
	if !ok {
		return "", false
	}
	return actorID, true
}
