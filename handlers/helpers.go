package handlers

import (
	"net/http"

	"unisale-backend/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentUserID returns the authenticated user's id, writing a 401 when absent.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(middleware.ContextUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return uuid.Nil, false
	}
	return id, true
}

// matchesCaller allows an explicit user id in the request only when it names
// the authenticated user. An empty claim always passes.
func matchesCaller(c *gin.Context, userID uuid.UUID, claimed string) bool {
	if claimed == "" {
		return true
	}
	if id, err := uuid.Parse(claimed); err == nil && id == userID {
		return true
	}
	c.JSON(http.StatusForbidden, gin.H{"error": "User ID does not match authenticated user"})
	return false
}
