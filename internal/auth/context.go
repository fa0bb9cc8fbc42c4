package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agilityengineers/SmartScheduler-sub007/internal/pkg/apperror"
)

// ErrUnauthenticated is returned when a handler runs without an
// authenticated owner in the request context.
var ErrUnauthenticated = apperror.New(http.StatusUnauthorized, "authentication required")

// GetOwnerID returns the authenticated owner's ID set by AuthRequired.
func GetOwnerID(c *gin.Context) (string, error) {
	if v, ok := c.Get("ownerID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s, nil
		}
	}
	return "", ErrUnauthenticated
}

// GetOwnerEmail returns the authenticated owner's email or empty string.
func GetOwnerEmail(c *gin.Context) string {
	if v, ok := c.Get("ownerEmail"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
