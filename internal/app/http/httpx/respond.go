package httpx

import (
	"errors"

	"traveler-app/internal/apperr"

	"github.com/gin-gonic/gin"
)

// AbortWithError converts a tagged error into the JSON error body. This is
// the only place error kinds become status codes.
func AbortWithError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)

	var ae *apperr.Error
	if errors.As(err, &ae) {
		body := gin.H{"error": ae.Message}
		if ae.Details != "" {
			body["details"] = ae.Details
		}
		c.AbortWithStatusJSON(status, body)
		return
	}

	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
