package billing

import (
	"errors"
	"net/http"

	"traveler-app/internal/apperr"
	"traveler-app/internal/app/http/httpx"
	"traveler-app/internal/domain/subscriptions"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetSubscription returns the caller's subscription row, if any.
func (h *Handler) GetSubscription(c *gin.Context) {
	userID, _, err := currentUser(c)
	if err != nil {
		httpx.AbortWithError(c, err)
		return
	}

	var sub subscriptions.Subscription
	err = h.db.Where("user_id = ?", userID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.AbortWithError(c, apperr.New(apperr.KindNotFound, "Subscription not found"))
		return
	}
	if err != nil {
		httpx.AbortWithError(c, apperr.Wrap(apperr.KindPersistence, "Failed to look up subscription", err))
		return
	}

	c.JSON(http.StatusOK, sub)
}
