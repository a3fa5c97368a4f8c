package billing

import (
	"errors"
	"net/http"
	"time"

	"traveler-app/internal/apperr"
	"traveler-app/internal/app/http/httpx"
	"traveler-app/internal/domain/subscriptions"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type subscriptionCommandRequest struct {
	SubscriptionID string `json:"subscriptionId"`
}

type cancelResponse struct {
	Success  bool       `json:"success"`
	Message  string     `json:"message"`
	CancelAt *time.Time `json:"cancelAt,omitempty"`
}

func (h *Handler) CancelSubscription(c *gin.Context) {
	userID, _, err := currentUser(c)
	if err != nil {
		httpx.AbortWithError(c, err)
		return
	}

	var body subscriptionCommandRequest
	if err := c.ShouldBindJSON(&body); err != nil || body.SubscriptionID == "" {
		httpx.AbortWithError(c, apperr.New(apperr.KindValidation, "subscriptionId is required"))
		return
	}

	resp, err := h.cancelSubscription(userID, body.SubscriptionID)
	if err != nil {
		h.log.Error("cancel subscription failed",
			zap.String("user_id", userID),
			zap.String("subscription_id", body.SubscriptionID),
			zap.Error(err))
		httpx.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) cancelSubscription(userID, subscriptionID string) (*cancelResponse, error) {
	// Filtering by both user and subscription id is the ownership check; a
	// miss is reported as not found either way so existence never leaks.
	if _, err := h.ownedSubscription(userID, subscriptionID); err != nil {
		return nil, err
	}

	updated, err := h.stripe.UpdateSubscription(subscriptionID, &stripe.SubscriptionParams{
		CancelAtPeriodEnd: stripe.Bool(true),
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "Failed to cancel subscription", err).WithDetails(err.Error())
	}

	// Remote first, local second: if this write fails the stores diverge
	// until the next subscription.updated event reconciles them.
	if err := h.db.Model(&subscriptions.Subscription{}).
		Where("stripe_subscription_id = ?", subscriptionID).
		Update("status", subscriptions.StatusCancelling).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindPersistence, "Failed to update subscription status", err)
	}

	resp := &cancelResponse{
		Success: true,
		Message: "Subscription will be cancelled at the end of the billing period",
	}
	if updated.CancelAt > 0 {
		t := time.Unix(updated.CancelAt, 0).UTC()
		resp.CancelAt = &t
	}
	return resp, nil
}

func (h *Handler) ownedSubscription(userID, subscriptionID string) (*subscriptions.Subscription, error) {
	var sub subscriptions.Subscription
	err := h.db.Where("user_id = ? AND stripe_subscription_id = ?", userID, subscriptionID).
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.KindNotFound, "Subscription not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindPersistence, "Failed to look up subscription", err)
	}
	return &sub, nil
}
