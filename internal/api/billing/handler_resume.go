package billing

import (
	"net/http"
	"time"

	"traveler-app/internal/apperr"
	"traveler-app/internal/app/http/httpx"
	"traveler-app/internal/domain/subscriptions"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"go.uber.org/zap"
)

type resumeResponse struct {
	Success  bool       `json:"success"`
	Message  string     `json:"message"`
	RenewsOn *time.Time `json:"renewsOn,omitempty"`
}

func (h *Handler) ResumeSubscription(c *gin.Context) {
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

	resp, err := h.resumeSubscription(userID, body.SubscriptionID)
	if err != nil {
		h.log.Error("resume subscription failed",
			zap.String("user_id", userID),
			zap.String("subscription_id", body.SubscriptionID),
			zap.Error(err))
		httpx.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) resumeSubscription(userID, subscriptionID string) (*resumeResponse, error) {
	sub, err := h.ownedSubscription(userID, subscriptionID)
	if err != nil {
		return nil, err
	}

	// Resume is only a valid transition out of cancelling.
	if sub.Status != subscriptions.StatusCancelling {
		return nil, apperr.New(apperr.KindInvalidState, "Subscription is not in cancelling state")
	}

	updated, err := h.stripe.UpdateSubscription(subscriptionID, &stripe.SubscriptionParams{
		CancelAtPeriodEnd: stripe.Bool(false),
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "Failed to resume subscription", err).WithDetails(err.Error())
	}

	if err := h.db.Model(&subscriptions.Subscription{}).
		Where("stripe_subscription_id = ?", subscriptionID).
		Update("status", subscriptions.StatusActive).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindPersistence, "Failed to update subscription status", err)
	}

	resp := &resumeResponse{
		Success: true,
		Message: "Subscription resumed successfully",
	}
	if updated.CurrentPeriodEnd > 0 {
		t := time.Unix(updated.CurrentPeriodEnd, 0).UTC()
		resp.RenewsOn = &t
	}
	return resp, nil
}
