package stripewebhooks

import (
	"errors"
	"fmt"
	"time"

	"traveler-app/internal/domain/subscriptions"

	"github.com/stripe/stripe-go/v75"
	"go.uber.org/zap"
)

func (h *Handler) handleSubscriptionDeleted(sub *stripe.Subscription) error {
	if sub.ID == "" {
		return errors.New("subscription missing id")
	}

	if err := h.db.Model(&subscriptions.Subscription{}).
		Where("stripe_subscription_id = ?", sub.ID).
		Updates(map[string]interface{}{
			"status":   subscriptions.StatusInactive,
			"end_date": time.Now().UTC(),
		}).Error; err != nil {
		return fmt.Errorf("failed to deactivate subscription: %w", err)
	}

	h.log.Info("subscription deactivated", zap.String("subscription_id", sub.ID))
	return nil
}
