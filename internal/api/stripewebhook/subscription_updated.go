package stripewebhooks

import (
	"errors"
	"fmt"
	"time"

	"traveler-app/internal/domain/subscriptions"

	"github.com/stripe/stripe-go/v75"
	"go.uber.org/zap"
)

func (h *Handler) handleSubscriptionUpdated(sub *stripe.Subscription) error {
	if sub.ID == "" || sub.Items == nil || len(sub.Items.Data) == 0 || sub.Items.Data[0].Price == nil {
		return errors.New("subscription missing id/items/price")
	}

	price := sub.Items.Data[0].Price
	interval := ""
	if price.Recurring != nil {
		interval = string(price.Recurring.Interval)
	}

	status := subscriptions.DeriveStatus(string(sub.Status), sub.CancelAtPeriodEnd)
	endDate := time.Unix(sub.CurrentPeriodEnd, 0).UTC()

	updates := map[string]interface{}{
		"status":                 status,
		"plan_duration":          subscriptions.PlanDurationFromInterval(interval),
		"end_date":               endDate,
		"stripe_subscription_id": sub.ID,
		"stripe_price_id":        price.ID,
	}

	// Filtered update only: a subscription we never recorded must not
	// create a row, so zero matches is acknowledged as a no-op.
	if err := h.db.Model(&subscriptions.Subscription{}).
		Where("stripe_subscription_id = ?", sub.ID).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}

	h.log.Info("subscription updated",
		zap.String("subscription_id", sub.ID),
		zap.String("status", string(status)))
	return nil
}
