package stripewebhooks

import (
	"errors"
	"fmt"
	"time"

	"traveler-app/internal/domain/customers"
	"traveler-app/internal/domain/subscriptions"

	"github.com/stripe/stripe-go/v75"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (h *Handler) handleCheckoutSessionCompleted(session *stripe.CheckoutSession) error {
	userID, err := h.resolveUser(session)
	if err != nil {
		return err
	}

	if session.Subscription == nil || session.Subscription.ID == "" {
		return errors.New("checkout session missing subscription")
	}

	subData, err := h.stripe.GetSubscription(session.Subscription.ID, nil)
	if err != nil {
		return fmt.Errorf("failed to fetch subscription: %w", err)
	}
	if subData == nil || subData.Items == nil || len(subData.Items.Data) == 0 || subData.Items.Data[0].Price == nil {
		return errors.New("subscription missing items/price")
	}

	price := subData.Items.Data[0].Price
	interval := ""
	if price.Recurring != nil {
		interval = string(price.Recurring.Interval)
	}

	startDate := time.Unix(subData.CurrentPeriodStart, 0).UTC()
	endDate := time.Unix(subData.CurrentPeriodEnd, 0).UTC()

	row := subscriptions.Subscription{
		UserID:               userID,
		SubscriptionType:     subscriptions.TypeTravelerPass,
		Status:               subscriptions.StatusActive,
		PlanDuration:         subscriptions.PlanDurationFromInterval(interval),
		StartDate:            &startDate,
		EndDate:              &endDate,
		StripeSubscriptionID: subData.ID,
		StripePriceID:        price.ID,
		Platform:             subscriptions.PlatformStripe,
	}

	// One row per user: replaying the same event converges on the same row.
	if err := h.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"subscription_type",
			"status",
			"plan_duration",
			"start_date",
			"end_date",
			"stripe_subscription_id",
			"stripe_price_id",
			"platform",
			"updated_at",
		}),
	}).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}

	h.log.Info("traveler pass activated",
		zap.String("user_id", userID),
		zap.String("subscription_id", subData.ID))
	return nil
}

// resolveUser prefers the user id the checkout flow put in session metadata
// and falls back to the customers mapping by Stripe customer id.
func (h *Handler) resolveUser(session *stripe.CheckoutSession) (string, error) {
	if session.Metadata != nil {
		if userID := session.Metadata["user_id"]; userID != "" {
			return userID, nil
		}
	}

	if session.Customer != nil && session.Customer.ID != "" {
		var cust customers.Customer
		err := h.db.Where("stripe_customer_id = ?", session.Customer.ID).First(&cust).Error
		if err == nil {
			return cust.UserID, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("customer lookup failed: %w", err)
		}
	}

	return "", errors.New("user id not found in session metadata or customer lookup")
}
