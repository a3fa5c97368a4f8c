package subscriptions

import "time"

// Status is the locally persisted subscription state derived from billing
// provider events.
type Status string

const (
	StatusActive     Status = "active"
	StatusCancelling Status = "cancelling"
	StatusPastDue    Status = "past_due"
	StatusInactive   Status = "inactive"
)

type PlanDuration string

const (
	DurationMonthly PlanDuration = "monthly"
	DurationYearly  PlanDuration = "yearly"
)

// TypeTravelerPass is the only product tier sold through this backend.
const TypeTravelerPass = "traveler_pass"

const PlatformStripe = "stripe"

// Subscription is one row per user; UserID is the upsert conflict target so
// a user can never hold two rows at once.
type Subscription struct {
	ID uint `gorm:"primaryKey"`

	UserID           string `gorm:"column:user_id;not null;uniqueIndex:idx_user_subscriptions_user_id" json:"userId"`
	SubscriptionType string `gorm:"column:subscription_type;not null" json:"subscriptionType"`

	Status       Status       `gorm:"column:status;type:varchar(20);not null" json:"status"`
	PlanDuration PlanDuration `gorm:"column:plan_duration;type:varchar(10)" json:"planDuration"`

	StartDate *time.Time `gorm:"column:start_date" json:"startDate"`
	EndDate   *time.Time `gorm:"column:end_date" json:"endDate"`

	StripeSubscriptionID string `gorm:"column:stripe_subscription_id;index:idx_user_subscriptions_stripe_subscription_id" json:"stripeSubscriptionId"`
	StripePriceID        string `gorm:"column:stripe_price_id" json:"stripePriceId"`

	Platform string `gorm:"column:platform;type:varchar(20)" json:"platform"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Subscription) TableName() string { return "user_subscriptions" }
