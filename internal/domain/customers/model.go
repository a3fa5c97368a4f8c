package customers

import "time"

// Customer maps an identity-provider user to its Stripe customer. Created
// lazily on first checkout, immutable afterwards.
type Customer struct {
	UserID           string `gorm:"column:user_id;primaryKey"`
	StripeCustomerID string `gorm:"column:stripe_customer_id;not null;uniqueIndex:idx_customers_stripe_customer_id"`

	CreatedAt time.Time
}

func (Customer) TableName() string { return "customers" }
