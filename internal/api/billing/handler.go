package billing

import (
	"traveler-app/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StripeClient is the slice of the Stripe API the billing handlers touch.
type StripeClient interface {
	NewCustomer(params *stripe.CustomerParams) (*stripe.Customer, error)
	NewCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	UpdateSubscription(id string, params *stripe.SubscriptionParams) (*stripe.Subscription, error)
}

type Handler struct {
	db      *gorm.DB
	stripe  StripeClient
	log     *zap.Logger
	siteURL string
}

func NewHandler(db *gorm.DB, sc StripeClient, log *zap.Logger, siteURL string) *Handler {
	return &Handler{db: db, stripe: sc, log: log, siteURL: siteURL}
}

// currentUser pulls the identity set by the auth middleware.
func currentUser(c *gin.Context) (userID, email string, err error) {
	userID = c.GetString("user_id")
	if userID == "" {
		return "", "", apperr.New(apperr.KindAuthentication, "User not identified")
	}
	return userID, c.GetString("email"), nil
}
