package billing

import (
	"errors"
	"net/http"

	"traveler-app/internal/apperr"
	"traveler-app/internal/app/http/httpx"
	"traveler-app/internal/domain/customers"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type checkoutRequest struct {
	PriceID string `json:"priceId"`
}

type checkoutResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	userID, email, err := currentUser(c)
	if err != nil {
		httpx.AbortWithError(c, err)
		return
	}

	var body checkoutRequest
	if err := c.ShouldBindJSON(&body); err != nil || body.PriceID == "" {
		httpx.AbortWithError(c, apperr.New(apperr.KindValidation, "priceId is required"))
		return
	}

	resp, err := h.createCheckoutSession(userID, email, body.PriceID)
	if err != nil {
		h.log.Error("create checkout session failed", zap.String("user_id", userID), zap.Error(err))
		httpx.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createCheckoutSession(userID, email, priceID string) (*checkoutResponse, error) {
	customerID, err := h.ensureCustomer(userID, email)
	if err != nil {
		return nil, err
	}

	params := &stripe.CheckoutSessionParams{
		Customer:           stripe.String(customerID),
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(priceID), Quantity: stripe.Int64(1)},
		},
		SuccessURL: stripe.String(h.siteURL + "?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(h.siteURL),
		Metadata: map[string]string{
			"user_id": userID,
		},
	}

	s, err := h.stripe.NewCheckoutSession(params)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "Failed to create checkout session", err).WithDetails(err.Error())
	}

	return &checkoutResponse{SessionID: s.ID, URL: s.URL}, nil
}

// ensureCustomer returns the user's Stripe customer id, creating the Stripe
// customer and the local mapping on first checkout. Customer creation and
// the local insert are not transactional: a failed insert leaves an orphaned
// Stripe customer that the next checkout recreates.
func (h *Handler) ensureCustomer(userID, email string) (string, error) {
	var cust customers.Customer
	err := h.db.Where("user_id = ?", userID).First(&cust).Error
	if err == nil {
		return cust.StripeCustomerID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", apperr.Wrap(apperr.KindPersistence, "Failed to look up customer", err)
	}

	h.log.Info("creating stripe customer", zap.String("user_id", userID))

	sc, err := h.stripe.NewCustomer(&stripe.CustomerParams{
		Email: stripe.String(email),
		Metadata: map[string]string{
			"user_id": userID,
		},
	})
	if err != nil {
		return "", apperr.Wrap(apperr.KindUpstream, "Failed to create Stripe customer", err).WithDetails(err.Error())
	}

	if err := h.db.Create(&customers.Customer{UserID: userID, StripeCustomerID: sc.ID}).Error; err != nil {
		// Checkout still proceeds; the mapping is recreated on next lookup.
		h.log.Warn("failed to store customer mapping", zap.String("user_id", userID), zap.Error(err))
	}

	return sc.ID, nil
}
