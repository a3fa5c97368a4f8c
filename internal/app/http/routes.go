package routes

import (
	"traveler-app/internal/api/billing"
	"traveler-app/internal/api/menu"
	stripewebhooks "traveler-app/internal/api/stripewebhook"
	"traveler-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers carries the constructed handler instances into route
// registration; nothing here reaches for package globals.
type Handlers struct {
	Billing *billing.Handler
	Webhook *stripewebhooks.Handler
	Menu    *menu.Handler

	JWTSecret string
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	// Raw-body routes stay outside the sanitizer: the webhook signature
	// covers the exact bytes Stripe sent.
	r.POST("/webhook", h.Webhook.StripeWebhook)
	r.POST("/process-menu", h.Menu.ProcessMenu)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.SanitizeJSONInput(), middleware.AuthMiddleware(h.JWTSecret))
	auth.POST("/create-checkout-session", h.Billing.CreateCheckoutSession)
	auth.POST("/cancel-subscription", h.Billing.CancelSubscription)
	auth.POST("/resume-subscription", h.Billing.ResumeSubscription)
	auth.GET("/subscription", h.Billing.GetSubscription)
}
