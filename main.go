package main

import (
	"log"
	"net/http"
	"time"

	"traveler-app/config"
	"traveler-app/database"
	"traveler-app/internal/api/billing"
	"traveler-app/internal/api/menu"
	stripewebhooks "traveler-app/internal/api/stripewebhook"
	routes "traveler-app/internal/app/http"
	stripeclient "traveler-app/internal/infra/stripe"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	cfg := config.LoadEnv()
	db := database.InitDB(cfg.DBURL)

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	sc := stripeclient.New(cfg.StripeSecretKey)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Stripe-Signature", "X-Client-Info", "Apikey"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: cfg.CORSOrigin != "*",
		MaxAge:           12 * time.Hour,
		// Preflights answered 200, matching what clients of the old
		// deployment expect.
		OptionsResponseStatusCode: http.StatusOK,
	}))

	routes.RegisterRoutes(r, routes.Handlers{
		Billing:   billing.NewHandler(db, sc, logger, cfg.SiteURL),
		Webhook:   stripewebhooks.NewHandler(db, sc, logger, cfg.StripeWebhookSecret),
		Menu:      menu.NewHandler(&http.Client{Timeout: 60 * time.Second}, logger, cfg.MenuWebhookURL),
		JWTSecret: cfg.JWTSecret,
	})

	r.Run(":" + cfg.Port)
}
