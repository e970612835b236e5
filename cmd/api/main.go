package main

import (
	"context"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/okezie-dev/gigmarket/internal/admin"
	"github.com/okezie-dev/gigmarket/internal/alerts"
	"github.com/okezie-dev/gigmarket/internal/auth"
	"github.com/okezie-dev/gigmarket/internal/config"
	"github.com/okezie-dev/gigmarket/internal/db"
	"github.com/okezie-dev/gigmarket/internal/marketplace"
	"github.com/okezie-dev/gigmarket/internal/messaging"
	mware "github.com/okezie-dev/gigmarket/internal/middleware"
	"github.com/okezie-dev/gigmarket/internal/upload"
	"github.com/okezie-dev/gigmarket/internal/user"
)

func main() {
	cfg := config.Load()

	db.Init(cfg.DatabaseURL)
	alerts.Init(cfg.RedisAddr)
	defer alerts.Close()
	if err := alerts.ConfigureMailer(cfg.SMTP); err != nil {
		log.Printf("mailer not configured, emails will fail: %v", err)
	}
	upload.Dir = cfg.UploadDir

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Health and root routes
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok", "service": "gigmarket"})
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/ready", func(c echo.Context) error {
		if db.Conn == nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "not_ready", "error": "db not initialized"})
		}
		if err := db.Conn.Ping(context.Background()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "not_ready", "error": "db unreachable"})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ready"})
	})

	// Uploaded gig images are served from disk
	e.Static("/assets/images", cfg.UploadDir)

	// Auth routes with per-IP rate limiting to protect signup/login from abuse
	authGroup := e.Group("/auth")
	authGroup.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))
	authGroup.POST("/signup", auth.Signup)
	authGroup.POST("/login", auth.Login)

	// Public catalog
	e.GET("/gigs", marketplace.ListGigs)
	e.GET("/gigs/:id", marketplace.GetGig)
	e.GET("/users/:id/profile", user.GetPublicProfile)
	e.GET("/sellers/:id/reviews", marketplace.GetSellerReviews)

	// Protected routes
	api := e.Group("")
	api.Use(mware.JWTMiddleware)

	api.GET("/auth/me", auth.Me)

	api.GET("/profile", user.GetProfile)
	api.PUT("/profile", user.UpdateProfile)
	api.GET("/dashboard/seller", user.SellerDashboard, mware.RequireRoles("SELLER", "ADMIN"))

	api.GET("/gigs/me", marketplace.GetUserGigs, mware.RequireRoles("SELLER", "ADMIN"))
	api.POST("/gigs", marketplace.CreateGig, mware.RequireRoles("SELLER", "ADMIN"))
	api.PUT("/gigs/:id", marketplace.UpdateGig, mware.RequireRoles("SELLER", "ADMIN"))
	api.DELETE("/gigs/:id", marketplace.DeleteGig, mware.RequireRoles("SELLER", "ADMIN"))

	api.POST("/orders", marketplace.CreateOrder)
	api.GET("/orders", marketplace.GetUserOrders)
	api.GET("/orders/:id", marketplace.GetOrder)
	api.POST("/orders/:id/start", marketplace.StartOrder)
	api.POST("/orders/:id/complete", marketplace.CompleteOrder)
	api.POST("/orders/:id/cancel", marketplace.CancelOrder)
	api.POST("/orders/:id/dispute", marketplace.DisputeOrder)
	api.POST("/orders/:id/review", marketplace.CreateReview)
	api.GET("/orders/:id/review", marketplace.GetOrderReview)

	api.GET("/messages", messaging.ListMessages)
	api.POST("/messages", messaging.SendMessage)
	api.POST("/messages/read", messaging.MarkThreadRead)
	api.GET("/conversations", messaging.GetConversations)

	api.POST("/upload", upload.Images)

	api.GET("/notifications", alerts.ListNotifications)
	api.POST("/notifications/:id/read", alerts.MarkNotificationRead)

	// Admin routes
	adminGroup := e.Group("/admin")
	adminGroup.Use(mware.JWTMiddleware)
	adminGroup.Use(mware.AdminGuard)

	adminGroup.GET("/stats", admin.Stats)
	adminGroup.GET("/users", admin.ListUsers)
	adminGroup.POST("/users/:id/suspend", admin.SuspendUser)
	adminGroup.POST("/users/:id/activate", admin.ActivateUser)
	adminGroup.POST("/users/:id/promote-seller", admin.PromoteSeller)

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
