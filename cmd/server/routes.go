package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ahorros.backend/internal/interfaces/http/handlers"
	"ahorros.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler      *handlers.AuthHandler
	userHandler      *handlers.UserHandler
	eventHandler     *handlers.EventHandler
	depositHandler   *handlers.DepositHandler
	dashboardHandler *handlers.DashboardHandler
	healthHandler    *handlers.HealthHandler
	authMiddleware   gin.HandlerFunc
	idempotencyTTL   time.Duration
}

type infraDeps struct {
	healthHandler  *handlers.HealthHandler
	depositFeed    *handlers.DepositFeed
	receiptsDir    string
	receiptsPrefix string
}

func applyCORSMiddleware(r *gin.Engine, frontendURL string) {
	origins := []string{"http://localhost:3000", "http://localhost:5173"}
	for _, o := range strings.Split(frontendURL, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

func registerInfraRoutes(r *gin.Engine, d infraDeps) {
	r.GET("/health", d.healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if d.receiptsDir != "" {
		r.StaticFS(d.receiptsPrefix, http.Dir(d.receiptsDir))
	}
	if d.depositFeed != nil {
		r.GET("/ws/events/:eventId", d.depositFeed.HandleWS)
	}
}

func registerAPIRoutes(r *gin.Engine, d routeDeps) {
	api := r.Group("/api")
	{
		api.GET("/health", d.healthHandler.Health)

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/register-first-admin", d.authHandler.RegisterFirstAdmin)
			auth.POST("/refresh", d.authHandler.RefreshToken)
			auth.POST("/register", d.authMiddleware, middleware.RequireAdmin(), d.authHandler.Register)
			auth.GET("/me", d.authMiddleware, d.authHandler.GetMe)
			auth.POST("/change-password", d.authMiddleware, d.authHandler.ChangePassword)
			auth.POST("/skip-password-change", d.authMiddleware, d.authHandler.SkipPasswordChange)
		}

		// User routes
		users := api.Group("/users")
		users.Use(d.authMiddleware)
		{
			users.GET("/me", d.userHandler.GetMe)
			users.PUT("/me", d.userHandler.UpdateMe)
			users.GET("", middleware.RequireAdmin(), d.userHandler.ListUsers)
			users.GET("/:id", middleware.RequireAdmin(), d.userHandler.GetUser)
			users.PUT("/:id", middleware.RequireAdmin(), d.userHandler.UpdateUser)
			users.DELETE("/:id", middleware.RequireAdmin(), d.userHandler.DeleteUser)
		}

		// Deposit routes. Receipts are downloadable from the WhatsApp link without a session.
		api.GET("/deposits/:depositId/receipt", d.depositHandler.DownloadReceipt)
		deposits := api.Group("/deposits")
		deposits.Use(d.authMiddleware)
		{
			deposits.GET("/my", d.depositHandler.ListMine)
			deposits.GET("/my/:eventId", d.depositHandler.ListMineByEvent)
			deposits.POST("", middleware.RequireAdmin(), middleware.IdempotencyMiddleware(d.idempotencyTTL), d.depositHandler.CreateDeposit)
			deposits.GET("", middleware.RequireAdmin(), d.depositHandler.ListAll)
			deposits.GET("/user/:id", middleware.RequireAdmin(), d.depositHandler.ListByUser)
		}

		// Dashboard routes
		dashboard := api.Group("/dashboard")
		dashboard.Use(d.authMiddleware)
		{
			dashboard.GET("/me", d.dashboardHandler.GetMyDashboard)
			dashboard.GET("/ranking", d.dashboardHandler.GetRanking)
			dashboard.GET("/badges/my", d.dashboardHandler.GetMyBadges)
			dashboard.GET("/badges/catalog", d.dashboardHandler.GetCatalog)
			dashboard.GET("/badges/user/:id", middleware.RequireAdmin(), d.dashboardHandler.GetUserBadges)
			dashboard.GET("/user/:id", middleware.RequireAdmin(), d.dashboardHandler.GetUserDashboard)
			dashboard.GET("/admin/stats", middleware.RequireAdmin(), d.dashboardHandler.GetAdminStats)
		}

		// Event routes
		events := api.Group("/events")
		events.Use(d.authMiddleware)
		{
			events.GET("", d.eventHandler.ListEvents)
			events.GET("/primary", d.eventHandler.GetPrimary)
			events.GET("/user/registered", d.eventHandler.ListRegistered)
			events.GET("/:eventId", d.eventHandler.GetEvent)
			events.POST("/:eventId/register", d.eventHandler.Register)
			events.DELETE("/:eventId/unregister", d.eventHandler.Unregister)

			events.POST("", middleware.RequireAdmin(), d.eventHandler.CreateEvent)
			events.PUT("/:eventId", middleware.RequireAdmin(), d.eventHandler.UpdateEvent)
			events.DELETE("/:eventId", middleware.RequireAdmin(), d.eventHandler.DeleteEvent)
			events.GET("/:eventId/stats", middleware.RequireAdmin(), d.eventHandler.GetStats)
			events.POST("/:eventId/register-user", middleware.RequireAdmin(), d.eventHandler.RegisterUser)
			events.DELETE("/:eventId/unregister-user", middleware.RequireAdmin(), d.eventHandler.UnregisterUser)
			events.POST("/:eventId/badges/reevaluate", middleware.RequireAdmin(), d.dashboardHandler.ReevaluateBadges)
		}
	}
}
