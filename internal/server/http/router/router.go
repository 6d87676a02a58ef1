package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	pkgAuth "github.com/edumart/edumart/internal/pkg/auth"
	"github.com/edumart/edumart/internal/pkg/webhook"
	"github.com/edumart/edumart/internal/server/http/handlers"
	"github.com/edumart/edumart/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(
	facade handlers.PlatformFacade,
	strategy pkgAuth.Strategy,
	identityVerifier *webhook.IdentityVerifier,
	paymentVerifier *webhook.PaymentVerifier,
	logger *slog.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	courseHandler := handlers.NewCourseHandler(facade)
	educatorHandler := handlers.NewEducatorHandler(facade)
	userHandler := handlers.NewUserHandler(facade)
	purchaseHandler := handlers.NewPurchaseHandler(facade)
	webhookHandler := handlers.NewWebhookHandler(facade, identityVerifier, paymentVerifier, logger)

	webhooks := engine.Group("/webhooks")
	webhooks.POST("/identity", webhookHandler.Identity)
	webhooks.POST("/payment", webhookHandler.Payment)

	api := engine.Group("/api")
	api.GET("/courses", courseHandler.List)
	api.GET("/courses/:id", courseHandler.Get)
	api.GET("/educators", educatorHandler.Educators)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(strategy))

	authed.POST("/courses", middleware.EducatorRequired(), courseHandler.Create)

	educator := authed.Group("/educator")
	educator.Use(middleware.EducatorRequired())
	educator.GET("/courses", educatorHandler.Courses)
	educator.GET("/dashboard", educatorHandler.Dashboard)

	user := authed.Group("/user")
	user.GET("/me", userHandler.Me)
	user.GET("/courses", userHandler.Courses)
	user.POST("/progress", userHandler.UpdateProgress)
	user.GET("/progress/:courseId", userHandler.GetProgress)
	user.POST("/ratings", userHandler.Rate)
	user.POST("/purchases", purchaseHandler.Create)

	return engine
}
