package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/comprae/marketplace/internal/server/http/handlers"
	"github.com/comprae/marketplace/internal/server/http/middleware"
	"github.com/comprae/marketplace/internal/telemetry"
)

// Params collects router dependencies.
type Params struct {
	fx.In

	Facade  handlers.MarketplaceFacade
	Health  handlers.HealthChecker
	Metrics telemetry.MetricsHandler `optional:"true"`
	Logger  *slog.Logger
}

// Setup configures gin router with handlers and middleware.
func Setup(p Params) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(p.Logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(p.Facade)
	listingHandler := handlers.NewListingHandler(p.Facade)
	addressHandler := handlers.NewAddressHandler(p.Facade)
	orderHandler := handlers.NewOrderHandler(p.Facade)

	engine.GET("/healthz", handlers.NewHealthHandler(p.Health).Check)
	if p.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(p.Metrics))
	}

	api := engine.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	api.GET("/listings", listingHandler.Search)
	api.GET("/listings/:id", listingHandler.Get)

	private := api.Group("")
	private.Use(middleware.AuthRequired(p.Facade))

	private.POST("/listings", listingHandler.Create)
	private.PUT("/listings/:id", listingHandler.Update)

	private.POST("/addresses", addressHandler.Add)
	private.GET("/addresses", addressHandler.List)

	private.POST("/orders", orderHandler.Create)
	private.GET("/orders", orderHandler.ListBuyer)
	private.GET("/orders/:id", orderHandler.Get)
	private.POST("/orders/:id/pay", orderHandler.Pay)
	private.POST("/orders/:id/cancel", orderHandler.Cancel)
	private.POST("/orders/:id/confirm-delivery", orderHandler.ConfirmDelivery)
	private.POST("/orders/:id/rating", orderHandler.Rate)

	seller := private.Group("/seller")
	seller.GET("/listings", listingHandler.Mine)
	seller.GET("/orders", orderHandler.ListSeller)
	seller.POST("/orders/:id/price", orderHandler.SetPrice)
	seller.POST("/orders/:id/ship", orderHandler.Ship)

	return engine
}
