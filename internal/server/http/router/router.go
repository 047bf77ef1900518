package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/opticart/checkout/internal/server/http/handlers"
	"github.com/opticart/checkout/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.CheckoutFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	checkoutHandler := handlers.NewCheckoutHandler(facade)
	gatewayHandler := handlers.NewGatewayHandler(facade)
	locationHandler := handlers.NewLocationHandler(facade)

	api := engine.Group("/api")
	api.POST("/checkout", checkoutHandler.Start)
	api.GET("/checkout/attempts", checkoutHandler.Attempts)
	api.PUT("/checkout/draft/:id", checkoutHandler.UpdateDraft)
	api.GET("/checkout/draft/:id", checkoutHandler.Draft)
	api.GET("/checkout/:id", checkoutHandler.Status)
	api.POST("/checkout/:id/gateway/success", gatewayHandler.Success)
	api.POST("/checkout/:id/gateway/failure", gatewayHandler.Failure)
	api.POST("/checkout/:id/gateway/dismiss", gatewayHandler.Dismiss)
	api.GET("/location/:code", locationHandler.Lookup)

	return engine
}
