package router

import (
	"fraudGuard/internal/middleware"
	"fraudGuard/internal/rest"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetSellerRoutes(api *echo.Group, fraudHandler *rest.FraudHandler, suspicionHandler *rest.SuspicionHandler) {
	sellers := api.Group("/sellers")
	sellers.GET("/:name/fraud", fraudHandler.GetSellerFraud)
	sellers.POST("/fraud", fraudHandler.ScoreSellers)

	// generative API calls are billed per request
	sellers.POST("/suspicion", suspicionHandler.Assess, middleware.AuthMiddleware())
}

func SetReviewRoutes(api *echo.Group, handler *rest.ReviewHandler) {
	reviews := api.Group("/reviews")
	reviews.POST("/analyze", handler.Analyze)
}

func SetProductRoutes(api *echo.Group, handler *rest.CounterfeitHandler) {
	products := api.Group("/products")
	products.POST("/verify", handler.Verify)
	products.POST("/:id/verify", handler.VerifyListing)
}

func SetOpsRoutes(e *echo.Echo, health *rest.HealthHandler) {
	e.GET("/healthz", health.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
