package router

import (
	"scentMatch/internal/middleware"
	"scentMatch/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler) {
	reco := api.Group("/recommendations", middleware.OptionalAuth())

	reco.POST("", handler.Recommend)
	reco.GET("/experience", handler.ExperienceProfile, middleware.RequireAuth())
	reco.GET("/session/:token", handler.GetSession)
	reco.POST("/feedback", handler.Feedback, middleware.RequireAuth())
}

func SetCacheAdminRoutes(api *echo.Group, handler *rest.CacheAdminHandler) {
	admin := api.Group("/admin/cache", middleware.OptionalAuth(), middleware.AdminOnly())

	admin.GET("/metrics", handler.GetMetrics)
}
