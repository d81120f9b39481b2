package router

import (
	"shopsmart/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupEventRoutes(api *echo.Group, handler *rest.EventHandler) {
	events := api.Group("/events")
	events.POST("", handler.TrackEvent)
}

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler) {
	api.GET("/recommendations", handler.Recommend)
	api.GET("/similar-products", handler.SimilarProducts)
}

func SetupProductRoutes(api *echo.Group, handler *rest.CatalogHandler) {
	products := api.Group("/products")

	products.GET("", handler.ListProducts)
	products.GET("/:id", handler.GetProductByID)
}

func SetupCategoryRoutes(api *echo.Group, handler *rest.CatalogHandler) {
	categories := api.Group("/categories")
	categories.GET("", handler.ListCategories)
}
