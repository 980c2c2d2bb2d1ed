package router

import (
	"policyAdvisor/internal/middleware"
	"policyAdvisor/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupAuthRoutes(api *echo.Group, handler *rest.AuthHandler) {
	api.POST("/admin/login", handler.AdminLogin)
}

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler) {
	reco := api.Group("/recommendations")
	reco.GET("", handler.Recommend)

	admin := api.Group("/admin/snapshot", middleware.AuthMiddleware(), middleware.AdminOnly())
	admin.POST("/reload", handler.ReloadSnapshot)
}

func SetupPolicyRoutes(api *echo.Group, handler *rest.PolicyHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	policies := api.Group("/policies")

	policies.GET("", handler.GetAllPolicies)
	policies.GET("/search", handler.SearchPolicies)
	policies.GET("/:id", handler.GetPolicyByID)

	policies.POST("", handler.CreatePolicy, authRequired, adminOnly)
	policies.POST("/import", handler.ImportPolicies, authRequired, adminOnly)
	policies.PUT("/:id", handler.UpdatePolicy, authRequired, adminOnly)
	policies.DELETE("/:id", handler.DeletePolicy, authRequired, adminOnly)
}

func SetupCustomerRoutes(api *echo.Group, handler *rest.CustomerHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	customers := api.Group("/customers")

	customers.GET("", handler.GetAllCustomers, authRequired, adminOnly)
	customers.GET("/:id", handler.GetCustomerByID, authRequired, adminOnly)
}

func SetupPromotionRoutes(api *echo.Group, handler *rest.PromotionHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	promotions := api.Group("/promotions")

	promotions.GET("/active", handler.GetActivePromotions)

	promotions.GET("", handler.GetAllPromotions, authRequired, adminOnly)
	promotions.GET("/:id", handler.GetPromotionByID, authRequired, adminOnly)
	promotions.POST("", handler.CreatePromotion, authRequired, adminOnly)
	promotions.PUT("/:id", handler.UpdatePromotion, authRequired, adminOnly)
	promotions.DELETE("/:id", handler.DeletePromotion, authRequired, adminOnly)
}

func SetupTrackingRoutes(api *echo.Group, handler *rest.TrackingHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	api.POST("/track", handler.Track)
	api.GET("/track/recent", handler.RecentEvents, authRequired, adminOnly)
}

func SetupCartRoutes(api *echo.Group, handler *rest.CartHandler) {
	cart := api.Group("/cart")
	cart.POST("/items", handler.AddItem)
	cart.GET("/:customer_id", handler.GetCart)
	cart.POST("/checkout", handler.Checkout)
}

func SetupDashboardRoutes(api *echo.Group, handler *rest.DashboardHandler) {
	admin := api.Group("/admin", middleware.AuthMiddleware(), middleware.AdminOnly())
	admin.GET("/analytics", handler.GetAnalytics)
}
