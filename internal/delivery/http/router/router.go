// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"pressmart/internal/delivery/http/middleware"
	"pressmart/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	ProductHandler *handler.ProductHandler
	AdminHandler   *handler.AdminHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	productHandler *handler.ProductHandler
	adminHandler   *handler.AdminHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		productHandler: params.ProductHandler,
		adminHandler:   params.AdminHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.POST("/refresh", r.userHandler.RefreshToken)
	}

	// Identity routes that require authentication
	userGroup := e.Group("/users")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/profile", r.userHandler.GetProfile)
		userGroup.PUT("/profile", r.userHandler.UpdateProfile)
		userGroup.POST("/become-seller", r.userHandler.BecomeSeller)
		userGroup.POST("/become-manufacturer", r.userHandler.BecomeManufacturer)
	}

	// Public catalog routes
	productGroup := e.Group("/products")
	{
		productGroup.GET("", r.productHandler.ListApproved)
	}

	// Authenticated catalog routes. Registration order matters: the static
	// /mine path must beat the :id parameter routes.
	productGroup.GET("/mine", r.productHandler.ListMine, r.authMiddleware.Authenticate)
	productGroup.GET("/:id", r.productHandler.GetByID)
	productGroup.POST("", r.productHandler.Create, r.authMiddleware.Authenticate)
	productGroup.PUT("/:id", r.productHandler.Update, r.authMiddleware.Authenticate)
	productGroup.DELETE("/:id", r.productHandler.Delete, r.authMiddleware.Authenticate)
	productGroup.POST("/:id/reviews", r.productHandler.AddReview, r.authMiddleware.Authenticate)

	// Seller dashboard routes
	sellerGroup := e.Group("/seller")
	sellerGroup.Use(r.authMiddleware.Authenticate)
	{
		sellerGroup.GET("/stats", r.productHandler.SellerStats)
		sellerGroup.GET("/recent-products", r.productHandler.RecentProducts)
	}

	// Admin routes. The middleware only authenticates; the admin usecase
	// re-checks the acting role on every call.
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	{
		adminGroup.GET("/users", r.adminHandler.ListUsers)
		adminGroup.GET("/users/pending-manufacturers", r.adminHandler.ListPendingManufacturers)
		adminGroup.PUT("/users/:id/role", r.adminHandler.UpdateUserRole)
		adminGroup.PUT("/users/:id/verification", r.adminHandler.UpdateUserVerification)
		adminGroup.GET("/products", r.adminHandler.ListAllProducts)
		adminGroup.PUT("/products/:id/status", r.adminHandler.SetProductStatus)
		adminGroup.GET("/stats", r.adminHandler.Stats)
	}
}
