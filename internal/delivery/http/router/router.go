// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"smarket/internal/delivery/http/middleware"
	"smarket/internal/delivery/http/router/handler"
	"smarket/internal/domain/entity"
)

type RouterParams struct {
	fx.In

	ProductHandler      *handler.ProductHandler
	CommentHandler      *handler.CommentHandler
	OrderHandler        *handler.OrderHandler
	UserHandler         *handler.UserHandler
	GroupHandler        *handler.GroupHandler
	DonationHandler     *handler.DonationHandler
	RoleRequestHandler  *handler.RoleRequestHandler
	NotificationHandler *handler.NotificationHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	auth := r.params.AuthMiddleware
	api := e.Group("/api")
	api.Use(auth.Authenticate)

	// Catalog routes
	products := api.Group("/products")
	{
		products.GET("", r.params.ProductHandler.ListProducts)
		products.GET("/search", r.params.ProductHandler.SearchProducts)
		products.GET("/top-sellers", r.params.ProductHandler.TopSellers)
		products.GET("/:id", r.params.ProductHandler.GetProduct)
		products.POST("/:id/rating", r.params.ProductHandler.RateProduct)
		products.GET("/:id/comments", r.params.CommentHandler.ListProductComments)
		products.POST("/:id/comments", r.params.CommentHandler.AddComment)
		products.POST("", r.params.ProductHandler.CreateProduct, auth.RequireRole(entity.RoleAdmin))
		products.PUT("/:id", r.params.ProductHandler.UpdateProduct, auth.RequireRole(entity.RoleAdmin))
		products.DELETE("/:id", r.params.ProductHandler.DeleteProduct, auth.RequireRole(entity.RoleAdmin))
	}

	// Review routes
	comments := api.Group("/comments")
	{
		comments.DELETE("/:id", r.params.CommentHandler.DeleteComment)
	}

	// Order routes
	orders := api.Group("/orders")
	{
		orders.POST("", r.params.OrderHandler.PlaceOrder)
		orders.GET("/mine", r.params.OrderHandler.ListMyOrders)
		orders.GET("/:id", r.params.OrderHandler.GetOrder)
		orders.DELETE("/:id", r.params.OrderHandler.DeleteOrder)
		orders.GET("", r.params.OrderHandler.ListOrders, auth.RequireRole(entity.RoleAdmin))
		orders.PUT("/:id/status", r.params.OrderHandler.UpdateStatus, auth.RequireRole(entity.RoleAdmin))
		orders.GET("/monthly", r.params.OrderHandler.MonthlyDoneOrders, auth.RequireRole(entity.RoleAdmin))
		orders.GET("/top/count", r.params.OrderHandler.TopUsersByOrderCount, auth.RequireRole(entity.RoleAdmin))
		orders.GET("/top/payment", r.params.OrderHandler.TopUsersByPaymentTotal, auth.RequireRole(entity.RoleAdmin))
	}

	// Account routes
	users := api.Group("/users")
	{
		users.GET("/me", r.params.UserHandler.GetProfile)
		users.PUT("/me", r.params.UserHandler.UpdateProfile)
		users.GET("", r.params.UserHandler.ListUsers, auth.RequireRole(entity.RoleAdmin))
		users.GET("/birth-month/:month", r.params.UserHandler.ListByBirthMonth, auth.RequireRole(entity.RoleAdmin))
		users.GET("/:id", r.params.UserHandler.GetUser, auth.RequireRole(entity.RoleAdmin))
		users.DELETE("/:id", r.params.UserHandler.DeleteUser, auth.RequireRole(entity.RoleAdmin))
		users.PUT("/:id/coins", r.params.UserHandler.AdjustCoins, auth.RequireRole(entity.RoleAdmin))
	}

	// Referral group routes
	groups := api.Group("/groups")
	{
		groups.GET("/:id/members", r.params.GroupHandler.ListMembers)
		groups.POST("", r.params.GroupHandler.CreateGroup, auth.RequireRole(entity.RoleAdmin))
		groups.GET("", r.params.GroupHandler.ListGroups, auth.RequireRole(entity.RoleAdmin))
		groups.GET("/top-sales", r.params.GroupHandler.MonthlyTopSales, auth.RequireRole(entity.RoleAdmin))
		groups.GET("/:id", r.params.GroupHandler.GetGroup, auth.RequireRole(entity.RoleAdmin))
		groups.DELETE("/:id", r.params.GroupHandler.DeleteGroup, auth.RequireRole(entity.RoleAdmin))
		groups.POST("/transfer", r.params.GroupHandler.MoveAmbassador, auth.RequireRole(entity.RoleAdmin))
		groups.PUT("/:id/coordinator", r.params.GroupHandler.ReplaceCoordinator, auth.RequireRole(entity.RoleAdmin))
		groups.DELETE("/:id/ambassadors/:ambassadorId", r.params.GroupHandler.RemoveAmbassador, auth.RequireRole(entity.RoleAdmin))
	}

	// Help and Hope catalog and donation routes
	helpAndHope := api.Group("/help-and-hope")
	{
		helpAndHope.GET("", r.params.DonationHandler.ListItems)
		helpAndHope.GET("/:id", r.params.DonationHandler.GetItem)
		helpAndHope.POST("", r.params.DonationHandler.CreateItem, auth.RequireRole(entity.RoleAdmin))
		helpAndHope.PUT("/:id", r.params.DonationHandler.UpdateItem, auth.RequireRole(entity.RoleAdmin))
		helpAndHope.DELETE("/:id", r.params.DonationHandler.DeleteItem, auth.RequireRole(entity.RoleAdmin))
	}
	donations := api.Group("/donations")
	{
		donations.POST("", r.params.DonationHandler.Donate)
		donations.GET("/mine", r.params.DonationHandler.ListMyDonations)
		donations.GET("", r.params.DonationHandler.ListDonations, auth.RequireRole(entity.RoleAdmin))
		donations.GET("/monthly", r.params.DonationHandler.MonthlyDonations, auth.RequireRole(entity.RoleAdmin))
		donations.GET("/top/count", r.params.DonationHandler.TopDonorsByCount, auth.RequireRole(entity.RoleAdmin))
		donations.GET("/top/coins", r.params.DonationHandler.TopDonorsByCoins, auth.RequireRole(entity.RoleAdmin))
		donations.GET("/:id", r.params.DonationHandler.GetDonation, auth.RequireRole(entity.RoleAdmin))
		donations.DELETE("/:id", r.params.DonationHandler.DeleteDonation, auth.RequireRole(entity.RoleAdmin))
	}

	// Role escalation routes
	roleRequests := api.Group("/role-requests")
	{
		roleRequests.POST("", r.params.RoleRequestHandler.Submit)
		roleRequests.GET("", r.params.RoleRequestHandler.ListRequests, auth.RequireRole(entity.RoleAdmin))
		roleRequests.GET("/:id", r.params.RoleRequestHandler.GetRequest, auth.RequireRole(entity.RoleAdmin))
		roleRequests.PUT("/:id", r.params.RoleRequestHandler.Resolve, auth.RequireRole(entity.RoleAdmin))
		roleRequests.DELETE("/:id", r.params.RoleRequestHandler.DeleteRequest, auth.RequireRole(entity.RoleAdmin))
	}

	// Notification routes
	notifications := api.Group("/notifications")
	{
		notifications.GET("", r.params.NotificationHandler.ListMyNotifications)
		notifications.PUT("/:id/read", r.params.NotificationHandler.MarkRead)
		notifications.POST("/campaigns/ambassador-eligibility", r.params.NotificationHandler.NotifyAmbassadorEligibility, auth.RequireRole(entity.RoleAdmin))
		notifications.POST("/campaigns/coordinator-eligibility", r.params.NotificationHandler.NotifyCoordinatorEligibility, auth.RequireRole(entity.RoleAdmin))
		notifications.POST("/campaigns/first-order-discount", r.params.NotificationHandler.NotifyFirstOrderDiscount, auth.RequireRole(entity.RoleAdmin))
	}

	// Legacy path aliases kept for clients not yet on the resource-style routes.
	api.POST("/order/postorder", r.params.OrderHandler.PlaceOrder)
	api.GET("/order/userorders", r.params.OrderHandler.ListMyOrders)
	api.PUT("/order/updateorder/:id", r.params.OrderHandler.UpdateStatus, auth.RequireRole(entity.RoleAdmin))
	api.DELETE("/order/delete/:id", r.params.OrderHandler.DeleteOrder)
	api.GET("/group/totalsales", r.params.GroupHandler.MonthlyTopSales, auth.RequireRole(entity.RoleAdmin))
	api.POST("/donationHistory/postDonationHistory", r.params.DonationHandler.Donate)
	api.PUT("/roleRequest/:id", r.params.RoleRequestHandler.Resolve, auth.RequireRole(entity.RoleAdmin))
}
