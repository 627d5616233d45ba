package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/heywrld/internal/cart"
	"github.com/example/heywrld/internal/config"
	"github.com/example/heywrld/internal/handlers"
	"github.com/example/heywrld/internal/middleware"
	"github.com/example/heywrld/internal/services"
	"github.com/example/heywrld/internal/storage"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, store storage.Storage, manager *cart.Manager, cfg *config.Config) {
	gateway := services.NewFlutterwaveService(cfg.PaymentDelay)

	authHandler := handlers.NewAuthHandler(store, cfg)
	catalogHandler := handlers.NewCatalogHandler(store)
	productHandler := handlers.NewProductHandler(store)
	orderHandler := handlers.NewOrderHandler(store)
	cartHandler := handlers.NewCartHandler(manager, store)
	checkoutHandler := handlers.NewCheckoutHandler(store, gateway, manager)
	profileHandler := handlers.NewProfileHandler(store)
	adminHandler := handlers.NewAdminHandler(store)

	requireAuth := middleware.AuthMiddleware(cfg)
	optionalAuth := middleware.OptionalAuthMiddleware(cfg)
	adminOnly := []fiber.Handler{requireAuth, middleware.RequireAdmin(store)}
	withAdmin := func(handler fiber.Handler) []fiber.Handler {
		chain := make([]fiber.Handler, 0, len(adminOnly)+1)
		chain = append(chain, adminOnly...)
		return append(chain, handler)
	}

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Catalog routes
	categories := api.Group("/categories")
	categories.Get("/", catalogHandler.ListCategories)
	categories.Get("/slug/:slug", catalogHandler.GetCategoryBySlug)
	categories.Get("/:id", catalogHandler.GetCategory)
	categories.Post("/", withAdmin(catalogHandler.CreateCategory)...)
	categories.Patch("/:id", withAdmin(catalogHandler.UpdateCategory)...)
	categories.Delete("/:id", withAdmin(catalogHandler.DeleteCategory)...)

	// Products
	products := api.Group("/products")
	productHandler.RegisterProductRoutes(products, adminOnly)

	// Cart: session-scoped, no auth required
	cartRoutes := api.Group("/cart")
	cartRoutes.Get("/", cartHandler.GetCart)
	cartRoutes.Post("/items", cartHandler.AddItem)
	cartRoutes.Patch("/items/:productId", cartHandler.UpdateQuantity)
	cartRoutes.Delete("/items/:productId", cartHandler.RemoveItem)
	cartRoutes.Delete("/", cartHandler.ClearCart)

	// Checkout: guests allowed, a token attaches the order to the account
	checkoutRoutes := api.Group("/checkout", optionalAuth)
	checkoutRoutes.Get("/", checkoutHandler.GetState)
	checkoutRoutes.Post("/shipping", checkoutHandler.SubmitShipping)
	checkoutRoutes.Post("/back", checkoutHandler.BackToShipping)
	checkoutRoutes.Post("/payment", checkoutHandler.Pay)

	// Orders
	api.Post("/orders", optionalAuth, orderHandler.CreateOrder)
	api.Get("/orders", withAdmin(orderHandler.ListOrders)...)
	api.Get("/orders/:id", withAdmin(orderHandler.GetOrder)...)
	api.Patch("/orders/:id", withAdmin(orderHandler.UpdateOrder)...)

	// Profile
	protected := api.Group("", requireAuth)
	protected.Get("/profile", profileHandler.GetProfile)
	protected.Put("/profile", profileHandler.UpdateProfile)

	// Back office
	admin := api.Group("/admin", adminOnly...)
	admin.Get("/dashboard", adminHandler.Dashboard)
}
