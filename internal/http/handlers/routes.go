package handlers

import (
	"github.com/labstack/echo/v4"

	"sellerdesk/internal/app"
	"sellerdesk/internal/http/middleware"
)

// SetupRoutes sets up all API routes
func SetupRoutes(api *echo.Group, services *app.Services) {
	// Auth routes (no authentication required)
	authHandler := NewAuthHandler(services.AuthService)
	authGroup := api.Group("/auth")
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", authHandler.Logout)

	// WebSocket endpoint (authenticates via query parameter)
	wsHandler := NewImportProgressHandler(services.AuthService)
	services.Importer.SetNotifier(wsHandler.Broadcast)
	api.GET("/ws/imports", wsHandler.Handle)

	// Protected routes (require authentication)
	protected := api.Group("")
	protected.Use(middleware.JWTAuth(services.AuthService))

	profileAuth := protected.Group("/auth")
	profileAuth.GET("/profile", authHandler.GetProfile)
	profileAuth.PUT("/profile", authHandler.UpdateProfile)
	profileAuth.PUT("/change-password", authHandler.ChangePassword)

	// Writes require manager or admin; viewers get the read surface
	write := middleware.ManagerOrAbove()

	// Products
	productHandler := NewProductHandler(services.ProductRepo, services.Importer, services.Storage)
	products := protected.Group("/products")
	products.GET("", productHandler.List)
	products.POST("", productHandler.Create, write)
	products.GET("/import/template", productHandler.ImportTemplate)
	products.POST("/import", productHandler.Import, write)
	products.GET("/import/jobs", productHandler.ListImportJobs)
	products.GET("/import/jobs/:id", productHandler.GetImportJob)
	products.GET("/:id", productHandler.Get)
	products.PUT("/:id", productHandler.Update, write)
	products.DELETE("/:id", productHandler.Delete, write)
	products.GET("/:id/images", productHandler.ListImages)
	products.POST("/:id/images", productHandler.AddImage, write)
	products.DELETE("/:id/images/:image_id", productHandler.DeleteImage, write)

	// Brands
	brandHandler := NewBrandHandler(services.BrandRepo, services.Storage)
	brands := protected.Group("/brands")
	brands.GET("", brandHandler.List)
	brands.POST("", brandHandler.Create, write)
	brands.POST("/upload", brandHandler.Upload, write)
	brands.GET("/:id", brandHandler.Get)
	brands.PUT("/:id", brandHandler.Update, write)
	brands.DELETE("/:id", brandHandler.Delete, write)

	// Marketplaces
	marketplaceHandler := NewMarketplaceHandler(services.MarketplaceRepo)
	marketplaces := protected.Group("/marketplaces")
	marketplaces.GET("", marketplaceHandler.List)
	marketplaces.POST("", marketplaceHandler.Create, write)
	marketplaces.GET("/:id", marketplaceHandler.Get)
	marketplaces.PUT("/:id", marketplaceHandler.Update, write)
	marketplaces.DELETE("/:id", marketplaceHandler.Delete, write)

	// Shipping companies
	shippingHandler := NewShippingHandler(services.ShippingRepo)
	shipping := protected.Group("/shipping-companies")
	shipping.GET("", shippingHandler.List)
	shipping.POST("", shippingHandler.Create, write)
	shipping.GET("/:id", shippingHandler.Get)
	shipping.PUT("/:id", shippingHandler.Update, write)
	shipping.DELETE("/:id", shippingHandler.Delete, write)

	// Listings
	listingHandler := NewListingHandler(services.ListingRepo, services.ProductRepo, services.Storage)
	listings := protected.Group("/listings")
	listings.GET("", listingHandler.List)
	listings.POST("", listingHandler.Create, write)
	listings.GET("/status", listingHandler.StatusCounts)
	listings.POST("/combinations", listingHandler.Combinations)
	listings.GET("/images/template", listingHandler.ImagesTemplate)
	listings.PUT("/images", listingHandler.BulkImages, write)
	listings.GET("/:id", listingHandler.Get)
	listings.PUT("/:id", listingHandler.Update, write)
	listings.DELETE("/:id", listingHandler.Delete, write)

	// Inventory
	inventoryHandler := NewInventoryHandler(services.InventoryRepo)
	inventory := protected.Group("/inventory")
	inventory.GET("", inventoryHandler.List)
	inventory.POST("", inventoryHandler.Create, write)
	inventory.GET("/low-stock", inventoryHandler.LowStock)
	inventory.GET("/:id", inventoryHandler.Get)
	inventory.PUT("/:id", inventoryHandler.Adjust, write)

	// Settings (admin only)
	settingsHandler := NewSettingsHandler(services.SettingsRepo, services.BrandRepo)
	settings := protected.Group("/settings", middleware.AdminOnly())
	settings.GET("", settingsHandler.List)
	settings.PUT("", settingsHandler.Update)
	settings.GET("/brands", settingsHandler.ListBrandSettings)
	settings.PUT("/brands", settingsHandler.UpdateBrandSetting)

	// User administration (admin only)
	adminUserHandler := NewAdminUserHandler(services.UserRepo, services.AuthService)
	admin := protected.Group("/admin", middleware.AdminOnly())
	admin.GET("/users", adminUserHandler.List)
	admin.POST("/users", adminUserHandler.Create)
	admin.GET("/users/:id", adminUserHandler.Get)
	admin.PUT("/users/:id/email", adminUserHandler.UpdateEmail)
	admin.PUT("/users/:id/username", adminUserHandler.UpdateUsername)
	admin.PUT("/users/:id/password", adminUserHandler.UpdatePassword)
	admin.PUT("/users/:id/role", adminUserHandler.UpdateRole)
	admin.DELETE("/users/:id/delete", adminUserHandler.Delete)
}
