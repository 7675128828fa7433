package routes

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"velora_back_end/internal/handlers"
	"velora_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	corsConfig := cors.DefaultConfig()
	if origin := os.Getenv("FRONTEND_URL"); origin != "" {
		corsConfig.AllowOrigins = []string{origin}
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:8080"}
	}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsConfig))

	r.Use(middleware.WithSession())

	api := r.Group("/api")
	{
		// Auth
		api.POST("/auth/register", handlers.Register)
		api.POST("/auth/login", handlers.Login)
		api.POST("/auth/logout", handlers.Logout)
		api.GET("/auth/me", handlers.Me)

		// Catalogue
		api.GET("/products", handlers.GetProducts)
		api.GET("/products/:id", handlers.GetProduct)
		api.GET("/categories", handlers.GetCategories)

		// Panier
		api.GET("/cart", handlers.GetCart)
		api.POST("/cart/add", handlers.AddToCart)
		api.PUT("/cart/:productId", handlers.UpdateCartQuantity)
		api.DELETE("/cart/:productId", handlers.RemoveFromCart)
		api.DELETE("/cart", handlers.ClearCart)

		// Wishlist
		api.GET("/wishlist", handlers.GetWishlist)
		api.POST("/wishlist/toggle", handlers.ToggleWishlist)
		api.GET("/wishlist/contains/:productId", handlers.IsInWishlist)

		// Checkout
		api.POST("/checkout", handlers.PlaceOrder)
		api.POST("/checkout/promo", handlers.ApplyPromoCode)
		api.GET("/checkout/totals", handlers.GetCheckoutTotals)

		// Commandes
		api.GET("/orders", handlers.GetMyOrders)
		api.GET("/orders/track/:id", handlers.TrackOrder)
		api.DELETE("/orders/:id", handlers.DeleteOrder)

		// Contact
		api.POST("/contact", middleware.ContactRateLimit(), handlers.Contact)

		// Back-office
		admin := api.Group("/admin", middleware.RequireAdmin)
		{
			admin.POST("/products", handlers.CreateProduct)
			admin.PUT("/products/:id", handlers.UpdateProduct)
			admin.DELETE("/products/:id", handlers.DeleteProduct)
			admin.PUT("/products/:id/stock", handlers.UpdateStock)
			admin.POST("/products/images", handlers.UploadProductImage)
			admin.GET("/orders", handlers.GetAllOrders)
			admin.PUT("/orders/:id/status", handlers.AdvanceOrderStatus)
		}
	}
}
