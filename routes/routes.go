package routes

import (
	"time"

	"unisale-backend/handlers"
	"unisale-backend/middleware"
	"unisale-backend/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, store storage.Client, verifier middleware.TokenVerifier, allowedEmailDomain string) {
	// Initialize handlers
	userHandler := &handlers.UserHandler{DB: db, Storage: store, AllowedEmailDomain: allowedEmailDomain}
	productHandler := &handlers.ProductHandler{DB: db, Storage: store}
	wishlistHandler := &handlers.WishlistHandler{DB: db}
	cartHandler := &handlers.CartHandler{DB: db}
	orderHandler := &handlers.OrderHandler{DB: db}

	// Uploads, sign-ups and checkouts are the expensive or abusable writes.
	writeLimiter := middleware.NewRateLimiter(20, time.Minute)

	// Public routes
	r.GET("/get-products", productHandler.GetProducts)
	r.GET("/product/:id", productHandler.GetProduct)
	r.GET("/user/:id", userHandler.GetUser)

	// Signup only needs a valid token; the user row does not exist yet.
	r.POST("/signup", middleware.VerifyTokenMiddleware(verifier), writeLimiter.Middleware(), userHandler.Signup)

	// Protected routes (require a registered user)
	protected := r.Group("")
	protected.Use(middleware.AuthMiddleware(verifier, db))
	{
		// Profile
		protected.GET("/get-profile", userHandler.GetProfile)
		protected.POST("/update-name", userHandler.UpdateName)
		protected.POST("/update-phone-number", userHandler.UpdatePhoneNumber)
		protected.POST("/update-profile-picture", writeLimiter.Middleware(), userHandler.UpdateProfilePicture)

		// Wishlist
		protected.POST("/toggle-wishlist", wishlistHandler.ToggleWishlist)
		protected.GET("/get-wishlist", wishlistHandler.GetWishlist)
	}

	api := protected.Group("/api")
	{
		api.GET("/userid", userHandler.GetUserID)

		// Products
		api.POST("/upload", writeLimiter.Middleware(), productHandler.UploadProduct)
		api.POST("/upload-multiple", writeLimiter.Middleware(), productHandler.UploadProductMultiple)
		api.PUT("/products/:id", productHandler.UpdateProduct)

		api.POST("/wishlist/check/:product_id", wishlistHandler.CheckWishlist)

		// Cart
		api.GET("/cart", cartHandler.GetCart)
		api.POST("/cart", cartHandler.AddToCart)
		api.POST("/cart/add", cartHandler.AddToCart)
		api.POST("/cart/remove", cartHandler.RemoveFromCart)

		// Orders
		api.POST("/checkout", writeLimiter.Middleware(), orderHandler.Checkout)
		api.GET("/orders", orderHandler.GetOrders)
		api.GET("/orders/:id", orderHandler.GetOrder)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
