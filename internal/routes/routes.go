package routes

import (
	"ndiougueshop_back_end/internal/handlers/admin"
	"ndiougueshop_back_end/internal/handlers/order"
	"ndiougueshop_back_end/internal/handlers/product"
	"ndiougueshop_back_end/internal/handlers/user"
	"ndiougueshop_back_end/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// CORS en premier : les preflights OPTIONS sont servis avant toute logique
	r.Use(middleware.CORS())

	api := r.Group("/api")

	// --- Catalogue public ---
	api.GET("/products", middleware.APIRateLimit(), product.GetAllProducts)
	api.GET("/products/search", middleware.APIRateLimit(), product.SearchProducts)
	api.GET("/products/:id", product.GetProductByID)
	api.GET("/products/:id/image", product.GetProductImageURL)
	api.GET("/categories", product.GetAllCategories)
	api.GET("/categories/:id/products", product.GetProductsByCategory)

	// Vérification des reçus (cible des QR codes)
	api.GET("/orders/:id/verify", order.VerifyOrder)

	// --- Espace client (authentifié) ---
	auth := api.Group("")
	auth.Use(middleware.AuthRequired())

	auth.POST("/orders", middleware.CheckoutRateLimit(), order.CreateOrder)
	auth.GET("/orders", order.GetMyOrders)
	auth.GET("/orders/:id", order.GetOrderByID)
	auth.POST("/orders/receipt", middleware.ReceiptRateLimit(), order.GenerateReceipt)
	auth.GET("/orders/:id/receipt/pdf", order.DownloadReceiptPDF)

	auth.GET("/profile", user.GetProfile)
	auth.PUT("/profile", user.UpdateProfile)

	// --- Back-office (admin) ---
	back := auth.Group("/admin")
	back.Use(middleware.RequireAdmin)

	back.GET("/products", product.GetAllProductsAdmin)
	back.POST("/products", product.CreateProduct)
	back.PUT("/products/:id", product.UpdateProduct)
	back.DELETE("/products/:id", product.DeleteProduct)
	back.POST("/products/:id/image", product.UploadProductImage)

	back.POST("/categories", product.CreateCategory)
	back.PUT("/categories/:id", product.UpdateCategory)
	back.DELETE("/categories/:id", product.DeleteCategory)

	back.GET("/orders", admin.GetAllOrders)
	back.PUT("/orders/:id/status", admin.UpdateOrderStatus)
	back.PUT("/orders/:id/payment", admin.UpdatePaymentStatus)
}
