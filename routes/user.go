package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/innomatricstech/Sadhana-Cart-ecom/checkout"
	cartControllers "github.com/innomatricstech/Sadhana-Cart-ecom/controllers/cart"
	checkoutControllers "github.com/innomatricstech/Sadhana-Cart-ecom/controllers/checkout"
	orderControllers "github.com/innomatricstech/Sadhana-Cart-ecom/controllers/order"
	productControllers "github.com/innomatricstech/Sadhana-Cart-ecom/controllers/product"
	userControllers "github.com/innomatricstech/Sadhana-Cart-ecom/controllers/user"
	"github.com/innomatricstech/Sadhana-Cart-ecom/middleware"
	"gorm.io/gorm"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, sessions *checkoutControllers.Sessions, gateway checkout.PaymentGateway) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// ──────────────── User Profile ────────────────
		userGroup.GET("/", userControllers.GetUser(db))    // GET /user/
		userGroup.PUT("/", userControllers.UpdateUser(db)) // PUT /user/

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetUserCart(db))
			cartGroup.POST("/items", cartControllers.AddCartItem(db))
			cartGroup.POST("/items/:product_id/increase", cartControllers.IncreaseCartItem(db))
			cartGroup.POST("/items/:product_id/decrease", cartControllers.DecreaseCartItem(db))
			cartGroup.DELETE("/items/:product_id", cartControllers.RemoveCartItem(db))
			cartGroup.DELETE("/", cartControllers.ClearUserCart(db))
			cartGroup.POST("/error/ack", cartControllers.AcknowledgeCartError(db))
			cartGroup.PUT("/billing", cartControllers.SetBillingDetails(db))
		}

		// ──────────────── Checkout ────────────────
		checkoutGroup := userGroup.Group("/checkout")
		{
			checkoutGroup.POST("/", checkoutControllers.Submit(db, sessions, gateway, orderControllers.BroadcastNewOrder))
			checkoutGroup.POST("/confirm", checkoutControllers.ConfirmCOD(sessions))
			checkoutGroup.POST("/cancel", checkoutControllers.Cancel(sessions))
		}

		// ──────────────── Browse Products ────────────────
		userGroup.GET("/products", productControllers.GetProducts(db))
		userGroup.GET("/products/:id", productControllers.GetProductByID(db))
	}
}
