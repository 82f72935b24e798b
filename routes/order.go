package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/innomatricstech/Sadhana-Cart-ecom/controllers/order"
	"github.com/innomatricstech/Sadhana-Cart-ecom/middleware"
	"gorm.io/gorm"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/orders")
	{
		// Fetch orders for a specific user (order history)
		orders.GET("/user/:userID", orderControllers.GetUserOrdersHandler(db))

		// Fetch single order by id or order ref
		orders.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))

		// websocket endpoint for real-time order updates
		orders.GET("/ws/orders", orderControllers.OrderWebSocketHandler)

		// Back-office endpoints (API-key protected)
		orders.GET("/", middleware.ValidateAPIKey, orderControllers.GetAllOrdersHandler(db))
		orders.GET("/export", middleware.ValidateAPIKey, orderControllers.ExportOrdersToExcel(db))
	}
}
