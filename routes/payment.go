package routes

import (
	"github.com/gin-gonic/gin"
	checkoutControllers "github.com/innomatricstech/Sadhana-Cart-ecom/controllers/checkout"
	"github.com/innomatricstech/Sadhana-Cart-ecom/middleware"
)

func SetupPaymentRoutes(r *gin.Engine, sessions *checkoutControllers.Sessions) {
	payment := r.Group("/payment")
	{
		// Webhook endpoint: middleware handles sandbox/prod verification
		payment.POST("/webhook",
			middleware.RazorpayWebhookAuth(),
			checkoutControllers.PaymentWebhook(sessions),
		)
	}
}
