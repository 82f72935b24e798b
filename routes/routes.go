package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/innomatricstech/Sadhana-Cart-ecom/auth"
	"github.com/innomatricstech/Sadhana-Cart-ecom/checkout"
	checkoutControllers "github.com/innomatricstech/Sadhana-Cart-ecom/controllers/checkout"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up Auth, User, Order and
// Payment route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, verifier *auth.Verifier, gateway checkout.PaymentGateway) {
	sessions := checkoutControllers.NewSessions()

	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db, verifier)

	// User routes (JWT-protected): profile, cart, checkout, products
	SetupUserRoutes(r, db, sessions, gateway)

	// Order routes
	SetupOrderRoutes(r, db)

	// Payment gateway callback
	SetupPaymentRoutes(r, sessions)
}
