package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/innomatricstech/Sadhana-Cart-ecom/auth"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, verifier *auth.Verifier) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/google-user", auth.GoogleUserLoginHandler(db, verifier))
	}
}
