package auth

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/innomatricstech/Sadhana-Cart-ecom/cart"
	"github.com/innomatricstech/Sadhana-Cart-ecom/models"
	"gorm.io/gorm"
)

type loginRequest struct {
	IDToken string `json:"idToken" binding:"required"`

	// Cart the device accumulated before login; merged into the persisted
	// cart through the normal add rules.
	DeviceCart []models.CartLineItem `json:"deviceCart"`
}

// GoogleUserLoginHandler verifies a Firebase ID token, upserts the user,
// merges any device cart into the persisted one, and issues a session JWT.
func GoogleUserLoginHandler(db *gorm.DB, verifier *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		token, err := verifier.Verify(c.Request.Context(), req.IDToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Firebase ID token"})
			return
		}

		email, _ := token.Claims["email"].(string)
		name, _ := token.Claims["name"].(string)
		picture, _ := token.Claims["picture"].(string)
		firebaseUserID := token.UID

		var user models.User
		err = db.Where("id = ?", firebaseUserID).First(&user).Error
		if err == gorm.ErrRecordNotFound {
			user = models.User{
				ID:       firebaseUserID,
				Email:    email,
				Name:     name,
				Picture:  picture,
				Provider: "google",
			}
			if err := db.Create(&user).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
				return
			}
		} else if err == nil {
			db.Model(&user).Updates(models.User{Name: name, Picture: picture})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		mergeStatus := "no-device-cart"
		if len(req.DeviceCart) > 0 {
			store := cart.NewStore(cart.StorageKey(user.ID), &cart.GormPersister{DB: db})
			store.Merge(req.DeviceCart)
			mergeStatus = "merged-success"
		}

		c.JSON(http.StatusOK, gin.H{
			"message":      "Login successful",
			"merge_status": mergeStatus,
			"user":         user,
			"firebase_id":  firebaseUserID,
			"token":        issueJWT(email, "user", firebaseUserID, name, picture),
		})
	}
}

// issueJWT generates a JWT token for a user
func issueJWT(email, role, userID, name, picture string) string {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"name":    name,
		"picture": picture,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return ""
	}

	return signedToken
}
