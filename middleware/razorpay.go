package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// RazorpayWebhookAuth verifies the webhook signature, skips check in sandbox/dev mode
func RazorpayWebhookAuth() gin.HandlerFunc {
	secret := os.Getenv("RAZORPAY_WEBHOOK_SECRET")
	if secret == "" {
		panic("RAZORPAY_WEBHOOK_SECRET is not set")
	}

	mode := strings.ToLower(os.Getenv("RAZORPAY_MODE"))

	return func(c *gin.Context) {
		if mode == "sandbox" || mode == "dev" {
			log.Println("Sandbox/dev mode: skipping Razorpay webhook signature verification")
			c.Next()
			return
		}

		provided := c.GetHeader("X-Razorpay-Signature")
		if provided == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "missing webhook signature"})
			c.Abort()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body for signature verification"})
			c.Abort()
			return
		}
		// Hand the body back to the webhook handler.
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write(body)
		calculated := hex.EncodeToString(mac.Sum(nil))

		if !hmac.Equal([]byte(calculated), []byte(strings.ToLower(provided))) {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid webhook signature"})
			c.Abort()
			return
		}

		c.Next()
	}
}
