package checkoutControllers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/innomatricstech/Sadhana-Cart-ecom/cart"
	"github.com/innomatricstech/Sadhana-Cart-ecom/catalog"
	"github.com/innomatricstech/Sadhana-Cart-ecom/checkout"
	"github.com/innomatricstech/Sadhana-Cart-ecom/models"
	"github.com/innomatricstech/Sadhana-Cart-ecom/payment"
	"github.com/innomatricstech/Sadhana-Cart-ecom/pricing"
	"gorm.io/gorm"
)

// Sessions holds one in-flight checkout orchestrator per user. A new submit
// replaces any stale session; sessions end on Done or Cancel.
type Sessions struct {
	mu        sync.Mutex
	byUser    map[string]*checkout.Orchestrator
	byGwOrder map[string]string // gateway order id -> user id
}

func NewSessions() *Sessions {
	return &Sessions{
		byUser:    make(map[string]*checkout.Orchestrator),
		byGwOrder: make(map[string]string),
	}
}

func (s *Sessions) put(userID string, o *checkout.Orchestrator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byUser[userID] = o
}

func (s *Sessions) get(userID string) (*checkout.Orchestrator, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.byUser[userID]
	return o, ok
}

func (s *Sessions) drop(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byUser, userID)
	for gwOrderID, uid := range s.byGwOrder {
		if uid == userID {
			delete(s.byGwOrder, gwOrderID)
		}
	}
}

func (s *Sessions) bindGatewayOrder(gwOrderID, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byGwOrder[gwOrderID] = userID
}

func (s *Sessions) userForGatewayOrder(gwOrderID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.byGwOrder[gwOrderID]
	return userID, ok
}

type SubmitInput struct {
	BillingDetails models.BillingDetails `json:"billingDetails" binding:"required"`
	PaymentMethod  string                `json:"paymentMethod" binding:"required"`
}

// newOrchestrator wires a fresh checkout for the user's current cart.
func newOrchestrator(db *gorm.DB, gateway checkout.PaymentGateway, onOrder func(models.Order), userID string) *checkout.Orchestrator {
	store := cart.NewStore(cart.StorageKey(userID), &cart.GormPersister{DB: db})
	return &checkout.Orchestrator{
		UserID:  userID,
		Cart:    store,
		Billing: &checkout.GormBillingWriter{DB: db},
		Orders:  &checkout.GormOrderWriter{DB: db, OnCreate: onOrder},
		SKUs:    &catalog.Service{DB: db},
		Gateway: gateway,
	}
}

// POST /user/checkout
//
// Validates billing, persists it, snapshots the cart, and branches: COD moves
// to an explicit confirmation step, the gateway path creates the provider
// order and waits for its callback.
func Submit(db *gorm.DB, sessions *Sessions, gateway checkout.PaymentGateway, onOrder func(models.Order)) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input SubmitInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		o := newOrchestrator(db, gateway, onOrder, userID)
		if err := o.Submit(c.Request.Context(), input.BillingDetails, input.PaymentMethod); err != nil {
			var vErr *checkout.ValidationError
			if errors.As(err, &vErr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": vErr.Field})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		sessions.put(userID, o)

		switch o.State() {
		case checkout.StateAwaitingConfirmation:
			c.JSON(http.StatusOK, gin.H{
				"state":          o.State(),
				"paymentMethod":  models.PaymentMethodCOD,
				"total":          pricing.FormatINR(o.Total()),
				"itemsCount":     len(o.Snapshot()),
				"billingDetails": o.BillingDetails(),
			})
		case checkout.StateAwaitingPayment:
			gwOrderID, amountPaise, err := o.BeginPayment(c.Request.Context())
			if err != nil {
				sessions.drop(userID)
				c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
				return
			}
			sessions.bindGatewayOrder(gwOrderID, userID)
			c.JSON(http.StatusOK, gin.H{
				"state":            o.State(),
				"paymentMethod":    models.PaymentMethodRazorpay,
				"gateway_order_id": gwOrderID,
				"amount":           amountPaise,
				"currency":         "INR",
			})
		}
	}
}

// POST /user/checkout/confirm — the explicit COD confirmation step.
func ConfirmCOD(sessions *Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		o, ok := sessions.get(userID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "No checkout in progress"})
			return
		}

		order, err := o.ConfirmCOD(c.Request.Context())
		if err != nil {
			// Cart intact, session still confirmable: the user retries.
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		sessions.drop(userID)

		c.JSON(http.StatusOK, gin.H{
			"message":        "Order placed successfully!",
			"orderId":        order.OrderRef,
			"paymentMethod":  order.PaymentMethod,
			"total":          pricing.FormatINR(order.TotalAmount),
			"itemsCount":     len(order.Items),
			"billingDetails": o.BillingDetails(),
		})
	}
}

// POST /user/checkout/cancel — abandons the session with no side effects.
func Cancel(sessions *Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		if o, ok := sessions.get(userID); ok {
			o.Cancel()
			sessions.drop(userID)
		}
		c.JSON(http.StatusOK, gin.H{"message": "Checkout cancelled"})
	}
}

// POST /payment/webhook
//
// The gateway's asynchronous completion callback. A captured payment resumes
// the matching session; a failed one aborts it with no order record.
func PaymentWebhook(sessions *Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read webhook body"})
			return
		}
		ev, err := payment.ParseWebhook(body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		entity := ev.Payload.Payment.Entity
		userID, ok := sessions.userForGatewayOrder(entity.OrderID)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"message": "No matching checkout session"})
			return
		}
		o, ok := sessions.get(userID)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"message": "No matching checkout session"})
			return
		}

		switch ev.Event {
		case "payment.captured":
			order, err := o.CompletePayment(c.Request.Context(), entity.ID)
			if err != nil {
				log.Printf("failed to save paid order for user %s: %v", userID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			sessions.drop(userID)
			c.JSON(http.StatusOK, gin.H{"message": "Order placed successfully", "orderId": order.OrderRef})
		case "payment.failed":
			o.FailPayment()
			sessions.drop(userID)
			c.JSON(http.StatusOK, gin.H{"message": "Payment not successful"})
		default:
			c.JSON(http.StatusOK, gin.H{"message": "Event ignored"})
		}
	}
}
