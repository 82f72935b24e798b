package checkout

import (
	"context"
	"fmt"
	"math"

	"github.com/innomatricstech/Sadhana-Cart-ecom/cart"
	"github.com/innomatricstech/Sadhana-Cart-ecom/models"
)

// State of a checkout session.
type State string

const (
	StateIdle                 State = "Idle"
	StateValidating           State = "Validating"
	StateAwaitingConfirmation State = "AwaitingConfirmation"
	StateAwaitingPayment      State = "AwaitingPayment"
	StateSaving               State = "Saving"
	StateDone                 State = "Done"
	StateError                State = "Error"
)

// Payment methods accepted at submit time.
const (
	MethodCOD      = "cod"
	MethodRazorpay = "razorpay"
)

// ValidationError names the first missing required billing field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "please fill in the required field: " + e.Field
}

// BillingWriter persists billing details to the durable user profile.
type BillingWriter interface {
	SaveBillingDetails(ctx context.Context, userID string, details models.BillingDetails) error
}

// OrderWriter durably stores a composed order and returns its document id.
// Append-only: no update or delete.
type OrderWriter interface {
	Create(ctx context.Context, userID string, order *models.Order) (string, error)
}

// SKUResolver maps cart product ids to their catalog-level SKUs.
type SKUResolver interface {
	ResolveMainSKUs(ctx context.Context, productIDs []string) map[string]string
}

// PaymentGateway creates an order on the external payment provider. The
// payment itself completes asynchronously: the provider calls back with a
// payment id and the orchestrator resumes through CompletePayment.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (string, error)
}

// Orchestrator sequences one checkout: validation, billing persistence, the
// COD or gateway branch, order composition and save, and the final cart
// clear. The cart is never cleared before a confirmed successful save.
type Orchestrator struct {
	UserID  string
	Cart    *cart.Store
	Billing BillingWriter
	Orders  OrderWriter
	SKUs    SKUResolver
	Gateway PaymentGateway

	state    State
	method   string
	snapshot []models.CartLineItem
	billing  models.BillingDetails
	skuMap   map[string]string
}

func (o *Orchestrator) State() State {
	if o.state == "" {
		return StateIdle
	}
	return o.state
}

// Total is the snapshot sum the order will be composed from.
func (o *Orchestrator) Total() float64 {
	return CartTotal(o.snapshot)
}

// Snapshot returns the cart lines captured at submit time.
func (o *Orchestrator) Snapshot() []models.CartLineItem {
	return append([]models.CartLineItem(nil), o.snapshot...)
}

func (o *Orchestrator) BillingDetails() models.BillingDetails {
	return o.billing
}

// Submit validates the billing form, persists it to the user profile, takes
// the cart snapshot the order will be built from, resolves catalog SKUs, and
// branches on payment method. A validation failure keeps the session on the
// form; any later cart mutation does not retroactively change the snapshot.
func (o *Orchestrator) Submit(ctx context.Context, details models.BillingDetails, method string) error {
	o.state = StateValidating
	if err := validateBilling(details); err != nil {
		o.state = StateError
		return err
	}

	items := o.Cart.Items()
	if len(items) == 0 {
		o.state = StateError
		return fmt.Errorf("cart is empty")
	}

	if err := o.Billing.SaveBillingDetails(ctx, o.UserID, details); err != nil {
		o.state = StateError
		return fmt.Errorf("failed to save billing details: %w", err)
	}
	o.Cart.SetBillingDetails(details)

	o.billing = details
	o.snapshot = items
	o.skuMap = o.SKUs.ResolveMainSKUs(ctx, productIDs(items))

	switch method {
	case MethodCOD:
		o.method = method
		o.state = StateAwaitingConfirmation
	case MethodRazorpay:
		o.method = method
		o.state = StateAwaitingPayment
	default:
		o.state = StateError
		return fmt.Errorf("unknown payment method: %s", method)
	}
	return nil
}

// ConfirmCOD places the order after the explicit user confirmation step. On a
// save failure the session stays in AwaitingConfirmation with the cart intact
// so the user can retry; the order is not assumed placed.
func (o *Orchestrator) ConfirmCOD(ctx context.Context) (*models.Order, error) {
	if o.state != StateAwaitingConfirmation {
		return nil, fmt.Errorf("no confirmed checkout in progress")
	}
	o.state = StateSaving

	order := ComposeOrder(ComposeParams{
		UserID:        o.UserID,
		Items:         o.snapshot,
		Billing:       o.billing,
		MainSKUs:      o.skuMap,
		PaymentMethod: models.PaymentMethodCOD,
		Status:        models.OrderStatusPending,
	})
	if _, err := o.Orders.Create(ctx, o.UserID, order); err != nil {
		o.state = StateAwaitingConfirmation
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	o.Cart.Clear()
	o.state = StateDone
	return order, nil
}

// Cancel abandons the session with no side effects on cart or orders.
func (o *Orchestrator) Cancel() {
	o.state = StateIdle
	o.method = ""
	o.snapshot = nil
	o.skuMap = nil
}

// BeginPayment creates the order on the payment provider for the snapshot
// total, in minor currency units. A gateway failure aborts before any order
// record exists.
func (o *Orchestrator) BeginPayment(ctx context.Context) (gatewayOrderID string, amountPaise int64, err error) {
	if o.state != StateAwaitingPayment {
		return "", 0, fmt.Errorf("no gateway checkout in progress")
	}
	amountPaise = int64(math.Round(o.Total() * 100))
	gatewayOrderID, err = o.Gateway.CreateOrder(ctx, amountPaise, "INR", o.UserID)
	if err != nil {
		o.state = StateError
		return "", 0, fmt.Errorf("payment gateway unavailable: %w", err)
	}
	return gatewayOrderID, amountPaise, nil
}

// CompletePayment resumes the session when the provider's success callback
// arrives with a payment id: the order is composed as paid, saved, and the
// cart cleared.
func (o *Orchestrator) CompletePayment(ctx context.Context, paymentID string) (*models.Order, error) {
	if o.state != StateAwaitingPayment {
		return nil, fmt.Errorf("no gateway checkout in progress")
	}
	o.state = StateSaving

	order := ComposeOrder(ComposeParams{
		UserID:        o.UserID,
		Items:         o.snapshot,
		Billing:       o.billing,
		MainSKUs:      o.skuMap,
		PaymentMethod: models.PaymentMethodRazorpay,
		Status:        models.OrderStatusPaid,
		PaymentID:     paymentID,
	})
	if _, err := o.Orders.Create(ctx, o.UserID, order); err != nil {
		o.state = StateAwaitingPayment
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	o.Cart.Clear()
	o.state = StateDone
	return order, nil
}

// FailPayment records that the external flow did not complete. No order
// exists and the cart is untouched.
func (o *Orchestrator) FailPayment() {
	if o.state == StateAwaitingPayment {
		o.state = StateError
	}
}

func validateBilling(d models.BillingDetails) error {
	fields := []struct {
		name  string
		value string
	}{
		{"fullName", d.FullName},
		{"email", d.Email},
		{"phone", d.Phone},
		{"address", d.Address},
		{"city", d.City},
		{"pincode", d.Pincode},
	}
	for _, f := range fields {
		if f.value == "" {
			return &ValidationError{Field: f.name}
		}
	}
	return nil
}

func productIDs(items []models.CartLineItem) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids
}
