package checkout

import (
	"context"
	"fmt"
	"testing"

	"github.com/innomatricstech/Sadhana-Cart-ecom/cart"
	"github.com/innomatricstech/Sadhana-Cart-ecom/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockBillingWriter struct {
	saved map[string]models.BillingDetails
	err   error
}

func (m *mockBillingWriter) SaveBillingDetails(_ context.Context, userID string, d models.BillingDetails) error {
	if m.err != nil {
		return m.err
	}
	if m.saved == nil {
		m.saved = make(map[string]models.BillingDetails)
	}
	m.saved[userID] = d
	return nil
}

type mockOrderWriter struct {
	orders []*models.Order
	err    error
}

func (m *mockOrderWriter) Create(_ context.Context, userID string, order *models.Order) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	order.UserID = userID
	m.orders = append(m.orders, order)
	return fmt.Sprintf("doc-%d", len(m.orders)), nil
}

type mockSKUResolver struct {
	skus map[string]string
}

func (m *mockSKUResolver) ResolveMainSKUs(_ context.Context, _ []string) map[string]string {
	return m.skus
}

type mockGateway struct {
	orderID    string
	err        error
	lastAmount int64
}

func (m *mockGateway) CreateOrder(_ context.Context, amountPaise int64, _, _ string) (string, error) {
	m.lastAmount = amountPaise
	if m.err != nil {
		return "", m.err
	}
	return m.orderID, nil
}

type memoryPersister struct {
	records map[string]cart.Record
}

func (m *memoryPersister) Save(key string, rec cart.Record) error {
	if m.records == nil {
		m.records = make(map[string]cart.Record)
	}
	m.records[key] = rec
	return nil
}

func (m *memoryPersister) Load(key string) (cart.Record, bool, error) {
	rec, ok := m.records[key]
	return rec, ok, nil
}

func validBilling() models.BillingDetails {
	return models.BillingDetails{
		FullName: "S Rao",
		Email:    "s@example.com",
		Phone:    "9999999999",
		Address:  "12 MG Road",
		City:     "Bengaluru",
		Pincode:  "560001",
	}
}

func testOrchestrator(items ...models.CartLineItem) (*Orchestrator, *mockOrderWriter, *mockBillingWriter, *mockGateway) {
	store := cart.NewStore("k", &memoryPersister{})
	for _, it := range items {
		store.AddItem(it, it.Quantity)
	}
	orders := &mockOrderWriter{}
	billing := &mockBillingWriter{}
	gateway := &mockGateway{orderID: "order_gw_1"}
	o := &Orchestrator{
		UserID:  "u1",
		Cart:    store,
		Billing: billing,
		Orders:  orders,
		SKUs:    &mockSKUResolver{skus: map[string]string{}},
		Gateway: gateway,
	}
	return o, orders, billing, gateway
}

func item(id string, price float64, qty int) models.CartLineItem {
	return models.CartLineItem{ID: id, Title: "Item " + id, Price: price, Quantity: qty}
}

func TestSubmitRejectsMissingField(t *testing.T) {
	o, orders, billing, _ := testOrchestrator(item("X", 500, 1))

	details := validBilling()
	details.Pincode = ""
	err := o.Submit(context.Background(), details, MethodCOD)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "pincode", vErr.Field)
	assert.Equal(t, StateError, o.State())
	assert.Empty(t, orders.orders)
	assert.Empty(t, billing.saved)
	assert.Len(t, o.Cart.Items(), 1, "cart untouched")
}

func TestSubmitRejectsEmptyCart(t *testing.T) {
	o, _, _, _ := testOrchestrator()

	err := o.Submit(context.Background(), validBilling(), MethodCOD)

	assert.Error(t, err)
	assert.Equal(t, StateError, o.State())
}

func TestSubmitPersistsBillingBeforeBranching(t *testing.T) {
	o, _, billing, _ := testOrchestrator(item("X", 500, 1))

	require.NoError(t, o.Submit(context.Background(), validBilling(), MethodCOD))

	assert.Equal(t, StateAwaitingConfirmation, o.State())
	assert.Equal(t, validBilling(), billing.saved["u1"])
	assert.Equal(t, validBilling(), o.Cart.State().BillingDetails)
}

func TestCODEndToEnd(t *testing.T) {
	o, orders, _, _ := testOrchestrator(item("X", 500, 1))
	require.NoError(t, o.Submit(context.Background(), validBilling(), MethodCOD))

	order, err := o.ConfirmCOD(context.Background())

	require.NoError(t, err)
	require.Len(t, orders.orders, 1)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentMethodCOD, order.PaymentMethod)
	assert.Equal(t, 500.0, order.TotalAmount)
	assert.Equal(t, StateDone, o.State())
	assert.Empty(t, o.Cart.Items(), "cart cleared immediately after save")
}

func TestCODSaveFailureKeepsCartAndSession(t *testing.T) {
	o, orders, _, _ := testOrchestrator(item("X", 500, 1))
	require.NoError(t, o.Submit(context.Background(), validBilling(), MethodCOD))
	orders.err = fmt.Errorf("firestore down")

	_, err := o.ConfirmCOD(context.Background())

	require.Error(t, err)
	assert.Equal(t, StateAwaitingConfirmation, o.State(), "still confirmable")
	assert.Len(t, o.Cart.Items(), 1, "cart never cleared before a confirmed save")

	// Retry after the store recovers.
	orders.err = nil
	order, err := o.ConfirmCOD(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Empty(t, o.Cart.Items())
}

func TestCancelHasNoSideEffects(t *testing.T) {
	o, orders, _, _ := testOrchestrator(item("X", 500, 2))
	require.NoError(t, o.Submit(context.Background(), validBilling(), MethodCOD))

	o.Cancel()

	assert.Equal(t, StateIdle, o.State())
	assert.Empty(t, orders.orders)
	assert.Len(t, o.Cart.Items(), 1)

	_, err := o.ConfirmCOD(context.Background())
	assert.Error(t, err, "cancelled session cannot place an order")
}

func TestBeginPaymentConvertsToMinorUnits(t *testing.T) {
	o, _, _, gateway := testOrchestrator(item("X", 499.99, 1))
	require.NoError(t, o.Submit(context.Background(), validBilling(), MethodRazorpay))

	gwID, amount, err := o.BeginPayment(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "order_gw_1", gwID)
	assert.Equal(t, int64(49999), amount, "whole paise")
	assert.Equal(t, int64(49999), gateway.lastAmount)
	assert.Equal(t, StateAwaitingPayment, o.State())
}

func TestBeginPaymentGatewayFailureAborts(t *testing.T) {
	o, orders, _, gateway := testOrchestrator(item("X", 500, 1))
	require.NoError(t, o.Submit(context.Background(), validBilling(), MethodRazorpay))
	gateway.err = fmt.Errorf("SDK failed to load")

	_, _, err := o.BeginPayment(context.Background())

	require.Error(t, err)
	assert.Equal(t, StateError, o.State())
	assert.Empty(t, orders.orders, "no order record before payment")
	assert.Len(t, o.Cart.Items(), 1)
}

func TestCompletePaymentPlacesPaidOrder(t *testing.T) {
	o, orders, _, _ := testOrchestrator(item("X", 500, 1), item("Y", 250, 2))
	require.NoError(t, o.Submit(context.Background(), validBilling(), MethodRazorpay))
	_, _, err := o.BeginPayment(context.Background())
	require.NoError(t, err)

	order, err := o.CompletePayment(context.Background(), "pay_abc")

	require.NoError(t, err)
	require.Len(t, orders.orders, 1)
	assert.Equal(t, models.OrderStatusPaid, order.Status)
	assert.Equal(t, models.PaymentMethodRazorpay, order.PaymentMethod)
	assert.Equal(t, "pay_abc", order.PaymentID)
	assert.Equal(t, 1000.0, order.TotalAmount)
	assert.Equal(t, StateDone, o.State())
	assert.Empty(t, o.Cart.Items())
}

func TestFailPaymentLeavesNoOrder(t *testing.T) {
	o, orders, _, _ := testOrchestrator(item("X", 500, 1))
	require.NoError(t, o.Submit(context.Background(), validBilling(), MethodRazorpay))

	o.FailPayment()

	assert.Equal(t, StateError, o.State())
	assert.Empty(t, orders.orders)
	assert.Len(t, o.Cart.Items(), 1)

	_, err := o.CompletePayment(context.Background(), "pay_abc")
	assert.Error(t, err, "failed session cannot complete")
}

func TestSnapshotIsolatedFromLaterCartMutations(t *testing.T) {
	o, _, _, _ := testOrchestrator(item("X", 500, 1))
	require.NoError(t, o.Submit(context.Background(), validBilling(), MethodCOD))

	// A mutation completing after the snapshot was taken does not change
	// the order being composed.
	o.Cart.AddItem(item("Z", 100, 1), 1)

	order, err := o.ConfirmCOD(context.Background())
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "X", order.Items[0].ProductID)
	assert.Equal(t, 500.0, order.TotalAmount)
}
