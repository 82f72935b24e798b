package checkout

import (
	"strings"
	"testing"
	"time"

	"github.com/innomatricstech/Sadhana-Cart-ecom/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSKUPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		item     models.CartLineItem
		mainSKUs map[string]string
		want     string
	}{
		{
			name:     "catalog SKU wins over sentinel",
			item:     models.CartLineItem{ID: "P1", SKU: "N/A"},
			mainSKUs: map[string]string{"P1": "MAIN-SKU"},
			want:     "MAIN-SKU",
		},
		{
			name:     "catalog SKU wins over variant SKU",
			item:     models.CartLineItem{ID: "P1", SKU: "VAR-1"},
			mainSKUs: map[string]string{"P1": "MAIN-SKU"},
			want:     "MAIN-SKU",
		},
		{
			name:     "variant SKU when no catalog entry",
			item:     models.CartLineItem{ID: "P2", SKU: "VAR-7"},
			mainSKUs: map[string]string{},
			want:     "VAR-7",
		},
		{
			name:     "product id when sentinel and no catalog entry",
			item:     models.CartLineItem{ID: "P3", SKU: "N/A"},
			mainSKUs: map[string]string{},
			want:     "P3",
		},
		{
			name:     "product id when SKU empty",
			item:     models.CartLineItem{ID: "P4"},
			mainSKUs: map[string]string{},
			want:     "P4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.item.Quantity = 1
			order := ComposeOrder(ComposeParams{
				UserID:        "u1",
				Items:         []models.CartLineItem{tt.item},
				MainSKUs:      tt.mainSKUs,
				PaymentMethod: models.PaymentMethodCOD,
				Status:        models.OrderStatusPending,
			})
			require.Len(t, order.Items, 1)
			assert.Equal(t, tt.want, order.Items[0].SKU)
		})
	}
}

func TestComposeOrderTotals(t *testing.T) {
	items := []models.CartLineItem{
		{ID: "A", Title: "A", Price: 100, Quantity: 2},
		{ID: "B", Title: "B", Price: 250, Quantity: 1},
	}

	order := ComposeOrder(ComposeParams{
		UserID:        "u1",
		Items:         items,
		PaymentMethod: models.PaymentMethodCOD,
		Status:        models.OrderStatusPending,
	})

	assert.Equal(t, 450.0, order.TotalAmount)
	assert.Equal(t, 200.0, order.Items[0].TotalAmount)
	assert.Equal(t, 250.0, order.Items[1].TotalAmount)
	// The composed total is exactly the sum the cart view displays.
	assert.Equal(t, CartTotal(items), order.TotalAmount)
}

func TestVariantContainerOnlyWhenVariantDataPresent(t *testing.T) {
	order := ComposeOrder(ComposeParams{
		UserID: "u1",
		Items: []models.CartLineItem{
			{ID: "plain", Title: "Plain", Price: 10, Quantity: 1, SKU: "N/A"},
			{ID: "sized", Title: "Sized", Price: 10, Quantity: 1, SKU: "VAR-9", Size: "L", Weight: 0.5},
		},
		PaymentMethod: models.PaymentMethodCOD,
		Status:        models.OrderStatusPending,
	})

	require.Len(t, order.Items, 2)
	assert.Nil(t, order.Items[0].Variant)

	variant := order.Items[1].Variant
	require.NotNil(t, variant)
	assert.Equal(t, "VAR-9", variant.SKU)
	assert.Equal(t, 0.5, variant.Weight)
}

func TestVariantSKUKeepsOriginalNotResolved(t *testing.T) {
	order := ComposeOrder(ComposeParams{
		UserID: "u1",
		Items: []models.CartLineItem{
			{ID: "P1", Title: "P1", Price: 10, Quantity: 1, SKU: "N/A", Color: "Red"},
		},
		MainSKUs:      map[string]string{"P1": "MAIN-SKU"},
		PaymentMethod: models.PaymentMethodCOD,
		Status:        models.OrderStatusPending,
	})

	line := order.Items[0]
	assert.Equal(t, "MAIN-SKU", line.SKU)
	require.NotNil(t, line.Variant)
	// The variant container carries the pre-resolution SKU; the sentinel
	// maps to empty, never to the resolved one.
	assert.Empty(t, line.Variant.SKU)
}

func TestComposeOrderSnapshotFields(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	order := ComposeOrder(ComposeParams{
		UserID: "u1",
		Items:  []models.CartLineItem{{ID: "X", Price: 500, Quantity: 1}},
		Billing: models.BillingDetails{
			FullName: "S Rao",
			Phone:    "9999999999",
			Address:  "12 MG Road",
			City:     "Bengaluru",
			Pincode:  "560001",
		},
		PaymentMethod: models.PaymentMethodRazorpay,
		Status:        models.OrderStatusPaid,
		PaymentID:     "pay_123",
		Now:           now,
	})

	assert.True(t, strings.HasPrefix(order.OrderRef, "ORD-20260830120000-"))
	assert.Equal(t, "u1", order.UserID)
	assert.Equal(t, models.OrderStatusPaid, order.Status)
	assert.Equal(t, "pay_123", order.PaymentID)
	assert.Equal(t, "9999999999", order.PhoneNumber)
	assert.Equal(t, "12 MG Road", order.AddressDetails.AddressLine1)
	assert.Equal(t, "560001", order.AddressDetails.PostalCode)
	assert.Equal(t, "Karnataka", order.AddressDetails.State)
	assert.Equal(t, now, order.CreatedAt)
	assert.Equal(t, now, order.OrderDate)
	assert.Zero(t, order.ShippingCharges)
	assert.Equal(t, "Unnamed Product", order.Items[0].Name)
}

func TestOrderRefsAreUnique(t *testing.T) {
	p := ComposeParams{
		UserID:        "u1",
		Items:         []models.CartLineItem{{ID: "X", Price: 1, Quantity: 1}},
		PaymentMethod: models.PaymentMethodCOD,
		Status:        models.OrderStatusPending,
	}
	a := ComposeOrder(p)
	b := ComposeOrder(p)
	assert.NotEqual(t, a.OrderRef, b.OrderRef)
}
