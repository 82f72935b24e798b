package checkout

import (
	"time"

	"github.com/google/uuid"
	"github.com/innomatricstech/Sadhana-Cart-ecom/models"
)

// Orders outside Karnataka are not served yet, so the address snapshot pins
// the state.
const defaultAddressState = "Karnataka"

// ComposeParams is everything an order is built from: the cart snapshot taken
// at submit time, the billing details, the resolved catalog SKUs, and the
// payment outcome.
type ComposeParams struct {
	UserID        string
	Items         []models.CartLineItem
	Billing       models.BillingDetails
	MainSKUs      map[string]string
	PaymentMethod string
	Status        models.OrderStatus
	PaymentID     string
	Now           time.Time
}

// ComposeOrder maps a cart snapshot into an immutable order record ready for
// persistence. The total is computed from the same snapshot the user was
// shown; there is no server-side recompute beyond this sum.
func ComposeOrder(p ComposeParams) *models.Order {
	now := p.Now
	if now.IsZero() {
		now = time.Now()
	}

	order := &models.Order{
		OrderRef:      generateOrderRef(now),
		UserID:        p.UserID,
		Status:        p.Status,
		PaymentMethod: p.PaymentMethod,
		PaymentID:     p.PaymentID,
		PhoneNumber:   p.Billing.Phone,
		AddressDetails: models.AddressDetails{
			FullName:     p.Billing.FullName,
			AddressLine1: p.Billing.Address,
			City:         p.Billing.City,
			PostalCode:   p.Billing.Pincode,
			State:        defaultAddressState,
		},
		ShippingCharges: 0,
		CreatedAt:       now,
		OrderDate:       now,
	}

	for _, item := range p.Items {
		line := models.OrderLineItem{
			ProductID:   item.ID,
			Name:        lineName(item),
			Price:       item.Price,
			Quantity:    item.Quantity,
			SKU:         resolveSKU(item, p.MainSKUs),
			BrandName:   item.BrandName,
			Category:    item.Category,
			Color:       item.Color,
			Size:        item.Size,
			Images:      item.Images,
			Variant:     variantOf(item),
			TotalAmount: item.Price * float64(item.Quantity),
		}
		order.Items = append(order.Items, line)
		order.TotalAmount += line.TotalAmount
	}

	return order
}

// CartTotal sums price×quantity across a snapshot. The cart view and the
// composed order both use this, so the confirmed total always matches the
// displayed one.
func CartTotal(items []models.CartLineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// resolveSKU applies the top-level SKU precedence: the catalog's main SKU,
// else the line's own SKU when it isn't the "N/A" sentinel, else the product
// id.
func resolveSKU(item models.CartLineItem, mainSKUs map[string]string) string {
	if sku, ok := mainSKUs[item.ID]; ok && sku != "" {
		return sku
	}
	if item.SKU != "" && item.SKU != models.SKUUnavailable {
		return item.SKU
	}
	return item.ID
}

// variantOf attaches the variant container only when the line carries any
// variant attribute. Its SKU is the line's original, pre-resolution SKU;
// the sentinel maps to empty.
func variantOf(item models.CartLineItem) *models.SizeVariant {
	hasVariant := item.Stock != 0 || item.Weight != 0 || item.Width != 0 ||
		item.Height != 0 || item.Color != "" || item.Size != ""
	if !hasVariant {
		return nil
	}
	v := &models.SizeVariant{
		Stock:  item.Stock,
		Weight: item.Weight,
		Width:  item.Width,
		Height: item.Height,
	}
	if item.SKU != models.SKUUnavailable {
		v.SKU = item.SKU
	}
	return v
}

func lineName(item models.CartLineItem) string {
	if item.Title == "" {
		return "Unnamed Product"
	}
	return item.Title
}

// generateOrderRef builds a sortable, collision-resistant order reference.
func generateOrderRef(now time.Time) string {
	return "ORD-" + now.Format("20060102150405") + "-" + uuid.NewString()
}
