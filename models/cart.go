package models

import "time"

// MaxUnitsPerItem caps how many units of a single product a cart may hold.
const MaxUnitsPerItem = 5

// SKUUnavailable marks a line item that carries no variant-specific SKU.
const SKUUnavailable = "N/A"

// CartLineItem is one product entry in a cart. Carts are persisted as a JSON
// payload rather than rows, so the struct carries plain json tags only.
type CartLineItem struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Price     float64  `json:"price"`
	Image     string   `json:"image,omitempty"`
	Quantity  int      `json:"quantity"`
	SKU       string   `json:"sku,omitempty"`
	Color     string   `json:"color,omitempty"`
	Size      string   `json:"size,omitempty"`
	Stock     int      `json:"stock,omitempty"`
	Weight    float64  `json:"weight,omitempty"`
	Width     float64  `json:"width,omitempty"`
	Height    float64  `json:"height,omitempty"`
	Category  string   `json:"category,omitempty"`
	BrandName string   `json:"brandName,omitempty"`
	Images    []string `json:"images,omitempty"`
}

// BillingDetails is the shipping/contact form data cached alongside the cart
// and snapshotted into orders.
type BillingDetails struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Pincode  string `json:"pincode"`
}

// CartRecord is the durable form of a cart: one row per storage key holding
// the serialized {items, billingDetails} payload. The transient error id is
// never written here.
type CartRecord struct {
	StorageKey string `gorm:"primaryKey"`
	Data       string
	UpdatedAt  time.Time
}
