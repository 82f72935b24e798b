package models

import "time"

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "Pending" // COD order awaiting delivery payment
	OrderStatusPaid    OrderStatus = "Paid"    // Gateway payment captured
)

// Payment method names as stored on orders.
const (
	PaymentMethodCOD      = "Cash on Delivery"
	PaymentMethodRazorpay = "Razorpay"
)

type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	OrderRef        string          `gorm:"uniqueIndex" json:"orderId"`
	UserID          string          `gorm:"index;not null" json:"userId"`
	Status          OrderStatus     `gorm:"type:VARCHAR(20);default:'Pending'" json:"orderStatus"`
	TotalAmount     float64         `json:"totalAmount"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentID       string          `json:"paymentId,omitempty"`
	PhoneNumber     string          `json:"phoneNumber"`
	AddressDetails  AddressDetails  `gorm:"embedded;embeddedPrefix:address_" json:"addressDetails"`
	Items           []OrderLineItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"products"`
	ShippingCharges float64         `json:"shippingCharges"`
	CreatedAt       time.Time       `json:"createdAt"`
	OrderDate       time.Time       `json:"orderDate"`
}

// AddressDetails is the billing snapshot frozen onto an order at composition
// time.
type AddressDetails struct {
	FullName     string `json:"fullName"`
	AddressLine1 string `json:"addressLine1"`
	City         string `json:"city"`
	PostalCode   string `json:"postalCode"`
	State        string `json:"state"`
}

type OrderLineItem struct {
	ID          uint         `gorm:"primaryKey" json:"-"`
	OrderID     uint         `gorm:"index" json:"-"`
	ProductID   string       `json:"productId"`
	Name        string       `json:"name"`
	Price       float64      `json:"price"`
	Quantity    int          `json:"quantity"`
	SKU         string       `json:"sku"`
	BrandName   string       `json:"brandName,omitempty"`
	Category    string       `json:"category,omitempty"`
	Color       string       `json:"color,omitempty"`
	Size        string       `json:"size,omitempty"`
	Images      []string     `gorm:"serializer:json" json:"images"`
	Variant     *SizeVariant `gorm:"embedded;embeddedPrefix:variant_" json:"sizevariants,omitempty"`
	TotalAmount float64      `json:"totalAmount"`
}

// SizeVariant holds the variant-specific attributes of a line item. Its SKU is
// the cart line's original SKU, deliberately distinct from the resolved
// top-level one; empty when the line carried the "N/A" sentinel.
type SizeVariant struct {
	SKU    string  `json:"sku,omitempty"`
	Stock  int     `json:"stock,omitempty"`
	Weight float64 `json:"weight,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}
