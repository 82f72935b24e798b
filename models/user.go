package models

import "time"

type User struct {
	ID        string          `gorm:"primaryKey" json:"id"`
	Email     string          `gorm:"unique;not null" json:"email"`
	Phone     string          `json:"phone"`
	Name      string          `json:"name"`
	Picture   string          `json:"picture"`
	Provider  string          `json:"provider"`
	Address   ShippingAddress `gorm:"embedded" json:"shipping_address"`
	Orders    []Order         `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"orders,omitempty"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ShippingAddress is embedded in User and kept in sync with the last billing
// details the user checked out with.
type ShippingAddress struct {
	Address string `json:"address"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
}
