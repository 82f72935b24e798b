package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is a catalog entry. Variant attributes (color, size, dimensions)
// live flat on the row; SKU is the sellable unit's code and BaseSKU the
// product family's.
type Product struct {
	ID          string         `gorm:"primaryKey" json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Price       float64        `json:"price"`
	Image       string         `json:"image"`
	Images      []string       `gorm:"serializer:json" json:"images,omitempty"`
	SKU         string         `json:"sku,omitempty"`
	BaseSKU     string         `json:"baseSku,omitempty"`
	Stock       int            `json:"stock"`
	Color       string         `json:"color,omitempty"`
	Size        string         `json:"size,omitempty"`
	Weight      float64        `json:"weight,omitempty"`
	Width       float64        `json:"width,omitempty"`
	Height      float64        `json:"height,omitempty"`
	Category    string         `json:"category,omitempty"`
	BrandName   string         `json:"brandName,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
