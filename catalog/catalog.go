// Package catalog is the read boundary onto the product collection: product
// lookups, live stock snapshots, and main-SKU resolution for checkout.
package catalog

import (
	"context"
	"log"

	"github.com/innomatricstech/Sadhana-Cart-ecom/models"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// Product fetches a single product by id.
func (s *Service) Product(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := s.DB.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// StockFor reports the live stock for a product. Absent products and failed
// lookups both read as zero so increments degrade to a rejection instead of
// an error.
func (s *Service) StockFor(ctx context.Context, productID string) int {
	product, err := s.Product(ctx, productID)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Printf("stock lookup failed for product %s: %v", productID, err)
		}
		return 0
	}
	return product.Stock
}

// ResolveMainSKUs maps each product id to its catalog-level SKU: the product's
// SKU, else its base SKU, else the id itself. Products that cannot be fetched
// are left out of the map so order composition falls through to the next
// precedence rule.
func (s *Service) ResolveMainSKUs(ctx context.Context, productIDs []string) map[string]string {
	skus := make(map[string]string, len(productIDs))
	seen := make(map[string]bool, len(productIDs))
	for _, id := range productIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		product, err := s.Product(ctx, id)
		if err != nil {
			if err != gorm.ErrRecordNotFound {
				log.Printf("SKU lookup failed for product %s: %v", id, err)
			}
			continue
		}
		switch {
		case product.SKU != "":
			skus[id] = product.SKU
		case product.BaseSKU != "":
			skus[id] = product.BaseSKU
		default:
			skus[id] = id
		}
	}
	return skus
}
