package checkout

import (
	"context"
	"fmt"

	"github.com/innomatricstech/Sadhana-Cart-ecom/models"
	"gorm.io/gorm"
)

// GormBillingWriter persists billing details onto the user profile row.
type GormBillingWriter struct {
	DB *gorm.DB
}

// SaveBillingDetails updates the contact and shipping columns only. The email
// column is the unique login identity and the name comes from the identity
// provider; the billing form's own email and recipient name travel on the
// cart record and the order snapshot instead.
func (w *GormBillingWriter) SaveBillingDetails(ctx context.Context, userID string, details models.BillingDetails) error {
	return w.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(billingProfileUpdates(details)).Error
}

func billingProfileUpdates(details models.BillingDetails) map[string]interface{} {
	return map[string]interface{}{
		"phone":   details.Phone,
		"address": details.Address,
		"city":    details.City,
		"pincode": details.Pincode,
	}
}

// GormOrderWriter appends composed orders. Line items ride along through the
// association; nothing here ever updates or deletes an order.
type GormOrderWriter struct {
	DB *gorm.DB

	// OnCreate runs after a successful save, outside the transaction. Used
	// for the live order broadcast.
	OnCreate func(order models.Order)
}

func (w *GormOrderWriter) Create(ctx context.Context, userID string, order *models.Order) (string, error) {
	order.UserID = userID
	if err := w.DB.WithContext(ctx).Create(order).Error; err != nil {
		return "", err
	}
	if w.OnCreate != nil {
		w.OnCreate(*order)
	}
	return fmt.Sprintf("%d", order.ID), nil
}
