package cart

import (
	"context"
	"fmt"

	"github.com/innomatricstech/Sadhana-Cart-ecom/models"
)

// StockOracle supplies the current available stock for a product. A failed
// lookup must read as zero stock rather than an error: the cart view degrades
// conservatively instead of blocking.
type StockOracle interface {
	StockFor(ctx context.Context, productID string) int
}

// ErrOutOfStock rejects an increment for a product with no stock left.
var ErrOutOfStock = fmt.Errorf("product is out of stock")

// StockLimitError rejects an increment that would pass the live stock level.
type StockLimitError struct {
	Available int
}

func (e *StockLimitError) Error() string {
	unit := "units"
	if e.Available == 1 {
		unit = "unit"
	}
	return fmt.Sprintf("only %d %s available in stock", e.Available, unit)
}

// Reconciler validates stock-aware increments before they reach the store.
// The live-stock ceiling lives here, at the call site that issues increments;
// the per-item unit ceiling stays inside the store. Whichever is tighter
// governs.
type Reconciler struct {
	Store  *Store
	Oracle StockOracle
}

// Increase adds one unit of item to the cart after checking the live stock
// snapshot. The returned error is per-item and recoverable: the caller
// surfaces it and the cart is untouched.
func (r *Reconciler) Increase(ctx context.Context, item models.CartLineItem) error {
	stock := r.Oracle.StockFor(ctx, item.ID)
	if stock == 0 {
		return ErrOutOfStock
	}
	if item.Quantity >= stock {
		return &StockLimitError{Available: stock}
	}
	r.Store.AddItem(item, 1)
	return nil
}
