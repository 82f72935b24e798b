package cart

import (
	"context"
	"testing"

	"github.com/innomatricstech/Sadhana-Cart-ecom/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOracle struct {
	stock map[string]int
}

func (s *stubOracle) StockFor(_ context.Context, productID string) int {
	return s.stock[productID]
}

func TestIncreaseRejectsOutOfStock(t *testing.T) {
	store := NewStore("k", newMemoryPersister())
	store.AddItem(lineItem("A", 100), 1)
	r := &Reconciler{Store: store, Oracle: &stubOracle{stock: map[string]int{"A": 0}}}

	item := store.Items()[0]
	err := r.Increase(context.Background(), item)

	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.Equal(t, 1, store.Items()[0].Quantity)
}

func TestIncreaseRejectsAtStockLimit(t *testing.T) {
	store := NewStore("k", newMemoryPersister())
	store.AddItem(lineItem("A", 100), 3)
	r := &Reconciler{Store: store, Oracle: &stubOracle{stock: map[string]int{"A": 3}}}

	item := store.Items()[0]
	err := r.Increase(context.Background(), item)

	var limit *StockLimitError
	require.ErrorAs(t, err, &limit)
	assert.Equal(t, 3, limit.Available)
	assert.Equal(t, 3, store.Items()[0].Quantity)
}

func TestIncreaseProceedsUnderStock(t *testing.T) {
	store := NewStore("k", newMemoryPersister())
	store.AddItem(lineItem("A", 100), 2)
	r := &Reconciler{Store: store, Oracle: &stubOracle{stock: map[string]int{"A": 10}}}

	item := store.Items()[0]
	err := r.Increase(context.Background(), item)

	require.NoError(t, err)
	assert.Equal(t, 3, store.Items()[0].Quantity)
}

func TestIncreaseUnitCeilingStillGoverns(t *testing.T) {
	// Plenty of stock, but the per-item unit ceiling is the tighter bound.
	store := NewStore("k", newMemoryPersister())
	store.AddItem(lineItem("A", 100), 5)
	r := &Reconciler{Store: store, Oracle: &stubOracle{stock: map[string]int{"A": 100}}}

	item := store.Items()[0]
	err := r.Increase(context.Background(), item)

	require.NoError(t, err)
	assert.Equal(t, models.MaxUnitsPerItem, store.Items()[0].Quantity)
	assert.Equal(t, "A", store.State().ErrorID)
}

func TestIncreaseUnknownProductReadsAsZeroStock(t *testing.T) {
	store := NewStore("k", newMemoryPersister())
	store.AddItem(lineItem("ghost", 100), 1)
	r := &Reconciler{Store: store, Oracle: &stubOracle{stock: map[string]int{}}}

	item := store.Items()[0]
	err := r.Increase(context.Background(), item)

	assert.ErrorIs(t, err, ErrOutOfStock)
}

func TestStockLimitErrorMessage(t *testing.T) {
	assert.Equal(t, "only 1 unit available in stock", (&StockLimitError{Available: 1}).Error())
	assert.Equal(t, "only 4 units available in stock", (&StockLimitError{Available: 4}).Error())
}
