package cartControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/innomatricstech/Sadhana-Cart-ecom/cart"
	"github.com/innomatricstech/Sadhana-Cart-ecom/catalog"
	"github.com/innomatricstech/Sadhana-Cart-ecom/checkout"
	"github.com/innomatricstech/Sadhana-Cart-ecom/models"
	"github.com/innomatricstech/Sadhana-Cart-ecom/pricing"
	"gorm.io/gorm"
)

type AddItemInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type DecreaseItemInput struct {
	Quantity int `json:"quantity"`
}

// loadStore builds the user's cart store from its persisted record.
func loadStore(c *gin.Context, db *gorm.DB) (*cart.Store, string, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, "", false
	}
	userID := userIDVal.(string)
	store := cart.NewStore(cart.StorageKey(userID), &cart.GormPersister{DB: db})
	return store, userID, true
}

func stateResponse(store *cart.Store) gin.H {
	state := store.State()
	return gin.H{
		"items":          state.Items,
		"errorId":        state.ErrorID,
		"billingDetails": state.BillingDetails,
		"total":          pricing.FormatINRWhole(checkout.CartTotal(state.Items)),
	}
}

// GET /user/cart
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, _, ok := loadStore(c, db)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, stateResponse(store))
	}
}

// POST /user/cart/items
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, _, ok := loadStore(c, db)
		if !ok {
			return
		}

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		svc := &catalog.Service{DB: db}
		product, err := svc.Product(c.Request.Context(), input.ProductID)
		if err != nil {
			status := http.StatusInternalServerError
			errMsg := "Failed to validate product"
			if errors.Is(err, gorm.ErrRecordNotFound) {
				status = http.StatusBadRequest
				errMsg = "Product does not exist"
			}
			c.JSON(status, gin.H{"error": errMsg})
			return
		}

		store.AddItem(lineItemFromProduct(product), input.Quantity)
		c.JSON(http.StatusOK, stateResponse(store))
	}
}

// POST /user/cart/items/:product_id/increase
//
// Stock-validated increment: the live-stock ceiling is checked here, at the
// call site, against a possibly stale per-view snapshot. Rejections are
// per-item notices, not failures of the cart itself.
func IncreaseCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, _, ok := loadStore(c, db)
		if !ok {
			return
		}
		productID := c.Param("product_id")

		var target *models.CartLineItem
		for _, item := range store.Items() {
			if item.ID == productID {
				it := item
				target = &it
				break
			}
		}
		if target == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		reconciler := &cart.Reconciler{Store: store, Oracle: &catalog.Service{DB: db}}
		if err := reconciler.Increase(c.Request.Context(), *target); err != nil {
			var limit *cart.StockLimitError
			switch {
			case errors.Is(err, cart.ErrOutOfStock):
				c.JSON(http.StatusConflict, gin.H{"error": "\"" + target.Title + "\" is currently out of stock."})
			case errors.As(err, &limit):
				c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "available": limit.Available})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(http.StatusOK, stateResponse(store))
	}
}

// POST /user/cart/items/:product_id/decrease
func DecreaseCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, _, ok := loadStore(c, db)
		if !ok {
			return
		}
		var input DecreaseItemInput
		if err := c.ShouldBindJSON(&input); err != nil && err.Error() != "EOF" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Quantity < 1 {
			input.Quantity = 1
		}
		store.DecreaseItem(c.Param("product_id"), input.Quantity)
		c.JSON(http.StatusOK, stateResponse(store))
	}
}

// DELETE /user/cart/items/:product_id
func RemoveCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, _, ok := loadStore(c, db)
		if !ok {
			return
		}
		store.RemoveItem(c.Param("product_id"))
		c.JSON(http.StatusOK, stateResponse(store))
	}
}

// DELETE /user/cart
func ClearUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, _, ok := loadStore(c, db)
		if !ok {
			return
		}
		store.Clear()
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// POST /user/cart/error/ack
func AcknowledgeCartError(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, _, ok := loadStore(c, db)
		if !ok {
			return
		}
		store.AcknowledgeError()
		c.JSON(http.StatusOK, stateResponse(store))
	}
}

// PUT /user/cart/billing
func SetBillingDetails(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, _, ok := loadStore(c, db)
		if !ok {
			return
		}
		var details models.BillingDetails
		if err := c.ShouldBindJSON(&details); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		store.SetBillingDetails(details)
		c.JSON(http.StatusOK, stateResponse(store))
	}
}

func lineItemFromProduct(p *models.Product) models.CartLineItem {
	sku := p.SKU
	if sku == "" {
		sku = models.SKUUnavailable
	}
	return models.CartLineItem{
		ID:        p.ID,
		Title:     p.Title,
		Price:     p.Price,
		Image:     p.Image,
		SKU:       sku,
		Color:     p.Color,
		Size:      p.Size,
		Stock:     p.Stock,
		Weight:    p.Weight,
		Width:     p.Width,
		Height:    p.Height,
		Category:  p.Category,
		BrandName: p.BrandName,
		Images:    p.Images,
	}
}
