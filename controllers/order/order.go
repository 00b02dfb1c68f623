package orderControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Y3ppi3/northfishclient/apperr"
	"github.com/Y3ppi3/northfishclient/middleware"
	"github.com/Y3ppi3/northfishclient/models"
)

// -------- Helpers --------

// Generate unique order reference, e.g. 20250908130500-<uuid4>
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// -------- Core Logic --------

// Checkout turns the user's cart into an order. The whole transition runs in
// one transaction: order creation (with line snapshots) and cart clearing
// commit together or roll back together.
func Checkout(db *gorm.DB, userID uint) (*models.Order, error) {
	var order models.Order

	// The cart is read inside the same transaction that clears it, so a line
	// added concurrently cannot be deleted without appearing in the order.
	err := db.Transaction(func(tx *gorm.DB) error {
		var items []models.CartItem
		if err := tx.Preload("Product").Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return apperr.Validationf("cart is empty")
		}

		total := decimal.Zero
		orderItems := make([]models.OrderItem, 0, len(items))
		for _, item := range items {
			total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
			orderItems = append(orderItems, models.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Product.Price,
			})
		}

		order = models.Order{
			UserID:     userID,
			OrderRef:   generateOrderRef(),
			TotalPrice: total,
			Status:     models.OrderStatusPending,
			Items:      orderItems,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns the user's orders with item snapshots, newest first.
func ListOrders(db *gorm.DB, userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// -------- Handlers --------

// POST /orders
func CheckoutHandler(db *gorm.DB, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		order, err := Checkout(db, userID)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		hub.BroadcastOrder(order)
		c.JSON(http.StatusCreated, order)
	}
}

// GET /orders
func ListOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		orders, err := ListOrders(db, userID)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}
