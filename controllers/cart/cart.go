package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Y3ppi3/northfishclient/apperr"
	"github.com/Y3ppi3/northfishclient/middleware"
	"github.com/Y3ppi3/northfishclient/models"
)

type CartItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type UpdateQuantityInput struct {
	Quantity int `json:"quantity" binding:"required"`
}

// -------- Core Logic --------

// AddItem puts quantity of a product into the user's cart. An existing line
// for the same product is merged; a merge that would push the line past
// MaxQuantity is rejected and the stored row stays unchanged. The returned
// bool is true when a new line was created.
func AddItem(db *gorm.DB, userID, productID uint, quantity int) (*models.CartItem, bool, error) {
	if quantity > models.MaxQuantity {
		return nil, false, apperr.Validationf("quantity cannot exceed %d", models.MaxQuantity)
	}

	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, apperr.NotFoundf("product not found")
		}
		return nil, false, err
	}

	var item models.CartItem
	err := db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, err
		}
		item = models.CartItem{
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
		}
		if err := db.Create(&item).Error; err != nil {
			return nil, false, err
		}
		item.Product = product
		return &item, true, nil
	}

	newQuantity := item.Quantity + quantity
	if newQuantity > models.MaxQuantity {
		return nil, false, apperr.Validationf("total quantity cannot exceed %d", models.MaxQuantity)
	}
	item.Quantity = newQuantity
	if err := db.Save(&item).Error; err != nil {
		return nil, false, err
	}
	item.Product = product
	return &item, false, nil
}

// ListItems returns the user's cart lines with products joined, oldest line
// first (insertion order).
func ListItems(db *gorm.DB, userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := db.Preload("Product").Preload("Product.Category").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateQuantity overwrites the quantity of a cart line owned by the user.
// There is no merge on this path.
func UpdateQuantity(db *gorm.DB, userID, cartItemID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, apperr.Validationf("quantity must be at least 1")
	}
	if quantity > models.MaxQuantity {
		return nil, apperr.Validationf("quantity cannot exceed %d", models.MaxQuantity)
	}

	var item models.CartItem
	if err := db.Where("id = ? AND user_id = ?", cartItemID, userID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("cart item not found")
		}
		return nil, err
	}

	item.Quantity = quantity
	if err := db.Save(&item).Error; err != nil {
		return nil, err
	}
	if err := db.Preload("Product").First(&item, item.ID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveItem deletes a cart line owned by the user.
func RemoveItem(db *gorm.DB, userID, cartItemID uint) error {
	result := db.Where("id = ? AND user_id = ?", cartItemID, userID).Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFoundf("cart item not found")
	}
	return nil
}

// Count returns the number of distinct cart lines, not the sum of quantities.
func Count(db *gorm.DB, userID uint) (int64, error) {
	var count int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// -------- Handlers --------

// POST /cart
func AddItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item, created, err := AddItem(db, userID, input.ProductID, input.Quantity)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		if created {
			c.JSON(http.StatusCreated, item)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// GET /cart
func ListItemsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		items, err := ListItems(db, userID)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// PUT /cart/:cart_id
func UpdateQuantityHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		cartItemID, err := strconv.ParseUint(c.Param("cart_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart item ID"})
			return
		}

		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item, err := UpdateQuantity(db, userID, uint(cartItemID), input.Quantity)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// DELETE /cart/:cart_id
func RemoveItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		cartItemID, err := strconv.ParseUint(c.Param("cart_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart item ID"})
			return
		}

		if err := RemoveItem(db, userID, uint(cartItemID)); err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// GET /cart/count
func CountHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		count, err := Count(db, userID)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, count)
	}
}
