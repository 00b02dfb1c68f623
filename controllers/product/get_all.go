package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Y3ppi3/northfishclient/apperr"
	"github.com/Y3ppi3/northfishclient/models"
)

// GetProducts lists the catalog with optional filters:
// name (case-insensitive substring), min_price, max_price, category_id.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Product{}).Preload("Category")

		if name := c.Query("name"); name != "" {
			likePattern := "%" + name + "%"
			// ILIKE is postgres-only; fall back to LOWER LIKE elsewhere
			if db.Dialector.Name() == "postgres" {
				query = query.Where("name ILIKE ?", likePattern)
			} else {
				query = query.Where("LOWER(name) LIKE LOWER(?)", likePattern)
			}
		}

		if minPriceStr := c.Query("min_price"); minPriceStr != "" {
			minPrice, err := decimal.NewFromString(minPriceStr)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_price"})
				return
			}
			query = query.Where("price >= ?", minPrice)
		}
		if maxPriceStr := c.Query("max_price"); maxPriceStr != "" {
			maxPrice, err := decimal.NewFromString(maxPriceStr)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price"})
				return
			}
			query = query.Where("price <= ?", maxPrice)
		}

		if categoryIDStr := c.Query("category_id"); categoryIDStr != "" {
			categoryID, err := strconv.ParseUint(categoryIDStr, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
				return
			}
			query = query.Where("category_id = ?", uint(categoryID))
		}

		var products []models.Product
		if err := query.Order("created_at DESC, id DESC").Find(&products).Error; err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
