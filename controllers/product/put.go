package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Y3ppi3/northfishclient/apperr"
	"github.com/Y3ppi3/northfishclient/models"
)

type UpdateProductInput struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"image_url"`
	Weight      *string          `json:"weight"`
	CategoryID  *uint            `json:"category_id"`
}

// UpdateProduct partially updates a product; absent fields keep their value.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.NotFoundf("product not found"))
				return
			}
			apperr.Respond(c, err)
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Name != nil {
			product.Name = *input.Name
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.Price != nil {
			if !input.Price.IsPositive() {
				apperr.Respond(c, apperr.Validationf("price must be positive"))
				return
			}
			product.Price = *input.Price
		}
		if input.ImageURL != nil {
			product.ImageURL = *input.ImageURL
		}
		if input.Weight != nil {
			product.Weight = *input.Weight
		}
		if input.CategoryID != nil {
			var category models.Category
			if err := db.First(&category, *input.CategoryID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					apperr.Respond(c, apperr.Validationf("category does not exist"))
					return
				}
				apperr.Respond(c, err)
				return
			}
			product.CategoryID = *input.CategoryID
		}

		if err := db.Save(&product).Error; err != nil {
			apperr.Respond(c, err)
			return
		}
		if err := db.Preload("Category").First(&product, product.ID).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, product)
	}
}
