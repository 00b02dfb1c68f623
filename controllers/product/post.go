package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Y3ppi3/northfishclient/apperr"
	"github.com/Y3ppi3/northfishclient/models"
)

type CreateProductInput struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	ImageURL    string          `json:"image_url"`
	Weight      string          `json:"weight"`
	CategoryID  uint            `json:"category_id" binding:"required"`
}

// CreateProduct creates a new catalog product.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if !input.Price.IsPositive() {
			apperr.Respond(c, apperr.Validationf("price must be positive"))
			return
		}

		var category models.Category
		if err := db.First(&category, input.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.Validationf("category does not exist"))
				return
			}
			apperr.Respond(c, err)
			return
		}

		product := models.Product{
			Name:        input.Name,
			Description: input.Description,
			Price:       input.Price,
			ImageURL:    input.ImageURL,
			Weight:      input.Weight,
			CategoryID:  input.CategoryID,
		}
		if err := db.Create(&product).Error; err != nil {
			apperr.Respond(c, err)
			return
		}
		product.Category = category

		c.JSON(http.StatusCreated, product)
	}
}
