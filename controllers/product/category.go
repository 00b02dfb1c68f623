package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Y3ppi3/northfishclient/apperr"
	"github.com/Y3ppi3/northfishclient/models"
)

type CategoryInput struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
	Slug string `json:"slug" binding:"required,min=2,max=100"`
}

func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var existing int64
		if err := db.Model(&models.Category{}).
			Where("name = ? OR slug = ?", input.Name, input.Slug).
			Count(&existing).Error; err != nil {
			apperr.Respond(c, err)
			return
		}
		if existing > 0 {
			apperr.Respond(c, apperr.Conflictf("category name or slug already exists"))
			return
		}

		category := models.Category{Name: input.Name, Slug: input.Slug}
		if err := db.Create(&category).Error; err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}

// GetAllCategories returns all categories without products.
func GetAllCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Order("id ASC").Find(&categories).Error; err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

// GetCategoryByID returns one category with its products preloaded.
func GetCategoryByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
			return
		}

		var category models.Category
		if err := db.Preload("Products").First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.NotFoundf("category not found"))
				return
			}
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

func UpdateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
			return
		}

		var category models.Category
		if err := db.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.NotFoundf("category not found"))
				return
			}
			apperr.Respond(c, err)
			return
		}

		var input CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var existing int64
		if err := db.Model(&models.Category{}).
			Where("(name = ? OR slug = ?) AND id <> ?", input.Name, input.Slug, category.ID).
			Count(&existing).Error; err != nil {
			apperr.Respond(c, err)
			return
		}
		if existing > 0 {
			apperr.Respond(c, apperr.Conflictf("category name or slug already exists"))
			return
		}

		category.Name = input.Name
		category.Slug = input.Slug
		if err := db.Save(&category).Error; err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

// DeleteCategory removes a category after detaching its products, so the
// products survive without a category link.
func DeleteCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
			return
		}

		var category models.Category
		if err := db.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.NotFoundf("category not found"))
				return
			}
			apperr.Respond(c, err)
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Product{}).
				Where("category_id = ?", category.ID).
				Update("category_id", 0).Error; err != nil {
				return err
			}
			return tx.Delete(&category).Error
		})
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
	}
}
