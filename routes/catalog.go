package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productcontroller "github.com/Y3ppi3/northfishclient/controllers/product"
)

// SetupCatalogRoutes registers the public, read-only catalog surface.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB) {
	products := r.Group("/products")
	{
		products.GET("/", productcontroller.GetProducts(db))
		products.GET("/:id", productcontroller.GetProductByID(db))
	}

	categories := r.Group("/categories")
	{
		categories.GET("/", productcontroller.GetAllCategories(db))
		categories.GET("/:id", productcontroller.GetCategoryByID(db))
	}
}
