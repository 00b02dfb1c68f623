package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Y3ppi3/northfishclient/config"
	productcontroller "github.com/Y3ppi3/northfishclient/controllers/product"
	"github.com/Y3ppi3/northfishclient/middleware"
)

// SetupAdminRoutes registers catalog management behind the X-API-KEY check.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAPIKey(cfg.AdminAPIKey))
	{
		admin.POST("/products", productcontroller.CreateProduct(db))
		admin.PUT("/products/:id", productcontroller.UpdateProduct(db))
		admin.DELETE("/products/:id", productcontroller.DeleteProduct(db))
		admin.GET("/products/export", productcontroller.ExportProductsToExcel(db))

		admin.POST("/categories", productcontroller.CreateCategory(db))
		admin.PUT("/categories/:id", productcontroller.UpdateCategory(db))
		admin.DELETE("/categories/:id", productcontroller.DeleteCategory(db))
	}
}
