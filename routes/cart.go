package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Y3ppi3/northfishclient/config"
	cartControllers "github.com/Y3ppi3/northfishclient/controllers/cart"
	"github.com/Y3ppi3/northfishclient/middleware"
)

func SetupCartRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	cart := r.Group("/cart")
	cart.Use(middleware.RequireAuth(cfg.JWTSecret))
	{
		cart.POST("/", cartControllers.AddItemHandler(db))
		cart.GET("/", cartControllers.ListItemsHandler(db))
		cart.GET("/count", cartControllers.CountHandler(db))
		cart.PUT("/:cart_id", cartControllers.UpdateQuantityHandler(db))
		cart.DELETE("/:cart_id", cartControllers.RemoveItemHandler(db))
	}
}
