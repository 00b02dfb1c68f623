package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Y3ppi3/northfishclient/config"
	orderControllers "github.com/Y3ppi3/northfishclient/controllers/order"
	"github.com/Y3ppi3/northfishclient/middleware"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, hub *orderControllers.Hub) {
	orders := r.Group("/orders")

	// websocket endpoint for real-time order updates
	orders.GET("/ws", hub.Handler())

	authed := orders.Group("")
	authed.Use(middleware.RequireAuth(cfg.JWTSecret))
	{
		authed.POST("/", orderControllers.CheckoutHandler(db, hub))
		authed.GET("/", orderControllers.ListOrdersHandler(db))
	}
}
