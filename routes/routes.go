package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Y3ppi3/northfishclient/config"
	orderControllers "github.com/Y3ppi3/northfishclient/controllers/order"
)

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, hub *orderControllers.Hub) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db, cfg)

	// Profile routes (JWT-protected)
	SetupUserRoutes(r, db, cfg)

	// Cart routes (JWT-protected)
	SetupCartRoutes(r, db, cfg)

	// Order routes (JWT-protected) + websocket feed
	SetupOrderRoutes(r, db, cfg, hub)

	// Public catalog browsing
	SetupCatalogRoutes(r, db)

	// Admin catalog management (API-key-protected)
	SetupAdminRoutes(r, db, cfg)
}
