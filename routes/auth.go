package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Y3ppi3/northfishclient/config"
	userControllers "github.com/Y3ppi3/northfishclient/controllers/user"
)

func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", userControllers.Register(db, cfg))
		auth.POST("/login", userControllers.Login(db, cfg))
	}
}
