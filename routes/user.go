package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Y3ppi3/northfishclient/config"
	userControllers "github.com/Y3ppi3/northfishclient/controllers/user"
	"github.com/Y3ppi3/northfishclient/middleware"
)

func SetupUserRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	users := r.Group("/users")
	users.Use(middleware.RequireAuth(cfg.JWTSecret))
	{
		users.GET("/me", userControllers.GetMe(db))
		users.PUT("/me", userControllers.UpdateMe(db))
		users.PUT("/me/birthday", userControllers.UpdateBirthday(db))
	}
}
