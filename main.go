package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Y3ppi3/northfishclient/config"
	orderControllers "github.com/Y3ppi3/northfishclient/controllers/order"
	"github.com/Y3ppi3/northfishclient/logger"
	"github.com/Y3ppi3/northfishclient/middleware"
	"github.com/Y3ppi3/northfishclient/models"
	"github.com/Y3ppi3/northfishclient/routes"
)

func main() {
	// Load environment variables
	_ = godotenv.Load()

	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	log.Info("starting application", "port", cfg.Port)

	db := initDatabase(cfg, log)

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatal("AutoMigrate failed", "error", err)
	}

	// Gin setup
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Order feed hub for websocket subscribers
	hub := orderControllers.NewHub()

	// Setup routes
	routes.SetupRoutes(r, db, cfg, hub)

	log.Info("server running", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("failed to start server", "error", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase(cfg *config.Config, log *logger.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatal("DB connection failed", "error", err)
	}
	return db
}
