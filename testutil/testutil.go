// Package testutil opens throwaway in-memory databases for tests and seeds
// the handful of rows most tests need.
package testutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/Y3ppi3/northfishclient/models"
)

// DB opens a fresh in-memory SQLite database with all tables migrated. The
// pool is pinned to one connection because every pooled connection to
// ":memory:" would otherwise see its own empty database.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		tb.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func SeedUser(tb testing.TB, db *gorm.DB, username, phone, password string) *models.User {
	tb.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		tb.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		Phone:        phone,
		FullName:     "Test " + username,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		tb.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func SeedCategory(tb testing.TB, db *gorm.DB, name, slug string) *models.Category {
	tb.Helper()

	category := &models.Category{Name: name, Slug: slug}
	if err := db.Create(category).Error; err != nil {
		tb.Fatalf("failed to seed category: %v", err)
	}
	return category
}

func SeedProduct(tb testing.TB, db *gorm.DB, name, price string, categoryID uint) *models.Product {
	tb.Helper()

	product := &models.Product{
		Name:       name,
		Price:      decimal.RequireFromString(price),
		Weight:     "1 kg",
		CategoryID: categoryID,
	}
	if err := db.Create(product).Error; err != nil {
		tb.Fatalf("failed to seed product: %v", err)
	}
	return product
}
