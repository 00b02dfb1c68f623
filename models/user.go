package models

import "time"

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	Phone        string     `gorm:"uniqueIndex;not null" json:"phone"`
	PasswordHash string     `gorm:"not null" json:"-"`
	FullName     string     `json:"full_name"`
	Birthday     *time.Time `json:"birthday,omitempty"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	CartItems    []CartItem `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Orders       []Order    `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
}
