package models

type Category struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string    `gorm:"uniqueIndex;not null" json:"name"`
	Slug     string    `gorm:"uniqueIndex;not null" json:"slug"`
	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}
