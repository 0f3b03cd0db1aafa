package entity

import (
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"-"`
	// No column default: gorm would omit an explicit false from the
	// INSERT and store the item as available. Callers always set it.
	IsAvailable bool `json:"is_available"`

	CategoryID uint     `json:"category_id"`
	Category   Category `json:"-"` // preload only for detail

	OrderItems []OrderItem `json:"-"`
}
