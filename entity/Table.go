package entity

import (
	"gorm.io/gorm"
)

type Table struct {
	gorm.Model
	TableNumber int `gorm:"uniqueIndex" json:"table_number"`
	// No column default: gorm would omit an explicit false from the
	// INSERT and store the table as active. Callers always set it.
	IsActive bool `json:"is_active"`

	Orders []Order `json:"-"` // preload only when needed
}
