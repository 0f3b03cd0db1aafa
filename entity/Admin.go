package entity

import (
	"gorm.io/gorm"
)

type Admin struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex" json:"username"`
	PasswordHash string `json:"-"`
}
