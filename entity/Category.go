package entity

import (
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order"`

	MenuItems []MenuItem `json:"-"`
}
