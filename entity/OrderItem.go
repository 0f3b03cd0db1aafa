package entity

import (
	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model
	Quantity int `json:"quantity"`
	// Price snapshot taken at order time; never re-read from the menu.
	PriceCentsAtTime int64 `json:"-"`

	OrderID uint  `json:"order_id"`
	Order   Order `json:"-"`

	MenuItemID uint     `json:"menu_item_id"`
	MenuItem   MenuItem `json:"-"` // preload only for the item name
}

func (oi *OrderItem) SubtotalCents() int64 {
	return oi.PriceCentsAtTime * int64(oi.Quantity)
}
