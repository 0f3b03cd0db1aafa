package services

import (
	"time"

	"backend/entity"
	"backend/utils"
)

// OrderView is the full order representation sent to clients and
// published on the notification channels.
type OrderView struct {
	ID            uint            `json:"id"`
	TableNumber   int             `json:"table_number"`
	Status        string          `json:"status"`
	EstimatedTime int             `json:"estimated_time"`
	TotalAmount   float64         `json:"total_amount"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Items         []OrderItemView `json:"items"`
}

type OrderItemView struct {
	ID           uint    `json:"id"`
	MenuItemID   uint    `json:"menu_item_id"`
	MenuItemName string  `json:"menu_item_name"`
	Quantity     int     `json:"quantity"`
	PriceAtTime  float64 `json:"price_at_time"`
	Subtotal     float64 `json:"subtotal"`
}

// NewOrderView expects Table and OrderItems.MenuItem preloaded.
func NewOrderView(o *entity.Order) OrderView {
	items := make([]OrderItemView, 0, len(o.OrderItems))
	for _, oi := range o.OrderItems {
		items = append(items, OrderItemView{
			ID:           oi.ID,
			MenuItemID:   oi.MenuItemID,
			MenuItemName: oi.MenuItem.Name,
			Quantity:     oi.Quantity,
			PriceAtTime:  utils.CentsToFloat(oi.PriceCentsAtTime),
			Subtotal:     utils.CentsToFloat(oi.SubtotalCents()),
		})
	}
	return OrderView{
		ID:            o.ID,
		TableNumber:   o.Table.TableNumber,
		Status:        o.Status,
		EstimatedTime: o.EstimatedTime,
		TotalAmount:   utils.CentsToFloat(o.TotalCents),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		Items:         items,
	}
}
