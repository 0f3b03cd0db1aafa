package repository

import (
	"errors"
	"time"

	"backend/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrDuplicateRecent is returned when the in-transaction re-check finds
// an active order for the table inside the throttle window.
var ErrDuplicateRecent = errors.New("recent active order exists for table")

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// OrderItemRow is a priced line ready to persist; the price is the
// snapshot taken by the service while validating the submission.
type OrderItemRow struct {
	MenuItemID uint
	Quantity   int
	PriceCents int64
}

// HasRecentActiveOrder reports whether the table placed an order that is
// still pending/preparing within the window.
func (r *OrderRepository) HasRecentActiveOrder(tx *gorm.DB, tableID uint, window time.Duration) (bool, error) {
	var cnt int64
	err := tx.Model(&entity.Order{}).
		Where("table_id = ? AND status IN ? AND created_at > ?",
			tableID,
			[]string{entity.StatusPending, entity.StatusPreparing},
			time.Now().Add(-window)).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// CreateWithItems commits the order and all its lines in one transaction.
// It locks the table row first, so two submissions for the same table
// serialize here and the loser observes the winner's order; the
// application-level throttle check alone is not enough under concurrency.
// On sqlite the lock clause is a no-op but writes serialize anyway.
func (r *OrderRepository) CreateWithItems(tableID uint, estimatedTime int, window time.Duration, rows []OrderItemRow) (*entity.Order, error) {
	var out entity.Order
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var t entity.Table
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&t, tableID).Error; err != nil {
			return err
		}

		recent, err := r.HasRecentActiveOrder(tx, tableID, window)
		if err != nil {
			return err
		}
		if recent {
			return ErrDuplicateRecent
		}

		var total int64
		for _, row := range rows {
			total += row.PriceCents * int64(row.Quantity)
		}

		order := entity.Order{
			TableID:       tableID,
			Status:        entity.StatusPending,
			EstimatedTime: estimatedTime,
			TotalCents:    total,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, row := range rows {
			oi := entity.OrderItem{
				OrderID:          order.ID,
				MenuItemID:       row.MenuItemID,
				Quantity:         row.Quantity,
				PriceCentsAtTime: row.PriceCents,
			}
			if err := tx.Create(&oi).Error; err != nil {
				return err
			}
		}

		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Get loads an order with its table and lines (menu item names included).
func (r *OrderRepository) Get(orderID uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.Preload("Table").
		Preload("OrderItems").
		Preload("OrderItems.MenuItem").
		First(&o, orderID).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateStatus applies a status (and optional estimate) and bumps the
// modification timestamp. Returns gorm.ErrRecordNotFound for unknown ids.
func (r *OrderRepository) UpdateStatus(orderID uint, status string, estimatedTime *int) (*entity.Order, error) {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var o entity.Order
		if err := tx.First(&o, orderID).Error; err != nil {
			return err
		}
		fields := map[string]any{
			"status":     status,
			"updated_at": time.Now(),
		}
		if estimatedTime != nil {
			fields["estimated_time"] = *estimatedTime
		}
		return tx.Model(&o).Updates(fields).Error
	})
	if err != nil {
		return nil, err
	}
	return r.Get(orderID)
}

// ListActive returns kitchen-relevant orders, oldest first.
func (r *OrderRepository) ListActive() ([]entity.Order, error) {
	var orders []entity.Order
	err := r.DB.Preload("Table").
		Preload("OrderItems").
		Preload("OrderItems.MenuItem").
		Where("status IN ?", []string{entity.StatusPending, entity.StatusPreparing, entity.StatusReady}).
		Order("created_at ASC").
		Find(&orders).Error
	return orders, err
}

// ListActiveForTable returns the table's open orders, newest first.
func (r *OrderRepository) ListActiveForTable(tableID uint) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.DB.Preload("Table").
		Preload("OrderItems").
		Preload("OrderItems.MenuItem").
		Where("table_id = ? AND status IN ?", tableID,
			[]string{entity.StatusPending, entity.StatusPreparing, entity.StatusReady}).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// ---------------- Reporting ----------------

// CompletedRow is the minimal shape the report service aggregates over.
// Aggregation happens in Go so the queries stay portable across sqlite
// and postgres.
type CompletedRow struct {
	OrderID    uint
	CreatedAt  time.Time
	TotalCents int64
}

func (r *OrderRepository) CompletedSince(since time.Time) ([]CompletedRow, error) {
	var rows []CompletedRow
	err := r.DB.Model(&entity.Order{}).
		Select("id AS order_id, created_at, total_cents").
		Where("status = ? AND created_at >= ?", entity.StatusCompleted, since).
		Scan(&rows).Error
	return rows, err
}

type ItemSalesRow struct {
	MenuItemID   uint
	ItemName     string
	CategoryName string
	Quantity     int
	PriceCents   int64
	OrderID      uint
	CreatedAt    time.Time
}

func (r *OrderRepository) ItemSalesSince(since time.Time, completedOnly bool) ([]ItemSalesRow, error) {
	q := r.DB.Model(&entity.OrderItem{}).
		Select(`order_items.menu_item_id,
			menu_items.name AS item_name,
			categories.name AS category_name,
			order_items.quantity,
			order_items.price_cents_at_time AS price_cents,
			order_items.order_id,
			orders.created_at`).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN menu_items ON menu_items.id = order_items.menu_item_id").
		Joins("JOIN categories ON categories.id = menu_items.category_id").
		Where("orders.created_at >= ?", since)
	if completedOnly {
		q = q.Where("orders.status = ?", entity.StatusCompleted)
	}
	var rows []ItemSalesRow
	err := q.Scan(&rows).Error
	return rows, err
}

func (r *OrderRepository) CountSince(since time.Time) (int64, error) {
	var cnt int64
	err := r.DB.Model(&entity.Order{}).Where("created_at >= ?", since).Count(&cnt).Error
	return cnt, err
}

func (r *OrderRepository) RevenueSince(since time.Time) (int64, error) {
	var sum *int64
	err := r.DB.Model(&entity.Order{}).
		Select("SUM(total_cents)").
		Where("created_at >= ?", since).
		Scan(&sum).Error
	if err != nil || sum == nil {
		return 0, err
	}
	return *sum, nil
}

func (r *OrderRepository) CountActive() (int64, error) {
	var cnt int64
	err := r.DB.Model(&entity.Order{}).
		Where("status IN ?", []string{entity.StatusPending, entity.StatusPreparing, entity.StatusReady}).
		Count(&cnt).Error
	return cnt, err
}
