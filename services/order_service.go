package services

import (
	"errors"
	"fmt"
	"time"

	"backend/entity"
	"backend/pkg/logger"
	"backend/repository"
	"backend/utils"

	"gorm.io/gorm"
)

// New orders start with this kitchen estimate unless staff adjust it.
const defaultEstimatedMinutes = 15

type OrderService struct {
	Repo      *repository.OrderRepository
	TableRepo *repository.TableRepository
	MenuRepo  *repository.MenuRepository
	Throttle  *Throttle
	Pub       Publisher
	Log       *logger.Logger
	Window    time.Duration
}

func NewOrderService(
	repo *repository.OrderRepository,
	tableRepo *repository.TableRepository,
	menuRepo *repository.MenuRepository,
	throttle *Throttle,
	pub Publisher,
	log *logger.Logger,
	window time.Duration,
) *OrderService {
	return &OrderService{
		Repo:      repo,
		TableRepo: tableRepo,
		MenuRepo:  menuRepo,
		Throttle:  throttle,
		Pub:       pub,
		Log:       log.With("component", "OrderService"),
		Window:    window,
	}
}

// ----- DTOs from Controller -----

type PlaceOrderItem struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required"`
}

type PlaceOrderReq struct {
	TableNumber int              `json:"table_number" binding:"required"`
	Items       []PlaceOrderItem `json:"items" binding:"required,min=1"`
}

type PlaceOrderRes struct {
	OrderID       uint    `json:"order_id"`
	TotalAmount   float64 `json:"total_amount"`
	EstimatedTime int     `json:"estimated_time"`
	Status        string  `json:"status"`
}

// PlaceOrder validates a customer submission, commits the order with all
// its lines atomically, and notifies the staff dashboard.
func (s *OrderService) PlaceOrder(req *PlaceOrderReq) (*PlaceOrderRes, error) {
	table, err := s.TableRepo.FindActiveByNumber(req.TableNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidTable
		}
		return nil, persistence(err)
	}

	ok, err := s.Throttle.MaySubmit(table.ID, s.Window)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrRateLimited
	}

	rows := make([]repository.OrderItemRow, 0, len(req.Items))
	for _, it := range req.Items {
		if it.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		m, err := s.MenuRepo.GetItem(it.MenuItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: item %d", ErrItemUnavailable, it.MenuItemID)
			}
			return nil, persistence(err)
		}
		if !m.IsAvailable {
			return nil, fmt.Errorf("%w: item %d", ErrItemUnavailable, it.MenuItemID)
		}
		rows = append(rows, repository.OrderItemRow{
			MenuItemID: m.ID,
			Quantity:   it.Quantity,
			PriceCents: m.PriceCents, // snapshot; later price changes don't touch this order
		})
	}

	order, err := s.Repo.CreateWithItems(table.ID, defaultEstimatedMinutes, s.Window, rows)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateRecent) {
			return nil, ErrRateLimited
		}
		return nil, persistence(err)
	}
	s.Throttle.Record(table.ID)

	// The order is durable from here on; notification is best-effort.
	if full, err := s.Repo.Get(order.ID); err == nil {
		s.Pub.Publish(ChannelAdmin, EventNewOrder, NewOrderView(full))
	} else {
		s.Log.Warn("loading order for notification failed", "orderID", order.ID, "error", err)
	}

	return &PlaceOrderRes{
		OrderID:       order.ID,
		TotalAmount:   utils.CentsToFloat(order.TotalCents),
		EstimatedTime: order.EstimatedTime,
		Status:        order.Status,
	}, nil
}

// UpdateStatus applies a staff status change and notifies both the
// owning table's room and the dashboard. The four statuses are the only
// validation: any status may follow any status.
func (s *OrderService) UpdateStatus(orderID uint, status string, estimatedTime *int) (*OrderView, error) {
	if !entity.IsValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	order, err := s.Repo.UpdateStatus(orderID, status, estimatedTime)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, persistence(err)
	}

	view := NewOrderView(order)
	s.Pub.Publish(TableChannel(order.Table.TableNumber), EventOrderStatusUpdated, view)
	s.Pub.Publish(ChannelAdmin, EventOrderUpdated, view)
	return &view, nil
}

func (s *OrderService) GetOrder(orderID uint) (*OrderView, error) {
	order, err := s.Repo.Get(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, persistence(err)
	}
	view := NewOrderView(order)
	return &view, nil
}

// ListActive returns pending/preparing/ready orders for the dashboard.
func (s *OrderService) ListActive() ([]OrderView, error) {
	orders, err := s.Repo.ListActive()
	if err != nil {
		return nil, persistence(err)
	}
	out := make([]OrderView, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderView(&orders[i]))
	}
	return out, nil
}

// ListForTable returns a table's open orders for the customer session.
func (s *OrderService) ListForTable(tableNumber int) ([]OrderView, error) {
	table, err := s.TableRepo.FindByNumber(tableNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, persistence(err)
	}
	orders, err := s.Repo.ListActiveForTable(table.ID)
	if err != nil {
		return nil, persistence(err)
	}
	out := make([]OrderView, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderView(&orders[i]))
	}
	return out, nil
}
