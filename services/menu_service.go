package services

import (
	"errors"
	"time"

	"backend/entity"
	"backend/repository"
	"backend/utils"

	"gorm.io/gorm"
)

type MenuService struct {
	Repo *repository.MenuRepository
	Pub  Publisher
}

func NewMenuService(repo *repository.MenuRepository, pub Publisher) *MenuService {
	return &MenuService{Repo: repo, Pub: pub}
}

type MenuItemView struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	CategoryID  uint      `json:"category_id"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newMenuItemView(m *entity.MenuItem) MenuItemView {
	return MenuItemView{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       utils.CentsToFloat(m.PriceCents),
		CategoryID:  m.CategoryID,
		IsAvailable: m.IsAvailable,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type CategoryView struct {
	ID           uint           `json:"id"`
	Name         string         `json:"name"`
	DisplayOrder int            `json:"display_order"`
	Items        []MenuItemView `json:"items"`
}

// ListMenu returns categories that have at least one available item.
func (s *MenuService) ListMenu() ([]CategoryView, error) {
	cats, err := s.Repo.ListCategories()
	if err != nil {
		return nil, persistence(err)
	}
	out := make([]CategoryView, 0, len(cats))
	for i := range cats {
		items, err := s.Repo.ListAvailableItems(cats[i].ID)
		if err != nil {
			return nil, persistence(err)
		}
		if len(items) == 0 {
			continue
		}
		views := make([]MenuItemView, 0, len(items))
		for j := range items {
			views = append(views, newMenuItemView(&items[j]))
		}
		out = append(out, CategoryView{
			ID:           cats[i].ID,
			Name:         cats[i].Name,
			DisplayOrder: cats[i].DisplayOrder,
			Items:        views,
		})
	}
	return out, nil
}

func (s *MenuService) GetItem(id uint) (*MenuItemView, error) {
	m, err := s.Repo.GetItem(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, persistence(err)
	}
	v := newMenuItemView(m)
	return &v, nil
}

func (s *MenuService) ListAllItems() ([]MenuItemView, error) {
	items, err := s.Repo.ListAllItems()
	if err != nil {
		return nil, persistence(err)
	}
	out := make([]MenuItemView, 0, len(items))
	for i := range items {
		out = append(out, newMenuItemView(&items[i]))
	}
	return out, nil
}

// ----- Admin mutations -----

type CreateItemReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	// Pointer so a free item (price 0.00) survives the required check.
	Price       *float64 `json:"price" binding:"required,gte=0"`
	CategoryID  uint     `json:"category_id" binding:"required"`
	IsAvailable *bool    `json:"is_available"`
}

func (s *MenuService) CreateItem(req *CreateItemReq) (*MenuItemView, error) {
	ok, err := s.Repo.CategoryExists(req.CategoryID)
	if err != nil {
		return nil, persistence(err)
	}
	if !ok {
		return nil, ErrInvalidCategory
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	m := entity.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  utils.CentsFromFloat(*req.Price),
		CategoryID:  req.CategoryID,
		IsAvailable: available,
	}
	if err := s.Repo.CreateItem(&m); err != nil {
		return nil, persistence(err)
	}

	s.Pub.Publish(ChannelCustomers, EventMenuUpdated, nil)
	v := newMenuItemView(&m)
	return &v, nil
}

type UpdateItemReq struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	CategoryID  *uint    `json:"category_id"`
	IsAvailable *bool    `json:"is_available"`
}

func (s *MenuService) UpdateItem(id uint, req *UpdateItemReq) (*MenuItemView, error) {
	m, err := s.Repo.GetItem(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, persistence(err)
	}

	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Description != nil {
		m.Description = *req.Description
	}
	if req.Price != nil {
		m.PriceCents = utils.CentsFromFloat(*req.Price)
	}
	if req.CategoryID != nil {
		ok, err := s.Repo.CategoryExists(*req.CategoryID)
		if err != nil {
			return nil, persistence(err)
		}
		if !ok {
			return nil, ErrInvalidCategory
		}
		m.CategoryID = *req.CategoryID
	}
	wentUnavailable := false
	if req.IsAvailable != nil {
		wentUnavailable = m.IsAvailable && !*req.IsAvailable
		m.IsAvailable = *req.IsAvailable
	}

	if err := s.Repo.SaveItem(m); err != nil {
		return nil, persistence(err)
	}

	if wentUnavailable {
		s.Pub.Publish(ChannelCustomers, EventItemUnavailable, map[string]any{"item_id": id})
	}
	s.Pub.Publish(ChannelCustomers, EventMenuUpdated, nil)

	v := newMenuItemView(m)
	return &v, nil
}

func (s *MenuService) DeleteItem(id uint) error {
	if _, err := s.Repo.GetItem(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return persistence(err)
	}

	inUse, err := s.Repo.ItemInActiveOrder(id)
	if err != nil {
		return persistence(err)
	}
	if inUse {
		return ErrItemHasOrders
	}

	if err := s.Repo.DeleteItem(id); err != nil {
		return persistence(err)
	}
	s.Pub.Publish(ChannelCustomers, EventMenuUpdated, nil)
	return nil
}
