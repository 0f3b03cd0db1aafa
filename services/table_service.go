package services

import (
	"errors"
	"time"

	"backend/entity"
	"backend/repository"
	"backend/utils"

	"gorm.io/gorm"
)

type TableService struct {
	Repo        *repository.TableRepository
	FrontendURL string
}

func NewTableService(repo *repository.TableRepository, frontendURL string) *TableService {
	return &TableService{Repo: repo, FrontendURL: frontendURL}
}

type TableView struct {
	ID          uint      `json:"id"`
	TableNumber int       `json:"table_number"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func newTableView(t *entity.Table) TableView {
	return TableView{
		ID:          t.ID,
		TableNumber: t.TableNumber,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
	}
}

func (s *TableService) ListActive() ([]TableView, error) {
	tables, err := s.Repo.ListActive()
	if err != nil {
		return nil, persistence(err)
	}
	out := make([]TableView, 0, len(tables))
	for i := range tables {
		out = append(out, newTableView(&tables[i]))
	}
	return out, nil
}

type TableCheck struct {
	Exists   bool  `json:"exists"`
	IsActive bool  `json:"is_active"`
	TableID  *uint `json:"table_id"`
}

// Check answers the customer-side "is this QR code a real table" probe.
func (s *TableService) Check(number int) (*TableCheck, error) {
	t, err := s.Repo.FindActiveByNumber(number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &TableCheck{}, nil
		}
		return nil, persistence(err)
	}
	id := t.ID
	return &TableCheck{Exists: true, IsActive: t.IsActive, TableID: &id}, nil
}

type AdminTableView struct {
	TableView
	ActiveOrders int64 `json:"active_orders"`
}

func (s *TableService) ListAllWithCounts() ([]AdminTableView, error) {
	tables, err := s.Repo.ListAll()
	if err != nil {
		return nil, persistence(err)
	}
	out := make([]AdminTableView, 0, len(tables))
	for i := range tables {
		cnt, err := s.Repo.CountActiveOrders(tables[i].ID)
		if err != nil {
			return nil, persistence(err)
		}
		out = append(out, AdminTableView{TableView: newTableView(&tables[i]), ActiveOrders: cnt})
	}
	return out, nil
}

type CreateTableReq struct {
	TableNumber int   `json:"table_number" binding:"required,gt=0"`
	IsActive    *bool `json:"is_active"`
}

func (s *TableService) Create(req *CreateTableReq) (*TableView, error) {
	exists, err := s.Repo.NumberExists(req.TableNumber)
	if err != nil {
		return nil, persistence(err)
	}
	if exists {
		return nil, ErrTableExists
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	t := entity.Table{TableNumber: req.TableNumber, IsActive: active}
	if err := s.Repo.Create(&t); err != nil {
		return nil, persistence(err)
	}
	v := newTableView(&t)
	return &v, nil
}

func (s *TableService) Delete(id uint) error {
	if _, err := s.Repo.Get(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTableNotFound
		}
		return persistence(err)
	}

	cnt, err := s.Repo.CountActiveOrders(id)
	if err != nil {
		return persistence(err)
	}
	if cnt > 0 {
		return ErrTableHasOrders
	}
	if err := s.Repo.Delete(id); err != nil {
		return persistence(err)
	}
	return nil
}

// QRCode renders the ordering link for a table as a PNG.
func (s *TableService) QRCode(id uint, size int) ([]byte, error) {
	t, err := s.Repo.Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, persistence(err)
	}
	return utils.TableQRCode(s.FrontendURL, t.TableNumber, size)
}
