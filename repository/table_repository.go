package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type TableRepository struct {
	DB *gorm.DB
}

func NewTableRepository(db *gorm.DB) *TableRepository {
	return &TableRepository{DB: db}
}

func (r *TableRepository) FindActiveByNumber(number int) (*entity.Table, error) {
	var t entity.Table
	err := r.DB.Where("table_number = ? AND is_active = ?", number, true).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TableRepository) FindByNumber(number int) (*entity.Table, error) {
	var t entity.Table
	if err := r.DB.Where("table_number = ?", number).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TableRepository) Get(id uint) (*entity.Table, error) {
	var t entity.Table
	if err := r.DB.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// ListActive returns customer-facing tables ordered by number.
func (r *TableRepository) ListActive() ([]entity.Table, error) {
	var tables []entity.Table
	err := r.DB.Where("is_active = ?", true).Order("table_number").Find(&tables).Error
	return tables, err
}

func (r *TableRepository) ListAll() ([]entity.Table, error) {
	var tables []entity.Table
	err := r.DB.Order("table_number").Find(&tables).Error
	return tables, err
}

func (r *TableRepository) NumberExists(number int) (bool, error) {
	var cnt int64
	if err := r.DB.Model(&entity.Table{}).Where("table_number = ?", number).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *TableRepository) Create(t *entity.Table) error {
	return r.DB.Create(t).Error
}

func (r *TableRepository) CountActiveOrders(tableID uint) (int64, error) {
	var cnt int64
	err := r.DB.Model(&entity.Order{}).
		Where("table_id = ? AND status IN ?", tableID,
			[]string{entity.StatusPending, entity.StatusPreparing, entity.StatusReady}).
		Count(&cnt).Error
	return cnt, err
}

// Delete removes the table row only; historical orders keep their rows.
func (r *TableRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.Table{}, id).Error
}
