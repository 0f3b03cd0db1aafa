package entity

import (
	"gorm.io/gorm"
)

// Order statuses. Any status may follow any status: staff use the
// dashboard as an ops tool, not a strict workflow.
const (
	StatusPending   = "pending"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusCompleted = "completed"
)

func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusCompleted:
		return true
	}
	return false
}

type Order struct {
	gorm.Model
	Status        string `gorm:"default:pending" json:"status"`
	EstimatedTime int    `json:"estimated_time"` // minutes
	TotalCents    int64  `json:"-"`

	TableID uint  `json:"table_id"`
	Table   Table `json:"-"` // preload for the table number

	OrderItems []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
