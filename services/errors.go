package services

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTable       = errors.New("invalid or inactive table")
	ErrRateLimited        = errors.New("please wait before placing another order")
	ErrInvalidQuantity    = errors.New("quantity must be a positive integer")
	ErrItemUnavailable    = errors.New("menu item not available")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrOrderNotFound      = errors.New("order not found")
	ErrTableNotFound      = errors.New("table not found")
	ErrItemNotFound       = errors.New("menu item not found")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrTableExists        = errors.New("table number already exists")
	ErrTableHasOrders     = errors.New("cannot delete table with active orders")
	ErrItemHasOrders      = errors.New("cannot delete item with pending orders")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPersistence marks storage failures; callers get a generic
	// message, the detail stays in logs.
	ErrPersistence = errors.New("storage failure")
)

func persistence(err error) error {
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}
