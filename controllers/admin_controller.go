package controllers

import (
	"errors"
	"strconv"

	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	Menu    *services.MenuService
	Orders  *services.OrderService
	Tables  *services.TableService
	Reports *services.ReportService
}

func NewAdminController(
	menu *services.MenuService,
	orders *services.OrderService,
	tables *services.TableService,
	reports *services.ReportService,
) *AdminController {
	return &AdminController{Menu: menu, Orders: orders, Tables: tables, Reports: reports}
}

// ===== Menu management =====

// GET /api/admin/menu-items
func (a *AdminController) MenuItems(c *gin.Context) {
	items, err := a.Menu.ListAllItems()
	if err != nil {
		resp.ServerError(c, services.ErrPersistence)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// POST /api/admin/menu-items
func (a *AdminController) CreateMenuItem(c *gin.Context) {
	var req services.CreateItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "missing required fields")
		return
	}

	item, err := a.Menu.CreateItem(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCategory) {
			resp.BadRequest(c, "invalid category")
			return
		}
		resp.ServerError(c, services.ErrPersistence)
		return
	}
	resp.OK(c, gin.H{"item": item})
}

// PUT /api/admin/menu-items/:id
func (a *AdminController) UpdateMenuItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid item id")
		return
	}
	var req services.UpdateItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	item, err := a.Menu.UpdateItem(uint(id), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrItemNotFound):
			resp.NotFound(c, "menu item not found")
		case errors.Is(err, services.ErrInvalidCategory):
			resp.BadRequest(c, "invalid category")
		default:
			resp.ServerError(c, services.ErrPersistence)
		}
		return
	}
	resp.OK(c, gin.H{"item": item})
}

// DELETE /api/admin/menu-items/:id
func (a *AdminController) DeleteMenuItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid item id")
		return
	}

	if err := a.Menu.DeleteItem(uint(id)); err != nil {
		switch {
		case errors.Is(err, services.ErrItemNotFound):
			resp.NotFound(c, "menu item not found")
		case errors.Is(err, services.ErrItemHasOrders):
			resp.BadRequest(c, "cannot delete item with pending orders")
		default:
			resp.ServerError(c, services.ErrPersistence)
		}
		return
	}
	resp.OK(c, nil)
}

// ===== Order management =====

// GET /api/admin/orders/active
func (a *AdminController) ActiveOrders(c *gin.Context) {
	orders, err := a.Orders.ListActive()
	if err != nil {
		resp.ServerError(c, services.ErrPersistence)
		return
	}
	resp.OK(c, gin.H{"orders": orders})
}

type updateStatusReq struct {
	Status        string `json:"status" binding:"required"`
	EstimatedTime *int   `json:"estimated_time"`
}

// PUT /api/admin/orders/:id/status
func (a *AdminController) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "status required")
		return
	}

	order, err := a.Orders.UpdateStatus(uint(id), req.Status, req.EstimatedTime)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			resp.BadRequest(c, "invalid status")
		case errors.Is(err, services.ErrOrderNotFound):
			resp.NotFound(c, "order not found")
		default:
			resp.ServerError(c, services.ErrPersistence)
		}
		return
	}
	resp.OK(c, gin.H{"order": order})
}

// ===== Table management =====

// GET /api/admin/tables
func (a *AdminController) AdminTables(c *gin.Context) {
	tables, err := a.Tables.ListAllWithCounts()
	if err != nil {
		resp.ServerError(c, services.ErrPersistence)
		return
	}
	resp.OK(c, gin.H{"tables": tables})
}

// POST /api/admin/tables
func (a *AdminController) CreateTable(c *gin.Context) {
	var req services.CreateTableReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "table number required")
		return
	}

	table, err := a.Tables.Create(&req)
	if err != nil {
		if errors.Is(err, services.ErrTableExists) {
			resp.BadRequest(c, "table number already exists")
			return
		}
		resp.ServerError(c, services.ErrPersistence)
		return
	}
	resp.OK(c, gin.H{"table": table})
}

// DELETE /api/admin/tables/:id
func (a *AdminController) DeleteTable(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid table id")
		return
	}

	if err := a.Tables.Delete(uint(id)); err != nil {
		switch {
		case errors.Is(err, services.ErrTableNotFound):
			resp.NotFound(c, "table not found")
		case errors.Is(err, services.ErrTableHasOrders):
			resp.BadRequest(c, "cannot delete table with active orders")
		default:
			resp.ServerError(c, services.ErrPersistence)
		}
		return
	}
	resp.OK(c, nil)
}

// GET /api/admin/tables/:id/qrcode
func (a *AdminController) TableQRCode(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid table id")
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "256"))

	png, err := a.Tables.QRCode(uint(id), size)
	if err != nil {
		if errors.Is(err, services.ErrTableNotFound) {
			resp.NotFound(c, "table not found")
			return
		}
		resp.ServerError(c, services.ErrPersistence)
		return
	}
	c.Data(200, "image/png", png)
}

// ===== Dashboard & analytics =====

// GET /api/admin/dashboard/stats
func (a *AdminController) DashboardStats(c *gin.Context) {
	stats, err := a.Reports.Dashboard()
	if err != nil {
		resp.ServerError(c, services.ErrPersistence)
		return
	}
	resp.OK(c, gin.H{"stats": stats})
}

func daysParam(c *gin.Context, fallback int) int {
	days, err := strconv.Atoi(c.DefaultQuery("days", strconv.Itoa(fallback)))
	if err != nil || days <= 0 {
		return fallback
	}
	return days
}

// GET /api/admin/analytics/sales-by-hour
func (a *AdminController) SalesByHour(c *gin.Context) {
	data, err := a.Reports.SalesByHour(daysParam(c, 7))
	if err != nil {
		resp.ServerError(c, services.ErrPersistence)
		return
	}
	resp.OK(c, gin.H{"data": data})
}

// GET /api/admin/analytics/daily-trends
func (a *AdminController) DailyTrends(c *gin.Context) {
	data, err := a.Reports.DailyTrends(daysParam(c, 30))
	if err != nil {
		resp.ServerError(c, services.ErrPersistence)
		return
	}
	resp.OK(c, gin.H{"data": data})
}

// GET /api/admin/analytics/product-performance
func (a *AdminController) ProductPerformance(c *gin.Context) {
	data, err := a.Reports.ProductPerformance(daysParam(c, 30))
	if err != nil {
		resp.ServerError(c, services.ErrPersistence)
		return
	}
	resp.OK(c, gin.H{"data": data})
}

// GET /api/admin/analytics/category-performance
func (a *AdminController) CategoryPerformance(c *gin.Context) {
	data, err := a.Reports.CategoryPerformance(daysParam(c, 30))
	if err != nil {
		resp.ServerError(c, services.ErrPersistence)
		return
	}
	resp.OK(c, gin.H{"data": data})
}
