package controllers

import (
	"errors"
	"strconv"

	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{Service: service}
}

// POST /api/orders
func (oc *OrderController) Place(c *gin.Context) {
	var req services.PlaceOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "table number and items required")
		return
	}

	out, err := oc.Service.PlaceOrder(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRateLimited):
			resp.TooManyRequests(c, "please wait before placing another order")
		case errors.Is(err, services.ErrInvalidTable),
			errors.Is(err, services.ErrInvalidQuantity),
			errors.Is(err, services.ErrItemUnavailable):
			resp.BadRequest(c, err.Error())
		default:
			resp.ServerError(c, services.ErrPersistence)
		}
		return
	}
	resp.OK(c, out)
}

// GET /api/orders/:id
func (oc *OrderController) Detail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}

	order, err := oc.Service.GetOrder(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			resp.NotFound(c, "order not found")
			return
		}
		resp.ServerError(c, services.ErrPersistence)
		return
	}
	resp.OK(c, gin.H{"order": order})
}

// GET /api/orders/table/:number — the table session polls this on load,
// then follows live updates over the socket.
func (oc *OrderController) ListForTable(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		resp.BadRequest(c, "invalid table number")
		return
	}

	orders, err := oc.Service.ListForTable(number)
	if err != nil {
		if errors.Is(err, services.ErrTableNotFound) {
			resp.NotFound(c, "table not found")
			return
		}
		resp.ServerError(c, services.ErrPersistence)
		return
	}
	resp.OK(c, gin.H{"orders": orders, "table_number": number})
}
