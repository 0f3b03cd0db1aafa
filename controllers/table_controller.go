package controllers

import (
	"strconv"

	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type TableController struct {
	Service *services.TableService
}

func NewTableController(service *services.TableService) *TableController {
	return &TableController{Service: service}
}

// GET /api/tables
func (tc *TableController) List(c *gin.Context) {
	tables, err := tc.Service.ListActive()
	if err != nil {
		resp.ServerError(c, services.ErrPersistence)
		return
	}
	resp.OK(c, gin.H{"tables": tables})
}

// GET /api/tables/:number — customers probe this after scanning a QR code.
func (tc *TableController) Check(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		resp.BadRequest(c, "invalid table number")
		return
	}

	check, err := tc.Service.Check(number)
	if err != nil {
		resp.ServerError(c, services.ErrPersistence)
		return
	}
	resp.OK(c, check)
}
