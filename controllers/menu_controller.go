package controllers

import (
	"errors"
	"strconv"

	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type MenuController struct {
	Service *services.MenuService
}

func NewMenuController(service *services.MenuService) *MenuController {
	return &MenuController{Service: service}
}

// GET /api/menu
func (mc *MenuController) List(c *gin.Context) {
	categories, err := mc.Service.ListMenu()
	if err != nil {
		resp.ServerError(c, services.ErrPersistence)
		return
	}
	resp.OK(c, gin.H{"categories": categories})
}

// GET /api/menu/items/:id
func (mc *MenuController) Item(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid item id")
		return
	}

	item, err := mc.Service.GetItem(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			resp.NotFound(c, "menu item not found")
			return
		}
		resp.ServerError(c, services.ErrPersistence)
		return
	}
	resp.OK(c, gin.H{"item": item})
}
