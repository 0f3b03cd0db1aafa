package controllers

import (
	"errors"

	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{Service: service}
}

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (ac *AuthController) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "username and password required")
		return
	}

	out, err := ac.Service.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			resp.Unauthorized(c, "invalid credentials")
			return
		}
		resp.ServerError(c, services.ErrPersistence)
		return
	}
	resp.OK(c, out)
}

// Validate runs behind the auth middleware; reaching it means the token
// parsed, so it just resolves and returns the principal.
func (ac *AuthController) Validate(c *gin.Context) {
	admin, err := ac.Service.GetAdmin(utils.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			resp.Unauthorized(c, "user not found")
			return
		}
		resp.ServerError(c, services.ErrPersistence)
		return
	}
	resp.OK(c, gin.H{"valid": true, "user": admin})
}
