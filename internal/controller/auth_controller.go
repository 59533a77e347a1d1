package controller

import (
	"ecopulse_backend/internal/service"
	"ecopulse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// Register godoc
// @Summary Register a new resident account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body service.RegisterInput true "Registration payload"
// @Success 201 {object} util.Response{data=service.AuthResult}
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /auth/register [post]
func (ctl *AuthController) Register(c *gin.Context) {
	var input service.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	result, err := ctl.AuthService.Register(input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Created(c, result)
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param body body service.LoginInput true "Login payload"
// @Success 200 {object} util.Response{data=service.AuthResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /auth/login [post]
func (ctl *AuthController) Login(c *gin.Context) {
	var input service.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	result, err := ctl.AuthService.Login(input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, result)
}
