package controller

import (
	"ecopulse_backend/internal/service"
	"ecopulse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.User}
// @Router /users/me [get]
func (ctl *UserController) GetProfile(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	user, err := ctl.UserService.GetProfile(claims.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, user)
}

// UpdateProfile godoc
// @Summary Update name or home location
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.UpdateProfileInput true "Profile fields"
// @Success 200 {object} util.Response{data=model.User}
// @Router /users/me [put]
func (ctl *UserController) UpdateProfile(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var input service.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	user, err := ctl.UserService.UpdateProfile(claims.UserID, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, user)
}

// CompleteOnboarding godoc
// @Summary Mark onboarding as finished
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.User}
// @Router /users/me/onboarding [post]
func (ctl *UserController) CompleteOnboarding(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	user, err := ctl.UserService.CompleteOnboarding(claims.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, user)
}

// UploadAvatar godoc
// @Summary Upload a profile picture
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "Image file"
// @Success 200 {object} util.Response{data=model.User}
// @Router /users/me/avatar [post]
func (ctl *UserController) UploadAvatar(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	file, err := c.FormFile("avatar")
	if err != nil {
		util.BadRequest(c, "avatar file is required")
		return
	}

	user, err := ctl.UserService.UploadAvatar(claims.UserID, file)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, user)
}

// SetDisabled godoc
// @Summary Enable or disable a user account
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} util.Response
// @Router /admin/users/{id}/disabled [put]
func (ctl *UserController) SetDisabled(c *gin.Context) {
	userID := util.MustParseUint(c.Param("id"))
	if userID == 0 {
		util.BadRequest(c, "invalid user id")
		return
	}

	var body struct {
		Disabled bool `json:"disabled"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	if err := ctl.UserService.SetDisabled(userID, body.Disabled); err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, nil)
}
