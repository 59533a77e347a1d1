package controller

import (
	"ecopulse_backend/internal/service"
	"ecopulse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type VoucherController struct {
	VoucherService *service.VoucherService
}

func NewVoucherController(voucherService *service.VoucherService) *VoucherController {
	return &VoucherController{VoucherService: voucherService}
}

// List godoc
// @Summary List partner vouchers
// @Tags vouchers
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Voucher}
// @Router /vouchers [get]
func (ctl *VoucherController) List(c *gin.Context) {
	vouchers, err := ctl.VoucherService.List()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, vouchers)
}

// Redeem godoc
// @Summary Redeem a voucher with insights
// @Tags vouchers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Voucher ID"
// @Success 200 {object} util.Response{data=model.VoucherRedemption}
// @Failure 402 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /vouchers/{id}/redeem [post]
func (ctl *VoucherController) Redeem(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid voucher id")
		return
	}

	redemption, err := ctl.VoucherService.Redeem(claims.UserID, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, redemption)
}

// MyRedemptions godoc
// @Summary List the user's redeemed voucher codes
// @Tags vouchers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.VoucherRedemption}
// @Router /vouchers/redemptions [get]
func (ctl *VoucherController) MyRedemptions(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	redemptions, err := ctl.VoucherService.ListRedemptions(claims.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, redemptions)
}

// Create godoc
// @Summary Create a partner voucher
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.VoucherInput true "Voucher"
// @Success 201 {object} util.Response{data=model.Voucher}
// @Router /admin/vouchers [post]
func (ctl *VoucherController) Create(c *gin.Context) {
	var input service.VoucherInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	voucher, err := ctl.VoucherService.Create(input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Created(c, voucher)
}
