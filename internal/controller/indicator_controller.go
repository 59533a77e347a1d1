package controller

import (
	"ecopulse_backend/internal/service"
	"ecopulse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type IndicatorController struct {
	IndicatorService *service.IndicatorService
}

func NewIndicatorController(indicatorService *service.IndicatorService) *IndicatorController {
	return &IndicatorController{IndicatorService: indicatorService}
}

// List godoc
// @Summary List wellbeing indicators
// @Tags indicators
// @Produce json
// @Param category query string false "Filter by category"
// @Success 200 {object} util.Response{data=[]model.Indicator}
// @Router /indicators [get]
func (ctl *IndicatorController) List(c *gin.Context) {
	indicators, err := ctl.IndicatorService.List(c.Query("category"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, indicators)
}

// Get godoc
// @Summary Get one indicator
// @Tags indicators
// @Produce json
// @Param id path int true "Indicator ID"
// @Success 200 {object} util.Response{data=model.Indicator}
// @Router /indicators/{id} [get]
func (ctl *IndicatorController) Get(c *gin.Context) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid indicator id")
		return
	}

	indicator, err := ctl.IndicatorService.Get(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, indicator)
}

// Sunburst godoc
// @Summary Get the indicator hierarchy for the sunburst view
// @Tags indicators
// @Produce json
// @Success 200 {object} util.Response{data=[]service.SunburstNode}
// @Router /indicators/sunburst [get]
func (ctl *IndicatorController) Sunburst(c *gin.Context) {
	tree, err := ctl.IndicatorService.Sunburst()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, tree)
}

// Create godoc
// @Summary Create an indicator
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.IndicatorInput true "Indicator"
// @Success 201 {object} util.Response{data=model.Indicator}
// @Router /admin/indicators [post]
func (ctl *IndicatorController) Create(c *gin.Context) {
	var input service.IndicatorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	indicator, err := ctl.IndicatorService.Create(input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Created(c, indicator)
}

// Update godoc
// @Summary Update an indicator
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Indicator ID"
// @Param body body service.IndicatorInput true "Indicator"
// @Success 200 {object} util.Response{data=model.Indicator}
// @Router /admin/indicators/{id} [put]
func (ctl *IndicatorController) Update(c *gin.Context) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid indicator id")
		return
	}

	var input service.IndicatorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	indicator, err := ctl.IndicatorService.Update(id, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, indicator)
}

// Delete godoc
// @Summary Delete an indicator
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Indicator ID"
// @Success 200 {object} util.Response
// @Router /admin/indicators/{id} [delete]
func (ctl *IndicatorController) Delete(c *gin.Context) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid indicator id")
		return
	}

	if err := ctl.IndicatorService.Delete(id); err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, nil)
}

// Link godoc
// @Summary Create a relationship between two indicators
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.RelationshipInput true "Relationship"
// @Success 201 {object} util.Response{data=model.IndicatorRelationship}
// @Router /admin/indicators/relationships [post]
func (ctl *IndicatorController) Link(c *gin.Context) {
	var input service.RelationshipInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	rel, err := ctl.IndicatorService.Link(input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Created(c, rel)
}

// Unlink godoc
// @Summary Delete an indicator relationship
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Relationship ID"
// @Success 200 {object} util.Response
// @Router /admin/indicators/relationships/{id} [delete]
func (ctl *IndicatorController) Unlink(c *gin.Context) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid relationship id")
		return
	}

	if err := ctl.IndicatorService.Unlink(id); err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, nil)
}
