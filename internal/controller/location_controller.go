package controller

import (
	"ecopulse_backend/internal/service"
	"ecopulse_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type LocationController struct {
	LocationService *service.LocationService
}

func NewLocationController(locationService *service.LocationService) *LocationController {
	return &LocationController{LocationService: locationService}
}

// List godoc
// @Summary List all locations
// @Tags locations
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Location}
// @Router /locations [get]
func (ctl *LocationController) List(c *gin.Context) {
	locations, err := ctl.LocationService.List()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, locations)
}

// Get godoc
// @Summary Get one location with its ancestor path
// @Tags locations
// @Produce json
// @Param id path int true "Location ID"
// @Success 200 {object} util.Response
// @Router /locations/{id} [get]
func (ctl *LocationController) Get(c *gin.Context) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid location id")
		return
	}

	location, err := ctl.LocationService.Get(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	path, err := ctl.LocationService.AncestorPath(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	util.Success(c, gin.H{"location": location, "path": path})
}

// Children godoc
// @Summary List a location's direct children
// @Tags locations
// @Produce json
// @Param id path int true "Location ID"
// @Success 200 {object} util.Response{data=[]model.Location}
// @Router /locations/{id}/children [get]
func (ctl *LocationController) Children(c *gin.Context) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid location id")
		return
	}

	children, err := ctl.LocationService.Children(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, children)
}

// Leaderboard godoc
// @Summary Get the insights leaderboard for one location
// @Tags locations
// @Produce json
// @Param id path int true "Location ID"
// @Param limit query int false "Max entries (default 10)"
// @Success 200 {object} util.Response{data=[]service.LeaderboardEntry}
// @Router /locations/{id}/leaderboard [get]
func (ctl *LocationController) Leaderboard(c *gin.Context) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid location id")
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}

	entries, err := ctl.LocationService.Leaderboard(id, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, entries)
}

// Create godoc
// @Summary Create a location
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.LocationInput true "Location"
// @Success 201 {object} util.Response{data=model.Location}
// @Router /admin/locations [post]
func (ctl *LocationController) Create(c *gin.Context) {
	var input service.LocationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	location, err := ctl.LocationService.Create(input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Created(c, location)
}
