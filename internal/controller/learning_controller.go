package controller

import (
	"ecopulse_backend/internal/service"
	"ecopulse_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// LearningController exposes the learning path and its progression
// operations.
type LearningController struct {
	Progression *service.ProgressionService
}

func NewLearningController(progression *service.ProgressionService) *LearningController {
	return &LearningController{Progression: progression}
}

// GetPath godoc
// @Summary Get the learning path with per-node status
// @Tags learning
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.PathEntry}
// @Router /learning/path [get]
func (ctl *LearningController) GetPath(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	entries, err := ctl.Progression.GetPath(claims.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, entries)
}

// StartPath godoc
// @Summary Initialize the learning path for the current user
// @Tags learning
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /learning/path/start [post]
func (ctl *LearningController) StartPath(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	if err := ctl.Progression.StartPath(claims.UserID); err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, nil)
}

type completeNodeRequest struct {
	Response datatypes.JSON `json:"response"`
}

// CompleteNode godoc
// @Summary Complete a learning node and collect the reward
// @Tags learning
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Node ID"
// @Param body body completeNodeRequest false "Optional activity response payload"
// @Success 200 {object} util.Response{data=service.CompletionResult}
// @Failure 403 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /learning/nodes/{id}/complete [post]
func (ctl *LearningController) CompleteNode(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	nodeID := util.MustParseUint(c.Param("id"))
	if nodeID == 0 {
		util.BadRequest(c, "invalid node id")
		return
	}

	var body completeNodeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			util.BadRequest(c, err.Error())
			return
		}
	}

	result, err := ctl.Progression.CompleteNode(claims.UserID, nodeID, body.Response)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, result)
}

// SpendHeart godoc
// @Summary Spend one heart on a failed activity attempt
// @Tags learning
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Failure 402 {object} util.Response
// @Router /learning/hearts/spend [post]
func (ctl *LearningController) SpendHeart(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	remaining, err := ctl.Progression.SpendHeart(claims.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, gin.H{"hearts": remaining})
}

// DailyCheckIn godoc
// @Summary Register today's session, refreshing streak and hearts
// @Tags learning
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.User}
// @Router /learning/checkin [post]
func (ctl *LearningController) DailyCheckIn(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	user, err := ctl.Progression.UpdateDailyStats(claims.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, user)
}
