package controller

import (
	"ecopulse_backend/internal/service"
	"ecopulse_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type StoryController struct {
	StoryService *service.StoryService
}

func NewStoryController(storyService *service.StoryService) *StoryController {
	return &StoryController{StoryService: storyService}
}

// CreateStory godoc
// @Summary Share a community story, optionally with a photo
// @Tags stories
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Story title"
// @Param body formData string true "Story body"
// @Param locationId formData int false "Location ID"
// @Param photo formData file false "Photo"
// @Success 201 {object} util.Response{data=model.Story}
// @Failure 429 {object} util.Response
// @Router /stories [post]
func (ctl *StoryController) CreateStory(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var input service.CreateStoryInput
	if err := c.ShouldBind(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	// Photo is optional; FormFile errors just mean none was sent.
	photo, _ := c.FormFile("photo")

	story, err := ctl.StoryService.CreateStory(claims.UserID, input, photo)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Created(c, story)
}

// ListStories godoc
// @Summary List published stories
// @Tags stories
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20)"
// @Param locationId query int false "Scope to a location"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /stories [get]
func (ctl *StoryController) ListStories(c *gin.Context) {
	page, limit := pagination(c)

	var locationID *uint
	if raw := c.Query("locationId"); raw != "" {
		id := util.MustParseUint(raw)
		if id == 0 {
			util.BadRequest(c, "invalid location id")
			return
		}
		locationID = &id
	}

	stories, total, err := ctl.StoryService.ListPublished(page, limit, locationID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, util.PageResponse{List: stories, Total: total, Page: page, Limit: limit})
}

// ListMine godoc
// @Summary List the authenticated user's stories in every status
// @Tags stories
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Story}
// @Router /stories/mine [get]
func (ctl *StoryController) ListMine(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	stories, err := ctl.StoryService.ListMine(claims.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, stories)
}

// GetStory godoc
// @Summary Get one story
// @Tags stories
// @Produce json
// @Param id path int true "Story ID"
// @Success 200 {object} util.Response{data=model.Story}
// @Router /stories/{id} [get]
func (ctl *StoryController) GetStory(c *gin.Context) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid story id")
		return
	}

	story, err := ctl.StoryService.GetStory(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, story)
}

// DeleteStory godoc
// @Summary Delete a story (author or moderator)
// @Tags stories
// @Produce json
// @Security BearerAuth
// @Param id path int true "Story ID"
// @Success 200 {object} util.Response
// @Router /stories/{id} [delete]
func (ctl *StoryController) DeleteStory(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid story id")
		return
	}

	if err := ctl.StoryService.DeleteStory(id, claims.UserID, claims.Role); err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, nil)
}

// ListPending godoc
// @Summary List stories awaiting moderation
// @Tags moderation
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20)"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /moderation/stories [get]
func (ctl *StoryController) ListPending(c *gin.Context) {
	page, limit := pagination(c)

	stories, total, err := ctl.StoryService.ListPending(page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, util.PageResponse{List: stories, Total: total, Page: page, Limit: limit})
}

// Moderate godoc
// @Summary Publish or reject a pending story
// @Tags moderation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Story ID"
// @Success 200 {object} util.Response{data=model.Story}
// @Router /moderation/stories/{id} [put]
func (ctl *StoryController) Moderate(c *gin.Context) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid story id")
		return
	}

	var body struct {
		Approve bool `json:"approve"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	story, err := ctl.StoryService.Moderate(id, body.Approve)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, story)
}

// Polish godoc
// @Summary Ask the assistant for a polished draft of a story body
// @Tags stories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /stories/polish [post]
func (ctl *StoryController) Polish(c *gin.Context) {
	var body struct {
		Body string `json:"body" binding:"required,max=4000"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	polished := ctl.StoryService.SuggestPolish(c.Request.Context(), body.Body)
	util.Success(c, gin.H{"polished": polished})
}

func pagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
