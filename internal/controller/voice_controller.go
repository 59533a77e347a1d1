package controller

import (
	"ecopulse_backend/internal/service"
	"ecopulse_backend/internal/util"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// VoiceController exposes survey management for moderators plus the
// webhook endpoints Twilio calls back on. Webhooks are public routes;
// they carry no bearer token.
type VoiceController struct {
	VoiceService *service.VoiceService
}

func NewVoiceController(voiceService *service.VoiceService) *VoiceController {
	return &VoiceController{VoiceService: voiceService}
}

// CreateSurvey godoc
// @Summary Create a phone survey
// @Tags voice
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.SurveyInput true "Survey"
// @Success 201 {object} util.Response{data=model.VoiceSurvey}
// @Router /voice/surveys [post]
func (ctl *VoiceController) CreateSurvey(c *gin.Context) {
	var input service.SurveyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	survey, err := ctl.VoiceService.CreateSurvey(input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Created(c, survey)
}

// ListSurveys godoc
// @Summary List phone surveys
// @Tags voice
// @Produce json
// @Security BearerAuth
// @Param active query bool false "Only active surveys"
// @Success 200 {object} util.Response{data=[]model.VoiceSurvey}
// @Router /voice/surveys [get]
func (ctl *VoiceController) ListSurveys(c *gin.Context) {
	activeOnly, _ := strconv.ParseBool(c.DefaultQuery("active", "false"))

	surveys, err := ctl.VoiceService.ListSurveys(activeOnly)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, surveys)
}

// ListCalls godoc
// @Summary List calls placed for a survey
// @Tags voice
// @Produce json
// @Security BearerAuth
// @Param id path int true "Survey ID"
// @Success 200 {object} util.Response{data=[]model.VoiceCall}
// @Router /voice/surveys/{id}/calls [get]
func (ctl *VoiceController) ListCalls(c *gin.Context) {
	surveyID := util.MustParseUint(c.Param("id"))
	if surveyID == 0 {
		util.BadRequest(c, "invalid survey id")
		return
	}

	calls, err := ctl.VoiceService.ListCalls(surveyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, calls)
}

// PlaceCall godoc
// @Summary Dial a resident for a survey
// @Tags voice
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Survey ID"
// @Success 201 {object} util.Response{data=model.VoiceCall}
// @Router /voice/surveys/{id}/calls [post]
func (ctl *VoiceController) PlaceCall(c *gin.Context) {
	surveyID := util.MustParseUint(c.Param("id"))
	if surveyID == 0 {
		util.BadRequest(c, "invalid survey id")
		return
	}

	var body struct {
		Phone  string `json:"phone" binding:"required,e164"`
		UserID *uint  `json:"userId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	call, err := ctl.VoiceService.PlaceCall(surveyID, body.Phone, body.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Created(c, call)
}

// AnswerWebhook returns TwiML when the callee picks up.
func (ctl *VoiceController) AnswerWebhook(c *gin.Context) {
	surveyID := util.MustParseUint(c.Query("survey_id"))
	if surveyID == 0 {
		c.String(http.StatusBadRequest, "missing survey_id")
		return
	}

	twiml, err := ctl.VoiceService.AnswerTwiML(surveyID)
	if err != nil {
		c.String(http.StatusInternalServerError, "twiml generation failed")
		return
	}
	c.Data(http.StatusOK, "application/xml", []byte(twiml))
}

// StatusWebhook receives call lifecycle events.
func (ctl *VoiceController) StatusWebhook(c *gin.Context) {
	callSID := c.PostForm("CallSid")
	callStatus := c.PostForm("CallStatus")
	if callSID == "" {
		c.String(http.StatusBadRequest, "missing CallSid")
		return
	}

	if err := ctl.VoiceService.HandleStatus(callSID, callStatus); err != nil {
		c.String(http.StatusInternalServerError, "status update failed")
		return
	}
	c.String(http.StatusOK, "ok")
}

// RecordingWebhook receives the finished recording reference.
func (ctl *VoiceController) RecordingWebhook(c *gin.Context) {
	callSID := c.PostForm("CallSid")
	recordingURL := c.PostForm("RecordingUrl")
	duration, _ := strconv.Atoi(c.PostForm("RecordingDuration"))

	if callSID == "" || recordingURL == "" {
		c.String(http.StatusBadRequest, "missing recording parameters")
		return
	}

	if err := ctl.VoiceService.HandleRecording(callSID, recordingURL, duration); err != nil {
		c.String(http.StatusInternalServerError, "recording ingest failed")
		return
	}
	c.String(http.StatusOK, "ok")
}
