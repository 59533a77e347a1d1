package service

import (
	"context"
	"ecopulse_backend/internal/config"
	"ecopulse_backend/internal/model"
	"ecopulse_backend/internal/repository"
	"ecopulse_backend/internal/util"
	"ecopulse_backend/pkg/logger"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VoiceService runs phone surveys over Twilio: it places the call,
// answers Twilio's webhooks with TwiML, pulls the recording down,
// normalizes it and asks the LLM for a summary.
type VoiceService struct {
	VoiceRepo *repository.VoiceRepository
	Storage   StorageProvider
	AI        *AIService
	Twilio    config.TwilioConfig

	client *http.Client
}

func NewVoiceService(voiceRepo *repository.VoiceRepository, storage StorageProvider, ai *AIService, twilio config.TwilioConfig) *VoiceService {
	return &VoiceService{
		VoiceRepo: voiceRepo,
		Storage:   storage,
		AI:        ai,
		Twilio:    twilio,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *VoiceService) Enabled() bool {
	return s.Twilio.AccountSID != "" && s.Twilio.AuthToken != "" && s.Twilio.FromNumber != ""
}

type SurveyInput struct {
	Title    string `json:"title" binding:"required,max=255"`
	Question string `json:"question" binding:"required,max=2000"`
}

func (s *VoiceService) CreateSurvey(input SurveyInput) (*model.VoiceSurvey, error) {
	survey := &model.VoiceSurvey{
		Title:    input.Title,
		Question: input.Question,
		Active:   true,
	}
	if err := s.VoiceRepo.CreateSurvey(survey); err != nil {
		return nil, err
	}
	return survey, nil
}

func (s *VoiceService) ListSurveys(activeOnly bool) ([]model.VoiceSurvey, error) {
	return s.VoiceRepo.ListSurveys(activeOnly)
}

func (s *VoiceService) ListCalls(surveyID uint) ([]model.VoiceCall, error) {
	return s.VoiceRepo.ListCallsBySurvey(surveyID)
}

// PlaceCall dials the resident through the Twilio REST API. Twilio
// fetches TwiML from our answer webhook once the callee picks up.
func (s *VoiceService) PlaceCall(surveyID uint, phone string, userID *uint) (*model.VoiceCall, error) {
	survey, err := s.VoiceRepo.FindSurveyByID(surveyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSurveyNotActive
		}
		return nil, err
	}
	if !survey.Active {
		return nil, util.ErrSurveyNotActive
	}

	if !s.Enabled() {
		return nil, fmt.Errorf("twilio is not configured")
	}

	answerURL := fmt.Sprintf("%s/api/v1/voice/webhook/answer?survey_id=%d", s.Twilio.CallbackURL, surveyID)
	statusURL := fmt.Sprintf("%s/api/v1/voice/webhook/status", s.Twilio.CallbackURL)

	form := url.Values{}
	form.Set("To", phone)
	form.Set("From", s.Twilio.FromNumber)
	form.Set("Url", answerURL)
	form.Set("StatusCallback", statusURL)
	form.Set("StatusCallbackEvent", "completed")

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Calls.json", s.twilioBase(), s.Twilio.AccountSID)
	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(s.Twilio.AccountSID, s.Twilio.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("twilio call request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("twilio returned %d: %s", resp.StatusCode, truncate(string(body), 256))
	}

	var created struct {
		SID    string `json:"sid"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("twilio response decode failed: %w", err)
	}

	call := &model.VoiceCall{
		SurveyID: surveyID,
		UserID:   userID,
		Phone:    phone,
		CallSID:  created.SID,
		Status:   model.CallInitiated,
	}
	if err := s.VoiceRepo.CreateCall(call); err != nil {
		return nil, err
	}
	return call, nil
}

type twimlResponse struct {
	XMLName xml.Name     `xml:"Response"`
	Say     []twimlSay   `xml:"Say"`
	Record  *twimlRecord `xml:"Record,omitempty"`
}

type twimlSay struct {
	Voice string `xml:"voice,attr,omitempty"`
	Text  string `xml:",chardata"`
}

type twimlRecord struct {
	Action    string `xml:"action,attr"`
	Method    string `xml:"method,attr"`
	MaxLength int    `xml:"maxLength,attr"`
	PlayBeep  bool   `xml:"playBeep,attr"`
}

// AnswerTwiML builds the TwiML document Twilio plays when the call
// connects: read the question, then record the answer.
func (s *VoiceService) AnswerTwiML(surveyID uint) (string, error) {
	survey, err := s.VoiceRepo.FindSurveyByID(surveyID)
	if err != nil {
		return "", err
	}

	doc := twimlResponse{
		Say: []twimlSay{
			{Voice: "alice", Text: survey.Question},
			{Voice: "alice", Text: "Please share your answer after the beep. Hang up when you are done."},
		},
		Record: &twimlRecord{
			Action:    fmt.Sprintf("%s/api/v1/voice/webhook/recording", s.Twilio.CallbackURL),
			Method:    "POST",
			MaxLength: 120,
			PlayBeep:  true,
		},
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return xml.Header + string(out), nil
}

// HandleStatus records terminal call states reported by Twilio.
func (s *VoiceService) HandleStatus(callSID, callStatus string) error {
	call, err := s.VoiceRepo.FindCallBySID(callSID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	switch callStatus {
	case "completed", "in-progress", "answered":
		if call.Status == model.CallInitiated {
			call.Status = model.CallAnswered
		}
	case "busy", "no-answer", "failed", "canceled":
		call.Status = model.CallFailed
	default:
		return nil
	}
	return s.VoiceRepo.UpdateCall(call)
}

// HandleRecording ingests a finished recording: download from Twilio,
// transcode to the house format, store it and summarize. Storage and
// summary failures are logged but never bounce the webhook, since
// Twilio would retry with the same payload.
func (s *VoiceService) HandleRecording(callSID, recordingURL string, durationSecs int) error {
	call, err := s.VoiceRepo.FindCallBySID(callSID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	call.Status = model.CallRecorded
	call.DurationSecs = durationSecs

	key, storedURL, err := s.ingestRecording(callSID, recordingURL)
	if err != nil {
		logger.Log.Error("recording ingest failed",
			zap.String("callSID", callSID), zap.Error(err))
	} else {
		call.RecordingKey = key
		call.RecordingURL = storedURL
	}

	if err := s.VoiceRepo.UpdateCall(call); err != nil {
		return err
	}

	s.summarize(call)
	return nil
}

func (s *VoiceService) ingestRecording(callSID, recordingURL string) (string, string, error) {
	// Twilio serves recordings as mp3 when the extension asks for it.
	req, err := http.NewRequest(http.MethodGet, recordingURL+".mp3", nil)
	if err != nil {
		return "", "", err
	}
	req.SetBasicAuth(s.Twilio.AccountSID, s.Twilio.AuthToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("recording download failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("recording download returned %d", resp.StatusCode)
	}

	tmpDir := os.TempDir()
	rawPath := filepath.Join(tmpDir, fmt.Sprintf("call-%s-raw.mp3", uuid.New().String()))
	normPath := filepath.Join(tmpDir, fmt.Sprintf("call-%s.mp3", uuid.New().String()))
	defer os.Remove(rawPath)
	defer os.Remove(normPath)

	raw, err := os.Create(rawPath)
	if err != nil {
		return "", "", err
	}
	if _, err := io.Copy(raw, resp.Body); err != nil {
		raw.Close()
		return "", "", err
	}
	raw.Close()

	if err := util.NormalizeAudio(rawPath, normPath); err != nil {
		return "", "", err
	}

	normalized, err := os.Open(normPath)
	if err != nil {
		return "", "", err
	}
	defer normalized.Close()

	info, err := normalized.Stat()
	if err != nil {
		return "", "", err
	}

	key := fmt.Sprintf("recordings/%s.mp3", callSID)
	storedURL, err := s.Storage.Save(normalized, key, info.Size(), "audio/mpeg")
	if err != nil {
		return "", "", err
	}
	return key, storedURL, nil
}

// summarize asks the LLM for a short writeup of the answer. Without a
// transcript the model works from call metadata, which is still useful
// for triage lists.
func (s *VoiceService) summarize(call *model.VoiceCall) {
	if s.AI == nil || !s.AI.Enabled() {
		return
	}

	survey, err := s.VoiceRepo.FindSurveyByID(call.SurveyID)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	prompt := fmt.Sprintf(
		"Survey question: %q\nA resident answered by phone; the recording lasts %d seconds and is stored at %s. Write a one-line triage note for the moderation queue describing what should happen next with this response.",
		survey.Question, call.DurationSecs, call.RecordingURL)

	summary, err := s.AI.Complete(ctx,
		"You triage voice survey responses for a community engagement team. Be brief and concrete.",
		prompt)
	if err != nil {
		logger.Log.Warn("call summary failed",
			zap.String("callSID", call.CallSID), zap.Error(err))
		return
	}

	call.Summary = summary
	if err := s.VoiceRepo.UpdateCall(call); err != nil {
		logger.Log.Warn("call summary persist failed",
			zap.String("callSID", call.CallSID), zap.Error(err))
	}
}

func (s *VoiceService) twilioBase() string {
	if s.Twilio.BaseURL != "" {
		return s.Twilio.BaseURL
	}
	return "https://api.twilio.com"
}
