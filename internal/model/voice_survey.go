package model

// VoiceSurvey is a single spoken question that residents without the
// app can answer over the phone.
type VoiceSurvey struct {
	BaseModel
	Title    string `gorm:"size:255;not null" json:"title"`
	Question string `gorm:"type:text;not null" json:"question"`
	Active   bool   `gorm:"default:true" json:"active"`
}

func (VoiceSurvey) TableName() string {
	return "voice_surveys"
}

type CallStatus string

const (
	CallInitiated CallStatus = "initiated"
	CallAnswered  CallStatus = "answered"
	CallRecorded  CallStatus = "recorded"
	CallFailed    CallStatus = "failed"
)

// VoiceCall tracks one outbound survey call end to end: placement,
// Twilio callbacks, the normalized recording and the LLM summary.
type VoiceCall struct {
	BaseModel
	SurveyID     uint       `gorm:"index;not null" json:"surveyId"`
	UserID       *uint      `gorm:"index" json:"userId"`
	Phone        string     `gorm:"size:30;not null" json:"phone"`
	CallSID      string     `gorm:"size:64;uniqueIndex" json:"callSid"`
	Status       CallStatus `gorm:"size:20;default:'initiated'" json:"status"`
	RecordingURL string     `gorm:"size:255" json:"recordingUrl"`
	RecordingKey string     `gorm:"size:255" json:"recordingKey"`
	DurationSecs int        `gorm:"default:0" json:"durationSecs"`
	Summary      string     `gorm:"type:text" json:"summary"`
}

func (VoiceCall) TableName() string {
	return "voice_calls"
}
