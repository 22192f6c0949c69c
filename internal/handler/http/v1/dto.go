package v1

import (
	"time"

	"github.com/google/uuid"
)

// FrameDTO - один кадр видеопотока в base64
// @Description Один кадр видеопотока в base64
type FrameDTO struct {
	ID         string    `json:"id,omitempty"`
	CapturedAt time.Time `json:"captured_at" validate:"required"`
	Data       string    `json:"data" validate:"required,base64"`
}

// SubmitAttendanceRequest DTO для отправки попытки посещения
// @Description DTO для отправки попытки посещения
type SubmitAttendanceRequest struct {
	AttemptID       string     `json:"attempt_id" validate:"required,uuid4"`
	SubjectID       string     `json:"subject_id,omitempty"`
	ZoneID          string     `json:"zone_id" validate:"required,uuid4"`
	Latitude        float64    `json:"latitude" validate:"required,latitude"`
	Longitude       float64    `json:"longitude" validate:"required,longitude"`
	AccuracyMeters  float64    `json:"accuracy_meters" validate:"gte=0"`
	Timestamp       time.Time  `json:"timestamp,omitempty"`
	FaceFrames      []FrameDTO `json:"face_frames" validate:"required,min=1,dive"`
	ChallengeType   string     `json:"challenge_type,omitempty" validate:"omitempty,oneof=smile turn_head_left turn_head_right blink_twice"`
	ChallengeFrames []FrameDTO `json:"challenge_frames,omitempty" validate:"omitempty,dive"`
}

// StageResultDTO - результат одного этапа верификации
// @Description Результат одного этапа верификации
type StageResultDTO struct {
	Stage         string                 `json:"stage"`
	Passed        bool                   `json:"passed"`
	FailureReason string                 `json:"failure_reason,omitempty"`
	Detail        map[string]interface{} `json:"detail,omitempty"`
}

// VerificationOutcomeResponse DTO для ответа с результатом верификации
// @Description DTO для ответа с результатом верификации
type VerificationOutcomeResponse struct {
	AttemptID        uuid.UUID        `json:"attempt_id"`
	Passed           bool             `json:"passed"`
	RejectionReason  string           `json:"rejection_reason,omitempty"`
	FraudSeverity    string           `json:"fraud_severity"`
	MatchedSubjectID string           `json:"matched_subject_id,omitempty"`
	MatchConfidence  float64          `json:"match_confidence,omitempty"`
	Stages           []StageResultDTO `json:"stages"`
	VerifiedAt       time.Time        `json:"verified_at"`
}

// ChallengeResponse DTO для выданного челленджа
// @Description DTO для выданного челленджа
type ChallengeResponse struct {
	Type          string    `json:"type"`
	Prompt        string    `json:"prompt"`
	BudgetSeconds float64   `json:"budget_seconds"`
	IssuedAt      time.Time `json:"issued_at"`
}

// QueueStatusResponse DTO для состояния оффлайн-очереди
// @Description DTO для состояния оффлайн-очереди
type QueueStatusResponse struct {
	PendingCount            int64   `json:"pending_count"`
	FailedCount             int64   `json:"failed_count"`
	OldestPendingAgeSeconds float64 `json:"oldest_pending_age_seconds"`
}

// EnrollSubjectRequest DTO для регистрации лица субъекта
// @Description DTO для регистрации лица субъекта
type EnrollSubjectRequest struct {
	SubjectID string `json:"subject_id" validate:"required,min=1,max=255"`
	Name      string `json:"name" validate:"required,min=2,max=255"`
	Image     string `json:"image" validate:"required,base64"`
}

// CreateZoneRequest DTO для создания зоны посещения
// @Description DTO для создания зоны посещения
type CreateZoneRequest struct {
	Name         string  `json:"name" validate:"required,min=2,max=255"`
	Description  string  `json:"description,omitempty"`
	Latitude     float64 `json:"latitude" validate:"required,latitude"`
	Longitude    float64 `json:"longitude" validate:"required,longitude"`
	RadiusMeters int     `json:"radius_meters" validate:"required,gt=0"`
}

// UpdateZoneRequest DTO для обновления зоны посещения
// @Description DTO для обновления зоны посещения
type UpdateZoneRequest struct {
	Name         string  `json:"name" validate:"required,min=2,max=255"`
	Description  string  `json:"description,omitempty"`
	Latitude     float64 `json:"latitude" validate:"required,latitude"`
	Longitude    float64 `json:"longitude" validate:"required,longitude"`
	RadiusMeters int     `json:"radius_meters" validate:"required,gt=0"`
	Status       string  `json:"status" validate:"required,oneof=active inactive"`
}

// ZoneResponse DTO для ответа с информацией о зоне
// @Description DTO для ответа с информацией о зоне
type ZoneResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	RadiusMeters int       `json:"radius_meters"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StatsResponse DTO для ответа со статистикой посещений
// @Description DTO для ответа со статистикой посещений
type StatsResponse struct {
	SubjectCount int `json:"subject_count"`
}
