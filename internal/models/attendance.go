package models

import (
	"time"

	"github.com/google/uuid"
)

// Coordinate представляет географическую точку, переданную клиентом
type Coordinate struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	AccuracyMeters float64 `json:"accuracy_meters"`
}

// PositionFix - одно зафиксированное местоположение субъекта, используется
// эвристикой обнаружения подмены GPS
type PositionFix struct {
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	AccuracyMeters float64   `json:"accuracy_meters"`
	ObservedAt     time.Time `json:"observed_at"`
}

// Frame - один кадр с камеры клиента
type Frame struct {
	ID         string    `json:"id"`
	CapturedAt time.Time `json:"captured_at"`
	Data       []byte    `json:"-"`
}

// AttendanceAttempt - одна попытка отметить посещение. Создается на каждое
// действие пользователя и после создания не изменяется
type AttendanceAttempt struct {
	ID uuid.UUID `json:"id"`
	// SubjectID - заявленный клиентом субъект. Может быть пустым,
	// подтверждается этапом идентификации
	SubjectID        string     `json:"subject_id,omitempty"`
	ZoneID           uuid.UUID  `json:"zone_id"`
	ReportedLocation Coordinate `json:"reported_location"`
	FaceFrames       []Frame    `json:"face_frames"`
	ChallengeType    string     `json:"challenge_type,omitempty"`
	ChallengeFrames  []Frame    `json:"challenge_frames,omitempty"`
	Timestamp        time.Time  `json:"timestamp"`
}

// AttendanceRecord - подтвержденная запись о посещении
type AttendanceRecord struct {
	ID                uuid.UUID `json:"id"`
	AttemptID         uuid.UUID `json:"attempt_id"`
	SubjectID         string    `json:"subject_id"`
	ZoneID            uuid.UUID `json:"zone_id"`
	SessionDate       time.Time `json:"session_date"`
	Latitude          float64   `json:"latitude"`
	Longitude         float64   `json:"longitude"`
	AccuracyMeters    float64   `json:"accuracy_meters"`
	DistanceMeters    float64   `json:"distance_meters"`
	MatchConfidence   float64   `json:"match_confidence"`
	Emotion           string    `json:"emotion,omitempty"`
	EmotionConfidence float64   `json:"emotion_confidence,omitempty"`
	MarkedAt          time.Time `json:"marked_at"`
}

// QueueStatus - текущее состояние оффлайн-очереди
type QueueStatus struct {
	PendingCount     int64         `json:"pending_count"`
	FailedCount      int64         `json:"failed_count"`
	OldestPendingAge time.Duration `json:"oldest_pending_age"`
}
