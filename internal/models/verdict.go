package models

import (
	"time"

	"github.com/google/uuid"
)

// FraudSeverity - порядковая классификация подозрения в мошенничестве
type FraudSeverity string

const (
	SeverityNone   FraudSeverity = "none"
	SeverityLow    FraudSeverity = "low"
	SeverityMedium FraudSeverity = "medium"
	SeverityHigh   FraudSeverity = "high"
)

// Rank возвращает порядковый номер уровня для сравнения
func (s FraudSeverity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	default:
		return 0
	}
}

// Названия этапов пайплайна верификации
const (
	StageGeofence  = "geofence"
	StageLiveness  = "liveness"
	StageIdentity  = "identity"
	StageChallenge = "challenge"
	StageFraud     = "fraud"
)

// Коды причин отказа. Каждый отказ несет ровно одну причину -
// первый не пройденный жесткий этап
const (
	ReasonGeofenceOutOfRange       = "geofence_out_of_range"
	ReasonGeofenceLowAccuracy      = "geofence_low_accuracy"
	ReasonGeofenceSpoofSuspected   = "geofence_spoof_suspected"
	ReasonLivenessSpoofDetected    = "liveness_spoof_detected"
	ReasonLivenessInsufficientData = "liveness_insufficient_data"
	ReasonIdentityNoMatch          = "identity_no_match"
	ReasonIdentityAmbiguousMatch   = "identity_ambiguous_match"
	ReasonChallengeFailed          = "challenge_failed"
	ReasonFraudHighSeverity        = "fraud_high_severity"
	ReasonDuplicateAttempt         = "duplicate_attempt"
	ReasonDuplicateSession         = "duplicate_session"
)

// StageResult - результат одного этапа пайплайна. Добавляется в след
// доказательств попытки и после создания не изменяется
type StageResult struct {
	Stage         string                 `json:"stage"`
	Passed        bool                   `json:"passed"`
	Detail        map[string]interface{} `json:"detail,omitempty"`
	FailureReason string                 `json:"failure_reason,omitempty"`
}

// VerificationOutcome - итоговое решение по попытке посещения.
// Создается ровно один раз на попытку
type VerificationOutcome struct {
	AttemptID        uuid.UUID     `json:"attempt_id"`
	OverallPassed    bool          `json:"overall_passed"`
	StageResults     []StageResult `json:"stage_results"`
	FraudSeverity    FraudSeverity `json:"fraud_severity"`
	MatchedSubjectID string        `json:"matched_subject_id,omitempty"`
	MatchConfidence  float64       `json:"match_confidence,omitempty"`
	RejectionReason  string        `json:"rejection_reason,omitempty"`
	VerifiedAt       time.Time     `json:"verified_at"`
}

// FraudEvent - зафиксированная попытка мошенничества. Создается только
// когда уровень выше none; живет независимо от записи о посещении
type FraudEvent struct {
	ID            uuid.UUID              `json:"id"`
	AttemptID     uuid.UUID              `json:"attempt_id"`
	SubjectID     string                 `json:"subject_id,omitempty"`
	FraudType     string                 `json:"fraud_type"`
	Severity      FraudSeverity          `json:"severity"`
	SignalDetails map[string]interface{} `json:"signal_details"`
	EvidenceRef   string                 `json:"evidence_ref,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}

// SyncState - состояние записи в оффлайн-очереди
type SyncState string

const (
	SyncPending SyncState = "pending"
	SyncSyncing SyncState = "syncing"
	SyncSynced  SyncState = "synced"
	SyncFailed  SyncState = "failed"
)

// OfflineQueueEntry - запись оффлайн-очереди: результат верификации вместе
// с записью о посещении, ожидающие доставки в основное хранилище
type OfflineQueueEntry struct {
	AttemptID   uuid.UUID           `json:"attempt_id"`
	Record      AttendanceRecord    `json:"record"`
	Outcome     VerificationOutcome `json:"outcome"`
	EnqueueTime time.Time           `json:"enqueue_time"`
	SyncState   SyncState           `json:"sync_state"`
	Attempts    int                 `json:"attempts"`
	LastError   string              `json:"last_error,omitempty"`
}
