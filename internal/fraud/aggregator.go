package fraud

import (
	"github.com/shenikar/attendance_verification_system/internal/models"
)

// SignalType - тип независимого сигнала мошенничества
type SignalType string

const (
	SignalPhotoScreen     SignalType = "photo_screen"
	SignalLivenessSpoof   SignalType = "liveness_spoof"
	SignalMultipleFaces   SignalType = "multiple_faces"
	SignalFaceTooSmall    SignalType = "face_too_small"
	SignalLightingAnomaly SignalType = "lighting_anomaly"
	SignalMotionAnomaly   SignalType = "motion_anomaly"
)

// Signal - один сигнал от независимого детектора
type Signal struct {
	Type       SignalType `json:"type"`
	Confidence float64    `json:"confidence"`
	Detail     string     `json:"detail,omitempty"`
}

// Verdict - агрегированный вердикт по набору сигналов
type Verdict struct {
	Severity     models.FraudSeverity
	Contributing []Signal
}

// severityOf - закрепленная таблица уровней: фото/экран, подмена живости,
// несколько лиц и аномалия движения - high; аномалия освещения - medium;
// слишком маленькое лицо - low
func severityOf(t SignalType) models.FraudSeverity {
	switch t {
	case SignalPhotoScreen, SignalLivenessSpoof, SignalMultipleFaces, SignalMotionAnomaly:
		return models.SeverityHigh
	case SignalLightingAnomaly:
		return models.SeverityMedium
	case SignalFaceTooSmall:
		return models.SeverityLow
	default:
		return models.SeverityNone
	}
}

// Aggregate сводит сигналы в итоговый уровень. Уровень - максимум по
// сигналам, не сумма: любого одного сильного сигнала достаточно для
// блокировки, слабые лишь накапливают материал для мониторинга
func Aggregate(signals []Signal) Verdict {
	verdict := Verdict{Severity: models.SeverityNone}

	for _, s := range signals {
		sev := severityOf(s.Type)
		if sev == models.SeverityNone {
			continue
		}
		verdict.Contributing = append(verdict.Contributing, s)
		if sev.Rank() > verdict.Severity.Rank() {
			verdict.Severity = sev
		}
	}

	return verdict
}
