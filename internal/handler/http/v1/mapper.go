package v1

import (
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
	"github.com/shenikar/attendance_verification_system/internal/liveness"
	"github.com/shenikar/attendance_verification_system/internal/models"
)

// DTOToAttendanceAttempt преобразует DTO отправки в доменную модель попытки.
// Кадры декодируются из base64 здесь, чтобы сервис работал с байтами
func DTOToAttendanceAttempt(dto SubmitAttendanceRequest) (*models.AttendanceAttempt, error) {
	attemptID, err := uuid.Parse(dto.AttemptID)
	if err != nil {
		return nil, fmt.Errorf("invalid attempt_id: %w", err)
	}
	zoneID, err := uuid.Parse(dto.ZoneID)
	if err != nil {
		return nil, fmt.Errorf("invalid zone_id: %w", err)
	}

	faceFrames, err := dtoToFrames(dto.FaceFrames)
	if err != nil {
		return nil, fmt.Errorf("invalid face frame: %w", err)
	}
	challengeFrames, err := dtoToFrames(dto.ChallengeFrames)
	if err != nil {
		return nil, fmt.Errorf("invalid challenge frame: %w", err)
	}

	return &models.AttendanceAttempt{
		ID:        attemptID,
		SubjectID: dto.SubjectID,
		ZoneID:    zoneID,
		ReportedLocation: models.Coordinate{
			Latitude:       dto.Latitude,
			Longitude:      dto.Longitude,
			AccuracyMeters: dto.AccuracyMeters,
		},
		FaceFrames:      faceFrames,
		ChallengeType:   dto.ChallengeType,
		ChallengeFrames: challengeFrames,
		Timestamp:       dto.Timestamp,
	}, nil
}

func base64Decode(data string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(data)
}

func dtoToFrames(dtos []FrameDTO) ([]models.Frame, error) {
	frames := make([]models.Frame, 0, len(dtos))
	for i, f := range dtos {
		data, err := base64.StdEncoding.DecodeString(f.Data)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		frames = append(frames, models.Frame{
			ID:         f.ID,
			CapturedAt: f.CapturedAt,
			Data:       data,
		})
	}
	return frames, nil
}

// OutcomeToResponse преобразует результат верификации в DTO для ответа
func OutcomeToResponse(outcome *models.VerificationOutcome) *VerificationOutcomeResponse {
	stages := make([]StageResultDTO, 0, len(outcome.StageResults))
	for _, s := range outcome.StageResults {
		stages = append(stages, StageResultDTO{
			Stage:         s.Stage,
			Passed:        s.Passed,
			FailureReason: s.FailureReason,
			Detail:        s.Detail,
		})
	}

	return &VerificationOutcomeResponse{
		AttemptID:        outcome.AttemptID,
		Passed:           outcome.OverallPassed,
		RejectionReason:  outcome.RejectionReason,
		FraudSeverity:    string(outcome.FraudSeverity),
		MatchedSubjectID: outcome.MatchedSubjectID,
		MatchConfidence:  outcome.MatchConfidence,
		Stages:           stages,
		VerifiedAt:       outcome.VerifiedAt,
	}
}

// ChallengeToResponse преобразует выданный челлендж в DTO для ответа
func ChallengeToResponse(ch liveness.Challenge) *ChallengeResponse {
	return &ChallengeResponse{
		Type:          ch.Type,
		Prompt:        ch.Prompt,
		BudgetSeconds: ch.Budget.Seconds(),
		IssuedAt:      ch.IssuedAt,
	}
}

// QueueStatusToResponse преобразует состояние очереди в DTO для ответа
func QueueStatusToResponse(status *models.QueueStatus) *QueueStatusResponse {
	return &QueueStatusResponse{
		PendingCount:            status.PendingCount,
		FailedCount:             status.FailedCount,
		OldestPendingAgeSeconds: status.OldestPendingAge.Seconds(),
	}
}

// DTOToZoneModel преобразует DTO создания/обновления в доменную модель.
// Используем одну функцию, так как поля совпадают.
func DTOToZoneModel(dto any) *models.Zone {
	switch v := dto.(type) {
	case CreateZoneRequest:
		return &models.Zone{
			Name:         v.Name,
			Description:  v.Description,
			Latitude:     v.Latitude,
			Longitude:    v.Longitude,
			RadiusMeters: v.RadiusMeters,
		}
	case UpdateZoneRequest:
		return &models.Zone{
			Name:         v.Name,
			Description:  v.Description,
			Latitude:     v.Latitude,
			Longitude:    v.Longitude,
			RadiusMeters: v.RadiusMeters,
			Status:       v.Status,
		}
	}
	return nil
}

// ModelToZoneResponse преобразует доменную модель в DTO для ответа
func ModelToZoneResponse(model *models.Zone) *ZoneResponse {
	return &ZoneResponse{
		ID:           model.ID,
		Name:         model.Name,
		Description:  model.Description,
		Latitude:     model.Latitude,
		Longitude:    model.Longitude,
		RadiusMeters: model.RadiusMeters,
		Status:       model.Status,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

// ModelsToZoneResponses преобразует слайс моделей в слайс DTO
func ModelsToZoneResponses(models []*models.Zone) []*ZoneResponse {
	responses := make([]*ZoneResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToZoneResponse(model)
	}
	return responses
}
