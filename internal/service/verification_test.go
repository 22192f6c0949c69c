package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/attendance_verification_system/internal/classifier"
	classifier_mocks "github.com/shenikar/attendance_verification_system/internal/classifier/mocks"
	"github.com/shenikar/attendance_verification_system/internal/config"
	"github.com/shenikar/attendance_verification_system/internal/identity"
	"github.com/shenikar/attendance_verification_system/internal/models"
	"github.com/shenikar/attendance_verification_system/internal/service/mocks"
	webhook_mocks "github.com/shenikar/attendance_verification_system/internal/webhook/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type verificationMocks struct {
	zones      *mocks.MockZoneService
	repo       *mocks.MockAttendanceRepository
	subjects   *mocks.MockSubjectRepository
	queue      *mocks.MockOfflineQueue
	classifier *classifier_mocks.MockService
	publisher  *webhook_mocks.MockOutcomePublisher
	gallery    *identity.Gallery
}

func testConfig() *config.Config {
	return &config.Config{
		MaxSpeedMPS:      50,
		SpoofMinAccuracy: 1,
		SpoofMaxAccuracy: 500,

		EARThreshold:      0.25,
		BlinkConsecFrames: 3,
		LivenessWindow:    15 * time.Second,
		MinBlinks:         2,
		MaxBlinks:         8,
		MinLivenessFrames: 10,

		MatchThreshold: 0.6,
		MatchEpsilon:   1e-6,

		ChallengeMandatory:  false,
		ChallengeThreshold:  0.7,
		ChallengeTimeBudget: 10 * time.Second,

		TextureThreshold:   0.7,
		MinFaceSizePx:      120,
		DarkBrightness:     30,
		BrightBrightness:   220,
		UniformLightingStd: 15,
		MinMotionAvg:       2.0,
		LoopMotionStd:      0.5,
		LoopMotionAvg:      5.0,
		MinMotionFrames:    10,

		StatsTimeWindowMinutes: 60,
	}
}

// newTestVerificationService — вспомогательная функция для создания инстанса сервиса с моками.
func newTestVerificationService(t *testing.T) (*verificationService, *verificationMocks) {
	ctrl := gomock.NewController(t)
	m := &verificationMocks{
		zones:      mocks.NewMockZoneService(ctrl),
		repo:       mocks.NewMockAttendanceRepository(ctrl),
		subjects:   mocks.NewMockSubjectRepository(ctrl),
		queue:      mocks.NewMockOfflineQueue(ctrl),
		classifier: classifier_mocks.NewMockService(ctrl),
		publisher:  webhook_mocks.NewMockOutcomePublisher(ctrl),
		gallery:    identity.NewGallery(),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	svc := NewVerificationService(
		m.zones, m.repo, m.subjects, m.queue, m.classifier, m.gallery, m.publisher, logger, testConfig(),
	)
	return svc.(*verificationService), m
}

func eyeWithOpening(opening float64) [6]classifier.Point {
	half := opening / 2
	return [6]classifier.Point{
		{X: 0, Y: 0},
		{X: 0.5, Y: half},
		{X: 1.5, Y: half},
		{X: 2, Y: 0},
		{X: 1.5, Y: -half},
		{X: 0.5, Y: -half},
	}
}

func eyesOpen() *classifier.EyeLandmarks {
	return &classifier.EyeLandmarks{Left: eyeWithOpening(0.8), Right: eyeWithOpening(0.8)}
}

func eyesClosed() *classifier.EyeLandmarks {
	return &classifier.EyeLandmarks{Left: eyeWithOpening(0.1), Right: eyeWithOpening(0.1)}
}

// livePattern - последовательность открыт/закрыт с двумя полными морганиями
var livePattern = []bool{
	true, true,
	false, false, false,
	true, true,
	false, false, false,
	true, true, true, true,
}

func framesFromPattern(n int) []models.Frame {
	start := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	frames := make([]models.Frame, 0, n)
	for i := 0; i < n; i++ {
		frames = append(frames, models.Frame{
			ID:         uuid.NewString(),
			CapturedAt: start.Add(time.Duration(i) * 500 * time.Millisecond),
			Data:       []byte{byte(i)},
		})
	}
	return frames
}

func testZoneModel() *models.Zone {
	return &models.Zone{
		ID:           uuid.New(),
		Name:         "Аудитория 101",
		Latitude:     55.751244,
		Longitude:    37.618423,
		RadiusMeters: 100,
		Status:       "active",
	}
}

func testAttempt(zone *models.Zone) *models.AttendanceAttempt {
	return &models.AttendanceAttempt{
		ID:     uuid.New(),
		ZoneID: zone.ID,
		ReportedLocation: models.Coordinate{
			Latitude:       zone.Latitude,
			Longitude:      zone.Longitude,
			AccuracyMeters: 10,
		},
		FaceFrames: framesFromPattern(len(livePattern)),
		Timestamp:  time.Date(2026, 8, 24, 9, 0, 10, 0, time.UTC),
	}
}

func normalAnalysis() *classifier.FrameAnalysis {
	return &classifier.FrameAnalysis{
		FaceCount:      1,
		FaceWidth:      200,
		FaceHeight:     240,
		MeanBrightness: 128,
		StdBrightness:  45,
		MotionAvg:      6.5,
		MotionStd:      2.8,
		FrameCount:     14,
	}
}

// expectLiveFrames настраивает классификатор глаз на живую последовательность
func expectLiveFrames(m *verificationMocks, frames []models.Frame) {
	for i, frame := range frames {
		lm := eyesClosed()
		if livePattern[i] {
			lm = eyesOpen()
		}
		m.classifier.EXPECT().ClassifyEyeState(gomock.Any(), frame.Data).Return(lm, nil)
	}
}

func TestSubmitAttempt_Accepted(t *testing.T) {
	// Подготовка
	svc, m := newTestVerificationService(t)
	ctx := context.Background()
	zone := testZoneModel()
	attempt := testAttempt(zone)
	m.gallery.Add(identity.Enrollment{SubjectID: "s-1", Name: "Иванов", Embedding: []float64{0.1, 0.2}})

	// Ожидания
	m.repo.EXPECT().RecordExists(ctx, attempt.ID).Return(false, nil)
	m.zones.EXPECT().GetZone(ctx, zone.ID).Return(zone, nil)

	expectLiveFrames(m, attempt.FaceFrames)
	m.classifier.EXPECT().
		ClassifyTexture(gomock.Any(), attempt.FaceFrames[0].Data).
		Return(&classifier.TextureResult{IsSpoof: false, Confidence: 0.2}, nil)

	m.classifier.EXPECT().
		ExtractEmbedding(gomock.Any(), attempt.FaceFrames[0].Data).
		Return([]float64{0.1, 0.2}, nil)
	m.repo.EXPECT().AppendPositionFix(ctx, "s-1", gomock.Any()).Return(nil)

	m.classifier.EXPECT().AnalyzeFrames(gomock.Any(), gomock.Any()).Return(normalAnalysis(), nil)
	m.classifier.EXPECT().
		ClassifyEmotion(gomock.Any(), attempt.FaceFrames[0].Data).
		Return(&classifier.EmotionResult{Label: "happy", Confidence: 0.85}, nil)

	var savedRecord *models.AttendanceRecord
	m.repo.EXPECT().
		SaveRecord(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, record *models.AttendanceRecord) error {
			savedRecord = record
			return nil
		})
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	// Действие
	outcome, err := svc.SubmitAttempt(ctx, attempt)

	// Проверки
	require.NoError(t, err)
	assert.True(t, outcome.OverallPassed)
	assert.Equal(t, "s-1", outcome.MatchedSubjectID)
	assert.Equal(t, models.SeverityNone, outcome.FraudSeverity)
	assert.Len(t, outcome.StageResults, 4)

	require.NotNil(t, savedRecord)
	assert.Equal(t, attempt.ID, savedRecord.AttemptID)
	assert.Equal(t, "s-1", savedRecord.SubjectID)
	// Дата сессии - календарный день попытки в UTC
	assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), savedRecord.SessionDate)
	assert.Equal(t, "happy", savedRecord.Emotion)
}

func TestSubmitAttempt_DuplicateAttemptID(t *testing.T) {
	// Подготовка: повторная отправка того же attempt_id
	svc, m := newTestVerificationService(t)
	ctx := context.Background()
	zone := testZoneModel()
	attempt := testAttempt(zone)

	// Ожидания: пайплайн не запускается вовсе
	m.repo.EXPECT().RecordExists(ctx, attempt.ID).Return(true, nil)
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	// Действие
	outcome, err := svc.SubmitAttempt(ctx, attempt)

	// Проверки
	require.NoError(t, err)
	assert.False(t, outcome.OverallPassed)
	assert.Equal(t, models.ReasonDuplicateAttempt, outcome.RejectionReason)
	assert.Empty(t, outcome.StageResults)
}

func TestSubmitAttempt_RejectedOutsideZone(t *testing.T) {
	// Подготовка: точка в километре от центра зоны
	svc, m := newTestVerificationService(t)
	ctx := context.Background()
	zone := testZoneModel()
	attempt := testAttempt(zone)
	attempt.ReportedLocation.Latitude = zone.Latitude + 0.01

	// Ожидания: кадры не анализируются, запись не создается
	m.repo.EXPECT().RecordExists(ctx, attempt.ID).Return(false, nil)
	m.zones.EXPECT().GetZone(ctx, zone.ID).Return(zone, nil)
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	// Действие
	outcome, err := svc.SubmitAttempt(ctx, attempt)

	// Проверки
	require.NoError(t, err)
	assert.False(t, outcome.OverallPassed)
	assert.Equal(t, models.ReasonGeofenceOutOfRange, outcome.RejectionReason)
	// Короткое замыкание: только результат этапа геозоны
	require.Len(t, outcome.StageResults, 1)
	assert.Equal(t, models.StageGeofence, outcome.StageResults[0].Stage)
}

func TestSubmitAttempt_RejectedPhotoSpoof(t *testing.T) {
	// Подготовка: все кадры с открытыми глазами - фото не моргает
	svc, m := newTestVerificationService(t)
	ctx := context.Background()
	zone := testZoneModel()
	attempt := testAttempt(zone)

	// Ожидания
	m.repo.EXPECT().RecordExists(ctx, attempt.ID).Return(false, nil)
	m.zones.EXPECT().GetZone(ctx, zone.ID).Return(zone, nil)

	for _, frame := range attempt.FaceFrames {
		m.classifier.EXPECT().ClassifyEyeState(gomock.Any(), frame.Data).Return(eyesOpen(), nil)
	}
	m.classifier.EXPECT().
		ClassifyTexture(gomock.Any(), attempt.FaceFrames[0].Data).
		Return(&classifier.TextureResult{IsSpoof: true, Confidence: 0.95}, nil)

	// Событие мошенничества фиксируется с high
	m.repo.EXPECT().
		SaveFraudEvent(ctx, gomock.Any()).
		Do(func(_ context.Context, event *models.FraudEvent) {
			assert.Equal(t, models.SeverityHigh, event.Severity)
			assert.Equal(t, attempt.ID, event.AttemptID)
		}).Return(nil)
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	// Действие
	outcome, err := svc.SubmitAttempt(ctx, attempt)

	// Проверки
	require.NoError(t, err)
	assert.False(t, outcome.OverallPassed)
	assert.Equal(t, models.ReasonLivenessSpoofDetected, outcome.RejectionReason)
	assert.Equal(t, models.SeverityHigh, outcome.FraudSeverity)
	require.Len(t, outcome.StageResults, 2)
	assert.Equal(t, models.StageLiveness, outcome.StageResults[1].Stage)
}

func TestSubmitAttempt_RejectedNoUsableFace(t *testing.T) {
	// Подготовка
	svc, m := newTestVerificationService(t)
	ctx := context.Background()
	zone := testZoneModel()
	attempt := testAttempt(zone)
	m.gallery.Add(identity.Enrollment{SubjectID: "s-1", Embedding: []float64{0.1, 0.2}})

	// Ожидания: живость пройдена, но лицо для идентификации не извлекается
	m.repo.EXPECT().RecordExists(ctx, attempt.ID).Return(false, nil)
	m.zones.EXPECT().GetZone(ctx, zone.ID).Return(zone, nil)
	expectLiveFrames(m, attempt.FaceFrames)
	m.classifier.EXPECT().
		ClassifyTexture(gomock.Any(), attempt.FaceFrames[0].Data).
		Return(&classifier.TextureResult{IsSpoof: false}, nil)
	m.classifier.EXPECT().
		ExtractEmbedding(gomock.Any(), attempt.FaceFrames[0].Data).
		Return(nil, classifier.ErrExtractionFailed)
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	// Действие
	outcome, err := svc.SubmitAttempt(ctx, attempt)

	// Проверки
	require.NoError(t, err)
	assert.False(t, outcome.OverallPassed)
	assert.Equal(t, models.ReasonIdentityNoMatch, outcome.RejectionReason)
	require.Len(t, outcome.StageResults, 3)
	assert.Equal(t, "no usable face detected in frame", outcome.StageResults[2].Detail["reason_detail"])
}

func TestSubmitAttempt_ClaimedSubjectMismatch(t *testing.T) {
	// Подготовка: клиент заявил s-2, а лицо принадлежит s-1
	svc, m := newTestVerificationService(t)
	ctx := context.Background()
	zone := testZoneModel()
	attempt := testAttempt(zone)
	attempt.SubjectID = "s-2"
	m.gallery.Add(identity.Enrollment{SubjectID: "s-1", Embedding: []float64{0.1, 0.2}})

	// Ожидания
	m.repo.EXPECT().RecordExists(ctx, attempt.ID).Return(false, nil)
	m.zones.EXPECT().GetZone(ctx, zone.ID).Return(zone, nil)
	m.repo.EXPECT().GetPositionHistory(ctx, "s-2").Return(nil, nil)
	expectLiveFrames(m, attempt.FaceFrames)
	m.classifier.EXPECT().
		ClassifyTexture(gomock.Any(), attempt.FaceFrames[0].Data).
		Return(&classifier.TextureResult{IsSpoof: false}, nil)
	m.classifier.EXPECT().
		ExtractEmbedding(gomock.Any(), attempt.FaceFrames[0].Data).
		Return([]float64{0.1, 0.2}, nil)
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	// Действие
	outcome, err := svc.SubmitAttempt(ctx, attempt)

	// Проверки
	require.NoError(t, err)
	assert.False(t, outcome.OverallPassed)
	assert.Equal(t, models.ReasonIdentityNoMatch, outcome.RejectionReason)
}

func TestSubmitAttempt_StoreUnavailable_QueuesRecord(t *testing.T) {
	// Подготовка: хранилище недоступно, вердикт не меняется, запись
	// уходит в оффлайн-очередь
	svc, m := newTestVerificationService(t)
	ctx := context.Background()
	zone := testZoneModel()
	attempt := testAttempt(zone)
	m.gallery.Add(identity.Enrollment{SubjectID: "s-1", Embedding: []float64{0.1, 0.2}})

	// Ожидания
	m.repo.EXPECT().RecordExists(ctx, attempt.ID).Return(false, ErrStoreUnavailable)
	m.zones.EXPECT().GetZone(ctx, zone.ID).Return(zone, nil)
	expectLiveFrames(m, attempt.FaceFrames)
	m.classifier.EXPECT().
		ClassifyTexture(gomock.Any(), attempt.FaceFrames[0].Data).
		Return(&classifier.TextureResult{IsSpoof: false}, nil)
	m.classifier.EXPECT().
		ExtractEmbedding(gomock.Any(), attempt.FaceFrames[0].Data).
		Return([]float64{0.1, 0.2}, nil)
	m.repo.EXPECT().AppendPositionFix(ctx, "s-1", gomock.Any()).Return(nil)
	m.classifier.EXPECT().AnalyzeFrames(gomock.Any(), gomock.Any()).Return(normalAnalysis(), nil)
	m.classifier.EXPECT().
		ClassifyEmotion(gomock.Any(), attempt.FaceFrames[0].Data).
		Return(&classifier.EmotionResult{Label: "neutral", Confidence: 0.6}, nil)

	m.repo.EXPECT().SaveRecord(ctx, gomock.Any()).Return(ErrStoreUnavailable)
	m.queue.EXPECT().
		Enqueue(ctx, gomock.Any()).
		Do(func(_ context.Context, entry *models.OfflineQueueEntry) {
			assert.Equal(t, attempt.ID, entry.AttemptID)
			assert.Equal(t, models.SyncPending, entry.SyncState)
		}).Return(nil)
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	// Действие
	outcome, err := svc.SubmitAttempt(ctx, attempt)

	// Проверки
	require.NoError(t, err)
	assert.True(t, outcome.OverallPassed)
}

func TestSubmitAttempt_HighFraudSeverityRejects(t *testing.T) {
	// Подготовка: живость пройдена, но в кадре несколько лиц
	svc, m := newTestVerificationService(t)
	ctx := context.Background()
	zone := testZoneModel()
	attempt := testAttempt(zone)
	m.gallery.Add(identity.Enrollment{SubjectID: "s-1", Embedding: []float64{0.1, 0.2}})

	analysis := normalAnalysis()
	analysis.FaceCount = 2

	// Ожидания
	m.repo.EXPECT().RecordExists(ctx, attempt.ID).Return(false, nil)
	m.zones.EXPECT().GetZone(ctx, zone.ID).Return(zone, nil)
	expectLiveFrames(m, attempt.FaceFrames)
	m.classifier.EXPECT().
		ClassifyTexture(gomock.Any(), attempt.FaceFrames[0].Data).
		Return(&classifier.TextureResult{IsSpoof: false}, nil)
	m.classifier.EXPECT().
		ExtractEmbedding(gomock.Any(), attempt.FaceFrames[0].Data).
		Return([]float64{0.1, 0.2}, nil)
	m.repo.EXPECT().AppendPositionFix(ctx, "s-1", gomock.Any()).Return(nil)
	m.classifier.EXPECT().AnalyzeFrames(gomock.Any(), gomock.Any()).Return(analysis, nil)

	m.repo.EXPECT().
		SaveFraudEvent(ctx, gomock.Any()).
		Do(func(_ context.Context, event *models.FraudEvent) {
			assert.Equal(t, "s-1", event.SubjectID)
			assert.Equal(t, models.SeverityHigh, event.Severity)
		}).Return(nil)
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	// Действие
	outcome, err := svc.SubmitAttempt(ctx, attempt)

	// Проверки
	require.NoError(t, err)
	assert.False(t, outcome.OverallPassed)
	assert.Equal(t, models.ReasonFraudHighSeverity, outcome.RejectionReason)
	assert.Equal(t, models.SeverityHigh, outcome.FraudSeverity)
}

func TestSubmitAttempt_DuplicateSessionOnSave(t *testing.T) {
	// Подготовка: у субъекта уже есть запись за эту сессию
	svc, m := newTestVerificationService(t)
	ctx := context.Background()
	zone := testZoneModel()
	attempt := testAttempt(zone)
	m.gallery.Add(identity.Enrollment{SubjectID: "s-1", Embedding: []float64{0.1, 0.2}})

	// Ожидания
	m.repo.EXPECT().RecordExists(ctx, attempt.ID).Return(false, nil)
	m.zones.EXPECT().GetZone(ctx, zone.ID).Return(zone, nil)
	expectLiveFrames(m, attempt.FaceFrames)
	m.classifier.EXPECT().
		ClassifyTexture(gomock.Any(), attempt.FaceFrames[0].Data).
		Return(&classifier.TextureResult{IsSpoof: false}, nil)
	m.classifier.EXPECT().
		ExtractEmbedding(gomock.Any(), attempt.FaceFrames[0].Data).
		Return([]float64{0.1, 0.2}, nil)
	m.repo.EXPECT().AppendPositionFix(ctx, "s-1", gomock.Any()).Return(nil)
	m.classifier.EXPECT().AnalyzeFrames(gomock.Any(), gomock.Any()).Return(normalAnalysis(), nil)
	m.classifier.EXPECT().
		ClassifyEmotion(gomock.Any(), attempt.FaceFrames[0].Data).
		Return(&classifier.EmotionResult{Label: "neutral", Confidence: 0.6}, nil)

	m.repo.EXPECT().SaveRecord(ctx, gomock.Any()).Return(ErrDuplicateSession)
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	// Действие
	outcome, err := svc.SubmitAttempt(ctx, attempt)

	// Проверки
	require.NoError(t, err)
	assert.False(t, outcome.OverallPassed)
	assert.Equal(t, models.ReasonDuplicateSession, outcome.RejectionReason)
}

func TestEnrollSubject_Success(t *testing.T) {
	// Подготовка
	svc, m := newTestVerificationService(t)
	ctx := context.Background()
	image := []byte("face-image")

	// Ожидания
	m.classifier.EXPECT().
		ExtractEmbedding(gomock.Any(), image).
		Return([]float64{0.3, 0.4}, nil)
	m.subjects.EXPECT().
		SaveSubject(ctx, gomock.Any()).
		Do(func(_ context.Context, e identity.Enrollment) {
			assert.Equal(t, "s-1", e.SubjectID)
			assert.Equal(t, []float64{0.3, 0.4}, e.Embedding)
		}).Return(nil)

	// Действие
	err := svc.EnrollSubject(ctx, "s-1", "Иванов", image)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 1, m.gallery.Len())
}

func TestEnrollSubject_FaceAlreadyEnrolled(t *testing.T) {
	// Подготовка: то же лицо уже зарегистрировано за другим субъектом
	svc, m := newTestVerificationService(t)
	ctx := context.Background()
	m.gallery.Add(identity.Enrollment{SubjectID: "s-1", Embedding: []float64{0.3, 0.4}})

	// Ожидания
	m.classifier.EXPECT().
		ExtractEmbedding(gomock.Any(), gomock.Any()).
		Return([]float64{0.3, 0.4}, nil)

	// Действие
	err := svc.EnrollSubject(ctx, "s-2", "Петров", []byte("face-image"))

	// Проверки
	require.ErrorIs(t, err, ErrFaceAlreadyEnrolled)
	assert.Equal(t, 1, m.gallery.Len())
}

func TestGetQueueStatus(t *testing.T) {
	svc, m := newTestVerificationService(t)
	ctx := context.Background()
	expected := &models.QueueStatus{PendingCount: 3, FailedCount: 1}

	m.queue.EXPECT().Status(ctx).Return(expected, nil)

	status, err := svc.GetQueueStatus(ctx)

	require.NoError(t, err)
	assert.Equal(t, expected, status)
}

func TestGetStats(t *testing.T) {
	svc, m := newTestVerificationService(t)
	ctx := context.Background()

	m.repo.EXPECT().GetAttendanceStats(ctx, 60).Return(17, nil)

	count, err := svc.GetStats(ctx)

	require.NoError(t, err)
	assert.Equal(t, 17, count)
}
