package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/attendance_verification_system/internal/classifier"
	"github.com/shenikar/attendance_verification_system/internal/config"
	"github.com/shenikar/attendance_verification_system/internal/fraud"
	"github.com/shenikar/attendance_verification_system/internal/geofence"
	"github.com/shenikar/attendance_verification_system/internal/identity"
	"github.com/shenikar/attendance_verification_system/internal/liveness"
	"github.com/shenikar/attendance_verification_system/internal/models"
	"github.com/shenikar/attendance_verification_system/internal/webhook"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=verification.go -destination=mocks/mock_verification.go -package=mocks

// Ошибки уровня хранилища, на которые реагирует оркестратор
var (
	ErrZoneNotFound = errors.New("zone not found")
	// ErrDuplicateAttempt - попытка с таким attempt_id уже записана
	ErrDuplicateAttempt = errors.New("duplicate attempt id")
	// ErrDuplicateSession - у субъекта уже есть запись за эту сессию
	ErrDuplicateSession = errors.New("duplicate session record")
	// ErrStoreUnavailable - основное хранилище недоступно, результат
	// уходит в оффлайн-очередь
	ErrStoreUnavailable = errors.New("attendance store unavailable")
	// ErrFaceAlreadyEnrolled - лицо уже зарегистрировано за другим субъектом
	ErrFaceAlreadyEnrolled = errors.New("face already enrolled for another subject")
)

// AttendanceRepository определяет контракт для работы с хранилищем посещений
type AttendanceRepository interface {
	SaveRecord(ctx context.Context, record *models.AttendanceRecord) error
	RecordExists(ctx context.Context, attemptID uuid.UUID) (bool, error)
	SaveFraudEvent(ctx context.Context, event *models.FraudEvent) error
	GetAttendanceStats(ctx context.Context, minutes int) (int, error)
	GetPositionHistory(ctx context.Context, subjectID string) ([]models.PositionFix, error)
	AppendPositionFix(ctx context.Context, subjectID string, fix models.PositionFix) error
}

// SubjectRepository определяет контракт для хранилища зарегистрированных субъектов
type SubjectRepository interface {
	SaveSubject(ctx context.Context, enrollment identity.Enrollment) error
	ListEnrollments(ctx context.Context) ([]identity.Enrollment, error)
}

// OfflineQueue - контракт оффлайн-очереди со стороны оркестратора
type OfflineQueue interface {
	Enqueue(ctx context.Context, entry *models.OfflineQueueEntry) error
	Status(ctx context.Context) (*models.QueueStatus, error)
}

// VerificationService определяет контракт для верификации попыток посещения
type VerificationService interface {
	SubmitAttempt(ctx context.Context, attempt *models.AttendanceAttempt) (*models.VerificationOutcome, error)
	IssueChallenge() liveness.Challenge
	EnrollSubject(ctx context.Context, subjectID, name string, image []byte) error
	GetQueueStatus(ctx context.Context) (*models.QueueStatus, error)
	GetStats(ctx context.Context) (int, error)
}

type verificationService struct {
	zones      ZoneService
	repo       AttendanceRepository
	subjects   SubjectRepository
	queue      OfflineQueue
	classifier classifier.Service
	geofence   *geofence.Validator
	gallery    *identity.Gallery
	matcher    *identity.Matcher
	detector   *fraud.Detector
	challenge  *liveness.ChallengeProtocol
	publisher  webhook.OutcomePublisher
	logger     *logrus.Logger
	cfg        *config.Config
}

func NewVerificationService(
	zones ZoneService,
	repo AttendanceRepository,
	subjects SubjectRepository,
	queue OfflineQueue,
	svc classifier.Service,
	gallery *identity.Gallery,
	publisher webhook.OutcomePublisher,
	logger *logrus.Logger,
	cfg *config.Config,
) VerificationService {
	sessionCfg := liveness.Config{
		EARThreshold:      cfg.EARThreshold,
		ConsecutiveFrames: cfg.BlinkConsecFrames,
		Window:            cfg.LivenessWindow,
		MinBlinks:         cfg.MinBlinks,
		MaxBlinks:         cfg.MaxBlinks,
		MinFrames:         cfg.MinLivenessFrames,
	}

	return &verificationService{
		zones:      zones,
		repo:       repo,
		subjects:   subjects,
		queue:      queue,
		classifier: svc,
		geofence: geofence.NewValidator(geofence.Config{
			MaxSpeedMPS:       cfg.MaxSpeedMPS,
			MinAccuracyMeters: cfg.SpoofMinAccuracy,
			MaxAccuracyMeters: cfg.SpoofMaxAccuracy,
		}),
		gallery: gallery,
		matcher: identity.NewMatcher(gallery, cfg.MatchThreshold, cfg.MatchEpsilon),
		detector: fraud.NewDetector(fraud.DetectorConfig{
			MinFaceSizePx:      cfg.MinFaceSizePx,
			DarkBrightness:     cfg.DarkBrightness,
			BrightBrightness:   cfg.BrightBrightness,
			UniformLightingStd: cfg.UniformLightingStd,
			MinMotionAvg:       cfg.MinMotionAvg,
			LoopMotionStd:      cfg.LoopMotionStd,
			LoopMotionAvg:      cfg.LoopMotionAvg,
			MinMotionFrames:    cfg.MinMotionFrames,
		}),
		challenge: liveness.NewChallengeProtocol(svc, cfg.ChallengeThreshold, cfg.ChallengeTimeBudget, sessionCfg),
		publisher: publisher,
		logger:    logger,
		cfg:       cfg,
	}
}

// SubmitAttempt прогоняет одну попытку посещения через пайплайн верификации.
// Порядок этапов фиксирован: геозона, живость, идентификация, челлендж,
// агрегация мошенничества, запись. Жесткий этап при провале немедленно
// останавливает пайплайн; результаты невыполненных этапов не придумываются
func (s *verificationService) SubmitAttempt(ctx context.Context, attempt *models.AttendanceAttempt) (*models.VerificationOutcome, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "verification",
		"method":     "SubmitAttempt",
		"attempt_id": attempt.ID,
		"zone_id":    attempt.ZoneID,
	})
	log.Info("Processing attendance attempt")

	if len(attempt.FaceFrames) == 0 {
		return nil, fmt.Errorf("service: attempt must contain at least one face frame")
	}
	if attempt.Timestamp.IsZero() {
		attempt.Timestamp = time.Now().UTC()
	}

	outcome := &models.VerificationOutcome{
		AttemptID:     attempt.ID,
		FraudSeverity: models.SeverityNone,
		VerifiedAt:    time.Now().UTC(),
	}

	// Идемпотентность: повторная отправка того же attempt_id не создает
	// вторую запись, а возвращает явный отказ-дубликат
	exists, err := s.repo.RecordExists(ctx, attempt.ID)
	if err != nil && !errors.Is(err, ErrStoreUnavailable) {
		return nil, fmt.Errorf("service: could not check attempt uniqueness: %w", err)
	}
	if exists {
		log.Warn("Duplicate attempt id, rejecting")
		return s.reject(ctx, attempt, outcome, models.ReasonDuplicateAttempt), nil
	}

	zone, err := s.zones.GetZone(ctx, attempt.ZoneID)
	if err != nil {
		return nil, fmt.Errorf("service: could not load zone: %w", err)
	}

	// Этап 1: геозона
	if passed := s.runGeofenceStage(ctx, attempt, zone, outcome); !passed {
		return s.reject(ctx, attempt, outcome, outcome.RejectionReason), nil
	}

	// Этап 2: живость
	var fraudSignals []fraud.Signal
	livenessPassed, signals := s.runLivenessStage(ctx, attempt, outcome)
	fraudSignals = append(fraudSignals, signals...)
	if !livenessPassed {
		if len(fraudSignals) > 0 {
			verdict := fraud.Aggregate(fraudSignals)
			outcome.FraudSeverity = verdict.Severity
			s.recordFraudEvent(ctx, attempt, outcome, verdict)
		}
		return s.reject(ctx, attempt, outcome, outcome.RejectionReason), nil
	}

	// Этап 3: идентификация. Разрешается до агрегации мошенничества,
	// чтобы события можно было привязать к субъекту
	if passed := s.runIdentityStage(ctx, attempt, outcome); !passed {
		return s.reject(ctx, attempt, outcome, outcome.RejectionReason), nil
	}

	// Этап 4: челлендж (мягкий, если политика не требует иного)
	if passed := s.runChallengeStage(ctx, attempt, outcome); !passed && s.cfg.ChallengeMandatory {
		return s.reject(ctx, attempt, outcome, models.ReasonChallengeFailed), nil
	}

	// Этап 5: агрегация сигналов мошенничества со всех этапов
	verdict := s.runFraudStage(ctx, attempt, outcome, fraudSignals)
	if verdict.Severity != models.SeverityNone {
		s.recordFraudEvent(ctx, attempt, outcome, verdict)
	}
	if verdict.Severity == models.SeverityHigh {
		return s.reject(ctx, attempt, outcome, models.ReasonFraudHighSeverity), nil
	}

	// Этап 6: построение записи
	if err := s.persistRecord(ctx, attempt, zone, outcome); err != nil {
		return nil, err
	}

	s.publishOutcome(ctx, attempt, outcome)
	log.WithField("subject_id", outcome.MatchedSubjectID).Info("Attendance attempt verified")
	return outcome, nil
}

// runGeofenceStage выполняет проверку геозоны. Самый дешевый и самый
// решающий этап идет первым: ему не нужны кадры
func (s *verificationService) runGeofenceStage(ctx context.Context, attempt *models.AttendanceAttempt, zone *models.Zone, outcome *models.VerificationOutcome) bool {
	var history []models.PositionFix
	if attempt.SubjectID != "" {
		fixes, err := s.repo.GetPositionHistory(ctx, attempt.SubjectID)
		if err != nil {
			s.logger.WithError(err).Warn("Failed to load position history, skipping spoof history check")
		} else {
			history = fixes
		}
	}

	res := s.geofence.Validate(attempt.ReportedLocation, attempt.Timestamp, zone, history)

	stage := models.StageResult{
		Stage:  models.StageGeofence,
		Passed: res.Within,
		Detail: map[string]interface{}{
			"distance_meters": res.DistanceMeters,
			"radius_meters":   zone.RadiusMeters,
			"accuracy_meters": attempt.ReportedLocation.AccuracyMeters,
			"spoof_suspected": res.SpoofSuspected,
		},
	}
	if !res.Within {
		stage.FailureReason = res.FailureReason
		stage.Detail["reason_detail"] = res.Detail
		outcome.RejectionReason = res.FailureReason
	}
	outcome.StageResults = append(outcome.StageResults, stage)

	return res.Within
}

// runLivenessStage прогоняет сессию моргания по кадрам попытки.
// Возвращает сигналы мошенничества при вердикте SPOOF
func (s *verificationService) runLivenessStage(ctx context.Context, attempt *models.AttendanceAttempt, outcome *models.VerificationOutcome) (bool, []fraud.Signal) {
	session := liveness.NewSession(liveness.Config{
		EARThreshold:      s.cfg.EARThreshold,
		ConsecutiveFrames: s.cfg.BlinkConsecFrames,
		Window:            s.cfg.LivenessWindow,
		MinBlinks:         s.cfg.MinBlinks,
		MaxBlinks:         s.cfg.MaxBlinks,
		MinFrames:         s.cfg.MinLivenessFrames,
	})
	session.Start(attempt.FaceFrames[0].CapturedAt)

	aborted := false
	for _, frame := range attempt.FaceFrames {
		// Отмена вызывающим до завершения этапа - INSUFFICIENT, не LIVE
		if ctx.Err() != nil {
			aborted = true
			break
		}
		landmarks, err := s.classifier.ClassifyEyeState(ctx, frame.Data)
		if err != nil {
			// Кадр без пригодного лица пропускается, сессия сама
			// решит, хватило ли данных
			continue
		}
		if !session.Observe(liveness.Observation{CapturedAt: frame.CapturedAt, Landmarks: *landmarks}) {
			break
		}
	}

	var res liveness.Result
	var textureSpoof bool
	var textureConfidence float64

	if aborted {
		res = session.Abort()
	} else {
		texture, err := s.classifier.ClassifyTexture(ctx, attempt.FaceFrames[0].Data)
		if err != nil {
			s.logger.WithError(err).Warn("Texture classifier unavailable, relying on blink analysis only")
		} else if texture.IsSpoof && texture.Confidence >= s.cfg.TextureThreshold {
			textureSpoof = true
			textureConfidence = texture.Confidence
		}
		res = session.Evaluate(textureSpoof)
	}

	stage := models.StageResult{
		Stage:  models.StageLiveness,
		Passed: res.Verdict == liveness.VerdictLive,
		Detail: map[string]interface{}{
			"blink_count":   res.BlinkCount,
			"frame_count":   res.FrameCount,
			"texture_spoof": textureSpoof,
			"verdict":       string(res.Verdict),
		},
	}

	var signals []fraud.Signal
	switch res.Verdict {
	case liveness.VerdictLive:
	case liveness.VerdictInsufficient:
		stage.FailureReason = models.ReasonLivenessInsufficientData
		outcome.RejectionReason = models.ReasonLivenessInsufficientData
	case liveness.VerdictSpoof:
		stage.FailureReason = models.ReasonLivenessSpoofDetected
		outcome.RejectionReason = models.ReasonLivenessSpoofDetected
		signals = append(signals, fraud.Signal{
			Type:       fraud.SignalLivenessSpoof,
			Confidence: 0.9,
			Detail:     res.Detail,
		})
		if textureSpoof {
			signals = append(signals, fraud.Signal{
				Type:       fraud.SignalPhotoScreen,
				Confidence: textureConfidence,
				Detail:     "texture classifier flagged photo/screen",
			})
		}
	}
	if res.Detail != "" {
		stage.Detail["verdict_detail"] = res.Detail
	}
	outcome.StageResults = append(outcome.StageResults, stage)

	return res.Verdict == liveness.VerdictLive, signals
}

// runIdentityStage извлекает вектор пробы и сопоставляет с галереей
func (s *verificationService) runIdentityStage(ctx context.Context, attempt *models.AttendanceAttempt, outcome *models.VerificationOutcome) bool {
	stage := models.StageResult{
		Stage:  models.StageIdentity,
		Detail: map[string]interface{}{},
	}

	fail := func(reason, detail string) bool {
		stage.FailureReason = reason
		stage.Detail["reason_detail"] = detail
		outcome.RejectionReason = reason
		outcome.StageResults = append(outcome.StageResults, stage)
		return false
	}

	probe, err := s.classifier.ExtractEmbedding(ctx, attempt.FaceFrames[0].Data)
	if err != nil {
		// Сбой коллаборатора - жесткий провал вызвавшего его этапа,
		// не паника и не системная ошибка
		if errors.Is(err, classifier.ErrExtractionFailed) {
			return fail(models.ReasonIdentityNoMatch, "no usable face detected in frame")
		}
		s.logger.WithError(err).Error("Embedding extractor failed")
		return fail(models.ReasonIdentityNoMatch, "embedding extractor unavailable")
	}

	match, err := s.matcher.Match(probe)
	switch {
	case errors.Is(err, identity.ErrEmptyGallery):
		return fail(models.ReasonIdentityNoMatch, "no enrolled subjects")
	case errors.Is(err, identity.ErrAmbiguousMatch):
		// Неоднозначность закрывается отказом, а не произвольным выбором
		return fail(models.ReasonIdentityAmbiguousMatch, "two gallery entries within epsilon distance")
	case errors.Is(err, identity.ErrNoMatch):
		return fail(models.ReasonIdentityNoMatch, "no gallery entry above match threshold")
	case err != nil:
		return fail(models.ReasonIdentityNoMatch, err.Error())
	}

	if attempt.SubjectID != "" && attempt.SubjectID != match.SubjectID {
		return fail(models.ReasonIdentityNoMatch, "matched subject differs from claimed subject")
	}

	outcome.MatchedSubjectID = match.SubjectID
	outcome.MatchConfidence = match.Confidence
	stage.Passed = true
	stage.Detail["subject_id"] = match.SubjectID
	stage.Detail["confidence"] = match.Confidence
	stage.Detail["distance"] = match.Distance
	outcome.StageResults = append(outcome.StageResults, stage)

	// Фиксация позиции под подтвержденным субъектом для эвристики
	// подмены GPS в следующих попытках
	fix := models.PositionFix{
		Latitude:       attempt.ReportedLocation.Latitude,
		Longitude:      attempt.ReportedLocation.Longitude,
		AccuracyMeters: attempt.ReportedLocation.AccuracyMeters,
		ObservedAt:     attempt.Timestamp,
	}
	if err := s.repo.AppendPositionFix(ctx, match.SubjectID, fix); err != nil {
		s.logger.WithError(err).Warn("Failed to append position fix")
	}

	return true
}

// runChallengeStage проверяет челлендж, если клиент прислал кадры или
// политика делает этап обязательным. Пропущенный этап не оставляет
// фиктивного результата
func (s *verificationService) runChallengeStage(ctx context.Context, attempt *models.AttendanceAttempt, outcome *models.VerificationOutcome) bool {
	if len(attempt.ChallengeFrames) == 0 && !s.cfg.ChallengeMandatory {
		return true
	}

	res, err := s.challenge.Verify(ctx, attempt.ChallengeType, attempt.ChallengeFrames)
	if err != nil {
		res = liveness.ChallengeResult{Detail: err.Error()}
	}

	stage := models.StageResult{
		Stage:  models.StageChallenge,
		Passed: res.Passed,
		Detail: map[string]interface{}{
			"challenge_type": attempt.ChallengeType,
			"confidence":     res.Confidence,
		},
	}
	if !res.Passed {
		stage.FailureReason = models.ReasonChallengeFailed
		stage.Detail["reason_detail"] = res.Detail
	}
	outcome.StageResults = append(outcome.StageResults, stage)

	if !res.Passed && s.cfg.ChallengeMandatory {
		outcome.RejectionReason = models.ReasonChallengeFailed
	}
	return res.Passed
}

// runFraudStage собирает измерения по кадрам, добавляет сигналы автономных
// детекторов и агрегирует все по правилу максимума
func (s *verificationService) runFraudStage(ctx context.Context, attempt *models.AttendanceAttempt, outcome *models.VerificationOutcome, collected []fraud.Signal) fraud.Verdict {
	images := make([][]byte, 0, len(attempt.FaceFrames))
	for _, f := range attempt.FaceFrames {
		images = append(images, f.Data)
	}

	signals := collected
	analysis, err := s.classifier.AnalyzeFrames(ctx, images)
	if err != nil {
		s.logger.WithError(err).Warn("Frame analyzer unavailable, aggregating collected signals only")
	} else {
		signals = append(signals, s.detector.Inspect(fraud.FrameMetrics{
			FaceCount:      analysis.FaceCount,
			FaceWidth:      analysis.FaceWidth,
			FaceHeight:     analysis.FaceHeight,
			MeanBrightness: analysis.MeanBrightness,
			StdBrightness:  analysis.StdBrightness,
			MotionAvg:      analysis.MotionAvg,
			MotionStd:      analysis.MotionStd,
			FrameCount:     analysis.FrameCount,
		})...)
	}

	verdict := fraud.Aggregate(signals)
	outcome.FraudSeverity = verdict.Severity

	types := make([]string, 0, len(verdict.Contributing))
	for _, sig := range verdict.Contributing {
		types = append(types, string(sig.Type))
	}

	stage := models.StageResult{
		Stage:  models.StageFraud,
		Passed: verdict.Severity != models.SeverityHigh,
		Detail: map[string]interface{}{
			"severity": string(verdict.Severity),
			"signals":  types,
		},
	}
	if verdict.Severity == models.SeverityHigh {
		stage.FailureReason = models.ReasonFraudHighSeverity
		outcome.RejectionReason = models.ReasonFraudHighSeverity
	}
	outcome.StageResults = append(outcome.StageResults, stage)

	return verdict
}

// persistRecord строит запись о посещении и отдает ее хранилищу, при его
// недоступности - оффлайн-очереди. Вердикт верификации не зависит от
// доступности хранилища
func (s *verificationService) persistRecord(ctx context.Context, attempt *models.AttendanceAttempt, zone *models.Zone, outcome *models.VerificationOutcome) error {
	log := s.logger.WithField("attempt_id", attempt.ID)

	ts := attempt.Timestamp.UTC()
	record := &models.AttendanceRecord{
		ID:              uuid.New(),
		AttemptID:       attempt.ID,
		SubjectID:       outcome.MatchedSubjectID,
		ZoneID:          zone.ID,
		SessionDate:     time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC),
		Latitude:        attempt.ReportedLocation.Latitude,
		Longitude:       attempt.ReportedLocation.Longitude,
		AccuracyMeters:  attempt.ReportedLocation.AccuracyMeters,
		DistanceMeters:  geofenceDistance(outcome),
		MatchConfidence: outcome.MatchConfidence,
		MarkedAt:        time.Now().UTC(),
	}

	// Эмоция определяется только после принятия записи и никогда не
	// влияет на решение; сбой классификатора здесь игнорируется
	if emotion, err := s.classifier.ClassifyEmotion(ctx, attempt.FaceFrames[0].Data); err == nil {
		record.Emotion = emotion.Label
		record.EmotionConfidence = emotion.Confidence
	}

	outcome.OverallPassed = true

	err := s.repo.SaveRecord(ctx, record)
	switch {
	case err == nil:
	case errors.Is(err, ErrDuplicateAttempt):
		outcome.OverallPassed = false
		outcome.RejectionReason = models.ReasonDuplicateAttempt
	case errors.Is(err, ErrDuplicateSession):
		outcome.OverallPassed = false
		outcome.RejectionReason = models.ReasonDuplicateSession
	case errors.Is(err, ErrStoreUnavailable):
		entry := &models.OfflineQueueEntry{
			AttemptID:   attempt.ID,
			Record:      *record,
			Outcome:     *outcome,
			EnqueueTime: time.Now().UTC(),
			SyncState:   models.SyncPending,
		}
		if qErr := s.queue.Enqueue(ctx, entry); qErr != nil {
			return fmt.Errorf("service: store unavailable and enqueue failed: %w", qErr)
		}
		log.Warn("Attendance store unavailable, record queued for sync")
	default:
		return fmt.Errorf("service: could not save attendance record: %w", err)
	}

	return nil
}

// reject завершает пайплайн отказом с одной конкретной причиной и полным
// следом доказательств до провалившегося этапа включительно
func (s *verificationService) reject(ctx context.Context, attempt *models.AttendanceAttempt, outcome *models.VerificationOutcome, reason string) *models.VerificationOutcome {
	outcome.OverallPassed = false
	outcome.RejectionReason = reason
	s.publishOutcome(ctx, attempt, outcome)
	s.logger.WithFields(logrus.Fields{
		"attempt_id": attempt.ID,
		"reason":     reason,
	}).Info("Attendance attempt rejected")
	return outcome
}

// recordFraudEvent фиксирует событие мошенничества с полным набором
// сигналов и ссылкой на кадры-доказательства
func (s *verificationService) recordFraudEvent(ctx context.Context, attempt *models.AttendanceAttempt, outcome *models.VerificationOutcome, verdict fraud.Verdict) {
	if verdict.Severity == models.SeverityNone || len(verdict.Contributing) == 0 {
		return
	}

	subjectID := outcome.MatchedSubjectID
	if subjectID == "" {
		subjectID = attempt.SubjectID
	}

	// Тип события - сигнал с максимальным уровнем
	primary := verdict.Contributing[0]
	for _, sig := range verdict.Contributing {
		if severityRank(sig) > severityRank(primary) {
			primary = sig
		}
	}

	details := make([]map[string]interface{}, 0, len(verdict.Contributing))
	for _, sig := range verdict.Contributing {
		details = append(details, map[string]interface{}{
			"type":       string(sig.Type),
			"confidence": sig.Confidence,
			"detail":     sig.Detail,
		})
	}

	frameIDs := make([]string, 0, len(attempt.FaceFrames))
	for _, f := range attempt.FaceFrames {
		frameIDs = append(frameIDs, f.ID)
	}

	event := &models.FraudEvent{
		ID:            uuid.New(),
		AttemptID:     attempt.ID,
		SubjectID:     subjectID,
		FraudType:     string(primary.Type),
		Severity:      verdict.Severity,
		SignalDetails: map[string]interface{}{"signals": details},
		EvidenceRef:   strings.Join(frameIDs, ","),
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.SaveFraudEvent(ctx, event); err != nil {
		s.logger.WithError(err).WithField("attempt_id", attempt.ID).Error("Failed to persist fraud event")
	}
}

func (s *verificationService) publishOutcome(ctx context.Context, attempt *models.AttendanceAttempt, outcome *models.VerificationOutcome) {
	event := webhook.OutcomeEvent{
		AttemptID:       attempt.ID,
		SubjectID:       outcome.MatchedSubjectID,
		ZoneID:          attempt.ZoneID,
		Passed:          outcome.OverallPassed,
		RejectionReason: outcome.RejectionReason,
		FraudSeverity:   outcome.FraudSeverity,
		Timestamp:       outcome.VerifiedAt,
	}
	// Доставка fire-and-forget: сбой публикации не меняет вердикт
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WithError(err).Warn("Failed to publish outcome event")
	}
}

// IssueChallenge выдает случайный челлендж для следующей попытки
func (s *verificationService) IssueChallenge() liveness.Challenge {
	return s.challenge.Issue()
}

// EnrollSubject регистрирует лицо субъекта в галерее и хранилище
func (s *verificationService) EnrollSubject(ctx context.Context, subjectID, name string, image []byte) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "verification",
		"method":     "EnrollSubject",
		"subject_id": subjectID,
	})
	log.Info("Enrolling subject face")

	embedding, err := s.classifier.ExtractEmbedding(ctx, image)
	if err != nil {
		return fmt.Errorf("service: could not extract embedding for enrollment: %w", err)
	}

	// Защита от дублей: то же лицо не может быть зарегистрировано
	// за другим субъектом
	if match, err := s.matcher.Match(embedding); err == nil && match.SubjectID != subjectID {
		log.WithField("existing_subject_id", match.SubjectID).Warn("Face already enrolled for another subject")
		return ErrFaceAlreadyEnrolled
	}

	enrollment := identity.Enrollment{
		SubjectID: subjectID,
		Name:      name,
		Embedding: embedding,
	}

	if err := s.subjects.SaveSubject(ctx, enrollment); err != nil {
		return fmt.Errorf("service: could not save subject: %w", err)
	}

	s.gallery.Add(enrollment)
	log.Info("Subject enrolled successfully")
	return nil
}

// GetQueueStatus возвращает состояние оффлайн-очереди
func (s *verificationService) GetQueueStatus(ctx context.Context) (*models.QueueStatus, error) {
	status, err := s.queue.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not get queue status: %w", err)
	}
	return status, nil
}

// GetStats возвращает количество уникальных субъектов за окно статистики
func (s *verificationService) GetStats(ctx context.Context) (int, error) {
	count, err := s.repo.GetAttendanceStats(ctx, s.cfg.StatsTimeWindowMinutes)
	if err != nil {
		return 0, fmt.Errorf("service: could not get attendance stats: %w", err)
	}
	return count, nil
}

func severityRank(sig fraud.Signal) int {
	return fraud.Aggregate([]fraud.Signal{sig}).Severity.Rank()
}

// geofenceDistance достает дистанцию из результата этапа геозоны
func geofenceDistance(outcome *models.VerificationOutcome) float64 {
	for _, stage := range outcome.StageResults {
		if stage.Stage == models.StageGeofence {
			if d, ok := stage.Detail["distance_meters"].(float64); ok {
				return d
			}
		}
	}
	return 0
}
