package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/attendance_verification_system/internal/models"
	"github.com/shenikar/attendance_verification_system/internal/service"
)

const (
	uniqueViolationCode = "23505"

	attemptUniqueConstraint = "attendance_records_attempt_id_key"
	sessionUniqueConstraint = "attendance_records_subject_session_key"
)

type AttendanceRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
	historySize int
	historyTTL  time.Duration
}

func NewAttendanceRepository(db *pgxpool.Pool, redisClient *redis.Client, historySize int, historyTTL time.Duration) service.AttendanceRepository {
	return &AttendanceRepository{
		db:          db,
		redisClient: redisClient,
		historySize: historySize,
		historyTTL:  historyTTL,
	}
}

// SaveRecord сохраняет запись о посещении. Нарушения уникальности
// транслируются в доменные ошибки, сбои соединения - в ErrStoreUnavailable,
// чтобы сервис мог отправить запись в оффлайн-очередь
func (r *AttendanceRepository) SaveRecord(ctx context.Context, record *models.AttendanceRecord) error {
	query := `
		INSERT INTO attendance_records
			(id, attempt_id, subject_id, zone_id, session_date, latitude, longitude,
			 accuracy_meters, distance_meters, match_confidence, emotion, emotion_confidence, marked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.db.Exec(ctx, query,
		record.ID,
		record.AttemptID,
		record.SubjectID,
		record.ZoneID,
		record.SessionDate,
		record.Latitude,
		record.Longitude,
		record.AccuracyMeters,
		record.DistanceMeters,
		record.MatchConfidence,
		record.Emotion,
		record.EmotionConfidence,
		record.MarkedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			switch pgErr.ConstraintName {
			case attemptUniqueConstraint:
				return fmt.Errorf("attempt %s: %w", record.AttemptID, service.ErrDuplicateAttempt)
			case sessionUniqueConstraint:
				return fmt.Errorf("subject %s zone %s: %w", record.SubjectID, record.ZoneID, service.ErrDuplicateSession)
			}
			return fmt.Errorf("failed to save attendance record: %w", err)
		}
		if isConnectionError(err) {
			return fmt.Errorf("failed to save attendance record: %w", service.ErrStoreUnavailable)
		}
		return fmt.Errorf("failed to save attendance record: %w", err)
	}
	return nil
}

// RecordExists проверяет, записана ли уже попытка с таким attempt_id
func (r *AttendanceRepository) RecordExists(ctx context.Context, attemptID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM attendance_records WHERE attempt_id = $1);`

	var exists bool
	err := r.db.QueryRow(ctx, query, attemptID).Scan(&exists)
	if err != nil {
		if isConnectionError(err) {
			return false, fmt.Errorf("failed to check attendance record: %w", service.ErrStoreUnavailable)
		}
		return false, fmt.Errorf("failed to check attendance record: %w", err)
	}
	return exists, nil
}

// SaveFraudEvent сохраняет событие мошенничества; детали сигналов - JSONB
func (r *AttendanceRepository) SaveFraudEvent(ctx context.Context, event *models.FraudEvent) error {
	details, err := json.Marshal(event.SignalDetails)
	if err != nil {
		return fmt.Errorf("failed to marshal fraud signal details: %w", err)
	}

	query := `
		INSERT INTO fraud_events
			(id, attempt_id, subject_id, fraud_type, severity, signal_details, evidence_ref, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = r.db.Exec(ctx, query,
		event.ID,
		event.AttemptID,
		event.SubjectID,
		event.FraudType,
		string(event.Severity),
		details,
		event.EvidenceRef,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save fraud event: %w", err)
	}
	return nil
}

// GetAttendanceStats возвращает количество уникальных субъектов,
// отметившихся за последние minutes минут
func (r *AttendanceRepository) GetAttendanceStats(ctx context.Context, minutes int) (int, error) {
	query := `
		SELECT COUNT(DISTINCT subject_id)
		FROM attendance_records
		WHERE marked_at >= NOW() - ($1 * INTERVAL '1 minute');
	`
	var count int
	err := r.db.QueryRow(ctx, query, minutes).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get attendance stats: %w", err)
	}
	return count, nil
}

// GetPositionHistory возвращает последние фиксации позиции субъекта,
// новые первыми
func (r *AttendanceRepository) GetPositionHistory(ctx context.Context, subjectID string) ([]models.PositionFix, error) {
	key := positionHistoryKey(subjectID)
	values, err := r.redisClient.LRange(ctx, key, 0, int64(r.historySize)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get position history: %w", err)
	}

	fixes := make([]models.PositionFix, 0, len(values))
	for _, val := range values {
		var fix models.PositionFix
		if err := json.Unmarshal([]byte(val), &fix); err != nil {
			return nil, fmt.Errorf("failed to unmarshal position fix: %w", err)
		}
		fixes = append(fixes, fix)
	}
	return fixes, nil
}

// AppendPositionFix добавляет фиксацию позиции в историю субъекта.
// История ограничена по длине и по сроку жизни
func (r *AttendanceRepository) AppendPositionFix(ctx context.Context, subjectID string, fix models.PositionFix) error {
	payload, err := json.Marshal(fix)
	if err != nil {
		return fmt.Errorf("failed to marshal position fix: %w", err)
	}

	key := positionHistoryKey(subjectID)
	pipe := r.redisClient.TxPipeline()
	pipe.LPush(ctx, key, payload)
	pipe.LTrim(ctx, key, 0, int64(r.historySize)-1)
	pipe.Expire(ctx, key, r.historyTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append position fix: %w", err)
	}
	return nil
}

func positionHistoryKey(subjectID string) string {
	return fmt.Sprintf("position_history:%s", subjectID)
}

// isConnectionError отличает недоступность хранилища от ошибок запроса.
// Ошибка, дошедшая до сервера (PgError), недоступностью не считается
func isConnectionError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	return true
}
