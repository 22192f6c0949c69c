package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/attendance_verification_system/internal/models"
)

//go:generate mockgen -source=publisher.go -destination=mocks/mock_publisher.go -package=mocks

const outcomeQueueKey = "outcome_events"

// OutcomeEvent - структура для данных вебхука о результате верификации
type OutcomeEvent struct {
	AttemptID       uuid.UUID            `json:"attempt_id"`
	SubjectID       string               `json:"subject_id,omitempty"`
	ZoneID          uuid.UUID            `json:"zone_id"`
	Passed          bool                 `json:"passed"`
	RejectionReason string               `json:"rejection_reason,omitempty"`
	FraudSeverity   models.FraudSeverity `json:"fraud_severity"`
	Emotion         string               `json:"emotion,omitempty"`
	Timestamp       time.Time            `json:"timestamp"`
}

// OutcomePublisher - интерфейс для публикации событий о результатах
type OutcomePublisher interface {
	Publish(ctx context.Context, event OutcomeEvent) error
}

// RedisOutcomePublisher - реализация OutcomePublisher, использующая Redis
type RedisOutcomePublisher struct {
	redisClient *redis.Client
}

// NewRedisOutcomePublisher создает новый RedisOutcomePublisher
func NewRedisOutcomePublisher(client *redis.Client) *RedisOutcomePublisher {
	return &RedisOutcomePublisher{
		redisClient: client,
	}
}

// Publish публикует событие результата в очередь Redis
func (p *RedisOutcomePublisher) Publish(ctx context.Context, event OutcomeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal outcome event: %w", err)
	}

	// LPUSH добавляет событие в левую часть списка (очереди)
	if err := p.redisClient.LPush(ctx, outcomeQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish outcome event to Redis: %w", err)
	}
	return nil
}
