package offline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/attendance_verification_system/internal/models"
)

//go:generate mockgen -source=queue.go -destination=mocks/mock_queue.go -package=mocks

// Ключи трех списков очереди. Записи перемещаются между списками атомарно,
// чтобы сбой процесса между извлечением и записью не терял запись
const (
	pendingKey = "attendance_offline:pending"
	syncingKey = "attendance_offline:syncing"
	failedKey  = "attendance_offline:failed"
)

// Queue - очередь записей о посещении, ожидающих синхронизации с хранилищем
type Queue interface {
	Enqueue(ctx context.Context, entry *models.OfflineQueueEntry) error
	DequeueForSync(ctx context.Context) (*models.OfflineQueueEntry, string, error)
	MarkSynced(ctx context.Context, raw string) error
	MarkFailed(ctx context.Context, raw string, entry *models.OfflineQueueEntry) error
	Requeue(ctx context.Context, raw string, entry *models.OfflineQueueEntry) error
	Status(ctx context.Context) (*models.QueueStatus, error)
}

// RedisQueue - реализация Queue на списках Redis
type RedisQueue struct {
	redisClient *redis.Client
}

func NewRedisQueue(client *redis.Client) *RedisQueue {
	return &RedisQueue{redisClient: client}
}

// Enqueue добавляет запись в хвост очереди ожидания
func (q *RedisQueue) Enqueue(ctx context.Context, entry *models.OfflineQueueEntry) error {
	entry.SyncState = models.SyncPending
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal queue entry: %w", err)
	}

	if err := q.redisClient.LPush(ctx, pendingKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to enqueue record: %w", err)
	}
	return nil
}

// DequeueForSync атомарно перемещает старейшую ожидающую запись в список
// синхронизации и возвращает ее вместе с сырым значением для последующего
// LRem. Пустая очередь - (nil, "", nil)
func (q *RedisQueue) DequeueForSync(ctx context.Context) (*models.OfflineQueueEntry, string, error) {
	raw, err := q.redisClient.LMove(ctx, pendingKey, syncingKey, "RIGHT", "LEFT").Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("failed to dequeue record for sync: %w", err)
	}

	entry := &models.OfflineQueueEntry{}
	if err := json.Unmarshal([]byte(raw), entry); err != nil {
		// Нечитаемая запись уходит в failed, а не блокирует очередь
		q.redisClient.LRem(ctx, syncingKey, 1, raw)
		q.redisClient.RPush(ctx, failedKey, raw)
		return nil, "", fmt.Errorf("failed to unmarshal queue entry: %w", err)
	}
	entry.SyncState = models.SyncSyncing
	return entry, raw, nil
}

// MarkSynced удаляет успешно синхронизированную запись из списка синхронизации
func (q *RedisQueue) MarkSynced(ctx context.Context, raw string) error {
	if err := q.redisClient.LRem(ctx, syncingKey, 1, raw).Err(); err != nil {
		return fmt.Errorf("failed to mark record synced: %w", err)
	}
	return nil
}

// MarkFailed переносит запись из списка синхронизации в список отказов
// с обновленным состоянием и текстом последней ошибки
func (q *RedisQueue) MarkFailed(ctx context.Context, raw string, entry *models.OfflineQueueEntry) error {
	entry.SyncState = models.SyncFailed
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal failed entry: %w", err)
	}

	pipe := q.redisClient.TxPipeline()
	pipe.LRem(ctx, syncingKey, 1, raw)
	pipe.RPush(ctx, failedKey, payload)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to mark record failed: %w", err)
	}
	return nil
}

// Requeue возвращает запись из списка синхронизации в голову очереди
// ожидания (следующий цикл попробует ее первой)
func (q *RedisQueue) Requeue(ctx context.Context, raw string, entry *models.OfflineQueueEntry) error {
	entry.SyncState = models.SyncPending
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal requeued entry: %w", err)
	}

	pipe := q.redisClient.TxPipeline()
	pipe.LRem(ctx, syncingKey, 1, raw)
	pipe.RPush(ctx, pendingKey, payload)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to requeue record: %w", err)
	}
	return nil
}

// Status возвращает размеры очередей и возраст старейшей ожидающей записи
func (q *RedisQueue) Status(ctx context.Context) (*models.QueueStatus, error) {
	pending, err := q.redisClient.LLen(ctx, pendingKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get pending queue length: %w", err)
	}

	failed, err := q.redisClient.LLen(ctx, failedKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get failed queue length: %w", err)
	}

	status := &models.QueueStatus{
		PendingCount: pending,
		FailedCount:  failed,
	}

	if pending > 0 {
		raw, err := q.redisClient.LIndex(ctx, pendingKey, -1).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("failed to inspect oldest pending record: %w", err)
		}
		if err == nil {
			entry := &models.OfflineQueueEntry{}
			if err := json.Unmarshal([]byte(raw), entry); err == nil {
				status.OldestPendingAge = time.Since(entry.EnqueueTime)
			}
		}
	}

	return status, nil
}
