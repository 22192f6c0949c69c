package offline

import (
	"context"
	"errors"
	"time"

	"github.com/shenikar/attendance_verification_system/internal/config"
	"github.com/shenikar/attendance_verification_system/internal/models"
	"github.com/shenikar/attendance_verification_system/internal/service"
	"github.com/sirupsen/logrus"
)

// RecordStore - часть хранилища посещений, нужная для досинхронизации
type RecordStore interface {
	SaveRecord(ctx context.Context, record *models.AttendanceRecord) error
}

// Reconciler периодически переносит накопленные в очереди записи в
// основное хранилище. Порядок FIFO: записи уходят в том порядке, в
// котором были приняты
type Reconciler struct {
	queue  Queue
	store  RecordStore
	logger *logrus.Logger
	cfg    *config.Config
}

func NewReconciler(queue Queue, store RecordStore, logger *logrus.Logger, cfg *config.Config) *Reconciler {
	return &Reconciler{
		queue:  queue,
		store:  store,
		logger: logger,
		cfg:    cfg,
	}
}

// Start запускает горутину цикла синхронизации
func (r *Reconciler) Start(ctx context.Context) {
	r.logger.Info("Starting offline queue reconciler...")
	go func() {
		ticker := time.NewTicker(r.cfg.SyncInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				r.logger.Info("Stopping offline queue reconciler.")
				return
			case <-ticker.C:
				r.drain(ctx)
			}
		}
	}()
}

// drain переносит записи из очереди в хранилище, пока очередь не опустеет
// или хранилище снова не станет недоступным
func (r *Reconciler) drain(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		entry, raw, err := r.queue.DequeueForSync(ctx)
		if err != nil {
			r.logger.WithError(err).Error("Failed to dequeue record for sync")
			return
		}
		if entry == nil {
			return
		}

		if !r.syncEntry(ctx, entry, raw) {
			// Хранилище все еще недоступно, остальное подождет
			// следующего цикла
			return
		}
	}
}

// syncEntry пытается записать одну запись. Возвращает false, если
// хранилище недоступно и продолжать цикл бессмысленно
func (r *Reconciler) syncEntry(ctx context.Context, entry *models.OfflineQueueEntry, raw string) bool {
	log := r.logger.WithFields(logrus.Fields{
		"attempt_id": entry.AttemptID,
		"attempts":   entry.Attempts,
	})

	err := r.store.SaveRecord(ctx, &entry.Record)
	switch {
	case err == nil:
		if err := r.queue.MarkSynced(ctx, raw); err != nil {
			log.WithError(err).Error("Failed to mark record synced")
		}
		log.Info("Queued attendance record synced")
		return true

	case errors.Is(err, service.ErrDuplicateAttempt):
		// Запись уже дошла до хранилища раньше (например, при сбое
		// между записью и подтверждением) - повтор безвреден
		if err := r.queue.MarkSynced(ctx, raw); err != nil {
			log.WithError(err).Error("Failed to mark duplicate record synced")
		}
		log.Info("Queued record already present in store, dropped")
		return true

	case errors.Is(err, service.ErrDuplicateSession):
		entry.LastError = models.ReasonDuplicateSession
		if err := r.queue.MarkFailed(ctx, raw, entry); err != nil {
			log.WithError(err).Error("Failed to mark conflicting record failed")
		}
		log.Warn("Queued record conflicts with existing session record, moved to failed")
		return true

	case errors.Is(err, service.ErrStoreUnavailable):
		entry.Attempts++
		entry.LastError = err.Error()
		if entry.Attempts >= r.cfg.SyncMaxRetries {
			if err := r.queue.MarkFailed(ctx, raw, entry); err != nil {
				log.WithError(err).Error("Failed to mark exhausted record failed")
			}
			log.Warn("Queued record exhausted sync retries, moved to failed")
			return false
		}
		if err := r.queue.Requeue(ctx, raw, entry); err != nil {
			log.WithError(err).Error("Failed to requeue record")
		}
		log.WithError(err).Warn("Store still unavailable, record requeued")
		return false

	default:
		entry.LastError = err.Error()
		if err := r.queue.MarkFailed(ctx, raw, entry); err != nil {
			log.WithError(err).Error("Failed to mark record failed")
		}
		log.WithError(err).Error("Failed to sync queued record, moved to failed")
		return true
	}
}
