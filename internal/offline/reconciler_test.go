package offline

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/attendance_verification_system/internal/config"
	"github.com/shenikar/attendance_verification_system/internal/models"
	"github.com/shenikar/attendance_verification_system/internal/offline/mocks"
	"github.com/shenikar/attendance_verification_system/internal/service"
	service_mocks "github.com/shenikar/attendance_verification_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

// newTestReconciler - вспомогательная функция для создания реконсилиатора с моками.
func newTestReconciler(t *testing.T) (*Reconciler, *mocks.MockQueue, *service_mocks.MockAttendanceRepository) {
	ctrl := gomock.NewController(t)
	queueMock := mocks.NewMockQueue(ctrl)
	storeMock := service_mocks.NewMockAttendanceRepository(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		SyncInterval:   30 * time.Second,
		SyncMaxRetries: 5,
	}
	return NewReconciler(queueMock, storeMock, logger, cfg), queueMock, storeMock
}

func queuedEntry(attempts int) (*models.OfflineQueueEntry, string) {
	entry := &models.OfflineQueueEntry{
		AttemptID: uuid.New(),
		Record: models.AttendanceRecord{
			ID:        uuid.New(),
			SubjectID: "s-1",
		},
		EnqueueTime: time.Now().UTC(),
		SyncState:   models.SyncPending,
		Attempts:    attempts,
	}
	return entry, entry.AttemptID.String()
}

func TestDrain_SyncsEntriesUntilQueueEmpty(t *testing.T) {
	// Подготовка: две записи в очереди, обе уходят в хранилище по порядку
	r, queueMock, storeMock := newTestReconciler(t)
	ctx := context.Background()
	first, rawFirst := queuedEntry(0)
	second, rawSecond := queuedEntry(0)

	// Ожидания
	gomock.InOrder(
		queueMock.EXPECT().DequeueForSync(ctx).Return(first, rawFirst, nil),
		storeMock.EXPECT().SaveRecord(ctx, &first.Record).Return(nil),
		queueMock.EXPECT().MarkSynced(ctx, rawFirst).Return(nil),
		queueMock.EXPECT().DequeueForSync(ctx).Return(second, rawSecond, nil),
		storeMock.EXPECT().SaveRecord(ctx, &second.Record).Return(nil),
		queueMock.EXPECT().MarkSynced(ctx, rawSecond).Return(nil),
		queueMock.EXPECT().DequeueForSync(ctx).Return(nil, "", nil),
	)

	// Действие
	r.drain(ctx)
}

func TestDrain_DuplicateAttemptIsDropped(t *testing.T) {
	// Подготовка: запись уже дошла до хранилища раньше - повтор безвреден
	r, queueMock, storeMock := newTestReconciler(t)
	ctx := context.Background()
	entry, raw := queuedEntry(0)

	// Ожидания
	gomock.InOrder(
		queueMock.EXPECT().DequeueForSync(ctx).Return(entry, raw, nil),
		storeMock.EXPECT().SaveRecord(ctx, &entry.Record).Return(service.ErrDuplicateAttempt),
		queueMock.EXPECT().MarkSynced(ctx, raw).Return(nil),
		queueMock.EXPECT().DequeueForSync(ctx).Return(nil, "", nil),
	)

	// Действие
	r.drain(ctx)
}

func TestDrain_DuplicateSessionGoesToFailed(t *testing.T) {
	// Подготовка: за время оффлайна субъект уже отметился в этой сессии
	r, queueMock, storeMock := newTestReconciler(t)
	ctx := context.Background()
	entry, raw := queuedEntry(0)

	// Ожидания: конфликт не блокирует разбор остальной очереди
	gomock.InOrder(
		queueMock.EXPECT().DequeueForSync(ctx).Return(entry, raw, nil),
		storeMock.EXPECT().SaveRecord(ctx, &entry.Record).Return(service.ErrDuplicateSession),
		queueMock.EXPECT().
			MarkFailed(ctx, raw, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, failed *models.OfflineQueueEntry) error {
				assert.Equal(t, models.ReasonDuplicateSession, failed.LastError)
				return nil
			}),
		queueMock.EXPECT().DequeueForSync(ctx).Return(nil, "", nil),
	)

	// Действие
	r.drain(ctx)
}

func TestDrain_StoreStillUnavailable_RequeuesAndStops(t *testing.T) {
	// Подготовка
	r, queueMock, storeMock := newTestReconciler(t)
	ctx := context.Background()
	entry, raw := queuedEntry(0)

	// Ожидания: счетчик попыток растет, разбор очереди прекращается
	gomock.InOrder(
		queueMock.EXPECT().DequeueForSync(ctx).Return(entry, raw, nil),
		storeMock.EXPECT().SaveRecord(ctx, &entry.Record).Return(service.ErrStoreUnavailable),
		queueMock.EXPECT().
			Requeue(ctx, raw, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, requeued *models.OfflineQueueEntry) error {
				assert.Equal(t, 1, requeued.Attempts)
				return nil
			}),
	)

	// Действие
	r.drain(ctx)
}

func TestDrain_RetriesExhausted_MovesToFailed(t *testing.T) {
	// Подготовка: запись на последней попытке
	r, queueMock, storeMock := newTestReconciler(t)
	ctx := context.Background()
	entry, raw := queuedEntry(4)

	// Ожидания
	gomock.InOrder(
		queueMock.EXPECT().DequeueForSync(ctx).Return(entry, raw, nil),
		storeMock.EXPECT().SaveRecord(ctx, &entry.Record).Return(service.ErrStoreUnavailable),
		queueMock.EXPECT().
			MarkFailed(ctx, raw, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, failed *models.OfflineQueueEntry) error {
				assert.Equal(t, 5, failed.Attempts)
				return nil
			}),
	)

	// Действие
	r.drain(ctx)
}

func TestDrain_UnexpectedSaveErrorGoesToFailed(t *testing.T) {
	// Подготовка: хранилище ответило, но запись не принята
	r, queueMock, storeMock := newTestReconciler(t)
	ctx := context.Background()
	entry, raw := queuedEntry(0)
	saveErr := errors.New("constraint violation")

	// Ожидания
	gomock.InOrder(
		queueMock.EXPECT().DequeueForSync(ctx).Return(entry, raw, nil),
		storeMock.EXPECT().SaveRecord(ctx, &entry.Record).Return(saveErr),
		queueMock.EXPECT().
			MarkFailed(ctx, raw, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, failed *models.OfflineQueueEntry) error {
				assert.Equal(t, saveErr.Error(), failed.LastError)
				return nil
			}),
		queueMock.EXPECT().DequeueForSync(ctx).Return(nil, "", nil),
	)

	// Действие
	r.drain(ctx)
}

func TestDrain_DequeueErrorStops(t *testing.T) {
	// Подготовка
	r, queueMock, _ := newTestReconciler(t)
	ctx := context.Background()

	// Ожидания
	queueMock.EXPECT().DequeueForSync(ctx).Return(nil, "", errors.New("redis down"))

	// Действие
	r.drain(ctx)
}

func TestDrain_CanceledContextStopsImmediately(t *testing.T) {
	// Подготовка: отмененный контекст - очередь не трогаем
	r, _, _ := newTestReconciler(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Действие
	r.drain(ctx)
}
