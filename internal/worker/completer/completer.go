package completer

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CompleteElapsed(ctx context.Context, now time.Time) (int64, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Worker фоновый воркер, переводящий подтверждённые бронирования
// с прошедшим временем окончания в статус service_complete
type Worker struct {
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	interval     time.Duration
	logger       Logger

	cron *cron.Cron
}

// NewWorker создает новый экземпляр воркера
func NewWorker(bookingRepo BookingRepository, intervalMinutes int, logger Logger) *Worker {
	return &Worker{
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		interval:     time.Duration(intervalMinutes) * time.Minute,
		logger:       logger,
		cron:         cron.New(),
	}
}

// Start запускает периодический запуск в отдельной горутине
func (w *Worker) Start() error {
	spec := fmt.Sprintf("@every %s", w.interval)
	if _, err := w.cron.AddFunc(spec, w.runOnce); err != nil {
		return fmt.Errorf("completer: failed to schedule job: %w", err)
	}

	w.cron.Start()
	w.logger.Info("Completer worker started: interval=%s", w.interval)
	return nil
}

// Stop останавливает воркер и дожидается завершения текущего запуска
func (w *Worker) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
	w.logger.Info("Completer worker stopped")
}

func (w *Worker) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	now := w.timeProvider.Now()

	updated, err := w.bookingRepo.CompleteElapsed(ctx, now)
	if err != nil {
		w.logger.Error("Completer: failed to complete elapsed bookings: %v", err)
		return
	}

	if updated > 0 {
		w.logger.Info("Completer: marked %d bookings as service_complete", updated)
	}
}
