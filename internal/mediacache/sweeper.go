package mediacache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const sweepSchedule = "@hourly"

// Sweeper periodically prunes cache entries past the retention window.
type Sweeper struct {
	service   *Service
	cron      *cron.Cron
	retention time.Duration
	logger    *slog.Logger
}

// NewSweeper creates a sweeper. A non-positive retention falls back to
// DefaultRetention.
func NewSweeper(log *slog.Logger, service *Service, retention time.Duration) *Sweeper {
	if log == nil {
		log = slog.Default()
	}
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Sweeper{
		service:   service,
		cron:      cron.New(),
		retention: retention,
		logger:    log.With(slog.String("service", "media_cache_sweeper")),
	}
}

// Start schedules the hourly sweep.
func (w *Sweeper) Start() error {
	_, err := w.cron.AddFunc(sweepSchedule, w.sweep)
	if err != nil {
		return fmt.Errorf("schedule cache sweep: %w", err)
	}
	w.cron.Start()
	return nil
}

// Stop halts the schedule; a sweep already in flight finishes.
func (w *Sweeper) Stop() {
	w.cron.Stop()
}

func (w *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	deleted, err := w.service.DeleteOlderThan(ctx, w.retention)
	if err != nil {
		w.logger.Warn("media cache sweep failed", slog.Any("error", err))
		return
	}
	if deleted > 0 {
		w.logger.Info("media cache swept", slog.Int64("deleted", deleted))
	}
}
