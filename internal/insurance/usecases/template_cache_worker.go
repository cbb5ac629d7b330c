package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"insurance-server/internal/infra/async"

	"github.com/robfig/cron/v3"
)

const _defaultRefreshSchedule = "@every 5m"

func NewTemplateCacheWorker(schedule string, service FormService) (*TemplateCacheWorker, error) {
	if schedule == "" {
		schedule = _defaultRefreshSchedule
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(schedule); err != nil {
		return nil, fmt.Errorf("parsing refresh schedule: %w", err)
	}

	return &TemplateCacheWorker{
		schedule: schedule,
		service:  service,
		cron:     cron.New(cron.WithParser(parser)),
	}, nil
}

var _ async.Worker = (*TemplateCacheWorker)(nil)

// TemplateCacheWorker warms the form cache at start and on a cron schedule.
type TemplateCacheWorker struct {
	schedule string
	service  FormService
	cron     *cron.Cron
	once     sync.Once
}

func (w *TemplateCacheWorker) Run(ctx context.Context, done func()) {
	slog.Debug("template cache worker started", slog.String("schedule", w.schedule))
	defer done()

	w.refresh(ctx)

	_, err := w.cron.AddFunc(w.schedule, func() { w.refresh(ctx) })
	if err != nil {
		slog.Error("scheduling template cache refresh", slog.String("error", err.Error()))
		return
	}
	w.cron.Start()

	<-ctx.Done()
	slog.Info("template cache worker cancelled")
	w.Shutdown()
}

func (w *TemplateCacheWorker) refresh(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := w.service.RefreshCache(ctx); err != nil {
		slog.Error("refreshing template cache", slog.String("error", err.Error()))
	}
}

func (w *TemplateCacheWorker) Shutdown() {
	w.once.Do(func() {
		<-w.cron.Stop().Done()
	})
}
