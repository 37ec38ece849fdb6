package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/alexandremendes381/l0gic-admin-panel/internal/analytics"
	"github.com/alexandremendes381/l0gic-admin-panel/internal/entity"
	"github.com/alexandremendes381/l0gic-admin-panel/internal/infra/http/middleware"
)

// LeadStatsWorker recalcula periodicamente os gauges de leads do /metrics.
type LeadStatsWorker struct {
	repo         entity.LeadRepositoryInterface
	logger       *zap.Logger
	tickInterval time.Duration
	record       func(middleware.LeadStats)
	now          func() time.Time
}

func NewLeadStatsWorker(repo entity.LeadRepositoryInterface, interval time.Duration, logger *zap.Logger) *LeadStatsWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeadStatsWorker{
		repo:         repo,
		logger:       logger,
		tickInterval: interval,
		record:       middleware.SetLeadStats,
		now:          time.Now,
	}
}

func (w *LeadStatsWorker) Start(ctx context.Context) {
	w.logger.Info("lead stats worker iniciado", zap.Duration("interval", w.tickInterval))

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("lead stats worker encerrado")
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *LeadStatsWorker) refresh(ctx context.Context) {
	leads, err := w.repo.FindAll(ctx)
	if err != nil {
		w.logger.Warn("erro ao calcular estatísticas de leads", zap.Error(err))
		return
	}

	stats := Compute(leads, w.now())
	w.record(stats)
	w.logger.Debug("estatísticas de leads atualizadas",
		zap.Int("total", stats.Total),
		zap.Int("tracked", stats.Tracked),
	)
}

// Compute deriva os gauges do snapshot atual.
func Compute(leads []entity.Lead, now time.Time) middleware.LeadStats {
	return middleware.LeadStats{
		Total:       len(leads),
		Tracked:     analytics.TrackedCount(leads),
		NewThisWeek: len(analytics.WithinDays(leads, 7, now)),
		Sources:     analytics.DistinctSources(leads),
	}
}
