package service

import (
	"context"
	"time"

	"mindcare-be/internal/pkg/apperror"
	"mindcare-be/internal/pkg/logger"
	"mindcare-be/internal/repository/unitofwork"
	"mindcare-be/pkg/dateutil"
	"mindcare-be/pkg/events"
	"mindcare-be/pkg/insight"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// DefaultReportTTL bounds how stale a cached report may get when no
// invalidation arrives.
const DefaultReportTTL = 10 * time.Minute

type IReportService interface {
	GetReport(ctx context.Context, userId uuid.UUID) (*insight.Report, error)
	Invalidate(userId uuid.UUID)
	// HandleSignalsUpdated drops the cached report of the user named in the event.
	HandleSignalsUpdated(ctx context.Context, event events.Event) error
}

type reportService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *cache.Cache
	logger     logger.ILogger
	now        func() time.Time
}

func NewReportService(uowFactory unitofwork.RepositoryFactory, ttl time.Duration, log logger.ILogger) IReportService {
	if ttl <= 0 {
		ttl = DefaultReportTTL
	}
	return &reportService{
		uowFactory: uowFactory,
		cache:      cache.New(ttl, 2*ttl),
		logger:     log,
		now:        time.Now,
	}
}

func (rs *reportService) GetReport(ctx context.Context, userId uuid.UUID) (*insight.Report, error) {
	if cached, ok := rs.cache.Get(userId.String()); ok {
		return cached.(*insight.Report), nil
	}

	now := rs.now()
	from, today := dateutil.Window(now, insight.DiaryDays)

	uow := rs.uowFactory.NewUnitOfWork(ctx)
	signals, err := uow.ConversationSignalRepository().FindRecentByUser(ctx, userId, insight.SignalLimit)
	if err != nil {
		return nil, apperror.Persistence("load conversation signals", err)
	}
	entries, err := uow.DiaryEntryRepository().FindByEntryDate(ctx, userId, from, today, true)
	if err != nil {
		return nil, apperror.Persistence("load diary entries", err)
	}

	report := insight.Generate(userId, signals, entries, now)
	rs.cache.SetDefault(userId.String(), report)

	rs.logger.Info("REPORT", "Report generated", map[string]interface{}{
		"user_id":    userId.String(),
		"signals":    len(signals),
		"entries":    len(entries),
		"risk_level": report.RiskAssessment.Level,
	})
	return report, nil
}

func (rs *reportService) Invalidate(userId uuid.UUID) {
	rs.cache.Delete(userId.String())
}

func (rs *reportService) HandleSignalsUpdated(ctx context.Context, event events.Event) error {
	raw, ok := events.UserID(event)
	if !ok {
		rs.logger.Warn("REPORT", "signals.updated event without user_id", nil)
		return nil
	}
	userId, err := uuid.Parse(raw)
	if err != nil {
		rs.logger.Warn("REPORT", "signals.updated event with malformed user_id", map[string]interface{}{
			"user_id": raw,
		})
		return nil
	}
	rs.Invalidate(userId)
	return nil
}
