package dispatcher

import (
	"context"
	"strings"
	"time"

	"mindcare-be/internal/constant"
	"mindcare-be/internal/entity"
	"mindcare-be/internal/pkg/apperror"
	"mindcare-be/internal/pkg/logger"
	"mindcare-be/internal/repository/unitofwork"
	"mindcare-be/pkg/analysis/analyzer"
	"mindcare-be/pkg/analysis/eligibility"
	"mindcare-be/pkg/dateutil"
	"mindcare-be/pkg/llm"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// WindowDays is how far back entries are collected for an analysis.
const WindowDays = 30

var tracer = otel.Tracer("mindcare-be/pkg/analysis/dispatcher")

type Request struct {
	UserID   uuid.UUID
	Mode     string
	Provider string
	// LastAnalysisAt is the value read when eligibility was checked. The
	// run only commits if it is still current.
	LastAnalysisAt *time.Time
}

type Result struct {
	Analysis *entity.DiaryAnalysis
}

type Dispatcher struct {
	uowFactory unitofwork.RepositoryFactory
	analyzer   analyzer.Analyzer
	logger     logger.ILogger
	now        func() time.Time
}

func New(uowFactory unitofwork.RepositoryFactory, a analyzer.Analyzer, log logger.ILogger) *Dispatcher {
	return &Dispatcher{
		uowFactory: uowFactory,
		analyzer:   a,
		logger:     log,
		now:        time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (d *Dispatcher) WithClock(now func() time.Time) *Dispatcher {
	d.now = now
	return d
}

func NormalizeMode(mode string) (string, error) {
	m := strings.ToLower(strings.TrimSpace(mode))
	switch m {
	case constant.AnalysisModeCBT, constant.AnalysisModeMBT:
		return m, nil
	}
	return "", apperror.InvalidInput("unsupported analysis mode %q", mode)
}

// Run analyzes the trailing WindowDays of diary entries and records the
// result. last_analysis_at is advanced in the same transaction as the
// analysis row; if another run advanced it first, nothing is stored and a
// cooldown error is returned.
func (d *Dispatcher) Run(ctx context.Context, req Request) (*Result, error) {
	ctx, span := tracer.Start(ctx, "dispatcher.Run")
	defer span.End()

	mode, err := NormalizeMode(req.Mode)
	if err != nil {
		return nil, err
	}
	provider, err := llm.Normalize(req.Provider)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("analysis.mode", mode), attribute.String("analysis.provider", provider))

	from, today := dateutil.Window(d.now(), WindowDays)

	uow := d.uowFactory.NewUnitOfWork(ctx)
	entries, err := uow.DiaryEntryRepository().FindByEntryDate(ctx, req.UserID, from, today, false)
	if err != nil {
		return nil, apperror.Persistence("load diary entries", err)
	}
	if len(entries) == 0 {
		return nil, apperror.InvalidInput("nothing to analyze: no diary entries in the last %d days", WindowDays)
	}

	payload := make([]analyzer.Entry, 0, len(entries))
	for _, e := range entries {
		payload = append(payload, analyzer.Entry{
			EntryID:   e.Id.String(),
			Content:   e.Content,
			Mood:      e.Mood,
			EntryDate: e.EntryDate.Format(dateutil.Layout),
		})
	}

	out, err := d.analyzer.Analyze(ctx, analyzer.Request{Entries: payload, Mode: mode, Provider: provider})
	if err != nil {
		span.RecordError(err)
		return nil, apperror.Upstream("diary analysis failed", err)
	}

	completedAt := d.now()
	analysis := &entity.DiaryAnalysis{
		Id:         uuid.New(),
		UserId:     req.UserID,
		Mode:       mode,
		Provider:   provider,
		Result:     out.Payload,
		RiskLevel:  out.RiskLevel,
		EntryCount: len(entries),
		CreatedAt:  completedAt,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Persistence("begin transaction", err)
	}
	defer uow.Rollback()

	if err := uow.DiaryAnalysisRepository().Create(ctx, analysis); err != nil {
		return nil, apperror.Persistence("store diary analysis", err)
	}

	advanced, err := uow.UserRepository().AdvanceLastAnalysis(ctx, req.UserID, req.LastAnalysisAt, completedAt)
	if err != nil {
		return nil, apperror.Persistence("advance last analysis", err)
	}
	if !advanced {
		d.logger.Warn("ANALYSIS", "Concurrent analysis detected, discarding result", map[string]interface{}{
			"user_id": req.UserID.String(),
		})
		return nil, apperror.Cooldown(eligibility.CooldownDays)
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.Persistence("commit diary analysis", err)
	}

	d.logger.Info("ANALYSIS", "Diary analysis stored", map[string]interface{}{
		"user_id":     req.UserID.String(),
		"analysis_id": analysis.Id.String(),
		"mode":        mode,
		"provider":    provider,
		"risk_level":  analysis.RiskLevel,
		"entry_count": analysis.EntryCount,
	})
	return &Result{Analysis: analysis}, nil
}
