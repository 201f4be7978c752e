package service

import (
	"context"
	"strings"
	"time"

	"mindcare-be/internal/constant"
	"mindcare-be/internal/dto"
	"mindcare-be/internal/entity"
	"mindcare-be/internal/pkg/apperror"
	"mindcare-be/internal/pkg/logger"
	"mindcare-be/internal/repository/unitofwork"
	"mindcare-be/pkg/analysis/dispatcher"
	"mindcare-be/pkg/analysis/eligibility"
	"mindcare-be/pkg/dateutil"
	"mindcare-be/pkg/events"

	"github.com/google/uuid"
)

// ReportInvalidator drops any cached insight report for a user.
type ReportInvalidator interface {
	Invalidate(userId uuid.UUID)
}

type IDiaryService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateDiaryEntryRequest) (*dto.DiaryEntryResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateDiaryEntryRequest) (*dto.DiaryEntryResponse, error)
	Delete(ctx context.Context, userId, id uuid.UUID) error
	Show(ctx context.Context, userId, id uuid.UUID) (*dto.DiaryEntryResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID, req *dto.ListRequest) ([]*dto.DiaryEntryResponse, error)
	Eligibility(ctx context.Context, userId uuid.UUID) (*dto.EligibilityResponse, error)
	Analyze(ctx context.Context, userId uuid.UUID, req *dto.AnalyzeDiaryRequest) (*dto.DiaryAnalysisResponse, error)
	LatestAnalysis(ctx context.Context, userId uuid.UUID) (*dto.DiaryAnalysisResponse, error)
}

type diaryService struct {
	uowFactory       unitofwork.RepositoryFactory
	dispatcher       *dispatcher.Dispatcher
	publisherService IPublisherService
	reports          ReportInvalidator
	logger           logger.ILogger
	requestTimeout   time.Duration
	now              func() time.Time
}

// NewDiaryService wires the diary use cases. publisherService and reports may be nil.
func NewDiaryService(
	uowFactory unitofwork.RepositoryFactory,
	d *dispatcher.Dispatcher,
	publisherService IPublisherService,
	reports ReportInvalidator,
	log logger.ILogger,
	requestTimeout time.Duration,
) IDiaryService {
	return &diaryService{
		uowFactory:       uowFactory,
		dispatcher:       d,
		publisherService: publisherService,
		reports:          reports,
		logger:           log,
		requestTimeout:   requestTimeout,
		now:              time.Now,
	}
}

func (ds *diaryService) today() time.Time {
	return dateutil.Day(ds.now())
}

func (ds *diaryService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateDiaryEntryRequest) (*dto.DiaryEntryResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperror.InvalidInput("diary content must not be empty")
	}
	if !constant.IsMood(req.Mood) {
		return nil, apperror.InvalidInput("unknown mood %q", req.Mood)
	}

	entryDate := ds.today()
	if req.EntryDate != "" {
		parsed, err := time.Parse(dateutil.Layout, req.EntryDate)
		if err != nil {
			return nil, apperror.InvalidInput("entry_date must be YYYY-MM-DD")
		}
		if parsed.After(entryDate) {
			return nil, apperror.InvalidInput("entry_date cannot be in the future")
		}
		entryDate = parsed
	}

	now := ds.now()
	entry := &entity.DiaryEntry{
		Id:        uuid.New(),
		UserId:    userId,
		Content:   content,
		Mood:      req.Mood,
		EntryDate: entryDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	uow := ds.uowFactory.NewUnitOfWork(ctx)
	if err := uow.DiaryEntryRepository().Create(ctx, entry); err != nil {
		return nil, apperror.Persistence("create diary entry", err)
	}
	ds.invalidateReport(userId)

	return toDiaryEntryResponse(entry), nil
}

// Update applies a partial edit. Entries dated before today accept a single
// content edit; same-day entries can be edited freely.
func (ds *diaryService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateDiaryEntryRequest) (*dto.DiaryEntryResponse, error) {
	if req.Content == nil && req.Mood == nil {
		return nil, apperror.InvalidInput("nothing to update")
	}

	uow := ds.uowFactory.NewUnitOfWork(ctx)
	entry, err := uow.DiaryEntryRepository().FindOwned(ctx, req.Id, userId)
	if err != nil {
		return nil, apperror.Persistence("load diary entry", err)
	}
	if entry == nil {
		return nil, apperror.NotFound("diary entry %s not found", req.Id)
	}

	if req.Mood != nil {
		if !constant.IsMood(*req.Mood) {
			return nil, apperror.InvalidInput("unknown mood %q", *req.Mood)
		}
		entry.Mood = *req.Mood
	}

	if req.Content != nil {
		content := strings.TrimSpace(*req.Content)
		if content == "" {
			return nil, apperror.InvalidInput("diary content must not be empty")
		}
		if content != entry.Content {
			if entry.EntryDate.Before(ds.today()) {
				if entry.EditCount >= 1 {
					return nil, apperror.InvalidInput("entries from previous days can only be edited once")
				}
				entry.EditCount++
			}
			entry.Content = content
		}
	}

	if err := uow.DiaryEntryRepository().Update(ctx, entry); err != nil {
		return nil, apperror.Persistence("update diary entry", err)
	}
	ds.invalidateReport(userId)

	return toDiaryEntryResponse(entry), nil
}

func (ds *diaryService) Delete(ctx context.Context, userId, id uuid.UUID) error {
	uow := ds.uowFactory.NewUnitOfWork(ctx)
	entry, err := uow.DiaryEntryRepository().FindOwned(ctx, id, userId)
	if err != nil {
		return apperror.Persistence("load diary entry", err)
	}
	if entry == nil {
		return apperror.NotFound("diary entry %s not found", id)
	}

	if err := uow.DiaryEntryRepository().Delete(ctx, id); err != nil {
		return apperror.Persistence("delete diary entry", err)
	}
	ds.invalidateReport(userId)
	return nil
}

func (ds *diaryService) Show(ctx context.Context, userId, id uuid.UUID) (*dto.DiaryEntryResponse, error) {
	uow := ds.uowFactory.NewUnitOfWork(ctx)
	entry, err := uow.DiaryEntryRepository().FindOwned(ctx, id, userId)
	if err != nil {
		return nil, apperror.Persistence("load diary entry", err)
	}
	if entry == nil {
		return nil, apperror.NotFound("diary entry %s not found", id)
	}
	return toDiaryEntryResponse(entry), nil
}

func (ds *diaryService) GetAll(ctx context.Context, userId uuid.UUID, req *dto.ListRequest) ([]*dto.DiaryEntryResponse, error) {
	limit, offset := pageBounds(req)

	uow := ds.uowFactory.NewUnitOfWork(ctx)
	entries, err := uow.DiaryEntryRepository().FindAllByUser(ctx, userId, limit, offset)
	if err != nil {
		return nil, apperror.Persistence("list diary entries", err)
	}

	res := make([]*dto.DiaryEntryResponse, 0, len(entries))
	for _, e := range entries {
		res = append(res, toDiaryEntryResponse(e))
	}
	return res, nil
}

func (ds *diaryService) loadUser(ctx context.Context, userId uuid.UUID) (*entity.User, error) {
	uow := ds.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindByID(ctx, userId)
	if err != nil {
		return nil, apperror.Persistence("load user", err)
	}
	if user == nil {
		return nil, apperror.NotFound("user %s not found", userId)
	}
	return user, nil
}

func (ds *diaryService) Eligibility(ctx context.Context, userId uuid.UUID) (*dto.EligibilityResponse, error) {
	user, err := ds.loadUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	result := eligibility.Check(user.LastAnalysisAt, ds.now())
	return &dto.EligibilityResponse{
		Eligible:       result.Eligible,
		DaysRemaining:  result.DaysRemaining,
		LastAnalysisAt: user.LastAnalysisAt,
	}, nil
}

func (ds *diaryService) Analyze(ctx context.Context, userId uuid.UUID, req *dto.AnalyzeDiaryRequest) (*dto.DiaryAnalysisResponse, error) {
	user, err := ds.loadUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	gate := eligibility.Check(user.LastAnalysisAt, ds.now())
	if !gate.Eligible {
		return nil, apperror.Cooldown(gate.DaysRemaining)
	}

	if ds.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ds.requestTimeout)
		defer cancel()
	}

	result, err := ds.dispatcher.Run(ctx, dispatcher.Request{
		UserID:         userId,
		Mode:           req.Mode,
		Provider:       req.Provider,
		LastAnalysisAt: user.LastAnalysisAt,
	})
	if err != nil {
		return nil, err
	}

	analysis := result.Analysis
	ds.invalidateReport(userId)
	if ds.publisherService != nil {
		evt := events.New(events.AnalysisCompleted, map[string]interface{}{
			"user_id":     userId.String(),
			"analysis_id": analysis.Id.String(),
			"mode":        analysis.Mode,
			"risk_level":  analysis.RiskLevel,
		}, analysis.CreatedAt)
		if err := ds.publisherService.Publish(ctx, evt); err != nil {
			ds.logger.Warn("EVENTS", "Failed to publish event", map[string]interface{}{
				"type":  evt.EventType(),
				"error": err.Error(),
			})
		}
	}

	return toDiaryAnalysisResponse(analysis), nil
}

func (ds *diaryService) LatestAnalysis(ctx context.Context, userId uuid.UUID) (*dto.DiaryAnalysisResponse, error) {
	uow := ds.uowFactory.NewUnitOfWork(ctx)
	analysis, err := uow.DiaryAnalysisRepository().FindLatestByUser(ctx, userId)
	if err != nil {
		return nil, apperror.Persistence("load diary analysis", err)
	}
	if analysis == nil {
		return nil, apperror.NotFound("no diary analysis yet")
	}
	return toDiaryAnalysisResponse(analysis), nil
}

func (ds *diaryService) invalidateReport(userId uuid.UUID) {
	if ds.reports != nil {
		ds.reports.Invalidate(userId)
	}
}

func toDiaryEntryResponse(e *entity.DiaryEntry) *dto.DiaryEntryResponse {
	return &dto.DiaryEntryResponse{
		Id:        e.Id,
		Content:   e.Content,
		Mood:      e.Mood,
		EntryDate: e.EntryDate.Format(dateutil.Layout),
		EditCount: e.EditCount,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func toDiaryAnalysisResponse(a *entity.DiaryAnalysis) *dto.DiaryAnalysisResponse {
	return &dto.DiaryAnalysisResponse{
		Id:         a.Id,
		Mode:       a.Mode,
		Provider:   a.Provider,
		RiskLevel:  a.RiskLevel,
		EntryCount: a.EntryCount,
		Result:     a.Result,
		CreatedAt:  a.CreatedAt,
	}
}
