package bootstrap

import (
	"context"
	"fmt"
	"time"

	"mindcare-be/internal/config"
	"mindcare-be/internal/controller"
	"mindcare-be/internal/pkg/logger"
	"mindcare-be/internal/pkg/serverutils"
	"mindcare-be/internal/pkg/sessionlock"
	"mindcare-be/internal/repository/memory"
	"mindcare-be/internal/repository/unitofwork"
	"mindcare-be/internal/service"
	"mindcare-be/pkg/analysis/analyzer"
	"mindcare-be/pkg/analysis/dispatcher"
	"mindcare-be/pkg/chat/orchestrator"
	"mindcare-be/pkg/events"
	"mindcare-be/pkg/llm/factory"

	pktNats "mindcare-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const reportDurable = "mindcare-report-cache"

type Container struct {
	// Controllers
	ChatController    controller.IChatController
	DiaryController   controller.IDiaryController
	ReportController  controller.IReportController
	CheckInController controller.ICheckInController
	HealthController  controller.IHealthController

	// Background Services (Exposed for main.go to run)
	EventRelayService service.IEventRelayService

	Logger logger.ILogger

	closers []func()
}

// NewContainer wires every dependency. A nil db selects the in-memory
// store; Redis and NATS are optional and degrade to in-process fallbacks.
func NewContainer(ctx context.Context, cfg *config.Config, db *gorm.DB, sysLogger logger.ILogger) (*Container, error) {
	c := &Container{Logger: sysLogger}

	// 1. Core Facades
	var uowFactory unitofwork.RepositoryFactory
	if db != nil {
		uowFactory = unitofwork.NewRepositoryFactory(db)
	} else {
		sysLogger.Warn("BOOTSTRAP", "No database configured, using in-memory store", nil)
		uowFactory = memory.NewStore()
	}

	if cfg.App.JwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	auth := serverutils.NewJwtMiddleware(cfg.App.JwtSecret)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })
	publisherService := service.NewPublisherService(cfg.App.EventTopic, pubSub)

	// 3. Infrastructure
	guard := newSessionGuard(ctx, cfg, sysLogger, c)

	var natsPub *pktNats.Publisher
	var natsSub *pktNats.Subscriber
	if cfg.App.NatsURL != "" {
		var err error
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "Failed to connect NATS publisher, events stay in-process", map[string]interface{}{"error": err.Error()})
			natsPub = nil
		} else {
			c.closers = append(c.closers, natsPub.Close)
		}
		natsSub, err = pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "Failed to connect NATS subscriber", map[string]interface{}{"error": err.Error()})
			natsSub = nil
		} else {
			c.closers = append(c.closers, natsSub.Close)
		}
	}

	var sink service.EventSink
	if natsPub != nil {
		sink = natsPub
	}
	c.EventRelayService = service.NewEventRelayService(pubSub, cfg.App.EventTopic, sink, sysLogger)

	// 4. Engine components
	registry, err := factory.NewRegistry(ctx, cfg, sysLogger)
	if err != nil {
		return nil, err
	}
	orch := orchestrator.New(uowFactory, registry, sysLogger)

	analyzerLogger := logger.NewIsolatedLogger(cfg.App.AnalyzerLogPath)
	diaryAnalyzer, err := analyzer.NewProcessAnalyzer(cfg.Analyzer.Command, cfg.Analyzer.WorkDir, analyzerLogger)
	if err != nil {
		return nil, err
	}
	analysisDispatcher := dispatcher.New(uowFactory, diaryAnalyzer, sysLogger)

	// 5. Services
	reportService := service.NewReportService(uowFactory, cfg.App.ReportCacheTTL, sysLogger)
	chatService := service.NewChatService(uowFactory, orch, guard, publisherService, sysLogger, cfg.App.RequestTimeout)
	diaryService := service.NewDiaryService(uowFactory, analysisDispatcher, publisherService, reportService, sysLogger, cfg.App.RequestTimeout)

	if natsSub != nil {
		if err := natsSub.Subscribe(events.SignalsUpdated, reportDurable, reportService.HandleSignalsUpdated); err != nil {
			sysLogger.Warn("BOOTSTRAP", "Failed to subscribe to signal updates, reports refresh on TTL only", map[string]interface{}{"error": err.Error()})
		}
	}

	// 6. Controllers
	c.ChatController = controller.NewChatController(chatService, auth)
	c.DiaryController = controller.NewDiaryController(diaryService, auth)
	c.ReportController = controller.NewReportController(reportService, auth)
	c.CheckInController = controller.NewCheckInController(service.NewCheckInService(uowFactory, sysLogger), auth)
	c.HealthController = controller.NewHealthController(service.NewHealthService(sysLogger), auth)

	return c, nil
}

func newSessionGuard(ctx context.Context, cfg *config.Config, log logger.ILogger, c *Container) sessionlock.Guard {
	if cfg.App.RedisURL == "" {
		return sessionlock.NewMemoryGuard(cfg.App.SessionLockTTL)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Warn("BOOTSTRAP", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Warn("BOOTSTRAP", "Redis unreachable, session locks are process-local", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
		return sessionlock.NewMemoryGuard(cfg.App.SessionLockTTL)
	}

	c.closers = append(c.closers, func() { _ = rdb.Close() })
	return sessionlock.NewRedisGuard(rdb, cfg.App.SessionLockTTL)
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
