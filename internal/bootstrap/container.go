package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/Initsogar/gutenberg/internal/config"
	"github.com/Initsogar/gutenberg/internal/controller"
	"github.com/Initsogar/gutenberg/internal/handler"
	"github.com/Initsogar/gutenberg/internal/pkg/logger"
	"github.com/Initsogar/gutenberg/internal/repository/unitofwork"
	"github.com/Initsogar/gutenberg/internal/service"
	"github.com/Initsogar/gutenberg/internal/websocket"
	"github.com/Initsogar/gutenberg/pkg/blocktree"
	pktNats "github.com/Initsogar/gutenberg/pkg/nats"
	"github.com/Initsogar/gutenberg/pkg/treecache"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	PatternController controller.IPatternController
	RenderController  controller.IRenderController

	// Background Services (Exposed for main.go to run)
	InvalidationService service.IInvalidationService

	// WebSockets
	EditorHandler *handler.EditorHandler
	WebSocketHub  *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/editor.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Domain Wiring
	treeStore := treecache.NewStore(
		uowFactory,
		rdb,
		time.Duration(cfg.Cache.PatternTreeTTLMinutes)*time.Minute,
		sysLogger,
	)
	classifier := blocktree.NewBindingClassifier()

	publisherService := service.NewPublisherService(cfg.Topics.InvalidatePatternTree, pubSub)
	invalidationService := service.NewInvalidationService(
		pubSub,
		cfg.Topics.InvalidatePatternTree,
		treeStore,
		wsHub,
	)

	patternService := service.NewPatternService(uowFactory, publisherService, natsPub, sysLogger)
	renderService := service.NewRenderService(treeStore, classifier)

	// 4. Controllers
	return &Container{
		PatternController: controller.NewPatternController(patternService),
		RenderController:  controller.NewRenderController(renderService),

		InvalidationService: invalidationService,

		EditorHandler: handler.NewEditorHandler(wsHub, wsLogger),
		WebSocketHub:  wsHub,
	}
}
