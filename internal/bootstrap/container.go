// FILE: internal/bootstrap/container.go
package bootstrap

import (
	"context"
	"log"

	"dms-backend/internal/config"
	"dms-backend/internal/controller"
	"dms-backend/internal/pkg/logger"
	"dms-backend/internal/pkg/mailer"
	"dms-backend/internal/repository/contract"
	"dms-backend/internal/repository/elastic"
	"dms-backend/internal/repository/memory"
	"dms-backend/internal/repository/rediscache"
	"dms-backend/internal/repository/unitofwork"
	"dms-backend/internal/service"
	"dms-backend/internal/websocket"
	pktNats "dms-backend/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController         controller.IAuthController
	DocumentController     controller.IDocumentController
	SearchController       controller.ISearchController
	SmartFolderController  controller.ISmartFolderController
	NotificationController controller.INotificationController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
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

	// 3. Search Infrastructure
	indexRepo := elastic.NewDocumentIndexRepository(cfg.Search.ElasticURL, cfg.Search.ElasticIndex)

	var evalCache contract.EvalCacheRepository
	if cfg.Cache.Backend == "redis" {
		evalCache = rediscache.NewEvalCacheRepository(rdb, cfg.Cache.TTL)
		log.Printf("[INFO] Using eval cache backend: REDIS")
	} else {
		evalCache = memory.NewEvalCacheRepository(cfg.Cache.TTL, cfg.Cache.PurgeInterval)
		log.Printf("[INFO] Using eval cache backend: MEMORY")
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 4. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Search.IndexTopic)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Search.IndexTopic,
		uowFactory,
		indexRepo,
	)

	authService := service.NewAuthService(uowFactory, emailService, natsPub, cfg.App.JwtSecret, cfg.App.JwtTTL)
	documentService := service.NewDocumentService(uowFactory, publisherService, natsPub)
	searchService := service.NewSearchService(indexRepo)
	smartFolderService := service.NewSmartFolderService(uowFactory, indexRepo, evalCache, natsPub, sysLogger)

	notifService := service.NewNotificationService(uowFactory, natsSub, wsHub, emailService, wsLogger)
	if natsSub != nil {
		go notifService.Start()
	}

	// 5. Controllers
	return &Container{
		AuthController:         controller.NewAuthController(authService),
		DocumentController:     controller.NewDocumentController(documentService),
		SearchController:       controller.NewSearchController(searchService),
		SmartFolderController:  controller.NewSmartFolderController(smartFolderService),
		NotificationController: controller.NewNotificationController(notifService, wsHub),

		ConsumerService: consumerService,
		WebSocketHub:    wsHub,
	}
}
