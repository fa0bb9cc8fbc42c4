package app

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/agilityengineers/SmartScheduler-sub007/internal/api"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/auth"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/availability"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/bookinglink"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/busy"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/config"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/event"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/integration"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/owner"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/reminder"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/reservation"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/routing"
)

// busySyncHorizon is how far ahead calendar snapshots reach. Slots past
// this horizon simply see no integration busy time.
const busySyncHorizon = 60 * 24 * time.Hour

// Container holds the initialized components needed by main.
type Container struct {
	Router     *gin.Engine
	Syncer     *integration.Syncer
	Dispatcher reminder.Dispatcher
}

// NewContainer initializes all modules and wires them together.
func NewContainer(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) *Container {
	passwordHasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTokenTTL)

	// Repositories
	ownerRepo := owner.NewPgxRepository(pool)
	eventRepo := event.NewPgxRepository(pool)
	linkRepo := bookinglink.NewPgxRepository(pool)
	routingRepo := routing.NewPgxRepository(pool)
	integrationRepo := integration.NewPgxRepository(pool)

	// Busy aggregation over local events plus integration snapshots
	aggregator := busy.NewAggregator(eventRepo, integrationRepo, cfg.IntegrationStaleness)

	// Slot cache
	var slotCache availability.Cache
	switch cfg.CacheDriver {
	case config.CacheDriverRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		slotCache = availability.NewRedisCache(client, cfg.CacheTTL)
	case config.CacheDriverLRU:
		slotCache = availability.NewLRUCache(cfg.CacheSlotsSize, cfg.CacheTTL)
	default:
		slotCache = availability.NewNoopCache()
	}

	// Reminder dispatch
	var dispatcher reminder.Dispatcher
	if len(cfg.KafkaBrokers) > 0 {
		dispatcher = reminder.NewKafkaDispatcher(cfg.KafkaBrokers, cfg.KafkaReminderTopic, logger)
	} else {
		dispatcher = reminder.NoopDispatcher{}
	}

	// Services
	linkService := bookinglink.NewService(linkRepo)
	availabilityService := availability.NewService(linkService, ownerRepo, aggregator, slotCache, logger)
	ownerService := owner.NewService(ownerRepo, passwordHasher, availabilityService)
	eventService := event.NewService(eventRepo, availabilityService, dispatcher, logger)
	reservationService := reservation.NewService(linkService, ownerRepo, availabilityService, aggregator, eventRepo, dispatcher, logger)
	routingService := routing.NewService(routingRepo)

	// Calendar sync
	googleFetcher := integration.NewGoogleFetcher(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	syncer := integration.NewSyncer(
		integrationRepo,
		map[integration.Provider]integration.BusyFetcher{integration.ProviderGoogle: googleFetcher},
		availabilityService,
		cfg.CalendarSyncInterval,
		busySyncHorizon,
		logger,
	)
	integrationService := integration.NewService(integrationRepo, googleFetcher, syncer)

	router := api.NewRouter(api.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         splitOrigins(cfg.ProdOrigins),
		OwnerService:        ownerService,
		EventService:        eventService,
		LinkService:         linkService,
		AvailabilityService: availabilityService,
		ReservationService:  reservationService,
		RoutingService:      routingService,
		IntegrationService:  integrationService,
		JWTManager:          jwtManager,
	})

	return &Container{
		Router:     router,
		Syncer:     syncer,
		Dispatcher: dispatcher,
	}
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
