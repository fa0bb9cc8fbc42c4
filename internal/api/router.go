package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/agilityengineers/SmartScheduler-sub007/internal/auth"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/availability"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/bookinglink"
	linkHttp "github.com/agilityengineers/SmartScheduler-sub007/internal/bookinglink/http"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/event"
	eventHttp "github.com/agilityengineers/SmartScheduler-sub007/internal/event/http"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/integration"
	integrationHttp "github.com/agilityengineers/SmartScheduler-sub007/internal/integration/http"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/owner"
	ownerHttp "github.com/agilityengineers/SmartScheduler-sub007/internal/owner/http"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/reservation"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/routing"
	routingHttp "github.com/agilityengineers/SmartScheduler-sub007/internal/routing/http"
)

// Config carries everything the router needs to assemble middleware
// and register module routes.
type Config struct {
	IsProduction bool
	ProdOrigins  []string

	OwnerService        owner.Service
	EventService        event.Service
	LinkService         bookinglink.Service
	AvailabilityService availability.Service
	ReservationService  reservation.Service
	RoutingService      routing.Service
	IntegrationService  integration.Service
	JWTManager          *auth.JWTManager
}

// NewRouter initializes the HTTP router engine. It assembles global
// middleware (CORS, Logger, Recovery) and registers routes for each
// module under /v1.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = cfg.ProdOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)

	ownerHandler := ownerHttp.NewHandler(cfg.OwnerService, cfg.JWTManager)
	eventHandler := eventHttp.NewHandler(cfg.EventService)
	linkHandler := linkHttp.NewHandler(cfg.LinkService, cfg.AvailabilityService, cfg.ReservationService)
	routingHandler := routingHttp.NewHandler(cfg.RoutingService)
	integrationHandler := integrationHttp.NewHandler(cfg.IntegrationService)

	v1 := r.Group("/v1")
	{
		ownerHttp.RegisterRoutes(v1, ownerHandler, authMiddleware)
		eventHttp.RegisterRoutes(v1, eventHandler, authMiddleware)
		linkHttp.RegisterRoutes(v1, linkHandler, authMiddleware)
		routingHttp.RegisterRoutes(v1, routingHandler, authMiddleware)
		integrationHttp.RegisterRoutes(v1, integrationHandler, authMiddleware)
	}

	return r
}
