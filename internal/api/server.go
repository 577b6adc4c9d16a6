package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cinecatch/internal/cache"
	"cinecatch/internal/config"
	"cinecatch/internal/database"
	"cinecatch/internal/external"
	"cinecatch/internal/handlers"
	"cinecatch/internal/logger"
	"cinecatch/internal/messaging"
	"cinecatch/internal/middleware"
	"cinecatch/internal/repository"
	"cinecatch/internal/service"
)

// Server is the HTTP API process: database, optional broker and cache,
// push gateway client, and the gin router on top.
type Server struct {
	router      *gin.Engine
	config      *config.Config
	db          *database.DB
	nats        *messaging.NATSClient
	cacheClient *cache.Client
	services    *service.Services
	repos       *repository.Repositories
}

func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}

	if err := db.RunMigrations(); err != nil {
		logger.Fatal("failed to run migrations", "error", err)
	}

	// NATS is optional. Without a URL the API works the same; invalid-token
	// cleanup just runs in-process instead of through the consumer.
	var natsClient *messaging.NATSClient
	if cfg.NATS.URL != "" {
		natsClient, err = messaging.NewNATSClient(cfg.NATS)
		if err != nil {
			logger.Fatal("failed to connect to NATS", "error", err)
		}
	}

	var cacheClient *cache.Client
	if cfg.CacheEnabled {
		cacheClient, err = cache.New(cfg.Cache)
		if err != nil {
			logger.Get().Warn("cache unavailable, continuing without it", "error", err)
			cacheClient = nil
		}
	}

	pushClient := external.NewPushClient(cfg.Push)
	if !pushClient.Initialized() {
		logger.Get().Warn("push gateway not configured, fan-outs will be skipped")
	}

	repos := repository.NewRepositories(db)

	var publisher service.Publisher
	if natsClient != nil {
		publisher = natsClient
	}
	services := service.NewServices(repos, pushClient, publisher, cfg.Push.Timeout)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())

	server := &Server{
		router:      router,
		config:      cfg,
		db:          db,
		nats:        natsClient,
		cacheClient: cacheClient,
		services:    services,
		repos:       repos,
	}

	server.setupRoutes()

	return server
}

func (s *Server) setupRoutes() {
	h := handlers.NewHandlers(s.services, s.cacheClient)

	api := s.router.Group("/api")
	{
		// Public catalog endpoints
		events := api.Group("/events")
		{
			events.GET("", h.ListEvents)
			events.GET("/nearby", h.ListNearbyEvents)
			events.GET("/:eventId", h.GetEvent)
		}

		theaters := api.Group("/theaters")
		{
			theaters.GET("", h.ListTheaters)
			theaters.GET("/:theaterId", h.GetTheater)
			theaters.GET("/:theaterId/events", h.ListTheaterEvents)
		}

		// Member-scoped endpoints behind Basic Auth
		authed := api.Group("")
		authed.Use(middleware.BasicAuth(s.repos.Members, s.cacheClient))
		{
			authed.POST("/events/:eventId/favorite", h.AddFavorite)
			authed.DELETE("/events/:eventId/favorite", h.RemoveFavorite)

			subscriptions := authed.Group("/subscriptions")
			{
				subscriptions.POST("", h.CreateSubscription)
				subscriptions.GET("", h.ListSubscriptions)
				subscriptions.DELETE("/:theaterId", h.DeleteSubscription)
			}

			notifications := authed.Group("/notifications")
			{
				notifications.GET("", h.ListNotifications)
				notifications.GET("/unread-count", h.UnreadNotificationCount)
				notifications.PUT("/:notificationId/read", h.MarkNotificationRead)
			}

			members := authed.Group("/members/me")
			{
				members.GET("", h.GetMe)
				members.GET("/favorites", h.ListFavorites)
				members.PUT("/fcm-token", h.UpdateFcmToken)
				members.PUT("/notification-settings", h.UpdateNotificationSettings)
			}
		}

		// Trigger endpoints for the ingestion crawler
		internal := api.Group("/internal/notifications")
		{
			internal.POST("/event-update", h.NotifyEventUpdate)
			internal.POST("/status-change", h.NotifyStatusChange)
			internal.POST("/favorite-status-change", h.NotifyFavoriteStatusChange)
		}
	}

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (s *Server) healthCheck(c *gin.Context) {
	dbHealth := s.db.HealthCheck(c.Request.Context())

	status := http.StatusOK
	if dbHealth.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":   dbHealth.Status,
		"service":  "cinecatch-api",
		"database": dbHealth,
	})
}

func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	return s.router.Run(addr)
}

// GetRouter exposes the router for tests.
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			logger.Get().Error("error closing NATS connection", "error", err)
		}
	}

	if s.cacheClient != nil {
		if err := s.cacheClient.Close(); err != nil {
			logger.Get().Error("error closing cache connection", "error", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			logger.Get().Error("error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
