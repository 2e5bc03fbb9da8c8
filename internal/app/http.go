package app

import (
	"context"
	"time"

	"github.com/tristanguckenberger/srcdoc-server/internal/auth"
	"github.com/tristanguckenberger/srcdoc-server/internal/config"
	"github.com/tristanguckenberger/srcdoc-server/internal/feed"
	"github.com/tristanguckenberger/srcdoc-server/internal/live"
	"github.com/tristanguckenberger/srcdoc-server/internal/middleware"
	"github.com/tristanguckenberger/srcdoc-server/internal/notify"
	"github.com/tristanguckenberger/srcdoc-server/internal/playsession"
	"github.com/tristanguckenberger/srcdoc-server/internal/social"

	"github.com/gin-gonic/gin"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	tokenStore := auth.NewRedisStore(infra.Redis.Client)
	authMiddleware := middleware.NewAuthMiddleware(tokenStore)

	registry := live.NewRegistry()
	liveHandler := live.NewHandler(registry)

	notifyStore := notify.NewPGStore(infra.DB)
	dispatcher := notify.NewDispatcher(notifyStore, registry)
	notifyHandler := notify.NewHandler(notifyStore)

	sessionStore := playsession.NewPGStore(infra.DB)
	tracker := playsession.NewTracker(sessionStore, cfg.SynthesizeStopOnFinalize)
	sessionHandler := playsession.NewHandler(tracker, sessionStore)

	feedSource := feed.NewPGSource(infra.DB)
	aggregator := feed.NewAggregator(
		feedSource,
		time.Duration(cfg.FeedWindowDays)*24*time.Hour,
		cfg.FeedPageSize,
	)
	feedHandler := feed.NewHandler(aggregator, cfg.FeedCacheTTL)

	socialStore := social.NewPGStore(infra.DB)
	socialHandler := social.NewHandler(socialStore, dispatcher)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	// ----------------------------
	// Public Routes
	// ----------------------------

	liveHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ----------------------------
	// API Routes
	// ----------------------------

	optional := router.Group("/api")
	optional.Use(authMiddleware.OptionalAuth())

	protected := router.Group("/api")
	protected.Use(authMiddleware.RequireAuth())

	sessionHandler.RegisterRoutes(optional, protected)
	socialHandler.RegisterRoutes(optional, protected)
	notifyHandler.RegisterRoutes(protected)

	feedGroup := router.Group("/feed")
	feedGroup.Use(authMiddleware.RequireAuth())
	feedHandler.RegisterRoutes(feedGroup)

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		feedHandler.Close()
		return infra.DB.Close()
	}, nil
}
