package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	appRedis "github.com/edushare/edushare-backend/internal/clients/redis"
	"github.com/edushare/edushare-backend/internal/data/db"
	"github.com/edushare/edushare-backend/internal/platform/logger"
	"github.com/edushare/edushare-backend/internal/platform/names"
	"github.com/edushare/edushare-backend/internal/platform/observability"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services

	redis        *goredis.Client
	otelShutdown func(context.Context) error
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	if err := db.SeedReferenceData(theDB); err != nil {
		log.Sync()
		return nil, fmt.Errorf("seed reference data: %w", err)
	}

	// Redis is an optional accelerator; the resolver degrades to plain
	// repo lookups without it.
	var rdb *goredis.Client
	if cfg.RedisAddr != "" {
		rdb, err = appRedis.NewClient(log, cfg.RedisAddr)
		if err != nil {
			log.Warn("Redis unavailable, display name cache disabled", "error", err)
			rdb = nil
		}
	}

	reposet := wireRepos(theDB, log)

	resolver := names.NewRepoResolver(reposet.User, log, cfg.NameBatchMax)
	resolver = names.NewCachedResolver(resolver, rdb, cfg.NameCacheTTL, log)

	serviceset := wireServices(theDB, log, cfg, reposet, resolver)
	handlerset := wireHandlers(log, serviceset)
	middleware := wireMiddleware(log, cfg)
	router := wireRouter(log, cfg, handlerset, middleware)

	return &App{
		Log:          log,
		DB:           theDB,
		Router:       router,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		redis:        rdb,
		otelShutdown: otelShutdown,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(":" + a.Cfg.Port)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.Log.Warn("Redis close failed", "error", err)
		}
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(context.Background()); err != nil {
			a.Log.Warn("OTel shutdown failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
