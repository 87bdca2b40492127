package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/escuela-adp/api-escuela/api/swagger"
	"github.com/escuela-adp/api-escuela/internal/handler"
	appmiddleware "github.com/escuela-adp/api-escuela/internal/middleware"
	"github.com/escuela-adp/api-escuela/internal/repository"
	"github.com/escuela-adp/api-escuela/internal/router"
	"github.com/escuela-adp/api-escuela/internal/service"
	"github.com/escuela-adp/api-escuela/pkg/cache"
	"github.com/escuela-adp/api-escuela/pkg/config"
	"github.com/escuela-adp/api-escuela/pkg/database"
	"github.com/escuela-adp/api-escuela/pkg/export"
	"github.com/escuela-adp/api-escuela/pkg/logger"
	corsmiddleware "github.com/escuela-adp/api-escuela/pkg/middleware/cors"
	reqidmiddleware "github.com/escuela-adp/api-escuela/pkg/middleware/requestid"
)

// @title API Escuela
// @version 1.0.0
// @description Billing and administration backend for a school
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		logr.Sugar().Fatalw("failed to ensure schema", "error", err)
	}
	cancel()

	cacheRepo := repository.NewCacheRepository(nil, logr)
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
			defer cacheRepo.Close()
		}
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	detailRepo := repository.NewUserDetailRepository(db)
	tarifaRepo := repository.NewTarifaRepository(db)
	cuotaRepo := repository.NewCuotaRepository(db)
	pagoRepo := repository.NewPagoRepository(db)
	notifRepo := repository.NewNotificacionRepository(db)

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, cfg.Cache.Enabled)
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Timezone:   cfg.JWT.Timezone,
	})
	userSvc := service.NewUserService(userRepo, detailRepo, validate, logr)
	detailSvc := service.NewUserDetailService(detailRepo, validate, logr)
	tarifaSvc := service.NewTarifaService(tarifaRepo, cacheSvc, validate, logr)
	cuotaSvc := service.NewCuotaService(cuotaRepo, tarifaRepo, validate, logr)
	pagoSvc := service.NewPagoService(pagoRepo, export.NewCSVExporter(), export.NewPDFExporter(), validate, logr)
	notifSvc := service.NewNotificacionService(notifRepo, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(appmiddleware.Metrics(metricsSvc))

	router.Register(r, authSvc, router.Handlers{
		Users:          handler.NewUserHandler(authSvc, userSvc),
		UserDetails:    handler.NewUserDetailHandler(detailSvc),
		Tarifas:        handler.NewTarifaHandler(tarifaSvc),
		Cuotas:         handler.NewCuotaHandler(cuotaSvc),
		Pagos:          handler.NewPagoHandler(pagoSvc),
		Notificaciones: handler.NewNotificacionHandler(notifSvc),
		Metrics:        handler.NewMetricsHandler(metricsSvc),
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
