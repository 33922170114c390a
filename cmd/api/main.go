package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/myrroearl/atam-sub002/api/swagger"
	"github.com/myrroearl/atam-sub002/internal/classroom"
	"github.com/myrroearl/atam-sub002/internal/handler"
	"github.com/myrroearl/atam-sub002/internal/middleware"
	"github.com/myrroearl/atam-sub002/internal/models"
	"github.com/myrroearl/atam-sub002/internal/repository"
	"github.com/myrroearl/atam-sub002/internal/service"
	"github.com/myrroearl/atam-sub002/pkg/cache"
	"github.com/myrroearl/atam-sub002/pkg/config"
	"github.com/myrroearl/atam-sub002/pkg/database"
	"github.com/myrroearl/atam-sub002/pkg/logger"
	corsmiddleware "github.com/myrroearl/atam-sub002/pkg/middleware/cors"
	reqidmiddleware "github.com/myrroearl/atam-sub002/pkg/middleware/requestid"
	"github.com/myrroearl/atam-sub002/pkg/response"
)

// @title ATAM Academic Sync API
// @version 1.0.0
// @description Classroom score reconciliation and student performance analytics
// @BasePath /api/v1
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
		logr.Sugar().Fatalw("database connection failed", "error", err)
	}
	defer db.Close()

	// Redis is optional: without it performance summaries are computed on
	// every read.
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	studentRepo := repository.NewStudentRepository(db)
	entryRepo := repository.NewGradeEntryRepository(db)
	finalRepo := repository.NewFinalGradeRepository(db)
	resourceRepo := repository.NewResourceRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close()

	metricsService := service.NewMetricsService()
	authService := service.NewAuthService(cfg.JWT, logr)
	classroomClient := classroom.NewClient(cfg.Classroom, logr)
	importService := service.NewImportService(studentRepo, entryRepo, classroomClient, cacheRepo, metricsService, cfg.Import, logr)
	performanceService := service.NewPerformanceService(entryRepo, finalRepo, cacheRepo, metricsService, cfg.Performance, logr)
	exportService := service.NewExportService(performanceService, nil, nil, logr)
	resourceService := service.NewResourceService(resourceRepo, cfg.Resources, logr)

	importHandler := handler.NewImportHandler(importService)
	performanceHandler := handler.NewPerformanceHandler(performanceService)
	exportHandler := handler.NewExportHandler(exportService)
	resourceHandler := handler.NewResourceHandler(resourceService)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsService.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(authService))
	{
		api.POST("/classroom/sync-scores", middleware.RequireRoles(models.RoleProfessor, models.RoleAdmin), importHandler.SyncScores)
		api.GET("/students/:id/performance", middleware.RBAC(string(models.RoleAdmin), string(models.RoleProfessor), "SELF"), performanceHandler.Get)
		api.GET("/students/:id/performance/export", middleware.RBAC(string(models.RoleAdmin), string(models.RoleProfessor), "SELF"), exportHandler.Export)
		api.POST("/resources/harvest", middleware.RequireRoles(models.RoleAdmin), resourceHandler.Harvest)
		api.GET("/system/metrics", middleware.RequireRoles(models.RoleAdmin), func(c *gin.Context) {
			response.JSON(c, http.StatusOK, metricsService.Snapshot(), nil)
		})
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
