package main

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"

	_ "github.com/campusbridge/portal-api/api/swagger"
	"github.com/campusbridge/portal-api/internal/handler"
	"github.com/campusbridge/portal-api/internal/repository"
	"github.com/campusbridge/portal-api/internal/router"
	"github.com/campusbridge/portal-api/internal/service"
	"github.com/campusbridge/portal-api/internal/syllabus"
	"github.com/campusbridge/portal-api/internal/upstream"
	"github.com/campusbridge/portal-api/pkg/cache"
	"github.com/campusbridge/portal-api/pkg/config"
	"github.com/campusbridge/portal-api/pkg/logger"
)

// @title CampusBridge Portal API
// @version 0.1.0
// @description Backend-for-frontend gateway for the CampusBridge education portal
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

	metricsService := service.NewMetricsService()

	// Redis is optional: without it the gateway still serves every route,
	// just without response caching.
	var cacheService *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheService = service.NewCacheService(cacheRepo, metricsService, cfg.Cache.PendingTTL, logr, true)
		}
	}

	validate := validator.New()
	upstreamClient := upstream.NewClient(cfg.Upstream, logr, metricsService)

	authService := service.NewAuthService(cfg.JWT, logr)
	approvalService := service.NewApprovalService(upstreamClient, cacheService, validate, logr, service.ApprovalServiceConfig{
		PendingTTL: cfg.Cache.PendingTTL,
	})
	examService := service.NewExamService(upstreamClient, cacheService, logr, service.ExamServiceConfig{
		MaxFileSizeBytes:  cfg.Exam.MaxFileSizeBytes,
		AllowedExtensions: cfg.Exam.AllowedExtensions,
		TickInterval:      cfg.Exam.TickInterval,
	})
	dashboardService := service.NewDashboardService(upstreamClient, cacheService, logr, service.DashboardServiceConfig{
		CacheTTL: cfg.Cache.DashboardTTL,
	})

	catalog := syllabus.Default()

	var exportService *service.ExportService
	if cfg.Exports.Enabled {
		exportService = service.NewExportService(catalog, logr)
	}

	handlers := &router.Handlers{
		Approvals: handler.NewApprovalHandler(approvalService),
		Exams:     handler.NewExamHandler(examService),
		Syllabus:  handler.NewSyllabusHandler(catalog, exportService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	if cfg.AI.Enabled {
		aiService := service.NewAIService(upstreamClient, logr, service.AIServiceConfig{
			CompletionPath: cfg.AI.CompletionPath,
			ResourceCount:  cfg.AI.ResourceCount,
		})
		handlers.AI = handler.NewAIHandler(aiService, validate)
	}

	r := router.Setup(cfg, logr, authService, metricsService, handlers)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "upstream", cfg.Upstream.BaseURL)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
