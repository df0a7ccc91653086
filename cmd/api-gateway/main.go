package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/sis-portal-api/api/swagger"
	"github.com/noah-isme/sis-portal-api/internal/handler"
	internalmiddleware "github.com/noah-isme/sis-portal-api/internal/middleware"
	"github.com/noah-isme/sis-portal-api/internal/models"
	"github.com/noah-isme/sis-portal-api/internal/repository"
	"github.com/noah-isme/sis-portal-api/internal/service"
	"github.com/noah-isme/sis-portal-api/pkg/cache"
	"github.com/noah-isme/sis-portal-api/pkg/config"
	"github.com/noah-isme/sis-portal-api/pkg/database"
	"github.com/noah-isme/sis-portal-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/sis-portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sis-portal-api/pkg/middleware/requestid"
	"github.com/noah-isme/sis-portal-api/pkg/storage"
)

// @title SIS Student Portal API
// @version 1.0.0
// @description Student portal: enrollment eligibility, enrollment requests, grades, schedule and admission requirements
// @BasePath /api/v1
// @schemes http https

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		redisClient = nil
	}
	cacheRepo := repository.NewCacheRepository(redisClient)
	defer cacheRepo.Close() //nolint:errcheck

	documents, err := storage.NewLocalStorage(cfg.Documents.StorageDir)
	if err != nil {
		logr.Fatal("failed to prepare document storage", zap.Error(err))
	}

	location := cfg.Enrollment.Location()
	validate := validator.New()
	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, cfg.Dashboard.CacheEnabled && redisClient != nil)

	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	periodRepo := repository.NewEnrollmentPeriodRepository(db)
	requestRepo := repository.NewEnrollmentRequestRepository(db)
	gradeRepo := repository.NewGradeRepository(db)
	holdRepo := repository.NewHoldRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	requirementRepo := repository.NewRequirementRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	eligibilitySvc := service.NewEligibilityService(service.EligibilityServiceParams{
		Students: studentRepo,
		Periods:  periodRepo,
		Requests: requestRepo,
		Grades:   gradeRepo,
		Holds:    holdRepo,
		Metrics:  metricsSvc,
		Logger:   logr,
		Location: location,
	})
	requestSvc := service.NewEnrollmentRequestService(eligibilitySvc, requestRepo, cacheSvc, metricsSvc, logr)
	studentSvc := service.NewStudentService(studentRepo, scheduleRepo, location)
	gradeSvc := service.NewGradeService(gradeRepo, studentRepo, logr, location)
	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{
		Students:    studentRepo,
		GPAs:        gradeRepo,
		Requests:    requestRepo,
		Eligibility: eligibilitySvc,
		Cache:       cacheSvc,
		Logger:      logr,
		CacheTTL:    cfg.Dashboard.CacheTTL,
		Location:    location,
	})
	requirementSvc := service.NewRequirementService(
		requirementRepo,
		documents,
		storage.NewSignedURLSigner(cfg.Documents.SignedURLSecret, cfg.Documents.SignedURLTTL),
		logr,
		service.RequirementServiceConfig{
			MaxFileSize:  cfg.Documents.MaxFileSizeBytes,
			AllowedMIMEs: cfg.Documents.AllowedMIMEs,
			DownloadPath: cfg.APIPrefix + "/documents/download",
		},
	)

	authHandler := handler.NewAuthHandler(authSvc)
	eligibilityHandler := handler.NewEligibilityHandler(eligibilitySvc)
	requestHandler := handler.NewEnrollmentRequestHandler(requestSvc)
	studentHandler := handler.NewStudentHandler(studentSvc)
	gradeHandler := handler.NewGradeHandler(gradeSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	requirementHandler := handler.NewRequirementHandler(requirementSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc.Handler(), db)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))
	r.Use(internalmiddleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/documents/download", requirementHandler.Download)

	secured := api.Group("")
	secured.Use(internalmiddleware.JWT(authSvc))
	secured.GET("/auth/me", authHandler.Me)
	secured.GET("/eligibility", eligibilityHandler.Check)
	secured.GET("/enrollment-requests", requestHandler.List)
	secured.GET("/grades", gradeHandler.List)
	secured.GET("/grades/export", gradeHandler.Export)

	students := secured.Group("")
	students.Use(internalmiddleware.RequireRoles(models.RoleStudent))
	students.POST("/enrollment-requests", requestHandler.Submit)
	students.GET("/students/me", studentHandler.Me)
	students.GET("/students/me/schedule", studentHandler.Schedule)
	students.GET("/dashboard", dashboardHandler.Student)
	students.GET("/requirements", requirementHandler.List)
	students.POST("/requirements/:id/document", requirementHandler.Upload)
	students.GET("/requirements/:id/document", requirementHandler.Link)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logr.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
