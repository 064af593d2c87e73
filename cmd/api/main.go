package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/ahaan1984/dee-portal-backend/api/swagger"
	"github.com/ahaan1984/dee-portal-backend/internal/district"
	"github.com/ahaan1984/dee-portal-backend/internal/empid"
	"github.com/ahaan1984/dee-portal-backend/internal/handler"
	"github.com/ahaan1984/dee-portal-backend/internal/middleware"
	"github.com/ahaan1984/dee-portal-backend/internal/repository"
	"github.com/ahaan1984/dee-portal-backend/internal/service"
	"github.com/ahaan1984/dee-portal-backend/pkg/cache"
	"github.com/ahaan1984/dee-portal-backend/pkg/config"
	"github.com/ahaan1984/dee-portal-backend/pkg/database"
	"github.com/ahaan1984/dee-portal-backend/pkg/export"
	"github.com/ahaan1984/dee-portal-backend/pkg/logger"
	corsmiddleware "github.com/ahaan1984/dee-portal-backend/pkg/middleware/cors"
	reqidmiddleware "github.com/ahaan1984/dee-portal-backend/pkg/middleware/requestid"
)

// @title DEE Portal API
// @version 1.0.0
// @description Employee roster and records management for the Directorate of Elementary Education
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, report caching disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()
	registry := district.Default()

	employeeRepo := repository.NewEmployeeRepository(db)
	userRepo := repository.NewUserRepository(db)
	changeRepo := repository.NewPendingChangeRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      cfg.JWT.Issuer,
	})
	employeeSvc := service.NewEmployeeService(employeeRepo, registry, cacheRepo, validate, logr)
	changeSvc := service.NewPendingChangeService(changeRepo, cacheRepo, logr)
	reportSvc := service.NewReportService(employeeRepo, cacheRepo, export.NewCSVExporter(), export.NewPDFExporter(), cfg.Reports.CacheTTL, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	employeeHandler := handler.NewEmployeeHandler(employeeSvc)
	changeHandler := handler.NewPendingChangeHandler(changeSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	districtHandler := handler.NewDistrictHandler(registry)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(503, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(200, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/reset-password", authHandler.ResetPassword)
		auth.GET("/password-status", authHandler.PasswordStatus)
	}

	authed := api.Group("")
	authed.Use(middleware.JWT(authSvc))

	authed.GET("/districts", middleware.AnyRole(), districtHandler.List)

	employees := authed.Group("/employees")
	{
		employees.GET("", middleware.AnyRole(), employeeHandler.List)
		employees.GET("/:id", middleware.AnyRole(), employeeHandler.Get)
		employees.POST("", middleware.RequireRoles(empid.RoleSuperAdmin, empid.RoleAdmin, empid.RoleDistrictAdmin), employeeHandler.Create)
		employees.DELETE("/:id", middleware.RequireRoles(empid.RoleSuperAdmin), employeeHandler.Delete)
	}

	changes := authed.Group("/changes")
	{
		changes.GET("", middleware.AnyRole(), changeHandler.List)
		changes.GET("/:id", middleware.AnyRole(), changeHandler.Get)
		changes.POST("", middleware.RequireRoles(empid.RoleSuperAdmin, empid.RoleAdmin, empid.RoleDistrictAdmin), changeHandler.Create)
		changes.POST("/:id/approve", middleware.RequireRoles(empid.RoleSuperAdmin), changeHandler.Approve)
		changes.POST("/:id/reject", middleware.RequireRoles(empid.RoleSuperAdmin), changeHandler.Reject)
	}

	reports := authed.Group("/reports")
	{
		reports.GET("/employees", middleware.AnyRole(), reportHandler.Employees)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
