package app

import (
	"fmt"
	"time"

	"tipjar_backend/database"
	"tipjar_backend/internal/config"
	"tipjar_backend/internal/email"
	"tipjar_backend/internal/handlers"
	"tipjar_backend/internal/logger"
	"tipjar_backend/internal/middleware"
	"tipjar_backend/internal/routes"
	"tipjar_backend/internal/services"
	"tipjar_backend/internal/validator"

	_ "tipjar_backend/docs"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected", "driver", cfg.Database.Driver)

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the gin engine with the full middleware chain and all
// routes. Shared with tests, which pass a transaction-bound DB.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	appHandlers := initializeHandlers(cfg)

	ginRouter := gin.New()
	ginRouter.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.DBMiddleware(gormDB),
	)

	routes.RegisterRoutes(ginRouter, appHandlers)
	return ginRouter
}

func initializeHandlers(cfg *config.Config) *handlers.AppHandlers {
	v := validator.New()
	base := handlers.NewBaseHandler(v)

	var mailer email.Provider = email.NoopProvider{}
	if cfg.Email.SMTPHost != "" {
		mailer = email.NewSMTPProvider(email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		})
		logger.Info("SMTP mail provider configured", "host", cfg.Email.SMTPHost)
	}

	supportCfg := services.SupportConfig{
		Timeout:                  time.Duration(cfg.Support.TimeoutSeconds) * time.Second,
		AllowDuplicateMembership: cfg.Support.AllowDuplicateMembership,
		DefaultPlanName:          cfg.Support.DefaultPlanName,
		Currency:                 cfg.Support.Currency,
	}

	return &handlers.AppHandlers{
		AuthHandler:    handlers.NewAuthHandler(base),
		SupportHandler: handlers.NewSupportHandler(base, supportCfg, mailer),
		CreatorHandler: handlers.NewCreatorHandler(base),
	}
}
