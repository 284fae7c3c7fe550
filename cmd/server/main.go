package main

import (
	"os"
	"syscall"

	"github.com/ministore-next/internal/app"
	"github.com/ministore-next/internal/config"
	"github.com/ministore-next/internal/logger"
	"github.com/ministore-next/internal/models"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("database init failed: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("database migration failed: %v", err)
	}

	// Demo shopper account so a fresh install is usable immediately.
	defaultEmail := os.Getenv("MS_DEFAULT_USER_EMAIL")
	defaultPass := os.Getenv("MS_DEFAULT_USER_PASSWORD")
	if cfg.Server.Mode == "release" && defaultPass == "" {
		stdLog.Printf("warning: MS_DEFAULT_USER_PASSWORD not set, skipping default user init")
	} else if err := models.InitDefaultUser(defaultEmail, defaultPass); err != nil {
		stdLog.Printf("warning: default user init failed: %v", err)
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}); err != nil {
		stdLog.Fatalf("server run failed: %v", err)
	}
}
