package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/selene/internal/api"
	"github.com/terraincognita07/selene/internal/config"
	"github.com/terraincognita07/selene/internal/db"
	"github.com/terraincognita07/selene/internal/logging"
	"github.com/terraincognita07/selene/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("info", "development").Fatalf("config load failed: %v", err)
	}

	log := logging.New(cfg.LogLevel, cfg.Environment)

	location := mustLoadLocation(cfg.TZ, log)
	time.Local = location

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	stores := db.NewStores(database)

	repository := services.NewCycleRepository(stores.Profiles)
	synchronizer := services.NewCalendarSynchronizer(stores.Calendar, log)
	cycles := services.NewCycleService(repository, synchronizer, log)

	handler := api.NewHandler(cycles, cfg.SecretKey, log)

	app := fiber.New(fiber.Config{
		AppName:               "Selene",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	api.RegisterRoutes(app, handler)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()

	resync := services.NewResyncScheduler(cycles, repository, cfg.ResyncSchedule, log)
	if err := resync.Start(lifecycleCtx); err != nil {
		log.Fatalf("resync scheduler init failed: %v", err)
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Errorf("server shutdown failed: %v", err)
		}
	}()

	log.Infof("Selene listening on http://0.0.0.0:%s (db: %s, tz: %s)", cfg.Port, cfg.DBPath, location.String())
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func mustLoadLocation(name string, log *logrus.Logger) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Warnf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}
