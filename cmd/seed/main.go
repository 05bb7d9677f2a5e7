// Command seed fills the lessons database from a YAML fixture file.
//
// Usage:
//
//	seed [-reset] [-file fixtures/lessons.yaml]
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/kymyz/lessons/internal/config"
	"github.com/kymyz/lessons/internal/database"
	"github.com/kymyz/lessons/internal/fixtures"
	"github.com/kymyz/lessons/internal/logger"
	"github.com/kymyz/lessons/internal/models"
	"github.com/kymyz/lessons/internal/repositories"
	"github.com/kymyz/lessons/internal/services"
	"go.uber.org/zap"
)

func main() {
	file := flag.String("file", "fixtures/lessons.yaml", "path to the YAML fixture file")
	reset := flag.Bool("reset", false, "delete all existing lessons before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	fixture, err := fixtures.LoadFile(*file)
	if err != nil {
		logger.Logger.Fatal("Failed to load fixture", zap.String("file", *file), zap.Error(err))
	}

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	adminRepo := repositories.NewAdminLessonRepository(db, logger.Logger)
	adminService := services.NewAdminLessonService(adminRepo, logger.Logger)

	if _, err := fixtures.Apply(ctx, adminService, fixture, *reset, logger.Logger); err != nil {
		if errors.Is(err, models.ErrValidation) {
			logger.Logger.Error("Fixture is invalid", zap.Error(err))
		} else {
			logger.Logger.Error("Failed to seed lessons", zap.Error(err))
		}
		logger.Sync()
		os.Exit(1)
	}
}
