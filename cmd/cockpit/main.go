package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bdf/cockpit/internal/config"
	"github.com/bdf/cockpit/internal/database"
	"github.com/bdf/cockpit/internal/database/repository"
	"github.com/bdf/cockpit/internal/engine"
	"github.com/bdf/cockpit/internal/logging"
	"github.com/bdf/cockpit/internal/service"
	"github.com/bdf/cockpit/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	logger, closeLog, err := logging.Open(cfg.Database.LogPath)
	if err != nil {
		log.Fatalf("log: %v", err)
	}
	defer closeLog()

	if err := database.RunMigrations(cfg.Database.Path, cfg.Database.MigrationsPath); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.SeedDefaults(ctx, db); err != nil {
		log.Fatalf("seed defaults: %v", err)
	}

	themes, err := config.LoadThemes()
	if err != nil {
		logger.Warn("themes fell back to defaults", "error", err)
	}

	// repositories
	orderRepo := repository.NewOrderRepo(db)
	courierRepo := repository.NewCourierRepo(db)
	hoodRepo := repository.NewNeighborhoodRepo(db)
	activityRepo := repository.NewActivityRepo(db)

	activity := &service.ActivityLogger{Repo: activityRepo, Log: logger}
	registration := &service.RegistrationService{Orders: orderRepo, Neighborhoods: hoodRepo, Activity: activity}

	eng := engine.New(
		&database.Store{Orders: orderRepo, Couriers: courierRepo},
		activity,
		engine.Options{
			LateAfter: time.Duration(cfg.Alerts.LateAfterMinutes) * time.Minute,
			Operator:  cfg.UI.Operator,
		},
	)

	logger.Info("cockpit starting", "db", cfg.Database.Path, "operator", cfg.UI.Operator)

	p := tea.NewProgram(tui.New(ctx, eng,
		tui.Repos{Couriers: courierRepo, Neighborhoods: hoodRepo},
		tui.Services{Registration: registration},
		cfg, themes, logger,
	), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
