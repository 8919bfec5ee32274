package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alexanderramin/horizon/internal/cli"
	"github.com/alexanderramin/horizon/internal/config"
	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/repository"
	"github.com/alexanderramin/horizon/internal/service"
	"github.com/alexanderramin/horizon/internal/store"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Plain output when piped.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	if cfg.LogEnabled {
		level.Set(slog.LevelInfo)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	fresh := false
	if cfg.DBPath != db.MemoryPath {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
		_, statErr := os.Stat(cfg.DBPath)
		fresh = errors.Is(statErr, os.ErrNotExist)
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	milestoneRepo := repository.NewSQLiteMilestoneRepo(database)
	parentRepo := repository.NewSQLiteParentMilestoneRepo(database)
	profileRepo := repository.NewSQLiteProfileRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	observer := service.NewSlogUseCaseObserver(logger)
	profileSvc := service.NewProfileService(profileRepo)

	if fresh {
		seed := domain.DefaultProfile()
		seed.InflationRate = cfg.InflationRate
		if err := profileSvc.Update(context.Background(), seed); err != nil {
			return fmt.Errorf("seeding profile: %w", err)
		}
	}

	settings := service.ValuationSettings{
		Perpetuity:  cfg.Perpetuity,
		MaxAge:      float64(cfg.MaxAge),
		Width:       float64(cfg.TimelineWidth),
		SlotSpacing: float64(cfg.SlotSpacing),
		LoadTimeout: time.Duration(cfg.LoadTimeoutMs) * time.Millisecond,
	}
	if cfg.InflationRateSet && !fresh {
		rate := cfg.InflationRate
		settings.InflationRate = &rate
		logger.Info("inflation rate overrides stored profile", "inflation_rate", rate)
	}
	source := &repository.SnapshotSource{Milestones: milestoneRepo, Parents: parentRepo, Profile: profileRepo}

	app := &cli.App{
		Milestones: service.NewMilestoneService(milestoneRepo, parentRepo),
		Parents:    service.NewParentService(parentRepo),
		Profile:    profileSvc,
		Import:     service.NewImportService(milestoneRepo, parentRepo, profileRepo, uow, observer),
		Valuation:  service.NewValuationService(store.New(store.WithLogger(logger)), source, settings, logger, observer),
		LogLevel:   level,
	}

	return cli.NewRootCmd(app).Execute()
}
