package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"insurance-server/cmd/config"
	"insurance-server/internal/infra/sql"
	"insurance-server/internal/insurance/persistence"
	"insurance-server/internal/insurance/seed"
	"insurance-server/internal/logger"

	"github.com/spf13/pflag"
)

const _dateLayout = "2006-01-02"

func main() {
	var (
		configName = pflag.String("config", "server", "config file name, without extension")
		configPath = pflag.StringSlice("config-path", []string{"config", "/config"}, "directories searched for the config file")
		driver     = pflag.String("driver", "", "database driver override (sqlite or postgres)")
		dsn        = pflag.String("dsn", "", "database dsn override")
		today      = pflag.String("today", "", "date used to bound date of birth fields, YYYY-MM-DD")
		logLevel   = pflag.String("log-level", "info", "log level")
	)
	pflag.Parse()

	logger.SetDefault(logger.NewLogger(*logLevel))
	defer logger.Sync()

	if err := run(*configName, *configPath, *driver, *dsn, *today); err != nil {
		logger.Error("seeding failed", "error", err)
		logger.Sync()
		os.Exit(1)
	}
}

func run(configName string, configPath []string, driver, dsn, today string) error {
	cfg, err := config.Load(configName, configPath...)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if driver != "" {
		cfg.Database.Driver = driver
	}
	if dsn != "" {
		cfg.Database.DSN = dsn
	}

	now := time.Now()
	if today != "" {
		now, err = time.Parse(_dateLayout, today)
		if err != nil {
			return fmt.Errorf("parsing --today: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orm, err := openORM(ctx, cfg.Database)
	if err != nil {
		return err
	}

	repository, err := persistence.NewTemplateRepository(orm)
	if err != nil {
		return fmt.Errorf("preparing template repository: %w", err)
	}

	result, err := seed.Load(ctx, repository, now)
	if err != nil {
		return err
	}

	logger.Info("seeding finished",
		"driver", cfg.Database.Driver,
		"created", result.Created,
		"skipped", result.Skipped)
	return nil
}

func openORM(ctx context.Context, cfg config.DatabaseConfig) (sql.ORM, error) {
	switch cfg.Driver {
	case "postgres":
		db := sql.NewPosgreDatabase(cfg.URL)
		if err := db.Open(ctx); err != nil {
			return nil, fmt.Errorf("waiting for postgres: %w", err)
		}
		db.Close()
		return sql.NewPosgreORM(cfg.DSN, 30*time.Second)
	case "sqlite", "":
		if cfg.DSN == "" {
			return nil, fmt.Errorf("seeding sqlite needs a database file")
		}
		return sql.NewSqliteORM(cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
