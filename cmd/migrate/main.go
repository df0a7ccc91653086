package main

import (
	"errors"
	"flag"
	"log"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"

	"github.com/noah-isme/sis-portal-api/migrations"
	"github.com/noah-isme/sis-portal-api/pkg/config"
	"github.com/noah-isme/sis-portal-api/pkg/logger"
)

func main() {
	var databaseURL string
	var command string

	flag.StringVar(&databaseURL, "database", "", "Database URL (defaults to the DB_* settings)")
	flag.StringVar(&command, "command", "up", "Migration command: up, down, version, force <version>")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if databaseURL == "" {
		databaseURL = cfg.Database.URL()
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		logr.Fatal("failed to open embedded migrations", zap.Error(err))
	}
	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		logr.Fatal("failed to create migration instance", zap.Error(err))
	}
	defer m.Close()

	switch command {
	case "up":
		err = m.Up()
		if errors.Is(err, migrate.ErrNoChange) {
			logr.Info("database is up to date")
			return
		}
		if err != nil {
			logr.Fatal("failed to run migrations", zap.Error(err))
		}
		logr.Info("migrations applied")

	case "down":
		if err = m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logr.Fatal("failed to roll back migrations", zap.Error(err))
		}
		logr.Info("migrations rolled back")

	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			logr.Info("no migrations applied")
			return
		}
		if err != nil {
			logr.Fatal("failed to read version", zap.Error(err))
		}
		logr.Info("current version", zap.Uint("version", version), zap.Bool("dirty", dirty))

	case "force":
		if flag.NArg() < 1 {
			logr.Fatal("force requires a version: -command force <version>")
		}
		version, err := strconv.Atoi(flag.Arg(0))
		if err != nil {
			logr.Fatal("invalid version number", zap.String("version", flag.Arg(0)))
		}
		if err := m.Force(version); err != nil {
			logr.Fatal("failed to force version", zap.Error(err))
		}
		logr.Info("forced version", zap.Int("version", version))

	default:
		logr.Fatal("unknown command (use: up, down, version, force)", zap.String("command", command))
	}
}
