package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"budget-app-go/internal/config"
	"budget-app-go/pkg/logger"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Standalone migration runner for deployments where the API server should
// not run DDL itself.
func main() {
	log := logger.NewFromEnv()

	var migrationsPath string
	var down bool
	flag.StringVar(&migrationsPath, "migrations-path", "./migrations", "path to migration files")
	flag.BoolVar(&down, "down", false, "roll back the most recent migration")
	flag.Parse()

	cfg, err := config.Load(log)
	if err != nil {
		log.Critical("migrator: config load failed", "err", err)
		os.Exit(1)
	}

	dsn := fmt.Sprintf(
		"postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.DB.User, cfg.DB.Password, cfg.DB.Host, cfg.DB.Port, cfg.DB.Name, cfg.DB.SSLMode,
	)

	m, err := migrate.New("file://"+migrationsPath, dsn)
	if err != nil {
		log.Critical("migrator: init failed", "err", err)
		os.Exit(1)
	}

	if down {
		err = m.Steps(-1)
	} else {
		err = m.Up()
	}
	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("migrator: no migrations to apply")
			return
		}
		log.Critical("migrator: run failed", "err", err)
		os.Exit(1)
	}

	log.Info("migrator: migrations applied")
}
