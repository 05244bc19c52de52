package main

import (
	"github.com/sirupsen/logrus"

	"venueops/internal/config"
	"venueops/internal/database"
	"venueops/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("cannot load config: %s", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("db connection failed: %s", err)
	}

	if err := repository.Migrate(db); err != nil {
		logrus.Fatalf("migration failed: %s", err)
	}
	if err := repository.SeedDemo(db); err != nil {
		logrus.Fatalf("seeding failed: %s", err)
	}

	logrus.Info("demo data seeded")
}
