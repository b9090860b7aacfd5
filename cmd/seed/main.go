// Package main writes the default workout catalog into the postgres workout table,
// replacing whatever is there. Run it before starting the service with
// catalog_source = "postgres".
package main

import (
	"context"
	"flag"
	"time"

	"github.com/2beens/fitprogress/internal/config"
	"github.com/2beens/fitprogress/internal/db"
	"github.com/2beens/fitprogress/internal/workouts"

	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	dryRun := flag.Bool("dry-run", false, "validate the catalog without writing it")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	defaults := workouts.DefaultWorkouts()
	catalog, err := workouts.NewCatalog(defaults)
	if err != nil {
		log.Fatalf("default catalog: %s", err)
	}
	log.Infof("default catalog: %d workouts over %d levels", catalog.Len(), catalog.MaxLevel())
	if *dryRun {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost: cfg.PostgresHost,
		DBPort: cfg.PostgresPort,
		DBName: cfg.PostgresDBName,
	})
	if err != nil {
		log.Fatalf("db pool: %s", err)
	}
	defer dbPool.Close()

	if err := db.Migrate(ctx, dbPool); err != nil {
		log.Fatalf("migrate: %s", err)
	}

	if err := workouts.NewPsqlLoader(dbPool).ReplaceAll(ctx, defaults); err != nil {
		log.Fatalf("seed workouts: %s", err)
	}
	log.Infof("seeded %d workouts into [%s]", len(defaults), cfg.PostgresDBName)
}
