// Package main runs the progression MCP server over stdio (for local agent use).
// The same MCP server is mounted on the main service at /mcp over HTTP.
package main

import (
	"context"
	"flag"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/2beens/fitprogress/internal/config"
	"github.com/2beens/fitprogress/internal/db"
	"github.com/2beens/fitprogress/internal/progression"
	progressionmcp "github.com/2beens/fitprogress/internal/progression/mcp"
	"github.com/2beens/fitprogress/internal/telemetry/metrics"
	"github.com/2beens/fitprogress/internal/users"
	"github.com/2beens/fitprogress/internal/workouts"

	"github.com/go-redis/redis/v8"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	// stdout carries the MCP protocol
	log.SetOutput(os.Stderr)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var loader workouts.Loader = workouts.EmbeddedLoader{}
	var store users.Store = users.NewMemoryStore()

	if cfg.UsesPostgres() {
		dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost: cfg.PostgresHost,
			DBPort: cfg.PostgresPort,
			DBName: cfg.PostgresDBName,
		})
		if err != nil {
			log.Fatalf("db pool: %s", err)
		}
		defer dbPool.Close()

		if cfg.CatalogSource == config.CatalogSourcePostgres {
			loader = workouts.NewPsqlLoader(dbPool)
		}
		if cfg.StoreBackend == config.StoreBackendPostgres {
			store = users.NewPsqlStore(dbPool)
		}
	}

	if cfg.StoreBackend == config.StoreBackendRedis {
		rdb := redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: os.Getenv("FITPROGRESS_REDIS_PASS"),
		})
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Errorf("close redis: %s", err)
			}
		}()
		store = users.NewRedisStore(rdb)
	}

	catalog, err := workouts.Load(ctx, loader)
	if err != nil {
		log.Fatalf("load catalog: %s", err)
	}

	service := progression.NewService(catalog, store, metrics.NewManager("fitprogress", "mcp", nil))
	server := progressionmcp.NewServer(service, "stdio")

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		log.Fatal(err)
	}
}
