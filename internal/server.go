package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/fitprogress/internal/config"
	"github.com/2beens/fitprogress/internal/db"
	"github.com/2beens/fitprogress/internal/middleware"
	"github.com/2beens/fitprogress/internal/progression"
	progressionmcp "github.com/2beens/fitprogress/internal/progression/mcp"
	"github.com/2beens/fitprogress/internal/telemetry/metrics"
	"github.com/2beens/fitprogress/internal/telemetry/tracing"
	"github.com/2beens/fitprogress/internal/users"
	"github.com/2beens/fitprogress/internal/workouts"
	"github.com/2beens/fitprogress/pkg"
)

const mutationsRateLimitKey = "fitprogress||mutations"

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client

	catalog   *workouts.Catalog
	userStore users.Store
	service   *progression.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config
	s := &Server{
		config:       cfg,
		versionInfo:  params.VersionInfo,
		otelShutdown: func() {},
	}

	var collectors []prometheus.Collector
	if cfg.UsesPostgres() {
		dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			TracingEnabled: params.HoneycombTracingEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		s.dbPool = dbPool

		if err := dbPool.Ping(ctx); err != nil {
			log.Warnf("failed to ping db: %s", err)
		}
		if err := db.Migrate(ctx, dbPool); err != nil {
			s.closeConnections()
			return nil, fmt.Errorf("migrate db: %w", err)
		}

		collectors = append(collectors, pgxpoolprometheus.NewCollector(
			dbPool,
			map[string]string{"db_name": cfg.PostgresDBName},
		))
	}

	s.promRegistry = metrics.SetupPrometheus(collectors...)
	s.metricsManager = metrics.NewManager("fitprogress", "main", s.promRegistry)
	s.metricsManager.GaugeLifeSignal.Set(0)

	if cfg.UsesRedis() {
		s.redisClient = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: params.RedisPassword,
			DB:       0,
		})

		rdbStatus := s.redisClient.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}
	}

	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "fitprogress", s.redisClient)
	if err != nil {
		s.closeConnections()
		return nil, err
	}
	s.otelShutdown = otelShutdown

	var loader workouts.Loader = workouts.EmbeddedLoader{}
	if cfg.CatalogSource == config.CatalogSourcePostgres {
		loader = workouts.NewPsqlLoader(s.dbPool)
	}
	s.catalog, err = workouts.Load(ctx, loader)
	if err != nil {
		s.closeConnections()
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	log.Infof("catalog loaded from [%s]: %d workouts, max level %d", cfg.CatalogSource, s.catalog.Len(), s.catalog.MaxLevel())

	switch cfg.StoreBackend {
	case config.StoreBackendPostgres:
		s.userStore = users.NewPsqlStore(s.dbPool)
	case config.StoreBackendRedis:
		s.userStore = users.NewRedisStore(s.redisClient)
	default:
		s.userStore = users.NewMemoryStore()
	}
	log.Debugf("using [%s] user store", cfg.StoreBackend)

	s.service = progression.NewService(s.catalog, s.userStore, s.metricsManager)

	return s, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteJSONResponseOK(w, `{"ok":true}`)
	}).Methods("GET").Name("health")
	r.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteTextResponseOK(w, s.version())
	}).Methods("GET").Name("version")

	var mutationMiddleware []mux.MiddlewareFunc
	if s.config.RateLimitAllowedPerMin > 0 && s.redisClient != nil {
		mutationMiddleware = append(mutationMiddleware, middleware.RateLimit(
			redis_rate.NewLimiter(s.redisClient),
			mutationsRateLimitKey,
			s.config.RateLimitAllowedPerMin,
			s.metricsManager,
		))
	}

	progressionHandler := progression.NewHandler(
		s.service,
		time.Duration(s.config.CatalogCacheTTLSeconds)*time.Second,
		s.config.CatalogCacheSizeMB,
	)
	progressionHandler.SetupRoutes(r, mutationMiddleware...)

	if s.config.MCPEnabled {
		mcpServer := progressionmcp.NewServer(s.service, s.version())
		mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
			return mcpServer
		}, nil)
		r.PathPrefix("/mcp").Handler(mcpHandler).Name("mcp")
	}

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) version() string {
	if s.versionInfo == "" {
		return "dev"
	}
	return s.versionInfo
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", otelhttp.NewHandler(
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
		"metrics",
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	// stop taking requests before the stores go away
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	s.closeConnections()

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

func (s *Server) closeConnections() {
	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
