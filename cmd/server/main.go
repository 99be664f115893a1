package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"clubsite/backend/internal/api"
	"clubsite/backend/internal/auth"
	"clubsite/backend/internal/cache"
	"clubsite/backend/internal/client"
	"clubsite/backend/internal/config"
	"clubsite/backend/internal/metrics"
	"clubsite/backend/internal/repository"
	"clubsite/backend/internal/scheduler"
	"clubsite/backend/internal/scraper"
	"clubsite/backend/internal/standings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Setup logger
	setupLogger(cfg)

	log.Info().Msg("Starting FC Alexandria API server")
	log.Info().
		Str("env", cfg.AppEnv).
		Str("log_level", cfg.LogLevel).
		Msg("Configuration loaded")

	// Create context that listens for cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("Received shutdown signal, gracefully shutting down...")
		cancel()
	}()

	// Initialize database connection
	dbConfig := cfg.Database()

	if cfg.AutoMigrate {
		if err := repository.Migrate(dbConfig); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate database")
		}
	}

	db, err := repository.NewDatabase(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()
	log.Info().Msg("Database connection established")

	// Standings live in Postgres; Redis only fronts reads when available
	var store standings.Store = db.Standings
	if cfg.RedisEnabled {
		redisCache, err := cache.NewRedisCache(cache.Config{
			Addr:     cfg.RedisAddr(),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("Failed to connect to Redis - continuing without cache")
		} else {
			defer redisCache.Close()
			store = cache.NewStandingsCache(db.Standings, redisCache.Client(), cfg.CacheTTLStandings)
			log.Info().Msg("Redis cache connected")
		}
	}

	// Standings pipeline
	fetcher := client.NewFetcher(client.FetcherConfig{
		URL:          cfg.StandingsURL,
		UserAgent:    cfg.StandingsUserAgent,
		Timeout:      cfg.StandingsFetchTimeout,
		MaxBodyBytes: cfg.StandingsMaxBodyBytes,
	})
	locator := scraper.NewDefaultLocator(cfg.StandingsMarkers(), cfg.StandingsLookback, cfg.StandingsMinColumns)
	refresher := standings.NewRefresher(fetcher, locator, scraper.NewParser(), store, cfg.StandingsLeagueName)
	standingsService := standings.NewService(store, refresher)
	log.Info().Str("url", fetcher.URL()).Msg("Standings pipeline initialized")

	// Auth
	tokens := auth.NewTokenIssuer(cfg.JWTSecretKey, cfg.AccessTokenTTL)
	if _, err := auth.SeedAdmin(ctx, db.Users, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Error().Err(err).Msg("Failed to seed admin user")
	}

	// Start metrics HTTP server
	if cfg.EnableMetrics {
		go startMetricsServer(ctx, strconv.Itoa(cfg.MetricsPort), db)
	}

	// Update system uptime and pool metrics
	startTime := time.Now()
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				metrics.UpdateUptime(startTime)
				db.ReportPoolStats()
			case <-ctx.Done():
				return
			}
		}
	}()

	// Create and start scheduler
	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid scheduler time zone")
	}
	sched := scheduler.NewScheduler(loc)

	if cfg.EnableScheduler {
		if err := sched.ScheduleStandingsRefresh(cfg.StandingsRefreshCron, refresher); err != nil {
			log.Fatal().Err(err).Msg("Failed to schedule standings refresh")
		}
		sched.Start(ctx)
	}

	// Initial standings check runs in the background; the lazy read path
	// covers any request that arrives before it finishes.
	if cfg.InitialSyncEnabled {
		go func() {
			if refresher.EnsureSnapshot(ctx) {
				log.Info().Msg("Initial standings check completed")
			}
		}()
	}

	// HTTP API
	handler := api.NewHandler(api.Dependencies{
		News:      db.News,
		Players:   db.Players,
		Matches:   db.Matches,
		Settings:  db.Settings,
		Contacts:  db.Contacts,
		Users:     db.Users,
		Standings: standingsService,
		Tokens:    tokens,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           api.NewRouter(handler, tokens, cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.StandingsFetchTimeout + 20*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("Starting API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("API server failed")
			cancel()
		}
	}()

	// Keep running until context is cancelled
	<-ctx.Done()

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	log.Info().Msg("Shutting down API server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("API server shutdown failed")
	}

	if cfg.EnableScheduler {
		sched.Stop()
	}

	log.Info().Msg("Server shutdown complete")
}

// setupLogger configures the zerolog logger
func setupLogger(cfg *config.Config) {
	// Pretty console logging in development
	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	// Set log level
	level := zerolog.InfoLevel
	if cfg.LogLevel != "" {
		parsedLevel, err := zerolog.ParseLevel(cfg.LogLevel)
		if err == nil {
			level = parsedLevel
		}
	}
	zerolog.SetGlobalLevel(level)

	log.Info().
		Str("level", level.String()).
		Msg("Logger initialized")
}

// startMetricsServer starts the Prometheus metrics HTTP server
func startMetricsServer(ctx context.Context, port string, db *repository.Database) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := db.Health(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	log.Info().Str("port", port).Msg("Starting metrics server")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("Metrics server failed")
	}
}
