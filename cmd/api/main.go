package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"bookstores/internal/config"
	"bookstores/internal/httpx"
	"bookstores/internal/platform/bookstoreapi"
	"bookstores/internal/platform/logger"
	"bookstores/internal/platform/restcountries"
	"bookstores/internal/rating"
	"bookstores/internal/storefront"
)

const userAgent = "bookstores-api/1.0"

type routes struct {
	stores    *storefront.HTTPHandler
	ratings   *rating.HTTPHandler
	jwtSecret string
	ready     func(ctx context.Context) error
}

func main() {
	config.LoadEnvFiles()

	cfg, err := config.FromEnv()
	if err != nil {
		logger.MustNewLogger("text", "info").Fatal("invalid configuration", zap.Error(err))
	}
	log := logger.MustNewLogger(cfg.LogFormat, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	var (
		runRepo    storefront.RunRepository
		ratingRepo rating.Repository
		ready      = func(context.Context) error { return nil }
	)
	if cfg.DBDSN != "" {
		dbPool := mustOpenDB(log, cfg.DBDSN)
		defer dbPool.Close()
		runRepo = storefront.NewPostgresRunRepo(dbPool)
		ratingRepo = rating.NewPostgresRepo(dbPool)
		ready = dbPool.Ping
	} else {
		log.Info("DB_DSN not set, keeping refresh runs and rating changes in memory")
		runRepo = storefront.NewMemoryRunRepo(0)
		ratingRepo = rating.NewMemoryRepo(0)
	}
	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET not set, rating updates are accepted without authentication")
	}

	storeClient := bookstoreapi.NewClient(bookstoreapi.Config{
		BaseURL:   cfg.BookstoreAPIURL,
		UserAgent: userAgent,
		Timeout:   cfg.UpstreamTimeout,
		RPS:       cfg.UpstreamRPS,
	})
	countryClient := restcountries.NewClient(restcountries.Config{
		BaseURL:   cfg.CountriesAPIURL,
		UserAgent: userAgent,
		Timeout:   cfg.UpstreamTimeout,
		RPS:       cfg.UpstreamRPS,
	})

	storeService := storefront.NewService(storeClient, countryClient, runRepo, log, storefront.Config{
		KindPolicy:  cfg.KindPolicy,
		Parallelism: cfg.ResolveParallelism,
	})
	ratingService := rating.NewService(storeClient, ratingRepo, log)

	router := newRouter(routes{
		stores:    storefront.NewHTTPHandler(storeService),
		ratings:   rating.NewHTTPHandler(ratingService),
		jwtSecret: cfg.JWTSecret,
		ready:     ready,
	})

	rateLimiter := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)
	handler := httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(log),
		httpx.RecoveryMiddleware(log),
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.CORSMiddleware(cfg.CORSAllowedOrigins),
		httpx.RequestSizeLimitMiddleware(1<<20),
		rateLimiter.Middleware,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rateLimiter.Prune()
			}
		}
	}()

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.UpstreamTimeout*2 + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown", zap.Error(err))
		}
	}()

	log.Info("starting server", zap.String("addr", cfg.Addr), zap.String("bookstore_api", cfg.BookstoreAPIURL))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server error", zap.Error(err))
	}
	log.Info("server stopped")
}

func newRouter(rt routes) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := rt.ready(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("GET /v1/stores", rt.stores.ListStores)
	router.HandleFunc("GET /v1/refresh-runs", rt.stores.ListRuns)
	router.HandleFunc("GET /v1/stores/{id}/ratings", rt.ratings.ListChanges)

	protectedRating := httpx.OptionalAuth(rt.jwtSecret)(http.HandlerFunc(rt.ratings.UpdateRating))
	router.Handle("PATCH /v1/stores/{id}/rating", protectedRating)

	return router
}

func mustOpenDB(log logger.Logger, dsn string) *pgxpool.Pool {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatal("cannot create db pool", zap.Error(err))
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		log.Fatal("cannot ping database", zap.String("dsn", redactDSN(dsn)), zap.Error(err))
	}
	log.Info("database connection OK")
	return pool
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
