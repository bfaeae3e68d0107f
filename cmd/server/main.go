package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/splitsense/internal/analytics"
	"github.com/mmynk/splitsense/internal/assistant"
	"github.com/mmynk/splitsense/internal/auth"
	"github.com/mmynk/splitsense/internal/cache"
	"github.com/mmynk/splitsense/internal/calculator"
	"github.com/mmynk/splitsense/internal/config"
	"github.com/mmynk/splitsense/internal/events"
	"github.com/mmynk/splitsense/internal/middleware"
	"github.com/mmynk/splitsense/internal/service"
	"github.com/mmynk/splitsense/internal/storage"
	"github.com/mmynk/splitsense/internal/storage/memory"
	"github.com/mmynk/splitsense/internal/storage/sqlite"
	"github.com/mmynk/splitsense/pkg/api"
	"github.com/mmynk/splitsense/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	level, _ := logging.ParseLevel(cfg.LogLevel)
	logger := logging.Setup(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	l, err := service.Bootstrap(ctx, store, cfg.SeedDemoData, time.Now())
	if err != nil {
		return err
	}

	var (
		userViews  cache.Cache[calculator.UserAnalytics]  = cache.NewMemory[calculator.UserAnalytics](cfg.CacheSize)
		groupViews cache.Cache[calculator.GroupAnalytics] = cache.NewMemory[calculator.GroupAnalytics](cfg.CacheSize)
		publisher  events.Publisher                       = events.Nop{}
	)
	if cfg.RedisAddr != "" {
		rdb, err := connectRedis(ctx, cfg)
		if err != nil {
			return err
		}
		defer rdb.Close()

		userViews = cache.NewRedis[calculator.UserAnalytics](rdb, cfg.CacheTTL)
		groupViews = cache.NewRedis[calculator.GroupAnalytics](rdb, cfg.CacheTTL)
		publisher = events.NewRedisPublisher(rdb, cfg.EventStreamLen)
		slog.Info("Redis enabled", "address", cfg.RedisAddr, "stream", events.LedgerStream)
	}

	views := analytics.NewViews(l, userViews, groupViews)
	recorder := service.NewRecorder(l, store, publisher, logger)

	var remote assistant.Remote
	if cfg.AssistantRemoteURL != "" {
		remote = assistant.NewHTTPRemote(cfg.AssistantRemoteURL, &http.Client{Timeout: cfg.AssistantTimeout})
		slog.Info("Remote assistant enabled", "url", cfg.AssistantRemoteURL, "timeout", cfg.AssistantTimeout)
	}
	helper := assistant.New(remote, assistant.NewInterpreter(l, views, recorder), cfg.AssistantTimeout, logger)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	// Outermost first: every call is counted, then authenticated, then logged with its user.
	interceptors := connect.WithInterceptors(
		metrics.Interceptor(),
		middleware.RequireAuth(jwtManager, api.AuthServiceLoginProcedure, api.AuthServiceListUsersProcedure),
		middleware.LoggingInterceptor(logger),
	)

	mux := http.NewServeMux()
	mux.Handle(api.NewAuthServiceHandler(service.NewAuthService(auth.NewRosterAuthenticator(l), jwtManager, l, logger), interceptors))
	mux.Handle(api.NewLedgerServiceHandler(service.NewLedgerService(l, recorder), interceptors))
	mux.Handle(api.NewAnalyticsServiceHandler(service.NewAnalyticsService(l, views), interceptors))
	mux.Handle(api.NewAssistantServiceHandler(service.NewAssistantService(helper), interceptors))
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Wrap with h2c for HTTP/2 without TLS
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h2c.NewHandler(requestLogger(corsMiddleware(mux)), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Connect server starting", "address", server.Addr, "url", fmt.Sprintf("http://localhost:%s", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func openStore(cfg *config.Config) (storage.Store, error) {
	if cfg.StorageBackend == config.BackendMemory {
		slog.Warn("Using in-memory storage, data is lost on restart")
		return memory.New(), nil
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	slog.Info("Storage initialized", "database", cfg.DBPath)
	return store, nil
}

func connectRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return rdb, nil
}

// requestLogger logs every HTTP request at debug level; RPC outcomes are
// logged by the Connect interceptor.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
