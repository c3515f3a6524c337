package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gridiron-be/internal/auth"
	"gridiron-be/internal/cart"
	"gridiron-be/internal/config"
	"gridiron-be/internal/db"
	"gridiron-be/internal/kafka"
	"gridiron-be/internal/logger"
	"gridiron-be/internal/metrics"
	"gridiron-be/internal/middleware"
	"gridiron-be/internal/order"
	"gridiron-be/internal/product"
	"gridiron-be/internal/redisx"
	"gridiron-be/internal/user"
	"gridiron-be/internal/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const requestTimeout = 15 * time.Second

// routeRegistrar mounts one module's handlers under /api/v1.
type routeRegistrar interface {
	Register(r chi.Router)
}

type routerDeps struct {
	apiKey   string
	tokens   *auth.TokenManager
	limiter  *middleware.RateLimiter
	metrics  *metrics.HTTP
	cors     []string
	handlers []routeRegistrar
}

func setupRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(logger.RequestIDMiddleware)
	r.Use(middleware.LoggingMiddleware(d.metrics))
	r.Use(middleware.CORS(d.cors))
	r.Use(chimw.Timeout(requestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		utils.WriteSuccess(w, http.StatusOK, "OK", d.metrics.Snapshot())
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.AuthMiddleware(d.apiKey, d.tokens, middleware.DefaultRouteValidator()))
		api.Use(d.limiter.Middleware)

		for _, h := range d.handlers {
			h.Register(api)
		}
	})

	return r
}

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	decimal.MarshalJSONWithoutQuotes = true

	// Exits on failure, before anything else needs cleaning up.
	database := db.InitDB(cfg)

	err := run(cfg, database)
	_ = database.Close()
	if err != nil {
		logger.L().Error("server stopped", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

// run serves until SIGINT/SIGTERM or a listener failure. Every resource it
// opens is released through its defers on both paths.
func run(cfg *config.Config, database *sql.DB) error {
	log := logger.L()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	locker := redisx.NewNoopLocker()
	if cfg.RedisAddr != "" {
		rdb := redisx.New(cfg.RedisAddr)
		defer rdb.Close()
		if err := redisx.Ping(ctx, rdb); err != nil {
			return fmt.Errorf("redis %s unreachable: %w", cfg.RedisAddr, err)
		}
		locker = redisx.NewLocker(rdb)
		log.Info("cart lock backed by redis", zap.String("addr", cfg.RedisAddr))
	}

	publisher := order.NewNoopPublisher()
	if len(cfg.KafkaBrokers) > 0 {
		producer := kafka.NewProducer(cfg.KafkaBrokers, 1024)
		producer.Start()
		defer func() {
			producer.Close()
			producer.WaitClosed()
		}()
		publisher = producer
		log.Info("order events enabled", zap.Strings("brokers", cfg.KafkaBrokers))
	}

	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET is empty, authentication will fail")
	}
	tokens := auth.NewTokenManager(cfg.JWTSecret, auth.DefaultTokenTTL)
	tx := db.NewTransactor(database)

	userSvc := user.NewService(user.NewRepository(database), tx, tokens)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo, tx)

	cartSvc := cart.NewService(cart.NewRepository(database), productRepo, tx, locker)

	orderSvc := order.NewService(
		order.NewRepository(database),
		cartSvc,
		productSvc,
		tx,
		order.NewEvents(publisher, cfg.ServiceName),
	)

	if err := userSvc.EnsureDefaultAdmin(ctx, cfg.DefaultAdminEmail, cfg.DefaultAdminPassword); err != nil {
		log.Error("failed to create default admin", zap.Error(err))
	}

	limiter := middleware.NewRateLimiter(cfg.InternalSecretKey)
	limiter.Start(ctx)

	srv := &http.Server{
		Addr: ":" + cfg.AppPort,
		Handler: setupRouter(routerDeps{
			apiKey:  cfg.APIKey,
			tokens:  tokens,
			limiter: limiter,
			metrics: &metrics.HTTP{},
			cors:    cfg.CORSOrigins,
			handlers: []routeRegistrar{
				user.NewHandler(userSvc),
				product.NewHandler(productSvc),
				cart.NewHandler(cartSvc),
				order.NewHandler(orderSvc),
			},
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server running", zap.String("port", cfg.AppPort), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
