package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/expense-tracker-backend/config"
	httpmw "github.com/GoSim-25-26J-441/expense-tracker-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/auth"
	authservice "github.com/GoSim-25-26J-441/expense-tracker-backend/internal/auth/service"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/auth/session"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/bootstrap"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/cronjob"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/logging"
)

const serviceName = "expense-tracker-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var app *firebase.App
	if cfg.Firebase.CredentialsPath != "" {
		app, err = auth.InitializeFirebase(ctx, &cfg.Firebase)
		if err != nil {
			logger.Fatal("firebase init failed", zap.Error(err))
		}
	}

	st, closeStore, err := bootstrap.OpenStore(ctx, cfg, app, logger)
	if err != nil {
		logger.Fatal("document store init failed", zap.Error(err))
	}
	defer closeStore()

	var provider authservice.IdentityProvider
	if app != nil {
		client, err := app.Auth(ctx)
		if err != nil {
			logger.Fatal("firebase auth client init failed", zap.Error(err))
		}
		provider = auth.NewFirebaseProvider(client)
	} else {
		logger.Warn("no Firebase credentials; only session tokens are accepted")
	}

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal("redis init failed", zap.Error(err))
	}
	var revoker session.Revoker = session.NopRevoker{}
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
		revoker = session.NewRedisRevoker(rdb)
	} else {
		logger.Warn("REDIS_ADDR not set; logout will not revoke tokens")
	}

	limiter := httpmw.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	scheduler := cronjob.NewScheduler(logger)
	err = scheduler.Add("rate-limit-cleanup", "@every 1m", func() {
		if n := limiter.Cleanup(cfg.RateLimit.IdleTTL); n > 0 {
			logger.Debug("rate limiter visitors evicted", zap.Int("evicted", n), zap.Int("remaining", limiter.Clients()))
		}
	})
	if err != nil {
		logger.Fatal("scheduler init failed", zap.Error(err))
	}
	scheduler.Start()

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		ExposeErrors:   cfg.IsDevelopment(),
		CORSOrigins:    cfg.CORS.AllowedOrigins,
		TrustedProxies: cfg.Server.TrustedProxies,
		Location:       cfg.Location(),
		StoreTimeout:   cfg.Store.Timeout,
		Logger:         logger,
		Store:          st,
		Redis:          rdb,
		Provider:       provider,
		Issuer:         session.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Revoker:        revoker,
		Limiter:        limiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("port", cfg.Server.Port),
			zap.String("env", cfg.App.Environment),
			zap.String("store", cfg.Store.Backend),
			zap.String("version", cfg.App.Version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("server error", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	scheduler.Stop(shutdownCtx)

	logger.Info("server stopped")
}
