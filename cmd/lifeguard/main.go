package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/lifeguard-ai/lifeguard-backend/internal/alerting"
	"github.com/lifeguard-ai/lifeguard-backend/internal/allocation"
	"github.com/lifeguard-ai/lifeguard-backend/internal/api"
	"github.com/lifeguard-ai/lifeguard-backend/internal/config"
	"github.com/lifeguard-ai/lifeguard-backend/internal/events"
	"github.com/lifeguard-ai/lifeguard-backend/internal/logging"
	"github.com/lifeguard-ai/lifeguard-backend/internal/notify"
	"github.com/lifeguard-ai/lifeguard-backend/internal/prediction"
	"github.com/lifeguard-ai/lifeguard-backend/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port)

	db, err := repository.NewSQLiteDB(cfg.DB.Path)
	if err != nil {
		logging.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := clockwork.NewRealClock()
	generator := prediction.NewRandomGenerator(cfg.Prediction.Seed, clock)

	if err := prediction.Seed(ctx, db, generator); err != nil {
		logging.Fatalf("Failed to seed database: %v", err)
	}

	// SNS SMS gateway; nil gateway keeps the notify service in mock mode.
	var gateway notify.Gateway
	if cfg.SMS.Enabled {
		if g, err := notify.NewSNSGateway(ctx, cfg.SMS.Region); err == nil {
			gateway = g
		} else {
			slog.Warn("SNS gateway unavailable, falling back to mock sends", "error", err)
		}
	}
	sms := notify.NewService(gateway, cfg.SMS)

	seed := cfg.Prediction.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	engine := allocation.NewEngine(db, clock, rand.New(rand.NewSource(seed)))

	feed := events.NewFeed()
	dispatcher := alerting.NewDispatcher(db, db, sms, feed, clock,
		cfg.Worker.Count, cfg.Worker.BufferSize)
	dispatcher.Start(ctx)

	var predictionMgr *prediction.Manager
	if cfg.Prediction.Enabled {
		predictionMgr = prediction.NewManager(generator, db, cfg.Prediction.PollInterval)
		predictionMgr.Start(ctx)
	}

	// Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false, // Set to false when using wildcard origins
	}))
	router.Use(api.RateLimitMiddleware(5)) // 5 req/s global limit
	router.Use(api.MetricsMiddleware())

	handler := api.NewHandler(db, engine, dispatcher, sms)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	cancel()
	if predictionMgr != nil {
		predictionMgr.Stop()
	}
	dispatcher.Stop()
	feed.Close()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}
