package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/mr1hm/go-city-globe/internal/api"
	"github.com/mr1hm/go-city-globe/internal/broadcast"
	"github.com/mr1hm/go-city-globe/internal/catalog"
	"github.com/mr1hm/go-city-globe/internal/config"
	"github.com/mr1hm/go-city-globe/internal/logging"
	"github.com/mr1hm/go-city-globe/internal/news"
	"github.com/mr1hm/go-city-globe/internal/session"
	"github.com/mr1hm/go-city-globe/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port)

	db, err := store.NewSQLiteStore(cfg.DB.Path)
	if err != nil {
		logging.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	repo := catalog.Load(cfg.Data.CitiesPath, cfg.Data.ComparisonsPath)
	slog.Info("serving catalog", "cities", len(repo.Cities()), "countries", len(repo.Countries()))

	newsClient := news.NewClient(news.Config{
		BaseURL:  cfg.News.BaseURL,
		Key1:     cfg.News.Key1,
		Key2:     cfg.News.Key2,
		PageSize: cfg.News.PageSize,
		CacheTTL: cfg.News.CacheTTL,
	}, db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.News.WarmCache {
		warmer := news.NewWarmer(newsClient, repo, cfg.News.WarmWorkers, cfg.News.WarmBuffer)
		go warmer.Run(ctx)
	}

	// Broadcaster for the per-session command streams
	broadcaster := broadcast.NewBroadcaster()

	sessionOpts := session.Options{
		ZoomDuration:       cfg.Sessions.ZoomDuration,
		RevealBuffer:       cfg.Sessions.RevealBuffer,
		CompareRevealDelay: cfg.Sessions.CompareRevealDelay,
		MessageTTL:         cfg.Sessions.MessageTTL,
		ZoomAltitude:       session.DefaultOptions().ZoomAltitude,
		ViewportWidth:      session.DefaultOptions().ViewportWidth,
		CompareBreakpoint:  cfg.Sessions.CompareBreakpoint,
	}
	registry := session.NewRegistry(repo, broadcaster, sessionOpts, cfg.Sessions.TTL)
	registry.Start(ctx)

	// Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false, // Set to false when using wildcard origins
	}))
	router.Use(api.RateLimitMiddleware(10)) // 10 req/s global limit

	handler := api.NewHandler(repo, newsClient, db, registry, broadcaster)
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
	registry.Stop()
	broadcaster.Close() // Close all streams gracefully

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}
