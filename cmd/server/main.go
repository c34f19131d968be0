package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/taskhub/taskhub/internal/api"
	"github.com/taskhub/taskhub/internal/config"
	"github.com/taskhub/taskhub/internal/notify"
	"github.com/taskhub/taskhub/internal/store"
	"github.com/taskhub/taskhub/internal/ws"
)

func main() {
	configPath := flag.String("config", "", "path to config file; leave empty to run from environment variables alone")
	flag.Parse()

	// Load .env before anything reads the environment. A missing file is fine.
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	slog.Info("taskhub-server starting", "config", *configPath)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	slog.Info("config loaded",
		"http_port", cfg.Server.HTTPPort,
		"database", cfg.Server.Mongo.Database,
		"retry_interval", cfg.Server.Mongo.RetryInterval,
		"webhooks", len(cfg.Server.Notify.Webhooks),
	)

	if cfg.Server.Mongo.URI() == "" {
		slog.Warn("mongo connection string is empty — store will keep retrying",
			"env", cfg.Server.Mongo.URIEnv)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Document store with an asynchronous handshake: the HTTP server comes up
	// immediately and handlers fail fast until the store is ready.
	st := store.New(store.Config{
		URI:           cfg.Server.Mongo.URI(),
		Database:      cfg.Server.Mongo.Database,
		RetryInterval: cfg.Server.Mongo.RetryInterval,
	})
	go st.Run(ctx)

	// WebSocket hub — fans task mutation events out to connected clients.
	hub := ws.New()
	go hub.Run(ctx)

	// Outbound webhook notifier for the same events.
	notifier := notify.New(cfg.Server.Notify)

	// Hot-reload webhook targets on config file changes.
	if *configPath != "" {
		go func() {
			if err := config.Watch(ctx, *configPath, func(c *config.Config) {
				notifier.SetWebhooks(c.Server.Notify.Webhooks)
			}); err != nil {
				slog.Error("config watch stopped", "err", err)
			}
		}()
	}

	// Combined HTTP server: REST API + WebSocket hub on HTTPPort.
	httpMux := http.NewServeMux()
	httpMux.Handle("/ws", hub)
	httpMux.Handle("/", api.New(st, st, st.Ready, hub, notifier))

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler: httpMux,
	}
	go func() {
		slog.Info("HTTP server listening", "port", cfg.Server.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server stopped", "err", err)
		}
	}()

	<-ctx.Done()
	slog.Info("taskhub-server shutting down")
	httpSrv.Shutdown(context.Background()) //nolint:errcheck
	if err := st.Close(context.Background()); err != nil {
		slog.Error("store close failed", "err", err)
	}
}
