package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"petiscaria/internal/analytics"
	"petiscaria/internal/apiclient"
	"petiscaria/internal/cart"
	"petiscaria/internal/config"
	"petiscaria/internal/feed"
	"petiscaria/internal/infrastructure/logger"
	"petiscaria/internal/order"
	"petiscaria/internal/product"
	"petiscaria/internal/push"
	"petiscaria/internal/server"
	"petiscaria/internal/session"
	"petiscaria/internal/storage"
)

func main() {
	configPath := flag.String("config", "internal/config/config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := storage.Open(ctx, cfg.Storage, cfg.Database, false)
	if err != nil {
		zapLogger.Fatal("opening storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer closeStore()
	zapLogger.Info("storage ready", zap.String("driver", cfg.Storage.Driver))

	tokens := session.NewTokens(store)
	api, err := apiclient.New(cfg.API, tokens, zapLogger)
	if err != nil {
		zapLogger.Fatal("creating api client", zap.Error(err))
	}

	sessionModule := session.NewModule(store, api, zapLogger)

	feeds := feed.NewModule(api, pushSource(cfg.Push, tokens, zapLogger), cfg.Feed, zapLogger)
	if err := feeds.Start(ctx); err != nil {
		zapLogger.Fatal("starting feeds", zap.Error(err))
	}

	cartModule := cart.NewModule(ctx, store, api, zapLogger)
	dashboard := analytics.NewModule(api, cfg.Tables, zapLogger)
	dashboard.Monitor.Start(ctx)

	router := server.NewRouter(server.Handlers{
		Session:   sessionModule.Controller,
		Guard:     sessionModule.Guard,
		Feed:      feeds.Controller,
		Cart:      cartModule.Controller,
		Order:     order.NewModule(api, zapLogger),
		Product:   product.NewModule(api, zapLogger),
		Analytics: dashboard.Controller,
	}, zapLogger)

	srv := server.New(cfg.Server, router, zapLogger)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	feeds.Stop()
	dashboard.Monitor.Stop()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("server shutdown failed", zap.Error(err))
		os.Exit(1)
	}

	zapLogger.Info("server stopped gracefully")
}

func pushSource(cfg config.PushConfig, tokens push.TokenSource, logger *zap.Logger) push.Source {
	switch cfg.Transport {
	case "websocket":
		return push.NewWebSocketSource(cfg.URL, tokens, logger)
	case "amqp":
		return push.NewAMQPSource(cfg.AMQP.URL, cfg.AMQP.Exchange, logger)
	default:
		logger.Info("push disabled, feeds rely on polling")
		return nil
	}
}
