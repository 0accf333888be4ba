package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	lianke "github.com/liankenet/lianke-go"
	"github.com/liankenet/lianke-go/server"
	"github.com/liankenet/lianke-go/toolbox"
)

func main() {
	cfg, err := server.LoadConfig(os.Getenv("LIANKE_CONFIG_FILE"))
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log := server.NewLogger(cfg.LogLevel, cfg.LogFormat)
	defer func() {
		_ = log.Sync()
	}()

	gin.SetMode(cfg.GinMode)

	var clientOpts []lianke.Option
	if cfg.APIBaseURL != "" {
		clientOpts = append(clientOpts, lianke.WithBaseURL(cfg.APIBaseURL))
	}
	if cfg.APITimeoutSecs > 0 {
		clientOpts = append(clientOpts, lianke.WithTimeout(time.Duration(cfg.APITimeoutSecs)*time.Second))
	}

	toolOpts := []toolbox.ToolOption{toolbox.WithClientOptions(clientOpts...)}
	if cfg.FetchTimeoutSec > 0 {
		toolOpts = append(toolOpts, toolbox.WithFetchClient(&http.Client{
			Timeout: time.Duration(cfg.FetchTimeoutSec) * time.Second,
		}))
	}

	srv := server.New(toolbox.New(log, toolOpts...), log)

	httpServer := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: srv.Handler(),
	}

	go func() {
		log.Info("starting liankd", zap.String("address", cfg.ServerAddress))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
}
