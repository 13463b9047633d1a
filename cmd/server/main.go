// Command server runs the agent orchestration demo backend.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdkanthropic "github.com/anthropics/anthropic-sdk-go"

	"github.com/pyaichatbot/adk-demo/config"
	"github.com/pyaichatbot/adk-demo/logging"
	"github.com/pyaichatbot/adk-demo/model"
	"github.com/pyaichatbot/adk-demo/model/anthropic"
	"github.com/pyaichatbot/adk-demo/model/openai"
	"github.com/pyaichatbot/adk-demo/orchestrator"
	"github.com/pyaichatbot/adk-demo/server"
	"github.com/pyaichatbot/adk-demo/weather"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	cfg := config.Load()
	logger := logging.NewSlogLogger(logging.ParseLogLevel(cfg.LogLevel), cfg.LogFormat, false)

	llm, err := buildModel(cfg)
	if err != nil {
		log.Fatalf("model setup failed: %v", err)
	}

	wx := weather.NewClient(func(o *weather.Options) {
		o.Timeout = cfg.WeatherTimeout
		o.Logger = logger
	})

	orc := orchestrator.New(llm, func(o *orchestrator.Options) {
		o.Weather = wx
		o.Logger = logger
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server.NewRouter(orc, logger),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		logger.Info("server listening", "version", Version, "addr", srv.Addr,
			"model", llm.Info().Name, "provider", llm.Info().Provider)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}

	logger.Info("shutdown complete")
}

func buildModel(cfg config.Config) (model.Model, error) {
	switch cfg.ModelProvider {
	case "openai":
		return openai.NewModel(func(o *openai.Options) {
			if cfg.ModelName != "" {
				o.Model = cfg.ModelName
			}
		}), nil
	case "mock":
		return model.NewMockModel("mock", "mock"), nil
	default:
		return anthropic.NewModel(func(o *anthropic.Options) {
			if cfg.ModelName != "" {
				o.Model = sdkanthropic.Model(cfg.ModelName)
			}
		}), nil
	}
}
