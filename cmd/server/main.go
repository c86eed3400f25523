// Command server runs the AliTaram site backend: catalogue, assistant chat,
// view state and consultation requests over HTTP and WebSocket.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/teconavi/alitaramdemo2/internal/adapter/llm"
	"github.com/teconavi/alitaramdemo2/internal/catalog"
	"github.com/teconavi/alitaramdemo2/internal/config"
	"github.com/teconavi/alitaramdemo2/internal/consultation"
	"github.com/teconavi/alitaramdemo2/internal/conversation"
	"github.com/teconavi/alitaramdemo2/internal/hub"
	"github.com/teconavi/alitaramdemo2/internal/logging"
	"github.com/teconavi/alitaramdemo2/internal/metrics"
	"github.com/teconavi/alitaramdemo2/internal/repository"
	"github.com/teconavi/alitaramdemo2/internal/service"
	httpserver "github.com/teconavi/alitaramdemo2/internal/transport/http"
	"github.com/teconavi/alitaramdemo2/internal/transport/ws"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	log.WithField("port", cfg.HTTPPort).Info("starting site backend")
	log.WithField("database", cfg.DatabaseURL).Info("using message store")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.New()

	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize store")
	}
	defer db.Close()

	cat := catalog.Default()

	provider, err := llm.NewProvider(ctx, llm.Options{
		Mode:     cfg.AppMode,
		Provider: cfg.LLMProvider,
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.LLMBaseURL,
		Timeout:  cfg.LLMTimeout,
	}, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize LLM provider")
	}
	log.WithField("provider", provider.Name()).Info("assistant provider ready")

	client, err := conversation.NewClient(provider, cat.List(), conversation.ClientOptions{
		Model:   cfg.LLMModel,
		Timeout: cfg.LLMTimeout,
	}, log, m)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize conversation client")
	}

	gate, err := consultation.NewPolicyGate(ctx)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize consultation policy")
	}

	h := hub.NewHub(log, m)
	go h.Run(ctx)

	svc, err := service.New(db, cat, client, gate, h, m, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize service")
	}

	server := httpserver.NewServer(svc, h, m, log)
	ws.NewServer(cfg, h, svc, log).RegisterRoutes(server.Echo())

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("failed to start server")
		}
	}()

	log.WithField("port", cfg.HTTPPort).Info("HTTP and WebSocket API started")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown failed")
	}
	svc.Close()

	log.Info("site backend stopped")
}
