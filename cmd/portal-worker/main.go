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

	"github.com/BearBump/DVCPortal/config"
	"github.com/BearBump/DVCPortal/internal/logging"
	"github.com/BearBump/DVCPortal/internal/services/submissionstats"
)

func main() {
	cfg, err := config.LoadConfig(os.Getenv("configPath"))
	if err != nil {
		panic(fmt.Sprintf("ошибка парсинга конфига, %v", err))
	}
	slog.SetDefault(logging.New(os.Stdout, cfg.Portal.LogLevel))

	if !cfg.Kafka.Enabled() {
		panic("kafka.host is required for portal-worker")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	agg := submissionstats.New()

	httpErr := make(chan error, 1)
	go func() {
		httpErr <- runWorkerHTTPServer(ctx, workerHTTPOpts{
			httpAddr:    cfg.Portal.WorkerHTTPAddr,
			swaggerPath: os.Getenv("workerSwaggerPath"),
			stats:       agg,
			cfg:         cfg,
		})
	}()

	workerErr := make(chan error, 1)
	go func() {
		workerErr <- RunPortalWorker(ctx, cfg, defaultWorkerFactories(), agg)
	}()

	select {
	case err = <-httpErr:
	case err = <-workerErr:
	}
	cancel()
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	}
}
