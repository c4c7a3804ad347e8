package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/api"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/history"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/jobs/inmemory"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/logger"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/store"
)

type serveCmd struct {
	Port         int           `env:"FINANCE_PORT" default:"8080" help:"Port to host the HTTP API on."`
	Workers      int           `default:"2" help:"Background extraction workers."`
	QueueSize    int           `default:"32" help:"Extraction jobs that may wait before uploads block."`
	HistoryLimit int           `default:"10" help:"Recent reports kept per user."`
	Shutdown     time.Duration `default:"10s" help:"Grace period for in-flight requests and jobs."`
}

func (c *serveCmd) Run(g *globals) error {
	log := logger.New(g.LogLevel)

	repo, err := store.Open(g.Store)
	if err != nil {
		return err
	}
	defer closeStore(repo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx, log)

	jobStore := inmemory.NewStore()
	queue := inmemory.NewQueue(c.QueueSize, c.Workers, jobStore, log)

	srv := api.NewServer(repo, log,
		api.WithJobs(queue, jobStore),
		api.WithHistory(history.New(c.HistoryLimit)),
	)
	if err := queue.Start(ctx, srv.HandleJob); err != nil {
		return err
	}

	app := srv.App()
	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", c.Port)
		log.Info().Str("addr", addr).Str("store", g.Store).Msg("Starting server")
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), c.Shutdown)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("HTTP shutdown incomplete")
	}
	return queue.Stop(shutdownCtx)
}
