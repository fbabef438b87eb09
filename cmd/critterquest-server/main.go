// Package main serves CritterQuest sessions over websockets.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/samdwyer/critterquest/internal/config"
	"github.com/samdwyer/critterquest/internal/gamedata"
	"github.com/samdwyer/critterquest/internal/server"
	"github.com/samdwyer/critterquest/internal/storage/driver"
	"github.com/samdwyer/critterquest/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log.SetPrefix("[critterquest] ")
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	if cfg.TelemetryEnabled {
		telemetry.ApplyHoneycombEnv()
		shutdown, err := telemetry.Setup(ctx, telemetry.Config{Component: "server", SampleRatio: cfg.TelemetrySample})
		if err != nil {
			log.Printf("telemetry setup failed: %v", err)
		} else {
			log.Printf("tracing enabled: %v", telemetry.Enabled())
			defer func() {
				if err := shutdown(context.WithoutCancel(ctx)); err != nil {
					log.Printf("shutdown telemetry: %v", err)
				}
			}()
		}
	}

	data, err := gamedata.LoadData()
	if err != nil {
		return err
	}
	store, err := driver.Open(cfg.StorageDriver, cfg.StoragePath)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := server.New(data, server.Options{
		Config:       cfg.Game(),
		Saver:        store,
		TickInterval: cfg.TickInterval,
		Logger:       log.New(os.Stderr, "[server] ", log.LstdFlags),
	})
	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("listening on %s", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
