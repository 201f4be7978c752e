package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mindcare-be/internal/bootstrap"
	"mindcare-be/internal/config"
	"mindcare-be/internal/pkg/logger"
	"mindcare-be/internal/server"
	"mindcare-be/internal/tracer"
	"mindcare-be/pkg/database"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var inMemory bool

var rootCmd = &cobra.Command{
	Use:   "rest",
	Short: "Serve the mindcare HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.Flags().BoolVar(&inMemory, "in-memory", false, "ignore DB_CONNECTION_STRING and keep all data in memory")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	shutdownTracer, err := tracer.Init(ctx, cfg.Tracing, sysLogger)
	if err != nil {
		sysLogger.Warn("TRACING", "Tracing disabled", map[string]interface{}{"error": err.Error()})
	}
	defer shutdownTracer(context.Background())

	var db *gorm.DB
	if !inMemory && cfg.Database.Connection != "" {
		opts := database.DefaultOptions()
		opts.Verbose = !cfg.IsProduction()
		db, err = database.Open(cfg.Database.Connection, opts)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
	}

	container, err := bootstrap.NewContainer(ctx, cfg, db, sysLogger)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer container.Close()

	if err := container.EventRelayService.Consume(ctx); err != nil {
		return fmt.Errorf("start event relay: %w", err)
	}

	srv := server.New(cfg, container)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	sysLogger.Info("HTTP", "Shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
