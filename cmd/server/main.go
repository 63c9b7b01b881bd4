package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"salesdesk/internal/codec"
	"salesdesk/internal/config"
	"salesdesk/internal/domain"
	"salesdesk/internal/handler"
	"salesdesk/internal/hub"
	"salesdesk/internal/logging"
	"salesdesk/internal/notify"
	"salesdesk/internal/repository/sqlstore"
	"salesdesk/internal/service"
	"salesdesk/internal/validation"
	"salesdesk/internal/view"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "config file path (default: search standard locations)")
	envFile := flag.String("env", ".env", "optional .env file loaded before the config")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	initConfig := flag.Bool("init-config", false, "write a default config to -config (or the user config dir), with the database in the user data dir, and exit")
	seed := flag.String("seed", "", "roster file (.yaml or .json) imported at startup")
	flag.Parse()

	if *initConfig {
		target := *configPath
		if target == "" {
			target = config.DefaultConfigPath()
		}
		cfg := config.InstallConfig()
		if err := config.EnsureParentDir(cfg.Database.DSN); err != nil {
			fmt.Fprintf(os.Stderr, "create data dir: %v\n", err)
			os.Exit(1)
		}
		if err := cfg.Save(target); err != nil {
			fmt.Fprintf(os.Stderr, "write config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote default config to %s (database %s)\n", target, cfg.Database.DSN)
		return
	}

	if err := config.LoadEnvFile(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	cfg, path, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if path == "" {
		path = "defaults"
	}
	logger.Info("Starting salesdesk server", zap.String("config", path), zap.String("summary", cfg.Summary()))

	if err := run(cfg, *seed, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
	logger.Info("Server stopped")
}

func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

func run(cfg *config.Config, seed string, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize the store
	store, err := sqlstore.Open(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	// Initialize services and the notification registry
	registry := notify.NewRegistry(logger)
	departments := service.NewDepartmentService(store.Departments(), logger)
	sellers := service.NewSellerService(store.Sellers(), logger)

	// List views stay current through the registry
	departmentList := view.NewListView[*domain.Department](departments, registry, notify.TopicDepartment, logger)
	departmentList.Attach(notify.TopicDepartment)
	defer departmentList.Close()

	sellerList := view.NewListView[*domain.Seller](sellers, registry, notify.TopicSeller, logger)
	sellerList.Attach(notify.TopicSeller, notify.TopicDepartment)
	defer sellerList.Close()

	if err := departmentList.Refresh(ctx); err != nil {
		return fmt.Errorf("load departments: %w", err)
	}
	if err := sellerList.Refresh(ctx); err != nil {
		return fmt.Errorf("load sellers: %w", err)
	}

	limits := validation.LimitsFromConfig(cfg.Limits)

	if seed != "" {
		importer := view.NewImporter(departments, sellers, registry, limits, logger)
		if err := seedRoster(ctx, importer, seed, logger); err != nil {
			return fmt.Errorf("seed %s: %w", seed, err)
		}
	}

	// SSE hub relays change notifications to browsers
	sseHub := hub.New(logger)
	sseHub.Attach(registry, notify.TopicDepartment, notify.TopicSeller)
	defer sseHub.Detach()

	hubCtx, hubCancel := context.WithCancel(context.Background())
	defer hubCancel()
	go sseHub.Run(hubCtx)

	h := handler.New(departments, sellers, departmentList, sellerList, registry, limits, logger)

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           h.Routes(sseHub),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")

	// Close SSE streams first so Shutdown does not wait on them
	hubCancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration())
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// seedRoster imports a roster file, picking the codec from its extension
func seedRoster(ctx context.Context, importer *view.Importer, path string, logger *zap.Logger) error {
	c, err := codec.ForFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	roster, err := c.Parse(f)
	if err != nil {
		return err
	}

	result, err := importer.Import(ctx, roster)
	if err != nil {
		return err
	}
	for _, msg := range result.Rejected {
		logger.Warn("seed record rejected", zap.String("reason", msg))
	}
	return nil
}
