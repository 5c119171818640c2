package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/stratalab/fscap/internal/adapter/command"
	"github.com/stratalab/fscap/internal/adapter/mounts"
	"github.com/stratalab/fscap/internal/adapter/sqlite"
	"github.com/stratalab/fscap/internal/config"
	"github.com/stratalab/fscap/internal/domain"
	"github.com/stratalab/fscap/internal/domain/event"
	"github.com/stratalab/fscap/internal/logger"
	"github.com/stratalab/fscap/internal/service/poller"
	"github.com/stratalab/fscap/internal/service/retention"
	"github.com/stratalab/fscap/internal/service/server"
)

const version = "0.1.0"

func main() {
	// Parse command line flags
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("fscap", version)
		return
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting fscap",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	// Open database
	store, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err), zap.String("path", cfg.Database.Path))
	}
	defer store.Close()

	// Build the watched filesystem set and persist it
	filesystems := make([]*domain.Filesystem, 0, len(cfg.Filesystems))
	for _, fsCfg := range cfg.Filesystems {
		kind, err := domain.ParseKind(fsCfg.Type)
		if err != nil {
			log.Fatal("invalid filesystem type", zap.String("type", fsCfg.Type), zap.Error(err))
		}
		fs, err := domain.NewFilesystem(fsCfg.Device, fsCfg.Mountpoint, kind)
		if err != nil {
			log.Fatal("invalid filesystem configuration",
				zap.String("device", fsCfg.Device),
				zap.String("mountpoint", fsCfg.Mountpoint),
				zap.Error(err))
		}
		if err := store.UpsertFilesystem(fs); err != nil {
			log.Fatal("failed to register filesystem", zap.Error(err))
		}
		filesystems = append(filesystems, fs)
	}

	// Wire host adapters
	mountManager := mounts.NewManager()
	toolbox := command.NewToolbox()
	runner := command.NewRunner(log)

	// Domain events surface capacity changes at info level
	dispatcher := event.NewInMemoryDispatcher()
	dispatcher.Subscribe(event.NewLoggingHandler(log))

	// Create poller
	pollerCfg := &poller.Config{
		Interval:     cfg.Scan.GetInterval(),
		ProbeTimeout: cfg.Scan.GetProbeTimeout(),
	}
	pollerService := poller.New(pollerCfg, filesystems, store, mountManager, toolbox, runner, dispatcher, log)

	// Create retention service
	retentionCfg := &retention.Config{
		MaxAge:        cfg.Retention.GetMaxAge(),
		PruneInterval: cfg.Retention.GetPruneInterval(),
	}
	retentionService := retention.New(retentionCfg, store, log)

	// Create HTTP server
	serverCfg := &server.Config{
		BindAddr:      cfg.HTTP.BindAddr,
		AdminUsername: cfg.HTTP.AdminUsername,
		AdminPassword: cfg.HTTP.AdminPassword,
		ScanInterval:  cfg.Scan.GetInterval(),
		ReadTimeout:   cfg.HTTP.GetReadTimeout(),
		WriteTimeout:  cfg.HTTP.GetWriteTimeout(),
		IdleTimeout:   cfg.HTTP.GetIdleTimeout(),
	}
	httpServer := server.New(serverCfg, store, pollerService, log)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start HTTP server
	go func() {
		if err := httpServer.Start(); err != nil {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Start poller
	go func() {
		if err := pollerService.Start(ctx); err != nil && err != context.Canceled {
			log.Error("poller stopped with error", zap.Error(err))
		}
	}()

	// Start retention service
	go func() {
		if err := retentionService.Start(ctx); err != nil && err != context.Canceled {
			log.Error("retention service stopped with error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Info("agent started successfully",
		zap.String("http_addr", cfg.HTTP.BindAddr),
		zap.Int("filesystems", len(filesystems)),
	)
	<-sigChan

	log.Info("shutdown signal received, stopping services...")

	// Cancel context to stop poller and retention
	cancel()

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	pollerService.Stop()
	retentionService.Stop()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		log.Error("failed to stop HTTP server gracefully", zap.Error(err))
	}

	log.Info("agent stopped successfully")
}
