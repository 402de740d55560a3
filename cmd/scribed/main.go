package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"scribe/internal/config"
	"scribe/internal/daemon"
	"scribe/internal/hoststats"
	"scribe/internal/ingest"
	"scribe/internal/logging"
	"scribe/internal/pipeline"
	"scribe/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("validate config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("prepare directories: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	st, err := store.Open(cfg)
	if err != nil {
		logger.Error("open telemetry store", logging.Error(err))
		return
	}

	ingestor := ingest.New(cfg, st, logger)
	manager := pipeline.NewManager(cfg, ingestor, logger)

	var collector *hoststats.Collector
	if cfg.HostStats.Enabled {
		collector = hoststats.NewCollector(cfg, logger)
	}

	d, err := daemon.New(cfg, st, logger, manager, collector)
	if err != nil {
		logger.Error("create daemon", logging.Error(err))
		return
	}
	defer d.Close()

	if err := d.Start(ctx); err != nil {
		logger.Error("daemon start", logging.Error(err))
		return
	}

	<-ctx.Done()
	logger.Info("scribed shutting down")
}
