package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"MetalsWatch/internal/config"
	"MetalsWatch/internal/pricecache"
	"MetalsWatch/internal/recorder"
	"MetalsWatch/internal/scheduler"
	"MetalsWatch/internal/source"
	"MetalsWatch/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] MetalsWatch starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init price source
	var src source.Source
	if cfg.DataSource.Mode == config.ModeSpot {
		src = source.NewSpotSource(cfg.DataSource.BaseURL, cfg.Proxy)
	} else {
		src = source.NewMockSource(cfg.DataSource.MockSeed)
	}
	log.Printf("[INFO] price source: %s", src.Name())

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init cache and store; store creation triggers the initial refresh.
	cache := pricecache.New(src)
	st := store.New(ctx, cache)

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, st, rec)
	if err := sched.RegisterAll(cfg.Schedule.RefreshCron, cfg.Schedule.HistoryCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	log.Println("[INFO] MetalsWatch is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] MetalsWatch stopped")
}
