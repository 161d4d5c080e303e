package main

import (
	"context"
	"flag"
	"log"
	"os"

	"FlipPulse/internal/di"
	"FlipPulse/pkg/config"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	once := flag.Bool("once", false, "run a single evaluation pass and exit")
	top := flag.Int("top", 0, "limit printed rows in -once mode (0 = config default)")
	flag.Parse()

	// Load config
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s tax_model=%s bank=%d slots=%d", cfg.Environment, cfg.Flip.TaxModel, cfg.Flip.Bank, cfg.Flip.Slots)

	// Wire DI: Initialize all dependencies
	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	if *once {
		n := *top
		if n == 0 {
			n = cfg.Flip.Top
		}
		if err := app.RunOnce(context.Background(), n); err != nil {
			log.Printf("app error: %v", err)
			os.Exit(1)
		}
		return
	}

	// Run application (blocks until signal)
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
