package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"catalogsync_api/config"
	"catalogsync_api/internal/reconcile/app"
	"catalogsync_api/pkg/dbconnect/postgres"
)

func main() {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config %s: %v", configPath, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connector := postgres.NewPgConnector(&cfg.Postgres)
	server := app.NewSyncServer(connector, *cfg, os.Stdout)

	stats, err := server.Run(ctx)
	if err != nil {
		log.Fatalf("Sync run failed: %v", err)
	}
	fmt.Print(stats)
}
