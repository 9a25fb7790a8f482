package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"go-crimewatch/config"
	"go-crimewatch/cronjobs"
	"go-crimewatch/handlers"
	"go-crimewatch/neighborhoods"
	"go-crimewatch/routes"
	"go-crimewatch/snapshot"
	"go-crimewatch/socrata"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading config from environment")
	}

	cfg := config.Load()

	// Load the community reference table once. Everything joins against
	// it, so failing here is fatal.
	table, err := neighborhoods.LoadCSV(cfg.CommunitiesCSV)
	if err != nil {
		log.Fatalf("Failed to load communities table: %v", err)
	}
	log.Printf("Loaded %d communities from %s", len(table.Records()), cfg.CommunitiesCSV)

	client := socrata.NewClient(cfg.SodaHost, cfg.SodaDataset, cfg.SodaAppToken)
	if cfg.SodaAppToken != "" {
		log.Println("SODA_APP_TOKEN loaded")
	}

	store := snapshot.NewStore(cfg.SnapshotTTL)

	// Initialize cron jobs
	cronjobs.InitCronJobs(store, func(k snapshot.Key) error {
		_, err := handlers.RefreshSnapshot(context.Background(), client, table, store, cfg, k)
		return err
	})

	r := routes.SetupRouter(client, table, store, cfg)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
