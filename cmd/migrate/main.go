package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/Hawk5760/calmora-well/internal/config"
	"github.com/Hawk5760/calmora-well/internal/database"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	ctx := context.Background()
	if err := database.RunMigrations(ctx, cfg.Database.URL); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Println("migrations completed")
}
