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
	pool, err := database.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	if err := database.Seed(ctx, pool); err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Println("seed completed")
}
