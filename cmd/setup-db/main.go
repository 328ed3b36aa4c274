package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		log.Fatal("DB_URL is required")
	}

	parsed, err := url.Parse(dbURL)
	if err != nil {
		log.Fatalf("failed to parse DB URL: %v", err)
	}

	dbName := strings.TrimPrefix(parsed.Path, "/")
	if dbName == "" {
		log.Fatal("no database name in URL")
	}
	dbName, err = url.QueryUnescape(dbName)
	if err != nil {
		log.Fatalf("failed to unescape database name: %v", err)
	}

	// Connect to the server's maintenance database, not the target one,
	// since the target may not exist yet.
	adminURL := *parsed
	adminURL.Path = "/postgres"

	log.Printf("connecting to PostgreSQL at %s...", parsed.Host)

	const maxRetries = 30
	for attempt := 1; attempt <= maxRetries; attempt++ {
		db, err := sql.Open("pgx", adminURL.String())
		if err != nil {
			log.Fatalf("open connection: %v", err)
		}

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = db.PingContext(pingCtx)
		cancel()
		if err != nil {
			db.Close()
			if attempt < maxRetries {
				log.Printf("attempt %d: server not ready: %v", attempt, err)
				time.Sleep(2 * time.Second)
				continue
			}
			log.Fatalf("failed to connect after %d attempts: %v", maxRetries, err)
		}

		ctx := context.Background()
		var exists bool
		err = db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT FROM pg_database WHERE datname = $1)`, dbName).Scan(&exists)
		if err != nil {
			log.Fatalf("check database: %v", err)
		}

		if exists {
			log.Printf("database %q already exists", dbName)
		} else {
			quoted := strings.ReplaceAll(dbName, `"`, `""`)
			if _, err := db.ExecContext(ctx, fmt.Sprintf(`CREATE DATABASE "%s"`, quoted)); err != nil {
				log.Fatalf("create database: %v", err)
			}
			log.Printf("database %q created", dbName)
		}

		db.Close()
		return
	}
}
