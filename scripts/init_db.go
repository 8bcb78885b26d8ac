//go:build ignore
// +build ignore

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"psp-advisor/internal/config"
	"psp-advisor/internal/models"
	"psp-advisor/internal/services/database"
)

func main() {
	fmt.Println("=== Database Initialization Script ===")
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	// First connect to the default 'postgres' database to create ours
	databaseURL := cfg.DatabaseURL()
	postgresURL := strings.Replace(databaseURL, "/"+cfg.DBName+"?", "/postgres?", 1)
	fmt.Println("📡 Connecting to PostgreSQL server...")

	adminConn, err := pgx.Connect(ctx, postgresURL)
	if err != nil {
		fmt.Printf("❌ Failed to connect to PostgreSQL: %v\n", err)
		os.Exit(1)
	}

	var exists bool
	err = adminConn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.DBName).Scan(&exists)
	if err != nil {
		fmt.Printf("❌ Failed to check database existence: %v\n", err)
		adminConn.Close(ctx)
		os.Exit(1)
	}

	if !exists {
		fmt.Printf("📦 Creating '%s' database...\n", cfg.DBName)
		_, err = adminConn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{cfg.DBName}.Sanitize())
		if err != nil {
			fmt.Printf("❌ Failed to create database: %v\n", err)
			adminConn.Close(ctx)
			os.Exit(1)
		}
		fmt.Printf("✅ Database '%s' created!\n", cfg.DBName)
	} else {
		fmt.Printf("✅ Database '%s' already exists\n", cfg.DBName)
	}
	adminConn.Close(ctx)

	fmt.Printf("📡 Connecting to %s database...\n", cfg.DBName)
	db, err := database.New(cfg)
	if err != nil {
		fmt.Printf("❌ Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	fmt.Println("🚀 Applying catalog schema...")
	if err := db.Migrate(ctx); err != nil {
		fmt.Printf("❌ Failed to apply schema: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✅ Schema applied successfully!")
	fmt.Println()

	settings := database.NewSettingsRepository(db)
	stored, err := settings.GetWeights(ctx)
	if err != nil {
		fmt.Printf("⚠️  Warning: Stored weights are unreadable: %v\n", err)
	}
	if stored == nil && err == nil {
		if err := settings.SaveWeights(ctx, models.DefaultWeights()); err != nil {
			fmt.Printf("❌ Failed to seed default weights: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✅ Seeded default scoring weights")
	} else if stored != nil {
		fmt.Printf("✅ Scoring weights already stored (%s)\n", stored.Kind())
	}

	fmt.Println("🔍 Verifying database setup...")
	catalog, err := database.NewProviderRepository(db).GetCatalog(ctx)
	if err != nil {
		fmt.Printf("⚠️  Warning: Could not load catalog: %v\n", err)
	} else {
		fmt.Printf("   📦 Active providers in database: %d\n", len(catalog))
		for _, p := range catalog {
			fmt.Printf("   %d. %s (%s) %d fee records\n", p.ID, p.NameEN, p.Slug, len(p.Fees))
		}
	}

	fmt.Println()
	fmt.Println("🎉 Database initialization completed successfully!")
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Test the connection: go run scripts/test_connection.go")
	fmt.Println("  2. Run a recommendation: go run ./cmd/advisor recommend --profile merchant.yaml --catalog providers.json")
}
