//go:build ignore
// +build ignore

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"psp-advisor/internal/config"
	"psp-advisor/internal/services/database"
	s3service "psp-advisor/internal/services/s3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("🔍 Testing AWS Connections...")
	fmt.Println()

	fmt.Println("1️⃣  Checking Environment Variables:")
	checkEnvVar("AWS_REGION")
	checkEnvVar("S3_BUCKET")
	checkEnvVar("DB_HOST")
	checkEnvVar("DB_PASSWORD")
	checkEnvVar("SES_SENDER_EMAIL")
	checkEnvVar("LEAD_INBOX_EMAIL")
	fmt.Println()

	fmt.Println("2️⃣  Testing Database Connection:")
	testDatabaseConnection(cfg)
	fmt.Println()

	fmt.Println("3️⃣  Testing Catalog Snapshot:")
	testCatalogSnapshot(cfg)
	fmt.Println()

	fmt.Println("✅ Connection tests complete!")
}

func checkEnvVar(name string) {
	value := os.Getenv(name)
	if value == "" {
		fmt.Printf("   ❌ %s: NOT SET\n", name)
		return
	}
	masked := value
	if name == "DB_PASSWORD" {
		masked = "********"
	}
	fmt.Printf("   ✅ %s: %s\n", name, masked)
}

func testDatabaseConnection(cfg *config.Config) {
	if !cfg.DatabaseConfigured() {
		fmt.Println("   ❌ Database not configured, skipping database test")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.New(cfg)
	if err != nil {
		fmt.Printf("   ❌ Database connection failed: %v\n", err)
		return
	}
	defer db.Close()

	fmt.Println("   ✅ Database connection successful!")

	var tableCount int
	err = db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM information_schema.tables
		WHERE table_schema = 'public' AND table_name IN ('providers', 'provider_fees', 'scoring_settings')
	`).Scan(&tableCount)
	if err == nil {
		fmt.Printf("   📊 Tables found: %d/3 (providers, provider_fees, scoring_settings)\n", tableCount)
	}
}

func testCatalogSnapshot(cfg *config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := s3service.NewService(ctx, cfg)
	if err != nil {
		fmt.Printf("   ❌ S3 client failed: %v\n", err)
		return
	}

	providers, err := store.GetCatalog(ctx)
	if err != nil {
		fmt.Printf("   ❌ Snapshot s3://%s/%s unreadable: %v\n", cfg.S3Bucket, cfg.CatalogSnapshotKey, err)
		return
	}
	fmt.Printf("   ✅ Snapshot holds %d providers\n", len(providers))
}
