// Package main implements moviegen, a generator of synthetic movie-rating
// corpora for exercising recommendation pipelines.
//
// A run fabricates users, each rating between 10 and 50 distinct synthetic
// movies, and writes every rating to two places:
//
//	┌──────────────────────────────────────────────┐
//	│                 moviegen                      │
//	├──────────────────────────────────────────────┤
//	│  bulk file    all ratings, rewritten at each  │
//	│               checkpoint, capped in size      │
//	│  shard dir    <prefix><n>.json, fixed count   │
//	│               of ratings per file             │
//	└──────────────────────────────────────────────┘
//
// Generation stops once a checkpoint finds the bulk file at or above its
// cap. SIGINT and SIGTERM stop generation early; the final bulk and shard
// files are still written.
//
// Configuration (environment, optionally from a .env file):
//   - GEN_BULK_FILE: Bulk file path (default: "avaliacoes_completas100MB.json")
//   - GEN_SHARD_DIR: Shard directory (default: "avaliacoes_divididas")
//   - GEN_SHARD_PREFIX: Shard file prefix (default: "avaliacoes_parte_")
//   - GEN_MAX_BULK_MB: Bulk size cap in MiB (default: 50)
//   - GEN_SHARD_SIZE: Ratings per shard file (default: 75000)
//   - GEN_CHECK_EVERY: Ratings between checkpoints (default: 30000)
//   - GEN_MAX_GENRES: Genres per movie, at most (default: 3)
//   - GEN_MIN_RATINGS, GEN_MAX_RATINGS: Ratings per user (default: 10, 50)
//   - GEN_MAX_RECORDS: Stop after this many ratings (default: 0, no limit)
//   - GEN_SEED: Random seed for reproducible runs (default: 0, random)
//   - GEN_ATOMIC_WRITES: Replace files by rename (default: true)
//   - GEN_SHARD_COMPRESSION: "none" or "lz4" (default: "none")
//
// Example usage:
//
//	GEN_MAX_BULK_MB=5 GEN_SHARD_SIZE=10000 ./moviegen
//
// Exit codes:
//   - 0: Generation finished, including after an interrupt
//   - 1: Invalid configuration or a filesystem failure
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/dreamware/moviegen/internal/config"
	"github.com/dreamware/moviegen/internal/generator"
	"github.com/dreamware/moviegen/internal/output"
)

// logFatal is a variable to allow mocking log.Fatal in tests.
var logFatal = log.Fatalf

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg, err := config.FromEnv()
	if err != nil {
		logFatal("config: %v", err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log.Default()); err != nil {
		logFatal("generation failed: %v", err)
	}
}

// run generates one corpus as described by cfg and logs its summary
func run(ctx context.Context, cfg config.Config, logger *log.Logger) error {
	runner, err := generator.New(cfg, logger)
	if err != nil {
		return err
	}

	logger.Printf("starting generation")
	logger.Printf("bulk file %q will be capped at about %.2f MB", cfg.BulkFile, float64(cfg.MaxBulkBytes)/output.MiB)

	summary, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	logger.Printf("bulk file: %s (%d ratings, %.2f MB)", cfg.BulkFile, summary.Records, float64(summary.BulkBytes)/output.MiB)
	logger.Printf("%d shard files saved in %q", summary.ShardFiles, cfg.ShardDir)
	logger.Printf("users processed: %d", summary.Users)
	logger.Printf("generation complete")
	return nil
}
