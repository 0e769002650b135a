package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/dreamware/moviegen/internal/config"
)

// TestRun tests a small end-to-end generation through the entry point
func TestRun(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.BulkFile = filepath.Join(dir, "all.json")
	cfg.ShardDir = filepath.Join(dir, "split")
	cfg.ShardSize = 4
	cfg.MaxRecords = 10
	cfg.Seed = 7

	var buf bytes.Buffer
	if err := run(context.Background(), cfg, log.New(&buf, "", 0)); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if _, err := os.Stat(cfg.BulkFile); err != nil {
		t.Errorf("Expected bulk file: %v", err)
	}
	for i := 1; i <= 3; i++ {
		name := filepath.Join(cfg.ShardDir, fmt.Sprintf("avaliacoes_parte_%d.json", i))
		if _, err := os.Stat(name); err != nil {
			t.Errorf("Expected shard file %s: %v", name, err)
		}
	}

	out := buf.String()
	for _, want := range []string{
		"(10 ratings,",
		"3 shard files saved",
		"users processed: 1",
		"generation complete",
	} {
		if !bytes.Contains([]byte(out), []byte(want)) {
			t.Errorf("Expected log output to contain %q, got:\n%s", want, out)
		}
	}
}

// TestRunInvalidConfig tests configuration errors are returned
func TestRunInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.CheckEvery = 0

	err := run(context.Background(), cfg, log.New(&bytes.Buffer{}, "", 0))
	if err == nil {
		t.Fatal("Expected error for invalid config")
	}
}

// TestLogFatalIsMockable tests the fatal hook can be replaced
func TestLogFatalIsMockable(t *testing.T) {
	original := logFatal
	defer func() { logFatal = original }()

	var got string
	logFatal = func(format string, v ...any) {
		got = fmt.Sprintf(format, v...)
	}

	t.Setenv("GEN_SHARD_SIZE", "not-a-number")
	main()

	if got == "" {
		t.Fatal("Expected logFatal to be called")
	}
}
