package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamware/moviegen/internal/config"
	"github.com/dreamware/moviegen/internal/output"
	"github.com/dreamware/moviegen/internal/record"
	"github.com/dreamware/moviegen/internal/shard"
	"github.com/dreamware/moviegen/internal/storage"
)

// testConfig writes into a fresh temp directory with a fixed seed
func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.BulkFile = filepath.Join(dir, "all.json")
	cfg.ShardDir = filepath.Join(dir, "split")
	cfg.Seed = 1234
	return cfg
}

func readRecords(t *testing.T, path string) []record.Record {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	records, err := record.Decode(data)
	require.NoError(t, err)
	return records
}

// readShards returns every shard file's records in shard number order
func readShards(t *testing.T, cfg config.Config) [][]record.Record {
	t.Helper()
	_, store := cfg.Stores()
	names, err := store.List()
	require.NoError(t, err)

	var out [][]record.Record
	for _, name := range shard.SortNames(cfg.ShardPrefix, names) {
		data, err := store.Get(name)
		require.NoError(t, err)
		records, err := record.Decode(data)
		require.NoError(t, err)
		out = append(out, records)
	}
	return out
}

// fakeSessions returns fixed-size sessions with sequential titles
type fakeSessions struct {
	size  int
	calls int
	err   error
}

func (f *fakeSessions) Generate(userID string, _, _ int) ([]record.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.calls++
	records := make([]record.Record, f.size)
	for i := range records {
		records[i] = record.Record{
			UserID: userID,
			Title:  fmt.Sprintf("Title %d", i),
			Genres: []string{"drama"},
			Rating: 3.0,
		}
	}
	return records, nil
}

func memoryRunner(sessions Sessions, opts output.Options, maxRecords int, logger *log.Logger) (*Runner, *storage.MemoryStore, *storage.MemoryStore) {
	bulk, shards := storage.NewMemoryStore(), storage.NewMemoryStore()
	n := 0
	return &Runner{
		Sessions:   sessions,
		Output:     output.NewManager(bulk, shards, opts, logger),
		MinRatings: 1,
		MaxRatings: 1,
		MaxRecords: maxRecords,
		NewUserID: func() string {
			n++
			return fmt.Sprintf("user-%d", n)
		},
		Logger: logger,
	}, bulk, shards
}

// TestRunSevenRecordsThreeShards checks the shard layout for a bounded run
func TestRunSevenRecordsThreeShards(t *testing.T) {
	cfg := testConfig(t)
	cfg.ShardSize = 3
	cfg.MaxRecords = 7

	runner, err := New(cfg, nil)
	require.NoError(t, err)

	summary, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 7, summary.Records)
	assert.Equal(t, 3, summary.ShardFiles)
	assert.Equal(t, 1, summary.Users)

	all := readRecords(t, cfg.BulkFile)
	require.Len(t, all, 7)

	shards := readShards(t, cfg)
	require.Len(t, shards, 3)
	assert.Len(t, shards[0], 3)
	assert.Len(t, shards[1], 3)
	assert.Len(t, shards[2], 1)

	var joined []record.Record
	for _, s := range shards {
		joined = append(joined, s...)
	}
	assert.Equal(t, all, joined)

	info, err := os.Stat(cfg.BulkFile)
	require.NoError(t, err)
	assert.Equal(t, info.Size(), summary.BulkBytes)
}

// TestRunStopsAtSizeCap checks a tiny cap with a check after every record
func TestRunStopsAtSizeCap(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxBulkBytes = 4 * 1024
	cfg.CheckEvery = 1

	runner, err := New(cfg, nil)
	require.NoError(t, err)

	summary, err := runner.Run(context.Background())
	require.NoError(t, err)

	// A record encodes to roughly 150 to 250 bytes
	assert.Greater(t, summary.Records, 10)
	assert.Less(t, summary.Records, 40)

	info, err := os.Stat(cfg.BulkFile)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, info.Size(), cfg.MaxBulkBytes)
	assert.Less(t, info.Size(), cfg.MaxBulkBytes+1024, "bulk file should stop just above the cap")

	all := readRecords(t, cfg.BulkFile)
	assert.Len(t, all, summary.Records)

	// Every record landed in the single residual shard
	shards := readShards(t, cfg)
	require.Len(t, shards, 1)
	assert.Equal(t, all, shards[0])
}

// TestRunSessionProperties checks per-session title uniqueness across a run
func TestRunSessionProperties(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxRecords = 2000
	cfg.ShardSize = 500

	runner, err := New(cfg, nil)
	require.NoError(t, err)
	summary, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, summary.ShardFiles)

	titlesByUser := make(map[string]map[string]bool)
	var order []string
	for _, r := range readRecords(t, cfg.BulkFile) {
		if titlesByUser[r.UserID] == nil {
			titlesByUser[r.UserID] = make(map[string]bool)
			order = append(order, r.UserID)
		}
		require.False(t, titlesByUser[r.UserID][r.Title], "user %s rated %q twice", r.UserID, r.Title)
		titlesByUser[r.UserID][r.Title] = true

		require.GreaterOrEqual(t, float64(r.Rating), 1.0)
		require.LessOrEqual(t, float64(r.Rating), 5.0)
		require.NotEmpty(t, r.Genres)
	}
	assert.Len(t, order, summary.Users)
}

// TestRunSeedIsReproducible checks equal seeds produce identical files
func TestRunSeedIsReproducible(t *testing.T) {
	run := func() []byte {
		cfg := testConfig(t)
		cfg.MaxRecords = 120
		runner, err := New(cfg, nil)
		require.NoError(t, err)
		_, err = runner.Run(context.Background())
		require.NoError(t, err)
		data, err := os.ReadFile(cfg.BulkFile)
		require.NoError(t, err)
		return data
	}

	assert.Equal(t, run(), run())
}

// TestRunCompressedShards checks lz4 shard output
func TestRunCompressedShards(t *testing.T) {
	cfg := testConfig(t)
	cfg.ShardSize = 10
	cfg.MaxRecords = 25
	cfg.ShardCompression = storage.CodecLZ4

	runner, err := New(cfg, nil)
	require.NoError(t, err)
	summary, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.ShardFiles)

	_, err = os.Stat(filepath.Join(cfg.ShardDir, "avaliacoes_parte_1.json.lz4"))
	require.NoError(t, err)

	var joined []record.Record
	for _, s := range readShards(t, cfg) {
		joined = append(joined, s...)
	}
	assert.Equal(t, readRecords(t, cfg.BulkFile), joined)
}

// TestRunCancelled checks a cancelled run still writes its final files
func TestRunCancelled(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sessions := &fakeSessions{size: 5}
	runner, bulk, shards := memoryRunner(sessions, output.Options{
		BulkName: "all.json", ShardPrefix: "p_", ShardSize: 2, CheckEvery: 100, MaxBulkBytes: output.MiB,
	}, 0, logger)

	summary, err := runner.Run(ctx)
	require.NoError(t, err)

	assert.Zero(t, summary.Records)
	assert.Zero(t, summary.Users)
	assert.Zero(t, sessions.calls)
	data, err := bulk.Get("all.json")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
	names, _ := shards.List()
	assert.Empty(t, names)
	assert.Contains(t, buf.String(), "interrupted")
}

// TestRunProgressLogging checks the per-user progress lines
func TestRunProgressLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	runner, _, _ := memoryRunner(&fakeSessions{size: 2}, output.Options{
		BulkName: "all.json", ShardPrefix: "p_", ShardSize: 1000, CheckEvery: 100000, MaxBulkBytes: output.MiB,
	}, 450, logger)

	summary, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 225, summary.Users)
	assert.Equal(t, 450, summary.Records)
	assert.Equal(t, 2, strings.Count(buf.String(), "users processed"))
	assert.Contains(t, buf.String(), "progress: 200 users processed, 400 ratings total")
	assert.Contains(t, buf.String(), "final shard file written: p_1.json (450 ratings)")
}

// TestRunPartialSessionCountsUser checks a session cut short is still counted
func TestRunPartialSessionCountsUser(t *testing.T) {
	runner, bulk, _ := memoryRunner(&fakeSessions{size: 5}, output.Options{
		BulkName: "all.json", ShardPrefix: "p_", ShardSize: 10, CheckEvery: 100, MaxBulkBytes: output.MiB,
	}, 7, nil)

	summary, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Users)
	assert.Equal(t, 7, summary.Records)

	data, _ := bulk.Get("all.json")
	all, err := record.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "user-2", all[6].UserID)
	assert.Equal(t, "Title 1", all[6].Title)
}

// TestRunErrors checks session and filesystem errors propagate
func TestRunErrors(t *testing.T) {
	t.Run("session error", func(t *testing.T) {
		boom := errors.New("boom")
		runner, _, _ := memoryRunner(&fakeSessions{err: boom}, output.DefaultOptions(), 0, nil)
		_, err := runner.Run(context.Background())
		assert.ErrorIs(t, err, boom)
	})

	t.Run("unwritable shard directory", func(t *testing.T) {
		cfg := testConfig(t)
		blocker := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
		cfg.ShardDir = filepath.Join(blocker, "split")

		runner, err := New(cfg, nil)
		require.NoError(t, err)
		_, err = runner.Run(context.Background())
		assert.Error(t, err)
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.ShardSize = 0
		_, err := New(cfg, nil)
		assert.ErrorIs(t, err, config.ErrInvalid)
	})
}
