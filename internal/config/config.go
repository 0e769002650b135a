// Package config loads generator settings. Every setting has a built-in
// default and may be overridden by an environment variable.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dreamware/moviegen/internal/catalog"
	"github.com/dreamware/moviegen/internal/output"
	"github.com/dreamware/moviegen/internal/session"
	"github.com/dreamware/moviegen/internal/storage"
)

// ErrInvalid is returned for settings that fail validation
var ErrInvalid = errors.New("invalid configuration")

// DefaultShardDir is the directory shard files are written to
const DefaultShardDir = "avaliacoes_divididas"

// Config holds all configuration for a generation run
type Config struct {
	BulkFile         string        // GEN_BULK_FILE
	ShardDir         string        // GEN_SHARD_DIR
	ShardPrefix      string        // GEN_SHARD_PREFIX
	MaxBulkBytes     int64         // GEN_MAX_BULK_MB, converted from MiB
	ShardSize        int           // GEN_SHARD_SIZE
	CheckEvery       int           // GEN_CHECK_EVERY
	MaxGenres        int           // GEN_MAX_GENRES
	MinRatings       int           // GEN_MIN_RATINGS
	MaxRatings       int           // GEN_MAX_RATINGS
	MaxRecords       int           // GEN_MAX_RECORDS, 0 for no limit
	Seed             uint64        // GEN_SEED, 0 for a random seed
	AtomicWrites     bool          // GEN_ATOMIC_WRITES
	ShardCompression storage.Codec // GEN_SHARD_COMPRESSION
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		BulkFile:         output.DefaultBulkName,
		ShardDir:         DefaultShardDir,
		ShardPrefix:      output.DefaultShardPrefix,
		MaxBulkBytes:     output.DefaultMaxBulkBytes,
		ShardSize:        output.DefaultShardSize,
		CheckEvery:       output.DefaultCheckEvery,
		MaxGenres:        catalog.DefaultMaxGenres,
		MinRatings:       session.DefaultMinRatings,
		MaxRatings:       session.DefaultMaxRatings,
		AtomicWrites:     true,
		ShardCompression: storage.CodecNone,
	}
}

// FromEnv loads the configuration from the process environment
func FromEnv() (Config, error) {
	return Load(os.Getenv)
}

// Load builds a configuration from defaults overridden by lookup, then
// validates it. lookup returns "" for unset variables.
func Load(lookup func(string) string) (Config, error) {
	cfg := Default()
	var err error

	getenv := func(k, def string) string {
		if v := lookup(k); v != "" {
			return v
		}
		return def
	}
	intVar := func(k string, dst *int) {
		if err != nil {
			return
		}
		v := lookup(k)
		if v == "" {
			return
		}
		n, perr := strconv.Atoi(v)
		if perr != nil {
			err = fmt.Errorf("%w: %s=%q is not an integer", ErrInvalid, k, v)
			return
		}
		*dst = n
	}

	cfg.BulkFile = getenv("GEN_BULK_FILE", cfg.BulkFile)
	cfg.ShardDir = getenv("GEN_SHARD_DIR", cfg.ShardDir)
	cfg.ShardPrefix = getenv("GEN_SHARD_PREFIX", cfg.ShardPrefix)

	intVar("GEN_SHARD_SIZE", &cfg.ShardSize)
	intVar("GEN_CHECK_EVERY", &cfg.CheckEvery)
	intVar("GEN_MAX_GENRES", &cfg.MaxGenres)
	intVar("GEN_MIN_RATINGS", &cfg.MinRatings)
	intVar("GEN_MAX_RATINGS", &cfg.MaxRatings)
	intVar("GEN_MAX_RECORDS", &cfg.MaxRecords)
	if err != nil {
		return Config{}, err
	}

	if v := lookup("GEN_MAX_BULK_MB"); v != "" {
		mb, perr := strconv.ParseFloat(v, 64)
		if perr != nil {
			return Config{}, fmt.Errorf("%w: GEN_MAX_BULK_MB=%q is not a number", ErrInvalid, v)
		}
		cfg.MaxBulkBytes = int64(mb * output.MiB)
	}
	if v := lookup("GEN_SEED"); v != "" {
		seed, perr := strconv.ParseUint(v, 10, 64)
		if perr != nil {
			return Config{}, fmt.Errorf("%w: GEN_SEED=%q is not an unsigned integer", ErrInvalid, v)
		}
		cfg.Seed = seed
	}
	if v := lookup("GEN_ATOMIC_WRITES"); v != "" {
		b, perr := strconv.ParseBool(v)
		if perr != nil {
			return Config{}, fmt.Errorf("%w: GEN_ATOMIC_WRITES=%q is not a boolean", ErrInvalid, v)
		}
		cfg.AtomicWrites = b
	}
	if v := lookup("GEN_SHARD_COMPRESSION"); v != "" {
		codec, perr := storage.ParseCodec(v)
		if perr != nil {
			return Config{}, fmt.Errorf("%w: GEN_SHARD_COMPRESSION: %v", ErrInvalid, perr)
		}
		cfg.ShardCompression = codec
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the generator cannot run with
func (c Config) Validate() error {
	switch {
	case c.BulkFile == "":
		return fmt.Errorf("%w: bulk file path is empty", ErrInvalid)
	case c.ShardDir == "":
		return fmt.Errorf("%w: shard directory is empty", ErrInvalid)
	case c.MaxBulkBytes <= 0:
		return fmt.Errorf("%w: bulk size cap must be positive", ErrInvalid)
	case c.ShardSize < 1:
		return fmt.Errorf("%w: shard size must be at least 1, got %d", ErrInvalid, c.ShardSize)
	case c.CheckEvery < 1:
		return fmt.Errorf("%w: check interval must be at least 1, got %d", ErrInvalid, c.CheckEvery)
	case c.MaxGenres < 1:
		return fmt.Errorf("%w: max genres must be at least 1, got %d", ErrInvalid, c.MaxGenres)
	case c.MinRatings < 1 || c.MaxRatings < c.MinRatings:
		return fmt.Errorf("%w: ratings per user range [%d, %d]", ErrInvalid, c.MinRatings, c.MaxRatings)
	case c.MaxRecords < 0:
		return fmt.Errorf("%w: max records must not be negative", ErrInvalid)
	}
	return nil
}

// OutputOptions returns the output manager settings for c. The bulk file
// is addressed by its base name inside the store for its directory.
func (c Config) OutputOptions() output.Options {
	return output.Options{
		BulkName:     filepath.Base(c.BulkFile),
		ShardPrefix:  c.ShardPrefix,
		ShardSize:    c.ShardSize,
		CheckEvery:   c.CheckEvery,
		MaxBulkBytes: c.MaxBulkBytes,
	}
}

// Stores returns the bulk and shard stores for c
func (c Config) Stores() (bulk, shards *storage.DirStore) {
	bulk = storage.NewDirStore(filepath.Dir(c.BulkFile))
	bulk.Atomic = c.AtomicWrites

	shards = storage.NewDirStore(c.ShardDir)
	shards.Atomic = c.AtomicWrites
	shards.Codec = c.ShardCompression
	return bulk, shards
}
