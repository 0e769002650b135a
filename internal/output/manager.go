package output

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/dreamware/moviegen/internal/record"
	"github.com/dreamware/moviegen/internal/shard"
	"github.com/dreamware/moviegen/internal/storage"
)

// MiB is the unit the bulk size cap is expressed in
const MiB = 1024 * 1024

const (
	// DefaultBulkName is the bulk file name
	DefaultBulkName = "avaliacoes_completas100MB.json"
	// DefaultShardPrefix is prepended to the shard number in shard file names
	DefaultShardPrefix = "avaliacoes_parte_"
	// DefaultShardSize is the number of records per shard file
	DefaultShardSize = 75000
	// DefaultCheckEvery is the number of records between bulk checkpoints
	DefaultCheckEvery = 30000
	// DefaultMaxBulkBytes is the bulk file size that stops generation
	DefaultMaxBulkBytes = 50 * MiB
)

// ErrFinished is returned when recording into a manager after Finish
var ErrFinished = errors.New("output manager already finished")

// State is the generation state tracked by the manager
type State string

const (
	// StateGenerating means the size cap has not been reached
	StateGenerating State = "generating"
	// StateStopped means the cap was reached or the run was finished
	StateStopped State = "stopped"
)

// Options configures a Manager
type Options struct {
	BulkName     string // Object name of the bulk file in the bulk store
	ShardPrefix  string // Shard file name prefix
	ShardSize    int    // Records per shard file
	CheckEvery   int    // Records between checkpoints
	MaxBulkBytes int64  // Bulk size that stops generation
}

// DefaultOptions returns the built-in output settings
func DefaultOptions() Options {
	return Options{
		BulkName:     DefaultBulkName,
		ShardPrefix:  DefaultShardPrefix,
		ShardSize:    DefaultShardSize,
		CheckEvery:   DefaultCheckEvery,
		MaxBulkBytes: DefaultMaxBulkBytes,
	}
}

// Summary describes the files a run produced
type Summary struct {
	Records    int   // Records in the bulk file
	BulkBytes  int64 // Final bulk file size
	ShardFiles int   // Shard files written
}

// Manager owns the full corpus and the current shard and persists both.
// It is not safe for concurrent use.
type Manager struct {
	opts   Options
	bulk   storage.Store
	shards storage.Store
	logger *log.Logger

	corpus  []record.Record
	current *shard.Shard
	written []string
	state   State

	finished bool
	summary  Summary
}

// NewManager creates a manager writing the bulk file to bulk and shard files
// to shards. A nil logger discards output.
func NewManager(bulk, shards storage.Store, opts Options, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Manager{
		opts:    opts,
		bulk:    bulk,
		shards:  shards,
		logger:  logger,
		current: shard.NewShard(1, opts.ShardSize),
		state:   StateGenerating,
	}
}

// Init prepares both stores and writes an empty bulk file so its size can be
// checked before the first checkpoint.
func (m *Manager) Init() error {
	for _, s := range []storage.Store{m.shards, m.bulk} {
		if p, ok := s.(storage.Preparer); ok {
			if err := p.Prepare(); err != nil {
				return err
			}
		}
	}
	if err := m.bulk.Put(m.opts.BulkName, []byte("[]")); err != nil {
		return fmt.Errorf("initialize bulk file: %w", err)
	}
	return nil
}

// Record appends r to the full corpus and to the current shard. A shard left
// full by the caller is flushed first so both accumulators stay in step.
func (m *Manager) Record(r record.Record) error {
	if m.finished {
		return ErrFinished
	}
	if _, err := m.MaybeFlushShard(); err != nil {
		return err
	}
	m.corpus = append(m.corpus, r)
	m.current.Add(r)
	return nil
}

// Total returns the number of records recorded so far
func (m *Manager) Total() int {
	return len(m.corpus)
}

// Corpus returns the full corpus in generation order. The slice must not be modified.
func (m *Manager) Corpus() []record.Record {
	return m.corpus
}

// State returns the current generation state
func (m *Manager) State() State {
	return m.state
}

// ShardNames returns the names of shard files written so far, in order
func (m *Manager) ShardNames() []string {
	return append([]string(nil), m.written...)
}

// MaybeFlushShard writes the current shard once it is full and starts the
// next one. It reports whether a file was written.
func (m *Manager) MaybeFlushShard() (bool, error) {
	if !m.current.Full() {
		return false, nil
	}
	name, err := m.writeShard()
	if err != nil {
		return false, err
	}
	m.logger.Printf("shard file written: %s (%d ratings)", name, m.current.Len())
	m.current = m.current.Next()
	return true, nil
}

// MaybeCheckpoint rewrites the bulk file every CheckEvery records and reports
// whether its size reached MaxBulkBytes. Reaching the cap stops the manager.
func (m *Manager) MaybeCheckpoint() (bool, error) {
	total := m.Total()
	if m.opts.CheckEvery < 1 || total == 0 || total%m.opts.CheckEvery != 0 {
		return false, nil
	}

	size, err := m.Checkpoint()
	if err != nil {
		return false, err
	}
	m.logger.Printf("progress: %d ratings generated, bulk file at %.2f MB", total, float64(size)/MiB)

	if size >= m.opts.MaxBulkBytes {
		m.logger.Printf("bulk file size cap of %.2f MB reached", float64(m.opts.MaxBulkBytes)/MiB)
		m.state = StateStopped
		return true, nil
	}
	return false, nil
}

// Checkpoint serializes the full corpus over the bulk file and returns the
// resulting file size.
func (m *Manager) Checkpoint() (int64, error) {
	data, err := record.Encode(m.corpus)
	if err != nil {
		return 0, fmt.Errorf("encode bulk file: %w", err)
	}
	if err := m.bulk.Put(m.opts.BulkName, data); err != nil {
		return 0, fmt.Errorf("write bulk file: %w", err)
	}
	size, err := m.bulk.Size(m.opts.BulkName)
	if err != nil {
		return 0, fmt.Errorf("stat bulk file: %w", err)
	}
	return size, nil
}

// Finish writes the bulk file a final time and flushes any residual records
// to a last shard file that keeps the current shard number. Calling Finish
// again returns the first summary without writing.
func (m *Manager) Finish() (Summary, error) {
	if m.finished {
		return m.summary, nil
	}

	size, err := m.Checkpoint()
	if err != nil {
		return Summary{}, err
	}
	m.logger.Printf("bulk file finished: %s (%d ratings, %.2f MB)", m.opts.BulkName, m.Total(), float64(size)/MiB)

	if !m.current.Empty() {
		name, err := m.writeShard()
		if err != nil {
			return Summary{}, err
		}
		m.logger.Printf("final shard file written: %s (%d ratings)", name, m.current.Len())
	}

	m.state = StateStopped
	m.finished = true
	m.summary = Summary{
		Records:    m.Total(),
		BulkBytes:  size,
		ShardFiles: len(m.written),
	}
	return m.summary, nil
}

func (m *Manager) writeShard() (string, error) {
	name := m.current.Name(m.opts.ShardPrefix)
	data, err := m.current.Encode()
	if err != nil {
		return "", fmt.Errorf("encode shard %s: %w", name, err)
	}
	if err := m.shards.Put(name, data); err != nil {
		return "", fmt.Errorf("write shard %s: %w", name, err)
	}
	m.current.MarkFlushed()
	m.written = append(m.written, name)
	return name, nil
}
