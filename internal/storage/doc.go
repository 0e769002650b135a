// Package storage provides the named-object stores the output layer writes
// generated files through, with a filesystem implementation for real runs
// and an in-memory one for tests.
//
// # Overview
//
// The output manager never touches the filesystem directly. It writes
// whole objects by name through the Store interface:
//
//	┌─────────────────────────────────────┐
//	│          Output Manager             │
//	│   (bulk checkpoints, shard files)   │
//	└─────────────────────────────────────┘
//	                 │
//	                 ▼
//	┌─────────────────────────────────────┐
//	│          Store Interface            │
//	│      (Get, Put, Size, List)         │
//	└─────────────────────────────────────┘
//	                 │
//	        ┌────────┴────────┐
//	        ▼                 ▼
//	┌──────────────┐  ┌──────────────┐
//	│  DirStore    │  │ MemoryStore  │
//	│ (files, lz4) │  │  (tests)     │
//	└──────────────┘  └──────────────┘
//
// # Implementations
//
// DirStore: one file per object directly under Root
//   - Atomic writes: contents go to "<name>.tmp", then rename over the target
//   - In-place writes when Atomic is false: the target is truncated first,
//     so an interrupted write leaves a partial file
//   - Optional LZ4 framing: files get a ".lz4" suffix; Get decompresses and
//     Size reports the compressed size
//   - Prepare creates Root; Put does not
//
// MemoryStore: map of names to byte slices with sync.RWMutex
//   - Contents are copied on Put and Get
//   - Writes(name) counts Put calls, for asserting checkpoint cadence
//
// # Error Handling
//
// ErrNotFound: object doesn't exist
//   - Returned by Get() and Size()
//
// Filesystem errors from DirStore are wrapped with the path involved and
// returned unchanged otherwise; callers match them with errors.Is.
//
// # Usage Examples
//
//	shards := storage.NewDirStore("avaliacoes_divididas")
//	shards.Codec = storage.CodecLZ4
//	if err := shards.Prepare(); err != nil {
//	    log.Fatalf("prepare: %v", err)
//	}
//	if err := shards.Put("avaliacoes_parte_1.json", data); err != nil {
//	    log.Fatalf("write: %v", err)
//	}
//	size, err := shards.Size("avaliacoes_parte_1.json")
package storage
