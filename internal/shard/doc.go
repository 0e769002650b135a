// Package shard implements the fixed-capacity batch that becomes one shard
// file: a contiguous slice of generated records, written once and never
// rewritten.
//
// # Lifecycle
//
//	NewShard(1, N) ──Add──▶ filling ──Add (N-th)──▶ full
//	                                                 │
//	                               MarkFlushed ◀─────┘
//	                                   │
//	                                 Next() ──▶ NewShard(2, N) ...
//
// A shard in ShardStateFull rejects further records; the owner writes it,
// marks it flushed and continues with Next. The last shard of a run may be
// flushed while still filling, so it holds fewer than N records.
//
// # Naming
//
// Shard files are named prefix + number + ".json", numbers starting at 1:
//
//	avaliacoes_parte_1.json
//	avaliacoes_parte_2.json
//	...
//
// FileName and ParseFileName convert between numbers and names, and
// SortNames orders a directory listing by number, so avaliacoes_parte_10
// follows avaliacoes_parte_9 rather than avaliacoes_parte_1.
//
// # Thread Safety
//
// Shards are owned by a single output manager and are not safe for
// concurrent use.
package shard
