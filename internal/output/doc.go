// Package output persists generated ratings, owning the two accumulators a
// run fills and the stopping decision based on the bulk file's size.
//
// # Overview
//
// Every record passes through Manager.Record, which appends it to both
// accumulators in one step:
//
//	             Record(r)
//	                 │
//	      ┌──────────┴──────────┐
//	      ▼                     ▼
//	┌───────────┐        ┌─────────────┐
//	│  corpus   │        │ current     │
//	│ (all recs)│        │ shard (≤ N) │
//	└───────────┘        └─────────────┘
//	      │                     │
//	 every K records        when full
//	      ▼                     ▼
//	 bulk file            <prefix><n>.json
//	 (rewritten)          (written once)
//
// # Bulk File
//
// The bulk file always holds the full corpus. MaybeCheckpoint rewrites it
// every CheckEvery records, stats it and compares the size with
// MaxBulkBytes; reaching the cap moves the manager from StateGenerating to
// StateStopped. Writes go through the bulk storage.Store, which for a
// storage.DirStore with Atomic set replaces the file by rename so a crash
// mid-checkpoint leaves the previous checkpoint readable.
//
// # Shard Files
//
// Shards are numbered from 1. A full shard is written by MaybeFlushShard
// and replaced by an empty shard with the next number. Finish writes any
// residual records under the current number, so shard numbers are always
// contiguous and concatenating shard files in number order reproduces the
// bulk file's records in order.
//
// # Usage
//
//	m := output.NewManager(bulkStore, shardStore, output.DefaultOptions(), log.Default())
//	if err := m.Init(); err != nil {
//	    return err
//	}
//	for _, r := range records {
//	    if err := m.Record(r); err != nil {
//	        return err
//	    }
//	    if _, err := m.MaybeFlushShard(); err != nil {
//	        return err
//	    }
//	    if reached, err := m.MaybeCheckpoint(); err != nil || reached {
//	        break
//	    }
//	}
//	summary, err := m.Finish()
package output
