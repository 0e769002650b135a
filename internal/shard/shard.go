package shard

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/dreamware/moviegen/internal/record"
)

// ShardState represents the current state of a shard
type ShardState string

const (
	// ShardStateFilling means the shard is accepting records
	ShardStateFilling ShardState = "filling"
	// ShardStateFull means the shard holds Capacity records and awaits a flush
	ShardStateFull ShardState = "full"
	// ShardStateFlushed means the shard file has been written
	ShardStateFlushed ShardState = "flushed"
)

// Ext is the file extension of shard files
const Ext = ".json"

// Shard is a numbered, fixed-capacity batch of records destined for one file.
// Numbers start at 1 and increase by one per flushed shard.
type Shard struct {
	ID       int             // 1-based shard number
	Capacity int             // Records per full shard
	Records  []record.Record // Records in insertion order
	State    ShardState      // Current shard state
}

// ShardInfo contains metadata about a shard
type ShardInfo struct {
	ID       int        // Shard number
	State    ShardState // Current state
	Count    int        // Number of records
	Capacity int        // Records per full shard
}

// NewShard creates an empty shard. Capacity values below 1 are treated as 1.
func NewShard(id, capacity int) *Shard {
	if capacity < 1 {
		capacity = 1
	}
	return &Shard{
		ID:       id,
		Capacity: capacity,
		Records:  make([]record.Record, 0, min(capacity, 4096)),
		State:    ShardStateFilling,
	}
}

// Add appends a record. It returns false without appending once the shard is full.
func (s *Shard) Add(r record.Record) bool {
	if s.Full() {
		return false
	}
	s.Records = append(s.Records, r)
	if len(s.Records) >= s.Capacity {
		s.State = ShardStateFull
	}
	return true
}

// Len returns the number of records held
func (s *Shard) Len() int {
	return len(s.Records)
}

// Full reports whether the shard has reached its capacity
func (s *Shard) Full() bool {
	return len(s.Records) >= s.Capacity
}

// Empty reports whether the shard holds no records
func (s *Shard) Empty() bool {
	return len(s.Records) == 0
}

// Name returns the shard's file name: prefix, number, extension
func (s *Shard) Name(prefix string) string {
	return FileName(prefix, s.ID)
}

// Encode serializes the shard's records as a pretty-printed JSON array
func (s *Shard) Encode() ([]byte, error) {
	return record.Encode(s.Records)
}

// MarkFlushed records that the shard's file has been written
func (s *Shard) MarkFlushed() {
	s.State = ShardStateFlushed
}

// Next returns an empty shard numbered one past s with the same capacity
func (s *Shard) Next() *Shard {
	return NewShard(s.ID+1, s.Capacity)
}

// Info returns metadata about the shard
func (s *Shard) Info() ShardInfo {
	return ShardInfo{
		ID:       s.ID,
		State:    s.State,
		Count:    len(s.Records),
		Capacity: s.Capacity,
	}
}

// FileName builds the file name of shard id
func FileName(prefix string, id int) string {
	return fmt.Sprintf("%s%d%s", prefix, id, Ext)
}

// ParseFileName extracts the shard number from a file name built by FileName
func ParseFileName(prefix, name string) (int, bool) {
	digits, ok := strings.CutPrefix(name, prefix)
	if !ok {
		return 0, false
	}
	digits, ok = strings.CutSuffix(digits, Ext)
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(digits)
	if err != nil || id < 1 || FileName(prefix, id) != name {
		return 0, false
	}
	return id, true
}

// SortNames orders shard file names by shard number. Names that are not
// shard files for prefix are dropped.
func SortNames(prefix string, names []string) []string {
	type entry struct {
		id   int
		name string
	}
	var entries []entry
	for _, name := range names {
		if id, ok := ParseFileName(prefix, name); ok {
			entries = append(entries, entry{id: id, name: name})
		}
	}
	slices.SortFunc(entries, func(a, b entry) int { return a.id - b.id })

	sorted := make([]string, len(entries))
	for i, e := range entries {
		sorted[i] = e.name
	}
	return sorted
}
