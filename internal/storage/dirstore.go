package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pierrec/lz4/v4"
)

// Codec selects how object contents are framed on disk
type Codec string

const (
	// CodecNone writes contents unchanged
	CodecNone Codec = "none"
	// CodecLZ4 wraps contents in an LZ4 frame and appends ".lz4" to the file name
	CodecLZ4 Codec = "lz4"
)

const lz4Ext = ".lz4"

// ParseCodec maps a codec name to a Codec. The empty string means CodecNone.
func ParseCodec(name string) (Codec, error) {
	switch Codec(strings.ToLower(strings.TrimSpace(name))) {
	case "", CodecNone:
		return CodecNone, nil
	case CodecLZ4:
		return CodecLZ4, nil
	default:
		return "", fmt.Errorf("unknown codec %q", name)
	}
}

// DirStore implements Store on top of a filesystem directory.
// Each object is one file directly under Root.
type DirStore struct {
	Root   string // Directory holding the objects
	Atomic bool   // Write through a temp file and rename over the target
	Codec  Codec  // On-disk framing
}

// NewDirStore creates a store rooted at dir with atomic writes and no compression
func NewDirStore(dir string) *DirStore {
	return &DirStore{Root: dir, Atomic: true, Codec: CodecNone}
}

// Prepare creates the root directory if it is absent
func (d *DirStore) Prepare() error {
	if err := os.MkdirAll(d.Root, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", d.Root, err)
	}
	return nil
}

// Path returns the on-disk path for a named object
func (d *DirStore) Path(name string) string {
	if d.Codec == CodecLZ4 {
		name += lz4Ext
	}
	return filepath.Join(d.Root, name)
}

// Put writes an object, truncating any previous contents.
// With Atomic set, a crash mid-write leaves the previous file intact.
func (d *DirStore) Put(name string, data []byte) error {
	path := d.Path(name)
	target := path
	if d.Atomic {
		target = path + ".tmp"
	}

	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}
	if err := d.encode(f, data); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", target, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", target, err)
	}

	if d.Atomic {
		if err := os.Rename(target, path); err != nil {
			return fmt.Errorf("rename %s: %w", target, err)
		}
	}
	return nil
}

func (d *DirStore) encode(w io.Writer, data []byte) error {
	if d.Codec != CodecLZ4 {
		_, err := w.Write(data)
		return err
	}
	zw := lz4.NewWriter(w)
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// Get reads an object, undoing any codec framing
func (d *DirStore) Get(name string) ([]byte, error) {
	raw, err := os.ReadFile(d.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if d.Codec != CodecLZ4 {
		return raw, nil
	}
	return io.ReadAll(lz4.NewReader(bytes.NewReader(raw)))
}

// Size reports the on-disk size of an object, after compression
func (d *DirStore) Size(name string) (int64, error) {
	info, err := os.Stat(d.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// List returns the names of all objects under Root in lexical order.
// Temp files from interrupted atomic writes are skipped.
func (d *DirStore) List() ([]string, error) {
	entries, err := os.ReadDir(d.Root)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasSuffix(name, ".tmp") {
			continue
		}
		if d.Codec == CodecLZ4 {
			if !strings.HasSuffix(name, lz4Ext) {
				continue
			}
			name = strings.TrimSuffix(name, lz4Ext)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
