package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"climb/internal/diag"
	"climb/internal/source"
)

// Current schema version - increment when CachedResult format changes
const diskCacheSchemaVersion uint16 = 1

// Digest identifies a cache entry.
type Digest [32]byte

// DiskCache stores batch results keyed by file content and evaluation mode.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedNote is a diagnostic note without its file.
type CachedNote struct {
	Start uint32 `msgpack:"start"`
	End   uint32 `msgpack:"end"`
	Msg   string `msgpack:"msg"`
}

// CachedResult is the on-disk form of one evaluated file.
type CachedResult struct {
	Schema uint16 `msgpack:"schema"`
	Value  int32  `msgpack:"value"`
	Failed bool   `msgpack:"failed"`

	// Error details, set when Failed.
	Code    uint16       `msgpack:"code,omitempty"`
	Start   uint32       `msgpack:"start,omitempty"`
	End     uint32       `msgpack:"end,omitempty"`
	Message string       `msgpack:"message,omitempty"`
	Notes   []CachedNote `msgpack:"notes,omitempty"`
}

// OpenDiskCache opens the cache under $XDG_CACHE_HOME/app (or ~/.cache/app).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir, creating it if needed.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// CacheKey hashes file content together with everything that changes its result.
func CacheKey(content []byte, opts Options) Digest {
	h := sha256.New()
	_, _ = h.Write(content)
	_, _ = fmt.Fprintf(h, "\x00schema=%d;overflow=%s;strict=%t;depth=%d;norm=%d",
		diskCacheSchemaVersion, opts.Overflow, opts.Strict, opts.MaxDepth, opts.Normalize)
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "results", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *CachedResult) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	payload.Schema = diskCacheSchemaVersion
	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload. Missing entries and entries written by another
// schema version report false without error.
func (c *DiskCache) Get(key Digest, out *CachedResult) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "results"))
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func toCached(res *Result) *CachedResult {
	out := &CachedResult{Value: res.Value, Failed: res.Failed()}
	if !out.Failed {
		return out
	}
	de, ok := diag.AsError(res.Err)
	if !ok {
		out.Message = res.Err.Error()
		return out
	}
	out.Code = uint16(de.Code)
	out.Start, out.End = de.Span.Start, de.Span.End
	out.Message = de.Message
	for _, n := range de.Notes {
		out.Notes = append(out.Notes, CachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
	}
	return out
}

// fromCached rebuilds a Result for file. Spans are re-anchored to file.
func fromCached(c *CachedResult, fs *source.FileSet, file *source.File, opts Options) *Result {
	res := newResult(fs, file, opts)
	if !c.Failed {
		res.Value = c.Value
		res.Evaluated = true
		return res
	}
	de := diag.Errorf(diag.Code(c.Code), source.Span{File: file.ID, Start: c.Start, End: c.End}, "%s", c.Message)
	for _, n := range c.Notes {
		de = de.WithNote(source.Span{File: file.ID, Start: n.Start, End: n.End}, n.Msg)
	}
	res.Err = de
	diag.ReportErr(diag.BagReporter{Bag: res.Bag}, de)
	return res
}
