package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/zstd"
)

// Common errors for cache operations.
var (
	// ErrWriteFailure is returned when a cache entry cannot be written.
	// The entry is discarded whole; no partial file is left behind.
	ErrWriteFailure = errors.New("cache write failure")

	// ErrCorrupted is returned when a cached file cannot be decoded.
	ErrCorrupted = errors.New("cache data corrupted")
)

const (
	// rawExt is the extension of uncompressed audio entries.
	rawExt = ".pcm"

	// compressedExt is the extension of zstd-compressed audio entries.
	compressedExt = ".pcm.zst"

	// compressThreshold skips compression for tiny clips.
	compressThreshold = 1024
)

// Stats holds cache metrics for the current process.
type Stats struct {
	Entries     int64 // Files on disk
	Size        int64 // Bytes on disk
	Hits        int64 // Lookups served without synthesis
	Misses      int64 // Lookups that required synthesis
	Synthesized int64 // Successful synthesis calls
	LastAccess  time.Time
}

// HitRate returns hits / (hits + misses), or 0 before any lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Synthesizer produces audio bytes for a cache miss. *tts.OpenAIEngine
// satisfies it.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Config holds configuration for a disk cache.
type Config struct {
	// Root directory for cache files. Created if missing.
	Root string

	// CompressionLevel is the zstd level for stored entries, 0 disables
	// compression.
	CompressionLevel int
}

// DiskCache maps keys to audio files under a fixed root directory.
// Entries persist across runs and are never evicted automatically; the
// cache only grows until cleared. A single interactive process is the
// only writer, but writes are still atomic (temp file then rename) so a
// concurrent reader can never observe a truncated entry.
type DiskCache struct {
	root string

	// Compression
	enableCompression bool
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder

	mu    sync.Mutex
	stats Stats
}

// Handle points at a cached audio artifact.
type Handle struct {
	Key  Key
	Path string

	cache *DiskCache
}

// New creates a disk cache rooted at config.Root.
func New(config Config) (*DiskCache, error) {
	if err := os.MkdirAll(config.Root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	dc := &DiskCache{
		root:              config.Root,
		enableCompression: config.CompressionLevel > 0,
	}

	if dc.enableCompression {
		var err error
		dc.encoder, err = zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(config.CompressionLevel)))
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
		}
		dc.decoder, err = zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
		}
	}

	return dc, nil
}

// Root returns the cache root directory.
func (dc *DiskCache) Root() string { return dc.root }

// GetOrCreate returns a handle for the key's audio, synthesizing and
// storing it on first use. A hit never touches the network. On synthesis
// or write failure no file is created and the error is surfaced to the
// caller, who decides whether to continue without audio.
func (dc *DiskCache) GetOrCreate(ctx context.Context, key Key, synth Synthesizer) (Handle, error) {
	id := key.ID()

	if path, ok := dc.lookup(id); ok {
		dc.mu.Lock()
		dc.stats.Hits++
		dc.stats.LastAccess = time.Now()
		dc.mu.Unlock()

		log.Debug("Audio cache hit", "id", id)
		return Handle{Key: key, Path: path, cache: dc}, nil
	}

	dc.mu.Lock()
	dc.stats.Misses++
	dc.stats.LastAccess = time.Now()
	dc.mu.Unlock()

	log.Debug("Audio cache miss", "id", id)

	audio, err := synth.Synthesize(ctx, key.Text)
	if err != nil {
		return Handle{}, err
	}

	path, err := dc.store(id, audio)
	if err != nil {
		return Handle{}, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}

	dc.mu.Lock()
	dc.stats.Synthesized++
	dc.mu.Unlock()

	return Handle{Key: key, Path: path, cache: dc}, nil
}

// Contains reports whether the key already has a stored artifact.
func (dc *DiskCache) Contains(key Key) bool {
	_, ok := dc.lookup(key.ID())
	return ok
}

// Bytes reads the handle's audio, decompressing if the entry is stored
// compressed. A file that cannot be decoded is removed so the next
// lookup re-synthesizes it.
func (h Handle) Bytes() ([]byte, error) {
	data, err := os.ReadFile(h.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to read cached audio: %w", err)
	}

	if !strings.HasSuffix(h.Path, compressedExt) {
		return data, nil
	}

	if h.cache == nil || h.cache.decoder == nil {
		return nil, fmt.Errorf("%w: compressed entry without decoder", ErrCorrupted)
	}
	out, err := h.cache.decoder.DecodeAll(data, nil)
	if err != nil {
		os.Remove(h.Path)
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	return out, nil
}

// Stats returns cache metrics. Entry count and size are recomputed from
// disk; hit counters cover the current process only.
func (dc *DiskCache) Stats() Stats {
	dc.mu.Lock()
	stats := dc.stats
	dc.mu.Unlock()

	entries, err := dc.entries()
	if err != nil {
		return stats
	}
	for _, e := range entries {
		stats.Entries++
		if info, err := os.Stat(e); err == nil {
			stats.Size += info.Size()
		}
	}
	return stats
}

// Clear removes every cached entry, along with any stray temp file an
// interrupted write left behind.
func (dc *DiskCache) Clear() error {
	entries, err := dc.entries()
	if err != nil {
		return err
	}

	strays, err := filepath.Glob(filepath.Join(dc.root, "*.tmp"))
	if err != nil {
		return fmt.Errorf("unable to scan cache: %w", err)
	}

	for _, e := range append(entries, strays...) {
		if err := os.Remove(e); err != nil {
			return fmt.Errorf("unable to remove cache entry: %w", err)
		}
	}
	return nil
}

// lookup finds the file for an identifier, preferring the compressed form.
func (dc *DiskCache) lookup(id string) (string, bool) {
	for _, ext := range []string{compressedExt, rawExt} {
		path := filepath.Join(dc.root, id+ext)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// store writes audio under the identifier, atomically: the bytes go to a
// temp path first and are renamed into place only on success, so an
// interrupt mid-write never leaves a partial entry.
func (dc *DiskCache) store(id string, audio []byte) (string, error) {
	data := audio
	ext := rawExt
	if dc.enableCompression && len(audio) > compressThreshold {
		compressed := dc.encoder.EncodeAll(audio, nil)
		// Only keep compression when it actually reduces size
		if len(compressed) < len(audio) {
			data = compressed
			ext = compressedExt
		}
	}

	path := filepath.Join(dc.root, id+ext)
	tempPath := path + ".tmp"

	file, err := os.Create(tempPath)
	if err != nil {
		return "", err
	}

	_, err = file.Write(data)
	closeErr := file.Close()

	if err != nil {
		os.Remove(tempPath)
		return "", err
	}
	if closeErr != nil {
		os.Remove(tempPath)
		return "", closeErr
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return "", err
	}
	return path, nil
}

// entries lists the cache files currently on disk.
func (dc *DiskCache) entries() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dc.root, "*"+rawExt))
	if err != nil {
		return nil, fmt.Errorf("unable to scan cache: %w", err)
	}
	compressed, err := filepath.Glob(filepath.Join(dc.root, "*"+compressedExt))
	if err != nil {
		return nil, fmt.Errorf("unable to scan cache: %w", err)
	}
	return append(matches, compressed...), nil
}
