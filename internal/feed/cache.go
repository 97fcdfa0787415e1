package feed

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/ytget/scrolly/internal/model"
)

// SnapshotFileName is the feed snapshot file inside the cache directory
const SnapshotFileName = "feed.cbor.zst"

// snapshotVersion guards against reading snapshots written by an
// incompatible release
const snapshotVersion = 1

// Snapshot is the persisted copy of the last loaded feed
type Snapshot struct {
	Version int          `cbor:"v"`
	SavedAt time.Time    `cbor:"t"`
	Posts   []model.Post `cbor:"p"`
}

// Cache stores feed snapshots on disk
type Cache struct {
	dir  string
	enc  cbor.EncMode
	zenc *zstd.Encoder
	zdec *zstd.Decoder
}

// NewCache creates a snapshot cache in dir
func NewCache(dir string) (*Cache, error) {
	enc, err := cbor.EncOptions{Time: cbor.TimeRFC3339Nano}.EncMode()
	if err != nil {
		return nil, fmt.Errorf("cbor encoder: %w", err)
	}
	zenc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	zdec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	return &Cache{dir: dir, enc: enc, zenc: zenc, zdec: zdec}, nil
}

// Save writes posts as the current snapshot
func (c *Cache) Save(posts []model.Post) error {
	raw, err := c.enc.Marshal(Snapshot{Version: snapshotVersion, SavedAt: time.Now().UTC(), Posts: posts})
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	compressed := c.zenc.EncodeAll(raw, nil)

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	tmp, err := os.CreateTemp(c.dir, SnapshotFileName+".*")
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if _, err := io.Copy(tmp, bytes.NewReader(compressed)); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	return os.Rename(tmp.Name(), c.path())
}

// Load returns the stored snapshot, or nil when there is none
func (c *Cache) Load() (*Snapshot, error) {
	compressed, err := os.ReadFile(c.path())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	raw, err := c.zdec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot: %w", err)
	}
	var snap Snapshot
	if err := cbor.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, nil
	}
	return &snap, nil
}

// Clear removes the stored snapshot
func (c *Cache) Clear() error {
	err := os.Remove(c.path())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (c *Cache) path() string {
	return filepath.Join(c.dir, SnapshotFileName)
}
