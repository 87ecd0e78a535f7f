package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// Diskv is a local-device file store, the default backend for the CLI
// editor. Values land under ~/.config/flowbox/boards unless another base
// path is configured.
type Diskv struct {
	d *diskv.Diskv
}

// NewDiskv creates a file-backed store rooted at baseDir. An empty baseDir
// selects the default config location.
func NewDiskv(baseDir string) (*Diskv, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "flowbox", "boards")
	}
	d := diskv.New(diskv.Options{
		BasePath:          baseDir,
		AdvancedTransform: keyToPath,
		InverseTransform:  pathToKey,
		CacheSizeMax:      1024 * 1024, // 1MB
	})
	return &Diskv{d: d}, nil
}

// keyToPath maps a key to a hashed filename in a two-character fan-out
// directory, keeping arbitrary key strings filesystem-safe.
func keyToPath(key string) *diskv.PathKey {
	sum := sha256.Sum256([]byte(key))
	name := hex.EncodeToString(sum[:])
	return &diskv.PathKey{
		Path:     []string{name[:2]},
		FileName: name + ".json",
	}
}

// pathToKey cannot recover the original key from its hash; it returns the
// stored filename. The store never iterates keys, so this is only ever
// used by diskv's internal walk.
func pathToKey(pk *diskv.PathKey) string {
	return strings.TrimSuffix(pk.FileName, ".json")
}

func (s *Diskv) Load(ctx context.Context, key string) ([]byte, error) {
	if !s.d.Has(key) {
		return nil, ErrNotFound
	}
	data, err := s.d.Read(key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

func (s *Diskv) Save(ctx context.Context, key string, data []byte) error {
	if err := s.d.Write(key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *Diskv) Delete(ctx context.Context, key string) error {
	if !s.d.Has(key) {
		return nil
	}
	if err := s.d.Erase(key); err != nil {
		return fmt.Errorf("erase %s: %w", key, err)
	}
	return nil
}

func (s *Diskv) Close() error { return nil }

var _ Store = (*Diskv)(nil)
