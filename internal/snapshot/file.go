package snapshot

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ogrim/mimir/internal/models"
)

// LoadFile reads and tolerantly decodes the snapshot file at path. The second
// return value reports whether a file was actually read: absence or malformed
// content is not an error state, just an empty collection.
func LoadFile(path string) (models.Snapshot, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.EmptySnapshot(), false
	}
	return Decode(data), true
}

// WriteFile atomically writes data to path: tmp file, fsync, rename.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("snapshot: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".mimir-tmp-*")
	if err != nil {
		return fmt.Errorf("snapshot: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("snapshot: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("snapshot: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("snapshot: close temp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("snapshot: rename: %w", err)
	}
	success = true
	return nil
}
