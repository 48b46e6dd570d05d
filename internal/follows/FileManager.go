package follows

import (
	"comicbot/internal/models"
	"errors"
	"fmt"
	json "github.com/goccy/go-json"
	"os"
	"path/filepath"
	"strings"
)

const (
	storeFileMode   = 0o644
	storeDirMode    = 0o755
	tempFilePattern = ".follows-*.json.tmp"
)

// FileManager reads and atomically replaces the follow document on disk.
type FileManager struct {
	path string
}

func NewFileManager(path string) *FileManager {
	return &FileManager{path: path}
}

func (f *FileManager) Path() string {
	return f.path
}

// Load returns the persisted document. A missing file is an empty document.
func (f *FileManager) Load() (models.FollowDocument, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.FollowDocument{}, nil
		}
		return nil, fmt.Errorf("read follow store %s: %w", f.path, err)
	}

	var doc models.FollowDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		var names []string
		var namesByUser map[string][]string
		if json.Unmarshal(data, &names) == nil || json.Unmarshal(data, &namesByUser) == nil {
			return nil, fmt.Errorf("%w: %s uses the legacy list-of-names layout, which has no volume ids", models.ErrStoreCorrupt, f.path)
		}
		return nil, fmt.Errorf("%w: %s: %v", models.ErrStoreCorrupt, f.path, err)
	}
	if doc == nil {
		doc = models.FollowDocument{}
	}
	for userID, list := range doc {
		for i, fs := range list {
			if strings.TrimSpace(fs.Name) == "" || fs.VolumeID <= 0 {
				return nil, fmt.Errorf("%w: %s: entry %d of user %s needs a name and a positive volume_id", models.ErrStoreCorrupt, f.path, i, userID)
			}
		}
	}
	return doc, nil
}

// Save writes doc to a temp file in the same directory, syncs it and renames it over the
// target, so a crash leaves either the old or the new document, never a truncated one.
func (f *FileManager) Save(doc models.FollowDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode follow store: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, storeDirMode); err != nil {
		return fmt.Errorf("create follow store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp follow store: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp follow store: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp follow store: %w", err)
	}
	if err := tmp.Chmod(storeFileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp follow store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp follow store: %w", err)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("replace follow store: %w", err)
	}
	cleanup = false
	return nil
}
