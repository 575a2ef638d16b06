package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Permissions for created directories and saved images.
const (
	dirPerm  = 0750
	filePerm = 0644
)

// DirSaver writes images into a directory.
// An existing file with the same name is replaced.
type DirSaver struct {
	dir string
}

// NewDirSaver returns a DirSaver for dir, creating it if needed.
func NewDirSaver(dir string) (*DirSaver, error) {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &DirSaver{dir: dir}, nil
}

// Dir returns the target directory.
func (s *DirSaver) Dir() string {
	return s.dir
}

// Save writes data to dir/name atomically.
func (s *DirSaver) Save(ctx context.Context, name string, data []byte) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+".*.part")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName) //nolint:errcheck // Best effort cleanup
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close() //nolint:errcheck // The write error is reported instead
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close() //nolint:errcheck // The sync error is reported instead
		return fmt.Errorf("failed to sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", name, err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("failed to save %s: %w", name, err)
	}
	committed = true

	return nil
}
