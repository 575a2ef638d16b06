package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// sqlarFileMode is the st_mode recorded for archived images: a regular file
// with 0644 permissions.
const sqlarFileMode = 0o100644

// ArchiveSaver stores images in a SQLite Archive file.
//
// Entries are stored uncompressed, which the format signals by sz being equal
// to the blob length. Saving an existing name replaces the entry.
type ArchiveSaver struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// path is the archive file path.
	path string
}

// OpenArchive opens or creates the archive at path.
func OpenArchive(ctx context.Context, path string) (*ArchiveSaver, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return nil, fmt.Errorf("failed to create archive directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	// SQLite only supports one writer, and saves are sequential anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	a := &ArchiveSaver{db: db, path: path}
	if err := a.createTable(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create archive table: %w", err)
	}

	return a, nil
}

// createTable creates the sqlar table defined by the SQLite Archive format.
func (a *ArchiveSaver) createTable(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS sqlar (
		name TEXT PRIMARY KEY,
		mode INT,
		mtime INT,
		sz INT,
		data BLOB
	);`
	_, err := a.db.ExecContext(ctx, schema)
	return err
}

// Path returns the archive file path.
func (a *ArchiveSaver) Path() string {
	return a.path
}

// Close closes the archive.
func (a *ArchiveSaver) Close() error {
	return a.db.Close()
}

// Save stores data under name, replacing any previous entry.
func (a *ArchiveSaver) Save(ctx context.Context, name string, data []byte) error {
	if err := validateName(name); err != nil {
		return err
	}

	query := `INSERT OR REPLACE INTO sqlar (name, mode, mtime, sz, data) VALUES (?, ?, ?, ?, ?)`
	if _, err := a.db.ExecContext(ctx, query, name, sqlarFileMode, time.Now().Unix(), len(data), data); err != nil {
		return fmt.Errorf("failed to archive %s: %w", name, err)
	}
	return nil
}

// Names lists archived entry names in name order.
func (a *ArchiveSaver) Names(ctx context.Context) ([]string, error) {
	rows, err := a.db.QueryContext(ctx, `SELECT name FROM sqlar ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list archive: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan archive entry: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Read returns the stored bytes of an entry.
func (a *ArchiveSaver) Read(ctx context.Context, name string) ([]byte, error) {
	var data []byte
	err := a.db.QueryRowContext(ctx, `SELECT data FROM sqlar WHERE name = ?`, name).Scan(&data)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive entry %s: %w", name, err)
	}
	return data, nil
}
