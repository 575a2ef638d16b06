// Package storage persists exported images under their assigned names.
//
// Two savers are provided:
//   - DirSaver writes each image as a file in a directory. Writes go through a
//     temporary file and a rename, so a failed save leaves nothing behind.
//   - ArchiveSaver stores images in a SQLite Archive (.sqlar) file through
//     modernc.org/sqlite. The sqlite3 CLI can list and extract the result with
//     "sqlite3 images.sqlar -Ax".
//
// Both are synchronous: Save returns only after the bytes are durable or the
// write has failed.
package storage
