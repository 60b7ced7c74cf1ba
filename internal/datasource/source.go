// Package datasource reads event records from their on-disk sources: JSON
// event files and read-only SQLite databases. It detects the source type
// from the file itself, not the extension alone, so renamed exports still
// load.
package datasource

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SourceType identifies the type of event source.
type SourceType string

const (
	// SourceTypeJSON is a JSON event file.
	SourceTypeJSON SourceType = "json"
	// SourceTypeSQLite is a SQLite database.
	SourceTypeSQLite SourceType = "sqlite"
)

// DataSource represents one on-disk event source.
type DataSource struct {
	Type    SourceType `json:"type"`
	Path    string     `json:"path"`
	ModTime time.Time  `json:"mod_time"`
	Size    int64      `json:"size"`
}

// String returns a human-readable description of the source.
func (s DataSource) String() string {
	return fmt.Sprintf("%s (%s, mod=%s, %d bytes)",
		s.Path, s.Type, s.ModTime.Format(time.RFC3339), s.Size)
}

// sqliteMagic is the first 16 bytes of every SQLite database file.
var sqliteMagic = []byte("SQLite format 3\x00")

// Detect stats the file and sniffs its type. The SQLite header wins over any
// extension; otherwise the extension decides, defaulting to JSON.
func Detect(path string) (DataSource, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return DataSource{}, fmt.Errorf("resolving %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return DataSource{}, fmt.Errorf("stat %s: %w", abs, err)
	}
	if info.IsDir() {
		return DataSource{}, fmt.Errorf("%s is a directory", abs)
	}

	src := DataSource{Path: abs, ModTime: info.ModTime(), Size: info.Size()}

	f, err := os.Open(abs)
	if err != nil {
		return DataSource{}, fmt.Errorf("open %s: %w", abs, err)
	}
	defer f.Close()
	header := make([]byte, len(sqliteMagic))
	n, _ := f.Read(header)
	if n == len(sqliteMagic) && bytes.Equal(header, sqliteMagic) {
		src.Type = SourceTypeSQLite
		return src, nil
	}

	switch strings.ToLower(filepath.Ext(abs)) {
	case ".db", ".sqlite", ".sqlite3":
		src.Type = SourceTypeSQLite
	default:
		src.Type = SourceTypeJSON
	}
	return src, nil
}
