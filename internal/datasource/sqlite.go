package datasource

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/Geddart/linearcal/pkg/model"
)

// SQLiteReader provides read access to an events SQLite database.
type SQLiteReader struct {
	db   *sql.DB
	path string
}

// NewSQLiteReader opens a SQLite database for reading.
func NewSQLiteReader(source DataSource) (*SQLiteReader, error) {
	if source.Type != SourceTypeSQLite {
		return nil, fmt.Errorf("source is not SQLite: %s", source.Type)
	}

	// Open in read-only mode with various pragmas for read performance
	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000&_journal_mode=WAL", source.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA cache_size = -64000", // 64MB cache
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		_, _ = db.Exec(pragma) // non-fatal
	}

	return &SQLiteReader{db: db, path: source.Path}, nil
}

// Close closes the database connection.
func (r *SQLiteReader) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadEvents reads all events from the database. Rows missing optional
// columns fall back to zero values; rows failing to scan are skipped.
func (r *SQLiteReader) LoadEvents() ([]model.Event, error) {
	query := `
		SELECT id, title, start_ms, end_ms, importance, lane, color
		FROM events
		ORDER BY start_ms
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var ev model.Event
		var title, color sql.NullString
		var importance sql.NullFloat64
		var lane sql.NullInt64

		if err := rows.Scan(&ev.ID, &title, &ev.StartMs, &ev.EndMs, &importance, &lane, &color); err != nil {
			continue
		}
		if title.Valid {
			ev.Title = title.String
		}
		if importance.Valid {
			ev.Importance = importance.Float64
		}
		if lane.Valid {
			ev.Lane = int(lane.Int64)
		}
		if color.Valid {
			ev.Color = color.String
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading events: %w", err)
	}
	return events, nil
}
