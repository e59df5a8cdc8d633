package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the sqlite run registry with thread-safe operations.
type DB struct {
	conn *sql.DB
	mu   sync.Mutex
}

// Run is one completed benchmark run: a strategy evaluated over a
// number of episodes with a fixed base seed.
type Run struct {
	ID         string
	Strategy   string
	ConfigJSON string
	Episodes   int64
	MeanScore  float64
	MinScore   int64
	MaxScore   int64
	ElapsedMs  int64
	StartedAt  time.Time
}

// OpenDB opens (or creates) the registry at dbPath and initializes the
// schema.
func OpenDB(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	db := &DB{conn: conn}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		strategy TEXT NOT NULL,
		config_json TEXT NOT NULL,
		episodes INTEGER NOT NULL,
		mean_score REAL NOT NULL,
		min_score INTEGER NOT NULL,
		max_score INTEGER NOT NULL,
		elapsed_ms INTEGER NOT NULL,
		started_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_strategy ON runs(strategy);
	`
	_, err := db.conn.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	return nil
}

// RecordRun inserts or replaces a run summary.
func (db *DB) RecordRun(r Run) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO runs
		(id, strategy, config_json, episodes, mean_score, min_score, max_score, elapsed_ms, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Strategy, r.ConfigJSON, r.Episodes, r.MeanScore, r.MinScore, r.MaxScore, r.ElapsedMs, r.StartedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// ListRuns returns all recorded runs, most recent first.
func (db *DB) ListRuns() ([]Run, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	rows, err := db.conn.Query(`
		SELECT id, strategy, config_json, episodes, mean_score, min_score, max_score, elapsed_ms, started_at
		FROM runs ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var startedNs int64
		if err := rows.Scan(&r.ID, &r.Strategy, &r.ConfigJSON, &r.Episodes, &r.MeanScore, &r.MinScore, &r.MaxScore, &r.ElapsedMs, &startedNs); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.StartedAt = time.Unix(0, startedNs)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
