package main

import (
	"context"
	"database/sql"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
)

// DBCache maintains a cached DuckDB connection over the parquet
// archive that refreshes periodically as new batches land.
type DBCache struct {
	roots       []string
	refreshRate time.Duration

	mu          sync.RWMutex
	db          *sql.DB
	lastRefresh time.Time
}

// NewDBCache creates a DBCache over the given archive roots.
func NewDBCache(roots []string, refreshRate time.Duration) *DBCache {
	return &DBCache{
		roots:       roots,
		refreshRate: refreshRate,
	}
}

// Get returns the cached connection, refreshing if it is stale.
func (c *DBCache) Get() (*sql.DB, error) {
	c.mu.RLock()
	if c.db != nil && time.Since(c.lastRefresh) < c.refreshRate {
		db := c.db
		c.mu.RUnlock()
		return db, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring the write lock.
	if c.db != nil && time.Since(c.lastRefresh) < c.refreshRate {
		return c.db, nil
	}
	return c.refreshLocked()
}

// Refresh forces a re-scan of the archive.
func (c *DBCache) Refresh() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := c.refreshLocked()
	return err
}

func (c *DBCache) refreshLocked() (*sql.DB, error) {
	start := time.Now()

	newDB, err := openDuckDBWithGlobs(c.roots)
	if err != nil {
		return nil, err
	}

	if c.db != nil {
		_ = c.db.Close()
	}
	c.db = newDB
	c.lastRefresh = time.Now()

	log.Printf("DBCache refreshed in %v", time.Since(start))
	return c.db, nil
}

// Close closes the cached connection.
func (c *DBCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db != nil {
		err := c.db.Close()
		c.db = nil
		return err
	}
	return nil
}

// openDuckDBWithGlobs creates an in-memory DuckDB with a `turns` view
// over every parquet batch under the roots. Globs keep startup fast;
// in-flight tmp directories are excluded.
func openDuckDBWithGlobs(roots []string) (*sql.DB, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, err
	}
	// Basic pragmas; ignore errors for compatibility across versions.
	_, _ = db.Exec("PRAGMA threads=4")

	globs := make([]string, 0, len(roots))
	for _, root := range roots {
		root = strings.TrimSpace(root)
		if root == "" {
			continue
		}
		glob := filepath.Join(root, "**", "*.parquet")
		globs = append(globs, "'"+escapeSQLString(glob)+"'")
	}

	if len(globs) == 0 {
		// Empty view so queries still parse before any data exists.
		_, err := db.Exec(`CREATE OR REPLACE VIEW turns AS
			SELECT * FROM (
				SELECT
					NULL::VARCHAR AS run_id,
					NULL::VARCHAR AS strategy,
					NULL::BIGINT AS episode,
					NULL::BIGINT AS seed,
					NULL::INTEGER AS turn,
					NULL::INTEGER AS width,
					NULL::INTEGER AS height,
					NULL::INTEGER AS agent_x,
					NULL::INTEGER AS agent_y,
					NULL::INTEGER AS move,
					NULL::BIGINT AS game_score,
					NULL::INTEGER[] AS cells,
					NULL::VARCHAR AS filename
			) WHERE 1=0`)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		return db, nil
	}

	sqlText := `CREATE OR REPLACE VIEW turns AS
		SELECT * FROM read_parquet([` + strings.Join(globs, ",") + `], filename=true, union_by_name=true)
		WHERE NOT contains(filename, '/tmp/')`
	if _, err := db.Exec(sqlText); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func escapeSQLString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// queryStrategies aggregates final episode scores per strategy. The
// final score of an episode is the game_score on its highest turn.
func queryStrategies(ctx context.Context, db *sql.DB) ([]StrategySummary, error) {
	rows, err := db.QueryContext(ctx, `
		WITH finals AS (
			SELECT
				strategy,
				run_id,
				episode,
				max_by(game_score, turn) AS final_score,
				MAX(turn) AS turns
			FROM turns
			GROUP BY strategy, run_id, episode
		)
		SELECT
			strategy,
			COUNT(*)::BIGINT AS episodes,
			AVG(final_score)::DOUBLE AS mean_score,
			MIN(final_score)::BIGINT AS min_score,
			MAX(final_score)::BIGINT AS max_score,
			AVG(turns)::DOUBLE AS mean_turns
		FROM finals
		GROUP BY strategy
		ORDER BY mean_score DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StrategySummary
	for rows.Next() {
		var s StrategySummary
		if err := rows.Scan(&s.Strategy, &s.Episodes, &s.MeanScore, &s.MinScore, &s.MaxScore, &s.MeanTurns); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// queryEpisodes lists the archived episodes of one run.
func queryEpisodes(ctx context.Context, db *sql.DB, runID string) ([]EpisodeSummary, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT
			run_id,
			MIN(strategy) AS strategy,
			episode,
			MIN(seed)::BIGINT AS seed,
			MAX(turn)::INTEGER AS turns,
			max_by(game_score, turn)::BIGINT AS final_score
		FROM turns
		WHERE run_id = ?
		GROUP BY run_id, episode
		ORDER BY episode`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EpisodeSummary
	for rows.Next() {
		var e EpisodeSummary
		if err := rows.Scan(&e.RunID, &e.Strategy, &e.Episode, &e.Seed, &e.Turns, &e.FinalScore); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// queryEpisodeTurns loads every frame of one episode in turn order.
func queryEpisodeTurns(ctx context.Context, db *sql.DB, runID string, episode int64) ([]TurnFrame, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT turn, width, height, agent_x, agent_y, move, game_score, cells
		FROM turns
		WHERE run_id = ? AND episode = ?
		ORDER BY turn`, runID, episode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TurnFrame
	for rows.Next() {
		var f TurnFrame
		var cells any
		if err := rows.Scan(&f.Turn, &f.Width, &f.Height, &f.AgentX, &f.AgentY, &f.Move, &f.GameScore, &cells); err != nil {
			return nil, err
		}
		f.Cells = asInt32Slice(cells)
		out = append(out, f)
	}
	return out, rows.Err()
}
