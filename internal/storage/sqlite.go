// Package storage provides SQLite-based persistence for run history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Outcome is how a run ended.
type Outcome string

const (
	OutcomeWon  Outcome = "won"
	OutcomeLost Outcome = "lost"
	OutcomeQuit Outcome = "quit"
)

// Run is one finished or abandoned level attempt.
type Run struct {
	ID        int64
	BiomeID   string
	Player    string // SSH user, empty for local play
	Outcome   Outcome
	Lives     int
	Keys      int
	KeysTotal int
	Elapsed   float64 // seconds of simulated time
	Resumed   bool
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			biome_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			outcome TEXT NOT NULL,
			lives INTEGER NOT NULL DEFAULT 0,
			keys_collected INTEGER NOT NULL DEFAULT 0,
			keys_total INTEGER NOT NULL DEFAULT 0,
			elapsed REAL NOT NULL DEFAULT 0,
			resumed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_biome_id ON runs(biome_id);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(biome_id, outcome, elapsed);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a run and returns its ID.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.BiomeID == "" {
		return 0, errors.New("storage: run has no biome")
	}
	switch r.Outcome {
	case OutcomeWon, OutcomeLost, OutcomeQuit:
	default:
		return 0, fmt.Errorf("storage: unknown outcome %q", r.Outcome)
	}

	result, err := s.db.Exec(
		`INSERT INTO runs (biome_id, player, outcome, lives, keys_collected, keys_total, elapsed, resumed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.BiomeID, r.Player, string(r.Outcome), r.Lives, r.Keys, r.KeysTotal, r.Elapsed, r.Resumed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRuns returns the latest runs, newest first. An empty biomeID
// matches every biome.
func (s *Store) RecentRuns(biomeID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, biome_id, player, outcome, lives, keys_collected, keys_total, elapsed, resumed, created_at
		 FROM runs
		 WHERE ? = '' OR biome_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		biomeID, biomeID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var outcome string
		var createdAt any
		if err := rows.Scan(&r.ID, &r.BiomeID, &r.Player, &outcome, &r.Lives, &r.Keys,
			&r.KeysTotal, &r.Elapsed, &r.Resumed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Outcome = Outcome(outcome)
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// BestTime returns the fastest winning time for the biome.
// ok is false when the biome has never been won.
func (s *Store) BestTime(biomeID string) (best float64, ok bool, err error) {
	var v sql.NullFloat64
	err = s.db.QueryRow(
		"SELECT MIN(elapsed) FROM runs WHERE biome_id = ? AND outcome = ?",
		biomeID, string(OutcomeWon),
	).Scan(&v)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best time: %w", err)
	}
	if !v.Valid {
		return 0, false, nil
	}
	return v.Float64, true, nil
}

// ClearRuns deletes all runs for the given biome.
func (s *Store) ClearRuns(biomeID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE biome_id = ?", biomeID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// BiomeStats contains aggregated statistics for a biome.
type BiomeStats struct {
	BiomeID    string
	Runs       int
	Wins       int
	Losses     int
	BestTime   float64 // zero when never won
	TotalTime  float64
	LastPlayed time.Time
}

// WinRate returns the fraction of runs that were won.
func (b *BiomeStats) WinRate() float64 {
	if b.Runs == 0 {
		return 0
	}
	return float64(b.Wins) / float64(b.Runs)
}

const statsColumns = `biome_id,
	COUNT(*),
	COALESCE(SUM(outcome = 'won'), 0),
	COALESCE(SUM(outcome = 'lost'), 0),
	COALESCE(MIN(CASE WHEN outcome = 'won' THEN elapsed END), 0),
	COALESCE(SUM(elapsed), 0),
	MAX(created_at)`

func scanStats(sc interface{ Scan(...any) error }) (*BiomeStats, error) {
	var st BiomeStats
	var lastPlayed any
	if err := sc.Scan(&st.BiomeID, &st.Runs, &st.Wins, &st.Losses, &st.BestTime, &st.TotalTime, &lastPlayed); err != nil {
		return nil, err
	}
	st.LastPlayed = parseTime(lastPlayed)
	return &st, nil
}

// GetBiomeStats retrieves aggregated statistics for one biome. A biome
// without runs yields zero counts.
func (s *Store) GetBiomeStats(biomeID string) (*BiomeStats, error) {
	row := s.db.QueryRow(
		`SELECT `+statsColumns+` FROM runs WHERE biome_id = ? GROUP BY biome_id`,
		biomeID,
	)
	st, err := scanStats(row)
	if errors.Is(err, sql.ErrNoRows) {
		return &BiomeStats{BiomeID: biomeID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get biome stats: %w", err)
	}
	return st, nil
}

// GetAllBiomeStats retrieves statistics for every biome that has runs.
func (s *Store) GetAllBiomeStats() (map[string]*BiomeStats, error) {
	rows, err := s.db.Query(`SELECT ` + statsColumns + ` FROM runs GROUP BY biome_id`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all biome stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*BiomeStats)
	for rows.Next() {
		st, err := scanStats(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats[st.BiomeID] = st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both driver-decoded times and SQLite's text format.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
