package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// openSQLite creates or opens a SQLite database at the given path.
// It expands a leading ~ and creates the parent directories if needed.
func openSQLite(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	return &Store{db: db, dialect: DialectSQLite}, nil
}

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS scores (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id TEXT NOT NULL,
		player TEXT NOT NULL DEFAULT '',
		score INTEGER NOT NULL,
		level INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
	CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);
`

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS scores (
		id BIGSERIAL PRIMARY KEY,
		game_id TEXT NOT NULL,
		player TEXT NOT NULL DEFAULT '',
		score INTEGER NOT NULL,
		level INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
	CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);
`

func (s *Store) schema() string {
	if s.dialect == DialectPostgres {
		return postgresSchema
	}
	return sqliteSchema
}

// ensureColumns adds any of the named columns the scores table lacks.
// Databases created before player names and levels were tracked only
// have id, game_id, score and created_at.
func (s *Store) ensureColumns(cols map[string]string) error {
	if s.dialect == DialectPostgres {
		for name, def := range cols {
			if _, err := s.db.Exec(fmt.Sprintf("ALTER TABLE scores ADD COLUMN IF NOT EXISTS %s %s", name, def)); err != nil {
				return fmt.Errorf("cannot add column %s: %w", name, err)
			}
		}
		return nil
	}

	rows, err := s.db.Query("SELECT name FROM pragma_table_info('scores')")
	if err != nil {
		return fmt.Errorf("cannot inspect scores table: %w", err)
	}
	have := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return fmt.Errorf("cannot inspect scores table: %w", err)
		}
		have[name] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("cannot inspect scores table: %w", err)
	}

	for name, def := range cols {
		if have[name] {
			continue
		}
		if _, err := s.db.Exec(fmt.Sprintf("ALTER TABLE scores ADD COLUMN %s %s", name, def)); err != nil {
			return fmt.Errorf("cannot add column %s: %w", name, err)
		}
	}
	return nil
}
