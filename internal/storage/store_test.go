package storage

import (
	"os"
	"testing"
	"time"
)

func TestRebind(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		in      string
		want    string
	}{
		{"sqlite untouched", DialectSQLite, "SELECT * FROM scores WHERE game_id = ?", "SELECT * FROM scores WHERE game_id = ?"},
		{"postgres numbered", DialectPostgres, "INSERT INTO scores (a, b) VALUES (?, ?)", "INSERT INTO scores (a, b) VALUES ($1, $2)"},
		{"quoted literal kept", DialectPostgres, "SELECT '?' WHERE x = ?", "SELECT '?' WHERE x = $1"},
		{"no placeholders", DialectPostgres, "DELETE FROM scores", "DELETE FROM scores"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rebind(tt.dialect, tt.in); got != tt.want {
				t.Errorf("Rebind() = %q, expected %q", got, tt.want)
			}
		})
	}
}

func TestIsPostgresDSN(t *testing.T) {
	tests := map[string]bool{
		"postgres://arcade@localhost/arcade": true,
		"postgresql://arcade@db:5432/arcade": true,
		"~/.arcade/scores.db":                false,
		"/var/lib/arcade/postgres.db":        false,
		"file:scores.db?cache=shared":        false,
	}
	for dsn, want := range tests {
		if got := IsPostgresDSN(dsn); got != want {
			t.Errorf("IsPostgresDSN(%q) = %v, expected %v", dsn, got, want)
		}
	}
}

func TestParseTime(t *testing.T) {
	want := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

	if got := parseTime("2024-05-01 12:30:00"); !got.Equal(want) {
		t.Errorf("parseTime(string) = %v", got)
	}
	if got := parseTime([]byte("2024-05-01T12:30:00Z")); !got.Equal(want) {
		t.Errorf("parseTime(bytes) = %v", got)
	}
	if got := parseTime(want); !got.Equal(want) {
		t.Errorf("parseTime(time) = %v", got)
	}
	if got := parseTime(nil); !got.IsZero() {
		t.Errorf("parseTime(nil) = %v, expected zero", got)
	}
}

// TestPostgresStore runs against a live server when ARCADE_TEST_POSTGRES
// holds a postgres:// URL.
func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("ARCADE_TEST_POSTGRES")
	if dsn == "" {
		t.Skip("ARCADE_TEST_POSTGRES not set")
	}

	store, err := Open(dsn)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if store.Dialect() != DialectPostgres {
		t.Fatalf("Dialect() = %q", store.Dialect())
	}

	const game = "pgtest"
	if err := store.ClearScores(game); err != nil {
		t.Fatal(err)
	}
	defer store.ClearScores(game)

	for _, score := range []int{10, 30, 20} {
		if _, err := store.SaveScore(ScoreRecord{GameID: game, Player: "pg", Score: score}); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	top, err := store.TopScores(game, 2)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(top) != 2 || top[0].Score != 30 {
		t.Errorf("top = %+v", top)
	}

	stats, err := store.GetGameStats(game)
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.HighScore != 30 {
		t.Errorf("stats = %+v", stats)
	}
}
