package tui

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/pocket-arcade/internal/storage"
)

func TestScoreboardLoadsScoresAndStats(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	for _, score := range []int{40, 10} {
		if _, err := store.SaveScore(storage.ScoreRecord{GameID: "snake", Player: "ann", Score: score, Level: 1}); err != nil {
			t.Fatal(err)
		}
	}

	m := NewScoreboardModel(store, 100, 30)
	m.loadScores("snake")

	if len(m.scores) != 2 || m.scores[0].Score != 40 {
		t.Fatalf("scores = %+v", m.scores)
	}
	if m.stats == nil || m.stats.GamesCount != 2 || m.stats.HighScore != 40 {
		t.Fatalf("stats = %+v", m.stats)
	}
	if line := statsLine(m.stats); !strings.HasPrefix(line, "2 games  best 40  avg 25") {
		t.Errorf("statsLine() = %q", line)
	}

	m.loadScores("shooter")
	if len(m.scores) != 0 || m.stats != nil {
		t.Errorf("empty game: scores = %v, stats = %+v", m.scores, m.stats)
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	m.loadScores("snake")
	if m.scores != nil || m.stats != nil {
		t.Error("expected no scores without a store")
	}
	if !strings.Contains(m.View(), "No scores recorded yet.") {
		t.Error("View() should show the empty message")
	}
}
