package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeFinishedSession(t *testing.T, app *App, id string, mutate func(*SpeedleSession)) {
	t.Helper()
	finishedAt := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	score := 0
	s := SpeedleSession{
		SessionID:   id,
		Answer:      "CRANE",
		Length:      WordLength,
		Lang:        "en-ZA",
		DurationSec: 90,
		StartedAt:   finishedAt.Add(-time.Minute),
		Date:        "2026-03-14",
		FinishedAt:  &finishedAt,
		EndReason:   EndReasonWon,
		Won:         true,
		Score:       &score,
		Source:      "speedle",
	}
	mutate(&s)
	require.NoError(t, app.Store.Set(context.Background(), CollectionSessions, id, &s))
}

func TestLeaderboardOrderingAndRanks(t *testing.T) {
	app := newTestApp(newFakeDict())
	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	// Deliberately stored out of order.
	storeFinishedSession(t, app, "sp_mid", func(s *SpeedleSession) {
		score := 40000
		s.Score = &score
		s.DisplayName = "Mid"
	})
	storeFinishedSession(t, app, "sp_top", func(s *SpeedleSession) {
		score := 80000
		s.Score = &score
		s.DisplayName = "Top"
	})
	// Same score: the earlier finish ranks higher, regardless of guesses.
	storeFinishedSession(t, app, "sp_tie_late", func(s *SpeedleSession) {
		score := 40000
		s.Score = &score
		later := base.Add(2 * time.Minute)
		s.FinishedAt = &later
		s.DisplayName = "TieLate"
	})
	// Same score and finish time: fewer guesses ranks higher.
	storeFinishedSession(t, app, "sp_tie_guesses", func(s *SpeedleSession) {
		score := 40000
		s.Score = &score
		later := base.Add(time.Minute)
		s.FinishedAt = &later
		s.GuessesUsed = 5
		s.DisplayName = "TieGuesses"
	})
	storeFinishedSession(t, app, "sp_tie_guesses_fewer", func(s *SpeedleSession) {
		score := 40000
		s.Score = &score
		later := base.Add(time.Minute)
		s.FinishedAt = &later
		s.GuessesUsed = 2
		s.DisplayName = "TieFewer"
	})

	rows, err := app.leaderboard(context.Background(), "2026-03-14", 90, 0)
	require.NoError(t, err)
	require.Len(t, rows, 5)

	names := make([]string, len(rows))
	for i, row := range rows {
		assert.Equal(t, i+1, row.Rank, "ranks are contiguous from 1")
		names[i] = row.DisplayName
	}
	assert.Equal(t, []string{"Top", "Mid", "TieFewer", "TieGuesses", "TieLate"}, names)
}

func TestLeaderboardFilters(t *testing.T) {
	app := newTestApp(newFakeDict())

	storeFinishedSession(t, app, "sp_won", func(s *SpeedleSession) { s.DisplayName = "Winner" })
	storeFinishedSession(t, app, "sp_lost", func(s *SpeedleSession) {
		s.Won = false
		s.EndReason = EndReasonTimeout
	})
	storeFinishedSession(t, app, "sp_other_day", func(s *SpeedleSession) { s.Date = "2026-03-13" })
	storeFinishedSession(t, app, "sp_other_duration", func(s *SpeedleSession) { s.DurationSec = 60 })
	// Active session, not yet finished.
	storeFinishedSession(t, app, "sp_active", func(s *SpeedleSession) {
		s.FinishedAt = nil
		s.Won = false
		s.EndReason = ""
	})

	rows, err := app.leaderboard(context.Background(), "2026-03-14", 90, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Winner", rows[0].DisplayName)
}

func TestLeaderboardDefaultDisplayName(t *testing.T) {
	app := newTestApp(newFakeDict())
	storeFinishedSession(t, app, "sp_anon", func(s *SpeedleSession) {})

	rows, err := app.leaderboard(context.Background(), "2026-03-14", 90, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Player", rows[0].DisplayName)
}

func TestLeaderboardLimit(t *testing.T) {
	app := newTestApp(newFakeDict())
	for i := 0; i < 30; i++ {
		id := genID("sp")
		storeFinishedSession(t, app, id, func(s *SpeedleSession) {
			score := 1000 * i
			s.Score = &score
		})
	}

	rows, err := app.leaderboard(context.Background(), "2026-03-14", 90, 10)
	require.NoError(t, err)
	assert.Len(t, rows, 10)
	assert.Equal(t, 29000, rows[0].Score, "limit keeps the top of the ordering")

	// A limit beyond the cap is clamped.
	app.Config.Game.LeaderboardMaxLimit = 20
	rows, err = app.leaderboard(context.Background(), "2026-03-14", 90, 500)
	require.NoError(t, err)
	assert.Len(t, rows, 20)
}

func TestLeaderboardEmpty(t *testing.T) {
	app := newTestApp(newFakeDict())
	rows, err := app.leaderboard(context.Background(), "2026-03-14", 90, 0)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
