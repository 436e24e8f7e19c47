package main

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// leaderboard returns the ranked won sessions for a (date, duration) pair.
// The store has no secondary indexes, so this scans the session collection
// and orders in memory: score descending, then earlier finish, then fewer
// guesses. Ranks are contiguous from 1.
func (app *App) leaderboard(ctx context.Context, date string, durationSec, limit int) ([]LeaderboardRow, error) {
	if limit <= 0 {
		limit = app.Config.Game.LeaderboardDefaultLimit
	}
	if limit > app.Config.Game.LeaderboardMaxLimit {
		limit = app.Config.Game.LeaderboardMaxLimit
	}

	sessions, err := app.rankedWonSessions(ctx, date, durationSec)
	if err != nil {
		return nil, err
	}
	if len(sessions) > limit {
		sessions = sessions[:limit]
	}

	rows := lo.Map(sessions, func(s SpeedleSession, i int) LeaderboardRow {
		displayName := s.DisplayName
		if displayName == "" {
			displayName = "Player"
		}
		return LeaderboardRow{
			Rank:             i + 1,
			DisplayName:      displayName,
			Score:            sessionScore(&s),
			GuessesUsed:      s.GuessesUsed,
			TimeRemainingSec: s.TimeRemainingSec,
			FinishedAt:       s.FinishedAt,
		}
	})
	return rows, nil
}

// rankedWonSessions scans the session collection and returns every won,
// finished session for the (date, duration) pair in leaderboard order.
func (app *App) rankedWonSessions(ctx context.Context, date string, durationSec int) ([]SpeedleSession, error) {
	var sessions []SpeedleSession
	err := app.Store.List(ctx, CollectionSessions, func(raw []byte) error {
		var s SpeedleSession
		if err := json.Unmarshal(raw, &s); err != nil {
			logWarn("Skipping undecodable session document: %v", err)
			return nil
		}
		if s.Won && s.Finished() && s.Date == date && s.DurationSec == durationSec {
			sessions = append(sessions, s)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	slices.SortFunc(sessions, func(a, b SpeedleSession) int {
		if c := sessionScore(&b) - sessionScore(&a); c != 0 {
			return c
		}
		if c := a.FinishedAt.Compare(*b.FinishedAt); c != 0 {
			return c
		}
		return a.GuessesUsed - b.GuessesUsed
	})
	return sessions, nil
}

// sessionRank returns the 1-based leaderboard position of sessionID on its
// (date, duration) board, or nil when the session is not on the board.
func (app *App) sessionRank(ctx context.Context, sessionID, date string, durationSec int) (*int, error) {
	sessions, err := app.rankedWonSessions(ctx, date, durationSec)
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		if sessions[i].SessionID == sessionID {
			rank := i + 1
			return &rank, nil
		}
	}
	return nil, nil
}

// sessionScore reads a session's final score, treating unset as zero.
func sessionScore(s *SpeedleSession) int {
	if s.Score == nil {
		return 0
	}
	return *s.Score
}
