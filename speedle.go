package main

import (
	"context"
	"fmt"
	"slices"
)

// startSpeedle creates a new active session for the given language and
// countdown length. The word is drawn fresh per attempt until one differs
// from today's daily answer; exhausting the budget is fatal to the request.
func (app *App) startSpeedle(ctx context.Context, lang string, durationSec int) (*SpeedleSession, error) {
	if !slices.Contains(allowedDurations, durationSec) {
		return nil, errValidation(ErrorInvalidDuration)
	}

	date := todayStr(app.now())
	var dailyAnswer string
	var daily Puzzle
	exists, err := app.Store.Get(ctx, CollectionPuzzles, dailyDocID(date, lang, ModeDaily), &daily)
	if err != nil {
		return nil, fmt.Errorf("load daily answer: %w", err)
	}
	if exists {
		dailyAnswer = normalizeGuess(daily.Answer)
	}

	var word string
	for tries := 0; tries < app.Config.Game.WordPickRetries; tries++ {
		candidate := app.Dict.RandomWord(ctx)
		if candidate != "" && candidate != dailyAnswer {
			word = candidate
			break
		}
	}
	if word == "" {
		return nil, errInternal(ErrorWordPickFailed)
	}

	session := &SpeedleSession{
		SessionID:   genID("sp"),
		WordID:      genID("w"),
		Answer:      word,
		Length:      WordLength,
		Lang:        lang,
		DurationSec: durationSec,
		StartedAt:   app.now().UTC(),
		Date:        date,
		Source:      "speedle",
	}
	if err := app.Store.Set(ctx, CollectionSessions, session.SessionID, session); err != nil {
		return nil, fmt.Errorf("store session %s: %w", session.SessionID, err)
	}

	logInfo("Started speedle session %s (lang=%s, duration=%ds, word=%s)",
		session.SessionID, lang, durationSec, word)
	return session, nil
}

// loadSession fetches a session document or reports why it cannot be used.
func (app *App) loadSession(ctx context.Context, sessionID string) (*SpeedleSession, error) {
	if sessionID == "" {
		return nil, errValidation(ErrorMissingSessionID)
	}
	var session SpeedleSession
	exists, err := app.Store.Get(ctx, CollectionSessions, sessionID, &session)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}
	if !exists {
		return nil, errNotFound(ErrorSessionNotFound)
	}
	return &session, nil
}

// closeSession performs the active->finished transition on a session.
func (app *App) closeSession(ctx context.Context, s *SpeedleSession, endReason string, won bool) error {
	finishedAt := app.now().UTC()
	s.FinishedAt = &finishedAt
	s.EndReason = endReason
	s.Won = won
	err := app.Store.Update(ctx, CollectionSessions, s.SessionID, map[string]any{
		"finishedAt": finishedAt,
		"endReason":  endReason,
		"won":        won,
	})
	if err != nil {
		return fmt.Errorf("close session %s: %w", s.SessionID, err)
	}
	logInfo("Session %s finished: %s (won=%v, guesses=%d)", s.SessionID, endReason, won, s.GuessesUsed)
	return nil
}

// validateSpeedleGuess applies one guess to a session. Expiry and attempt
// exhaustion are detected here, as guards at the head of the transition: both
// close the session and reject the guess. A winning guess closes it too.
func (app *App) validateSpeedleGuess(ctx context.Context, sessionID, rawGuess string) (*ValidateResult, error) {
	s, err := app.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if s.Finished() {
		return nil, errConflict(ErrorSessionFinished)
	}

	if computeRemaining(s, app.now()) <= 0 {
		if err := app.closeSession(ctx, s, EndReasonTimeout, false); err != nil {
			return nil, err
		}
		return nil, errConflict(ErrorTimeExpired)
	}

	guess := normalizeGuess(rawGuess)
	if !isAlphaWord(guess) || len(guess) != s.Length {
		return nil, errValidation(fmt.Sprintf("guess must be %d letters A-Z", s.Length))
	}
	if !app.Dict.IsRealWord(ctx, guess) {
		return nil, errValidation(ErrorNotInDictionary)
	}

	if s.GuessesUsed >= MaxGuesses {
		if err := app.closeSession(ctx, s, EndReasonAttempts, false); err != nil {
			return nil, err
		}
		return nil, errConflict(ErrorNoAttemptsLeft)
	}

	feedback := computeFeedback(guess, normalizeGuess(s.Answer))
	won := allCorrect(feedback)

	s.GuessesUsed++
	patch := map[string]any{"guessesUsed": s.GuessesUsed}
	if won {
		finishedAt := app.now().UTC()
		s.FinishedAt = &finishedAt
		s.EndReason = EndReasonWon
		s.Won = true
		patch["finishedAt"] = finishedAt
		patch["endReason"] = EndReasonWon
		patch["won"] = true
	}
	if err := app.Store.Update(ctx, CollectionSessions, s.SessionID, patch); err != nil {
		return nil, fmt.Errorf("update session %s: %w", s.SessionID, err)
	}
	if won {
		logInfo("Session %s won on guess %d", s.SessionID, s.GuessesUsed)
	}

	return &ValidateResult{
		Feedback:     feedback,
		Won:          won,
		GuessesUsed:  s.GuessesUsed,
		RemainingSec: computeRemaining(s, app.now()),
	}, nil
}

// applyHint reveals the answer's definition in exchange for a fixed time
// penalty. Rejected when the session is finished, the hint was already used,
// time is up, or too little time remains to pay for the penalty. Expiry here
// does not close the session; the next validate call will.
func (app *App) applyHint(ctx context.Context, sessionID string) (*HintResult, error) {
	s, err := app.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if s.Finished() {
		return nil, errConflict(ErrorSessionFinished)
	}
	if s.HintUsed {
		return nil, errConflict(ErrorHintAlreadyUsed)
	}

	remaining := computeRemaining(s, app.now())
	if remaining <= 0 {
		return nil, errConflict(ErrorTimeExpired)
	}
	if remaining <= app.Config.Game.HintMinRemainingSec {
		return nil, errConflict(ErrorInsufficientTime)
	}

	var definition *string
	if def := app.Dict.BestDefinition(ctx, s.Answer); def != nil {
		definition = &def.Definition
	}

	s.HintUsed = true
	s.HintPenaltySec += app.Config.Game.HintPenaltySec
	err = app.Store.Update(ctx, CollectionSessions, s.SessionID, map[string]any{
		"hintUsed":       true,
		"hintPenaltySec": s.HintPenaltySec,
	})
	if err != nil {
		return nil, fmt.Errorf("update session %s: %w", s.SessionID, err)
	}

	return &HintResult{
		Definition:   definition,
		RemainingSec: computeRemaining(s, app.now()),
	}, nil
}

// finishSpeedle applies the caller-declared terminal transition, computes the
// final score, persists the terminal fields and returns the reveal material.
// The client's endReason drives the transition regardless of the server-side
// timer, and finish is accepted even when a lazy guard already closed the
// session.
func (app *App) finishSpeedle(ctx context.Context, sessionID, endReason, displayName string) (*FinishResult, error) {
	if endReason != EndReasonWon && endReason != EndReasonTimeout && endReason != EndReasonAttempts {
		return nil, errValidation(ErrorInvalidEndReason)
	}

	s, err := app.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	remainingSec := computeRemaining(s, app.now())
	won := endReason == EndReasonWon
	score := computeScore(won, remainingSec, s.GuessesUsed)

	patch := map[string]any{
		"finishedAt":       app.now().UTC(),
		"endReason":        endReason,
		"won":              won,
		"score":            score,
		"timeRemainingSec": remainingSec,
		"guessesUsed":      s.GuessesUsed,
	}
	if displayName != "" {
		patch["displayName"] = displayName
	}
	if err := app.Store.Update(ctx, CollectionSessions, s.SessionID, patch); err != nil {
		return nil, fmt.Errorf("finish session %s: %w", s.SessionID, err)
	}
	logInfo("Session %s finished by client: %s (score=%d)", s.SessionID, endReason, score)

	var position *int
	if won {
		position, err = app.sessionRank(ctx, s.SessionID, s.Date, s.DurationSec)
		if err != nil {
			logWarn("Session %s: rank lookup failed: %v", s.SessionID, err)
			position = nil
		}
	}

	var definition, synonym *string
	if def := app.Dict.BestDefinition(ctx, s.Answer); def != nil {
		definition = &def.Definition
	}
	if syn := app.Dict.BestSynonym(ctx, s.Answer); syn != "" {
		synonym = &syn
	}

	return &FinishResult{
		Won:                 won,
		TimeRemainingSec:    remainingSec,
		GuessesUsed:         s.GuessesUsed,
		Score:               score,
		LeaderboardPosition: position,
		Definition:          definition,
		Synonym:             synonym,
	}, nil
}
