package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
)

// submitRequest is the daily result submission payload.
type submitRequest struct {
	Lang        string   `json:"lang"`
	Date        string   `json:"date"`
	Guesses     []string `json:"guesses"`
	Won         bool     `json:"won"`
	DurationSec int      `json:"durationSec"`
	ClientID    string   `json:"clientId"`
}

// submitDailyResult records a completed daily attempt exactly once per
// (date, lang, uid). Feedback rows are recomputed server-side from the stored
// answer; client-supplied feedback is never trusted. A repeat submission is a
// read-only success with Deduped set and leaves the stored record untouched.
func (app *App) submitDailyResult(ctx context.Context, uid string, req submitRequest) (*SubmitResult, error) {
	if len(req.Guesses) == 0 {
		return nil, errValidation("guesses must be a non-empty array")
	}

	puzzle, err := app.loadDailyPuzzle(ctx, req.Date, req.Lang)
	if err != nil {
		return nil, err
	}
	answer := normalizeGuess(puzzle.Answer)

	guesses := lo.Map(req.Guesses, func(g string, _ int) string {
		return normalizeGuess(g)
	})
	for _, g := range guesses {
		if !isAlphaWord(g) || len(g) != puzzle.Length {
			return nil, errValidation(fmt.Sprintf("each guess must be %d letters A-Z", puzzle.Length))
		}
	}

	feedbackRows := lo.Map(guesses, func(g string, _ int) []string {
		return computeFeedback(g, answer)
	})

	result := Result{
		UID:          uid,
		Date:         req.Date,
		Lang:         req.Lang,
		Mode:         ModeDaily,
		Guesses:      guesses,
		FeedbackRows: feedbackRows,
		Won:          req.Won,
		GuessCount:   len(guesses),
		DurationSec:  req.DurationSec,
		ClientID:     req.ClientID,
		SubmittedAt:  app.now().UTC(),
	}

	id := resultDocID(req.Date, req.Lang, uid)
	err = app.Store.Create(ctx, CollectionResults, id, &result)
	if errors.Is(err, ErrDocExists) {
		logInfo("Result %s already recorded, deduping", id)
		return &SubmitResult{Status: "ok", Answer: answer, Deduped: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store result %s: %w", id, err)
	}

	logInfo("Recorded result %s (won=%v, guesses=%d)", id, req.Won, len(guesses))
	return &SubmitResult{Status: "ok", Answer: answer}, nil
}

// myResult returns the caller's recorded result for (date, lang).
func (app *App) myResult(ctx context.Context, uid, date, lang string) (*Result, error) {
	id := resultDocID(date, lang, uid)
	var result Result
	exists, err := app.Store.Get(ctx, CollectionResults, id, &result)
	if err != nil {
		return nil, fmt.Errorf("load result %s: %w", id, err)
	}
	if !exists {
		return nil, errNotFound(ErrorNoResultFound)
	}
	return &result, nil
}
