package main

import (
	"context"
	"errors"
	"fmt"
)

// getOrCreateDailyPuzzle returns the puzzle for (date, lang), seeding it on
// first access. Seeding draws a fresh random word per attempt until one has a
// resolvable definition, then independently retries a synonym for the chosen
// word. The write is a create, so two concurrent first-requests converge on
// whichever document landed first.
func (app *App) getOrCreateDailyPuzzle(ctx context.Context, date, lang string) (*Puzzle, error) {
	id := dailyDocID(date, lang, ModeDaily)

	var puzzle Puzzle
	exists, err := app.Store.Get(ctx, CollectionPuzzles, id, &puzzle)
	if err != nil {
		return nil, fmt.Errorf("load puzzle %s: %w", id, err)
	}
	if exists {
		return &puzzle, nil
	}

	var word string
	var def *Definition
	for attempt := 1; attempt <= app.Config.Game.SeedDefinitionRetries; attempt++ {
		word = app.Dict.RandomWord(ctx)
		if word == "" {
			continue
		}
		def = app.Dict.BestDefinition(ctx, word)
		logInfo("Seed attempt %d for %s: %q, has definition: %v", attempt, id, word, def != nil)
		if def != nil {
			break
		}
	}
	if word == "" {
		return nil, errInternal(ErrorWordPickFailed)
	}

	var synonym string
	for attempt := 1; attempt <= app.Config.Game.SeedSynonymRetries; attempt++ {
		synonym = app.Dict.BestSynonym(ctx, word)
		logInfo("Synonym attempt %d for %q, has synonym: %v", attempt, word, synonym != "")
		if synonym != "" {
			break
		}
	}

	puzzle = Puzzle{
		Date:       date,
		Lang:       lang,
		Length:     WordLength,
		Mode:       ModeDaily,
		Answer:     word,
		Definition: def,
		Synonym:    synonym,
		Source:     "wordsapi",
		CreatedAt:  app.now().UTC(),
	}

	err = app.Store.Create(ctx, CollectionPuzzles, id, &puzzle)
	if errors.Is(err, ErrDocExists) {
		// Another request seeded the same key first; its document wins.
		logInfo("Puzzle %s seeded concurrently, re-reading winner", id)
		var winner Puzzle
		if _, err := app.Store.Get(ctx, CollectionPuzzles, id, &winner); err != nil {
			return nil, fmt.Errorf("reload puzzle %s: %w", id, err)
		}
		return &winner, nil
	}
	if err != nil {
		return nil, fmt.Errorf("seed puzzle %s: %w", id, err)
	}

	logInfo("Seeded daily puzzle %s with word %q", id, word)
	return &puzzle, nil
}

// loadDailyPuzzle returns the puzzle for (date, lang) or a not-found error.
func (app *App) loadDailyPuzzle(ctx context.Context, date, lang string) (*Puzzle, error) {
	id := dailyDocID(date, lang, ModeDaily)
	var puzzle Puzzle
	exists, err := app.Store.Get(ctx, CollectionPuzzles, id, &puzzle)
	if err != nil {
		return nil, fmt.Errorf("load puzzle %s: %w", id, err)
	}
	if !exists {
		return nil, errNotFound(ErrorNoPuzzleFound)
	}
	return &puzzle, nil
}

// puzzleView builds the public projection of a puzzle. For an authenticated
// caller it also reports whether that user already recorded a result today.
func (app *App) puzzleView(ctx context.Context, puzzle *Puzzle, uid string) PuzzleView {
	view := PuzzleView{
		Date:          puzzle.Date,
		Lang:          puzzle.Lang,
		Length:        puzzle.Length,
		Mode:          puzzle.Mode,
		Source:        puzzle.Source,
		CreatedAt:     puzzle.CreatedAt,
		HasDefinition: puzzle.Definition != nil,
		HasSynonym:    puzzle.Synonym != "",
	}
	if uid == "" {
		return view
	}

	var result Result
	played, err := app.Store.Get(ctx, CollectionResults, resultDocID(puzzle.Date, puzzle.Lang, uid), &result)
	if err != nil {
		logWarn("Played check for %s/%s failed: %v", puzzle.Date, uid, err)
		return view
	}
	view.Played = &played
	return view
}

// validateDailyGuess checks a guess against the stored daily answer without
// mutating anything. The caller gets feedback and a won flag only.
func (app *App) validateDailyGuess(ctx context.Context, date, lang, rawGuess string) (*Puzzle, []string, error) {
	puzzle, err := app.loadDailyPuzzle(ctx, date, lang)
	if err != nil {
		return nil, nil, err
	}

	guess := normalizeGuess(rawGuess)
	if !isAlphaWord(guess) || len(guess) != puzzle.Length {
		return nil, nil, errValidation(fmt.Sprintf("guess must be %d letters A-Z", puzzle.Length))
	}
	if !app.Dict.IsRealWord(ctx, guess) {
		return nil, nil, errValidation(ErrorNotInDictionary)
	}

	feedback := computeFeedback(guess, normalizeGuess(puzzle.Answer))
	return puzzle, feedback, nil
}
