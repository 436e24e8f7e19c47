package main

import "time"

// Definition is a structured dictionary definition for a word.
type Definition struct {
	PartOfSpeech string `json:"partOfSpeech"`
	Definition   string `json:"definition"`
	Example      string `json:"example,omitempty"`
}

// Puzzle is the stored daily puzzle document. The answer, definition and
// synonym are server-only; clients receive a PuzzleView instead.
type Puzzle struct {
	Date       string      `json:"date"`
	Lang       string      `json:"lang"`
	Length     int         `json:"length"`
	Mode       string      `json:"mode"`
	Answer     string      `json:"answer"`
	Definition *Definition `json:"definition"`
	Synonym    string      `json:"synonym,omitempty"`
	Source     string      `json:"source"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// PuzzleView is the public projection of a Puzzle. It strips the answer and
// hint material, replacing them with presence flags. Played is only set for
// authenticated callers.
type PuzzleView struct {
	Date          string    `json:"date"`
	Lang          string    `json:"lang"`
	Length        int       `json:"length"`
	Mode          string    `json:"mode"`
	Source        string    `json:"source"`
	CreatedAt     time.Time `json:"createdAt"`
	HasDefinition bool      `json:"hasDefinition"`
	HasSynonym    bool      `json:"hasSynonym"`
	Played        *bool     `json:"played,omitempty"`
}

// Result is a recorded daily attempt, at most one per (date, lang, uid).
type Result struct {
	UID          string     `json:"uid"`
	Date         string     `json:"date"`
	Lang         string     `json:"lang"`
	Mode         string     `json:"mode"`
	Guesses      []string   `json:"guesses"`
	FeedbackRows [][]string `json:"feedbackRows"`
	Won          bool       `json:"won"`
	GuessCount   int        `json:"guessCount"`
	DurationSec  int        `json:"durationSec"`
	ClientID     string     `json:"clientId,omitempty"`
	SubmittedAt  time.Time  `json:"submittedAt"`
}

// SpeedleSession is a timed game session document. A session is active while
// FinishedAt is nil and terminal once it is set.
type SpeedleSession struct {
	SessionID        string     `json:"sessionId"`
	WordID           string     `json:"wordId"`
	Answer           string     `json:"answer"`
	Length           int        `json:"length"`
	Lang             string     `json:"lang"`
	DurationSec      int        `json:"durationSec"`
	StartedAt        time.Time  `json:"startedAt"`
	Date             string     `json:"date"`
	GuessesUsed      int        `json:"guessesUsed"`
	HintUsed         bool       `json:"hintUsed"`
	HintPenaltySec   int        `json:"hintPenaltySec"`
	FinishedAt       *time.Time `json:"finishedAt"`
	EndReason        string     `json:"endReason,omitempty"`
	Won              bool       `json:"won"`
	Score            *int       `json:"score"`
	TimeRemainingSec int        `json:"timeRemainingSec,omitempty"`
	DisplayName      string     `json:"displayName,omitempty"`
	Source           string     `json:"source"`
}

// Finished reports whether the session has reached a terminal state.
func (s *SpeedleSession) Finished() bool {
	return s.FinishedAt != nil
}

// StartResponse is the public projection of a freshly started session.
// The answer never leaves the server while the session is active.
type StartResponse struct {
	SessionID   string    `json:"sessionId"`
	WordID      string    `json:"wordId"`
	Length      int       `json:"length"`
	Lang        string    `json:"lang"`
	DurationSec int       `json:"durationSec"`
	StartedAt   time.Time `json:"startedAt"`
}

// ValidateResult is the outcome of one speedle guess.
type ValidateResult struct {
	Feedback     []string `json:"feedback"`
	Won          bool     `json:"won"`
	GuessesUsed  int      `json:"guessesUsed"`
	RemainingSec int      `json:"remainingSec"`
}

// HintResult carries the definition hint and the post-penalty clock.
type HintResult struct {
	Definition   *string `json:"definition"`
	RemainingSec int     `json:"remainingSec"`
}

// FinishResult is the terminal summary returned to the client, including the
// reveal material for the answer.
type FinishResult struct {
	Won                 bool    `json:"won"`
	TimeRemainingSec    int     `json:"timeRemainingSec"`
	GuessesUsed         int     `json:"guessesUsed"`
	Score               int     `json:"score"`
	LeaderboardPosition *int    `json:"leaderboardPosition"`
	Definition          *string `json:"definition"`
	Synonym             *string `json:"synonym"`
}

// SubmitResult acknowledges a daily result submission. Deduped marks the
// idempotent no-op case; the answer is returned either way.
type SubmitResult struct {
	Status  string `json:"status"`
	Answer  string `json:"answer"`
	Deduped bool   `json:"deduped,omitempty"`
}

// LeaderboardRow is one ranked entry of a speedle leaderboard.
type LeaderboardRow struct {
	Rank             int        `json:"rank"`
	DisplayName      string     `json:"displayName"`
	Score            int        `json:"score"`
	GuessesUsed      int        `json:"guessesUsed"`
	TimeRemainingSec int        `json:"timeRemainingSec"`
	FinishedAt       *time.Time `json:"finishedAt"`
}
