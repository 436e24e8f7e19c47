package main

// Game configuration constants
const (
	MaxGuesses = 6 // Maximum number of guesses per session
	WordLength = 5 // Length of the word to guess
)

// Feedback symbols for a single letter of a guess
const (
	FeedbackCorrect = "G"
	FeedbackPresent = "Y"
	FeedbackAbsent  = "B"
)

// Game modes
const (
	ModeDaily = "daily"
)

// Document store collections
const (
	CollectionPuzzles  = "puzzles"
	CollectionResults  = "results"
	CollectionSessions = "speedle_sessions"
)

// Speedle session end reasons
const (
	EndReasonWon      = "won"
	EndReasonTimeout  = "timeout"
	EndReasonAttempts = "attempts"
)

// allowedDurations are the speedle countdown lengths a client may request.
var allowedDurations = []int{60, 90, 120}

// Error message constants
const (
	ErrorSessionFinished  = "session finished"
	ErrorTimeExpired      = "time expired"
	ErrorNoAttemptsLeft   = "no attempts left"
	ErrorHintAlreadyUsed  = "hint already used"
	ErrorInsufficientTime = "insufficient time"
	ErrorNotInDictionary  = "guess is not a valid dictionary word"
	ErrorNoPuzzleFound    = "no puzzle found"
	ErrorNoResultFound    = "no result found"
	ErrorSessionNotFound  = "session not found"
	ErrorMissingSessionID = "missing sessionId"
	ErrorInvalidEndReason = "invalid endReason"
	ErrorInvalidDuration  = "durationSec must be 60, 90, or 120"
	ErrorAuthRequired     = "auth required"
	ErrorWordPickFailed   = "failed to pick a word"
)

// Context key constants
const (
	requestIDKey contextKey = "request_id"
)

// Gin context keys
const (
	userIDContextKey = "uid"
)

type contextKey string
