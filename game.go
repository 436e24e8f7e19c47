package main

import (
	"strings"
	"time"

	"github.com/samber/lo"
)

// computeFeedback compares a guess to the answer and returns per-letter
// feedback symbols. Both inputs must already be uppercase and the same
// length. Two passes: exact matches first, then present-elsewhere marks
// capped by how often each letter appears un-matched in the answer, assigned
// left to right.
func computeFeedback(guess, answer string) []string {
	n := len(answer)
	feedback := make([]string, n)
	remaining := make(map[byte]int, n)

	for i := 0; i < n; i++ {
		if guess[i] == answer[i] {
			feedback[i] = FeedbackCorrect
		} else {
			remaining[answer[i]]++
		}
	}

	for i := 0; i < n; i++ {
		if feedback[i] == FeedbackCorrect {
			continue
		}
		if remaining[guess[i]] > 0 {
			feedback[i] = FeedbackPresent
			remaining[guess[i]]--
		} else {
			feedback[i] = FeedbackAbsent
		}
	}

	return feedback
}

// allCorrect reports whether every symbol of a feedback row is a green match.
func allCorrect(feedback []string) bool {
	return lo.EveryBy(feedback, func(symbol string) bool {
		return symbol == FeedbackCorrect
	})
}

// computeRemaining returns the whole seconds left on a session's clock at the
// given instant, after subtracting elapsed time and accumulated hint
// penalties. Never negative. Recomputed on every call, never cached.
func computeRemaining(s *SpeedleSession, now time.Time) int {
	elapsed := int(now.Sub(s.StartedAt) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	left := s.DurationSec - elapsed - s.HintPenaltySec
	if left < 0 {
		left = 0
	}
	return left
}

// computeScore turns a finished session into points: 1000 per remaining
// second minus 10 per guess used, floored at zero. A loss always scores zero.
func computeScore(won bool, remainingSec, guessesUsed int) int {
	if !won {
		return 0
	}
	score := remainingSec*1000 - guessesUsed*10
	if score < 0 {
		score = 0
	}
	return score
}

// normalizeGuess uppercases and trims a raw client guess.
func normalizeGuess(input string) string {
	return strings.ToUpper(strings.TrimSpace(input))
}

// isAlphaWord reports whether s is non-empty and contains only A-Z letters.
// Callers normalize case before invoking.
func isAlphaWord(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
