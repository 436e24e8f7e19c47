package main

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// App holds the application's collaborators and runtime state. All request
// handling goes through its methods; there is no package-level mutable state.
type App struct {
	Config   Config
	Store    DocumentStore
	Dict     Dictionary
	Verifier TokenVerifier

	LimiterMap   map[string]*rate.Limiter
	LimiterMutex sync.Mutex
	IsProduction bool
	StartTime    time.Time

	// now is injected so tests can control the session clock.
	now func() time.Time
}

// newApp wires an App from its collaborators.
func newApp(cfg Config, store DocumentStore, dict Dictionary, verifier TokenVerifier) *App {
	return &App{
		Config:     cfg,
		Store:      store,
		Dict:       dict,
		Verifier:   verifier,
		LimiterMap: make(map[string]*rate.Limiter),
		StartTime:  time.Now(),
		now:        time.Now,
	}
}

// genID returns a prefixed unique document id.
func genID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

// todayStr formats an instant as the ISO calendar day (UTC).
func todayStr(now time.Time) string {
	return now.UTC().Format("2006-01-02")
}

// dailyDocID builds a puzzle document key.
func dailyDocID(date, lang, mode string) string {
	return date + "_" + lang + "_" + mode
}

// resultDocID builds a result document key.
func resultDocID(date, lang, uid string) string {
	return date + "_" + lang + "_" + uid
}
