package main

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// fakeDict is a scripted Dictionary for tests. RandomWord walks the words
// slice and repeats the last entry once drained.
type fakeDict struct {
	mu    sync.Mutex
	words []string
	idx   int

	defs    map[string]*Definition
	syns    map[string]string
	real    map[string]bool
	realAll bool
}

func newFakeDict(words ...string) *fakeDict {
	return &fakeDict{
		words:   words,
		defs:    make(map[string]*Definition),
		syns:    make(map[string]string),
		real:    make(map[string]bool),
		realAll: true,
	}
}

func (d *fakeDict) RandomWord(context.Context) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.words) == 0 {
		return ""
	}
	word := d.words[d.idx]
	if d.idx < len(d.words)-1 {
		d.idx++
	}
	return word
}

func (d *fakeDict) BestDefinition(_ context.Context, word string) *Definition {
	return d.defs[word]
}

func (d *fakeDict) BestSynonym(_ context.Context, word string) string {
	return d.syns[word]
}

func (d *fakeDict) IsRealWord(_ context.Context, word string) bool {
	if d.realAll {
		return true
	}
	return d.real[word]
}

const testJWTSecret = "0123456789abcdef0123456789abcdef"

func testConfig() Config {
	return Config{
		Auth: AuthConfig{JWTSecret: testJWTSecret, JWTIssuer: "speedle"},
		Game: GameConfig{
			DefaultLang:             "en-ZA",
			SeedDefinitionRetries:   5,
			SeedSynonymRetries:      5,
			WordPickRetries:         10,
			HintPenaltySec:          10,
			HintMinRemainingSec:     10,
			LeaderboardDefaultLimit: 100,
			LeaderboardMaxLimit:     200,
		},
		RateLimit: RateLimitConfig{RPS: 1000, Burst: 1000},
		CORS:      CORSConfig{AllowedOrigins: []string{"*"}},
	}
}

// newTestApp builds an App over a memory store with a frozen clock.
func newTestApp(dict Dictionary) *App {
	app := newApp(testConfig(), NewMemoryStore(), dict, NewJWTVerifier(testJWTSecret, "speedle"))
	frozen := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	app.now = func() time.Time { return frozen }
	return app
}

// setClock pins the app clock to a fixed instant.
func setClock(app *App, t time.Time) {
	app.now = func() time.Time { return t }
}

// advanceClock moves the app clock forward by d.
func advanceClock(app *App, d time.Duration) {
	current := app.now()
	app.now = func() time.Time { return current.Add(d) }
}

// testToken issues a valid bearer token for uid.
func testToken(t *testing.T, uid string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   uid,
		Issuer:    "speedle",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}
