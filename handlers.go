package main

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// abortWithError maps a lifecycle error to a client response. Errors outside
// the API taxonomy are logged with the original condition and answered with a
// generic server error.
func (app *App) abortWithError(c *gin.Context, err error) {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.status, gin.H{"error": apiErr.message})
		return
	}

	reqID, _ := c.Request.Context().Value(requestIDKey).(string)
	if reqID != "" {
		logWarn("[request_id=%v] Request failed: %v", reqID, err)
	} else {
		logWarn("Request failed: %v", err)
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// currentUID returns the verified user id for this request, or "".
func currentUID(c *gin.Context) string {
	return c.GetString(userIDContextKey)
}

// langOrDefault resolves the language parameter with the configured default.
func (app *App) langOrDefault(lang string) string {
	if lang == "" {
		return app.Config.Game.DefaultLang
	}
	return lang
}

// dateOrToday resolves the date parameter with today's UTC calendar day.
func (app *App) dateOrToday(date string) string {
	if date == "" {
		return todayStr(app.now())
	}
	return date
}

// todayHandler returns today's puzzle for the requested language, seeding it
// lazily on first access. Authenticated callers also get a played flag.
func (app *App) todayHandler(c *gin.Context) {
	ctx := c.Request.Context()
	lang := app.langOrDefault(c.Query("lang"))
	date := todayStr(app.now())

	puzzle, err := app.getOrCreateDailyPuzzle(ctx, date, lang)
	if err != nil {
		app.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.puzzleView(ctx, puzzle, currentUID(c)))
}

// definitionHandler returns the stored definition for a (date, lang) puzzle.
func (app *App) definitionHandler(c *gin.Context) {
	puzzle, err := app.loadDailyPuzzle(c.Request.Context(),
		app.dateOrToday(c.Query("date")), app.langOrDefault(c.Query("lang")))
	if err != nil {
		app.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":       puzzle.Date,
		"lang":       puzzle.Lang,
		"mode":       puzzle.Mode,
		"definition": puzzle.Definition,
	})
}

// synonymHandler returns the stored synonym for a (date, lang) puzzle.
func (app *App) synonymHandler(c *gin.Context) {
	puzzle, err := app.loadDailyPuzzle(c.Request.Context(),
		app.dateOrToday(c.Query("date")), app.langOrDefault(c.Query("lang")))
	if err != nil {
		app.abortWithError(c, err)
		return
	}
	var synonym *string
	if puzzle.Synonym != "" {
		synonym = &puzzle.Synonym
	}
	c.JSON(http.StatusOK, gin.H{
		"date":    puzzle.Date,
		"lang":    puzzle.Lang,
		"mode":    puzzle.Mode,
		"synonym": synonym,
	})
}

type validateDailyRequest struct {
	Guess string `json:"guess"`
	Lang  string `json:"lang"`
	Date  string `json:"date"`
}

// validateDailyHandler checks a guess against the daily answer without
// recording anything.
func (app *App) validateDailyHandler(c *gin.Context) {
	var req validateDailyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		app.abortWithError(c, errValidation("invalid request body"))
		return
	}

	puzzle, feedback, err := app.validateDailyGuess(c.Request.Context(),
		app.dateOrToday(req.Date), app.langOrDefault(req.Lang), req.Guess)
	if err != nil {
		app.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":     puzzle.Date,
		"lang":     puzzle.Lang,
		"mode":     puzzle.Mode,
		"length":   puzzle.Length,
		"guess":    normalizeGuess(req.Guess),
		"feedback": feedback,
		"won":      allCorrect(feedback),
	})
}

// submitHandler records the authenticated caller's daily result, idempotently.
func (app *App) submitHandler(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		app.abortWithError(c, errValidation("invalid request body"))
		return
	}
	req.Lang = app.langOrDefault(req.Lang)
	req.Date = app.dateOrToday(req.Date)

	result, err := app.submitDailyResult(c.Request.Context(), currentUID(c), req)
	if err != nil {
		app.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// myResultHandler returns the authenticated caller's recorded daily result.
func (app *App) myResultHandler(c *gin.Context) {
	result, err := app.myResult(c.Request.Context(), currentUID(c),
		app.dateOrToday(c.Query("date")), app.langOrDefault(c.Query("lang")))
	if err != nil {
		app.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type startRequest struct {
	Lang        string `json:"lang"`
	DurationSec int    `json:"durationSec"`
}

// startSpeedleHandler creates a new timed session. An empty body starts a
// default 60-second session.
func (app *App) startSpeedleHandler(c *gin.Context) {
	req := startRequest{DurationSec: 60}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		app.abortWithError(c, errValidation("invalid request body"))
		return
	}

	session, err := app.startSpeedle(c.Request.Context(), app.langOrDefault(req.Lang), req.DurationSec)
	if err != nil {
		app.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, StartResponse{
		SessionID:   session.SessionID,
		WordID:      session.WordID,
		Length:      session.Length,
		Lang:        session.Lang,
		DurationSec: session.DurationSec,
		StartedAt:   session.StartedAt,
	})
}

type speedleGuessRequest struct {
	SessionID string `json:"sessionId"`
	Guess     string `json:"guess"`
}

// validateSpeedleHandler applies one guess to a session.
func (app *App) validateSpeedleHandler(c *gin.Context) {
	var req speedleGuessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		app.abortWithError(c, errValidation("invalid request body"))
		return
	}

	result, err := app.validateSpeedleGuess(c.Request.Context(), req.SessionID, req.Guess)
	if err != nil {
		app.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type hintRequest struct {
	SessionID string `json:"sessionId"`
}

// hintSpeedleHandler trades a time penalty for the answer's definition.
func (app *App) hintSpeedleHandler(c *gin.Context) {
	var req hintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		app.abortWithError(c, errValidation("invalid request body"))
		return
	}

	result, err := app.applyHint(c.Request.Context(), req.SessionID)
	if err != nil {
		app.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type finishRequest struct {
	SessionID   string `json:"sessionId"`
	EndReason   string `json:"endReason"`
	DisplayName string `json:"displayName"`
}

// finishSpeedleHandler applies the client-declared terminal transition.
func (app *App) finishSpeedleHandler(c *gin.Context) {
	var req finishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		app.abortWithError(c, errValidation("invalid request body"))
		return
	}

	result, err := app.finishSpeedle(c.Request.Context(), req.SessionID, req.EndReason, req.DisplayName)
	if err != nil {
		app.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// leaderboardHandler returns ranked won sessions for a (date, duration) pair.
func (app *App) leaderboardHandler(c *gin.Context) {
	date := app.dateOrToday(c.Query("date"))
	durationSec, err := strconv.Atoi(c.DefaultQuery("duration", "90"))
	if err != nil {
		app.abortWithError(c, errValidation("duration must be a number"))
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			app.abortWithError(c, errValidation("limit must be a number"))
			return
		}
	}

	rows, err := app.leaderboard(c.Request.Context(), date, durationSec, limit)
	if err != nil {
		app.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// healthHandler reports process liveness and uptime.
func (app *App) healthHandler(c *gin.Context) {
	uptime := time.Since(app.StartTime)
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"env":       map[bool]string{true: "production", false: "development"}[app.IsProduction],
		"uptime":    formatUptime(uptime),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
