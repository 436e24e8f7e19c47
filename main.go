package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ginCors "github.com/gin-contrib/cors"
	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		logFatal("Failed to load config: %v", err)
	}

	isProduction := os.Getenv("GIN_MODE") == "release" || os.Getenv("ENV") == "production"
	logInfo("Starting speedle in %s mode", map[bool]string{true: "production", false: "development"}[isProduction])

	store, err := NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		logFatal("Failed to open document store: %v", err)
	}
	defer store.Close()
	logInfo("Document store ready at %s", cfg.Store.Path)

	if cfg.Dictionary.Key == "" {
		logWarn("No WordsAPI key configured, dictionary degrades to the fallback word list")
	}
	if cfg.Auth.JWTSecret == "" {
		logWarn("No JWT secret configured, all requests are treated as anonymous")
	}

	app := newApp(cfg, store, NewWordsClient(cfg.Dictionary), NewJWTVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer))
	app.IsProduction = isProduction

	startServer(app, app.newRouter())
}

// newRouter assembles the gin engine with the full middleware chain and
// route table. Split out from main so tests can drive the real router.
func (app *App) newRouter() *gin.Engine {
	router := gin.Default()

	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression))
	router.Use(ginCors.New(ginCors.Config{
		AllowOrigins: app.Config.CORS.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-Id"},
	}))
	router.Use(requestIDMiddleware())
	router.Use(noStoreMiddleware())

	if err := router.SetTrustedProxies(app.Config.Server.TrustedProxies); err != nil {
		logWarn("Failed to set trusted proxies: %v", err)
	}

	router.GET("/health", app.healthHandler)

	api := router.Group("/api/v1")
	api.Use(app.optionalAuth())

	word := api.Group("/word")
	word.GET("/today", app.todayHandler)
	word.GET("/definition", app.definitionHandler)
	word.GET("/synonym", app.synonymHandler)
	word.POST("/validate", app.rateLimitMiddleware(), app.validateDailyHandler)
	word.POST("/submit", app.rateLimitMiddleware(), app.requireAuth(), app.submitHandler)
	word.GET("/myresult", app.requireAuth(), app.myResultHandler)

	speedle := api.Group("/speedle")
	speedle.POST("/start", app.rateLimitMiddleware(), app.startSpeedleHandler)
	speedle.POST("/validate", app.rateLimitMiddleware(), app.validateSpeedleHandler)
	speedle.POST("/hint", app.rateLimitMiddleware(), app.hintSpeedleHandler)
	speedle.POST("/finish", app.rateLimitMiddleware(), app.finishSpeedleHandler)
	speedle.GET("/leaderboard", app.leaderboardHandler)

	return router
}

func startServer(app *App, router *gin.Engine) {
	srv := &http.Server{
		Addr:              ":" + app.Config.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: app.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       app.Config.Server.ReadTimeout,
		WriteTimeout:      app.Config.Server.WriteTimeout,
		IdleTimeout:       app.Config.Server.IdleTimeout,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
		<-sigint
		logInfo("Shutdown signal received, shutting down server gracefully...")
		ctx, cancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logWarn("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	logInfo("Server starting on http://localhost:%s", app.Config.Server.Port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logFatal("Server failed to start: %v", err)
	}
	<-idleConnsClosed
	logInfo("Server shutdown complete")
}
