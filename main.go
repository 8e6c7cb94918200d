// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/baseball-dictionary/auth"
	"github.com/danielhkuo/baseball-dictionary/cliparse"
	"github.com/danielhkuo/baseball-dictionary/db"
	"github.com/danielhkuo/baseball-dictionary/logger"
	"github.com/danielhkuo/baseball-dictionary/middleware"
	"github.com/danielhkuo/baseball-dictionary/models"
	"github.com/danielhkuo/baseball-dictionary/moderation"
	"github.com/danielhkuo/baseball-dictionary/notify"
	"github.com/danielhkuo/baseball-dictionary/repository"
	"github.com/danielhkuo/baseball-dictionary/router"
	"github.com/danielhkuo/baseball-dictionary/search"
	"github.com/danielhkuo/baseball-dictionary/session"
	"github.com/danielhkuo/baseball-dictionary/web"
)

// termRefreshInterval bounds how stale the web catalog can get when terms
// are approved outside the web admin page
const termRefreshInterval = 5 * time.Minute

func main() {
	var err error

	if err := cliparse.LoadEnv(); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}
	logger.Init()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the database
	dbConn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	if err := db.CreateSchema(ctx, dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	if cfg.SeedSample {
		n, err := db.SeedTerms(ctx, dbConn, models.SampleTerms())
		if err != nil {
			slog.Error("seeding terms failed", "error", err)
			os.Exit(1)
		}
		if n > 0 {
			slog.Info("Seeded sample terms", "count", n)
		}
	}

	verifier, err := auth.NewKeyVerifier(cfg.AdminAPIKey, cfg.AdminKeyHash)
	if err != nil {
		slog.Error("admin key configuration invalid", "error", err)
		os.Exit(1)
	}

	searchService := newSearchService(ctx, dbConn, cfg)
	notifier := newNotifier(cfg)
	if m, ok := notifier.(*notify.Mailer); ok {
		defer m.Wait()
	}

	// API routes
	mux := router.NewRouter(dbConn, cfg, router.Services{
		Search:   searchService,
		Notifier: notifier,
		Verifier: verifier,
	})

	// Web pages on the same mux
	store := newCredentialStore(cfg)
	repo := newRepository(cfg)
	site, err := web.New(repo, store)
	if err != nil {
		slog.Error("web setup failed", "error", err)
		os.Exit(1)
	}
	site.Register(mux)
	go site.Run(ctx)
	go refreshTerms(ctx, repo)

	// Create server
	server := &http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "data_mode", cfg.DataMode)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}
}

// newSearchService uses Meilisearch when configured and reindexes the
// catalog into it. Without MEILI_URL search runs over the database.
func newSearchService(ctx context.Context, conn *sql.DB, cfg cliparse.Config) *search.Service {
	source := search.TermSourceFunc(func(ctx context.Context) ([]models.Term, error) {
		return db.LoadTerms(ctx, conn)
	})
	if cfg.MeiliURL == "" {
		return search.NewService(nil, source)
	}

	svc := search.NewService(search.NewMeili(cfg.MeiliURL, cfg.MeiliKey), source)
	rows, err := db.LoadTermRows(ctx, conn)
	if err != nil {
		slog.Error("failed to load terms for indexing", "error", err)
		return svc
	}
	recs := make([]search.TermRecord, len(rows))
	for i, row := range rows {
		recs[i] = search.TermRecord{
			ID:       row.ID,
			Term:     row.Term.Term,
			Analogy:  row.Analogy,
			Category: row.Category,
			Position: row.Position,
		}
	}
	svc.ReindexAll(recs)
	return svc
}

func newNotifier(cfg cliparse.Config) notify.Notifier {
	mailer := notify.NewMailer(notify.Config{
		Host:       cfg.SMTPHost,
		Port:       cfg.SMTPPort,
		Username:   cfg.SMTPUsername,
		Password:   cfg.SMTPPassword,
		From:       cfg.SMTPFrom,
		FromName:   "Baseball Bathroom Dictionary",
		AdminEmail: cfg.AdminEmail,
	})
	if !mailer.IsConfigured() {
		slog.Info("SMTP not configured; email notifications disabled")
		return notify.Nop{}
	}
	return mailer
}

func newCredentialStore(cfg cliparse.Config) moderation.CredentialStore {
	if cfg.RedisURL == "" {
		return moderation.NewMemoryStore()
	}
	store, err := session.NewRedisStore(cfg.RedisURL, session.DefaultTTL)
	if err != nil {
		slog.Warn("redis unavailable, keeping admin sessions in memory", "error", err)
		return moderation.NewMemoryStore()
	}
	slog.Info("Using Redis for admin sessions")
	return store
}

// newRepository picks the web frontend's data source. Live mode talks to
// API_URL, or to this server's own API when unset.
func newRepository(cfg cliparse.Config) *repository.Cached {
	if cfg.DataMode == cliparse.DataModeSample {
		slog.Info("Using sample data for the web frontend")
		return repository.NewCached(repository.NewSample(repository.DefaultLatency))
	}

	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = "http://127.0.0.1:" + strconv.Itoa(cfg.Port) + "/api"
	}
	return repository.NewCached(repository.NewHTTP(apiURL, nil))
}

func refreshTerms(ctx context.Context, repo *repository.Cached) {
	ticker := time.NewTicker(termRefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			repo.Refresh()
		}
	}
}
