package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/inamate/pathconv/internal/api"
	"github.com/inamate/pathconv/internal/auth"
	"github.com/inamate/pathconv/internal/config"
	"github.com/inamate/pathconv/internal/db"
	"github.com/inamate/pathconv/internal/importer"
	"github.com/inamate/pathconv/internal/library"
	"github.com/inamate/pathconv/internal/live"
	mw "github.com/inamate/pathconv/internal/middleware"
	"github.com/inamate/pathconv/internal/pathdata"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		slog.Error("migrate database", "error", err)
		os.Exit(1)
	}

	queries := db.New(pool)

	conv := pathdata.Converter{
		Strict: cfg.StrictCommands,
		Logger: slog.Default().With("component", "pathdata"),
	}

	authService := auth.NewService(queries, cfg.JWTSecret)
	authHandler := auth.NewHandler(authService)

	libraryService := library.NewService(queries, conv, cfg.MaxPathLength)
	libraryHandler := library.NewHandler(libraryService)

	apiHandler := api.NewHandler(conv, cfg.MaxPathLength)
	importHandler := importer.NewHandler(conv, cfg.MaxUploadSize)

	hub := live.NewHub(conv, cfg.MaxPathLength)
	go hub.Run(ctx)
	liveHandler := live.NewHandler(hub, authService, cfg.Origins())

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.Origins()))

	// Auth routes (public)
	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Stateless path transforms (public)
	r.HandleFunc("/format", apiHandler.Format).Methods("POST", "OPTIONS")
	r.HandleFunc("/convert", apiHandler.Convert).Methods("POST", "OPTIONS")
	r.HandleFunc("/import", importHandler.Upload).Methods("POST", "OPTIONS")

	// Live sessions (anonymous or with ?token=)
	r.HandleFunc("/sessions", liveHandler.CreateSession).Methods("POST", "OPTIONS")
	r.HandleFunc("/ws/session/{sessionId}", liveHandler.ServeWS)

	// Protected API routes
	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(authService.AuthMiddleware)

	protected.HandleFunc("/me", authHandler.Me).Methods("GET")
	protected.HandleFunc("/paths", libraryHandler.List).Methods("GET")
	protected.HandleFunc("/paths", libraryHandler.Create).Methods("POST")
	protected.HandleFunc("/paths/{pathId}", libraryHandler.Get).Methods("GET")
	protected.HandleFunc("/paths/{pathId}", libraryHandler.Update).Methods("PUT")
	protected.HandleFunc("/paths/{pathId}", libraryHandler.Delete).Methods("DELETE")

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		// Disconnect live sessions before draining HTTP
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown", "error", err)
		}
	}()

	slog.Info("server starting", "addr", addr, "strict", cfg.StrictCommands)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
