// main is the entry point of the Users API application.
//
// STARTUP SEQUENCE:
//  1. Load configuration (YAML file, environment, or pure defaults)
//  2. Initialise the logger and install it as the slog default
//  3. Construct the record store selected by storage_type
//  4. Parse the embedded API documentation
//  5. Register all HTTP routes
//  6. Start the HTTP server in a separate goroutine
//  7. Block the main goroutine until an OS signal (Ctrl+C / kill) arrives
//  8. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/users-api --config=config/local.yaml
//
// or with no configuration at all (in-memory store on :8080):
//
//	go run ./cmd/users-api
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanand-mishra/users-api/internal/config"
	"github.com/aanand-mishra/users-api/internal/docs"
	"github.com/aanand-mishra/users-api/internal/http/handlers/user"
	"github.com/aanand-mishra/users-api/internal/storage"
	"github.com/aanand-mishra/users-api/internal/storage/memory"
	"github.com/aanand-mishra/users-api/internal/storage/sqlite"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	// MustLoad reads the config and exits if anything is wrong. If this
	// returns, the config is guaranteed valid.
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// slog is Go's structured logger (stdlib since Go 1.21). Installing
	// it as the process-wide default means every package that logs —
	// handlers, the error formatter — honours the environment's format
	// and level without carrying a logger around.
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting users-api",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	// The store is constructed HERE, once, and handed to every handler
	// factory below — it is never package-global state, so tests can
	// build as many independent stores as they like.
	//
	// We keep the result as the storage.Storage INTERFACE, not as a
	// concrete type: the rest of the code cannot tell the backends
	// apart, which is exactly what lets one config key switch them.
	var store storage.Storage
	switch cfg.StorageType {
	case config.StorageMemory:
		store = memory.New()
	case config.StorageSQLite:
		sqliteStore, err := sqlite.New(cfg)
		if err != nil {
			log.Error("failed to initialise storage",
				slog.String("error", err.Error()))
			os.Exit(1) // non-zero exit code signals failure to the OS / CI system
		}
		store = sqliteStore
	default:
		log.Error("unknown storage type",
			slog.String("storage_type", cfg.StorageType))
		os.Exit(1)
	}

	log.Info("storage initialised",
		slog.String("type", cfg.StorageType))

	// ── 4. Parse API Documentation ────────────────────────────────────────
	// The OpenAPI document is embedded in the binary; parsing it now
	// means a malformed document fails the boot, not a later request.
	apiDocs, err := docs.New(cfg.HTTPServer.Addr)
	if err != nil {
		log.Error("failed to initialise docs",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	// ── 5. Register HTTP Routes ───────────────────────────────────────────
	// The handler functions (user.New, user.GetByID, etc.) are
	// FACTORIES — they receive the store and return the actual handler.
	//
	// Route table:
	//   POST   /users              → create a new user
	//   GET    /users              → list all users
	//   GET    /users/{id}         → get one user by id
	//   PUT    /users/{id}         → replace a user
	//   DELETE /users/{id}         → delete a user
	//   GET    /docs               → interactive documentation
	//   GET    /docs/openapi.yaml  → the raw OpenAPI document
	router := http.NewServeMux()

	router.HandleFunc("POST /users", user.New(store))
	router.HandleFunc("GET /users", user.GetList(store))
	router.HandleFunc("GET /users/{id}", user.GetByID(store))
	router.HandleFunc("PUT /users/{id}", user.Update(store))
	router.HandleFunc("DELETE /users/{id}", user.Delete(store))

	router.HandleFunc("GET /docs", apiDocs.UI)
	router.HandleFunc("GET /docs/openapi.yaml", apiDocs.Spec)

	// ── 6. Create the HTTP Server ─────────────────────────────────────────
	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr, // e.g. ":8080"
		Handler: router,              // every request goes through our router

		// Production hardening — set timeouts to prevent slow-client attacks.
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ── 7. Start Server in a Goroutine ────────────────────────────────────
	// ListenAndServe blocks forever, so it runs in its own goroutine;
	// the graceful-shutdown code below runs on the main one.
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		// ListenAndServe returns http.ErrServerClosed when Shutdown()
		// is called. That's expected — not an error worth logging.
		if err := server.ListenAndServe(); err != nil &&
			err != http.ErrServerClosed {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 8. Wait for Shutdown Signal ───────────────────────────────────────
	// Buffered channel so we don't miss a signal arriving while main is
	// briefly busy.
	done := make(chan os.Signal, 1)

	// os.Interrupt = Ctrl+C (SIGINT); SIGTERM is what `kill <pid>` and
	// container orchestrators send.
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// Block until a signal arrives.
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
	// Give in-flight requests up to 5 seconds to finish; after that the
	// context cancels and Shutdown returns an error.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level —
// easy to ingest by log aggregators (Loki, CloudWatch, etc.)
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo, // INFO and above in production
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug, // more verbose in staging
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug, // all levels in development
			}),
		)
	}
}
