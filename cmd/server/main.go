// Package main provides the entry point for the dataquery validation server.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/tazeverywhere/dataquery/pkg/config"
	"github.com/tazeverywhere/dataquery/pkg/connection"
	"github.com/tazeverywhere/dataquery/pkg/dsl"
	"github.com/tazeverywhere/dataquery/pkg/i18n"
	"github.com/tazeverywhere/dataquery/pkg/logging"
	"github.com/tazeverywhere/dataquery/pkg/query"
	"github.com/tazeverywhere/dataquery/pkg/ratelimit"
	"github.com/tazeverywhere/dataquery/server/handlers"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(logging.Options{Verbose: cfg.LogVerbose})
	slog.SetDefault(logger)

	db, err := sql.Open("duckdb", duckDBPath(cfg.DBPath))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	connMgr := connection.NewManager(db)
	if cfg.InitSQL != "" {
		if err := seed(context.Background(), connMgr, cfg.InitSQL); err != nil {
			return err
		}
		logger.Info("seeded database", "file", cfg.InitSQL)
	}

	bundle, err := i18n.NewBundle(cfg.DefaultLanguage)
	if err != nil {
		return err
	}
	if cfg.CatalogFile != "" {
		if err := bundle.LoadFile(cfg.CatalogFile); err != nil {
			return err
		}
	}

	executor := query.NewExecutor(connMgr, query.WithMutations(cfg.DryRunMutations))
	validateHandler := handlers.NewValidateHandler(dsl.NewCompiler(), executor, bundle, logger)

	var limiter *ratelimit.Limiter
	if cfg.RateLimit > 0 {
		limiter = ratelimit.New(cfg.RateLimit)
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handlers.NewRouter(validateHandler, limiter),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	logger.Info("starting dataquery server",
		"port", cfg.Port,
		"db", cfg.DBPath,
		"language", bundle.Default().Language().String(),
		"rate_limit", cfg.RateLimit,
		"dry_run_mutations", cfg.DryRunMutations)
	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// duckDBPath maps the conventional in-memory path to the driver's empty DSN.
func duckDBPath(path string) string {
	if path == config.DefaultDBPath {
		return ""
	}
	return path
}

// seed runs a schema file against the dry-run database in one transaction.
func seed(ctx context.Context, mgr *connection.Manager, path string) error {
	script, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", config.EnvInitSQL, err)
	}
	err = mgr.ExecTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, string(script))
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to run %s: %w", path, err)
	}
	return nil
}
