package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"insulin_advisor/internal/config"
	"insulin_advisor/internal/handlers"
	"insulin_advisor/internal/logger"
	"insulin_advisor/internal/repository"
	"insulin_advisor/internal/repository/db"
	"insulin_advisor/internal/server"
	"insulin_advisor/internal/service"
)

func serveCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP and WebSocket API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(*cfgPath)
		},
	}
}

func runServer(cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	// init logger
	log := logger.Get(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	eng, usedDefault, err := loadEngine(cfg)
	if err != nil {
		log.Errorw("dose table rejected", "err", err, "path", cfg.DoseTable.Path)
		return err
	}
	if usedDefault {
		log.Warnw("dose table file not found; using built-in table", "path", cfg.DoseTable.Path)
	}
	log.Infow("dose table loaded", "rows", eng.Table().Len(), "min_level", eng.Bounds().Min, "max_level", eng.Bounds().Max)

	// open DB (audit trail only)
	var repos *repository.Repository
	if cfg.Audit.Enabled {
		conn, err := openDB(cfg.DB.Path, log)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := conn.Close(); cerr != nil {
				log.Errorw("failed to close sqlite", "err", cerr)
			}
		}()
		repos = repository.NewRepository(conn)
	} else {
		log.Infow("audit trail disabled")
	}

	// wire dependencies
	services := service.NewService(repos, eng, log, service.Options{Retention: cfg.Audit.Retention})
	apiHandler := handlers.NewHandler(services, log,
		handlers.WithCORSOrigins(cfg.CORS.Origins),
		handlers.WithMaxBodyBytes(cfg.Server.MaxBodyBytes),
	)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Audit.Enabled {
		go services.Retention.Run(ctx, cfg.Audit.PruneInterval)
	}

	srv := &server.Server{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	serveErr := make(chan error, 1)
	go func() {
		log.Infow("listening", "port", cfg.Port)
		if err := srv.Run(cfg.Port, apiHandler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	return waitForShutdown(cancel, srv, cfg, serveErr, log)
}

// openDB initializes the SQLite audit database.
func openDB(path string, log *logger.Logger) (*sql.DB, error) {
	conn, err := db.InitDB(path)
	if err != nil {
		log.Errorw("failed to init sqlite", "err", err, "path", path)
		return nil, err
	}
	return conn, nil
}

// waitForShutdown blocks until a termination signal or a listener failure,
// then drains in-flight requests.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, cfg *config.Config, serveErr <-chan error, log *logger.Logger) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
	case err := <-serveErr:
		log.Errorw("error starting server", "err", err)
		cancel()
		return err
	}

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
		return err
	}
	return nil
}
