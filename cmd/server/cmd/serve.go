package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brianpage/portfolio-server/internal/api"
	"github.com/brianpage/portfolio-server/internal/config"
	"github.com/brianpage/portfolio-server/internal/metrics"
	"github.com/brianpage/portfolio-server/internal/storage"
	"github.com/brianpage/portfolio-server/internal/storage/filestore"
	"github.com/brianpage/portfolio-server/internal/storage/postgres"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// Server flags (override config/env)
	serverHost string
	serverPort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the portfolio HTTP server",
	Long: `Start the portfolio HTTP server and begin accepting requests.

The server will:
- Load configuration from environment variables (and a local .env file)
- Open PostgreSQL when DATABASE_URL is set, or the JSON file store otherwise
- Apply the storage schema if it does not exist yet
- Handle graceful shutdown on SIGINT/SIGTERM

Examples:
  # Start with default configuration (from env vars)
  server serve

  # Start on a specific host and port
  server serve --host 127.0.0.1 --port 9090

  # Start with debug logging
  server serve --log-level debug`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host address (default: 0.0.0.0)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (default: 8080)")
}

func runServer() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}

	logger := config.NewLogger(cfg.Logging)
	logger.Info().Msg("starting portfolio server")

	metrics.Init(Version, GitCommit, BuildDate)
	logger.Info().Str("version", Version).Msg("metrics initialized")

	repo, err := openRepository(cfg, logger)
	if err != nil {
		return err
	}
	defer repo.Close()

	schemaCtx, schemaCancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = repo.EnsureSchema(schemaCtx)
	schemaCancel()
	if err != nil {
		return fmt.Errorf("schema setup failed: %w", err)
	}

	router, err := api.NewRouter(cfg, logger, repo)
	if err != nil {
		return fmt.Errorf("router init failed: %w", err)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	return gracefulShutdown(server, logger)
}

// openRepository picks the storage backend: PostgreSQL when DATABASE_URL is
// set, the local JSON file store otherwise.
func openRepository(cfg config.Config, logger zerolog.Logger) (storage.Repository, error) {
	if cfg.Database.URL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		repo, err := postgres.NewRepository(ctx, cfg.Database.URL, cfg.Database.MaxConnections)
		if err != nil {
			return nil, fmt.Errorf("database connection failed: %w", err)
		}
		logger.Info().Msg("using postgres storage")
		return repo, nil
	}

	store, err := filestore.Open(cfg.Database.FilePath)
	if err != nil {
		return nil, fmt.Errorf("file store open failed: %w", err)
	}
	logger.Info().Str("path", cfg.Database.FilePath).Msg("DATABASE_URL not set, using file storage")
	return store, nil
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}

	return cfg, nil
}

func gracefulShutdown(server *http.Server, logger zerolog.Logger) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
		return err
	}

	logger.Info().Msg("server stopped")
	return nil
}
