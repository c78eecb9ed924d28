package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/planwise/internal/config"
	"github.com/rpggio/planwise/internal/domain/activity"
	"github.com/rpggio/planwise/internal/domain/recommend"
	"github.com/rpggio/planwise/internal/domain/session"
	"github.com/rpggio/planwise/internal/mcp"
	"github.com/rpggio/planwise/internal/sqlite"
	"github.com/rpggio/planwise/internal/transport"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const shutdownTimeout = 5 * time.Second

// serveFlags override the loaded configuration when set.
type serveFlags struct {
	host      string
	port      int
	dbPath    string
	transport string
	logLevel  string
}

func (f *serveFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.host, "host", "", "HTTP listen host")
	fs.IntVar(&f.port, "port", 0, "HTTP listen port")
	fs.StringVar(&f.dbPath, "db", "", "SQLite database path (:memory: for a throwaway store)")
	fs.StringVar(&f.transport, "transport", "", "Transport: http|stdio")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level: debug|info|warn|error")
}

func (f *serveFlags) apply(fs *pflag.FlagSet, cfg *config.Config) error {
	if fs.Changed("host") {
		cfg.Server.Host = f.host
	}
	if fs.Changed("port") {
		cfg.Server.Port = f.port
	}
	if fs.Changed("db") {
		cfg.DB.Path = f.dbPath
	}
	if fs.Changed("transport") {
		cfg.Transport.Mode = f.transport
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	return cfg.Validate()
}

func newServeCmd(version string) *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and MCP, or MCP over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if err := flags.apply(cmd.Flags(), &cfg); err != nil {
				return fmt.Errorf("invalid flags: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, version)
		},
	}
	flags.bind(cmd.Flags())
	return cmd
}

func serve(ctx context.Context, cfg config.Config, version string) error {
	// Stdout carries JSON-RPC in stdio mode.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == config.TransportStdio {
		logWriter = os.Stderr
	}
	if cfg.Log.Path != "" {
		fileWriter, err := newLogFileWriter(cfg.Log.Path, cfg.Log.MaxBytes)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer fileWriter.Close()
			logWriter = fileWriter
		}
	}
	logger := newLogger(cfg.Log, logWriter)

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()
	if err := db.RunMigrations(); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	engine := recommend.Default()
	activitySvc := activity.NewService(sqlite.NewActivityRepository(db), logger)
	sessionSvc := session.NewService(sqlite.NewSessionRepository(db), activitySvc, engine, logger)

	mcpServer := mcp.NewServer(mcp.Config{
		Sessions: sessionSvc,
		Engine:   engine,
		Logger:   logger,
		Version:  version,
	})

	if cfg.Transport.Mode == config.TransportStdio {
		return runStdio(ctx, logger, mcpServer)
	}
	router := transport.NewServer(transport.Config{
		Sessions: sessionSvc,
		Engine:   engine,
		Logger:   logger,
		MCP:      mcp.NewHTTPHandler(mcpServer, false),
	})
	return runHTTP(ctx, logger, router, cfg.Addr())
}

func runStdio(ctx context.Context, logger *slog.Logger, server *sdkmcp.Server) error {
	logger.Info("starting stdio transport")
	// Run blocks until stdin closes or ctx is canceled.
	if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	return nil
}

func runHTTP(ctx context.Context, logger *slog.Logger, handler http.Handler, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
