package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/HMasataka/serve/internal/accesslog"
	"github.com/HMasataka/serve/internal/applog"
	"github.com/HMasataka/serve/internal/config"
	"github.com/HMasataka/serve/internal/server"
	"github.com/HMasataka/serve/pkg/static"
)

const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitUsageError = 2
)

// Run parses args over base, serves until SIGINT or SIGTERM and returns the
// process exit code.
func Run(ctx context.Context, name string, base config.Config, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Parse(name, args, base)
	if err != nil {
		if config.IsHelp(err) {
			fmt.Fprintln(stdout, err)
			return ExitOK
		}
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return ExitUsageError
	}

	logger, err := applog.New(stdout, cfg.Log)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return ExitUsageError
	}
	slog.SetDefault(logger)

	rootDir, err := filepath.Abs(cfg.Server.Root)
	if err != nil {
		logger.Error("failed to resolve root", slog.String("root", cfg.Server.Root), slog.String("error", err.Error()))
		return ExitFailure
	}

	root, err := os.OpenRoot(rootDir)
	if err != nil {
		logger.Error("failed to open root", slog.String("root", rootDir), slog.String("error", err.Error()))
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return ExitFailure
	}
	defer root.Close()

	var handler http.Handler = static.NewHandler(
		static.NewRootFS(root, logger),
		static.WithDefaultDocument(cfg.Server.DefaultDocument),
		static.WithContentTypes(static.NewContentTypes(cfg.MIME)),
		static.WithLogger(logger),
	)
	if cfg.Server.AccessLog {
		handler = accesslog.Middleware(logger, handler)
	}

	srv := server.New(cfg.Server.ListenAddr(), handler,
		server.WithLogger(logger),
		server.WithAnnouncer(server.NewBanner(stdout, cfg.Banner, rootDir)),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting server",
		slog.String("addr", cfg.Server.ListenAddr()),
		slog.String("root", rootDir),
		slog.String("default_document", cfg.Server.DefaultDocument),
	)

	if err := srv.Run(ctx); err != nil {
		var bindErr *server.BindError
		if errors.As(err, &bindErr) {
			logger.Error("failed to bind", slog.String("addr", bindErr.Addr), slog.String("error", bindErr.Err.Error()))
		} else {
			logger.Error("server error", slog.String("error", err.Error()))
		}
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return ExitFailure
	}

	return ExitOK
}
