// feedstub serves an in-memory copy of the Scrolly backend API for local
// development of the client. State lives in memory and is lost on exit;
// an optional YAML seed file pre-loads users and posts.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		addr      string
		seedPath  string
		uploadDir string
		verbose   bool
	)

	flagSet := pflag.NewFlagSet("feedstub", pflag.ContinueOnError)
	flagSet.StringVarP(&addr, "addr", "a", ":8080", "listen address")
	flagSet.StringVar(&seedPath, "seed", "", "YAML file with users and posts to pre-load")
	flagSet.StringVar(&uploadDir, "upload-dir", "", "directory for uploaded images (default: a temp dir)")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log every request")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if uploadDir == "" {
		dir, err := os.MkdirTemp("", "feedstub-uploads-")
		if err != nil {
			return fmt.Errorf("create upload dir: %w", err)
		}
		defer os.RemoveAll(dir)
		uploadDir = dir
	}

	srv, err := NewServer(Config{UploadDir: uploadDir, Logger: logger})
	if err != nil {
		return err
	}
	if seedPath != "" {
		seed, err := LoadSeed(seedPath)
		if err != nil {
			return err
		}
		if err := srv.ApplySeed(seed); err != nil {
			return err
		}
		logger.Info("seed loaded", "path", seedPath, "users", len(seed.Users), "posts", len(seed.Posts))
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr, "uploads", uploadDir)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("shutting down")
	return httpServer.Shutdown(shutdownCtx)
}
