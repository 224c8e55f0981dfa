package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"github.com/drukbank/teller/internal/bank"
	"github.com/drukbank/teller/internal/config"
	"github.com/drukbank/teller/internal/repository"
	"github.com/drukbank/teller/internal/session"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		// No logger yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Logging goes to stderr so it never interleaves with the menu on stdout
	logger := newLogger(cfg.Log.Level)
	_ = level.Info(logger).Log("msg", "teller started", "driver", cfg.Storage.Driver, "path", cfg.Storage.Path)

	// Open the storage backend
	store, err := newStore(cfg, log.With(logger, "component", "store"))
	if err != nil {
		_ = level.Error(logger).Log("msg", "failed to open store", "err", err)
		os.Exit(1)
	}
	defer store.Close()

	// Cancel the session on SIGINT/SIGTERM; the current operation finishes
	// before the loop observes the canceled context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		_ = level.Info(logger).Log("msg", "shutdown signal received")
		cancel()
	}()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	b, err := bank.New(ctx, store, rng, log.With(logger, "component", "bank"))
	if err != nil {
		_ = level.Error(logger).Log("msg", "failed to load bank", "err", err)
		os.Exit(1)
	}

	s := session.New(b, os.Stdin, os.Stdout, log.With(logger, "component", "session"))
	if err := s.Run(ctx); err != nil && err != context.Canceled {
		_ = level.Error(logger).Log("msg", "session failed", "err", err)
		os.Exit(1)
	}

	_ = level.Info(logger).Log("msg", "teller stopped")
}

// newLogger builds the logfmt logger with the configured level filter.
func newLogger(levelName string) log.Logger {
	var logger log.Logger
	{
		logger = log.NewLogfmtLogger(os.Stderr)
		logger = level.NewFilter(logger, levelOption(levelName))
		logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	}
	return logger
}

func levelOption(name string) level.Option {
	switch name {
	case "debug":
		return level.AllowDebug()
	case "warn":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}

// newStore picks the storage backend from configuration.
func newStore(cfg *config.Config, logger log.Logger) (repository.Store, error) {
	if cfg.Storage.Driver == config.DriverSQLite {
		return repository.NewSQLiteStore(cfg.Storage.Path)
	}
	return repository.NewFlatFileStore(cfg.Storage.Path, logger), nil
}
