package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/sandeepkv93/tasklist/internal/config"
	"github.com/sandeepkv93/tasklist/internal/logging"
	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/storage"
	"github.com/sandeepkv93/tasklist/internal/taskstore"
	"github.com/sandeepkv93/tasklist/internal/update"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file (default: $TASKLIST_CONFIG or ./"+config.DefaultConfigFile+")")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "tasklist failed: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, logCloser, err := logging.New(logging.Options{
		File:   cfg.LogFile,
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	if err != nil {
		return err
	}
	defer logCloser.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.StorageTimeout())
	repo, err := storage.Open(ctx, storage.Options{
		Backend:     cfg.Backend,
		SQLitePath:  cfg.SQLitePath,
		RedisURL:    cfg.RedisURL,
		RedisPrefix: cfg.RedisPrefix,
	})
	cancel()
	if err != nil {
		logger.WithError(err).WithField("backend", cfg.Backend).Error("open storage")
		return fmt.Errorf("open storage: %w", err)
	}
	defer repo.Close()

	store, err := taskstore.New(repo, taskstore.Options{
		Key:                 cfg.StorageKey,
		IDs:                 idGenerator(cfg.IDScheme),
		Logger:              logger,
		RollbackOnSaveError: cfg.RollbackOnSaveError,
	})
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"backend":   cfg.Backend,
		"key":       store.Key(),
		"id_scheme": cfg.IDScheme,
	}).Info("tasklist starting")

	m := update.NewModelWithConfig(store, update.ExecDesktopNotifier{}, cfg)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}
	logger.WithField("count", store.Len()).Info("tasklist stopped")
	return nil
}

func idGenerator(scheme string) model.IDGenerator {
	if scheme == "clock" {
		return model.NewClockGenerator()
	}
	return model.UUIDGenerator{}
}
