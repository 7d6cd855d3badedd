package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"migraph/internal/config"
	"migraph/internal/engine"
	"migraph/internal/logging"
	"migraph/internal/project"
	"migraph/internal/storage"
)

var (
	setupOnce    sync.Once
	sharedCfg    *config.Config
	sharedLogger *logging.Logger
	sharedStore  *storage.Store
	setupErr     error
)

// setup lazily loads config, builds the logger, and opens the run store.
func setup() (*config.Config, *logging.Logger, *storage.Store, error) {
	setupOnce.Do(func() {
		cfg, err := config.LoadConfig(projectRootFlag)
		if err != nil {
			setupErr = fmt.Errorf("failed to load config: %w", err)
			return
		}
		if err := cfg.Validate(); err != nil {
			setupErr = err
			return
		}

		format := cfg.Logging.Format
		if logFormatFlag != "" {
			format = logFormatFlag
		}
		level := cfg.Logging.Level
		if logLevelFlag != "" {
			level = logLevelFlag
		}
		logger := logging.NewLogger(logging.Config{
			Format: logging.ParseFormat(format),
			Level:  logging.ParseLevel(level),
			Output: os.Stderr,
		})

		storeDir := cfg.Storage.Directory
		if !filepath.IsAbs(storeDir) {
			storeDir = filepath.Join(projectRootFlag, storeDir)
		}
		store, err := storage.OpenStore(storeDir, logger)
		if err != nil {
			setupErr = err
			return
		}

		sharedCfg = cfg
		sharedLogger = logger
		sharedStore = store
	})
	return sharedCfg, sharedLogger, sharedStore, setupErr
}

// mustSetup exits on setup failure.
func mustSetup() (*config.Config, *logging.Logger, *storage.Store) {
	cfg, logger, store, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg, logger, store
}

// newEngine builds the pipeline engine from shared state.
func newEngine(cfg *config.Config, logger *logging.Logger, store *storage.Store) *engine.Engine {
	return engine.New(store, logger, cfg.Analysis.Workers)
}

// resolveFactsPath picks the facts batch location with precedence:
// --facts flag, migraph.toml manifest, config default.
func resolveFactsPath(flagValue string, cfg *config.Config) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	manifest, err := project.LoadFromRoot(projectRootFlag)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", project.ManifestFile, err)
	}
	if manifest != nil && manifest.FactsPath != "" {
		return filepath.Join(projectRootFlag, manifest.FactsPath), nil
	}

	return filepath.Join(projectRootFlag, cfg.Facts.Path), nil
}
