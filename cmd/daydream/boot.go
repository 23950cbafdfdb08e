package main

import (
	"fmt"
	"os"

	"daydream/internal/config"
	"daydream/internal/logging"
	"daydream/internal/narrative"
	"daydream/internal/shadow"
	"daydream/internal/store"
)

// bootEnv is everything a command needs from the workspace.
type bootEnv struct {
	workspace  string
	configPath string
	cfg        *config.Config
	storage    *store.LocalStorage
	narrative  *narrative.Store
	shadows    *shadow.Store
}

func resolveWorkspace() (string, error) {
	if workspace != "" {
		return workspace, nil
	}
	return os.Getwd()
}

func resolveConfigPath(ws string) string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultPath(ws)
}

// loadConfig reads and validates the workspace config. --verbose forces
// debug logging on.
func loadConfig() (ws, path string, cfg *config.Config, err error) {
	ws, err = resolveWorkspace()
	if err != nil {
		return "", "", nil, fmt.Errorf("resolve workspace: %w", err)
	}
	path = resolveConfigPath(ws)
	cfg, err = config.Load(path)
	if err != nil {
		return "", "", nil, err
	}
	if err := cfg.Validate(); err != nil {
		return "", "", nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	if verbose {
		cfg.Logging.DebugMode = true
		cfg.Logging.Level = "debug"
	}
	return ws, path, cfg, nil
}

// boot opens the workspace: config, category logs, local storage and the
// stores persisted in it.
func boot() (*bootEnv, error) {
	ws, path, cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := logging.Initialize(ws, cfg.Logging.Settings()); err != nil {
		return nil, err
	}
	logging.Boot("workspace %s, config %s", ws, path)

	storage, err := store.Open(cfg.Storage.Driver, cfg.DBPath(ws))
	if err != nil {
		logging.CloseAll()
		return nil, err
	}

	return &bootEnv{
		workspace:  ws,
		configPath: path,
		cfg:        cfg,
		storage:    storage,
		narrative:  narrative.New(narrative.WithPersister(storage)),
		shadows:    shadow.New(storage),
	}, nil
}

func (e *bootEnv) close() {
	if err := e.storage.Close(); err != nil {
		logging.StoreError("close storage: %v", err)
	}
	logging.CloseAll()
}
