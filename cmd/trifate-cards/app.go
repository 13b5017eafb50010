package main

import (
	"os"
	"time"

	"github.com/ericogr/trifate-cards/internal/config"
	"github.com/ericogr/trifate-cards/internal/logging"
	"github.com/ericogr/trifate-cards/internal/storage"
)

// loadConfigOrDefault loads the relay config, falling back to built-in
// defaults when the file does not exist. A present but invalid file is
// fatal so typos never silently revert to defaults.
func loadConfigOrDefault(path string) *config.LoadedConfig {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logging.Info("No configuration file; using defaults", logging.Fields{"config_path": path})
		return &config.LoadedConfig{ServerAddress: ":8080", WinGoal: 5, LobbyTTL: 30 * time.Minute}
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Invalid trifate configuration", err, logging.Fields{"config_path": path})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string, lobbyTTL time.Duration) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db, lobbyTTL)
}
