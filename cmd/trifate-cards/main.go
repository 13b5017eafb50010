package main

import (
	"os"

	"github.com/ericogr/trifate-cards/internal/api"
	"github.com/ericogr/trifate-cards/internal/constants"
	"github.com/ericogr/trifate-cards/internal/engine"
	"github.com/ericogr/trifate-cards/internal/logging"

	"github.com/gin-gonic/gin"
)

func main() {
	checkEnvVars([]string{constants.EnvSessionSecret, constants.EnvGoogleClientID, constants.EnvGoogleClientSecret})

	// Load the relay configuration file. Path may be provided via
	// TRIFATE_CONFIG or defaults to ./trifate_config.json in the current
	// working directory; a missing file falls back to built-in defaults.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./trifate_config.json"
	}
	cfg := loadConfigOrDefault(configPath)
	logging.Info("Wheel archetypes loaded", logging.Fields{"ids": engine.ArchetypeIDs(cfg.Archetypes)})

	// Allow the DB path to be configured via TRIFATE_DB. Default to a
	// `data/` directory inside the backend module for local development.
	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = "./data/trifate.db"
	}
	repo := createRepositoryOrExit(dbPath, cfg.LobbyTTL)

	handler := api.NewMatchHandler(repo, cfg.Archetypes, cfg.WinGoal)
	authHandler := api.NewAuthHandler(repo)

	startLobbySweeper(repo)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteArchetypes, handler.ListArchetypes)
		apiRoutes.GET(constants.RoutePublicMatches, handler.ListPublicMatches)
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)
		apiRoutes.GET(constants.RouteVersion, api.Version)

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(api.AuthRequired())

		protected.GET(constants.RoutePlayerStats, handler.GetPlayerStats)
		protected.POST(constants.RoutePlayerStats, handler.UpdatePlayerProfile)
		protected.POST(constants.RouteMatches, handler.CreateMatch)
		protected.POST(constants.RouteMatchesJoin, handler.JoinMatch)
		protected.GET(constants.RouteMatchByCode, handler.GetMatch)
		protected.POST(constants.RouteMatchStart, handler.StartMatch)
		protected.POST(constants.RouteMatchLeave, handler.LeaveMatch)
		protected.DELETE(constants.RouteMatchByCode, handler.EndMatch)
		protected.POST(constants.RouteMatchIntents, handler.PostIntent)
		protected.GET(constants.RouteMatchIntents, handler.ListIntents)
	}

	router.POST(constants.RouteAuthGoogleCallBack, authHandler.GoogleOAuthCallback)

	// Start server on configured address
	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}

func checkEnvVars(vars []string) {
	for _, v := range vars {
		if os.Getenv(v) == "" {
			logging.Fatal("Required environment variable not set", nil, logging.Fields{"var": v})
		}
	}
}
