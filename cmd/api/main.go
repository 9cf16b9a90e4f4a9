package main

import (
	"os"

	"github.com/dowadream/errand-service/internal/pkg/logger"
	"github.com/dowadream/errand-service/internal/server"
)

// @title Errand Service API
// @version 1.0
// @description API for the errand and service offering marketplace
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@dowadream.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
	// NewServer orchestrates config loading, database setup, dependency
	// wiring, and router construction
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run the server (this blocks until shutdown signal)
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
