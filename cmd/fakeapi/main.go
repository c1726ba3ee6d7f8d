package main

import (
	"os"

	"github.com/giriraj47/helpstudyabroad/internal/fakeapi"
	"github.com/giriraj47/helpstudyabroad/internal/logger"
)

func main() {
	logger.Init()

	port := os.Getenv("FAKEAPI_PORT")
	if port == "" {
		port = "4000"
	}
	secret := os.Getenv("FAKEAPI_SECRET")
	if secret == "" {
		secret = "fakeapi-dev-secret"
	}

	server := fakeapi.New(secret)

	logger.Info("fakeapi started", map[string]any{
		"port": port,
	})

	if err := server.Router().Run(":" + port); err != nil {
		logger.Fatal("fakeapi server failed", map[string]any{
			"error": err.Error(),
		})
	}
}
