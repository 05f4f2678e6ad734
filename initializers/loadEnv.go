package initializers

import (
	"log/slog"

	"github.com/joho/godotenv"
)

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, using process environment")
	}
}
