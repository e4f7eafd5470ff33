package config

import (
	"os"

	"github.com/joho/godotenv"
)

var loaded bool

// Config reads a variable from .env, falling back to the process environment.
func Config(key string) string {
	if !loaded {
		godotenv.Load(".env")
		loaded = true
	}
	return os.Getenv(key)
}
