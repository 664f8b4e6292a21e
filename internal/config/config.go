package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	JWTSecret   string
	ListenAddr  string
	Environment string
}

func Load() (*Config, error) {
	// .env is optional; real deployments set plain environment variables.
	if err := godotenv.Load(".env"); err == nil {
		log.Println("loaded configuration from .env")
	}

	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		ListenAddr:  os.Getenv("LISTEN_ADDR"),
		Environment: os.Getenv("ENV"),
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	return cfg, nil
}
