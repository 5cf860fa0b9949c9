package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	GinMode           string
	LogLevel          string
	PredictURL        string
	SubjectPredictURL string
	DatasetPath       string
	DatabaseURL       string
	StaticRoot        string
	EnableDB          bool
}

// Load reads configuration from the environment, with an optional .env
// file for local runs.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		GinMode:           getEnv("GIN_MODE", "release"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		PredictURL:        getEnv("PREDICT_URL", "https://spark-283984718972.europe-west1.run.app/predict"),
		SubjectPredictURL: getEnv("PREDICT_SUBJECT_URL", "https://spark-283984718972.europe-west1.run.app/predict_subject"),
		DatasetPath:       getEnv("DATASET_PATH", "data/screening_records.csv"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		StaticRoot:        os.Getenv("STATIC_ROOT"),
		EnableDB:          strings.EqualFold(getEnv("ENABLE_DB", "false"), "true"),
	}

	if cfg.EnableDB && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when ENABLE_DB=true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
