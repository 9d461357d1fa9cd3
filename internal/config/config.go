package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	MappingsPath string
	DBPath       string
	OutputDir    string

	MappingThreshold int
	FileRowLimit     int
	PreviewRows      int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		MappingsPath: getEnv("MAPPINGS_PATH", filepath.Join(cwd, "data", "mappings.json")),
		DBPath:       getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		OutputDir:    getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		MappingThreshold: getEnvInt("MAPPING_THRESHOLD", 3),
		FileRowLimit:     getEnvInt("FILE_ROW_LIMIT", 50000),
		PreviewRows:      getEnvInt("PREVIEW_ROWS", 8),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
