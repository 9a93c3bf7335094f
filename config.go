package biweekly

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings for a batch run. Values come from the
// environment (with .env support) and may be overridden by CLI flags.
type Config struct {
	BaseURL     string
	DownloadDir string
	CSVDir      string
	StartYear   int
}

// LoadConfig reads configuration from the environment, loading a .env file
// when one is present.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		BaseURL:     getEnv("BIWEEKLY_BASE_URL", DefaultBaseURL),
		DownloadDir: getEnv("BIWEEKLY_DOWNLOAD_DIR", "pdfs"),
		CSVDir:      getEnv("BIWEEKLY_CSV_DIR", "csvs"),
		StartYear:   getEnvInt("BIWEEKLY_START_YEAR", 2020),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
