package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string

	// DefaultLocation seeds the preferred-location setting until the user
	// changes it.
	DefaultLocation string
	ForecastDays    int

	// SyncInterval controls the periodic sync cadence; SyncFlex is the
	// window each run may drift inside.
	SyncInterval   time.Duration
	SyncFlex       time.Duration
	NotifyInterval time.Duration

	HTTPTimeout time.Duration
	DBPath      string
	Port        string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.OpenWeatherBaseURL = os.Getenv("OPENWEATHER_BASE_URL")
	cfg.DefaultLocation = getenvDefault("WEATHER_LOCATION", "London")

	cfg.ForecastDays = getenvInt("FORECAST_DAYS", 14)
	if cfg.ForecastDays < 1 || cfg.ForecastDays > 16 {
		return nil, fmt.Errorf("FORECAST_DAYS must be between 1 and 16")
	}

	var err error
	if cfg.SyncInterval, err = getenvDuration("SYNC_INTERVAL", "180m"); err != nil {
		return nil, err
	}
	if cfg.SyncFlex, err = getenvDuration("SYNC_FLEX", "60m"); err != nil {
		return nil, err
	}
	if cfg.NotifyInterval, err = getenvDuration("NOTIFY_INTERVAL", "24h"); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "30s"); err != nil {
		return nil, err
	}

	cfg.DBPath = getenvDefault("DB_PATH", "forecastd.db")
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
