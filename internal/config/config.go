package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	DiseaseAPIBase string
	HistoricalDays int
	DBPath         string
	ServerPort     string
	LogLevel       string
	FetchTimeout   time.Duration
	ChartWidth     int
	ChartHeight    int
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		DiseaseAPIBase: getEnv("DISEASE_API_BASE", "https://disease.sh/v3/covid-19"),
		DBPath:         lookupEnv("DB_PATH", "dashboard.db"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.HistoricalDays, err = getEnvInt("HISTORICAL_DAYS", 365); err != nil {
		return nil, err
	}
	if cfg.ChartWidth, err = getEnvInt("CHART_WIDTH", 960); err != nil {
		return nil, err
	}
	if cfg.ChartHeight, err = getEnvInt("CHART_HEIGHT", 500); err != nil {
		return nil, err
	}
	if cfg.FetchTimeout, err = getEnvDuration("FETCH_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Info().
		Str("api_base", cfg.DiseaseAPIBase).
		Int("historical_days", cfg.HistoricalDays).
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Dur("fetch_timeout", cfg.FetchTimeout).
		Msg("configuration loaded")

	return cfg, nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.DiseaseAPIBase)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("DISEASE_API_BASE must be an absolute URL, got %q", c.DiseaseAPIBase)
	}
	if c.HistoricalDays <= 0 {
		return fmt.Errorf("HISTORICAL_DAYS must be positive, got %d", c.HistoricalDays)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive, got %s", c.FetchTimeout)
	}
	if c.ChartWidth < 320 || c.ChartHeight < 200 {
		return fmt.Errorf("chart size %dx%d is too small", c.ChartWidth, c.ChartHeight)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// lookupEnv keeps an explicitly empty value; DB_PATH= disables the journal.
func lookupEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

var Module = fx.Provide(Load)
