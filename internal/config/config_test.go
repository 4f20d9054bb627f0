package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"DISEASE_API_BASE", "HISTORICAL_DAYS", "SERVER_PORT", "LOG_LEVEL", "FETCH_TIMEOUT", "CHART_WIDTH", "CHART_HEIGHT"} {
		t.Setenv(k, "")
	}
	cfg, err := Load(zerolog.Nop())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DiseaseAPIBase != "https://disease.sh/v3/covid-19" || cfg.HistoricalDays != 365 {
		t.Errorf("unexpected upstream defaults %+v", cfg)
	}
	if cfg.FetchTimeout != 30*time.Second || cfg.ServerPort != "8080" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DISEASE_API_BASE", "http://localhost:9999/v3/covid-19")
	t.Setenv("HISTORICAL_DAYS", "30")
	t.Setenv("FETCH_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DB_PATH", "")
	cfg, err := Load(zerolog.Nop())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HistoricalDays != 30 || cfg.FetchTimeout != 5*time.Second || cfg.LogLevel != "debug" || cfg.DBPath != "" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"HISTORICAL_DAYS":  "ten",
		"FETCH_TIMEOUT":    "-1s",
		"DISEASE_API_BASE": "not a url",
		"LOG_LEVEL":        "loud",
		"CHART_WIDTH":      "10",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(zerolog.Nop()); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}
