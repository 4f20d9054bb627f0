package server

import (
	"time"

	"covid-dashboard/internal/domain"
	"covid-dashboard/internal/view"
)

type MetricOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type GlobalStatsResponse struct {
	Stats      domain.GlobalStats `json:"stats"`
	UpdatedAt  time.Time          `json:"updatedAt"`
	Continents []string           `json:"continents"`
	Metrics    []MetricOption     `json:"metrics"`
}

type SetMetricRequest struct {
	Metric string `json:"metric"`
}

type SetContinentRequest struct {
	Continent string `json:"continent"`
}

type SetSearchRequest struct {
	Term string `json:"term"`
}

type SortTableRequest struct {
	Field string `json:"field"`
}

type SortTableResponse struct {
	Field     string     `json:"field"`
	Ascending bool       `json:"ascending"`
	Table     view.Table `json:"table"`
}

type RefreshResponse struct {
	Version    uint64 `json:"version"`
	Regions    int    `json:"regions"`
	Points     int    `json:"points"`
	DurationMs int64  `json:"durationMs"`
}
