package domain

import "time"

type LoadOrigin string

const (
	LoadOriginStartup  LoadOrigin = "startup"
	LoadOriginRefresh  LoadOrigin = "refresh"
	LoadOriginSnapshot LoadOrigin = "snapshot"
)

type LoadStatus string

const (
	LoadStatusOK     LoadStatus = "ok"
	LoadStatusFailed LoadStatus = "failed"
)

// LoadRecord journals one fetch attempt.
type LoadRecord struct {
	ID             string     `json:"id"`
	Origin         LoadOrigin `json:"origin"`
	Status         LoadStatus `json:"status"`
	Version        uint64     `json:"version"`
	Regions        int        `json:"regions"`
	Points         int        `json:"points"`
	FailedRequests []string   `json:"failedRequests,omitempty"`
	Error          string     `json:"error,omitempty"`
	DurationMs     int64      `json:"durationMs"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// ExportRecord journals one CSV or XLSX download.
type ExportRecord struct {
	ID         string    `json:"id"`
	Format     string    `json:"format"`
	FileName   string    `json:"fileName"`
	Rows       int       `json:"rows"`
	UnsafeRows int       `json:"unsafeRows"`
	Version    uint64    `json:"version"`
	CreatedAt  time.Time `json:"createdAt"`
}
