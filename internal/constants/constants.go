package constants

import "time"

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
	RenderTimeout      = 15 * time.Second
)

const (
	DBMaxOpenConns    = 1
	DBMaxIdleConns    = 1
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	// StartupTimeout covers the initial fetch, which may take FETCH_TIMEOUT.
	StartupTimeout  = 90 * time.Second
	ShutdownTimeout = 5 * time.Second
)

const (
	JournalListLimit = 50
)
