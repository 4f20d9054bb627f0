package server

import (
	"net/http"

	"covid-dashboard/internal/middleware"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// NewRouter mounts the Connect service and the plain HTTP routes behind
// request IDs and CORS.
func NewRouter(rpc *DashboardServer, web *HTTPServer, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	path, handler := rpc.Handler()
	mux.Handle(path, handler)
	web.Register(mux)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"X-Request-ID", "X-Render-Error", "Content-Disposition"},
	})

	return middleware.RequestID(logger)(c.Handler(mux))
}
