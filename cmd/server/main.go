package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"covid-dashboard/internal/config"
	"covid-dashboard/internal/constants"
	"covid-dashboard/internal/domain"
	fxmodules "covid-dashboard/internal/fx"
	"covid-dashboard/internal/server"
	"covid-dashboard/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.StartTimeout(constants.StartupTimeout),
		fx.Invoke(runServer),
	).Run()
}

func runServer(
	lc fx.Lifecycle,
	dash *service.Dashboard,
	rpc *server.DashboardServer,
	web *server.HTTPServer,
	cfg *config.Config,
	db *sql.DB,
	logger zerolog.Logger,
) {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: server.NewRouter(rpc, web, logger),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// Nothing is served until the first snapshot is in; a failed
			// startup load aborts the app.
			report, err := dash.Load(ctx, domain.LoadOriginStartup)
			if err != nil {
				return fmt.Errorf("initial load: %w", err)
			}
			logger.Info().
				Uint64("version", report.Version).
				Int("regions", report.Regions).
				Int("points", report.Points).
				Msg("initial data loaded")

			go func() {
				logger.Info().Str("addr", srv.Addr).Msg("server starting")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal().Err(err).Msg("server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()

			if db != nil {
				if err := db.Close(); err != nil {
					logger.Warn().Err(err).Msg("error closing database connection")
				}
			}

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("server shutdown failed")
				return err
			}
			logger.Info().Msg("server stopped gracefully")
			return nil
		},
	})
}
