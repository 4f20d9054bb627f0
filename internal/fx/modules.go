package fx

import (
	"database/sql"

	"covid-dashboard/internal/api"
	"covid-dashboard/internal/config"
	"covid-dashboard/internal/database"
	"covid-dashboard/internal/fetch"
	"covid-dashboard/internal/geo"
	"covid-dashboard/internal/logger"
	"covid-dashboard/internal/repository"
	"covid-dashboard/internal/server"
	"covid-dashboard/internal/service"
	"covid-dashboard/internal/store"
	"covid-dashboard/internal/view"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// ApplyLogLevel raises the global floor once LOG_LEVEL is known.
func ApplyLogLevel(cfg *config.Config) {
	zerolog.SetGlobalLevel(logger.ParseLevel(cfg.LogLevel))
}

func ProvideLoadRepository(sqlDB *sql.DB, log zerolog.Logger) *repository.LoadRepository {
	return repository.NewLoadRepository(sqlDB, logger.Named(log, "journal"))
}

func ProvideExportRepository(sqlDB *sql.DB, log zerolog.Logger) *repository.ExportRepository {
	return repository.NewExportRepository(sqlDB, logger.Named(log, "journal"))
}

func ProvideOrchestrator(source fetch.Source, st *store.Store, cfg *config.Config, log zerolog.Logger) *fetch.Orchestrator {
	return fetch.NewOrchestrator(source, st, cfg, logger.Named(log, "fetch"))
}

func ProvideDispatcher(cfg *config.Config, ref *geo.Reference, log zerolog.Logger) *view.Dispatcher {
	return view.NewDispatcher(cfg, ref, logger.Named(log, "view"))
}

func ProvideDashboard(st *store.Store, loader service.Loader, dispatcher *view.Dispatcher, loads *repository.LoadRepository, log zerolog.Logger) *service.Dashboard {
	return service.NewDashboard(st, loader, dispatcher, loads, logger.Named(log, "dashboard"))
}

func ProvideExportService(st *store.Store, exports *repository.ExportRepository, log zerolog.Logger) *service.ExportService {
	return service.NewExportService(st, exports, logger.Named(log, "export"))
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Invoke(ApplyLogLevel),
	fx.Provide(database.New),
	// repos
	fx.Provide(ProvideLoadRepository),
	fx.Provide(ProvideExportRepository),
	// upstream
	fx.Provide(fx.Annotate(api.NewDiseaseClient, fx.As(new(fetch.Source)))),
	fx.Provide(store.New),
	fx.Provide(
		ProvideOrchestrator,
		func(o *fetch.Orchestrator) service.Loader { return o },
	),
	// views
	fx.Provide(geo.Load),
	fx.Provide(ProvideDispatcher),
	// svc
	fx.Provide(ProvideDashboard),
	fx.Provide(ProvideExportService),
	fx.Provide(service.NewJournalService),
	// server
	fx.Provide(server.NewDashboardServer),
	fx.Provide(server.NewHTTPServer),
)
