package fx

import (
	"testing"

	"covid-dashboard/internal/fetch"
	"covid-dashboard/internal/server"
	"covid-dashboard/internal/service"

	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func TestModule_Graph(t *testing.T) {
	err := fx.ValidateApp(
		Module,
		fx.Invoke(func(*service.Dashboard, *service.ExportService, *service.JournalService, *server.DashboardServer, *server.HTTPServer) {}),
	)
	if err != nil {
		t.Fatalf("dependency graph: %v", err)
	}
}

func TestModule_Constructs(t *testing.T) {
	t.Setenv("DB_PATH", "")
	t.Setenv("LOG_LEVEL", "error")

	var (
		dash   *service.Dashboard
		loader service.Loader
	)
	app := fxtest.New(t, Module, fx.NopLogger, fx.Populate(&dash, &loader))
	app.RequireStart()
	defer app.RequireStop()

	if dash.Loaded() {
		t.Error("nothing must be loaded before the first fetch")
	}
	if _, ok := loader.(*fetch.Orchestrator); !ok {
		t.Errorf("loader is %T, want *fetch.Orchestrator", loader)
	}
}
