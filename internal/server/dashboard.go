package server

import (
	"context"
	"errors"
	"net/http"

	"covid-dashboard/internal/domain"
	"covid-dashboard/internal/fetch"
	"covid-dashboard/internal/service"
	"covid-dashboard/internal/sorting"
	"covid-dashboard/internal/view"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
	"google.golang.org/protobuf/types/known/emptypb"
)

const DashboardServicePath = "/dashboard.v1.DashboardService/"

const (
	ProcedureGetGlobalStats = DashboardServicePath + "GetGlobalStats"
	ProcedureSetMetric      = DashboardServicePath + "SetMetric"
	ProcedureSetContinent   = DashboardServicePath + "SetContinent"
	ProcedureSetSearch      = DashboardServicePath + "SetSearch"
	ProcedureReset          = DashboardServicePath + "Reset"
	ProcedureSortTable      = DashboardServicePath + "SortTable"
	ProcedureGetTable       = DashboardServicePath + "GetTable"
	ProcedureGetFrame       = DashboardServicePath + "GetFrame"
	ProcedureRefresh        = DashboardServicePath + "Refresh"
)

type DashboardServer struct {
	dash *service.Dashboard
}

func NewDashboardServer(dash *service.Dashboard) *DashboardServer {
	return &DashboardServer{dash: dash}
}

// Handler mounts every procedure under DashboardServicePath.
func (s *DashboardServer) Handler() (string, http.Handler) {
	opt := connect.WithCodec(JSONCodec{})
	mux := http.NewServeMux()
	mux.Handle(ProcedureGetGlobalStats, connect.NewUnaryHandler(ProcedureGetGlobalStats, s.GetGlobalStats, opt))
	mux.Handle(ProcedureSetMetric, connect.NewUnaryHandler(ProcedureSetMetric, s.SetMetric, opt))
	mux.Handle(ProcedureSetContinent, connect.NewUnaryHandler(ProcedureSetContinent, s.SetContinent, opt))
	mux.Handle(ProcedureSetSearch, connect.NewUnaryHandler(ProcedureSetSearch, s.SetSearch, opt))
	mux.Handle(ProcedureReset, connect.NewUnaryHandler(ProcedureReset, s.Reset, opt))
	mux.Handle(ProcedureSortTable, connect.NewUnaryHandler(ProcedureSortTable, s.SortTable, opt))
	mux.Handle(ProcedureGetTable, connect.NewUnaryHandler(ProcedureGetTable, s.GetTable, opt))
	mux.Handle(ProcedureGetFrame, connect.NewUnaryHandler(ProcedureGetFrame, s.GetFrame, opt))
	mux.Handle(ProcedureRefresh, connect.NewUnaryHandler(ProcedureRefresh, s.Refresh, opt))
	return DashboardServicePath, mux
}

func (s *DashboardServer) GetGlobalStats(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[GlobalStatsResponse], error) {
	stats, err := s.dash.GlobalStats()
	if err != nil {
		return nil, connectError(ctx, err)
	}
	continents, err := s.dash.Continents()
	if err != nil {
		return nil, connectError(ctx, err)
	}

	metrics := make([]MetricOption, 0, len(domain.Metrics))
	for _, m := range domain.Metrics {
		metrics = append(metrics, MetricOption{Value: string(m), Label: m.Label()})
	}
	return connect.NewResponse(&GlobalStatsResponse{
		Stats:      stats,
		UpdatedAt:  stats.UpdatedAt(),
		Continents: continents,
		Metrics:    metrics,
	}), nil
}

func (s *DashboardServer) SetMetric(ctx context.Context, req *connect.Request[SetMetricRequest]) (*connect.Response[view.Frame], error) {
	return frameResponse(ctx)(s.dash.SetMetric(domain.Metric(req.Msg.Metric)))
}

func (s *DashboardServer) SetContinent(ctx context.Context, req *connect.Request[SetContinentRequest]) (*connect.Response[view.Frame], error) {
	return frameResponse(ctx)(s.dash.SetContinent(req.Msg.Continent))
}

func (s *DashboardServer) SetSearch(ctx context.Context, req *connect.Request[SetSearchRequest]) (*connect.Response[view.Frame], error) {
	return frameResponse(ctx)(s.dash.SetSearch(req.Msg.Term))
}

func (s *DashboardServer) Reset(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[view.Frame], error) {
	return frameResponse(ctx)(s.dash.Reset())
}

func (s *DashboardServer) GetFrame(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[view.Frame], error) {
	return frameResponse(ctx)(s.dash.Frame())
}

func (s *DashboardServer) SortTable(ctx context.Context, req *connect.Request[SortTableRequest]) (*connect.Response[SortTableResponse], error) {
	res, err := s.dash.SortTable(sorting.Field(req.Msg.Field))
	if err != nil {
		return nil, connectError(ctx, err)
	}
	return connect.NewResponse(&SortTableResponse{
		Field:     string(res.Field),
		Ascending: res.Ascending,
		Table:     res.Frame.Table,
	}), nil
}

func (s *DashboardServer) GetTable(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[view.Table], error) {
	table, err := s.dash.Table()
	if err != nil {
		return nil, connectError(ctx, err)
	}
	return connect.NewResponse(&table), nil
}

func (s *DashboardServer) Refresh(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[RefreshResponse], error) {
	report, err := s.dash.Load(ctx, domain.LoadOriginRefresh)
	if err != nil {
		return nil, connectError(ctx, err)
	}
	return connect.NewResponse(&RefreshResponse{
		Version:    report.Version,
		Regions:    report.Regions,
		Points:     report.Points,
		DurationMs: report.Duration.Milliseconds(),
	}), nil
}

func frameResponse(ctx context.Context) func(*view.Frame, error) (*connect.Response[view.Frame], error) {
	return func(frame *view.Frame, err error) (*connect.Response[view.Frame], error) {
		if err != nil {
			return nil, connectError(ctx, err)
		}
		return connect.NewResponse(frame), nil
	}
}

func connectError(ctx context.Context, err error) *connect.Error {
	code := connect.CodeInternal
	switch {
	case errors.Is(err, service.ErrNotLoaded):
		code = connect.CodeFailedPrecondition
	case errors.Is(err, service.ErrUnknownSortField):
		code = connect.CodeInvalidArgument
	case errors.Is(err, fetch.ErrFetchFailure):
		code = connect.CodeUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		code = connect.CodeDeadlineExceeded
	}
	zerolog.Ctx(ctx).Warn().Err(err).Str("code", code.String()).Msg("request failed")
	return connect.NewError(code, err)
}
