// Command snapshot fetches the data once, applies a filter and writes every
// chart, the table and the CSV export to a directory.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"covid-dashboard/internal/constants"
	"covid-dashboard/internal/domain"
	fxmodules "covid-dashboard/internal/fx"
	"covid-dashboard/internal/service"
	"covid-dashboard/internal/sorting"
	"covid-dashboard/internal/view"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type options struct {
	metric    string
	continent string
	search    string
	sort      string
	desc      bool
	format    string
	outDir    string
}

func main() {
	var opts options
	flag.StringVar(&opts.metric, "metric", string(domain.MetricCases), "metric driving the charts")
	flag.StringVar(&opts.continent, "continent", domain.ContinentAll, "continent filter")
	flag.StringVar(&opts.search, "search", "", "country name filter for the table")
	flag.StringVar(&opts.sort, "sort", "", "table sort field, e.g. cases or country")
	flag.BoolVar(&opts.desc, "desc", false, "sort descending")
	flag.StringVar(&opts.format, "format", string(view.FormatSVG), "chart format: svg or png")
	flag.StringVar(&opts.outDir, "out", "snapshot", "output directory")
	flag.Parse()

	var (
		dash    *service.Dashboard
		exports *service.ExportService
		db      *sql.DB
		logger  zerolog.Logger
	)
	app := fx.New(
		fxmodules.Module,
		fx.NopLogger,
		fx.Populate(&dash, &exports, &db, &logger),
	)
	if err := app.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "snapshot: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.StartupTimeout)
	err := run(ctx, dash, exports, opts, logger)
	cancel()
	if db != nil {
		if cerr := db.Close(); cerr != nil {
			logger.Warn().Err(cerr).Msg("error closing database connection")
		}
	}
	if err != nil {
		logger.Error().Err(err).Msg("snapshot failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, dash *service.Dashboard, exports *service.ExportService, opts options, logger zerolog.Logger) error {
	format, err := view.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if _, err := dash.Load(ctx, domain.LoadOriginSnapshot); err != nil {
		return err
	}

	if opts.sort != "" {
		field := sorting.Field(opts.sort)
		// the first sort on a column is ascending
		times := 1
		if opts.desc {
			times = 2
		}
		for range times {
			if _, err := dash.SortTable(field); err != nil {
				return err
			}
		}
	}
	if _, err := dash.SetMetric(domain.Metric(opts.metric)); err != nil {
		return err
	}
	if _, err := dash.SetContinent(opts.continent); err != nil {
		return err
	}
	frame, err := dash.SetSearch(opts.search)
	if err != nil {
		return err
	}
	if frame.UnknownContinent {
		logger.Warn().Str("continent", opts.continent).Msg("continent not present in the data")
	}

	for _, kind := range view.Kinds {
		v, err := dash.RenderChart(kind, format)
		if err != nil {
			return err
		}
		if v.Failed() {
			logger.Warn().Str("view", string(kind)).Str("error", v.Error).Msg("view rendered as placeholder")
		}
		name := filepath.Join(opts.outDir, fmt.Sprintf("%s.%s", kind, format))
		if err := os.WriteFile(name, v.Image, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}

	if err := writeFile(filepath.Join(opts.outDir, "table.txt"), func(f *os.File) error {
		return frame.Table.WriteText(f)
	}); err != nil {
		return err
	}

	e, err := exports.Prepare(service.ExportCSV)
	if err != nil {
		return err
	}
	if err := writeFile(filepath.Join(opts.outDir, e.FileName), func(f *os.File) error {
		return exports.Write(ctx, f, e)
	}); err != nil {
		return err
	}

	logger.Info().Str("dir", opts.outDir).Uint64("version", frame.Version).Int("rows", len(frame.Table.Rows)).Msg("snapshot written")
	return nil
}

func writeFile(name string, write func(*os.File) error) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return f.Close()
}
