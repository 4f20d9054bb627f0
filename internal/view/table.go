package view

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"covid-dashboard/internal/domain"
)

// TableColumns are the table headings in display order.
var TableColumns = []string{
	"Country", "Continent", "Cases", "Today Cases", "Deaths", "Recovered", "Active", "Cases Per Million",
}

type TableRow struct {
	Country string   `json:"country"`
	Cells   []string `json:"cells"`
	// RisingToday marks rows whose todayCases is positive.
	RisingToday bool `json:"risingToday"`
}

type Table struct {
	Columns []string   `json:"columns"`
	Rows    []TableRow `json:"rows"`
}

func BuildTable(records []domain.Region) Table {
	t := Table{Columns: TableColumns, Rows: make([]TableRow, 0, len(records))}
	for _, r := range records {
		continent := r.Continent
		if continent == "" {
			continent = "N/A"
		}
		t.Rows = append(t.Rows, TableRow{
			Country: r.Country,
			Cells: []string{
				r.Country,
				continent,
				FormatCount(r.Cases),
				FormatCount(r.TodayCases),
				FormatCount(r.Deaths),
				FormatCount(r.Recovered),
				FormatCount(r.Active),
				FormatNumber(r.CasesPerOneMillion),
			},
			RisingToday: r.TodayCases > 0,
		})
	}
	return t
}

// WriteText prints the table as aligned plain text.
func (t Table) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintln(tw, strings.Join(t.Columns, "\t")+"\t"); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if _, err := fmt.Fprintln(tw, strings.Join(row.Cells, "\t")+"\t"); err != nil {
			return err
		}
	}
	return tw.Flush()
}
