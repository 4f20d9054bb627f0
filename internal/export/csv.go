// Package export serializes the full dataset for download.
//
// Delimited text is written without quoting or escaping. Upstream values
// are plain country names and numbers, so this holds for the live data, but
// a country name containing the delimiter or a newline would shift columns.
// Unsafe reports such records so callers can warn before handing out a file.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"covid-dashboard/internal/domain"
)

const DefaultDelimiter = ","

// Column is one exported field. Raw returns a string, int64 or float64.
type Column struct {
	Label string
	Raw   func(domain.Region) any
}

// Value is the column's text form: numbers in their shortest decimal form.
func (c Column) Value(r domain.Region) string {
	switch v := c.Raw(r).(type) {
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// DefaultColumns is the fixed download layout.
var DefaultColumns = []Column{
	{Label: "Country", Raw: func(r domain.Region) any { return r.Country }},
	{Label: "Continent", Raw: func(r domain.Region) any { return r.Continent }},
	{Label: "Cases", Raw: func(r domain.Region) any { return r.Cases }},
	{Label: "Today Cases", Raw: func(r domain.Region) any { return r.TodayCases }},
	{Label: "Deaths", Raw: func(r domain.Region) any { return r.Deaths }},
	{Label: "Recovered", Raw: func(r domain.Region) any { return r.Recovered }},
	{Label: "Active", Raw: func(r domain.Region) any { return r.Active }},
	{Label: "Cases Per Million", Raw: func(r domain.Region) any { return r.CasesPerOneMillion }},
}

// ToDelimitedText renders a header line followed by one line per record.
// Every line, including the last, ends with "\n".
func ToDelimitedText(records []domain.Region, columns []Column, delimiter string) string {
	var b strings.Builder
	// WriteDelimitedText only fails when the writer does.
	_ = WriteDelimitedText(&b, records, columns, delimiter)
	return b.String()
}

func WriteDelimitedText(w io.Writer, records []domain.Region, columns []Column, delimiter string) error {
	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = c.Label
	}
	if _, err := io.WriteString(w, strings.Join(header, delimiter)+"\n"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	fields := make([]string, len(columns))
	for _, r := range records {
		for i, c := range columns {
			fields[i] = c.Value(r)
		}
		if _, err := io.WriteString(w, strings.Join(fields, delimiter)+"\n"); err != nil {
			return fmt.Errorf("failed to write row %q: %w", r.Country, err)
		}
	}
	return nil
}

// Unsafe returns the countries whose exported fields contain the delimiter,
// a quote or a line break.
func Unsafe(records []domain.Region, columns []Column, delimiter string) []string {
	var out []string
	for _, r := range records {
		for _, c := range columns {
			v := c.Value(r)
			if strings.Contains(v, delimiter) || strings.ContainsAny(v, "\"\r\n") {
				out = append(out, r.Country)
				break
			}
		}
	}
	return out
}

// FileName is the download name, e.g. covid19_data_2024-03-01.csv.
func FileName(now time.Time, ext string) string {
	return fmt.Sprintf("covid19_data_%s.%s", now.UTC().Format("2006-01-02"), ext)
}
