package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// HistoricalDateLayout is the upstream date key format, e.g. "3/14/21".
const HistoricalDateLayout = "1/2/06"

// DatedValues is a date-keyed sequence that keeps the order in which the
// upstream JSON object lists its keys.
type DatedValues struct {
	Keys   []string
	Values map[string]float64
}

func (d *DatedValues) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("dated values: expected object, got %v", tok)
	}

	d.Keys = d.Keys[:0]
	d.Values = make(map[string]float64)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("dated values: expected key, got %v", tok)
		}
		var n json.Number
		if err := dec.Decode(&n); err != nil {
			return fmt.Errorf("dated values: %s: %w", key, err)
		}
		v, err := n.Float64()
		if err != nil {
			return fmt.Errorf("dated values: %s: %w", key, err)
		}
		if _, dup := d.Values[key]; !dup {
			d.Keys = append(d.Keys, key)
		}
		d.Values[key] = v
	}
	_, err = dec.Token()
	return err
}

// HistoricalResponse mirrors /historical/all. Recovered may be absent.
type HistoricalResponse struct {
	Cases     DatedValues `json:"cases"`
	Deaths    DatedValues `json:"deaths"`
	Recovered DatedValues `json:"recovered"`
}

type HistoricalPoint struct {
	Label     string    `json:"label"`
	Date      time.Time `json:"date"`
	Cases     float64   `json:"cases"`
	Deaths    float64   `json:"deaths"`
	Recovered float64   `json:"recovered"`
}

// HistoricalSeries holds cumulative global totals in upstream order.
type HistoricalSeries struct {
	Points []HistoricalPoint `json:"points"`
}

func (h *HistoricalSeries) Len() int {
	if h == nil {
		return 0
	}
	return len(h.Points)
}

// Series converts the upstream payload, keyed by the cases date set.
// Dates missing from deaths or recovered read as 0. A nil result means the
// payload carried no case series at all.
func (r *HistoricalResponse) Series() (*HistoricalSeries, error) {
	if r == nil || len(r.Cases.Keys) == 0 {
		return nil, nil
	}
	points := make([]HistoricalPoint, 0, len(r.Cases.Keys))
	for _, key := range r.Cases.Keys {
		date, err := time.Parse(HistoricalDateLayout, key)
		if err != nil {
			return nil, fmt.Errorf("invalid historical date %q: %w", key, err)
		}
		points = append(points, HistoricalPoint{
			Label:     key,
			Date:      date,
			Cases:     r.Cases.Values[key],
			Deaths:    r.Deaths.Values[key],
			Recovered: r.Recovered.Values[key],
		})
	}
	return &HistoricalSeries{Points: points}, nil
}
