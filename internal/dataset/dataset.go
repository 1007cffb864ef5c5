// Package dataset loads and saves tabular P-V-T measurements.
//
// The on-disk format is comma-separated with an optional header:
//
//	t,st,v,sv[,p,sp]
//
// Temperature in K, volume in A^3, pressure in GPa, each value followed
// by its standard uncertainty.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/san-kum/eoslab/internal/quantity"
)

// Observation is one measured P-V-T record. Pressure is optional; when
// absent HasPressure is false and P is zero.
type Observation struct {
	T           quantity.Quantity
	V           quantity.Quantity
	P           quantity.Quantity
	HasPressure bool
}

// Load reads observations from a CSV file. A header row is detected by
// a non-numeric first field and skipped.
func Load(path string) ([]Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}

	obs := make([]Observation, 0, len(records))
	for i, rec := range records {
		if i == 0 && len(rec) > 0 {
			if _, err := strconv.ParseFloat(rec[0], 64); err != nil {
				continue // header
			}
		}
		o, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("dataset: row %d: %w", i+1, err)
		}
		obs = append(obs, o)
	}
	return obs, nil
}

func parseRecord(rec []string) (Observation, error) {
	var o Observation
	if len(rec) != 4 && len(rec) != 6 {
		return o, fmt.Errorf("expected 4 or 6 fields, got %d", len(rec))
	}
	vals := make([]float64, 4)
	for i := 0; i < 4; i++ {
		v, err := strconv.ParseFloat(rec[i], 64)
		if err != nil {
			return o, fmt.Errorf("field %d: %w", i+1, err)
		}
		vals[i] = v
	}
	o.T = quantity.New(vals[0], vals[1])
	o.V = quantity.New(vals[2], vals[3])

	// Empty p,sp fields mark an observation without a pressure
	// measurement; both must be empty together.
	if len(rec) == 6 && (rec[4] != "" || rec[5] != "") {
		if rec[4] == "" || rec[5] == "" {
			return o, fmt.Errorf("pressure and its uncertainty must both be present or both empty")
		}
		p, err := strconv.ParseFloat(rec[4], 64)
		if err != nil {
			return o, fmt.Errorf("field 5: %w", err)
		}
		sp, err := strconv.ParseFloat(rec[5], 64)
		if err != nil {
			return o, fmt.Errorf("field 6: %w", err)
		}
		o.P = quantity.New(p, sp)
		o.HasPressure = true
	}
	return o, nil
}

// Save writes observations as CSV with a header row.
func Save(path string, obs []Observation) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"t", "st", "v", "sv", "p", "sp"}); err != nil {
		return err
	}
	for _, o := range obs {
		rec := []string{
			formatFloat(o.T.Value), formatFloat(o.T.Sigma),
			formatFloat(o.V.Value), formatFloat(o.V.Sigma),
			"", "",
		}
		if o.HasPressure {
			rec[4] = formatFloat(o.P.Value)
			rec[5] = formatFloat(o.P.Sigma)
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
