// Package emit serializes a finished timeline to tabular output.
package emit

import (
	"encoding/csv"
	"io"

	"github.com/field-logger/driftnorm/internal/models"
)

// Header is the fixed 12-column CSV header, one column per output
// field in the order downstream spreadsheets expect.
var Header = []string{
	"Adjusted UTC Time",
	"Adjusted Local Time",
	"Original UTC Time",
	"Temp",
	"Light",
	"Wets",
	"Wet/Dry",
	"Duration",
	"Wet Temp (min)",
	"Wet Temp (max)",
	"Wet Temp (mean)",
	"Wet Temp (samples)",
}

// WriteCSV writes the timeline to w as CSV, one row per adjusted-UTC
// timestamp in ascending order. Absent fields render as empty cells.
func WriteCSV(w io.Writer, tl *models.Timeline) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return err
	}

	for _, key := range tl.SortedKeys(false) {
		r := tl.Get(key)
		row := []string{
			key,
			cell(r.LocalTime),
			cell(r.Time),
			cell(r.Temp),
			cell(r.Light),
			cell(r.Wets),
			cell(r.WetDry),
			cell(r.Duration),
			cell(r.WetTempMin),
			cell(r.WetTempMax),
			cell(r.WetTempMean),
			cell(r.WetTempSamples),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func cell(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
