package parser

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/field-logger/driftnorm/internal/models"
)

// Logger file headers are free text with a handful of significant
// lines. Each significant shape has a matcher; matchers are evaluated
// in a fixed priority order and the first hit wins. Anything else is
// ignored.

// HeaderKind tags the result of classifying one header line.
type HeaderKind int

const (
	HeaderUnmatched HeaderKind = iota
	HeaderColumns              // "DD/MM/YYYY HH:MM:SS\t<label>...": start of data
	HeaderDriftStart           // "Programmed: <ts>."
	HeaderDriftEnd             // "End of logging (DD/MM/YYYY HH:MM:SS): <ts>"
	HeaderDriftRate            // "Drift (secs): <n>."
)

// HeaderLine is the classified form of one header line.
type HeaderLine struct {
	Kind HeaderKind

	// Field is set for HeaderColumns.
	Field models.FieldKind

	// Timestamp is set for HeaderDriftStart / HeaderDriftEnd
	// (sentinel 0 when the captured text does not parse).
	Timestamp int64

	// DriftSeconds is set for HeaderDriftRate.
	DriftSeconds int
}

var (
	columnsRegex    = regexp.MustCompile(`^DD/MM/YYYY HH:MM:SS\t(.*?)(\t(.*?))?$`)
	driftStartRegex = regexp.MustCompile(`^Programmed: (.*?)\.`)
	driftEndRegex   = regexp.MustCompile(`^End of logging \(DD/MM/YYYY HH:MM:SS\): (.*?)$`)
	driftRateRegex  = regexp.MustCompile(`^Drift \(secs\): (.*?)\.`)
)

// fieldLabels maps the column-header vocabulary used across the logger
// families to the reading column each file populates. "duration" files
// carry the same wet/dry rows as "wet/dry" files, just labelled from
// the second column.
var fieldLabels = map[string]models.FieldKind{
	"T('C)":       models.FieldTemp,
	"light(lux)":  models.FieldLight,
	"wets0-50":    models.FieldWets,
	"wet min('C)": models.FieldWetTemp,
	"wet/dry":     models.FieldWetDry,
	"duration":    models.FieldWetDry,
}

// ErrUnknownFieldLabel reports a column-header label outside the known
// logger vocabulary. The file format is fixed, so this is a hard fault
// for that file rather than something to skip silently.
type ErrUnknownFieldLabel struct {
	Label string
}

func (e *ErrUnknownFieldLabel) Error() string {
	return fmt.Sprintf("unknown field label %q in column header", e.Label)
}

// ClassifyHeaderLine matches line against the known header shapes in
// priority order. An unrecognized column label yields HeaderColumns
// with a non-nil error; every other unmatched line is HeaderUnmatched.
func ClassifyHeaderLine(line string) (HeaderLine, error) {
	if m := columnsRegex.FindStringSubmatch(line); m != nil {
		kind, ok := fieldLabels[m[1]]
		if !ok {
			return HeaderLine{Kind: HeaderColumns}, &ErrUnknownFieldLabel{Label: m[1]}
		}
		return HeaderLine{Kind: HeaderColumns, Field: kind}, nil
	}
	if m := driftStartRegex.FindStringSubmatch(line); m != nil {
		return HeaderLine{Kind: HeaderDriftStart, Timestamp: ParseTimestamp(m[1])}, nil
	}
	if m := driftEndRegex.FindStringSubmatch(line); m != nil {
		return HeaderLine{Kind: HeaderDriftEnd, Timestamp: ParseTimestamp(m[1])}, nil
	}
	if m := driftRateRegex.FindStringSubmatch(line); m != nil {
		secs, err := strconv.Atoi(m[1])
		if err != nil {
			return HeaderLine{Kind: HeaderUnmatched}, nil
		}
		return HeaderLine{Kind: HeaderDriftRate, DriftSeconds: secs}, nil
	}
	return HeaderLine{Kind: HeaderUnmatched}, nil
}
