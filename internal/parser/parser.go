package parser

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/field-logger/driftnorm/internal/models"
)

// FileParser reads one logger file and produces a Timeline of
// drift-corrected readings. A file moves through two states: HEADER,
// where drift parameters and the active field are collected, and DATA,
// entered once the column-header line is seen.
type FileParser struct {
	offsetHours int
	log         *zap.Logger
}

// NewFileParser creates a parser applying the given fixed timezone
// offset (hours subtracted from adjusted UTC to get local time).
func NewFileParser(offsetHours int, log *zap.Logger) *FileParser {
	if log == nil {
		log = zap.NewNop()
	}
	return &FileParser{offsetHours: offsetHours, log: log}
}

// Parse reads the logger file at path. I/O failures and unknown column
// labels are returned as errors; the caller decides whether the run
// continues. The returned Timeline is never shared with the parser.
func (p *FileParser) Parse(path string) (*models.Timeline, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening logger file: %w", err)
	}
	defer file.Close()

	tl, err := p.ParseReader(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tl, nil
}

// ParseReader runs the HEADER/DATA state machine over r.
func (p *FileParser) ParseReader(r io.Reader) (*models.Timeline, error) {
	tl := models.NewTimeline()

	var (
		window models.DriftWindow
		dps    float64
		field  models.FieldKind
		inData bool
	)

	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			line = strings.TrimPrefix(line, "\xEF\xBB\xBF")
			first = false
		}

		if inData {
			p.parseDataRow(tl, line, field, window.Start, dps)
			continue
		}

		hl, err := ClassifyHeaderLine(line)
		if err != nil {
			return nil, err
		}
		switch hl.Kind {
		case HeaderColumns:
			field = hl.Field
			inData = true
		case HeaderDriftStart:
			window.Start = hl.Timestamp
		case HeaderDriftEnd:
			window.End = hl.Timestamp
		case HeaderDriftRate:
			window.DriftSeconds = hl.DriftSeconds
			if window.End == window.Start {
				p.log.Warn("drift window has zero elapsed time, skipping drift correction",
					zap.Int("driftSeconds", window.DriftSeconds))
			}
			dps = window.RatePerSecond()
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading logger file: %w", err)
	}

	return tl, nil
}

// parseDataRow handles one tab-delimited data line. Rows with an empty
// or unparseable timestamp are skipped. Rows landing on an existing
// adjusted-time key merge into that Reading, last write wins per field.
func (p *FileParser) parseDataRow(tl *models.Timeline, line string, field models.FieldKind, start int64, dps float64) {
	cols := strings.Split(line, "\t")
	if cols[0] == "" {
		return
	}

	raw := ParseTimestamp(cols[0])
	if raw <= 0 {
		return
	}

	adjusted := raw + int64(math.Round(dps*float64(raw-start)))
	local := adjusted - int64(p.offsetHours)*3600

	reading := tl.Ensure(FormatTimestamp(adjusted))
	reading.Time = models.String(FormatTimestamp(raw))
	reading.LocalTime = models.String(FormatTimestamp(local))

	switch field {
	case models.FieldWetDry:
		if len(cols) > 2 {
			reading.WetDry = models.String(cols[2])
			reading.Duration = models.String(cols[1])
		}
	case models.FieldWetTemp:
		if len(cols) > 4 {
			reading.WetTempMin = models.String(cols[1])
			reading.WetTempMax = models.String(cols[2])
			reading.WetTempMean = models.String(cols[3])
			reading.WetTempSamples = models.String(cols[4])
		}
	case models.FieldTemp:
		if len(cols) > 1 {
			reading.Temp = models.String(cols[1])
		}
	case models.FieldLight:
		if len(cols) > 1 {
			reading.Light = models.String(cols[1])
		}
	case models.FieldWets:
		if len(cols) > 1 {
			reading.Wets = models.String(cols[1])
		}
	}
}
