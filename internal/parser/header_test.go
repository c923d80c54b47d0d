package parser

import (
	"errors"
	"testing"

	"github.com/field-logger/driftnorm/internal/models"
)

func TestClassifyHeaderLine(t *testing.T) {
	t.Run("column header sets field kind", func(t *testing.T) {
		cases := []struct {
			label string
			want  models.FieldKind
		}{
			{"T('C)", models.FieldTemp},
			{"light(lux)", models.FieldLight},
			{"wets0-50", models.FieldWets},
			{"wet min('C)", models.FieldWetTemp},
			{"wet/dry", models.FieldWetDry},
			{"duration", models.FieldWetDry}, // alias
		}
		for _, c := range cases {
			hl, err := ClassifyHeaderLine("DD/MM/YYYY HH:MM:SS\t" + c.label)
			if err != nil {
				t.Fatalf("label %q: unexpected error %v", c.label, err)
			}
			if hl.Kind != HeaderColumns {
				t.Errorf("label %q: expected HeaderColumns, got %v", c.label, hl.Kind)
			}
			if hl.Field != c.want {
				t.Errorf("label %q: expected field %s, got %s", c.label, c.want, hl.Field)
			}
		}
	})

	t.Run("column header with trailing columns", func(t *testing.T) {
		hl, err := ClassifyHeaderLine("DD/MM/YYYY HH:MM:SS\twet min('C)\twet max('C)")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if hl.Field != models.FieldWetTemp {
			t.Errorf("expected wet_temp, got %s", hl.Field)
		}
	})

	t.Run("unknown label is an error", func(t *testing.T) {
		_, err := ClassifyHeaderLine("DD/MM/YYYY HH:MM:SS\thumidity(%)")
		var labelErr *ErrUnknownFieldLabel
		if !errors.As(err, &labelErr) {
			t.Fatalf("expected ErrUnknownFieldLabel, got %v", err)
		}
		if labelErr.Label != "humidity(%)" {
			t.Errorf("expected label humidity(%%), got %q", labelErr.Label)
		}
	})

	t.Run("drift start", func(t *testing.T) {
		hl, err := ClassifyHeaderLine("Programmed: 01/01/2022 00:00:00.")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if hl.Kind != HeaderDriftStart {
			t.Fatalf("expected HeaderDriftStart, got %v", hl.Kind)
		}
		if hl.Timestamp != 1640995200 {
			t.Errorf("expected 1640995200, got %d", hl.Timestamp)
		}
	})

	t.Run("drift end", func(t *testing.T) {
		hl, err := ClassifyHeaderLine("End of logging (DD/MM/YYYY HH:MM:SS): 01/01/2022 01:00:00")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if hl.Kind != HeaderDriftEnd {
			t.Fatalf("expected HeaderDriftEnd, got %v", hl.Kind)
		}
		if hl.Timestamp != 1640995200+3600 {
			t.Errorf("expected %d, got %d", 1640995200+3600, hl.Timestamp)
		}
	})

	t.Run("drift rate", func(t *testing.T) {
		hl, err := ClassifyHeaderLine("Drift (secs): -42.")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if hl.Kind != HeaderDriftRate {
			t.Fatalf("expected HeaderDriftRate, got %v", hl.Kind)
		}
		if hl.DriftSeconds != -42 {
			t.Errorf("expected -42, got %d", hl.DriftSeconds)
		}
	})

	t.Run("free text is unmatched", func(t *testing.T) {
		for _, line := range []string{
			"",
			"Some logger banner text",
			"Serial number: 12345",
			"Drift (secs): sixty.",
		} {
			hl, err := ClassifyHeaderLine(line)
			if err != nil {
				t.Fatalf("line %q: unexpected error %v", line, err)
			}
			if hl.Kind != HeaderUnmatched {
				t.Errorf("line %q: expected HeaderUnmatched, got %v", line, hl.Kind)
			}
		}
	})
}

func TestDriftWindowRate(t *testing.T) {
	w := models.DriftWindow{Start: 0, End: 3600, DriftSeconds: 60}
	if got := w.RatePerSecond(); got != 60.0/3600.0 {
		t.Errorf("expected %f, got %f", 60.0/3600.0, got)
	}

	// Zero elapsed window disables correction instead of faulting.
	w = models.DriftWindow{Start: 100, End: 100, DriftSeconds: 60}
	if got := w.RatePerSecond(); got != 0 {
		t.Errorf("expected 0 for zero-length window, got %f", got)
	}
}
