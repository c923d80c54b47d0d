package pipeline

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/field-logger/driftnorm/internal/config"
	"github.com/field-logger/driftnorm/internal/emit"
)

const degContent = `Temperature logger, site 1
Programmed: 01/01/2022 00:00:00.
End of logging (DD/MM/YYYY HH:MM:SS): 01/01/2022 01:00:00
Drift (secs): 60.
DD/MM/YYYY HH:MM:SS	T('C)
01/01/2022 00:00:00	21.5
01/01/2022 00:30:00	22.0
`

const luxContent = `Light logger, site 1
DD/MM/YYYY HH:MM:SS	light(lux)
01/01/2022 00:00:00	5400
`

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Extensions = []string{".deg", ".lux", ".sst"}
	return cfg
}

func writeDataDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return dir
}

func TestPipeline_EndToEnd(t *testing.T) {
	dir := writeDataDir(t, map[string]string{
		"site1.deg": degContent,
		"site1.lux": luxContent,
	})

	p, err := New(testConfig(), nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	result, err := p.Run(dir)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Timeline.Len() != 2 {
		t.Fatalf("Expected 2 readings, got %d", result.Timeline.Len())
	}
	if len(result.Sources) != 2 {
		t.Fatalf("Expected 2 sources, got %d", len(result.Sources))
	}

	// Each source carries the column kind its file feeds.
	for _, src := range result.Sources {
		want := "temp"
		if strings.HasSuffix(src.Path, ".lux") {
			want = "light"
		}
		if src.Kind != want {
			t.Errorf("Source %s: expected kind %q, got %q", src.Path, want, src.Kind)
		}
	}

	// Same adjusted key from both files: temp and light coexist.
	r := result.Timeline.Get("2022-01-01 00:00:00")
	if r == nil {
		t.Fatal("Expected reading at 2022-01-01 00:00:00")
	}
	if r.Temp == nil || *r.Temp != "21.5" {
		t.Errorf("Expected temp 21.5, got %v", r.Temp)
	}
	if r.Light == nil || *r.Light != "5400" {
		t.Errorf("Expected light 5400, got %v", r.Light)
	}

	// Drift-adjusted row from the .deg file only.
	r = result.Timeline.Get("2022-01-01 00:30:30")
	if r == nil {
		t.Fatal("Expected drift-adjusted reading at 2022-01-01 00:30:30")
	}
	if r.LocalTime == nil || *r.LocalTime != "2021-12-31 20:30:30" {
		t.Errorf("Expected local time shifted 4 hours, got %v", r.LocalTime)
	}

	// CSV round trip: header + 2 rows, ascending.
	var buf bytes.Buffer
	if err := emit.WriteCSV(&buf, result.Timeline); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("Invalid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d", len(records))
	}
	if records[1][0] != "2022-01-01 00:00:00" || records[2][0] != "2022-01-01 00:30:30" {
		t.Errorf("Rows out of order: %s / %s", records[1][0], records[2][0])
	}
}

func TestPipeline_DriftAdjustedFilesNeverParsed(t *testing.T) {
	// The driftadj file contains a label that would fail parsing; the
	// run only stays clean because the scanner never hands it over.
	dir := writeDataDir(t, map[string]string{
		"site1.deg":          degContent,
		"site1_driftadj.deg": "DD/MM/YYYY HH:MM:SS\tbroken-label\n",
	})

	p, err := New(testConfig(), nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	result, err := p.Run(dir)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Sources) != 1 {
		t.Fatalf("Expected 1 source, got %d", len(result.Sources))
	}
	if !strings.HasSuffix(result.Sources[0].Path, "site1.deg") {
		t.Errorf("Unexpected source: %s", result.Sources[0].Path)
	}
	for _, src := range result.Sources {
		if src.Err != "" {
			t.Errorf("Expected clean run, source %s has error %q", src.Path, src.Err)
		}
	}
}

func TestPipeline_BadFileDoesNotStopRun(t *testing.T) {
	dir := writeDataDir(t, map[string]string{
		"site1.deg": degContent,
		"odd.sst":   "DD/MM/YYYY HH:MM:SS\tpressure(hPa)\n01/01/2022 00:00:00\t1013\n",
	})

	p, err := New(testConfig(), nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	result, err := p.Run(dir)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Timeline.Len() != 2 {
		t.Errorf("Expected the good file's 2 readings, got %d", result.Timeline.Len())
	}

	var badSrc bool
	for _, src := range result.Sources {
		if strings.HasSuffix(src.Path, "odd.sst") {
			badSrc = true
			if src.Err == "" {
				t.Error("Expected error recorded on bad source")
			}
			if src.Readings != 0 {
				t.Errorf("Bad source must contribute nothing, got %d readings", src.Readings)
			}
		}
	}
	if !badSrc {
		t.Error("Expected odd.sst to appear in sources")
	}
}

func TestPipeline_CacheHitSkipsReparse(t *testing.T) {
	dir := writeDataDir(t, map[string]string{"site1.deg": degContent})

	cfg := testConfig()
	cfg.CacheDir = filepath.Join(t.TempDir(), "cache")

	p, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	first, err := p.Run(dir)
	if err != nil {
		t.Fatalf("First run failed: %v", err)
	}

	// Second run must produce the same timeline from cache.
	second, err := p.Run(dir)
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	if second.Sources[0].Kind != "temp" {
		t.Errorf("Cache hit lost the source kind, got %q", second.Sources[0].Kind)
	}
	if first.Timeline.Len() != second.Timeline.Len() {
		t.Fatalf("Cache changed the result: %d vs %d readings",
			first.Timeline.Len(), second.Timeline.Len())
	}
	for _, key := range first.Timeline.SortedKeys(false) {
		a, b := first.Timeline.Get(key), second.Timeline.Get(key)
		if (a.Temp == nil) != (b.Temp == nil) {
			t.Errorf("%s: cache dropped a field", key)
		}
	}
}

func TestPipeline_MissingDirectory(t *testing.T) {
	p, err := New(testConfig(), nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := p.Run(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("Expected error for missing directory")
	}
}
