package internal

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"reflect"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/shravanasati/perfcmp/perftest"
)

// fakeClock only moves when a candidate built by takes runs.
type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time                  { return c.now }
func (c *fakeClock) Since(t time.Time) time.Duration { return c.now.Sub(t) }

func (c *fakeClock) takes(d time.Duration, result any) perftest.Func {
	return func(any) any {
		c.now = c.now.Add(d)
		return result
	}
}

// newTestSummary measures "fast" (1ms per call) against "slow" (3ms per call)
// over two rounds of four iterations.
func newTestSummary(t *testing.T) *Summary {
	t.Helper()
	clk := &fakeClock{now: time.Unix(0, 0)}
	p, err := perftest.New(
		perftest.WithMaxCount(4),
		perftest.WithWarmupRounds(0),
		perftest.WithClock(clk),
		perftest.WithLogger(perftest.LoggerFunc(func(...any) {})),
	)
	if err != nil {
		t.Fatal(err)
	}
	p.Add(clk.takes(3*time.Millisecond, "x"), "slow")
	p.Add(clk.takes(time.Millisecond, "x"), "fast")
	p.Run().Run()

	started := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return NewSummary(p, map[string]string{"fast": "echo fast"}, time.Millisecond, started, started.Add(time.Minute))
}

func TestNewSummary(t *testing.T) {
	s := newTestSummary(t)

	if s.RunID == "" || s.Iterations != 4 || s.Warmup != 0 || s.Rounds != 2 || s.TimeUnit != "ms" {
		t.Errorf("unexpected summary header: %+v", s)
	}
	if s.Started != "02-01-2024 03:04:05" || s.Ended != "02-01-2024 03:05:05" {
		t.Errorf("unexpected times %q, %q", s.Started, s.Ended)
	}
	if len(s.Tests) != 2 {
		t.Fatalf("summary has %d tests, want 2", len(s.Tests))
	}

	fast, slow := s.Tests[0], s.Tests[1]
	tests := []struct {
		name string
		got  any
		want any
	}{
		{"fast title", fast.Title, "fast"},
		{"fast command", fast.Command, "echo fast"},
		{"fast calls", fast.Calls, 8},
		{"fast cumulative", fast.Cumulative, 8.0},
		{"fast average", fast.Average, 1.0},
		{"fast diff", fast.DiffPercent, 0.0},
		{"fast rankings", fast.Rankings, []int{2, 0}},
		{"fast round totals", fast.RoundTotals, []float64{4, 4}},
		{"fast round stddev", fast.RoundStdDev, 0.0},
		{"slow title", slow.Title, "slow"},
		{"slow command", slow.Command, ""},
		{"slow cumulative", slow.Cumulative, 24.0},
		{"slow diff", slow.DiffPercent, 200.0},
		{"slow rankings", slow.Rankings, []int{0, 2}},
		{"slow round mean", slow.RoundMean, 12.0},
	}
	for _, tt := range tests {
		if !reflect.DeepEqual(tt.got, tt.want) {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
	if s.HasOutliers() {
		t.Error("constant round totals reported as outliers")
	}
}

func TestVerifyExportFormats(t *testing.T) {
	tests := []struct {
		in      string
		want    []string
		wantErr bool
	}{
		{"none", nil, false},
		{"", nil, false},
		{"json", []string{"json"}, false},
		{"JSON, csv,benchfmt", []string{"json", "csv", "benchfmt"}, false},
		{"json,xml", nil, true},
	}
	for _, tt := range tests {
		got, err := VerifyExportFormats(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("VerifyExportFormats(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("VerifyExportFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func Test_csvify(t *testing.T) {
	s := newTestSummary(t)
	var buf bytes.Buffer
	if err := csvify(s, &buf); err != nil {
		t.Fatal(err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("csv has %d records, want 3", len(records))
	}
	if records[0][4] != "Total time (ms)" {
		t.Errorf("unexpected header %v", records[0])
	}
	want := []string{s.RunID, "fast", "echo fast", "8", "8", "1", "0", "4", "0", "2 0"}
	if !reflect.DeepEqual(records[1], want) {
		t.Errorf("csv row = %v, want %v", records[1], want)
	}
}

func Test_jsonify(t *testing.T) {
	s := newTestSummary(t)
	var buf bytes.Buffer
	if err := jsonify(s, &buf); err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["runId"] != s.RunID || decoded["timeUnit"] != "ms" {
		t.Errorf("unexpected json header: %v", decoded)
	}
	if tests, ok := decoded["tests"].([]any); !ok || len(tests) != 2 {
		t.Errorf("unexpected json tests: %v", decoded["tests"])
	}
}

func Test_benchify(t *testing.T) {
	s := newTestSummary(t)
	var buf bytes.Buffer
	if err := benchify(s, &buf); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"pkg: perfcmp\n", "runid: " + s.RunID + "\n", "BenchmarkFast 4 0.001 sec/op\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("benchfmt output misses %q:\n%s", want, out)
		}
	}
	header := "goos: " + runtime.GOOS + "\ngoarch: " + runtime.GOARCH + "\npkg: perfcmp\nrunid: " + s.RunID + "\n\n"
	if !strings.HasPrefix(out, header) {
		t.Errorf("benchfmt output should start with the file config block %q:\n%s", header, out)
	}
	if n := strings.Count(out, "pkg: "); n != 1 {
		t.Errorf("file config written %d times, want once", n)
	}
	if n := strings.Count(out, "BenchmarkFast 4 "); n != 2 {
		t.Errorf("got %d lines for fast, want one per round", n)
	}
	if n := strings.Count(out, "BenchmarkSlow 4 "); n != 2 {
		t.Errorf("got %d lines for slow, want one per round", n)
	}
}

func Test_benchName(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"fast", "Fast"},
		{"grep -c foo README.md", "Grep_-c_foo_README.md"},
		{"a/b  c", "A_b_c"},
		{"äpfel", "Äpfel"},
		{"   ", "_"},
	}
	for _, tt := range tests {
		if got := benchName(tt.title); got != tt.want {
			t.Errorf("benchName(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestSummaryTemplates(t *testing.T) {
	s := newTestSummary(t)
	tests := []struct {
		name  string
		write func(*Summary, *bytes.Buffer) error
		want  []string
	}{
		{"text", func(s *Summary, b *bytes.Buffer) error { return textify(s, b) },
			[]string{"Run ID:             " + s.RunID, "1. fast", "Total time:      8 ms", "Slower by:       200 %"}},
		{"markdown", func(s *Summary, b *bytes.Buffer) error { return markdownify(s, b) },
			[]string{"| 1 | fast | `echo fast` | 8 ms | 1 ms | 4 ms ± 0 ms |  |", "| 2 | slow |  | 24 ms | 3 ms | 12 ms ± 0 ms | +200 % |"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.write(s, &buf); err != nil {
				t.Fatal(err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output misses %q:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestConsolify(t *testing.T) {
	s := newTestSummary(t)
	defer SetNoColor(NO_COLOR)

	SetNoColor(true)
	var plain bytes.Buffer
	if err := s.Consolify(&plain); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(plain.String(), "\033[") || strings.Contains(plain.String(), "${") {
		t.Errorf("plain summary contains markup:\n%s", plain.String())
	}

	SetNoColor(false)
	var colored bytes.Buffer
	if err := s.Consolify(&colored); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(colored.String(), "\033[") || strings.Contains(colored.String(), "[reset]") {
		t.Errorf("colored summary is not colorized:\n%s", colored.String())
	}
}

func TestExport(t *testing.T) {
	s := newTestSummary(t)
	t.Chdir(t.TempDir())

	s.Export([]string{"json", "csv", "text", "markdown", "benchfmt"})
	for _, name := range []string{"perfcmp-summary.json", "perfcmp-summary.csv", "perfcmp-summary.txt", "perfcmp-summary.md", "perfcmp-summary.bench"} {
		info, err := os.Stat(name)
		if err != nil || info.Size() == 0 {
			t.Errorf("export %s missing or empty: %v", name, err)
		}
	}

	var buf bytes.Buffer
	if err := s.ExportTo("xml", &buf); err == nil {
		t.Error("ExportTo() accepted an unknown format")
	}
}
