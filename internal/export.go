package internal

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"text/template"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/mitchellh/colorstring"
	"golang.org/x/perf/benchfmt"

	"github.com/shravanasati/perfcmp/perftest"
)

const summaryBaseName = "perfcmp-summary"

// TestSummary is the exported record of one test.
type TestSummary struct {
	Title       string    `json:"title"`
	Command     string    `json:"command,omitempty"`
	Calls       int       `json:"calls"`
	Cumulative  float64   `json:"cumulative"`
	Average     float64   `json:"average"`
	DiffPercent float64   `json:"diffPercent"`
	Rankings    []int     `json:"rankings"`
	RoundTotals []float64 `json:"roundTotals"`
	RoundMean   float64   `json:"roundMean"`
	RoundStdDev float64   `json:"roundStdDev"`
	Outliers    bool      `json:"outliers"`
}

// Summary is shown at the end of a run and written to the export files.
// Times are expressed in TimeUnit.
type Summary struct {
	RunID      string        `json:"runId"`
	Started    string        `json:"started"`
	Ended      string        `json:"ended"`
	Iterations int           `json:"iterations"`
	Warmup     int           `json:"warmup"`
	Rounds     int           `json:"rounds"`
	TimeUnit   string        `json:"timeUnit"`
	Tests      []TestSummary `json:"tests"`

	unit time.Duration
}

const timeLayout = "02-01-2006 15:04:05"

// NewSummary collects the totals of p. commands maps test titles to the
// command lines they run and may be nil.
func NewSummary(p *perftest.PerfTest, commands map[string]string, unit time.Duration, started, ended time.Time) *Summary {
	s := &Summary{
		RunID:      uuid.NewString(),
		Started:    started.Format(timeLayout),
		Ended:      ended.Format(timeLayout),
		Iterations: p.MaxCount(),
		Warmup:     p.WarmupRounds(),
		Rounds:     p.RoundsDone(),
		TimeUnit:   UnitSuffix(unit),
		unit:       unit,
	}

	for _, t := range p.BuildTotals().Totals() {
		tc := t.Test
		totals := make([]time.Duration, 0, len(tc.Rounds))
		for _, rec := range tc.Rounds {
			if rec.Calls > 0 {
				totals = append(totals, rec.Total)
			}
		}
		roundTotals := convertAllToTimeUnit(totals, unit)
		mean, std := ComputeAverageAndStandardDeviation(roundTotals)

		s.Tests = append(s.Tests, TestSummary{
			Title:       tc.Title,
			Command:     commands[tc.Title],
			Calls:       tc.Calls,
			Cumulative:  convertToTimeUnit(t.Cumulative, unit),
			Average:     convertToTimeUnit(t.Average, unit),
			DiffPercent: roundFloat(t.DiffPercent, 3),
			Rankings:    slices.Clone(tc.Rankings),
			RoundTotals: roundTotals,
			RoundMean:   mean,
			RoundStdDev: std,
			Outliers:    TestOutliers(roundTotals),
		})
	}
	return s
}

// HasOutliers reports whether any test's round totals contain outliers.
func (s *Summary) HasOutliers() bool {
	return slices.ContainsFunc(s.Tests, func(t TestSummary) bool { return t.Outliers })
}

func (s *Summary) num(v float64) string {
	return strconv.FormatFloat(roundFloat(v, 4), 'f', -1, 64) + " " + s.TimeUnit
}

func (s *Summary) funcs() template.FuncMap {
	return template.FuncMap{
		"num": s.num,
		"inc": func(i int) int { return i + 1 },
	}
}

var summaryNoColor = `
Benchmarking Summary
--------------------

Run ID:             {{ .RunID }}
Started:            {{ .Started }}
Ended:              {{ .Ended }}
Iterations:         {{ .Iterations }} ({{ .Warmup }} warmup calls, {{ .Rounds }} rounds)
{{ range $i, $t := .Tests }}
{{ inc $i }}. {{ $t.Title }}
   Total time:      {{ num $t.Cumulative }}
   Time per call:   {{ num $t.Average }}
   Round totals:    {{ num $t.RoundMean }} ± {{ num $t.RoundStdDev }}
{{- if $i }}
   Slower by:       {{ $t.DiffPercent }} %
{{- end }}
{{ end -}}
`

var summaryColor = `
${blue}Benchmarking Summary${reset}
${blue}--------------------${reset}

${yellow}Run ID:             ${green}{{ .RunID }}${reset}
${yellow}Started:            ${green}{{ .Started }}${reset}
${yellow}Ended:              ${green}{{ .Ended }}${reset}
${yellow}Iterations:         ${green}{{ .Iterations }} ({{ .Warmup }} warmup calls, {{ .Rounds }} rounds)${reset}
{{ range $i, $t := .Tests }}
${cyan}{{ inc $i }}. {{ $t.Title }}${reset}
${yellow}   Total time:      ${green}{{ num $t.Cumulative }}${reset}
${yellow}   Time per call:   ${green}{{ num $t.Average }}${reset}
${yellow}   Round totals:    ${green}{{ num $t.RoundMean }} ± {{ num $t.RoundStdDev }}${reset}
{{- if $i }}
${yellow}   Slower by:       ${red}{{ $t.DiffPercent }} %${reset}
{{- end }}
{{ end -}}
`

var summaryMarkdown = `
# perfcmp-summary

| Fields     | Values          |
| ---------- | --------------- |
| Run ID     | {{ .RunID }} |
| Started    | {{ .Started }} |
| Ended      | {{ .Ended }} |
| Iterations | {{ .Iterations }} |
| Warmup     | {{ .Warmup }} |
| Rounds     | {{ .Rounds }} |

| # | Test | Command | Total time | Time per call | Round totals | Diff |
| - | ---- | ------- | ---------- | ------------- | ------------ | ---- |
{{- range $i, $t := .Tests }}
| {{ inc $i }} | {{ $t.Title }} | {{ with $t.Command }}` + "`{{ . }}`" + `{{ end }} | {{ num $t.Cumulative }} | {{ num $t.Average }} | {{ num $t.RoundMean }} ± {{ num $t.RoundStdDev }} | {{ if $i }}+{{ $t.DiffPercent }} %{{ end }} |
{{- end }}
`

func (s *Summary) execute(w io.Writer, text string) error {
	tmpl, err := template.New("summary").Funcs(s.funcs()).Parse(text)
	if err != nil {
		// the templates are constants, a parse error is a bug
		panic(err)
	}
	return tmpl.Execute(w, s)
}

// Consolify prints the summary to the console, with color codes.
func (s *Summary) Consolify(w io.Writer) error {
	if NO_COLOR {
		return s.execute(w, summaryNoColor)
	}
	text := format(summaryColor, map[string]string{
		"blue": "[blue]", "yellow": "[yellow]", "green": "[green]",
		"cyan": "[cyan]", "red": "[red]", "reset": "[reset]",
	})
	var buf bytes.Buffer
	if err := s.execute(&buf, text); err != nil {
		return err
	}
	_, err := io.WriteString(w, colorstring.Color(buf.String()))
	return err
}

// textify renders the summary as plain text.
func textify(s *Summary, w io.Writer) error {
	return s.execute(w, summaryNoColor)
}

// markdownify renders the summary as markdown tables.
func markdownify(s *Summary, w io.Writer) error {
	return s.execute(w, summaryMarkdown)
}

// jsonify converts the summary to JSON.
func jsonify(s *Summary, w io.Writer) error {
	data, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// csvify writes one row per test.
func csvify(s *Summary, w io.Writer) error {
	cw := csv.NewWriter(w)
	unit := " (" + s.TimeUnit + ")"
	header := []string{"Run ID", "Test", "Command", "Calls",
		"Total time" + unit, "Time per call" + unit, "Diff (%)",
		"Round mean" + unit, "Round stddev" + unit, "Rankings"}
	if err := cw.Write(header); err != nil {
		return err
	}
	float := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	for _, t := range s.Tests {
		record := []string{
			s.RunID, t.Title, t.Command, strconv.Itoa(t.Calls),
			float(t.Cumulative), float(t.Average), float(t.DiffPercent),
			float(t.RoundMean), float(t.RoundStdDev),
			strings.Join(MapFunc(strconv.Itoa, t.Rankings), " "),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var benchNameCleaner = regexp.MustCompile(`[\s/]+`)

// benchName turns a test title into a benchmark name without spaces.
func benchName(title string) string {
	name := benchNameCleaner.ReplaceAllString(strings.TrimSpace(title), "_")
	if name == "" {
		return "_"
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}

// benchify writes one line per test and round in the Go benchmark format,
// readable by benchstat.
func benchify(s *Summary, w io.Writer) error {
	bw := benchfmt.NewWriter(w)
	// File keys are written as header lines; SetConfig would mark them internal.
	res := &benchfmt.Result{Config: []benchfmt.Config{
		{Key: "goos", Value: []byte(runtime.GOOS), File: true},
		{Key: "goarch", Value: []byte(runtime.GOARCH), File: true},
		{Key: "pkg", Value: []byte("perfcmp"), File: true},
		{Key: "runid", Value: []byte(s.RunID), File: true},
	}}

	secondsPerUnit := convertToTimeUnit(s.unit, time.Second)
	for _, t := range s.Tests {
		res.Name = benchfmt.Name(benchName(t.Title))
		for _, total := range t.RoundTotals {
			res.Iters = s.Iterations
			res.Values = []benchfmt.Value{
				{Value: total * secondsPerUnit / float64(s.Iterations), Unit: "sec/op"},
			}
			if err := bw.Write(res); err != nil {
				return err
			}
		}
	}
	return nil
}

type exporter struct {
	ext   string
	write func(*Summary, io.Writer) error
}

var exporters = map[string]exporter{
	"json":     {"json", jsonify},
	"csv":      {"csv", csvify},
	"text":     {"txt", textify},
	"markdown": {"md", markdownify},
	"benchfmt": {"bench", benchify},
}

// VerifyExportFormats parses a comma separated list of export formats.
func VerifyExportFormats(formats string) ([]string, error) {
	var formatList []string
	for _, f := range strings.Split(strings.ToLower(formats), ",") {
		f = strings.TrimSpace(f)
		if f == "" || f == "none" {
			continue
		}
		if _, ok := exporters[f]; !ok {
			return nil, fmt.Errorf("invalid export format: %s", f)
		}
		formatList = append(formatList, f)
	}
	return formatList, nil
}

// Export writes the summary to perfcmp-summary.<ext> for every format.
// A failing format is logged and does not stop the others.
func (s *Summary) Export(exportFormats []string) {
	for _, exportFormat := range exportFormats {
		e, ok := exporters[exportFormat]
		if !ok {
			Log("red", "Invalid export format: "+exportFormat+".")
			continue
		}

		var buf bytes.Buffer
		if err := e.write(s, &buf); err != nil {
			Log("red", "Failed to export the results to "+exportFormat+": "+err.Error())
			continue
		}
		filename := summaryBaseName + "." + e.ext
		if err := writeToFile(buf.String(), filename); err != nil {
			Log("red", "Failed to write to the file: "+err.Error())
			continue
		}
		logWritten("benchmark summary", filename)
	}
}

// ExportTo writes the summary in a single format to w.
func (s *Summary) ExportTo(exportFormat string, w io.Writer) error {
	e, ok := exporters[exportFormat]
	if !ok {
		return fmt.Errorf("invalid export format: %s", exportFormat)
	}
	return e.write(s, w)
}
