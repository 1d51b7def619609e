package perftest

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
	"time"
)

// column prefixes used when column titles are enabled
const (
	colTotal      = "tot: "
	colAverage    = "avg: "
	colMin        = "min: "
	colMax        = "max: "
	colDiff       = "diff: "
	colFuncResult = "\n    => "
)

// ResultOptions selects the optional columns of BuildResults.
type ResultOptions struct {
	// ShowDistribution appends the per-slot execution counts.
	ShowDistribution bool
	// CallResultMaxLen limits the displayed return value in runes; -1 disables the limit.
	CallResultMaxLen int
	// ShowWarmupInfo appends (warmup average, outlier count, outlier sum).
	ShowWarmupInfo bool
}

// DefaultResultOptions returns the options used by Show when none are given.
func DefaultResultOptions() ResultOptions {
	return ResultOptions{CallResultMaxLen: 50}
}

// RoundResult summarises one test for the latest round.
type RoundResult struct {
	Test    *TestCase
	Total   time.Duration
	Average time.Duration
	Min     time.Duration
	Max     time.Duration
	// DiffPercent is the extra time relative to the fastest test; HasDiff is
	// false for the fastest test and when the fastest total is zero.
	DiffPercent float64
	HasDiff     bool
	// Result is the displayed return value, empty when it repeats the previous one.
	Result string
}

// Total summarises one test over every round.
type Total struct {
	Test       *TestCase
	Cumulative time.Duration
	Average    time.Duration
	// DiffPercent and HasDiff compare with the overall fastest test.
	DiffPercent float64
	HasDiff     bool
}

func (p *PerfTest) col(title string) string {
	if p.cfg.AddColumnTitle {
		return title
	}
	return ""
}

func (p *PerfTest) ms(d time.Duration) string {
	return p.toNumber(Milliseconds(d)) + " ms"
}

// diffPercent returns how much slower value is than fastest, in percent.
func diffPercent(value, fastest time.Duration) (float64, bool) {
	if fastest == 0 {
		return 0, false
	}
	return (float64(value)/float64(fastest) - 1) * 100, true
}

// BuildResults summarises the latest round. Tests are ordered fastest first;
// tests without a record for that round are skipped. Calling it again without
// a new round yields the same output.
func (p *PerfTest) BuildResults(opts ResultOptions) *PerfTest {
	p.emit(BeforeBuildResults, 0, nil, 0)

	p.roundResults = nil
	different := false
	lastShown := ""
	var fastest time.Duration

	for _, tc := range p.sortedByRound() {
		tc.results = nil
		rec, ok := tc.LastRound()
		if !ok || rec.Calls == 0 {
			continue
		}

		first := len(p.roundResults) == 0
		rr := RoundResult{
			Test:    tc,
			Total:   rec.Total,
			Average: rec.Average(),
			Min:     rec.Min,
			Max:     rec.Max,
		}
		cols := []string{
			p.col(colTotal) + p.ms(rr.Total),
			p.col(colAverage) + p.ms(rr.Average),
			p.col(colMin) + p.ms(rr.Min),
			p.col(colMax) + p.ms(rr.Max),
		}

		if first {
			fastest = rec.Total
		} else {
			rr.DiffPercent, rr.HasDiff = diffPercent(rec.Total, fastest)
			diff := ""
			if rr.HasDiff {
				diff = ToNumber(rr.DiffPercent, 5) + "%"
			}
			cols = append(cols, p.col(colDiff)+diff)
		}

		if opts.ShowWarmupInfo {
			cols = append(cols, fmt.Sprintf("(%s, %d, %s)",
				p.toNumber(Milliseconds(tc.Warmup.Average)), tc.Outliers, p.toNumber(Milliseconds(tc.OutlierSum))))
		}
		if opts.ShowDistribution {
			cols = append(cols, fmt.Sprint(rec.PositionCounts))
		}

		if p.cfg.AddFuncResult && rec.LastResult != nil {
			next := fmt.Sprint(rec.LastResult)
			if next != lastShown {
				if !first {
					different = true
				}
				rr.Result = truncate(next, opts.CallResultMaxLen)
				cols = append(cols, p.col(colFuncResult)+"'"+rr.Result+"'")
				lastShown = next
			}
		}

		tc.results = cols
		p.roundResults = append(p.roundResults, rr)
	}

	if different {
		if n := len(p.differentRound); n == 0 || p.differentRound[n-1] != p.roundsDone {
			p.differentRound = append(p.differentRound, p.roundsDone)
		}
	}

	p.resultOpts = opts
	p.state = p.state.withResults()
	p.emit(AfterBuildResults, 0, nil, 0)
	return p
}

// RoundResults returns the summaries of the last BuildResults, fastest first.
func (p *PerfTest) RoundResults() []RoundResult { return p.roundResults }

// DifferentResultRounds lists the rounds in which candidates returned
// differing values.
func (p *PerfTest) DifferentResultRounds() []int { return p.differentRound }

// Show logs the results of the latest round, building them first if they are
// missing or were built with other options.
func (p *PerfTest) Show(opts ResultOptions) *PerfTest {
	if !p.state.hasResults() || p.resultOpts != opts {
		p.BuildResults(opts)
	}
	for _, rr := range p.roundResults {
		p.Log(p.FormatTitle(rr.Test.Title), strings.Join(rr.Test.results, ", "))
	}
	return p
}

// BuildTotals summarises every round, fastest cumulative time first. It needs
// at least one test and one round; otherwise the totals stay empty. Tests that
// were never called, such as ones added after the last round, go last and get
// no diff.
func (p *PerfTest) BuildTotals() *PerfTest {
	p.emit(BeforeBuildTotals, 0, nil, 0)

	p.totals = nil
	for _, tc := range p.tests {
		tc.totals = nil
	}

	if p.Ready() == nil {
		sorted := append([]*TestCase(nil), p.tests...)
		sort.SliceStable(sorted, func(i, j int) bool {
			a, b := sorted[i], sorted[j]
			if (a.Calls == 0) != (b.Calls == 0) {
				return b.Calls == 0
			}
			return a.CumulativeTime < b.CumulativeTime
		})
		fastest := sorted[0].CumulativeTime

		for i, tc := range sorted {
			t := Total{Test: tc, Cumulative: tc.CumulativeTime}
			if tc.Calls > 0 {
				t.Average = tc.CumulativeTime / time.Duration(tc.Calls)
			}
			tc.totals = []string{p.col(colAverage) + p.ms(t.Average)}
			if i > 0 && tc.Calls > 0 {
				t.DiffPercent, t.HasDiff = diffPercent(tc.CumulativeTime, fastest)
				if t.HasDiff {
					tc.totals = append(tc.totals, "+"+ToNumber(t.DiffPercent, 5)+" %")
				}
			}
			p.totals = append(p.totals, t)
		}
	}

	p.state = p.state.withTotals()
	p.emit(AfterBuildTotals, 0, nil, 0)
	return p
}

// Totals returns the summaries of the last BuildTotals, fastest first.
func (p *PerfTest) Totals() []Total { return p.totals }

// TotalsHeader renders a header such as "Totals (2 Tests, 3 Rounds):".
func (p *PerfTest) TotalsHeader(header string, addTests, addRounds bool) string {
	var attribs []string
	if addTests {
		attribs = append(attribs, fmt.Sprintf("%d Tests", len(p.tests)))
	}
	if addRounds {
		attribs = append(attribs, fmt.Sprintf("%d Rounds", p.roundsDone))
	}
	if len(attribs) > 0 {
		header += " (" + strings.Join(attribs, ", ") + ")"
	}
	return header + ":"
}

func (p *PerfTest) ensureTotals() {
	if !p.state.hasTotals() {
		p.BuildTotals()
	}
}

// ShowTotals logs the cumulative totals under header; an empty header is omitted.
func (p *PerfTest) ShowTotals(header string) *PerfTest {
	p.ensureTotals()
	if header != "" {
		p.Log(header)
	}
	for _, t := range p.totals {
		p.Log(p.FormatTitle(t.Test.Title), p.ms(t.Cumulative)+",", strings.Join(t.Test.totals, ", "))
	}
	return p
}

// ShowPlacements logs the totals as a table together with how often each test
// finished at each position.
//
//	Placements (3 Tests, 4 Rounds):  Total Time   Avg. Time    Diff.       1.  2.  3.
//	fastest:                         12.2232 ms   0.00030 ms               3   1   0
//	slower:                          12.4254 ms   0.00031 ms   +1.654 %    1   2   1
func (p *PerfTest) ShowPlacements(header string) *PerfTest {
	p.ensureTotals()
	if len(p.totals) == 0 {
		return p
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 3, ' ', 0)
	head := []string{p.TotalsHeader(header, true, true), "Total Time", "Avg. Time", "Diff."}
	for i := range p.tests {
		head = append(head, fmt.Sprintf("%d.", i+1))
	}
	fmt.Fprintln(w, strings.Join(head, "\t"))

	for _, t := range p.totals {
		diff := ""
		if t.HasDiff {
			diff = "+" + ToNumber(t.DiffPercent, 3) + " %"
		}
		row := []string{t.Test.Title + ":", p.ms(t.Cumulative), p.ms(t.Average), diff}
		for i := range p.tests {
			n := 0
			if i < len(t.Test.Rankings) {
				n = t.Test.Rankings[i]
			}
			row = append(row, fmt.Sprint(n))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	p.Log(lines[0])
	p.Log(strings.Repeat("-", len(strings.TrimRight(lines[0], " "))))
	for _, line := range lines[1:] {
		p.Log(strings.TrimRight(line, " "))
	}
	return p
}
