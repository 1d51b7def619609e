package perftest

import (
	"fmt"
	"reflect"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// PerfTest registers candidates and accumulates their measurements over rounds.
type PerfTest struct {
	cfg config

	// tests is kept in registration order; order is the execution order,
	// reshuffled before the warmup and before every iteration.
	tests []*TestCase
	order []*TestCase

	roundsDone  int
	titleMaxLen int
	state       buildState

	resultOpts     ResultOptions
	roundResults   []RoundResult
	totals         []Total
	differentRound []int
}

// New returns a PerfTest configured by opts.
func New(opts ...Option) (*PerfTest, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return &PerfTest{cfg: cfg, titleMaxLen: -1}, nil
}

// MustNew is like New but panics on invalid options.
func MustNew(opts ...Option) *PerfTest {
	p, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// MaxCount returns the number of iterations per round.
func (p *PerfTest) MaxCount() int { return p.cfg.MaxCount }

// WarmupRounds returns the number of warmup calls per candidate and round.
func (p *PerfTest) WarmupRounds() int { return p.cfg.WarmupRounds }

// Decimals returns the configured display precision.
func (p *PerfTest) Decimals() int { return p.cfg.Decimals }

// RoundsDone returns the number of rounds started since the last reset.
func (p *PerfTest) RoundsDone() int { return p.roundsDone }

// Tests returns the registered tests in registration order.
func (p *PerfTest) Tests() []*TestCase { return p.tests }

// Ready reports whether totals can be built.
func (p *PerfTest) Ready() error {
	if len(p.tests) == 0 {
		return ErrNoTests
	}
	if p.roundsDone == 0 {
		return ErrNoRounds
	}
	return nil
}

// Log writes msgs through the configured logger.
func (p *PerfTest) Log(msgs ...any) *PerfTest {
	p.cfg.Logger.Log(msgs...)
	return p
}

var closureName = regexp.MustCompile(`^func\d+$`)

// funcName returns the declared name of fn, or "" for closures.
func funcName(fn Func) string {
	if fn == nil {
		return ""
	}
	full := runtime.FuncForPC(reflect.ValueOf(fn).Pointer()).Name()
	if i := strings.LastIndex(full, "/"); i >= 0 {
		full = full[i+1:]
	}
	parts := strings.Split(full, ".")
	name := strings.TrimSuffix(parts[len(parts)-1], "-fm")
	if name == "" || closureName.MatchString(name) {
		return ""
	}
	return name
}

// Add registers fn. The title defaults to the function's name, or "test #<n>"
// when fn is a closure.
func (p *PerfTest) Add(fn Func, title ...string) *PerfTest {
	name := ""
	if len(title) > 0 {
		name = title[0]
	}
	if name == "" {
		name = funcName(fn)
	}
	if name == "" {
		name = fmt.Sprintf("test #%d", len(p.tests)+1)
	}

	tc := &TestCase{Title: name, fn: fn}
	// keep every test at the same number of round records
	for i := 0; i < p.roundsDone; i++ {
		tc.Rounds = append(tc.Rounds, RoundRecord{})
	}
	p.tests = append(p.tests, tc)
	p.order = append(p.order, tc)

	if n := utf8.RuneCountInString(name); n > p.titleMaxLen {
		p.titleMaxLen = n
	}
	p.state = invalidate(p.roundsDone)
	return p
}

// shuffle permutes the execution order in place (Fisher-Yates).
func (p *PerfTest) shuffle() {
	p.cfg.Rand.Shuffle(len(p.order), func(i, j int) {
		p.order[i], p.order[j] = p.order[j], p.order[i]
	})
}

func (p *PerfTest) call(tc *TestCase) (time.Duration, any) {
	start := p.cfg.Clock.Now()
	res := tc.fn(p.cfg.Parameters)
	return p.cfg.Clock.Since(start), res
}

func (p *PerfTest) warmup() {
	p.emit(BeforeWarmup, 0, nil, 0)
	p.shuffle()

	p.Log(fmt.Sprintf("preparing %d tests for %d iterations...", len(p.tests), p.cfg.MaxCount))

	samples := make([]time.Duration, p.cfg.WarmupRounds)
	for _, tc := range p.order {
		tc.growRankings(len(p.tests))
		for i := range samples {
			samples[i], _ = p.call(tc)
		}
		tc.Warmup = computeWarmupStats(samples)
		tc.Outliers = 0
		tc.OutlierSum = 0
	}
	p.emit(AfterWarmup, 0, nil, 0)
}

// Run measures one round: a warmup followed by MaxCount iterations over all
// tests. A panicking candidate is not recovered and leaves the round incomplete.
func (p *PerfTest) Run() *PerfTest {
	p.roundsDone++
	p.state = stateMeasured
	for _, tc := range p.tests {
		tc.Rounds = append(tc.Rounds, newRoundRecord(len(p.tests)))
		tc.results = nil
		tc.totals = nil
	}

	p.emit(BeforeRun, 0, nil, 0)
	p.warmup()

	filter := p.cfg.FilterWarmupAverage
	circle := 1
	for ; circle <= p.cfg.MaxCount; circle++ {
		p.shuffle()
		p.emit(BeforeEachTests, circle, nil, 0)
		for slot, tc := range p.order {
			p.emit(BeforeEachTest, circle, tc, slot)

			elapsed, res := p.call(tc)
			rec := tc.current()
			if elapsed < rec.Min {
				rec.Min = elapsed
			}
			if elapsed > rec.Max {
				rec.Max = elapsed
			}
			rec.LastResult = res
			rec.PositionCounts[slot]++
			rec.Calls++
			tc.Calls++

			if avg := tc.Warmup.Average; filter && avg > 0 && elapsed > 2*avg {
				tc.Outliers++
				tc.OutlierSum += elapsed
				elapsed = avg
			}
			rec.Total += elapsed
			tc.CumulativeTime += elapsed

			p.emit(AfterEachTest, circle, tc, slot)
		}
		p.emit(AfterEachTests, circle, nil, 0)
	}

	p.rank()
	p.emit(AfterRun, circle, nil, 0)
	return p
}

// rank orders the tests by the latest round and counts each finishing position.
func (p *PerfTest) rank() {
	for i, tc := range p.sortedByRound() {
		tc.Rankings[i]++
	}
}

// sortedByRound returns the tests ordered by the latest round total, ties kept
// in registration order. Tests without calls in that round go last.
func (p *PerfTest) sortedByRound() []*TestCase {
	sorted := append([]*TestCase(nil), p.tests...)
	if p.roundsDone == 0 {
		return sorted
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].current(), sorted[j].current()
		if (a.Calls == 0) != (b.Calls == 0) {
			return b.Calls == 0
		}
		return a.Total < b.Total
	})
	return sorted
}

// ResetRounds forgets every round and ranking. Registrations, options and
// cumulative times are kept.
func (p *PerfTest) ResetRounds() *PerfTest {
	p.roundsDone = 0
	for _, tc := range p.tests {
		tc.Rounds = nil
		tc.Rankings = nil
		tc.results = nil
		tc.totals = nil
	}
	p.roundResults = nil
	p.totals = nil
	p.differentRound = nil
	p.state = stateIdle
	return p
}
