package perftest

import (
	"math"
	"time"
)

// Func is a candidate under test. It receives the configured parameters and
// its return value is kept for comparison with the other candidates.
type Func func(params any) any

// WarmupStats summarises the warmup calls of one round, without the single
// slowest call.
type WarmupStats struct {
	Average time.Duration
	Sum     time.Duration
	Min     time.Duration
	Max     time.Duration // slowest call, excluded from Average and Sum
}

// RoundRecord is the measurement of one test during one round.
type RoundRecord struct {
	Total time.Duration // sum of the calls, outliers clipped when filtering
	Min   time.Duration // fastest call, never clipped
	Max   time.Duration // slowest call, never clipped
	Calls int

	// LastResult is the return value of the last call in the round.
	LastResult any
	// PositionCounts[i] counts the iterations in which this test ran in slot i
	// of the shuffled order.
	PositionCounts []int
}

// Average is the mean accumulated time per call, or zero for an empty record.
func (r RoundRecord) Average() time.Duration {
	if r.Calls == 0 {
		return 0
	}
	return r.Total / time.Duration(r.Calls)
}

func newRoundRecord(slots int) RoundRecord {
	return RoundRecord{Min: math.MaxInt64, PositionCounts: make([]int, slots)}
}

// TestCase is one registered candidate together with everything measured for it.
type TestCase struct {
	Title string
	fn    Func

	Warmup WarmupStats
	Rounds []RoundRecord
	// Rankings[i] counts the rounds in which this test finished at position i.
	Rankings []int

	CumulativeTime time.Duration
	Calls          int

	// Outliers and OutlierSum count the calls of the current round that were
	// slower than twice the warmup average, with their real durations.
	Outliers   int
	OutlierSum time.Duration

	results []string
	totals  []string
}

// Results returns the display columns of the last BuildResults.
func (tc *TestCase) Results() []string { return tc.results }

// LastRound returns the record of the latest round and false if no round ran.
func (tc *TestCase) LastRound() (RoundRecord, bool) {
	if len(tc.Rounds) == 0 {
		return RoundRecord{}, false
	}
	return tc.Rounds[len(tc.Rounds)-1], true
}

func (tc *TestCase) current() *RoundRecord {
	return &tc.Rounds[len(tc.Rounds)-1]
}

// growRankings extends the histogram to n positions, keeping existing counts.
func (tc *TestCase) growRankings(n int) {
	if len(tc.Rankings) < n {
		tc.Rankings = append(tc.Rankings, make([]int, n-len(tc.Rankings))...)
	}
}

// computeWarmupStats drops the largest sample and summarises the rest.
func computeWarmupStats(samples []time.Duration) WarmupStats {
	if len(samples) == 0 {
		return WarmupStats{}
	}
	var stats WarmupStats
	stats.Min = time.Duration(math.MaxInt64)
	var sum time.Duration
	for _, s := range samples {
		sum += s
		if s > stats.Max {
			stats.Max = s
		}
		if s < stats.Min {
			stats.Min = s
		}
	}
	stats.Sum = sum - stats.Max
	if len(samples) > 1 {
		stats.Average = stats.Sum / time.Duration(len(samples)-1)
	}
	return stats
}
