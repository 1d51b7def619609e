// Package perftest compares the speed of several implementations of the same
// operation.
//
// Candidates are registered with [PerfTest.Add] and measured by [PerfTest.Run].
// Every call to Run is one round: a short warmup per candidate followed by
// MaxCount iterations, each of which calls every candidate once in a freshly
// shuffled order. Rounds accumulate into cumulative totals and a ranking
// histogram, which are summarised by [PerfTest.BuildResults] and
// [PerfTest.BuildTotals].
//
//	pt := perftest.MustNew(perftest.WithMaxCount(1000), perftest.WithWarmupRounds(5))
//	pt.Add(fast).Add(slow, "slow path")
//	pt.Run().Run().Show(perftest.DefaultResultOptions())
//	pt.ShowTotals(pt.TotalsHeader("Totals", true, true))
//
// A PerfTest is not safe for concurrent use. Candidates run on the calling
// goroutine and a panicking candidate aborts the round.
package perftest
