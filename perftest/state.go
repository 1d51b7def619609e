package perftest

// buildState tracks which summaries are current for the measured data.
//
//	idle ──Run──▶ measured ──BuildResults──▶ resultsBuilt ─┐
//	                  │                                     ├──▶ bothBuilt
//	                  └────BuildTotals───▶ totalsBuilt ─────┘
//
// Run, Add and ResetRounds fall back to measured (or idle without rounds).
type buildState uint8

const (
	stateIdle buildState = iota
	stateMeasured
	stateResultsBuilt
	stateTotalsBuilt
	stateBothBuilt
)

func (s buildState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateMeasured:
		return "measured"
	case stateResultsBuilt:
		return "results built"
	case stateTotalsBuilt:
		return "totals built"
	case stateBothBuilt:
		return "results and totals built"
	}
	return "unknown"
}

func (s buildState) hasResults() bool {
	return s == stateResultsBuilt || s == stateBothBuilt
}

func (s buildState) hasTotals() bool {
	return s == stateTotalsBuilt || s == stateBothBuilt
}

func (s buildState) withResults() buildState {
	if s.hasTotals() {
		return stateBothBuilt
	}
	return stateResultsBuilt
}

func (s buildState) withTotals() buildState {
	if s.hasResults() {
		return stateBothBuilt
	}
	return stateTotalsBuilt
}

// invalidate drops every built summary.
func invalidate(rounds int) buildState {
	if rounds == 0 {
		return stateIdle
	}
	return stateMeasured
}
