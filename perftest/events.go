package perftest

// EventName identifies a lifecycle point of a PerfTest.
type EventName string

// Lifecycle events, in the order they fire within a round.
const (
	BeforeRun          EventName = "before_Run"
	BeforeWarmup       EventName = "before_Warmup"
	AfterWarmup        EventName = "after_Warmup"
	BeforeEachTests    EventName = "before_EachTests"
	BeforeEachTest     EventName = "before_EachTest"
	AfterEachTest      EventName = "after_EachTest"
	AfterEachTests     EventName = "after_EachTests"
	AfterRun           EventName = "after_Run"
	BeforeBuildResults EventName = "before_BuildResults"
	AfterBuildResults  EventName = "after_BuildResults"
	BeforeBuildTotals  EventName = "before_BuildTotals"
	AfterBuildTotals   EventName = "after_BuildTotals"
)

// Event is the payload delivered to an Observer.
//
// Circle is set for the iteration events and for AfterRun (where it is one past
// the last iteration). Test and Index are set for BeforeEachTest and
// AfterEachTest only; Index is the test's slot in the shuffled order.
type Event struct {
	Sender *PerfTest
	Name   EventName
	Circle int
	Test   *TestCase
	Index  int
}

// An Observer is notified at every lifecycle point. Observers must not change
// the measured state; they exist for display purposes such as progress bars.
type Observer interface {
	OnEvent(e Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(e Event)

// OnEvent calls f(e).
func (f ObserverFunc) OnEvent(e Event) { f(e) }

// NopObserver ignores every event.
type NopObserver struct{}

// OnEvent does nothing.
func (NopObserver) OnEvent(Event) {}

func (p *PerfTest) emit(name EventName, circle int, tc *TestCase, index int) {
	p.cfg.Observer.OnEvent(Event{Sender: p, Name: name, Circle: circle, Test: tc, Index: index})
}
