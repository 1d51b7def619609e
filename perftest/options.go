package perftest

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultMaxCount is the number of iterations per round when no count is configured.
const DefaultMaxCount = 100000

var (
	// ErrNoTests is returned by [PerfTest.Ready] when nothing has been registered.
	ErrNoTests = errors.New("perftest: no tests registered")
	// ErrNoRounds is returned by [PerfTest.Ready] before the first completed round.
	ErrNoRounds = errors.New("perftest: no rounds completed")
)

// config is built once by New and never changes afterwards.
type config struct {
	MaxCount            int `validate:"gte=1"`
	Decimals            int `validate:"gte=1,lte=17"`
	WarmupRounds        int `validate:"gte=0"`
	Parameters          any `validate:"-"`
	PadTitle            bool
	FilterWarmupAverage bool
	AddColumnTitle      bool
	AddFuncResult       bool

	// collaborators; the With* options never store nil
	Observer Observer   `validate:"-"`
	Logger   Logger     `validate:"-"`
	Clock    Clock      `validate:"-"`
	Rand     *rand.Rand `validate:"-"`
}

func defaultConfig() config {
	return config{
		MaxCount:       DefaultMaxCount,
		Decimals:       7,
		WarmupRounds:   10,
		PadTitle:       true,
		AddColumnTitle: true,
		AddFuncResult:  true,
		Observer:       NopObserver{},
		Logger:         stdoutLogger{},
		Clock:          monotonicClock{},
		Rand:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// An Option configures a PerfTest at construction.
type Option func(*config)

// WithMaxCount sets the number of iterations per round.
func WithMaxCount(n int) Option {
	return func(c *config) { c.MaxCount = n }
}

// WithMaxCountFactor sets the iterations per round to a multiple of DefaultMaxCount.
func WithMaxCountFactor(f float64) Option {
	return func(c *config) { c.MaxCount = int(math.Round(DefaultMaxCount * f)) }
}

// WithDecimals sets the number of decimal digits used for displayed times.
func WithDecimals(n int) Option {
	return func(c *config) { c.Decimals = n }
}

// WithParameters sets the value passed to every candidate call.
func WithParameters(params any) Option {
	return func(c *config) { c.Parameters = params }
}

// WithPadTitle toggles padding of titles to a common width.
func WithPadTitle(pad bool) Option {
	return func(c *config) { c.PadTitle = pad }
}

// WithWarmupRounds sets how many calls per candidate precede each round.
func WithWarmupRounds(n int) Option {
	return func(c *config) { c.WarmupRounds = n }
}

// WithOutlierFilter enables clipping of calls slower than twice the warmup average.
func WithOutlierFilter(enabled bool) Option {
	return func(c *config) { c.FilterWarmupAverage = enabled }
}

// WithColumnTitles toggles the "tot:", "avg:" ... prefixes in built results.
func WithColumnTitles(enabled bool) Option {
	return func(c *config) { c.AddColumnTitle = enabled }
}

// WithFuncResults toggles displaying the last return value of each candidate.
func WithFuncResults(enabled bool) Option {
	return func(c *config) { c.AddFuncResult = enabled }
}

// WithObserver attaches a lifecycle observer. A nil observer is ignored.
func WithObserver(o Observer) Option {
	return func(c *config) {
		if o != nil {
			c.Observer = o
		}
	}
}

// WithLogger replaces the default stdout logger. A nil logger is ignored.
func WithLogger(l Logger) Option {
	return func(c *config) {
		if l != nil {
			c.Logger = l
		}
	}
}

// WithClock replaces the monotonic wall clock used for timing.
func WithClock(clock Clock) Option {
	return func(c *config) {
		if clock != nil {
			c.Clock = clock
		}
	}
}

// WithRand sets the random source used to shuffle the execution order.
func WithRand(r *rand.Rand) Option {
	return func(c *config) {
		if r != nil {
			c.Rand = r
		}
	}
}

var validate = validator.New()

func newConfig(opts []Option) (config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := validate.Struct(cfg); err != nil {
		return config{}, fmt.Errorf("perftest: invalid options: %w", err)
	}
	return cfg, nil
}
