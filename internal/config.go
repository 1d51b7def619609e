package internal

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/shravanasati/perfcmp/perftest"
)

// SuiteTest is one command candidate of a suite file.
type SuiteTest struct {
	Title   string `yaml:"title"`
	Command string `yaml:"command" validate:"required"`
}

// Suite is the contents of a suite file. Pointer fields are unset when the
// file omits them, so command line flags can fill the gaps.
type Suite struct {
	Iterations     *int        `yaml:"iterations" validate:"omitempty,gte=1"`
	Warmup         *int        `yaml:"warmup" validate:"omitempty,gte=0"`
	Rounds         *int        `yaml:"rounds" validate:"omitempty,gte=1"`
	Decimals       *int        `yaml:"decimals" validate:"omitempty,gte=1,lte=17"`
	FilterOutliers *bool       `yaml:"filterOutliers"`
	Shell          *bool       `yaml:"shell"`
	IgnoreError    *bool       `yaml:"ignoreError"`
	Tests          []SuiteTest `yaml:"tests" validate:"required,min=1,dive"`
}

var validate = validator.New()

// ParseSuite decodes and validates a suite. Unknown keys are rejected.
func ParseSuite(r io.Reader) (*Suite, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Suite
	if err := dec.Decode(&s); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("suite is empty")
		}
		return nil, fmt.Errorf("unable to parse suite: %w", err)
	}
	if err := validate.Struct(&s); err != nil {
		return nil, fmt.Errorf("invalid suite: %w", err)
	}
	return &s, nil
}

// LoadSuite reads the suite file at path.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSuite(bytes.NewReader(data))
}

// RunConfig holds the settings of one benchmark run after merging the suite
// file with the command line.
type RunConfig struct {
	Iterations     int `validate:"gte=1"`
	Warmup         int `validate:"gte=0"`
	Rounds         int `validate:"gte=1"`
	Decimals       int `validate:"gte=1,lte=17"`
	FilterOutliers bool
	Shell          bool
	IgnoreError    bool
	Tests          []SuiteTest `validate:"required,min=1,dive"`
}

// Merge fills every setting the suite leaves unset from cfg. Tests from
// the suite come after those already in cfg.
func (s *Suite) Merge(cfg RunConfig) RunConfig {
	if s.Iterations != nil {
		cfg.Iterations = *s.Iterations
	}
	if s.Warmup != nil {
		cfg.Warmup = *s.Warmup
	}
	if s.Rounds != nil {
		cfg.Rounds = *s.Rounds
	}
	if s.Decimals != nil {
		cfg.Decimals = *s.Decimals
	}
	if s.FilterOutliers != nil {
		cfg.FilterOutliers = *s.FilterOutliers
	}
	if s.Shell != nil {
		cfg.Shell = *s.Shell
	}
	if s.IgnoreError != nil {
		cfg.IgnoreError = *s.IgnoreError
	}
	cfg.Tests = append(cfg.Tests, s.Tests...)
	return cfg
}

// Validate checks the merged settings.
func (c RunConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// Options maps the settings to engine options.
func (c RunConfig) Options() []perftest.Option {
	return []perftest.Option{
		perftest.WithMaxCount(c.Iterations),
		perftest.WithWarmupRounds(c.Warmup),
		perftest.WithDecimals(c.Decimals),
		perftest.WithOutlierFilter(c.FilterOutliers),
	}
}

// Register builds a candidate for every test and adds it to p.
func (c RunConfig) Register(p *perftest.PerfTest) error {
	for _, t := range c.Tests {
		argv, err := BuildCommand(t.Command, c.Shell)
		if err != nil {
			return fmt.Errorf("unable to parse the given command %q: %w", t.Command, err)
		}
		title := t.Title
		if title == "" {
			title = t.Command
		}
		p.Add(NewCommandFunc(argv, c.IgnoreError), title)
	}
	return nil
}
