package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shravanasati/perfcmp/perftest"
)

const validSuite = `
iterations: 200
warmup: 5
rounds: 3
decimals: 5
filterOutliers: true
tests:
  - title: grep
    command: grep -c foo README.md
  - command: rg -c foo README.md
`

func TestParseSuite(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"valid", validSuite, ""},
		{"unknown key", "iteration: 3\ntests:\n  - command: ls\n", "field iteration not found"},
		{"no tests", "iterations: 3\n", "invalid suite"},
		{"missing command", "tests:\n  - title: nothing\n", "invalid suite"},
		{"zero iterations", "iterations: 0\ntests:\n  - command: ls\n", "invalid suite"},
		{"too many decimals", "decimals: 18\ntests:\n  - command: ls\n", "invalid suite"},
		{"empty", "", "suite is empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSuite(strings.NewReader(tt.yaml))
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ParseSuite() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ParseSuite() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestSuiteMerge(t *testing.T) {
	s, err := ParseSuite(strings.NewReader(validSuite))
	if err != nil {
		t.Fatal(err)
	}

	flags := RunConfig{
		Iterations:  10,
		Warmup:      0,
		Rounds:      1,
		Decimals:    7,
		Shell:       true,
		IgnoreError: true,
		Tests:       []SuiteTest{{Command: "ls"}},
	}
	got := s.Merge(flags)

	if got.Iterations != 200 || got.Warmup != 5 || got.Rounds != 3 || got.Decimals != 5 || !got.FilterOutliers {
		t.Errorf("suite values were not applied: %+v", got)
	}
	if !got.Shell || !got.IgnoreError {
		t.Errorf("flag values missing from the suite were overwritten: %+v", got)
	}
	wantCommands := []string{"ls", "grep -c foo README.md", "rg -c foo README.md"}
	if len(got.Tests) != len(wantCommands) {
		t.Fatalf("Merge() tests = %v, want %v", got.Tests, wantCommands)
	}
	for i, c := range wantCommands {
		if got.Tests[i].Command != c {
			t.Errorf("test %d command = %q, want %q", i, got.Tests[i].Command, c)
		}
	}
	if err := got.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadSuite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suite.yaml")
	if err := os.WriteFile(path, []byte(validSuite), 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := LoadSuite(path)
	if err != nil {
		t.Fatalf("LoadSuite() error = %v", err)
	}
	if len(s.Tests) != 2 || s.Tests[0].Title != "grep" {
		t.Errorf("LoadSuite() tests = %+v", s.Tests)
	}

	if _, err := LoadSuite(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadSuite() of a missing file succeeded")
	}
}

func TestRunConfigRegister(t *testing.T) {
	cfg := RunConfig{
		Iterations: 1,
		Rounds:     1,
		Decimals:   7,
		Tests: []SuiteTest{
			{Title: "listing", Command: "ls -la"},
			{Command: "echo hi"},
		},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	p, err := perftest.New(cfg.Options()...)
	if err != nil {
		t.Fatal(err)
	}
	if p.MaxCount() != 1 || p.WarmupRounds() != 0 || p.Decimals() != 7 {
		t.Errorf("options not applied: maxCount=%d warmup=%d decimals=%d", p.MaxCount(), p.WarmupRounds(), p.Decimals())
	}
	if err := cfg.Register(p); err != nil {
		t.Fatal(err)
	}
	if got := len(p.Tests()); got != 2 {
		t.Fatalf("registered %d tests, want 2", got)
	}
	if p.Tests()[0].Title != "listing" || p.Tests()[1].Title != "echo hi" {
		t.Errorf("unexpected titles %q, %q", p.Tests()[0].Title, p.Tests()[1].Title)
	}

	bad := cfg
	bad.Tests = []SuiteTest{{Command: `echo "unterminated`}}
	if err := bad.Register(p); err == nil {
		t.Error("Register() accepted an unparsable command")
	}
}

func TestRunConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     RunConfig
		wantErr bool
	}{
		{"valid", RunConfig{Iterations: 1, Rounds: 1, Decimals: 1, Tests: []SuiteTest{{Command: "ls"}}}, false},
		{"no tests", RunConfig{Iterations: 1, Rounds: 1, Decimals: 1}, true},
		{"no rounds", RunConfig{Iterations: 1, Decimals: 1, Tests: []SuiteTest{{Command: "ls"}}}, true},
		{"negative warmup", RunConfig{Iterations: 1, Warmup: -1, Rounds: 1, Decimals: 1, Tests: []SuiteTest{{Command: "ls"}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
