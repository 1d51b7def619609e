package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/thatisuday/commando"

	"github.com/shravanasati/perfcmp/internal"
	"github.com/shravanasati/perfcmp/internal/demo"
	"github.com/shravanasati/perfcmp/perftest"
)

const (
	// NAME is the executable name.
	NAME = "perfcmp"
	// VERSION is the executable version.
	VERSION = "v0.1.0"
)

// reportConfig holds the flags that shape the output of a run.
type reportConfig struct {
	rounds        int
	resultOptions perftest.ResultOptions
	exportFormats []string
	plotFormats   []string
	timeUnit      time.Duration
	progress      bool
	factor        float64
}

func logFlagError(name string, err error) {
	internal.Log("red", "Application error: cannot parse the value of --"+name+".")
	internal.Log("white", err.Error())
}

// readReportFlags parses the flags shared by the root and the demo command.
func readReportFlags(flags map[string]commando.FlagValue) (reportConfig, bool) {
	var rc reportConfig
	var err error

	noColor, err := flags["no-color"].GetBool()
	if err != nil {
		logFlagError("no-color", err)
		return rc, false
	}
	if noColor {
		internal.SetNoColor(true)
	}

	if rc.rounds, err = flags["rounds"].GetInt(); err != nil {
		logFlagError("rounds", err)
		return rc, false
	}
	if rc.rounds < 1 {
		internal.Log("red", "The number of rounds must be at least 1!")
		return rc, false
	}

	factor, err := flags["factor"].GetString()
	if err != nil {
		logFlagError("factor", err)
		return rc, false
	}
	if strings.TrimSpace(factor) != "" {
		if rc.factor, err = strconv.ParseFloat(strings.TrimSpace(factor), 64); err != nil {
			logFlagError("factor", err)
			return rc, false
		}
	}

	rc.resultOptions = perftest.DefaultResultOptions()
	if rc.resultOptions.ShowDistribution, err = flags["distribution"].GetBool(); err != nil {
		logFlagError("distribution", err)
		return rc, false
	}
	if rc.resultOptions.ShowWarmupInfo, err = flags["warmup-info"].GetBool(); err != nil {
		logFlagError("warmup-info", err)
		return rc, false
	}
	if rc.resultOptions.CallResultMaxLen, err = flags["result-len"].GetInt(); err != nil {
		logFlagError("result-len", err)
		return rc, false
	}

	exportFormats, err := flags["export"].GetString()
	if err != nil {
		logFlagError("export", err)
		return rc, false
	}
	if rc.exportFormats, err = internal.VerifyExportFormats(exportFormats); err != nil {
		internal.Log("red", err.Error())
		return rc, false
	}

	plotFormats, err := flags["plot"].GetString()
	if err != nil {
		logFlagError("plot", err)
		return rc, false
	}
	if rc.plotFormats, err = internal.VerifyPlotFormats(plotFormats); err != nil {
		internal.Log("red", err.Error())
		return rc, false
	}

	unit, err := flags["unit"].GetString()
	if err != nil {
		logFlagError("unit", err)
		return rc, false
	}
	if rc.timeUnit, err = internal.ParseTimeUnit(unit); err != nil {
		internal.Log("red", "Invalid time unit: "+unit+".")
		return rc, false
	}

	noProgress, err := flags["no-progress"].GetBool()
	if err != nil {
		logFlagError("no-progress", err)
		return rc, false
	}
	rc.progress = !noProgress
	return rc, true
}

// readRunFlags parses the engine settings shared by both commands.
func readRunFlags(flags map[string]commando.FlagValue) (internal.RunConfig, bool) {
	var cfg internal.RunConfig
	var err error
	for name, dst := range map[string]*int{
		"iterations": &cfg.Iterations,
		"warmup":     &cfg.Warmup,
		"decimals":   &cfg.Decimals,
	} {
		if *dst, err = flags[name].GetInt(); err != nil {
			logFlagError(name, err)
			return cfg, false
		}
	}
	if cfg.FilterOutliers, err = flags["filter-outliers"].GetBool(); err != nil {
		logFlagError("filter-outliers", err)
		return cfg, false
	}
	return cfg, true
}

// newPerfTest builds an engine logging to the console.
func newPerfTest(cfg internal.RunConfig, rc reportConfig, extra ...perftest.Option) (*perftest.PerfTest, error) {
	opts := append(cfg.Options(), perftest.WithLogger(internal.NewConsoleLogger()))
	if rc.factor != 0 {
		opts = append(opts, perftest.WithMaxCountFactor(rc.factor))
	}
	if rc.progress {
		opts = append(opts, perftest.WithObserver(internal.NewProgressObserver()))
	}
	return perftest.New(append(opts, extra...)...)
}

// benchmark runs every round and reports the outcome.
func benchmark(p *perftest.PerfTest, rc reportConfig, commands map[string]string) {
	defer func() {
		if r := recover(); r != nil {
			cmdErr, ok := r.(*internal.CommandError)
			if !ok {
				panic(r)
			}
			fmt.Println()
			internal.Log("red", "Benchmarking stopped: a candidate failed.")
			internal.Log("white", cmdErr.Error())
			if cmdErr.Stderr == "" {
				internal.Log("yellow", "Use the --ignore-error flag to ignore non-zero exit codes.")
			}
		}
	}()

	started := time.Now()
	for range rc.rounds {
		p.Run().Show(rc.resultOptions)
		fmt.Println()
	}
	ended := time.Now()

	p.ShowTotals(p.TotalsHeader("Totals", true, true))
	fmt.Println()
	p.ShowPlacements("Placements")

	if rounds := p.DifferentResultRounds(); len(rounds) > 0 {
		internal.Log("yellow", fmt.Sprintf("\nWarning: the candidates returned different results in round(s) %v.", rounds))
	}

	summary := internal.NewSummary(p, commands, rc.timeUnit, started, ended)
	if err := summary.Consolify(os.Stdout); err != nil {
		internal.Log("red", "Failed to print the summary: "+err.Error())
	}
	summary.Export(rc.exportFormats)
	internal.Plot(rc.plotFormats, summary)

	if summary.HasOutliers() {
		internal.Log("yellow", "\nWarning: Statistical outliers were detected. Consider re-running this benchmark on a quiet system, devoid of any interferences from other programs.")
		if p.WarmupRounds() == 0 {
			internal.Log("yellow", "It might help to use the --warmup flag.")
		} else {
			internal.Log("yellow", "Since you're already using the --warmup flag, you can consider increasing the warmup count.")
		}
	}
}

func rootAction(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	cfg, ok := readRunFlags(flags)
	if !ok {
		return
	}
	rc, ok := readReportFlags(flags)
	if !ok {
		return
	}

	cfg.Rounds = rc.rounds

	var err error
	if cfg.Shell, err = flags["shell"].GetBool(); err != nil {
		logFlagError("shell", err)
		return
	}
	if cfg.IgnoreError, err = flags["ignore-error"].GetBool(); err != nil {
		logFlagError("ignore-error", err)
		return
	}

	for _, command := range internal.SplitCommands(args["command"].Value) {
		cfg.Tests = append(cfg.Tests, internal.SuiteTest{Command: command})
	}

	configFile, err := flags["config"].GetString()
	if err != nil {
		logFlagError("config", err)
		return
	}
	if configFile != "" {
		suite, err := internal.LoadSuite(configFile)
		if err != nil {
			internal.Log("red", "Unable to load the suite file `"+configFile+"`.")
			internal.Log("white", err.Error())
			return
		}
		cfg = suite.Merge(cfg)
		rc.rounds = cfg.Rounds
	}

	if len(cfg.Tests) == 0 {
		fmt.Println("Error: not enough arguments.")
		return
	}
	if err := cfg.Validate(); err != nil {
		internal.Log("red", err.Error())
		return
	}

	p, err := newPerfTest(cfg, rc)
	if err != nil {
		internal.Log("red", err.Error())
		return
	}
	if err := cfg.Register(p); err != nil {
		internal.Log("red", err.Error())
		return
	}

	commands := make(map[string]string, len(cfg.Tests))
	for _, t := range cfg.Tests {
		title := t.Title
		if title == "" {
			title = t.Command
		}
		commands[title] = t.Command
	}
	benchmark(p, rc, commands)
}

func demoAction(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	cfg, ok := readRunFlags(flags)
	if !ok {
		return
	}
	rc, ok := readReportFlags(flags)
	if !ok {
		return
	}

	input := args["input"].Value
	if input == "" {
		input = demo.DefaultInput
	}
	p, err := newPerfTest(cfg, rc, perftest.WithParameters(input))
	if err != nil {
		internal.Log("red", err.Error())
		return
	}
	internal.Log("white", "Escaping: "+input+"\n")
	benchmark(demo.Register(p), rc, nil)
}

// addCommonFlags registers the flags shared by the root and the demo command.
func addCommonFlags(cmd *commando.Command, iterations, warmup int) *commando.Command {
	return cmd.
		AddFlag("iterations,i", "The number of iterations per round.", commando.Int, iterations).
		AddFlag("factor", "Scale the default of 100000 iterations by this factor; overrides --iterations.", commando.String, "").
		AddFlag("warmup,w", "The number of warmup calls per candidate and round.", commando.Int, warmup).
		AddFlag("rounds,r", "The number of rounds to run.", commando.Int, 1).
		AddFlag("decimals,d", "The number of decimals of displayed times.", commando.Int, 7).
		AddFlag("filter-outliers,f", "Replace calls slower than twice the warmup average by that average.", commando.Bool, false).
		AddFlag("distribution", "Show how often each candidate ran at each position.", commando.Bool, false).
		AddFlag("warmup-info", "Show the warmup average and the filtered outliers.", commando.Bool, false).
		AddFlag("result-len", "Truncate displayed results to this many characters, -1 to disable.", commando.Int, 50).
		AddFlag("export,e", "Comma separated list of benchmark export formats, including json, csv, text, markdown and benchfmt.", commando.String, "none").
		AddFlag("plot,p", "Comma separated list of plots to draw: bar, box, placements or all.", commando.String, "none").
		AddFlag("unit,u", "The time unit of exports and plots: ns, us, ms, s, m or h.", commando.String, "ms").
		AddFlag("no-progress", "Disable the progress bar.", commando.Bool, false).
		AddFlag("no-color", "Disable colored output.", commando.Bool, false)
}

func main() {
	internal.Log("white", fmt.Sprintf("%v %v\n", NAME, VERSION))

	updateCh := make(chan string, 1)
	go internal.CheckForUpdates(VERSION, &updateCh)

	// * basic configuration
	commando.
		SetExecutableName(NAME).
		SetVersion(VERSION).
		SetDescription("perfcmp compares the speed of commands and functions over several rounds. \nFor more info visit https://github.com/shravanasati/perfcmp.")

	// * root command
	addCommonFlags(commando.
		Register(nil).
		SetShortDescription("Compare commands over rounds of iterations.").
		SetDescription("Compare comma separated commands, or the tests of a suite file, over rounds of iterations.").
		AddArgument("command...", "The commands to compare.", "").
		AddFlag("shell,s", "Whether to use shell to execute the given commands.", commando.Bool, false).
		AddFlag("ignore-error,I", "Ignore if a process returns a non-zero return code", commando.Bool, false).
		AddFlag("config,c", "Path of a YAML suite file.", commando.String, ""), 10, 0).
		SetAction(rootAction)

	// * demo command
	addCommonFlags(commando.
		Register("demo").
		SetShortDescription("Compare the built-in HTML escaping functions.").
		SetDescription("Compare several ways of escaping HTML in Go on the given input.").
		AddArgument("input", "The text to escape.", ""), perftest.DefaultMaxCount, 10).
		SetAction(demoAction)

	// * up command
	commando.
		Register("up").
		SetShortDescription("Check for a newer version of perfcmp.").
		SetDescription("Check GitHub for a newer release of perfcmp.").
		SetAction(func(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
			internal.Up(VERSION)
		})

	commando.Parse(nil)

	if msg := <-updateCh; msg != "" {
		internal.Log("yellow", "\n"+msg)
	}
}
