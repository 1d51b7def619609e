package internal

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/shravanasati/perfcmp/perftest"
)

const defaultBarWidth = 40

// ProgressBar renders the position of a long running loop. It only redraws
// when the filled width or the rounded percentage changes.
type ProgressBar struct {
	bar     *progressbar.ProgressBar
	out     io.Writer
	max     int
	width   int
	value   int
	pos     int
	percent int
	redraws int
}

// NewProgressBar returns a bar counting up to total, drawn width cells wide.
func NewProgressBar(out io.Writer, total, width int, description string) *ProgressBar {
	if total < 1 {
		total = 1
	}
	if width < 1 {
		width = defaultBarWidth
	}
	pbarOptions := []progressbar.Option{
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetWidth(width),
		progressbar.OptionSetDescription("[magenta]" + description + "[reset]"),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(0),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "|",
			BarEnd:        "|",
		}),
	}
	if !NO_COLOR {
		pbarOptions = append(pbarOptions, progressbar.OptionEnableColorCodes(true))
	}
	return &ProgressBar{
		bar:     progressbar.NewOptions(total, pbarOptions...),
		out:     out,
		max:     total,
		width:   width,
		pos:     -1,
		percent: -1,
	}
}

// Update moves the bar to value, or one step forward when no value is given.
func (b *ProgressBar) Update(value ...int) {
	if len(value) > 0 {
		b.value = value[0]
	} else {
		b.value++
	}
	b.value = min(max(b.value, 0), b.max)

	pos := int(math.Round(float64(b.value) * float64(b.width) / float64(b.max)))
	percent := int(math.Round(float64(b.value) * 100 / float64(b.max)))
	if pos == b.pos && percent == b.percent {
		return
	}
	b.pos, b.percent = pos, percent
	b.redraws++
	b.bar.Set(b.value)
}

// Finish completes the bar and ends its line.
func (b *ProgressBar) Finish() {
	b.Update(b.max)
	b.bar.Finish()
	fmt.Fprintln(b.out)
}

// terminalWidth returns the width of stdout, or 0 when it is not a terminal.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return w
}

// ProgressObserver draws one progress bar per round from the engine's lifecycle events.
type ProgressObserver struct {
	Out io.Writer
	bar *ProgressBar
}

// NewProgressObserver returns an observer drawing to stderr.
func NewProgressObserver() *ProgressObserver {
	return &ProgressObserver{Out: os.Stderr}
}

// OnEvent implements perftest.Observer.
func (o *ProgressObserver) OnEvent(e perftest.Event) {
	switch e.Name {
	case perftest.BeforeRun:
		width := defaultBarWidth
		if tw := terminalWidth(); tw > 0 {
			width = max(10, min(defaultBarWidth, tw-60))
		}
		o.bar = NewProgressBar(o.Out, e.Sender.MaxCount(), width,
			fmt.Sprintf("Round %d", e.Sender.RoundsDone()))
	case perftest.AfterWarmup:
		if o.bar != nil {
			o.bar.Update(0)
		}
	case perftest.BeforeEachTests:
		if o.bar != nil {
			o.bar.Update(e.Circle)
		}
	case perftest.AfterRun:
		if o.bar != nil {
			o.bar.Finish()
			o.bar = nil
		}
	}
}
