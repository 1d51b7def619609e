package perftest

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// ToNumber renders number with exactly decimals fractional digits. Extra
// digits are cut off rather than rounded, missing ones are filled with zeros.
// A decimals value below one yields the integer part only.
func ToNumber(number float64, decimals int) string {
	if math.IsNaN(number) || math.IsInf(number, 0) {
		return strconv.FormatFloat(number, 'f', -1, 64)
	}
	s := strconv.FormatFloat(number, 'f', -1, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	if decimals < 1 {
		return intPart
	}
	if len(frac) < decimals {
		frac += strings.Repeat("0", decimals-len(frac))
	}
	return intPart + "." + frac[:decimals]
}

// toNumber formats with the configured precision.
func (p *PerfTest) toNumber(number float64) string {
	return ToNumber(number, p.cfg.Decimals)
}

// Milliseconds converts d to fractional milliseconds.
func Milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// FormatTitle appends a colon to title and, when padding is enabled, pads it
// with spaces so all titles line up.
func (p *PerfTest) FormatTitle(title string) string {
	title += ":"
	if p.cfg.PadTitle {
		if n := p.titleMaxLen - utf8.RuneCountInString(title) + 1; n > 0 {
			title += strings.Repeat(" ", n)
		}
	}
	return title
}

// truncate cuts s to limit runes and marks the cut with "...". A negative limit
// disables truncation.
func truncate(s string, limit int) string {
	if limit < 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}
