// Package demo holds a built-in suite of HTML escaping candidates that
// return identical output for every input.
package demo

import (
	"html"
	"html/template"
	"strings"

	"github.com/shravanasati/perfcmp/perftest"
)

// DefaultInput is escaped by every candidate when no input is given.
const DefaultInput = `<a href="https://example.com/?q=go&lang='en'">Go & "friends"</a>`

var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&#34;",
	"'", "&#39;",
)

func input(params any) string {
	s, _ := params.(string)
	return s
}

// replacerEscape uses a precompiled strings.Replacer.
func replacerEscape(params any) any {
	return htmlReplacer.Replace(input(params))
}

// builderEscape scans the input once and grows a builder.
func builderEscape(params any) any {
	s := input(params)
	var b strings.Builder
	b.Grow(len(s) + len(s)/4)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&#34;")
		case '\'':
			b.WriteString("&#39;")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// indexEscape copies the runs between special characters.
func indexEscape(params any) any {
	s := input(params)
	i := strings.IndexAny(s, `&<>"'`)
	if i < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + len(s)/4)
	for i >= 0 {
		b.WriteString(s[:i])
		switch s[i] {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&#34;")
		case '\'':
			b.WriteString("&#39;")
		}
		s = s[i+1:]
		i = strings.IndexAny(s, `&<>"'`)
	}
	b.WriteString(s)
	return b.String()
}

// stdlibEscape defers to html.EscapeString.
func stdlibEscape(params any) any {
	return html.EscapeString(input(params))
}

// templateEscape defers to html/template, which spells quotes the same way.
func templateEscape(params any) any {
	return template.HTMLEscapeString(input(params))
}

// Candidates returns the suite in a fixed order.
func Candidates() []perftest.Func {
	return []perftest.Func{replacerEscape, builderEscape, indexEscape, stdlibEscape, templateEscape}
}

// Register adds every candidate to p under its function name.
func Register(p *perftest.PerfTest) *perftest.PerfTest {
	for _, fn := range Candidates() {
		p.Add(fn)
	}
	return p
}
