// Package highlight marks clause references and residency keywords in GR text.
package highlight

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/ppiankov/nirnay/internal/util"
)

// DefaultMaxLines is how many source lines are rendered before truncation.
const DefaultMaxLines = 140

const (
	emptyMarker     = "<em>—</em>"
	truncatedMarker = "…"
	bullet          = "• "
)

// Keywords flag a line even when it cites no clause.
var Keywords = []string{"स्थानिक", "रहिवासी"}

var clausePattern = regexp.MustCompile(`(?i)(कलम\s*[0-9०-९]+[A-Za-z]?)|(धोरण\s*[0-9०-९]+)|(अट\s*[0-9०-९]+)|(Clause\s*[0-9०-९]+)|(Section\s*[0-9०-९]+[A-Za-z]?)`)

// Options controls rendering
type Options struct {
	MaxLines int
}

func (o Options) maxLines() int {
	if o.MaxLines <= 0 {
		return DefaultMaxLines
	}
	return o.MaxLines
}

// Line is one rendered source line
type Line struct {
	Text    string   `json:"text" yaml:"text"`
	Flagged bool     `json:"flagged" yaml:"flagged"`
	Clauses []string `json:"clauses,omitempty" yaml:"clauses,omitempty"`
}

// Result is the structured form of a highlighted document
type Result struct {
	Lines     []Line `json:"lines" yaml:"lines"`
	Truncated bool   `json:"truncated" yaml:"truncated"`
	Empty     bool   `json:"empty" yaml:"empty"`
}

// Analyze splits text into lines and flags the relevant ones.
func Analyze(text string, opts Options) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Lines: []Line{}, Empty: true}
	}

	src := util.SplitLines(text)
	limit := opts.maxLines()
	res := Result{Truncated: len(src) > limit}
	if res.Truncated {
		src = src[:limit]
	}

	res.Lines = make([]Line, 0, len(src))
	for _, ln := range src {
		clauses := clausePattern.FindAllString(ln, -1)
		res.Lines = append(res.Lines, Line{
			Text:    ln,
			Flagged: len(clauses) > 0 || hasKeyword(ln),
			Clauses: clauses,
		})
	}
	return res
}

// Lines is Analyze with default options.
func Lines(text string) []Line {
	return Analyze(text, Options{}).Lines
}

// Clauses renders text as an HTML fragment with default options.
func Clauses(text string) string {
	return HTML(text, Options{})
}

// HTML renders escaped lines joined by <br>. Flagged lines get a bullet and
// every clause reference is wrapped in <span class='hl'>.
func HTML(text string, opts Options) string {
	res := Analyze(text, opts)
	if res.Empty {
		return emptyMarker
	}

	out := make([]string, 0, len(res.Lines)+1)
	for _, ln := range res.Lines {
		escaped := html.EscapeString(ln.Text)
		if !ln.Flagged {
			out = append(out, escaped)
			continue
		}
		out = append(out, bullet+clausePattern.ReplaceAllString(escaped, "<span class='hl'>$0</span>"))
	}
	if res.Truncated {
		out = append(out, truncatedMarker)
	}
	return strings.Join(out, "<br>")
}

// Markdown renders the flagged lines only, with clause references in bold.
func Markdown(text string, opts Options) string {
	res := Analyze(text, opts)
	if res.Empty {
		return "—"
	}

	var b strings.Builder
	for _, ln := range res.Lines {
		if !ln.Flagged {
			continue
		}
		b.WriteString("- ")
		b.WriteString(clausePattern.ReplaceAllString(strings.TrimSpace(ln.Text), "**$0**"))
		b.WriteString("\n")
	}
	if res.Truncated {
		b.WriteString("- " + truncatedMarker + "\n")
	}
	if b.Len() == 0 {
		return "—"
	}
	return strings.TrimRight(b.String(), "\n")
}

func hasKeyword(line string) bool {
	for _, k := range Keywords {
		if strings.Contains(line, k) {
			return true
		}
	}
	return false
}
