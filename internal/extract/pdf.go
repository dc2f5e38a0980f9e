package extract

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/nirnay/internal/model"
)

var devanagari = regexp.MustCompile(`[\x{0900}-\x{097F}]`)

// HasDevanagari reports whether s contains any Devanagari code point.
func HasDevanagari(s string) bool {
	return devanagari.MatchString(s)
}

// score is how a tier candidate is ranked against the current best text
type score struct {
	devanagari bool
	runes      int
}

func scoreOf(s string) score {
	return score{devanagari: HasDevanagari(s), runes: utf8.RuneCountInString(s)}
}

// better holds when c is longer than b, or c has Devanagari and b does not.
func better(c, b score) bool {
	return c.runes > b.runes || (c.devanagari && !b.devanagari)
}

// PDFExtractor runs the tiered PDF strategy. Later tiers only run when the
// best text so far looks wrong (no Devanagari) or too short.
type PDFExtractor struct {
	Primary   Backend
	Blocks    Backend
	Secondary Backend
	Rows      Backend

	SuspiciousLength int // block mode below this many runes
	ShortLength      int // row mode below this many runes

	Logger *slog.Logger
}

// NewPDFExtractor wires the default backends.
func NewPDFExtractor(cfg model.PDFConfig, runner Runner, logger *slog.Logger) *PDFExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFExtractor{
		Primary:          PlainTextBackend{},
		Blocks:           BlockBackend{},
		Secondary:        PdftotextBackend{Binary: cfg.Pdftotext, Runner: runner},
		Rows:             RowBackend{},
		SuspiciousLength: cfg.SuspiciousLength,
		ShortLength:      cfg.ShortLength,
		Logger:           logger,
	}
}

// Extract returns the best text found, possibly "".
func (e *PDFExtractor) Extract(ctx context.Context, data []byte) string {
	res := e.ExtractResult(ctx, data)
	return res.Text
}

// ExtractResult is Extract with a record of every tier attempted.
func (e *PDFExtractor) ExtractResult(ctx context.Context, data []byte) model.Extraction {
	logger := e.logger()
	suspicious := e.SuspiciousLength
	if suspicious <= 0 {
		suspicious = 60
	}
	short := e.ShortLength
	if short <= 0 {
		short = 50
	}

	var res model.Extraction
	best := ""
	bestScore := scoreOf(best)

	try := func(b Backend, adoptAlways bool) {
		if b == nil {
			return
		}
		text, err := runBackend(ctx, b, data)
		text = strings.TrimSpace(text)
		s := scoreOf(text)
		tier := model.Tier{Method: b.Method(), Runes: s.runes, Devanagari: s.devanagari}
		if err != nil {
			tier.Error = err.Error()
			logger.Debug("pdf tier failed", "method", b.Method(), "error", err)
		}
		if adoptAlways || better(s, bestScore) {
			tier.Adopted = true
			best, bestScore = text, s
			res.Method = b.Method()
			logger.Debug("pdf tier adopted", "method", b.Method(), "runes", s.runes, "devanagari", s.devanagari)
		}
		res.Attempts = append(res.Attempts, tier)
	}

	try(e.Primary, true)
	if !bestScore.devanagari || bestScore.runes < suspicious {
		try(e.Blocks, false)
	}
	if !bestScore.devanagari {
		try(e.Secondary, false)
	}
	if bestScore.runes < short {
		try(e.Rows, false)
	}

	res.Text = strings.TrimSpace(best)
	if res.Text == "" {
		res.Method = model.MethodNone
	}
	return res
}

func (e *PDFExtractor) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

// runBackend isolates a backend: panics become errors.
func runBackend(ctx context.Context, b Backend, data []byte) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("%s panic: %v", b.Method(), rec)
		}
	}()
	return b.Extract(ctx, data)
}
