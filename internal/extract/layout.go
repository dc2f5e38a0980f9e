package extract

import (
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Layout tolerances, expressed as fractions of the glyph font size.
const (
	rowToleranceRatio = 0.5 // glyphs this close vertically share a row
	wordGapRatio      = 0.3 // horizontal gap that becomes a space
	blockGapRatio     = 2.0 // horizontal gap that starts a new block
	defaultFontSize   = 10.0
)

// textBlock is a horizontal run of glyphs read as one unit
type textBlock struct {
	X, Y     float64
	FontSize float64
	Text     string
}

// layoutBlocks merges glyphs into blocks and returns them in reading order:
// top of the page first, then left to right. Coordinates are compared after
// rounding to one decimal so jitter in the PDF does not reorder blocks.
func layoutBlocks(glyphs []pdf.Text) []textBlock {
	glyphs = filterGlyphs(glyphs)
	if len(glyphs) == 0 {
		return nil
	}

	sorted := make([]pdf.Text, len(glyphs))
	copy(sorted, glyphs)
	sort.SliceStable(sorted, func(i, j int) bool {
		yi, yj := round1(sorted[i].Y), round1(sorted[j].Y)
		if yi != yj {
			return yi > yj
		}
		return round1(sorted[i].X) < round1(sorted[j].X)
	})

	var blocks []textBlock
	for _, row := range groupRows(sorted) {
		blocks = append(blocks, splitRow(row)...)
	}

	sort.SliceStable(blocks, func(i, j int) bool {
		yi, yj := round1(blocks[i].Y), round1(blocks[j].Y)
		if yi != yj {
			return yi > yj
		}
		return round1(blocks[i].X) < round1(blocks[j].X)
	})
	return blocks
}

// blocksText joins the non-empty block texts with newlines.
func blocksText(blocks []textBlock) string {
	var lines []string
	for _, b := range blocks {
		if t := strings.TrimSpace(b.Text); t != "" {
			lines = append(lines, t)
		}
	}
	return strings.Join(lines, "\n")
}

func filterGlyphs(glyphs []pdf.Text) []pdf.Text {
	out := make([]pdf.Text, 0, len(glyphs))
	for _, g := range glyphs {
		if g.S == "" || g.S == "\n" || g.S == "\r" {
			continue
		}
		out = append(out, g)
	}
	return out
}

// groupRows expects glyphs sorted by Y descending.
func groupRows(glyphs []pdf.Text) [][]pdf.Text {
	var rows [][]pdf.Text
	var current []pdf.Text
	var rowY float64

	for _, g := range glyphs {
		tol := fontSize(g) * rowToleranceRatio
		if len(current) > 0 && math.Abs(rowY-g.Y) <= tol {
			current = append(current, g)
			continue
		}
		if len(current) > 0 {
			rows = append(rows, current)
		}
		current = []pdf.Text{g}
		rowY = g.Y
	}
	if len(current) > 0 {
		rows = append(rows, current)
	}

	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })
	}
	return rows
}

// splitRow cuts a row into blocks at wide horizontal gaps (column breaks).
func splitRow(row []pdf.Text) []textBlock {
	var blocks []textBlock
	var b strings.Builder
	start := row[0]
	prev := row[0]
	b.WriteString(prev.S)

	flush := func() {
		blocks = append(blocks, textBlock{
			X:        start.X,
			Y:        start.Y,
			FontSize: fontSize(start),
			Text:     b.String(),
		})
		b.Reset()
	}

	for _, g := range row[1:] {
		gap := g.X - (prev.X + prev.W)
		fs := fontSize(prev)
		switch {
		case gap > fs*blockGapRatio:
			flush()
			start = g
		case gap > fs*wordGapRatio && !strings.HasSuffix(prev.S, " ") && !strings.HasPrefix(g.S, " "):
			b.WriteByte(' ')
		}
		b.WriteString(g.S)
		prev = g
	}
	flush()
	return blocks
}

func fontSize(g pdf.Text) float64 {
	if g.FontSize <= 0 {
		return defaultFontSize
	}
	return g.FontSize
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
