package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/ppiankov/nirnay/internal/model"
)

// Backend is one PDF text extraction strategy.
type Backend interface {
	Method() model.Method
	Extract(ctx context.Context, data []byte) (string, error)
}

var errNoPages = errors.New("pdf has no readable pages")

// openPDF wraps pdf.NewReader and recovers from library panics.
func openPDF(data []byte) (r *pdf.Reader, pages int, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r, pages, err = nil, 0, fmt.Errorf("pdf reader panic: %v", rec)
		}
	}()

	r, err = pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, 0, fmt.Errorf("open pdf: %w", err)
	}
	pages = r.NumPage()
	if pages <= 0 {
		return nil, 0, errNoPages
	}
	return r, pages, nil
}

// eachPage calls fn for every page with per-page panic protection, so one
// broken page does not lose the rest of the document.
func eachPage(ctx context.Context, data []byte, fn func(p pdf.Page) string) (string, error) {
	r, pages, err := openPDF(data)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, pages)
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		func() {
			defer func() { _ = recover() }()
			p := r.Page(i)
			if p.V.IsNull() {
				return
			}
			parts = append(parts, fn(p))
		}()
	}
	return strings.TrimSpace(strings.Join(parts, "\n")), nil
}

// PlainTextBackend is the primary tier: the library's plain text per page.
type PlainTextBackend struct{}

func (PlainTextBackend) Method() model.Method { return model.MethodPDFText }

func (PlainTextBackend) Extract(ctx context.Context, data []byte) (string, error) {
	return eachPage(ctx, data, func(p pdf.Page) string {
		txt, err := p.GetPlainText(nil)
		if err != nil {
			return ""
		}
		return txt
	})
}

// BlockBackend rebuilds reading order from glyph coordinates.
type BlockBackend struct{}

func (BlockBackend) Method() model.Method { return model.MethodPDFBlocks }

func (BlockBackend) Extract(ctx context.Context, data []byte) (string, error) {
	return eachPage(ctx, data, func(p pdf.Page) string {
		return blocksText(layoutBlocks(p.Content().Text))
	})
}

// RowBackend reads each page row by row.
type RowBackend struct{}

func (RowBackend) Method() model.Method { return model.MethodPDFRows }

func (RowBackend) Extract(ctx context.Context, data []byte) (string, error) {
	return eachPage(ctx, data, func(p pdf.Page) string {
		rows, err := p.GetTextByRow()
		if err != nil {
			return ""
		}
		var b strings.Builder
		for _, row := range rows {
			words := make([]string, 0, len(row.Content))
			for _, word := range row.Content {
				words = append(words, word.S)
			}
			b.WriteString(strings.Join(words, " "))
			b.WriteString("\n")
		}
		return b.String()
	})
}

// PdftotextBackend shells out to poppler's pdftotext.
type PdftotextBackend struct {
	Binary string
	Runner Runner
}

func (PdftotextBackend) Method() model.Method { return model.MethodPdftotext }

// Extract writes data to a temp file for the duration of the call.
func (b PdftotextBackend) Extract(ctx context.Context, data []byte) (string, error) {
	bin := b.Binary
	if bin == "" {
		bin = "pdftotext"
	}

	f, err := os.CreateTemp("", "nirnay-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp pdf: %w", err)
	}
	path := f.Name()
	defer func() { _ = os.Remove(path) }()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write temp pdf: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close temp pdf: %w", err)
	}

	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := b.Runner.Run(ctx, bin, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w: %s", err, truncate(string(errb), 512))
	}
	return strings.TrimSpace(strings.ReplaceAll(string(out), "\f", "\n")), nil
}
