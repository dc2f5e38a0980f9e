package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/ppiankov/nirnay/internal/facts"
	"github.com/ppiankov/nirnay/internal/highlight"
	"github.com/ppiankov/nirnay/internal/model"
	"github.com/ppiankov/nirnay/internal/redact"
	"github.com/ppiankov/nirnay/internal/util"
)

// MaxReferences caps the decision references printed on an order.
const MaxReferences = 10

const emptyPreview = "—"

// Extractor turns a document into text
type Extractor interface {
	ExtractResult(ctx context.Context, doc model.RawDocument) model.Extraction
}

// Input is one side of an analysis: an uploaded document, pasted text, or both
type Input struct {
	Document *model.RawDocument
	Pasted   string
}

// Empty reports whether neither a document nor pasted text was given.
func (in Input) Empty() bool {
	return (in.Document == nil || len(in.Document.Data) == 0) && strings.TrimSpace(in.Pasted) == ""
}

// Request describes one case analysis
type Request struct {
	CaseID      string
	Subject     string
	Officer     string
	HearingDate string

	Case Input
	GR   Input

	// References are the operator's reference lines. Blank lines are
	// dropped and at most MaxReferences are kept.
	References []string
}

// Pipeline orchestrates extraction, redaction, highlighting and fact parsing
type Pipeline struct {
	extractor Extractor
	config    *model.Config
	logger    *slog.Logger
	newID     func() string
	now       func() time.Time
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config, extractor Extractor, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		extractor: extractor,
		config:    cfg,
		logger:    logger,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// DefaultReferences returns the configured reference lines followed by the
// hearing date line.
func DefaultReferences(office model.OfficeConfig, hearingDate string) []string {
	refs := make([]string, 0, len(office.References)+1)
	refs = append(refs, office.References...)
	if hearingDate != "" {
		refs = append(refs, "सुनावणी दिनांक : "+hearingDate)
	}
	return refs
}

// RequestFromConfig fills the intake fields from office defaults.
func RequestFromConfig(office model.OfficeConfig) Request {
	return Request{
		CaseID:      office.CaseID,
		Subject:     office.Subject,
		Officer:     office.Officer,
		HearingDate: office.HearingDate,
		References:  DefaultReferences(office, office.HearingDate),
	}
}

// Analyze runs the complete analysis. Both the case and the GR are
// required; pasted text takes precedence over an uploaded document.
func (p *Pipeline) Analyze(ctx context.Context, req Request) (*model.AnalysisReport, error) {
	if req.Case.Empty() {
		return nil, fmt.Errorf("case: %w", model.ErrNoInput)
	}
	if req.GR.Empty() {
		return nil, fmt.Errorf("GR: %w", model.ErrNoInput)
	}

	report := &model.AnalysisReport{
		ID:          p.newID(),
		CaseID:      req.CaseID,
		Subject:     req.Subject,
		Officer:     req.Officer,
		HearingDate: req.HearingDate,
		AnalyzedAt:  p.now().UTC(),
	}

	// 1. Extract both documents
	report.Case = p.source(ctx, req.Case)
	report.GR = p.source(ctx, req.GR)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	if report.Case.Text == "" {
		report.Warnings = append(report.Warnings, noTextWarning("case", report.Case))
	}
	if report.GR.Text == "" {
		report.Warnings = append(report.Warnings, noTextWarning("GR", report.GR))
	}

	// 2. Highlight clauses in the GR
	if report.GR.Text != "" {
		report.GRHighlight = highlight.HTML(report.GR.Text, highlight.Options{MaxLines: p.config.Highlight.MaxLines})
	}

	// 3. Parse case facts
	report.Facts = facts.Parse(report.Case.Text)

	// 4. Decision references
	report.References = util.NonEmptyLines(strings.Join(req.References, "\n"), MaxReferences)
	if len(report.References) == 0 {
		report.References = append([]string{}, report.Facts.Refs...)
	}

	p.logger.Info("analysis complete",
		"id", report.ID,
		"case_id", report.CaseID,
		"case_method", report.Case.Method,
		"gr_method", report.GR.Method,
		"references", len(report.References),
		"attendees", len(report.Facts.Attendees),
	)
	return report, nil
}

// source resolves one input to text and builds its preview.
func (p *Pipeline) source(ctx context.Context, in Input) model.Source {
	var src model.Source
	if in.Document != nil {
		src.Name = in.Document.Name
	}

	if pasted := strings.TrimSpace(in.Pasted); pasted != "" {
		src.Text = pasted
		src.Method = model.MethodPasted
	} else if in.Document != nil {
		res := p.extractor.ExtractResult(ctx, *in.Document)
		src.Text = strings.TrimSpace(res.Text)
		src.Method = res.Method
	}

	src.Runes = utf8.RuneCountInString(src.Text)
	src.Preview = redact.Preview(src.Text, p.config.Preview.Chars, p.config.Preview.Redact)
	if src.Preview == "" {
		src.Preview = emptyPreview
	}
	return src
}

func noTextWarning(label string, src model.Source) string {
	if src.Name == "" {
		return label + ": no text could be extracted"
	}
	return fmt.Sprintf("%s: no text could be extracted from %s", label, src.Name)
}
