package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/nirnay/internal/highlight"
	"github.com/ppiankov/nirnay/internal/model"
)

// Renderer writes analysis reports as JSON, YAML or Markdown
type Renderer struct {
	out      io.Writer // stdout target for "-" and the summary
	maxLines int
}

// NewRenderer creates a renderer writing summaries to out.
func NewRenderer(out io.Writer, maxLines int) *Renderer {
	if out == nil {
		out = os.Stdout
	}
	return &Renderer{out: out, maxLines: maxLines}
}

// JSON returns the indented, schema-checked report.
func (r *Renderer) JSON(report *model.AnalysisReport) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	if err := Validate(ReportSchema, data); err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// YAML returns the report as YAML.
func (r *Renderer) YAML(report *model.AnalysisReport) ([]byte, error) {
	data, err := yaml.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return data, nil
}

// Markdown returns a human-readable analysis report.
func (r *Renderer) Markdown(report *model.AnalysisReport) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "# Analysis: %s\n\n", orDash(report.CaseID))
	fmt.Fprintf(&b, "- **Subject:** %s\n", orDash(report.Subject))
	fmt.Fprintf(&b, "- **Officer:** %s\n", orDash(report.Officer))
	fmt.Fprintf(&b, "- **Hearing date (intake):** %s\n", orDash(report.HearingDate))
	fmt.Fprintf(&b, "- **Analyzed at:** %s\n", report.AnalyzedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "- **Report ID:** %s\n\n", report.ID)

	b.WriteString("## Sources\n\n")
	b.WriteString("| Document | Name | Method | Characters |\n|---|---|---|---|\n")
	writeSourceRow(&b, "Case", report.Case)
	writeSourceRow(&b, "GR", report.GR)
	b.WriteString("\n")

	b.WriteString("## Extracted facts\n\n")
	f := report.Facts
	fmt.Fprintf(&b, "- **Complainant:** %s\n", orDash(f.ComplainantName))
	fmt.Fprintf(&b, "- **Village:** %s\n", orDash(f.ComplainantVillage))
	fmt.Fprintf(&b, "- **Taluka:** %s\n", orDash(f.ComplainantTaluka))
	fmt.Fprintf(&b, "- **Hearing date:** %s\n", orDash(f.HearingDate))
	fmt.Fprintf(&b, "- **Hearing time:** %s\n", orDash(f.HearingTime))
	fmt.Fprintf(&b, "- **Distance:** %s\n", orDash(f.DistanceKM))
	b.WriteString("- **Attendees:**\n")
	writeList(&b, f.Attendees)
	b.WriteString("\n")

	b.WriteString("## GR clauses and keywords\n\n")
	b.WriteString(highlight.Markdown(report.GR.Text, highlight.Options{MaxLines: r.maxLines}))
	b.WriteString("\n\n")

	b.WriteString("## References\n\n")
	writeNumbered(&b, report.References)
	b.WriteString("\n")

	if len(report.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range report.Warnings {
			fmt.Fprintf(&b, "- ⚠️ %s\n", w)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Previews\n\n")
	fmt.Fprintf(&b, "### Case\n\n```\n%s\n```\n\n", report.Case.Preview)
	fmt.Fprintf(&b, "### GR\n\n```\n%s\n```\n", report.GR.Preview)

	return []byte(b.String())
}

// RenderJSON writes the JSON report to path ("-" for stdout).
func (r *Renderer) RenderJSON(report *model.AnalysisReport, path string) error {
	data, err := r.JSON(report)
	if err != nil {
		return err
	}
	return r.write(path, data)
}

// RenderYAML writes the YAML report to path ("-" for stdout).
func (r *Renderer) RenderYAML(report *model.AnalysisReport, path string) error {
	data, err := r.YAML(report)
	if err != nil {
		return err
	}
	return r.write(path, data)
}

// RenderMarkdown writes the Markdown report to path ("-" for stdout).
func (r *Renderer) RenderMarkdown(report *model.AnalysisReport, path string) error {
	return r.write(path, r.Markdown(report))
}

// RenderSummary prints a short overview of the report
func (r *Renderer) RenderSummary(report *model.AnalysisReport) {
	f := report.Facts
	fmt.Fprintf(r.out, "\n")
	fmt.Fprintf(r.out, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(r.out, "  Analysis: %s\n", orDash(report.CaseID))
	fmt.Fprintf(r.out, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(r.out, "\n")
	fmt.Fprintf(r.out, "  Case:         %s (%s, %d chars)\n", orDash(report.Case.Name), methodLabel(report.Case.Method), report.Case.Runes)
	fmt.Fprintf(r.out, "  GR:           %s (%s, %d chars)\n", orDash(report.GR.Name), methodLabel(report.GR.Method), report.GR.Runes)
	fmt.Fprintf(r.out, "  Complainant:  %s\n", orDash(f.ComplainantName))
	fmt.Fprintf(r.out, "  Hearing:      %s %s\n", orDash(f.HearingDate), f.HearingTime)
	fmt.Fprintf(r.out, "  Attendees:    %d\n", len(f.Attendees))
	fmt.Fprintf(r.out, "  References:   %d\n", len(report.References))
	for _, w := range report.Warnings {
		fmt.Fprintf(r.out, "  ⚠️  %s\n", w)
	}
	fmt.Fprintf(r.out, "\n")
}

func (r *Renderer) write(path string, data []byte) error {
	if path == "" || path == "-" {
		if _, err := r.out.Write(data); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func writeSourceRow(b *strings.Builder, label string, s model.Source) {
	fmt.Fprintf(b, "| %s | %s | %s | %d |\n", label, orDash(s.Name), methodLabel(s.Method), s.Runes)
}

func writeList(b *strings.Builder, items []string) {
	if len(items) == 0 {
		b.WriteString("  - —\n")
		return
	}
	for _, it := range items {
		fmt.Fprintf(b, "  - %s\n", it)
	}
}

func writeNumbered(b *strings.Builder, items []string) {
	if len(items) == 0 {
		b.WriteString("—\n")
		return
	}
	for i, it := range items {
		fmt.Fprintf(b, "%d. %s\n", i+1, it)
	}
}

func methodLabel(m model.Method) string {
	if m == model.MethodNone {
		return "none"
	}
	return string(m)
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
