package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/nirnay/internal/model"
	"github.com/ppiankov/nirnay/internal/pipeline"
)

var (
	caseFile    string
	grFile      string
	caseText    string
	grText      string
	refsFile    string
	caseID      string
	subject     string
	officer     string
	hearingDate string
	timeout     time.Duration

	outJSON    string
	outMD      string
	outYAML    string
	noRedact   bool
	previewLen int
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyse a case against a government resolution",
	Long: `Analyze runs the full pipeline on one case:
- Extract text from the case document and the GR (pasted text wins)
- Redacted previews of both documents
- GR clause highlighting
- Case fact extraction
- Decision references (from --refs, else from the case text)

Both a case and a GR are required, as a file or as text.

Example:
  nirnay analyze --case complaint.pdf --gr gr.pdf
  nirnay analyze --case complaint.jpg --gr-text "$(cat gr.txt)" --md report.md
  nirnay analyze --case c.pdf --gr g.pdf --refs refs.txt --json report.json`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	addAnalysisFlags(analyzeCmd)

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "-", "output JSON path (- for stdout)")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().StringVar(&outYAML, "yaml", "", "output YAML path (optional)")
	analyzeCmd.Flags().BoolVar(&noRedact, "no-redact", false, "show unredacted previews")
	analyzeCmd.Flags().IntVar(&previewLen, "preview", 0, "preview length in characters (default from config)")
}

// addAnalysisFlags registers the inputs shared by analyze and draft.
func addAnalysisFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&caseFile, "case", "", "case document (PDF, image or text)")
	cmd.Flags().StringVar(&grFile, "gr", "", "government resolution document")
	cmd.Flags().StringVar(&caseText, "case-text", "", "case text (overrides --case)")
	cmd.Flags().StringVar(&grText, "gr-text", "", "GR text (overrides --gr)")
	cmd.Flags().StringVar(&refsFile, "refs", "", "file with one decision reference per line")
	cmd.Flags().StringVar(&caseID, "case-id", "", "case file number (default from config)")
	cmd.Flags().StringVar(&subject, "subject", "", "order subject (default from config)")
	cmd.Flags().StringVar(&officer, "officer", "", "hearing officer (default from config)")
	cmd.Flags().StringVar(&hearingDate, "hearing-date", "", "intake hearing date dd/mm/yyyy (default from config)")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall timeout")
}

// analysisRequest builds the request from flags over office defaults.
func analysisRequest(office model.OfficeConfig) (pipeline.Request, error) {
	req := pipeline.RequestFromConfig(office)
	if caseID != "" {
		req.CaseID = caseID
	}
	if subject != "" {
		req.Subject = subject
	}
	if officer != "" {
		req.Officer = officer
	}
	if hearingDate != "" {
		req.HearingDate = hearingDate
		req.References = pipeline.DefaultReferences(office, hearingDate)
	}
	if refsFile != "" {
		refs, err := readLines(refsFile)
		if err != nil {
			return req, err
		}
		req.References = refs
	}

	var err error
	if req.Case, err = caseInput(caseFile, caseText); err != nil {
		return req, err
	}
	if req.GR, err = caseInput(grFile, grText); err != nil {
		return req, err
	}
	return req, nil
}

// analyze runs the pipeline for the current flags.
func analyze(ctx context.Context, a *app) (*model.AnalysisReport, error) {
	req, err := analysisRequest(a.cfg.Office)
	if err != nil {
		return nil, err
	}
	report, err := a.pipeline().Analyze(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	return report, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if noRedact {
		a.cfg.Preview.Redact = false
	}
	if previewLen > 0 {
		a.cfg.Preview.Chars = previewLen
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	report, err := analyze(ctx, a)
	if err != nil {
		return err
	}

	renderer := pipeline.NewRenderer(os.Stdout, a.cfg.Highlight.MaxLines)
	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return err
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(report, outMD); err != nil {
			return err
		}
	}
	if outYAML != "" {
		if err := renderer.RenderYAML(report, outYAML); err != nil {
			return err
		}
	}

	pipeline.NewRenderer(os.Stderr, a.cfg.Highlight.MaxLines).RenderSummary(report)
	return nil
}
