package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/nirnay/internal/order"
)

var (
	draftLang   string
	draftOut    string
	draftDate   string
	noSignature bool
	noWatermark bool
)

// draftCmd represents the draft command
var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Draft a decision order for a case",
	Long: `Draft analyses a case against a GR and renders the decision order
in Markdown, in Marathi (default) or English. Facts the case text does not
state are printed as "—". The draft carries a watermark line and a
signature block unless disabled.

The output file defaults to <case-id>_Order_<MR|EN>.md.

Example:
  nirnay draft --case complaint.pdf --gr gr.pdf --case-id ZP/CH/2025/0017
  nirnay draft --case c.pdf --gr g.pdf --lang en --out -`,
	Args: cobra.NoArgs,
	RunE: runDraft,
}

func init() {
	rootCmd.AddCommand(draftCmd)
	addAnalysisFlags(draftCmd)

	draftCmd.Flags().StringVar(&draftLang, "lang", "", "order language: mr or en (default from config)")
	draftCmd.Flags().StringVar(&draftOut, "out", "", "output path (- for stdout)")
	draftCmd.Flags().StringVar(&draftDate, "date", "", "order date dd/mm/yyyy (default today)")
	draftCmd.Flags().BoolVar(&noSignature, "no-signature", false, "omit the signature block")
	draftCmd.Flags().BoolVar(&noWatermark, "no-watermark", false, "omit the watermark line")
}

func runDraft(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	langName := draftLang
	if langName == "" {
		langName = a.cfg.Office.Language
	}
	lang, err := order.ParseLanguage(langName)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	report, err := analyze(ctx, a)
	if err != nil {
		return err
	}
	for _, w := range report.Warnings {
		fmt.Fprintf(os.Stderr, "⚠️  %s\n", w)
	}

	opts := order.OptionsFromConfig(a.cfg.Office, lang)
	opts.Date = draftDate
	if noSignature {
		opts.Signature = nil
	}
	if noWatermark {
		opts.Watermark = false
	}

	text, err := order.Draft(order.InputFromReport(report), opts)
	if err != nil {
		return fmt.Errorf("draft order: %w", err)
	}

	path := draftOut
	if path == "" {
		path = order.FileName(report.CaseID, lang)
	}
	if path == "-" {
		fmt.Print(text)
		return nil
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("write draft: %w", err)
	}
	fmt.Fprintf(os.Stderr, "✓ Order draft written to %s\n", path)
	return nil
}
