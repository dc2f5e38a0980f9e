package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/nirnay/internal/cache"
	"github.com/ppiankov/nirnay/internal/export"
	"github.com/ppiankov/nirnay/internal/model"
	"github.com/ppiankov/nirnay/internal/order"
	"github.com/ppiankov/nirnay/internal/pipeline"
	"github.com/ppiankov/nirnay/internal/util"
	"github.com/ppiankov/nirnay/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	casePrefix   string
	xlsxPath     string
	metricsFile  string
	draftsLang   string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir|listfile>",
	Short: "Analyse many case files against one GR in parallel",
	Long: `Batch analyses every supported file in a directory, or every path
listed in a text file (one per line, # for comments), against one GR:
- Process files in parallel with configurable worker count
- Write a JSON and Markdown report per case
- Optionally write an order draft per case
- Optionally export the extracted facts of all cases to XLSX
- Optionally write Prometheus metrics in textfile format

Case IDs are <case-prefix>/<file name without extension>.

Example:
  nirnay batch ./cases --gr gr.pdf
  nirnay batch ./cases --gr gr.pdf --workers 4 --xlsx cases.xlsx
  nirnay batch cases.txt --gr gr.pdf --drafts mr --case-prefix ZP/CH/2025`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&grFile, "gr", "", "government resolution document")
	batchCmd.Flags().StringVar(&grText, "gr-text", "", "GR text (overrides --gr)")
	batchCmd.Flags().StringVar(&refsFile, "refs", "", "file with one decision reference per line")
	batchCmd.Flags().StringVar(&casePrefix, "case-prefix", "", "prefix for per-file case IDs")

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "workers", 0, "number of concurrent workers (default from config)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for batch processing")

	// Output flags
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./nirnay-reports", "output directory for reports")
	batchCmd.Flags().StringVar(&draftsLang, "drafts", "", "also write order drafts in this language (mr or en)")
	batchCmd.Flags().StringVar(&xlsxPath, "xlsx", "", "export facts of all cases to this XLSX file")
	batchCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")
}

func runBatch(cmd *cobra.Command, args []string) error {
	input := args[0]
	a, err := newApp()
	if err != nil {
		return err
	}

	// Every case re-reads the same GR; keep extractions in memory even
	// when the persistent cache is off.
	if !a.cfg.Cache.Enabled {
		a.useCache(cache.NewMemoryCache(a.cfg.Cache.MemoryTTL, 0))
	}

	workers := concurrency
	if workers <= 0 {
		workers = a.cfg.Concurrency.Workers
	}

	var lang order.Language
	if draftsLang != "" {
		if lang, err = order.ParseLanguage(draftsLang); err != nil {
			return err
		}
	}

	gr, err := caseInput(grFile, grText)
	if err != nil {
		return err
	}
	if gr.Empty() {
		return fmt.Errorf("GR: --gr or --gr-text is required")
	}

	base := pipeline.RequestFromConfig(a.cfg.Office)
	base.CaseID = casePrefix
	base.GR = gr
	if refsFile != "" {
		if base.References, err = readLines(refsFile); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Nirnay Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input:        %s\n", input)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	// Create output directory
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	analyzer := pipeline.FileAnalyzer{Pipeline: a.pipeline(), Base: base}
	processor := worker.NewBatchProcessor(analyzer, workers)
	accept := func(name string) bool { return a.dispatcher.FindHandler(name) != nil }

	results, err := processor.ProcessPath(ctx, input, accept)
	if err != nil {
		return fmt.Errorf("process %s: %w", input, err)
	}

	renderer := pipeline.NewRenderer(os.Stdout, a.cfg.Highlight.MaxLines)
	rows := make([]export.Row, 0, len(results))
	successCount := 0
	failureCount := 0

	for _, result := range results {
		a.metrics.FinishCase(result.Elapsed, result.Error)
		rows = append(rows, export.Row{Path: result.Path, Report: result.Report, Err: result.Error})

		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}

		report := result.Report
		name := reportName(report.CaseID)
		if err := renderer.RenderJSON(report, filepath.Join(outputDir, name+".json")); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Path, err)
			continue
		}
		if err := renderer.RenderMarkdown(report, filepath.Join(outputDir, name+".md")); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", result.Path, err)
			continue
		}
		if lang != "" {
			if err := writeDraft(a, report, lang); err != nil {
				failureCount++
				fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, err)
				continue
			}
		}

		successCount++
		fmt.Fprintf(os.Stderr, "✓ %s (%s, %d attendees, %d refs)\n",
			report.CaseID, methodName(report.Case.Method), len(report.Facts.Attendees), len(report.References))
	}

	if xlsxPath != "" {
		data, err := export.CasesXLSX(rows, a.logger)
		if err != nil {
			return err
		}
		if err := os.WriteFile(xlsxPath, data, 0644); err != nil {
			return fmt.Errorf("write xlsx: %w", err)
		}
	}
	if metricsFile != "" {
		if err := a.metrics.WriteTextfile(metricsFile); err != nil {
			return err
		}
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d cases\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	if xlsxPath != "" {
		fmt.Fprintf(os.Stderr, "  XLSX:      %s\n", xlsxPath)
	}
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

func writeDraft(a *app, report *model.AnalysisReport, lang order.Language) error {
	text, err := order.Draft(order.InputFromReport(report), order.OptionsFromConfig(a.cfg.Office, lang))
	if err != nil {
		return fmt.Errorf("draft order: %w", err)
	}
	path := filepath.Join(outputDir, order.FileName(report.CaseID, lang))
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("write draft: %w", err)
	}
	return nil
}

// reportName turns a case ID into a single safe path element.
func reportName(caseID string) string {
	r := strings.NewReplacer(
		"/", "-",
		"\\", "-",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "-",
	)
	s := r.Replace(strings.TrimSpace(caseID))
	if s == "" {
		s = "case"
	}
	return util.TruncateRunes(s, 100)
}
