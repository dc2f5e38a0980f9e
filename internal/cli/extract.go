package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/nirnay/internal/redact"
)

var (
	extractRedact  bool
	extractJSON    bool
	extractTimeout time.Duration
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract text from a PDF, image or text file",
	Long: `Extract runs a document through the dispatcher:
- Plain text (.txt): UTF-8, UTF-16 with BOM, Latin-1 fallback
- PDF: text layer, block layout, pdftotext, row layout (best tier wins)
- Images (.png, .jpg, .jpeg, .tif, .tiff, .webp): tesseract OCR

An empty result means no backend produced text, not an error.

Example:
  nirnay extract complaint.pdf
  nirnay extract scan.jpg --redact
  nirnay extract gr.pdf --json`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().BoolVar(&extractRedact, "redact", false, "mask Aadhaar, PAN and mobile numbers")
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "print text, method and tier attempts as JSON")
	extractCmd.Flags().DurationVar(&extractTimeout, "timeout", 2*time.Minute, "extraction timeout")
}

func runExtract(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), extractTimeout)
	defer cancel()

	res, err := a.documentText(ctx, args[0])
	if err != nil {
		return err
	}
	if extractRedact {
		res.Text = redact.Text(res.Text)
	}

	if extractJSON {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal extraction: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if res.Text == "" {
		fmt.Fprintf(os.Stderr, "⚠️  No text could be extracted from %s\n", res.Name)
		return nil
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Method: %s (%s handler)\n", res.Method, res.Handler)
	}
	fmt.Println(res.Text)
	return nil
}
