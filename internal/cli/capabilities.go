package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var capsJSON bool

// capabilitiesCmd represents the capabilities command
var capabilitiesCmd = &cobra.Command{
	Use:   "capabilities",
	Short: "Show which extraction backends are available",
	Long: `Capabilities probes the extraction backends:
- PDF library (always built in)
- pdftotext (poppler-utils)
- tesseract and its installed languages

Missing backends only narrow extraction; documents they would handle
come back empty.`,
	Args: cobra.NoArgs,
	RunE: runCapabilities,
}

func init() {
	rootCmd.AddCommand(capabilitiesCmd)

	capabilitiesCmd.Flags().BoolVar(&capsJSON, "json", false, "print as JSON")
}

func runCapabilities(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	caps := a.caps

	if capsJSON {
		data, err := json.MarshalIndent(caps, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal capabilities: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Println("  Extraction Backends")
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Println()
	fmt.Printf("  PDF library:   %s\n", mark(caps.PDFLibrary, ""))
	fmt.Printf("  pdftotext:     %s\n", mark(caps.Pdftotext, caps.PdftotextPath))
	fmt.Printf("  tesseract:     %s\n", mark(caps.Tesseract, caps.TesseractPath))
	if caps.Tesseract {
		fmt.Printf("  languages:     %s\n", strings.Join(caps.TesseractLanguages, ", "))
		want := strings.Join(a.cfg.OCR.Languages, "+")
		if caps.HasLanguages(a.cfg.OCR.Languages) {
			fmt.Printf("  OCR (%s): ✓ ready\n", want)
		} else {
			fmt.Printf("  OCR (%s): ⚠️  missing language data\n", want)
		}
	}
	fmt.Println()
	return nil
}

func mark(ok bool, path string) string {
	if !ok {
		return "✗ not found"
	}
	if path == "" {
		return "✓"
	}
	return "✓ " + path
}
