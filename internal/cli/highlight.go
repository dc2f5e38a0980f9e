package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/nirnay/internal/highlight"
)

var (
	highlightHTML     bool
	highlightJSON     bool
	highlightFlagged  bool
	highlightMaxLines int
)

// highlightCmd represents the highlight command
var highlightCmd = &cobra.Command{
	Use:   "highlight <file|->",
	Short: "Highlight clauses in a government resolution",
	Long: `Highlight marks clause references (कलम, धोरण, अट, Clause, Section)
and lines mentioning स्थानिक or रहिवासी. Flagged lines are bulleted.
Only the first max-lines lines are shown.

Example:
  nirnay highlight gr.pdf
  nirnay highlight gr.pdf --html > gr.html
  nirnay highlight gr.txt --flagged`,
	Args: cobra.ExactArgs(1),
	RunE: runHighlight,
}

func init() {
	rootCmd.AddCommand(highlightCmd)

	highlightCmd.Flags().BoolVar(&highlightHTML, "html", false, "print the HTML fragment")
	highlightCmd.Flags().BoolVar(&highlightJSON, "json", false, "print lines with their clause matches as JSON")
	highlightCmd.Flags().BoolVar(&highlightFlagged, "flagged", false, "show flagged lines only")
	highlightCmd.Flags().IntVar(&highlightMaxLines, "max-lines", 0, "line limit (default from config)")
}

func runHighlight(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	res, err := a.documentText(ctx, args[0])
	if err != nil {
		return err
	}

	opts := highlight.Options{MaxLines: a.cfg.Highlight.MaxLines}
	if highlightMaxLines > 0 {
		opts.MaxLines = highlightMaxLines
	}

	if highlightHTML {
		fmt.Println(highlight.HTML(res.Text, opts))
		return nil
	}

	result := highlight.Analyze(res.Text, opts)
	if highlightJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal highlight: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if result.Empty {
		fmt.Println("—")
		return nil
	}
	for _, ln := range result.Lines {
		switch {
		case ln.Flagged:
			fmt.Printf("• %s\n", ln.Text)
		case !highlightFlagged:
			fmt.Printf("  %s\n", ln.Text)
		}
	}
	if result.Truncated {
		fmt.Println("…")
	}
	return nil
}
