package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/nirnay/internal/redact"
)

var redactStats bool

// redactCmd represents the redact command
var redactCmd = &cobra.Command{
	Use:   "redact <file|->",
	Short: "Mask Aadhaar, PAN and mobile numbers",
	Long: `Redact prints the document text with 12-digit Aadhaar numbers, PAN
numbers and 10-digit mobile numbers masked. Redacting twice changes nothing.

Example:
  nirnay redact complaint.pdf
  cat notes.txt | nirnay redact - --stats`,
	Args: cobra.ExactArgs(1),
	RunE: runRedact,
}

func init() {
	rootCmd.AddCommand(redactCmd)

	redactCmd.Flags().BoolVar(&redactStats, "stats", false, "print how many numbers were masked (stderr)")
}

func runRedact(cmd *cobra.Command, args []string) error {
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

	if redactStats {
		counts := redact.Count(res.Text)
		kinds := make([]string, 0, len(counts))
		for k := range counts {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		for _, k := range kinds {
			fmt.Fprintf(os.Stderr, "  %-10s %d\n", k+":", counts[k])
		}
	}
	fmt.Println(redact.Text(res.Text))
	return nil
}
