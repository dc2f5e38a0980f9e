package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/nirnay/internal/facts"
	"github.com/ppiankov/nirnay/internal/pipeline"
)

var factsYAML bool

// factsCmd represents the facts command
var factsCmd = &cobra.Command{
	Use:   "facts <file|->",
	Short: "Extract structured facts from a case narrative",
	Long: `Facts extracts the document text and applies the Marathi fact rules:
- Complainant name, village and taluka
- Hearing date and time
- Distance in km
- Attendee list
- Reference citations (deduplicated, at most 8)

Fields that no rule matches stay empty. Use "-" to read text from stdin.

Example:
  nirnay facts complaint.pdf
  cat complaint.txt | nirnay facts -`,
	Args: cobra.ExactArgs(1),
	RunE: runFacts,
}

func init() {
	rootCmd.AddCommand(factsCmd)

	factsCmd.Flags().BoolVar(&factsYAML, "yaml", false, "print YAML instead of JSON")
}

func runFacts(cmd *cobra.Command, args []string) error {
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
	f := facts.Parse(res.Text)

	if factsYAML {
		data, err := yaml.Marshal(f)
		if err != nil {
			return fmt.Errorf("marshal facts: %w", err)
		}
		fmt.Print(string(data))
		return nil
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal facts: %w", err)
	}
	if err := pipeline.Validate(pipeline.FactsSchema, data); err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
