package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/nirnay/internal/model"
)

// FileAnalyzer analyses case files against one shared GR. It satisfies
// worker.Analyzer.
type FileAnalyzer struct {
	Pipeline *Pipeline
	Base     Request // GR, officer, subject and references shared by every case
}

// AnalyzeFile reads one case file and analyses it. The case ID is the
// base request's ID joined with the file name stem.
func (a FileAnalyzer) AnalyzeFile(ctx context.Context, path string) (*model.AnalysisReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read case: %w", err)
	}

	req := a.Base
	name := filepath.Base(path)
	req.Case = Input{Document: &model.RawDocument{Name: name, Data: data}}
	req.CaseID = CaseIDForFile(a.Base.CaseID, name)

	report, err := a.Pipeline.Analyze(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", name, err)
	}
	return report, nil
}

// CaseIDForFile derives a per-file case ID.
func CaseIDForFile(prefix, name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if prefix == "" {
		return stem
	}
	return prefix + "/" + stem
}
