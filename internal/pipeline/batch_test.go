package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ppiankov/nirnay/internal/model"
)

func TestFileAnalyzer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "case-17.txt")
	if err := os.WriteFile(path, []byte(caseText), 0644); err != nil {
		t.Fatal(err)
	}

	ex := &fakeExtractor{texts: map[string]string{"case-17.txt": caseText}}
	a := FileAnalyzer{
		Pipeline: newTestPipeline(ex),
		Base:     Request{CaseID: "ZP/CH", GR: Input{Pasted: grText}},
	}

	report, err := a.AnalyzeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("AnalyzeFile: %v", err)
	}
	if report.CaseID != "ZP/CH/case-17" || report.Case.Name != "case-17.txt" {
		t.Errorf("unexpected report identity: %q %q", report.CaseID, report.Case.Name)
	}
	if report.Facts.ComplainantVillage != "नानकपठार" {
		t.Errorf("unexpected facts: %+v", report.Facts)
	}

	if _, err := a.AnalyzeFile(context.Background(), filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}

	empty := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := a.AnalyzeFile(context.Background(), empty); !errors.Is(err, model.ErrNoInput) {
		t.Errorf("expected ErrNoInput for empty file, got %v", err)
	}
}

func TestCaseIDForFile(t *testing.T) {
	if got := CaseIDForFile("", "a.b.pdf"); got != "a.b" {
		t.Errorf("got %q", got)
	}
	if got := CaseIDForFile("X", "case"); got != "X/case" {
		t.Errorf("got %q", got)
	}
}
