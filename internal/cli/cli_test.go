package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ppiankov/nirnay/internal/model"
)

func TestReportName(t *testing.T) {
	tests := map[string]string{
		"ZP/CH/2025/0017": "ZP-CH-2025-0017",
		"  ":              "case",
		"a:b c":           "a_b-c",
	}
	for in, want := range tests {
		if got := reportName(in); got != want {
			t.Errorf("reportName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMethodName(t *testing.T) {
	if got := methodName(model.MethodNone); got != "none" {
		t.Errorf("got %q", got)
	}
	if got := methodName(model.MethodPDFRows); got != "pdf-rows" {
		t.Errorf("got %q", got)
	}
}

func TestCaseInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "case.txt")
	if err := os.WriteFile(path, []byte("तक्रार"), 0644); err != nil {
		t.Fatal(err)
	}

	in, err := caseInput(path, "pasted")
	if err != nil {
		t.Fatalf("caseInput: %v", err)
	}
	if in.Document == nil || in.Document.Name != "case.txt" || in.Pasted != "pasted" {
		t.Errorf("unexpected input: %+v", in)
	}

	in, err = caseInput("", "")
	if err != nil || !in.Empty() {
		t.Errorf("expected empty input, got %+v %v", in, err)
	}

	if _, err := caseInput(filepath.Join(t.TempDir(), "missing.pdf"), ""); err == nil {
		t.Error("expected error for missing file")
	}
}
