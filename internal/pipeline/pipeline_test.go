package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/nirnay/internal/model"
)

const caseText = "तक्रारदार सौ. सुनीता रमेश पाटील, रा. नानकपठार, ता. गोंडपिपरी, यांनी तक्रार केली.\n" +
	"संपर्क 9876543210\n" +
	"सुनावणी दिनांक 13/05/2025 रोजी सकाळी ११ वा. झाली.\n"

const grText = "शासन निर्णय\nकलम 4 नुसार उमेदवार स्थानिक रहिवासी असावा\nइतर अटी"

// fakeExtractor returns canned text per document name
type fakeExtractor struct {
	texts map[string]string
	calls []string
}

func (f *fakeExtractor) ExtractResult(_ context.Context, doc model.RawDocument) model.Extraction {
	f.calls = append(f.calls, doc.Name)
	text, ok := f.texts[doc.Name]
	if !ok {
		return model.Extraction{Name: doc.Name, Method: model.MethodNone}
	}
	return model.Extraction{Name: doc.Name, Text: text, Method: model.MethodPlainText}
}

func newTestPipeline(ex Extractor) *Pipeline {
	p := NewPipeline(model.DefaultConfig(), ex, slog.New(slog.NewTextHandler(io.Discard, nil)))
	p.newID = func() string { return "test-id" }
	p.now = func() time.Time { return time.Date(2025, time.May, 20, 9, 0, 0, 0, time.UTC) }
	return p
}

func doc(name string) *model.RawDocument {
	return &model.RawDocument{Name: name, Data: []byte("bytes")}
}

func TestAnalyze_RequiresBothInputs(t *testing.T) {
	p := newTestPipeline(&fakeExtractor{})

	_, err := p.Analyze(context.Background(), Request{GR: Input{Pasted: grText}})
	if !errors.Is(err, model.ErrNoInput) || !strings.HasPrefix(err.Error(), "case") {
		t.Errorf("expected missing case error, got %v", err)
	}

	_, err = p.Analyze(context.Background(), Request{Case: Input{Pasted: caseText}, GR: Input{Pasted: "   "}})
	if !errors.Is(err, model.ErrNoInput) || !strings.HasPrefix(err.Error(), "GR") {
		t.Errorf("expected missing GR error, got %v", err)
	}

	_, err = p.Analyze(context.Background(), Request{
		Case: Input{Document: &model.RawDocument{Name: "empty.txt"}},
		GR:   Input{Pasted: grText},
	})
	if !errors.Is(err, model.ErrNoInput) {
		t.Errorf("empty upload should count as missing, got %v", err)
	}
}

func TestAnalyze_FromDocuments(t *testing.T) {
	ex := &fakeExtractor{texts: map[string]string{"case.pdf": "  " + caseText + "  ", "gr.txt": grText}}
	p := newTestPipeline(ex)

	report, err := p.Analyze(context.Background(), Request{
		CaseID:  "ZP/CH/2025/0001",
		Subject: "निवड",
		Case:    Input{Document: doc("case.pdf")},
		GR:      Input{Document: doc("gr.txt")},
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if report.ID != "test-id" || report.CaseID != "ZP/CH/2025/0001" {
		t.Errorf("unexpected identity: %+v", report)
	}
	if report.Case.Text != strings.TrimSpace(caseText) {
		t.Errorf("case text should be trimmed, got %q", report.Case.Text)
	}
	if report.Case.Method != model.MethodPlainText || report.Case.Name != "case.pdf" {
		t.Errorf("unexpected case source: %+v", report.Case)
	}
	if strings.Contains(report.Case.Preview, "9876543210") {
		t.Error("preview must be redacted in sensitive mode")
	}
	if !strings.Contains(report.Case.Text, "9876543210") {
		t.Error("full text must stay unredacted")
	}
	if !strings.Contains(report.GRHighlight, "<span class='hl'>कलम 4</span>") {
		t.Errorf("expected highlighted clause, got %q", report.GRHighlight)
	}
	if report.Facts.ComplainantName != "सुनीता रमेश पाटील" || report.Facts.HearingDate != "13/05/2025" {
		t.Errorf("unexpected facts: %+v", report.Facts)
	}
	if len(report.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", report.Warnings)
	}
}

func TestAnalyze_PastedTextWins(t *testing.T) {
	ex := &fakeExtractor{texts: map[string]string{"case.txt": "uploaded"}}
	p := newTestPipeline(ex)

	report, err := p.Analyze(context.Background(), Request{
		Case: Input{Document: doc("case.txt"), Pasted: "\n" + caseText},
		GR:   Input{Pasted: grText},
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(ex.calls) != 0 {
		t.Errorf("extractor should not run when text is pasted, ran for %v", ex.calls)
	}
	if report.Case.Method != model.MethodPasted || report.Case.Name != "case.txt" {
		t.Errorf("unexpected case source: %+v", report.Case)
	}
}

func TestAnalyze_EmptyExtractionWarns(t *testing.T) {
	p := newTestPipeline(&fakeExtractor{texts: map[string]string{"gr.txt": grText}})

	report, err := p.Analyze(context.Background(), Request{
		Case: Input{Document: doc("scan.tiff")},
		GR:   Input{Document: doc("gr.txt")},
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.Case.Text != "" || report.Case.Preview != "—" || report.Case.Method != model.MethodNone {
		t.Errorf("unexpected case source: %+v", report.Case)
	}
	if !report.Facts.IsEmpty() || report.Facts.Attendees == nil {
		t.Errorf("expected default facts, got %+v", report.Facts)
	}
	if len(report.Warnings) != 1 || !strings.Contains(report.Warnings[0], "scan.tiff") {
		t.Errorf("expected one warning naming the file, got %v", report.Warnings)
	}
}

func TestAnalyze_References(t *testing.T) {
	p := newTestPipeline(&fakeExtractor{})

	var refs []string
	for i := 1; i <= 12; i++ {
		refs = append(refs, fmt.Sprintf("  संदर्भ %d  ", i), "")
	}
	report, err := p.Analyze(context.Background(), Request{
		Case:       Input{Pasted: caseText},
		GR:         Input{Pasted: grText},
		References: refs,
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(report.References) != MaxReferences {
		t.Fatalf("expected %d references, got %d", MaxReferences, len(report.References))
	}
	if report.References[0] != "संदर्भ 1" || report.References[9] != "संदर्भ 10" {
		t.Errorf("unexpected references: %q", report.References)
	}

	report, _ = p.Analyze(context.Background(), Request{
		Case:       Input{Pasted: caseText},
		GR:         Input{Pasted: grText},
		References: []string{" ", ""},
	})
	if len(report.References) == 0 || report.References[0] != report.Facts.Refs[0] {
		t.Errorf("expected fallback to case references, got %q", report.References)
	}
}

func TestAnalyze_PreviewLength(t *testing.T) {
	cfg := model.DefaultConfig()
	p := newTestPipeline(&fakeExtractor{})
	p.config = cfg

	long := strings.Repeat("अ", 2000)
	report, err := p.Analyze(context.Background(), Request{Case: Input{Pasted: long}, GR: Input{Pasted: grText}})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.Case.Runes != 2000 || len([]rune(report.Case.Preview)) != cfg.Preview.Chars {
		t.Errorf("runes %d, preview %d", report.Case.Runes, len([]rune(report.Case.Preview)))
	}
}

func TestAnalyze_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := newTestPipeline(&fakeExtractor{})
	_, err := p.Analyze(ctx, Request{Case: Input{Pasted: caseText}, GR: Input{Pasted: grText}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestDefaultReferences(t *testing.T) {
	office := model.DefaultConfig().Office
	refs := DefaultReferences(office, "13/05/2025")
	if len(refs) != len(office.References)+1 || refs[len(refs)-1] != "सुनावणी दिनांक : 13/05/2025" {
		t.Errorf("unexpected defaults: %q", refs)
	}

	req := RequestFromConfig(office)
	if req.CaseID != "ZP/CH/2025/0001" || len(req.References) != 4 {
		t.Errorf("unexpected request: %+v", req)
	}
}

func analyzedReport(t *testing.T) *model.AnalysisReport {
	t.Helper()
	p := newTestPipeline(&fakeExtractor{})
	report, err := p.Analyze(context.Background(), Request{
		CaseID: "C-1",
		Case:   Input{Pasted: caseText},
		GR:     Input{Pasted: grText},
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	return report
}

func TestRenderer_JSONMatchesSchema(t *testing.T) {
	r := NewRenderer(io.Discard, 140)
	data, err := r.JSON(analyzedReport(t))
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := decoded["case"].(map[string]any)["text"]; ok {
		t.Error("full text must not be serialised")
	}
	facts := decoded["facts"].(map[string]any)
	if facts["complainant_village"] != "नानकपठार" {
		t.Errorf("unexpected facts: %v", facts)
	}
}

func TestValidate_RejectsBadFacts(t *testing.T) {
	bad := []byte(`{"complainant_name":"","complainant_village":"","complainant_taluka":"",` +
		`"hearing_date":"tomorrow","hearing_time":"","distance_km":"","attendees":[],"refs":[]}`)
	if err := Validate(FactsSchema, bad); err == nil {
		t.Error("expected schema error for malformed hearing date")
	}

	missing := []byte(`{"complainant_name":""}`)
	if err := Validate(FactsSchema, missing); err == nil {
		t.Error("expected schema error for missing keys")
	}

	data, _ := json.Marshal(model.NewCaseFacts())
	if err := Validate(FactsSchema, data); err != nil {
		t.Errorf("default facts should validate: %v", err)
	}
}

func TestRenderer_Markdown(t *testing.T) {
	r := NewRenderer(io.Discard, 140)
	md := string(r.Markdown(analyzedReport(t)))

	for _, want := range []string{
		"# Analysis: C-1",
		"| Case | — | pasted |",
		"- **Complainant:** सुनीता रमेश पाटील",
		"- **कलम 4** नुसार",
		"1. ",
		"XXXXXXXXXX",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
	if strings.Contains(md, "9876543210") {
		t.Error("markdown must only carry redacted previews")
	}
}

func TestRenderer_WritesFiles(t *testing.T) {
	dir := t.TempDir()
	var stdout bytes.Buffer
	r := NewRenderer(&stdout, 140)
	report := analyzedReport(t)

	jsonPath := filepath.Join(dir, "report.json")
	if err := r.RenderJSON(report, jsonPath); err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	if err := r.RenderMarkdown(report, filepath.Join(dir, "report.md")); err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	if err := r.RenderYAML(report, "-"); err != nil {
		t.Fatalf("RenderYAML: %v", err)
	}

	if _, err := os.Stat(jsonPath); err != nil {
		t.Errorf("json not written: %v", err)
	}
	if !strings.Contains(stdout.String(), "case_id: C-1") {
		t.Errorf("expected YAML on stdout, got %q", stdout.String())
	}

	err := r.RenderJSON(report, filepath.Join(dir, "missing", "report.json"))
	if err == nil {
		t.Error("expected error writing into a missing directory")
	}
}

func TestRenderer_Summary(t *testing.T) {
	var out bytes.Buffer
	NewRenderer(&out, 140).RenderSummary(analyzedReport(t))
	if !strings.Contains(out.String(), "Analysis: C-1") || !strings.Contains(out.String(), "Complainant:  सुनीता रमेश पाटील") {
		t.Errorf("unexpected summary:\n%s", out.String())
	}
}
