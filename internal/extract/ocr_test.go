package extract

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os/exec"
	"strings"
	"testing"
)

const sampleTSV = "level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext\n" +
	"1\t1\t0\t0\t0\t0\t0\t0\t800\t600\t-1\t\n" +
	"5\t1\t1\t1\t1\t1\t10\t10\t40\t20\t91.2\tसुनावणी\n" +
	"5\t1\t1\t1\t1\t2\t60\t10\t40\t20\t89.0\tदिनांक\n" +
	"5\t1\t1\t1\t2\t1\t10\t40\t40\t20\t88.1\t13/05/2025\n" +
	"5\t1\t2\t1\t1\t1\t10\t90\t40\t20\t95.5\tकलम\n" +
	"5\t1\t2\t1\t1\t2\t60\t90\t20\t20\t-1\t\n" +
	"5\t1\t2\t1\t1\t3\t90\t90\t20\t20\t93.0\t4\n"

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 8, 4))
	for x := 0; x < 8; x++ {
		img.SetGray(x, 1, color.Gray{Y: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

func TestParseTSVParagraphs(t *testing.T) {
	got := ParseTSVParagraphs(sampleTSV)
	want := []string{"सुनावणी दिनांक 13/05/2025", "कलम 4"}
	if len(got) != len(want) {
		t.Fatalf("expected %d paragraphs, got %d: %q", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("paragraph %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseTSVParagraphs_Empty(t *testing.T) {
	if got := ParseTSVParagraphs(""); len(got) != 0 {
		t.Errorf("expected no paragraphs, got %q", got)
	}
}

func TestImageExtractor_RunsTesseract(t *testing.T) {
	var pngPath string
	var existed bool
	runner := &fakeRunner{stdout: []byte(sampleTSV)}
	runner.onRun = func(name string, args []string) {
		pngPath = args[0]
		existed = fileExists(pngPath)
	}

	e := &ImageExtractor{Runner: runner}
	got := e.Extract(context.Background(), pngBytes(t))

	if got != "सुनावणी दिनांक 13/05/2025\nकलम 4" {
		t.Errorf("got %q", got)
	}
	if !existed {
		t.Error("PNG should exist while tesseract runs")
	}
	if fileExists(pngPath) {
		t.Error("PNG should be removed afterwards")
	}

	call := strings.Join(runner.calls[0], " ")
	if !strings.HasPrefix(call, "tesseract ") || !strings.Contains(call, " stdout -l mar+hin+eng") || !strings.HasSuffix(call, " tsv") {
		t.Errorf("unexpected invocation: %s", call)
	}
}

func TestImageExtractor_Options(t *testing.T) {
	runner := &fakeRunner{stdout: []byte(sampleTSV)}
	e := &ImageExtractor{
		Binary:    "/opt/tess",
		Languages: []string{"mar"},
		PSM:       6,
		TessData:  "/data",
		Runner:    runner,
	}
	_ = e.Extract(context.Background(), pngBytes(t))

	args := runner.calls[0]
	if args[0] != "/opt/tess" {
		t.Errorf("expected custom binary, got %s", args[0])
	}
	call := strings.Join(args, " ")
	for _, part := range []string{"-l mar ", "--psm 6", "--tessdata-dir /data"} {
		if !strings.Contains(call, part) {
			t.Errorf("expected %q in %s", part, call)
		}
	}
}

func TestImageExtractor_FailuresYieldEmpty(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		runner *fakeRunner
		avail  func(context.Context) bool
	}{
		{"undecodable", []byte("not an image"), &fakeRunner{stdout: []byte(sampleTSV)}, nil},
		{"binary missing", pngBytes(t), &fakeRunner{err: exec.ErrNotFound}, nil},
		{"runtime failure", pngBytes(t), &fakeRunner{err: errors.New("exit status 1"), stderr: []byte("Failed loading language 'mar'")}, nil},
		{"unavailable", pngBytes(t), &fakeRunner{stdout: []byte(sampleTSV)}, func(context.Context) bool { return false }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &ImageExtractor{Runner: tt.runner, Available: tt.avail}
			if got := e.Extract(context.Background(), tt.data); got != "" {
				t.Errorf("expected empty, got %q", got)
			}
		})
	}
}

func TestToRGBA(t *testing.T) {
	src := image.NewGray(image.Rect(5, 5, 9, 7))
	src.SetGray(5, 5, color.Gray{Y: 200})

	dst := toRGBA(src)
	if dst.Bounds() != image.Rect(0, 0, 4, 2) {
		t.Fatalf("unexpected bounds %v", dst.Bounds())
	}
	r, g, b, a := dst.At(0, 0).RGBA()
	if r>>8 != 200 || g>>8 != 200 || b>>8 != 200 || a>>8 != 255 {
		t.Errorf("unexpected pixel %d %d %d %d", r>>8, g>>8, b>>8, a>>8)
	}
}
