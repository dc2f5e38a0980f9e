package extract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"strconv"
	"strings"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/ppiankov/nirnay/internal/model"
)

// ImageExtractor recognises text in raster images with tesseract.
type ImageExtractor struct {
	Binary    string
	Languages []string
	TessData  string
	PSM       int
	Runner    Runner

	// Available, when set, is consulted before any work; false skips OCR.
	Available func(ctx context.Context) bool

	Logger *slog.Logger
}

// NewImageExtractor builds an OCR extractor from config.
func NewImageExtractor(cfg model.OCRConfig, runner Runner, logger *slog.Logger) *ImageExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImageExtractor{
		Binary:    cfg.Binary,
		Languages: cfg.Languages,
		TessData:  cfg.TessData,
		PSM:       cfg.PSM,
		Runner:    runner,
		Logger:    logger,
	}
}

// Extract returns paragraphs joined by newlines, or "" on any failure.
func (e *ImageExtractor) Extract(ctx context.Context, data []byte) string {
	text, err := e.extract(ctx, data)
	if err != nil {
		e.logger().Debug("image ocr failed", "error", err)
		return ""
	}
	return text
}

func (e *ImageExtractor) extract(ctx context.Context, data []byte) (string, error) {
	if e.Available != nil && !e.Available(ctx) {
		return "", fmt.Errorf("tesseract unavailable")
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	e.logger().Debug("image decoded", "format", format, "bounds", img.Bounds().String())

	path, err := writeTempPNG(toRGBA(img))
	if err != nil {
		return "", err
	}
	defer func() { _ = os.Remove(path) }()

	// tesseract <png> stdout -l mar+hin+eng tsv
	out, errb, err := e.Runner.Run(ctx, e.binary(), e.args(path)...)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w: %s", err, truncate(string(errb), 512))
	}
	return strings.TrimSpace(strings.Join(ParseTSVParagraphs(string(out)), "\n")), nil
}

func (e *ImageExtractor) binary() string {
	if e.Binary == "" {
		return "tesseract"
	}
	return e.Binary
}

func (e *ImageExtractor) languages() []string {
	if len(e.Languages) == 0 {
		return []string{"mar", "hin", "eng"}
	}
	return e.Languages
}

func (e *ImageExtractor) args(path string) []string {
	args := []string{path, "stdout", "-l", strings.Join(e.languages(), "+")}
	if e.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(e.PSM))
	}
	if e.TessData != "" {
		args = append(args, "--tessdata-dir", e.TessData)
	}
	return append(args, "tsv")
}

func (e *ImageExtractor) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

// toRGBA normalises palette, grey and CMYK images to 8-bit RGBA.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return dst
}

func writeTempPNG(img image.Image) (string, error) {
	f, err := os.CreateTemp("", "nirnay-ocr-*.png")
	if err != nil {
		return "", fmt.Errorf("create temp png: %w", err)
	}
	path := f.Name()
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("encode png: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close temp png: %w", err)
	}
	return path, nil
}

// TSV columns emitted by tesseract
const (
	tsvLevel = iota
	tsvPage
	tsvBlock
	tsvPar
	tsvLine
	tsvWord
	tsvLeft
	tsvTop
	tsvWidth
	tsvHeight
	tsvConf
	tsvText
	tsvColumns
)

// ParseTSVParagraphs groups recognised words into paragraphs keyed by
// (page, block, paragraph), in the order tesseract reports them.
func ParseTSVParagraphs(tsv string) []string {
	type key struct{ page, block, par string }

	var order []key
	words := make(map[key][]string)

	for i, ln := range strings.Split(tsv, "\n") {
		if i == 0 && strings.HasPrefix(ln, "level") {
			continue
		}
		cols := strings.Split(strings.TrimRight(ln, "\r"), "\t")
		if len(cols) < tsvColumns || cols[tsvLevel] != "5" {
			continue
		}
		if cols[tsvConf] == "-1" {
			continue
		}
		word := strings.TrimSpace(cols[tsvText])
		if word == "" {
			continue
		}
		k := key{cols[tsvPage], cols[tsvBlock], cols[tsvPar]}
		if _, seen := words[k]; !seen {
			order = append(order, k)
		}
		words[k] = append(words[k], word)
	}

	paragraphs := make([]string, 0, len(order))
	for _, k := range order {
		paragraphs = append(paragraphs, strings.Join(words[k], " "))
	}
	return paragraphs
}
