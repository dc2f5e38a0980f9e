package extract

import (
	"context"
	"encoding/json"
	"os/exec"
	"strings"
	"time"

	"github.com/ppiankov/nirnay/internal/cache"
)

// Capabilities reports which extraction backends this process can use
type Capabilities struct {
	PDFLibrary         bool     `json:"pdf_library" yaml:"pdf_library"`
	Pdftotext          bool     `json:"pdftotext" yaml:"pdftotext"`
	PdftotextPath      string   `json:"pdftotext_path,omitempty" yaml:"pdftotext_path,omitempty"`
	Tesseract          bool     `json:"tesseract" yaml:"tesseract"`
	TesseractPath      string   `json:"tesseract_path,omitempty" yaml:"tesseract_path,omitempty"`
	TesseractLanguages []string `json:"tesseract_languages" yaml:"tesseract_languages"`
}

// HasLanguages reports whether tesseract is present with every language in langs.
func (c Capabilities) HasLanguages(langs []string) bool {
	if !c.Tesseract {
		return false
	}
	have := make(map[string]bool, len(c.TesseractLanguages))
	for _, l := range c.TesseractLanguages {
		have[l] = true
	}
	for _, l := range langs {
		if !have[l] {
			return false
		}
	}
	return true
}

// lookPathFunc resolves binaries; overridden in tests.
var lookPathFunc = exec.LookPath

// capabilityCache holds one probe result per binary pair for the process lifetime.
var capabilityCache cache.Cache = cache.NewMemoryCache(0, 0)

// Prober detects available backends.
type Prober struct {
	Tesseract string
	Pdftotext string
	Runner    Runner
}

// Probe returns the capabilities, probing once per process and binary pair.
func (p Prober) Probe(ctx context.Context) Capabilities {
	key := cache.CacheKey("capabilities:" + p.tesseract() + ":" + p.pdftotext())
	if data, ok := capabilityCache.Get(key); ok {
		var caps Capabilities
		if err := json.Unmarshal(data, &caps); err == nil {
			return caps
		}
	}

	caps := p.Detect(ctx)
	if data, err := json.Marshal(caps); err == nil {
		_ = capabilityCache.Set(key, data, 0)
	}
	return caps
}

// Detect probes without consulting the cache.
func (p Prober) Detect(ctx context.Context) Capabilities {
	caps := Capabilities{
		PDFLibrary:         true, // compiled in
		TesseractLanguages: []string{},
	}

	if path, err := lookPathFunc(p.pdftotext()); err == nil {
		caps.Pdftotext = true
		caps.PdftotextPath = path
	}

	if path, err := lookPathFunc(p.tesseract()); err == nil {
		caps.Tesseract = true
		caps.TesseractPath = path
		if p.Runner != nil {
			caps.TesseractLanguages = p.listLanguages(ctx)
		}
	}
	return caps
}

func (p Prober) listLanguages(ctx context.Context) []string {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	out, errb, err := p.Runner.Run(ctx, p.tesseract(), "--list-langs")
	if err != nil {
		return []string{}
	}
	// older tesseract builds print the list on stderr
	return ParseLanguageList(string(out) + "\n" + string(errb))
}

// ParseLanguageList extracts language codes from `tesseract --list-langs` output.
func ParseLanguageList(out string) []string {
	langs := []string{}
	seen := make(map[string]bool)
	for _, ln := range strings.Split(out, "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" || strings.Contains(ln, " ") || strings.HasSuffix(ln, ":") {
			continue
		}
		if !seen[ln] {
			seen[ln] = true
			langs = append(langs, ln)
		}
	}
	return langs
}

func (p Prober) tesseract() string {
	if p.Tesseract == "" {
		return "tesseract"
	}
	return p.Tesseract
}

func (p Prober) pdftotext() string {
	if p.Pdftotext == "" {
		return "pdftotext"
	}
	return p.Pdftotext
}
