package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.OCR.Binary != "tesseract" || strings.Join(cfg.OCR.Languages, "+") != "mar+hin+eng" {
		t.Errorf("unexpected OCR defaults: %+v", cfg.OCR)
	}
	if cfg.Cache.DiskTTL != 7*24*time.Hour {
		t.Errorf("disk TTL = %v", cfg.Cache.DiskTTL)
	}
	if cfg.Office.Language != "mr" || len(cfg.Office.References) != 3 {
		t.Errorf("unexpected office defaults: %+v", cfg.Office)
	}
	if cfg.Concurrency.Workers < 1 {
		t.Errorf("workers = %d", cfg.Concurrency.Workers)
	}
}

func TestLoadFile_FileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, `
ocr:
  languages: [mar, eng]
cache:
  enabled: true
  memory_ttl: 5m
office:
  language: EN
  place: Nagpur
log:
  format: json
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if strings.Join(cfg.OCR.Languages, "+") != "mar+eng" {
		t.Errorf("languages = %v", cfg.OCR.Languages)
	}
	if !cfg.Cache.Enabled || cfg.Cache.MemoryTTL != 5*time.Minute {
		t.Errorf("unexpected cache config: %+v", cfg.Cache)
	}
	if cfg.Office.Language != "en" || cfg.Office.Place != "Nagpur" {
		t.Errorf("unexpected office config: %+v", cfg.Office)
	}
	// untouched keys keep their defaults
	if cfg.Office.Designation != "Chief Executive Officer" || cfg.PDF.Pdftotext != "pdftotext" {
		t.Errorf("defaults lost: %+v %+v", cfg.Office, cfg.PDF)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("log format = %q", cfg.Log.Format)
	}
}

func TestLoadFile_EnvOverrides(t *testing.T) {
	t.Setenv("NIRNAY_OCR_BINARY", "/opt/tesseract")
	t.Setenv("NIRNAY_PREVIEW_REDACT", "false")
	t.Setenv("NIRNAY_BREAKER_OPEN_TIMEOUT", "1m")

	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.OCR.Binary != "/opt/tesseract" {
		t.Errorf("binary = %q", cfg.OCR.Binary)
	}
	if cfg.Preview.Redact {
		t.Error("expected redaction disabled from env")
	}
	if cfg.Breaker.OpenTimeout != time.Minute {
		t.Errorf("open timeout = %v", cfg.Breaker.OpenTimeout)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"language": "office:\n  language: hi\n",
		"format":   "log:\n  format: xml\n",
		"ratio":    "breaker:\n  failure_ratio: 1.5\n",
		"preview":  "preview:\n  chars: -1\n",
	}
	for name, body := range tests {
		path := filepath.Join(dir, name+".yaml")
		writeFile(t, path, body)
		if _, err := LoadFile(path); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	writeFile(t, envFile, "NIRNAY_OFFICE_PLACE=Wardha\n")
	t.Setenv("NIRNAY_OFFICE_PLACE", "")
	os.Unsetenv("NIRNAY_OFFICE_PLACE")

	if err := LoadEnvFiles(filepath.Join(dir, "absent.env"), envFile); err != nil {
		t.Fatalf("LoadEnvFiles: %v", err)
	}
	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Office.Place != "Wardha" {
		t.Errorf("place = %q", cfg.Office.Place)
	}
}
