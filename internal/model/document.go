package model

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"path/filepath"
	"strings"
)

var (
	// ErrNoInput is returned when neither a file nor pasted text was supplied for a required document
	ErrNoInput = errors.New("no input provided")
	// ErrUnsupported is returned when a file type has no extraction path
	ErrUnsupported = errors.New("unsupported document type")
)

// RawDocument is an uploaded file: opaque bytes plus the declared filename.
// The name is only used to pick the extraction path.
type RawDocument struct {
	Name string
	Data []byte
}

// Ext returns the lower-cased filename suffix including the dot (".pdf").
func (d RawDocument) Ext() string {
	return strings.ToLower(filepath.Ext(d.Name))
}

// ContentHash returns the hex-encoded SHA-256 of the document bytes.
func (d RawDocument) ContentHash() string {
	sum := sha256.Sum256(d.Data)
	return hex.EncodeToString(sum[:])
}

// Method identifies which extraction path produced a piece of text
type Method string

const (
	MethodNone      Method = ""              // nothing produced text
	MethodPlainText Method = "text"          // Text Reader
	MethodPDFText   Method = "pdf-text"      // primary PDF backend
	MethodPDFBlocks Method = "pdf-blocks"    // geometry-aware block mode
	MethodPdftotext Method = "pdf-pdftotext" // poppler pdftotext
	MethodPDFRows   Method = "pdf-rows"      // row-by-row fallback
	MethodImageOCR  Method = "image-ocr"     // tesseract
	MethodPasted    Method = "pasted"        // operator supplied text directly
)

// Extraction is the outcome of running one document through the dispatcher
type Extraction struct {
	Name     string `json:"name" yaml:"name"`
	Text     string `json:"text" yaml:"text"`
	Method   Method `json:"method" yaml:"method"`
	Handler  string `json:"handler,omitempty" yaml:"handler,omitempty"`
	Attempts []Tier `json:"attempts,omitempty" yaml:"attempts,omitempty"`
}

// Tier records one backend attempt inside a tiered extraction
type Tier struct {
	Method     Method `json:"method" yaml:"method"`
	Runes      int    `json:"runes" yaml:"runes"`
	Devanagari bool   `json:"devanagari" yaml:"devanagari"`
	Adopted    bool   `json:"adopted" yaml:"adopted"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
}
