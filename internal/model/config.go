package model

import (
	"runtime"
	"time"
)

// Config represents the complete nirnay configuration
type Config struct {
	OCR         OCRConfig         `yaml:"ocr" mapstructure:"ocr"`
	PDF         PDFConfig         `yaml:"pdf" mapstructure:"pdf"`
	Highlight   HighlightConfig   `yaml:"highlight" mapstructure:"highlight"`
	Preview     PreviewConfig     `yaml:"preview" mapstructure:"preview"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Breaker     BreakerConfig     `yaml:"breaker" mapstructure:"breaker"`
	Office      OfficeConfig      `yaml:"office" mapstructure:"office"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// OCRConfig controls the tesseract backend
type OCRConfig struct {
	Binary    string   `yaml:"binary" mapstructure:"binary"`       // tesseract executable
	Languages []string `yaml:"languages" mapstructure:"languages"` // joined with "+" for -l
	TessData  string   `yaml:"tessdata" mapstructure:"tessdata"`   // optional --tessdata-dir
	PSM       int      `yaml:"psm" mapstructure:"psm"`             // 0 leaves tesseract's default
}

// PDFConfig controls the tiered PDF extraction
type PDFConfig struct {
	Pdftotext        string `yaml:"pdftotext" mapstructure:"pdftotext"`
	SuspiciousLength int    `yaml:"suspicious_length" mapstructure:"suspicious_length"` // block mode below this many runes
	ShortLength      int    `yaml:"short_length" mapstructure:"short_length"`           // row mode below this many runes
}

// HighlightConfig controls GR clause highlighting
type HighlightConfig struct {
	MaxLines int `yaml:"max_lines" mapstructure:"max_lines"`
}

// PreviewConfig controls document previews in analysis reports
type PreviewConfig struct {
	Chars  int  `yaml:"chars" mapstructure:"chars"`
	Redact bool `yaml:"redact" mapstructure:"redact"` // sensitive mode
}

// CacheConfig controls caching of extraction results
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers         int     `yaml:"workers" mapstructure:"workers"`
	SpawnsPerSecond float64 `yaml:"spawns_per_second" mapstructure:"spawns_per_second"` // external process launches per backend
	Burst           int     `yaml:"burst" mapstructure:"burst"`
}

// BreakerConfig controls the circuit breaker around external binaries
type BreakerConfig struct {
	Enabled      bool          `yaml:"enabled" mapstructure:"enabled"`
	MinRequests  uint32        `yaml:"min_requests" mapstructure:"min_requests"`
	FailureRatio float64       `yaml:"failure_ratio" mapstructure:"failure_ratio"`
	OpenTimeout  time.Duration `yaml:"open_timeout" mapstructure:"open_timeout"`
}

// OfficeConfig holds the issuing office details printed on drafts
type OfficeConfig struct {
	Officer     string   `yaml:"officer" mapstructure:"officer"`
	Signatory   string   `yaml:"signatory" mapstructure:"signatory"`
	Designation string   `yaml:"designation" mapstructure:"designation"`
	Place       string   `yaml:"place" mapstructure:"place"`
	Authority   string   `yaml:"authority" mapstructure:"authority"`       // closing line of Marathi drafts
	AuthorityEN string   `yaml:"authority_en" mapstructure:"authority_en"` // closing line of English drafts
	Language    string   `yaml:"language" mapstructure:"language"`         // mr or en
	CaseID      string   `yaml:"case_id" mapstructure:"case_id"`           // default file number
	Subject     string   `yaml:"subject" mapstructure:"subject"`           // default subject
	HearingDate string   `yaml:"hearing_date" mapstructure:"hearing_date"` // intake hearing date, dd/mm/yyyy
	References  []string `yaml:"references" mapstructure:"references"`
	Watermark   bool     `yaml:"watermark" mapstructure:"watermark"`
	Signature   bool     `yaml:"signature" mapstructure:"signature"`
}

// LogConfig controls structured logging
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // text or json
}

// CaseSubjects lists the subjects offered at case intake
var CaseSubjects = []string{
	"Anganwadi Helper/Worker Selection",
	"Teacher Appointment (ZP School)",
	"Transfers / Service Matters",
	"Works Contract / Tender",
	"MGNREGA Wage Claim",
	"Procurement Irregularity",
	"Health (PHC/RH) Staffing",
	"ZP Benefit Eligibility",
	"Other",
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		OCR: OCRConfig{
			Binary:    "tesseract",
			Languages: []string{"mar", "hin", "eng"},
		},
		PDF: PDFConfig{
			Pdftotext:        "pdftotext",
			SuspiciousLength: 60,
			ShortLength:      50,
		},
		Highlight: HighlightConfig{
			MaxLines: 140,
		},
		Preview: PreviewConfig{
			Chars:  1500,
			Redact: true,
		},
		Cache: CacheConfig{
			Enabled:   false,
			Dir:       ".nirnay-cache",
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers:         runtime.NumCPU(),
			SpawnsPerSecond: 4,
			Burst:           2,
		},
		Breaker: BreakerConfig{
			Enabled:      true,
			MinRequests:  3,
			FailureRatio: 0.6,
			OpenTimeout:  30 * time.Second,
		},
		Office: OfficeConfig{
			Officer:     "मुख्य कार्यकारी अधिकारी, जिल्हा परिषद, चंद्रपूर",
			Signatory:   "(Name of CEO)",
			Designation: "Chief Executive Officer",
			Place:       "Chandrapur",
			Authority:   "जिल्हा परिषद, चंद्रपूर",
			AuthorityEN: "Zilla Parishad, Chandrapur",
			Language:    "mr",
			CaseID:      "ZP/CH/2025/0001",
			Subject:     "अंगणवाडी मदतनीस निवडीबाबत निर्णय",
			HearingDate: "13/05/2025",
			References: []string{
				"महाराष्ट्र शासन, महिला व बालविकास विभाग शासन निर्णय क्रमांक एबावि-2022/प्र.क्र.94/का-6, दिनांक 02/02/2023",
				"मा. आयुक्त, ईबावि, नवी मुंबई यांचे पत्र, दिनांक 31/01/2025",
				"तक्रार अर्ज, दिनांक 28/03/2025",
			},
			Watermark: true,
			Signature: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
