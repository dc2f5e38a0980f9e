// Package config layers defaults, the YAML config file, .env files and
// NIRNAY_* environment variables into a model.Config.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/nirnay/internal/model"
)

// EnvPrefix prefixes every environment override, e.g. NIRNAY_OCR_BINARY.
const EnvPrefix = "NIRNAY"

// DirName is the per-user config directory under $HOME.
const DirName = ".nirnay"

// Setup registers defaults and environment lookup on v.
func Setup(v *viper.Viper) error {
	defaults, err := defaultSettings()
	if err != nil {
		return err
	}
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return nil
}

// New returns a viper instance with defaults and environment lookup set up.
func New() (*viper.Viper, error) {
	v := viper.New()
	if err := Setup(v); err != nil {
		return nil, err
	}
	return v, nil
}

// LoadEnvFiles loads .env style files into the process environment.
// Missing files are skipped; variables already set are not overwritten.
func LoadEnvFiles(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load decodes v into a config and checks it.
func Load(v *viper.Viper) (*model.Config, error) {
	// Defaults live in v; decoding into a zero value keeps file lists from
	// merging into the default lists.
	cfg := &model.Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	normalize(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile is a convenience for a single config file plus environment.
func LoadFile(path string) (*model.Config, error) {
	v, err := New()
	if err != nil {
		return nil, err
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return Load(v)
}

// Validate rejects settings no component can work with.
func Validate(cfg *model.Config) error {
	switch cfg.Office.Language {
	case "mr", "en":
	default:
		return fmt.Errorf("office.language %q: must be mr or en", cfg.Office.Language)
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format %q: must be text or json", cfg.Log.Format)
	}
	if cfg.Preview.Chars < 0 {
		return fmt.Errorf("preview.chars %d: must not be negative", cfg.Preview.Chars)
	}
	if cfg.Breaker.FailureRatio < 0 || cfg.Breaker.FailureRatio > 1 {
		return fmt.Errorf("breaker.failure_ratio %v: must be within [0, 1]", cfg.Breaker.FailureRatio)
	}
	if cfg.OCR.Binary == "" || cfg.PDF.Pdftotext == "" {
		return errors.New("ocr.binary and pdf.pdftotext must be set")
	}
	return nil
}

func normalize(cfg *model.Config) {
	cfg.Office.Language = strings.ToLower(strings.TrimSpace(cfg.Office.Language))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	if cfg.Concurrency.Workers <= 0 {
		cfg.Concurrency.Workers = runtime.NumCPU()
	}
	if cfg.Highlight.MaxLines <= 0 {
		cfg.Highlight.MaxLines = model.DefaultConfig().Highlight.MaxLines
	}
	if len(cfg.OCR.Languages) == 1 && strings.ContainsAny(cfg.OCR.Languages[0], "+ ") {
		// NIRNAY_OCR_LANGUAGES="mar+hin+eng" arrives as one element
		cfg.OCR.Languages = strings.FieldsFunc(cfg.OCR.Languages[0], func(r rune) bool { return r == '+' || r == ' ' })
	}
}

// defaultSettings flattens DefaultConfig into dotted viper keys.
func defaultSettings() (map[string]any, error) {
	data, err := yaml.Marshal(model.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("marshal defaults: %w", err)
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("unmarshal defaults: %w", err)
	}
	out := make(map[string]any)
	flatten("", tree, out)
	return out, nil
}

func flatten(prefix string, in map[string]any, out map[string]any) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if m, ok := v.(map[string]any); ok {
			flatten(key, m, out)
			continue
		}
		out[key] = v
	}
}
