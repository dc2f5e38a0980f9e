package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ppiankov/nirnay/internal/cache"
	"github.com/ppiankov/nirnay/internal/config"
	"github.com/ppiankov/nirnay/internal/extract"
	"github.com/ppiankov/nirnay/internal/logging"
	"github.com/ppiankov/nirnay/internal/metrics"
	"github.com/ppiankov/nirnay/internal/model"
	"github.com/ppiankov/nirnay/internal/pipeline"
	"github.com/ppiankov/nirnay/internal/resilience"
)

// app holds the components shared by every command
type app struct {
	cfg        *model.Config
	logger     *slog.Logger
	metrics    *metrics.Metrics
	runner     *resilience.GuardedRunner
	caps       extract.Capabilities
	dispatcher *extract.Dispatcher
}

// newApp loads configuration and wires extraction: exec runner, spawn
// limiter and breaker, detected backends, result cache, metrics.
func newApp() (*app, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}
	logger := logging.FromConfig(cfg.Log, verbose)
	m := metrics.New()

	runner := resilience.FromConfig(extract.ExecRunner{Logger: logger}, cfg, logger)
	runner.OnStateChange = m.ObserveBreaker

	a := &app{
		cfg:     cfg,
		logger:  logger,
		metrics: m,
		runner:  runner,
	}
	a.caps = a.prober().Probe(context.Background())
	a.useCache(cache.New(cfg.Cache))
	return a, nil
}

// useCache rebuilds the dispatcher around c.
func (a *app) useCache(c cache.Cache) {
	a.dispatcher = extract.NewDefaultDispatcher(a.cfg, a.runner,
		extract.WithCache(c),
		extract.WithCapabilities(a.caps),
		extract.WithObserver(a.metrics),
		extract.WithLogger(a.logger),
	)
}

func (a *app) pipeline() *pipeline.Pipeline {
	return pipeline.NewPipeline(a.cfg, a.dispatcher, a.logger)
}

func (a *app) prober() extract.Prober {
	return extract.Prober{
		Tesseract: a.cfg.OCR.Binary,
		Pdftotext: a.cfg.PDF.Pdftotext,
		Runner:    a.runner,
	}
}

// readDocument loads a file, or stdin for "-".
func readDocument(path string) (*model.RawDocument, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return &model.RawDocument{Name: "stdin.txt", Data: data}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &model.RawDocument{Name: filepath.Base(path), Data: data}, nil
}

// documentText extracts the text of a file or stdin. Unsupported types
// are an error here; the dispatcher itself just returns "".
func (a *app) documentText(ctx context.Context, path string) (model.Extraction, error) {
	doc, err := readDocument(path)
	if err != nil {
		return model.Extraction{}, err
	}
	if a.dispatcher.FindHandler(doc.Name) == nil {
		return model.Extraction{}, fmt.Errorf("%s: %w", doc.Name, model.ErrUnsupported)
	}
	return a.dispatcher.ExtractResult(ctx, *doc), nil
}

// caseInput builds one side of an analysis from a file flag and a text flag.
func caseInput(path, text string) (pipeline.Input, error) {
	in := pipeline.Input{Pasted: text}
	if path != "" {
		doc, err := readDocument(path)
		if err != nil {
			return in, err
		}
		in.Document = doc
	}
	return in, nil
}

// readLines reads a reference list, one entry per line.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return strings.Split(string(data), "\n"), nil
}

func methodName(m model.Method) string {
	if m == model.MethodNone {
		return "none"
	}
	return string(m)
}
