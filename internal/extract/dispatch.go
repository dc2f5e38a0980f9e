package extract

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/ppiankov/nirnay/internal/cache"
	"github.com/ppiankov/nirnay/internal/model"
)

// Handler extracts text from one family of document types
type Handler interface {
	// Name returns the handler name
	Name() string

	// CanHandle checks the lower-cased filename suffix (".pdf")
	CanHandle(ext string) bool

	// Extract returns text plus the method that produced it
	Extract(ctx context.Context, data []byte) model.Extraction
}

// Observer is notified after every dispatched extraction.
type Observer interface {
	ObserveExtraction(handler string, method model.Method, runes int, elapsed time.Duration)
}

// Dispatcher routes documents to handlers by filename suffix
type Dispatcher struct {
	handlers []Handler
	cache    cache.Cache
	observer Observer
	logger   *slog.Logger
	caps     *Capabilities
}

// DispatcherOption configures a Dispatcher
type DispatcherOption func(*Dispatcher)

// WithCache stores extraction results keyed by handler and content hash.
func WithCache(c cache.Cache) DispatcherOption {
	return func(d *Dispatcher) { d.cache = c }
}

// WithObserver attaches a metrics observer.
func WithObserver(o Observer) DispatcherOption {
	return func(d *Dispatcher) { d.observer = o }
}

// WithCapabilities gates the external backends of NewDefaultDispatcher on
// detected tools. OCR needs tesseract with every configured language and the
// pdftotext tier needs pdftotext. Without it both are always tried.
func WithCapabilities(caps Capabilities) DispatcherOption {
	return func(d *Dispatcher) { d.caps = &caps }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.logger = l }
}

// NewDispatcher creates an empty dispatcher; see NewDefaultDispatcher.
func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		handlers: make([]Handler, 0),
		cache:    cache.Noop{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewDefaultDispatcher registers the text, PDF and image handlers.
func NewDefaultDispatcher(cfg *model.Config, runner Runner, opts ...DispatcherOption) *Dispatcher {
	d := NewDispatcher(opts...)
	pdfx := NewPDFExtractor(cfg.PDF, runner, d.logger)
	ocr := NewImageExtractor(cfg.OCR, runner, d.logger)
	if d.caps != nil {
		if !d.caps.Pdftotext {
			pdfx.Secondary = nil
		}
		ocrReady := d.caps.HasLanguages(ocr.languages())
		ocr.Available = func(context.Context) bool { return ocrReady }
		d.logger.Debug("extraction backends",
			"pdftotext", d.caps.Pdftotext,
			"tesseract", d.caps.Tesseract,
			"ocr_ready", ocrReady,
		)
	}
	d.Register(TextHandler{})
	d.Register(PDFHandler{Extractor: pdfx})
	d.Register(ImageHandler{Extractor: ocr})
	return d
}

// Register registers a new handler
func (d *Dispatcher) Register(h Handler) {
	d.handlers = append(d.handlers, h)
}

// FindHandler returns the first handler accepting the filename, or nil.
func (d *Dispatcher) FindHandler(name string) Handler {
	ext := model.RawDocument{Name: name}.Ext()
	for _, h := range d.handlers {
		if h.CanHandle(ext) {
			return h
		}
	}
	return nil
}

// Extract returns the document text, or "" for unsupported types and
// failed extraction.
func (d *Dispatcher) Extract(ctx context.Context, doc model.RawDocument) string {
	return d.ExtractResult(ctx, doc).Text
}

// ExtractResult is Extract with the handler and method that produced the text.
func (d *Dispatcher) ExtractResult(ctx context.Context, doc model.RawDocument) model.Extraction {
	h := d.FindHandler(doc.Name)
	if h == nil {
		d.logger.Debug("no handler for document", "name", doc.Name, "ext", doc.Ext())
		return model.Extraction{Name: doc.Name, Method: model.MethodNone}
	}

	key := cache.CacheKey(h.Name(), doc.ContentHash())
	var res model.Extraction
	if cache.GetJSON(d.cache, key, &res) {
		d.logger.Debug("extraction cache hit", "name", doc.Name, "handler", h.Name())
		res.Name = doc.Name
		return res
	}

	start := time.Now()
	res = h.Extract(ctx, doc.Data)
	res.Name = doc.Name
	res.Handler = h.Name()
	elapsed := time.Since(start)

	d.logger.Debug("extracted document",
		"name", doc.Name,
		"handler", h.Name(),
		"method", res.Method,
		"runes", len([]rune(res.Text)),
		"duration_ms", elapsed.Milliseconds(),
	)
	if d.observer != nil {
		d.observer.ObserveExtraction(h.Name(), res.Method, len([]rune(res.Text)), elapsed)
	}

	// Empty results are not cached: a missing binary may be installed later.
	if res.Text != "" && ctx.Err() == nil {
		if err := cache.SetJSON(d.cache, key, res, 0); err != nil {
			d.logger.Warn("failed to cache extraction", "name", doc.Name, "error", err)
		}
	}
	return res
}

// suffixSet matches any of the given suffixes
type suffixSet []string

func (s suffixSet) has(ext string) bool {
	for _, x := range s {
		if strings.EqualFold(x, ext) {
			return true
		}
	}
	return false
}

var (
	textSuffixes  = suffixSet{".txt"}
	pdfSuffixes   = suffixSet{".pdf"}
	imageSuffixes = suffixSet{".png", ".jpg", ".jpeg", ".webp", ".tif", ".tiff"}
)

// TextHandler decodes plain text files
type TextHandler struct{}

func (TextHandler) Name() string              { return "text" }
func (TextHandler) CanHandle(ext string) bool { return textSuffixes.has(ext) }

func (TextHandler) Extract(_ context.Context, data []byte) model.Extraction {
	return model.Extraction{Text: DecodeText(data), Method: model.MethodPlainText}
}

// PDFHandler runs the tiered PDF extractor
type PDFHandler struct {
	Extractor *PDFExtractor
}

func (PDFHandler) Name() string              { return "pdf" }
func (PDFHandler) CanHandle(ext string) bool { return pdfSuffixes.has(ext) }

func (h PDFHandler) Extract(ctx context.Context, data []byte) model.Extraction {
	return h.Extractor.ExtractResult(ctx, data)
}

// ImageHandler runs OCR
type ImageHandler struct {
	Extractor *ImageExtractor
}

func (ImageHandler) Name() string              { return "image" }
func (ImageHandler) CanHandle(ext string) bool { return imageSuffixes.has(ext) }

func (h ImageHandler) Extract(ctx context.Context, data []byte) model.Extraction {
	text := h.Extractor.Extract(ctx, data)
	if text == "" {
		return model.Extraction{Method: model.MethodNone}
	}
	return model.Extraction{Text: text, Method: model.MethodImageOCR}
}
