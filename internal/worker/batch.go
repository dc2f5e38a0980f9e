package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ppiankov/nirnay/internal/model"
)

// Analyzer defines the interface for analysing one case file
type Analyzer interface {
	AnalyzeFile(ctx context.Context, path string) (*model.AnalysisReport, error)
}

// AnalyzeJob represents one case file analysis
type AnalyzeJob struct {
	Index    int
	Path     string
	Analyzer Analyzer
}

// Execute executes the analysis job
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	start := time.Now()
	report, err := j.Analyzer.AnalyzeFile(ctx, j.Path)
	return &FileResult{
		Index:   j.Index,
		Path:    j.Path,
		Report:  report,
		Error:   err,
		Elapsed: time.Since(start),
	}
}

// FileResult represents the result of an analysis job
type FileResult struct {
	Index   int
	Path    string
	Report  *model.AnalysisReport
	Error   error
	Elapsed time.Duration
}

// GetError returns the error from the analysis
func (r *FileResult) GetError() error {
	return r.Error
}

// BatchProcessor analyses multiple case files concurrently
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// ProcessFiles analyses the files concurrently. Results come back in input
// order; files never started because ctx ended carry ctx's error.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*FileResult {
	if len(paths) == 0 {
		return []*FileResult{}
	}

	pool := NewPoolContext(ctx, b.concurrency)
	pool.Start()
	defer pool.Shutdown()

	jobs := make([]Job, len(paths))
	for i, path := range paths {
		jobs[i] = &AnalyzeJob{
			Index:    i,
			Path:     path,
			Analyzer: b.analyzer,
		}
	}

	results := pool.Run(jobs)

	out := make([]*FileResult, len(paths))
	for _, result := range results {
		fr := result.(*FileResult)
		out[fr.Index] = fr
	}
	for i, fr := range out {
		if fr == nil {
			err := ctx.Err()
			if err == nil {
				err = context.Canceled
			}
			out[i] = &FileResult{Index: i, Path: paths[i], Error: fmt.Errorf("not processed: %w", err)}
		}
	}
	return out
}

// ProcessPath analyses every accepted file in a directory, or every path
// listed in a text file.
func (b *BatchProcessor) ProcessPath(ctx context.Context, path string, accept func(name string) bool) ([]*FileResult, error) {
	paths, err := CollectPaths(path, accept)
	if err != nil {
		return nil, err
	}
	return b.ProcessFiles(ctx, paths), nil
}

// CollectPaths lists the accepted regular files of a directory (sorted,
// non-recursive), or reads paths from a list file. A nil accept keeps
// every file.
func CollectPaths(path string, accept func(name string) bool) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}
	if !info.IsDir() {
		return ReadPathsFromFile(path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if accept != nil && !accept(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(path, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// ReadPathsFromFile reads file paths from a list file (one per line).
// Relative paths are resolved against the list file's directory.
func ReadPathsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	base := filepath.Dir(filePath)
	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !filepath.IsAbs(line) {
			line = filepath.Join(base, line)
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
