package gen

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"
)

// Writer renders files in parallel and formats them with goimports.
type Writer struct {
	outDir  string
	workers int

	// Metrics for performance monitoring
	mu      sync.Mutex
	metrics *WriterMetrics
}

// WriterMetrics tracks generation output.
type WriterMetrics struct {
	FilesGenerated int
	TotalBytes     int64
}

// NewWriter creates a new writer for outDir.
func NewWriter(outDir string) *Writer {
	return &Writer{
		outDir:  outDir,
		workers: runtime.GOMAXPROCS(0),
		metrics: &WriterMetrics{},
	}
}

// WithWorkers sets the number of parallel workers.
func (w *Writer) WithWorkers(n int) *Writer {
	if n > 0 {
		w.workers = n
	}
	return w
}

// Metrics returns the generation metrics.
func (w *Writer) Metrics() *WriterMetrics {
	return w.metrics
}

// fileTask represents a single file generation task.
type fileTask struct {
	name  string // output file path (relative to outDir)
	table string
	file  *jen.File
}

// WriteAll writes all files, stopping at the first failure.
func (w *Writer) WriteAll(ctx context.Context, files []fileTask) error {
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return &GenerationError{File: w.outDir, Cause: err}
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)
	for _, f := range files {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.writeFile(f)
			}
		})
	}
	return eg.Wait()
}

// writeFile renders, formats and writes a single file.
func (w *Writer) writeFile(f fileTask) error {
	var buf bytes.Buffer
	if err := f.file.Render(&buf); err != nil {
		return &GenerationError{Table: f.table, File: f.name, Cause: err}
	}
	fullPath := filepath.Join(w.outDir, f.name)
	formatted, err := imports.Process(fullPath, buf.Bytes(), nil)
	if err != nil {
		// Keep the unformatted output next to the target for debugging.
		_ = os.WriteFile(fullPath+".error", buf.Bytes(), 0o644)
		return &GenerationError{Table: f.table, File: f.name, Cause: err}
	}
	if err := os.WriteFile(fullPath, formatted, 0o644); err != nil {
		return &GenerationError{Table: f.table, File: f.name, Cause: err}
	}
	w.mu.Lock()
	w.metrics.FilesGenerated++
	w.metrics.TotalBytes += int64(len(formatted))
	w.mu.Unlock()
	return nil
}
