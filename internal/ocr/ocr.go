// Package ocr wraps the external OCR toolchain (tesseract, pdftoppm) behind
// a narrow engine interface. The binaries are treated as pure text-out
// functions; no OCR configuration beyond language and DPI is exposed.
package ocr

import (
	"fmt"
	"path/filepath"
	"sort"

	"context"
)

type Config struct {
	Tesseract string // binary name or absolute path; if empty -> "tesseract"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"

	Language string // default "eng"
	DPI      int    // rasterization DPI for scanned PDFs, default 300
	MaxPages int    // 0 = no limit
}

// Engine shells out to the OCR toolchain.
type Engine struct {
	cfg    Config
	runner Runner
}

// NewEngine builds an Engine that runs the real binaries.
func NewEngine(cfg Config) *Engine {
	return NewEngineWithRunner(cfg, execRunner{})
}

// NewEngineWithRunner builds an Engine with a custom command runner.
func NewEngineWithRunner(cfg Config, runner Runner) *Engine {
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &Engine{cfg: cfg, runner: runner}
}

// ImageToText runs tesseract on an image file and returns the recognized text.
func (e *Engine) ImageToText(ctx context.Context, path string) (string, error) {
	// tesseract <file> stdout -l <lang>
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, path, "stdout", "-l", e.cfg.Language)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w (stderr: %s)", err, truncate(string(errb), 1<<10))
	}
	return string(out), nil
}

// PDFToImages rasterizes each PDF page into a PNG under dir and returns the
// generated paths in page order.
func (e *Engine) PDFToImages(ctx context.Context, pdfPath, dir string) ([]string, error) {
	prefix := filepath.Join(dir, "page")
	// pdftoppm -r <dpi> -png <in.pdf> <dir/page>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", e.cfg.DPI), "-png", pdfPath, prefix)
	if err != nil {
		return nil, fmt.Errorf("pdftoppm: %w (stderr: %s)", err, truncate(string(errb), 1<<10))
	}

	// collect generated pngs (prefix-1.png, prefix-2.png, ...)
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if e.cfg.MaxPages > 0 && len(matches) > e.cfg.MaxPages {
		matches = matches[:e.cfg.MaxPages]
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no images")
	}
	return matches, nil
}
