// Package extract turns uploaded document bytes into plain text. Images go
// through OCR, PDFs through the embedded text layer with an OCR fallback for
// scans, and plain-text files are decoded verbatim.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"kyc-backend/internal/shared/telemetry"
)

// Method identifies which extraction strategy produced the text.
type Method string

const (
	MethodImageOCR       Method = "ocr-image"
	MethodPDFTextLayer   Method = "pdf-text-layer"
	MethodPDFOCRFallback Method = "pdf-ocr-fallback"
	MethodPlainText      Method = "plain-text"
)

// EmptyPDFSentinel is returned as the extracted text when neither the text
// layer nor OCR finds anything in a PDF. It is a soft success: downstream
// storage still records that the document was processed.
const EmptyPDFSentinel = "No extractable text found in the PDF."

var (
	imageExtensions = map[string]struct{}{
		"png": {}, "jpg": {}, "jpeg": {}, "tiff": {}, "bmp": {}, "webp": {},
	}
	textExtensions = map[string]struct{}{
		"txt": {}, "csv": {},
	}
)

// Result is the outcome of a successful (or soft-successful) extraction.
type Result struct {
	Text   string
	Method Method
}

// OCREngine is the external OCR boundary consumed by the extractor.
type OCREngine interface {
	ImageToText(ctx context.Context, path string) (string, error)
	PDFToImages(ctx context.Context, pdfPath, dir string) ([]string, error)
}

// Extractor dispatches extraction strategies by file extension.
type Extractor struct {
	OCR OCREngine
}

// New constructs an Extractor backed by the given OCR engine.
func New(ocr OCREngine) *Extractor {
	return &Extractor{OCR: ocr}
}

// Extract produces plain text from document bytes. The extension is matched
// case-insensitively; anything outside the image/pdf/text classes returns an
// UnsupportedTypeError the caller may skip over.
func (x *Extractor) Extract(ctx context.Context, data []byte, ext string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))

	switch {
	case isImageExt(ext):
		return x.extractImage(ctx, data, ext)
	case ext == "pdf":
		return x.extractPDF(ctx, data)
	case isTextExt(ext):
		return extractPlainText(data)
	default:
		return Result{}, &UnsupportedTypeError{Extension: ext}
	}
}

func isImageExt(ext string) bool {
	_, ok := imageExtensions[ext]
	return ok
}

func isTextExt(ext string) bool {
	_, ok := textExtensions[ext]
	return ok
}

func (x *Extractor) extractImage(ctx context.Context, data []byte, ext string) (Result, error) {
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return Result{}, &CorruptImageError{Err: err}
	}

	path, cleanup, err := writeTemp(data, "kyc-img-*."+ext)
	if err != nil {
		return Result{}, err
	}
	defer cleanup()

	text, err := x.OCR.ImageToText(ctx, path)
	if err != nil {
		return Result{}, fmt.Errorf("image ocr: %w", err)
	}
	return Result{Text: strings.TrimSpace(text), Method: MethodImageOCR}, nil
}

// extractPDF tries the embedded text layer first and falls back to
// rasterize-and-OCR when the document carries no selectable text.
func (x *Extractor) extractPDF(ctx context.Context, data []byte) (Result, error) {
	text, err := pdfTextLayer(data)
	if err != nil {
		// Unparseable text layer: treat the document as scanned.
		telemetry.Warn("pdf text layer unreadable, falling back to ocr", map[string]any{"error": err.Error()})
		text = ""
	}
	if strings.TrimSpace(text) != "" {
		return Result{Text: strings.TrimSpace(text), Method: MethodPDFTextLayer}, nil
	}

	ocrText, err := x.pdfOCR(ctx, data)
	if err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(ocrText) == "" {
		return Result{Text: EmptyPDFSentinel, Method: MethodPDFOCRFallback}, nil
	}
	return Result{Text: strings.TrimSpace(ocrText), Method: MethodPDFOCRFallback}, nil
}

func pdfTextLayer(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extract page %d: %w", i, err)
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(pageText)
	}
	return b.String(), nil
}

func (x *Extractor) pdfOCR(ctx context.Context, data []byte) (string, error) {
	tmpDir, err := os.MkdirTemp("", "kyc-pdf-*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(tmpDir)

	pdfPath := filepath.Join(tmpDir, "input.pdf")
	if err := os.WriteFile(pdfPath, data, 0o600); err != nil {
		return "", err
	}

	pages, err := x.OCR.PDFToImages(ctx, pdfPath, tmpDir)
	if err != nil {
		return "", fmt.Errorf("rasterize pdf: %w", err)
	}

	var b strings.Builder
	for _, img := range pages {
		pageText, err := x.OCR.ImageToText(ctx, img)
		if err != nil {
			return "", fmt.Errorf("ocr page %s: %w", filepath.Base(img), err)
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strings.TrimSpace(pageText))
	}
	return b.String(), nil
}

func extractPlainText(data []byte) (Result, error) {
	if !utf8.Valid(data) {
		return Result{}, &EncodingError{}
	}
	return Result{Text: strings.TrimSpace(string(data)), Method: MethodPlainText}, nil
}

func writeTemp(data []byte, pattern string) (string, func(), error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	cleanup := func() { os.Remove(path) }

	if _, err := f.Write(data); err != nil {
		f.Close()
		cleanup()
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	return path, cleanup, nil
}
