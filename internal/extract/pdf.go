package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/ruidferreira/nota-renamer/internal/domain/records"
)

// OCRFallback is the subset of the Gemini extractor used when a PDF has no
// usable text layer.
type OCRFallback interface {
	OCRPDF(ctx context.Context, pdfBytes []byte) (string, error)
}

// LayerExtractor reads the PDF's embedded text layer. Magalu invoices are
// frequently scanned images with no layer at all, so for that variant a
// too-short result is retried through OCR.
type LayerExtractor struct {
	ocr OCRFallback
}

// NewLayerExtractor creates a PDF text extractor. ocr may be nil, in which
// case the Magalu fallback is skipped.
func NewLayerExtractor(ocr OCRFallback) *LayerExtractor {
	return &LayerExtractor{ocr: ocr}
}

// ExtractText returns the PDF's text layer. For Magalu, when the layer holds
// fewer than minPDFTextLen characters, the bytes are sent to OCR instead.
func (e *LayerExtractor) ExtractText(ctx context.Context, pdfBytes []byte, v records.Variant) (string, error) {
	text, err := readTextLayer(pdfBytes)
	if v != records.VariantMagalu {
		return text, err
	}

	if err == nil && utf8.RuneCountInString(text) >= minPDFTextLen {
		return text, nil
	}
	if e.ocr == nil {
		return text, err
	}

	ocrText, ocrErr := e.ocr.OCRPDF(ctx, pdfBytes)
	if ocrErr != nil {
		// Keep whatever the text layer produced; the caller degrades to
		// empty text anyway.
		if err != nil {
			return "", fmt.Errorf("text layer: %v; ocr: %w", err, ocrErr)
		}
		return text, nil
	}
	return ocrText, nil
}

func readTextLayer(pdfBytes []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(pdfBytes), int64(len(pdfBytes)))
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("reading text layer: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("reading text layer: %w", err)
	}
	return buf.String(), nil
}
