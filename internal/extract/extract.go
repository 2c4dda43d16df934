// Package extract provides the text-producing collaborators of the pipeline:
// OCR over the reference-table image and text extraction from invoice PDFs.
// The core matching logic only ever sees the returned strings.
package extract

import (
	"context"

	"github.com/ruidferreira/nota-renamer/internal/domain/records"
)

// TableExtractor produces the raw text of the reference table from its
// uploaded image. A failure here is fatal for the whole run.
type TableExtractor interface {
	ExtractTableText(ctx context.Context, image []byte, mimeType string) (string, error)
}

// PDFTextExtractor produces the raw text of a single invoice PDF. Errors are
// degraded to empty text by the caller; an empty text simply fails to match.
type PDFTextExtractor interface {
	ExtractText(ctx context.Context, pdfBytes []byte, v records.Variant) (string, error)
}

// minPDFTextLen is the threshold below which a Magalu PDF is assumed to be
// image-only and handed to OCR instead.
const minPDFTextLen = 50
