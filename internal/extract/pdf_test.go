package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruidferreira/nota-renamer/internal/domain/records"
)

type stubOCR struct {
	text string
	err  error
}

func (s stubOCR) OCRPDF(context.Context, []byte) (string, error) {
	return s.text, s.err
}

// Not a real PDF, so the text layer read always fails. That is exactly the
// image-only case the Magalu fallback exists for.
var notAPDF = []byte("conteúdo que não é PDF")

func TestLayerExtractor_ExtractText(t *testing.T) {
	t.Run("magalu falls back to OCR when the layer is unreadable", func(t *testing.T) {
		e := NewLayerExtractor(stubOCR{text: "NOTA 5544 total R$ 87,30"})

		text, err := e.ExtractText(context.Background(), notAPDF, records.VariantMagalu)

		require.NoError(t, err)
		assert.Equal(t, "NOTA 5544 total R$ 87,30", text)
	})

	t.Run("other variants surface the layer error", func(t *testing.T) {
		e := NewLayerExtractor(stubOCR{text: "nunca usado"})

		_, err := e.ExtractText(context.Background(), notAPDF, records.VariantMercadoLivre)

		assert.Error(t, err)
	})

	t.Run("magalu without OCR keeps the layer error", func(t *testing.T) {
		e := NewLayerExtractor(nil)

		_, err := e.ExtractText(context.Background(), notAPDF, records.VariantMagalu)

		assert.Error(t, err)
	})

	t.Run("failed OCR reports both causes", func(t *testing.T) {
		e := NewLayerExtractor(stubOCR{err: errors.New("quota exceeded")})

		_, err := e.ExtractText(context.Background(), notAPDF, records.VariantMagalu)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "quota exceeded")
	})
}
