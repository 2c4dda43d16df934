package process

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruidferreira/nota-renamer/internal/domain/records"
	"github.com/ruidferreira/nota-renamer/pkg/storage"
)

const tableText = "Número\n1234567\nR$ 150,00\nServiço - de Limpeza"

type stubTable struct {
	text string
	err  error
}

func (s stubTable) ExtractTableText(context.Context, []byte, string) (string, error) {
	return s.text, s.err
}

// stubPDF returns a canned text per PDF payload.
type stubPDF struct {
	texts map[string]string
	err   error
}

func (s stubPDF) ExtractText(_ context.Context, pdfBytes []byte, _ records.Variant) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.texts[string(pdfBytes)], nil
}

type captureObserver struct {
	severities []Severity
	messages   []string
}

func (c *captureObserver) fn() Observer {
	return func(sev Severity, msg string) {
		c.severities = append(c.severities, sev)
		c.messages = append(c.messages, msg)
	}
}

func TestService_Run(t *testing.T) {
	t.Run("table extraction failure is fatal", func(t *testing.T) {
		obs := &captureObserver{}
		svc := NewService(stubTable{err: errors.New("ocr down")}, stubPDF{}, nil, obs.fn(), nil)

		_, err := svc.Run(context.Background(), RunInput{Variant: records.VariantMercadoLivre})

		require.Error(t, err)
		assert.Contains(t, obs.severities, SeverityError)
	})

	t.Run("empty record set aborts before any pdf", func(t *testing.T) {
		svc := NewService(stubTable{text: "nada de útil"}, stubPDF{}, nil, nil, nil)

		_, err := svc.Run(context.Background(), RunInput{
			Variant: records.VariantMercadoLivre,
			PDFs:    []PDFFile{{Name: "a.pdf", Data: []byte("a")}},
		})

		assert.ErrorIs(t, err, ErrNoRecords)
	})

	t.Run("matched and unmatched files", func(t *testing.T) {
		pdfs := stubPDF{texts: map[string]string{
			"match": "NFS-e 1234567 valor 150,00",
			"noise": "conteúdo irrelevante",
		}}
		svc := NewService(stubTable{text: tableText}, pdfs, nil, nil, nil)

		res, err := svc.Run(context.Background(), RunInput{
			Variant:     records.VariantMercadoLivre,
			Marketplace: "Mercado Livre",
			Unit:        "Loja1",
			PDFs: []PDFFile{
				{Name: "a.pdf", Data: []byte("match")},
				{Name: "b.pdf", Data: []byte("noise")},
			},
		})

		require.NoError(t, err)
		require.Len(t, res.Results, 2)

		assert.True(t, res.Results[0].Matched)
		assert.Equal(t, "NF 1234567 - Serviço - de Limpeza - Mercado Livre Loja1 - 150,00.pdf",
			res.Results[0].NewName)

		assert.False(t, res.Results[1].Matched)
		assert.Equal(t, "b.pdf", res.Results[1].NewName)
	})

	t.Run("pdf extraction errors degrade to unmatched", func(t *testing.T) {
		obs := &captureObserver{}
		svc := NewService(stubTable{text: tableText}, stubPDF{err: errors.New("corrupt pdf")}, nil, obs.fn(), nil)

		res, err := svc.Run(context.Background(), RunInput{
			Variant: records.VariantMercadoLivre,
			PDFs:    []PDFFile{{Name: "a.pdf", Data: []byte("a")}},
		})

		require.NoError(t, err)
		require.Len(t, res.Results, 1)
		assert.False(t, res.Results[0].Matched)
		assert.Contains(t, obs.severities, SeverityError)
	})

	t.Run("cancellation keeps produced results", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		svc := NewService(stubTable{text: tableText}, stubPDF{}, nil, nil, nil)
		res, err := svc.Run(ctx, RunInput{
			Variant: records.VariantMercadoLivre,
			PDFs:    []PDFFile{{Name: "a.pdf", Data: []byte("a")}},
		})

		assert.ErrorIs(t, err, context.Canceled)
		require.NotNil(t, res)
		assert.Empty(t, res.Results)
		assert.Len(t, res.Records, 1)
	})

	t.Run("writes renamed copies through storage", func(t *testing.T) {
		dir := t.TempDir()
		store, err := storage.NewLocalStorage(dir)
		require.NoError(t, err)

		pdfs := stubPDF{texts: map[string]string{"match": "nota 1234567 valor 150,00"}}
		svc := NewService(stubTable{text: tableText}, pdfs, store, nil, nil)

		res, err := svc.Run(context.Background(), RunInput{
			Variant:     records.VariantMercadoLivre,
			Marketplace: "ML",
			Unit:        "Matriz",
			PDFs:        []PDFFile{{Name: "a.pdf", Data: []byte("match")}},
		})

		require.NoError(t, err)
		require.True(t, res.Results[0].Matched)

		content, err := os.ReadFile(filepath.Join(dir, res.Results[0].NewName))
		require.NoError(t, err)
		assert.Equal(t, "match", string(content))
	})

	t.Run("results stay in input order", func(t *testing.T) {
		gofakeit.Seed(11)

		var files []PDFFile
		texts := map[string]string{}
		for i := 0; i < 20; i++ {
			payload := fmt.Sprintf("pdf-%d", i)
			texts[payload] = gofakeit.Sentence(8)
			files = append(files, PDFFile{
				Name: fmt.Sprintf("%s-%d.pdf", gofakeit.Word(), i),
				Data: []byte(payload),
			})
		}

		svc := NewService(stubTable{text: tableText}, stubPDF{texts: texts}, nil, nil, nil)
		res, err := svc.Run(context.Background(), RunInput{
			Variant: records.VariantMercadoLivre,
			PDFs:    files,
		})

		require.NoError(t, err)
		require.Len(t, res.Results, len(files))
		for i, r := range res.Results {
			assert.Equal(t, files[i].Name, r.OriginalName)
		}
	})
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestRenamedFileName(t *testing.T) {
	t.Run("debit note tag and sanitization", func(t *testing.T) {
		rec := records.Record{
			Identifier:    "9999",
			Description:   "Frete normal",
			DocumentType:  records.TypeDebitNote,
			AmountDisplay: "87,30",
		}
		rec.Amount = mustDecimal(t, "87.30")

		name := RenamedFileName(rec, "Magalu", "CD/Sul")

		assert.Equal(t, "ND 9999 - Frete normal - Magalu CD_Sul - 87,30.pdf", name)
	})

	t.Run("unset type falls back to the invoice tag", func(t *testing.T) {
		rec := records.Record{Identifier: "1234567", Description: "Serviço"}
		rec.Amount = mustDecimal(t, "10")

		name := RenamedFileName(rec, "ML", "Loja")

		assert.Equal(t, "NF 1234567 - Serviço - ML Loja - 10,00.pdf", name)
	})
}
